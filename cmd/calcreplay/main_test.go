package main

import (
	"bytes"
	"strings"
	"testing"

	"abacus/accum"
)

func TestReplayEcho(t *testing.T) {
	var out bytes.Buffer
	if err := replay(strings.NewReader("5+3=\n"), &out, modeEcho, accum.PolicySeed); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if want := "5\n5\n3\n8\n8\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestReplayFinal(t *testing.T) {
	var out bytes.Buffer
	if err := replay(strings.NewReader("123456789012*1=Q99"), &out, modeFinal, accum.PolicySeed); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if want := "1.234568e11\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestReplayMalformedShowsError(t *testing.T) {
	var out bytes.Buffer
	if err := replay(strings.NewReader(".=5="), &out, modeEcho, accum.PolicySeed); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if want := ".\nError\n.5\n0.5\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestReplayStrict(t *testing.T) {
	var out bytes.Buffer
	if err := replay(strings.NewReader("5=3="), &out, modeFinal, accum.PolicyStrict); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if out.String() != "5\n" {
		t.Fatalf("expected 5, got %q", out.String())
	}
}

func TestParseMode(t *testing.T) {
	if m, err := parseMode("FINAL"); err != nil || m != modeFinal {
		t.Fatalf("expected final, got %v %v", m, err)
	}
	if _, err := parseMode("wav"); err == nil {
		t.Fatal("expected an error for unknown mode")
	}
}
