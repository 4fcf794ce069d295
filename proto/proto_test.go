package proto

import (
	"strings"
	"testing"
	"unicode/utf8"

	"abacus/accum"
	"abacus/kernel"
)

func TestCommandPayload(t *testing.T) {
	cmds := []accum.Command{
		accum.DigitCommand('0'),
		accum.DigitCommand('9'),
		accum.OperatorCommand(accum.OpDivide),
		{Kind: accum.KindDecimalPoint},
		{Kind: accum.KindEquals},
		{Kind: accum.KindClear},
		{Kind: accum.KindToggleSign},
		{Kind: accum.KindPercent},
	}
	for _, want := range cmds {
		got, ok := DecodeCommandPayload(CommandPayload(want))
		if !ok || got != want {
			t.Fatalf("expected %+v, got %+v (ok=%v)", want, got, ok)
		}
	}
}

func TestDecodeCommandPayloadRejects(t *testing.T) {
	bad := [][]byte{
		nil,
		{byte(accum.KindEquals)},
		{byte(accum.KindDigit), 'a', 0},
		{byte(accum.KindOperator), 0, 0},
		{byte(accum.KindOperator), 0, 99},
		{0, 0, 0},
		{200, 0, 0},
	}
	for _, b := range bad {
		if cmd, ok := DecodeCommandPayload(b); ok {
			t.Fatalf("expected %v to be rejected, got %+v", b, cmd)
		}
	}
}

func TestTextPayloadTruncatesOnRuneBoundary(t *testing.T) {
	s := strings.Repeat("÷", kernel.MaxMessageBytes)
	b := TextPayload(s)
	if len(b) > kernel.MaxMessageBytes {
		t.Fatalf("expected at most %d bytes, got %d", kernel.MaxMessageBytes, len(b))
	}
	if !utf8.Valid(b) {
		t.Fatal("expected valid UTF-8 after truncation")
	}
	got, ok := DecodeTextPayload(TextPayload("1.000000e21"))
	if !ok || got != "1.000000e21" {
		t.Fatalf("unexpected text payload %q (ok=%v)", got, ok)
	}
	if _, ok := DecodeTextPayload([]byte{0xff}); ok {
		t.Fatal("expected invalid UTF-8 to be rejected")
	}
}

func TestErrorPayload(t *testing.T) {
	code, ref, detail, ok := DecodeErrorPayload(ErrorPayload(ErrBadMessage, MsgCommand, []byte("short")))
	if !ok || code != ErrBadMessage || ref != MsgCommand || string(detail) != "short" {
		t.Fatalf("unexpected decode: code=%s ref=%s detail=%q ok=%v", code, ref, detail, ok)
	}
	if _, _, _, ok := DecodeErrorPayload([]byte{1}); ok {
		t.Fatal("expected short payload to be rejected")
	}
}
