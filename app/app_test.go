package app

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"abacus/accum"
	"abacus/hal"
	"abacus/kernel"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testLogger struct{ lockedBuffer }

func (l *testLogger) WriteLineString(s string) { l.Write([]byte(s + "\n")) }
func (l *testLogger) WriteLineBytes(b []byte)  { l.WriteLineString(string(b)) }

type testSerial struct {
	r   io.Reader
	out lockedBuffer
}

func (s *testSerial) Read(p []byte) (int, error)  { return s.r.Read(p) }
func (s *testSerial) Write(p []byte) (int, error) { return s.out.Write(p) }

type testHAL struct {
	log    *testLogger
	serial *testSerial
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Display() hal.Display { return nil }
func (h *testHAL) Input() hal.Input     { return nil }
func (h *testHAL) Time() hal.Time       { return nil }
func (h *testHAL) Serial() hal.Serial   { return h.serial }

func runHeadless(t *testing.T, cfg Config, input string) *testHAL {
	t.Helper()
	h := &testHAL{log: &testLogger{}, serial: &testSerial{r: strings.NewReader(input)}}
	cfg.Headless = true
	step := New(h, cfg)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		err := step()
		if errors.Is(err, hal.ErrQuit) {
			return h
		}
		if err != nil {
			t.Fatalf("step: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out; output so far %q", h.serial.out.String())
	return nil
}

func TestHeadlessSession(t *testing.T) {
	h := runHeadless(t, Config{}, "12+3*2=")
	want := "1\n12\n12\n3\n15\n2\n30\n"
	if got := h.serial.out.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	// The logger task drains asynchronously.
	deadline := time.Now().Add(time.Second)
	for !strings.Contains(h.log.String(), "calc: ready (policy=seed)") || !strings.Contains(h.log.String(), "tape: 12 + 3 x 2 = 30") {
		if time.Now().After(deadline) {
			t.Fatalf("expected ready and tape log lines, got %q", h.log.String())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHeadlessStrictPolicy(t *testing.T) {
	h := runHeadless(t, Config{Policy: accum.PolicyStrict}, "4=7=Q")
	want := "4\n4\n7\n4\n"
	if got := h.serial.out.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestConfigWidth(t *testing.T) {
	if w := (Config{}).Width(); w != calcWidth {
		t.Fatalf("expected %d, got %d", calcWidth, w)
	}
	if w := (Config{Tape: true}).Width(); w != calcWidth+tapeWidth {
		t.Fatalf("expected %d, got %d", calcWidth+tapeWidth, w)
	}
}

func TestPanicLines(t *testing.T) {
	lines := panicLines(kernel.PanicInfo{TaskID: 2, Value: "boom", Stack: []byte("a\n\nb\n")})
	want := []string{"calculator panic:", "task: 2", "panic: boom", "stack:", "a", "b"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, lines)
	}

	lines = panicLines(kernel.PanicInfo{TaskID: 1, Value: "x"})
	if lines[len(lines)-1] != "stack: unavailable" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		s          string
		n          int
		head, tail string
	}{
		{"abcdef", 4, "abcd", "ef"},
		{"abc", 4, "abc", ""},
		{"×÷±", 2, "×÷", "±"},
		{"abc", 0, "", "abc"},
	}
	for _, tt := range tests {
		head, tail := takeRunes(tt.s, tt.n)
		if head != tt.head || tail != tt.tail {
			t.Fatalf("takeRunes(%q, %d) = %q, %q", tt.s, tt.n, head, tail)
		}
	}
}
