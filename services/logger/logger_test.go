package logger

import (
	"testing"

	logclient "abacus/client/logger"
	"abacus/kernel"
	"abacus/proto"
)

type captureLogger struct {
	lines []string
}

func (l *captureLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *captureLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func TestServiceWritesLogLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	ctx := k.Context()

	if res := logclient.Log(ctx, ep.Restrict(kernel.RightSend), "calc: ready"); res != kernel.SendOK {
		t.Fatalf("expected SendOK, got %s", res)
	}
	ctx.SendToCapResult(ep.Restrict(kernel.RightSend), uint16(proto.MsgDisplay), []byte("ignored"), kernel.Capability{})
	if res := logclient.Logf(ctx, ep.Restrict(kernel.RightSend), "calc: %d errors", 2); res != kernel.SendOK {
		t.Fatalf("expected SendOK, got %s", res)
	}
	k.CloseEndpoint(ep)

	var out captureLogger
	New(&out, ep.Restrict(kernel.RightRecv)).Run(ctx)

	if len(out.lines) != 2 || out.lines[0] != "calc: ready" || out.lines[1] != "calc: 2 errors" {
		t.Fatalf("unexpected lines: %q", out.lines)
	}
}

func TestLogTruncatesLongLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	ctx := k.Context()

	long := make([]byte, kernel.MaxMessageBytes*2)
	for i := range long {
		long[i] = 'x'
	}
	if res := logclient.Log(ctx, ep.Restrict(kernel.RightSend), string(long)); res != kernel.SendOK {
		t.Fatalf("expected SendOK, got %s", res)
	}
	msg, ok := ctx.TryRecv(ep.Restrict(kernel.RightRecv))
	if !ok || len(msg.Payload()) != kernel.MaxMessageBytes {
		t.Fatalf("expected truncated line, got %d bytes (ok=%v)", len(msg.Payload()), ok)
	}

	if res := logclient.Log(ctx, kernel.Capability{}, "x"); res != kernel.SendErrInvalidToCap {
		t.Fatalf("expected SendErrInvalidToCap, got %s", res)
	}
}
