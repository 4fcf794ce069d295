package keypad

import (
	"image"
	"testing"
	"time"

	"abacus/accum"
	"abacus/hal"
	"abacus/kernel"
	"abacus/proto"
)

type fakeInput struct {
	keys   chan hal.KeyEvent
	clicks chan hal.PointerEvent
}

func (in *fakeInput) Keyboard() hal.Keyboard { return fakeKeyboard(in.keys) }
func (in *fakeInput) Pointer() hal.Pointer   { return fakePointer(in.clicks) }

type fakeKeyboard chan hal.KeyEvent

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k }

type fakePointer chan hal.PointerEvent

func (p fakePointer) Events() <-chan hal.PointerEvent { return p }

func TestCommandForKey(t *testing.T) {
	tests := []struct {
		ev   hal.KeyEvent
		want accum.Command
		ok   bool
	}{
		{hal.KeyEvent{Press: true, Rune: '7'}, accum.DigitCommand('7'), true},
		{hal.KeyEvent{Press: true, Rune: '*'}, accum.OperatorCommand(accum.OpMultiply), true},
		{hal.KeyEvent{Press: true, Code: hal.KeyTab}, accum.Command{Kind: accum.KindClear}, true},
		{hal.KeyEvent{Press: true, Code: hal.KeyEnter}, accum.Command{Kind: accum.KindEquals}, true},
		{hal.KeyEvent{Press: false, Code: hal.KeyEnter}, accum.Command{}, false},
		{hal.KeyEvent{Press: true, Code: hal.KeyBackspace}, accum.Command{}, false},
		{hal.KeyEvent{Press: true, Rune: 'z'}, accum.Command{}, false},
	}
	for _, tt := range tests {
		got, ok := CommandForKey(tt.ev)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("%+v: expected %+v (%v), got %+v (%v)", tt.ev, tt.want, tt.ok, got, ok)
		}
	}
}

func TestServiceForwardsCommandsAndQuits(t *testing.T) {
	k := kernel.New()
	calc := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	layout := NewLayout(image.Rect(0, 0, 240, 300))

	in := &fakeInput{keys: make(chan hal.KeyEvent, 8), clicks: make(chan hal.PointerEvent, 8)}
	quit := make(chan struct{})
	svc := New(in, layout, calc.Restrict(kernel.RightSend), kernel.Capability{}, func() { close(quit) })

	plus, _ := layout.Find(accum.OperatorCommand(accum.OpAdd))
	c := plus.Rect.Min.Add(plus.Rect.Max).Div(2)

	in.keys <- hal.KeyEvent{Press: true, Rune: '5'}
	in.keys <- hal.KeyEvent{Press: true, Rune: 'z'}

	done := make(chan struct{})
	go func() {
		svc.Run(k.Context())
		close(done)
	}()

	ch := mustRecvChan(t, k.Context(), calc)
	if got := recvCommand(t, ch); got != accum.DigitCommand('5') {
		t.Fatalf("expected digit 5, got %+v", got)
	}

	in.clicks <- hal.PointerEvent{X: c.X, Y: c.Y, Press: true}
	in.clicks <- hal.PointerEvent{X: c.X, Y: c.Y, Press: false}
	if got := recvCommand(t, ch); got != accum.OperatorCommand(accum.OpAdd) {
		t.Fatalf("expected plus, got %+v", got)
	}

	in.keys <- hal.KeyEvent{Press: true, Rune: accum.QuitRune}
	select {
	case <-quit:
	case <-time.After(time.Second):
		t.Fatal("expected quit callback")
	}
	<-done
}

func mustRecvChan(t *testing.T, ctx *kernel.Context, c kernel.Capability) <-chan kernel.Message {
	t.Helper()
	ch, ok := ctx.RecvChan(c.Restrict(kernel.RightRecv))
	if !ok {
		t.Fatal("expected recv channel")
	}
	return ch
}

func recvCommand(t *testing.T, ch <-chan kernel.Message) accum.Command {
	t.Helper()
	select {
	case msg := <-ch:
		if proto.Kind(msg.Kind) != proto.MsgCommand {
			t.Fatalf("unexpected kind %s", proto.Kind(msg.Kind))
		}
		cmd, ok := proto.DecodeCommandPayload(msg.Payload())
		if !ok {
			t.Fatalf("bad payload %v", msg.Payload())
		}
		return cmd
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a command")
	}
	return accum.Command{}
}
