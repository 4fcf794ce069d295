// Package calculator runs the task that owns the Accumulator. Every other
// component talks to it by message.
package calculator

import (
	"image"
	"strings"

	"abacus/accum"
	logclient "abacus/client/logger"
	"abacus/gfx"
	"abacus/hal"
	"abacus/kernel"
	"abacus/proto"
	"abacus/services/keypad"
	"abacus/tape"
)

const (
	maxSubscribers = 4
	// publishRetryTicks bounds how long a display update waits for a slow
	// subscriber.
	publishRetryTicks = 100
)

// errorText replaces the readout after a failed command.
const errorText = "Error"

type lineWriter interface {
	Append(line string)
}

// Task is the calculator task: it applies commands and renders the results.
type Task struct {
	disp     hal.Display
	ep       kernel.Capability
	logCap   kernel.Capability
	layout   keypad.Layout
	tapeRect image.Rectangle

	acc *accum.Accumulator

	fb   hal.Framebuffer
	d    *gfx.Display
	tape lineWriter

	subs []kernel.Capability

	failed  bool
	pressed accum.Command

	// expr holds the operands and operators entered since the last result, for
	// the tape.
	expr []string
}

// New creates the calculator task. tapeRect may be empty to disable the tape.
func New(disp hal.Display, ep, logCap kernel.Capability, layout keypad.Layout, tapeRect image.Rectangle, policy accum.Policy) *Task {
	return &Task{
		disp:     disp,
		ep:       ep,
		logCap:   logCap,
		layout:   layout,
		tapeRect: tapeRect,
		acc:      accum.New(policy),
	}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	t.initDisplay()
	t.render()
	logclient.Logf(ctx, t.logCap, "calc: ready (policy=%s)", policyName(t.acc.Policy()))

	for msg := range ch {
		t.handle(ctx, msg)
	}
}

func (t *Task) initDisplay() {
	if t.disp == nil {
		return
	}
	t.fb = t.disp.Framebuffer()
	if t.fb == nil {
		return
	}
	t.d = gfx.New(t.fb)
	t.fb.ClearRGB(colorBG.R, colorBG.G, colorBG.B)
	if t.tape == nil && !t.tapeRect.Empty() {
		r := t.tapeRect
		t.tape = tape.New(t.d.Sub(r.Min.X, r.Min.Y, r.Dx(), r.Dy()), gfx.Small)
	}
}

func (t *Task) handle(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgCommand:
		cmd, ok := proto.DecodeCommandPayload(msg.Payload())
		if !ok {
			logclient.Logf(ctx, t.logCap, "calc: bad command payload %x", msg.Payload())
			if msg.Cap.Valid() {
				ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), proto.ErrorPayload(proto.ErrBadMessage, proto.MsgCommand, nil), kernel.Capability{})
			}
			return
		}
		t.apply(ctx, cmd)
		t.render()
		t.publish(ctx)

	case proto.MsgSubscribe:
		if !msg.Cap.Valid() {
			return
		}
		if len(t.subs) >= maxSubscribers {
			ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), proto.ErrorPayload(proto.ErrBusy, proto.MsgSubscribe, nil), kernel.Capability{})
			return
		}
		t.subs = append(t.subs, msg.Cap)
	}
}

func (t *Task) apply(ctx *kernel.Context, cmd accum.Command) {
	operand := t.operandText()
	t.pressed = cmd

	if err := t.acc.Apply(cmd); err != nil {
		t.failed = true
		logclient.Logf(ctx, t.logCap, "calc: %s: %v", cmd.Kind, err)
		return
	}
	t.failed = false

	switch cmd.Kind {
	case accum.KindOperator:
		t.expr = append(t.expr, operand, opSymbol(cmd.Op))
	case accum.KindEquals:
		if len(t.expr) > 0 {
			t.writeTape(ctx, append(t.expr, operand, "=", t.acc.Render()))
		}
		t.expr = t.expr[:0]
	case accum.KindPercent:
		if _, ok := t.acc.Current(); ok {
			t.writeTape(ctx, append(t.expr, operand, "%", "=", t.acc.Render()))
		}
		t.expr = t.expr[:0]
	case accum.KindClear:
		t.expr = t.expr[:0]
	}
}

// operandText describes the value the next evaluation will commit.
func (t *Task) operandText() string {
	cur, ok := t.acc.Current()
	pending := t.acc.Pending().Valid()
	if t.acc.Input() != "" {
		// Strict mode discards a new entry that has no operator to apply.
		if ok && !pending && t.acc.Policy() == accum.PolicyStrict {
			return accum.FormatNumber(cur)
		}
		return t.acc.Render()
	}
	if !ok || pending {
		return "0"
	}
	return accum.FormatNumber(cur)
}

// writeTape records a finished calculation on the local tape and sends it to
// subscribers.
func (t *Task) writeTape(ctx *kernel.Context, tokens []string) {
	line := strings.Join(tokens, " ")
	if t.tape != nil {
		t.tape.Append(line)
	}
	for _, sub := range t.subs {
		ctx.SendToCapRetry(sub, uint16(proto.MsgTapeLine), proto.TextPayload(line), kernel.Capability{}, publishRetryTicks)
	}
}

// Readout returns the display string. It is empty before the first entry.
func (t *Task) Readout() string {
	if t.failed {
		return errorText
	}
	return t.acc.Render()
}

func (t *Task) publish(ctx *kernel.Context) {
	live := t.subs[:0]
	for _, sub := range t.subs {
		if t.publishTo(ctx, sub) == kernel.SendErrNoEndpoint {
			continue
		}
		live = append(live, sub)
	}
	t.subs = live
}

func (t *Task) publishTo(ctx *kernel.Context, sub kernel.Capability) kernel.SendResult {
	res := ctx.SendToCapRetry(sub, uint16(proto.MsgDisplay), proto.TextPayload(t.Readout()), kernel.Capability{}, publishRetryTicks)
	if res != kernel.SendOK && res != kernel.SendErrNoEndpoint {
		logclient.Logf(ctx, t.logCap, "calc: publish: %s", res)
	}
	return res
}

// opSymbol spells op in the ASCII range the fonts cover.
func opSymbol(op accum.Op) string {
	switch op {
	case accum.OpMultiply:
		return "x"
	case accum.OpDivide:
		return "/"
	default:
		return op.String()
	}
}

func policyName(p accum.Policy) string {
	if p == accum.PolicyStrict {
		return "strict"
	}
	return "seed"
}
