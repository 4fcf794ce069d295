// Package keypad turns keyboard and pointer input into calculator commands.
package keypad

import (
	"abacus/accum"
	logclient "abacus/client/logger"
	"abacus/hal"
	"abacus/kernel"
	"abacus/proto"
)

// sendRetryTicks bounds how long a command waits for a full calculator queue.
const sendRetryTicks = 50

type Service struct {
	in      hal.Input
	layout  Layout
	calcCap kernel.Capability
	logCap  kernel.Capability
	quit    func()
}

// New creates a keypad service that sends commands to calcCap. quit is called
// once when the quit key is typed.
func New(in hal.Input, layout Layout, calcCap, logCap kernel.Capability, quit func()) *Service {
	return &Service{in: in, layout: layout, calcCap: calcCap, logCap: logCap, quit: quit}
}

func (s *Service) Run(ctx *kernel.Context) {
	if s.in == nil {
		return
	}
	var keys <-chan hal.KeyEvent
	if kbd := s.in.Keyboard(); kbd != nil {
		keys = kbd.Events()
	}
	var clicks <-chan hal.PointerEvent
	if ptr := s.in.Pointer(); ptr != nil {
		clicks = ptr.Events()
	}
	if keys == nil && clicks == nil {
		return
	}

	for {
		select {
		case ev, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if ev.Press && ev.Rune != 0 && accum.IsQuitRune(ev.Rune) {
				if s.quit != nil {
					s.quit()
				}
				return
			}
			if cmd, ok := CommandForKey(ev); ok {
				s.send(ctx, cmd)
			}

		case ev, ok := <-clicks:
			if !ok {
				clicks = nil
				continue
			}
			if !ev.Press {
				continue
			}
			if b, ok := s.layout.Hit(ev.X, ev.Y); ok {
				s.send(ctx, b.Cmd)
			}
		}
		if keys == nil && clicks == nil {
			return
		}
	}
}

func (s *Service) send(ctx *kernel.Context, cmd accum.Command) {
	res := ctx.SendToCapRetry(s.calcCap, uint16(proto.MsgCommand), proto.CommandPayload(cmd), kernel.Capability{}, sendRetryTicks)
	if res != kernel.SendOK {
		logclient.Logf(ctx, s.logCap, "keypad: drop %s: %s", cmd, res)
	}
}

// CommandForKey maps a key press to a command. Releases map to nothing.
func CommandForKey(ev hal.KeyEvent) (accum.Command, bool) {
	if !ev.Press {
		return accum.Command{}, false
	}
	if ev.Rune != 0 {
		return accum.CommandForRune(ev.Rune)
	}
	switch ev.Code {
	case hal.KeyTab, hal.KeyEscape, hal.KeyDelete:
		return accum.Command{Kind: accum.KindClear}, true
	case hal.KeyEnter:
		return accum.Command{Kind: accum.KindEquals}, true
	default:
		return accum.Command{}, false
	}
}
