// Package console drives the calculator from a serial byte stream: each byte
// is a key, and every resulting display string is written back as a line.
// Tape lines go to the log.
package console

import (
	"bufio"
	"errors"
	"io"

	"abacus/accum"
	logclient "abacus/client/logger"
	"abacus/hal"
	"abacus/kernel"
	"abacus/proto"
)

const (
	sendRetryTicks = 50
	// maxInFlight keeps both mailboxes below capacity: the console stops
	// reading until displays for earlier commands come back. A command yields
	// at most one display and one tape line.
	maxInFlight = 6
)

// Service is the headless front end of the calculator.
type Service struct {
	serial  hal.Serial
	calcCap kernel.Capability
	logCap  kernel.Capability
	done    func()
}

// New creates a console service. done is called once input has ended (EOF or
// the quit key) and every display for the accepted input has been written.
func New(serial hal.Serial, calcCap, logCap kernel.Capability, done func()) *Service {
	return &Service{serial: serial, calcCap: calcCap, logCap: logCap, done: done}
}

func (s *Service) Run(ctx *kernel.Context) {
	defer s.finish()

	if s.serial == nil {
		return
	}
	ep := ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	if !ep.Valid() {
		logclient.Log(ctx, s.logCap, "console: no endpoint")
		return
	}
	res := ctx.SendToCapRetry(s.calcCap, uint16(proto.MsgSubscribe), nil, ep.Restrict(kernel.RightSend), sendRetryTicks)
	if res != kernel.SendOK {
		logclient.Logf(ctx, s.logCap, "console: subscribe: %s", res)
		return
	}
	displays, ok := ctx.RecvChan(ep.Restrict(kernel.RightRecv))
	if !ok {
		return
	}

	stop := make(chan struct{})
	defer close(stop)
	runes := make(chan rune)
	go s.readRunes(ctx, runes, stop)

	inFlight := 0
	for {
		if runes == nil && inFlight == 0 {
			return
		}
		in := runes
		if inFlight >= maxInFlight {
			in = nil
		}

		select {
		case r, ok := <-in:
			if !ok || accum.IsQuitRune(r) {
				runes = nil
				continue
			}
			cmd, ok := accum.CommandForRune(r)
			if !ok {
				continue
			}
			if s.send(ctx, cmd) {
				inFlight++
			}

		case msg, ok := <-displays:
			if !ok {
				return
			}
			switch proto.Kind(msg.Kind) {
			case proto.MsgDisplay:
				// Every display answers one command, readable or not.
				if inFlight > 0 {
					inFlight--
				}
				text, ok := proto.DecodeTextPayload(msg.Payload())
				if !ok {
					logclient.Log(ctx, s.logCap, "console: bad display payload")
					break
				}
				if err := s.writeLine(text); err != nil {
					logclient.Logf(ctx, s.logCap, "console: write: %v", err)
				}
			case proto.MsgTapeLine:
				if text, ok := proto.DecodeTextPayload(msg.Payload()); ok {
					logclient.Log(ctx, s.logCap, "tape: "+text)
				}
			case proto.MsgError:
				code, ref, _, _ := proto.DecodeErrorPayload(msg.Payload())
				logclient.Logf(ctx, s.logCap, "console: %s error: %s", ref, code)
			}
		}
	}
}

func (s *Service) readRunes(ctx *kernel.Context, out chan<- rune, stop <-chan struct{}) {
	defer close(out)
	br := bufio.NewReader(s.serial)
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logclient.Logf(ctx, s.logCap, "console: read: %v", err)
			}
			return
		}
		select {
		case out <- r:
		case <-stop:
			return
		}
	}
}

func (s *Service) send(ctx *kernel.Context, cmd accum.Command) bool {
	res := ctx.SendToCapRetry(s.calcCap, uint16(proto.MsgCommand), proto.CommandPayload(cmd), kernel.Capability{}, sendRetryTicks)
	if res != kernel.SendOK {
		logclient.Logf(ctx, s.logCap, "console: drop %s: %s", cmd, res)
		return false
	}
	return true
}

func (s *Service) writeLine(text string) error {
	_, err := io.WriteString(s.serial, text+"\n")
	return err
}

func (s *Service) finish() {
	if s.done != nil {
		s.done()
	}
}
