// Package app wires the calculator system onto a HAL.
package app

import (
	"errors"
	"image"
	"sync/atomic"

	"abacus/accum"
	"abacus/hal"
	"abacus/kernel"
	"abacus/services/console"
	"abacus/services/keypad"
	"abacus/services/logger"
	"abacus/tasks/calculator"
)

const (
	calcWidth     = 240
	tapeWidth     = 160
	defaultHeight = 320
)

// ErrPanicked is returned by a headless step after a task panicked.
var ErrPanicked = errors.New("task panicked")

// Config selects the calculator policy and front end.
type Config struct {
	Policy accum.Policy
	// Tape adds a paper-tape column to the right of the keypad.
	Tape bool
	// Headless drives the calculator from hal.Serial instead of keyboard
	// and pointer input.
	Headless bool
}

// Width returns the framebuffer width cfg needs.
func (c Config) Width() int {
	if c.Tape {
		return calcWidth + tapeWidth
	}
	return calcWidth
}

type system struct {
	k        *kernel.Kernel
	headless bool
	quit     atomic.Bool
}

// New starts the system on h and returns the host step function. The step
// reports hal.ErrQuit once the user quits or headless input is exhausted.
func New(h hal.HAL, cfg Config) func() error {
	installPanicHandler(h, cfg.Headless)
	s := newSystem(h, cfg)
	return s.step
}

func (s *system) step() error {
	if s.headless && kernel.InPanicMode() {
		return ErrPanicked
	}
	if s.quit.Load() {
		return hal.ErrQuit
	}
	return nil
}

func (s *system) requestQuit() { s.quit.Store(true) }

func newSystem(h hal.HAL, cfg Config) *system {
	k := kernel.New()
	s := &system{k: k, headless: cfg.Headless}

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	logCap := logEP.Restrict(kernel.RightSend)
	calcCap := calcEP.Restrict(kernel.RightSend)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))

	height := defaultHeight
	if d := h.Display(); d != nil {
		if fb := d.Framebuffer(); fb != nil {
			height = fb.Height()
		}
	}
	layout := keypad.NewLayout(image.Rect(0, 0, calcWidth, height))
	var tapeRect image.Rectangle
	if cfg.Tape {
		tapeRect = image.Rect(calcWidth, 0, calcWidth+tapeWidth, height)
	}
	k.AddTask(calculator.New(h.Display(), calcEP.Restrict(kernel.RightRecv), logCap, layout, tapeRect, cfg.Policy))

	if cfg.Headless {
		k.AddTask(console.New(h.Serial(), calcCap, logCap, s.requestQuit))
	} else {
		k.AddTask(keypad.New(h.Input(), layout, calcCap, logCap, s.requestQuit))
	}

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return s
}
