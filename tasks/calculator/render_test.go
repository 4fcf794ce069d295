package calculator

import (
	"image"
	"testing"

	"abacus/accum"
	"abacus/hal"
	"abacus/kernel"
	"abacus/services/keypad"
)

type memFB struct {
	w, h    int
	buf     []byte
	present int
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) Present() error          { f.present++; return nil }

func (f *memFB) ClearRGB(r, g, b uint8) {
	px := hal.RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(px)
		f.buf[i+1] = byte(px >> 8)
	}
}

func (f *memFB) at(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type memDisplay struct{ fb *memFB }

func (d memDisplay) Framebuffer() hal.Framebuffer { return d.fb }

func countInk(fb *memFB, r image.Rectangle, bg uint16) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if fb.at(x, y) != bg {
				n++
			}
		}
	}
	return n
}

func TestTaskDrawsReadoutAndButtons(t *testing.T) {
	fb := &memFB{w: 240, h: 300, buf: make([]byte, 240*300*2)}
	layout := keypad.NewLayout(image.Rect(0, 0, 240, 300))
	h := newHarness(t, memDisplay{fb}, layout, accum.PolicySeed)
	h.keys(t, "12")
	h.run()

	if fb.present != 3 {
		t.Fatalf("expected 3 presents (initial + 2 keys), got %d", fb.present)
	}
	bg := hal.RGB565(colorBG.R, colorBG.G, colorBG.B)
	if countInk(fb, layout.Readout(), bg) == 0 {
		t.Fatal("expected readout text to be drawn")
	}

	two, _ := layout.Find(accum.DigitCommand('2'))
	one, _ := layout.Find(accum.DigitCommand('1'))
	pressed := lighten(colorDigit)
	if fb.at(two.Rect.Min.X+1, two.Rect.Min.Y+1) != hal.RGB565(pressed.R, pressed.G, pressed.B) {
		t.Fatal("expected last pressed button to be highlighted")
	}
	if fb.at(one.Rect.Min.X+1, one.Rect.Min.Y+1) != hal.RGB565(colorDigit.R, colorDigit.G, colorDigit.B) {
		t.Fatal("expected other buttons in their normal color")
	}
}

func TestTaskDrawsTape(t *testing.T) {
	fb := &memFB{w: 400, h: 300, buf: make([]byte, 400*300*2)}
	layout := keypad.NewLayout(image.Rect(0, 0, 240, 300))
	tapeRect := image.Rect(240, 0, 400, 300)

	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	task := New(memDisplay{fb}, ep.Restrict(kernel.RightRecv), kernel.Capability{}, layout, tapeRect, accum.PolicySeed)
	h := &harness{k: k, ctx: k.Context(), ep: ep, task: task}
	h.keys(t, "5+3=")
	h.run()

	if task.tape == nil {
		t.Fatal("expected a tape")
	}
	if countInk(fb, tapeRect, 0) == 0 {
		t.Fatal("expected tape text to be drawn")
	}
}

func TestFitFontShrinks(t *testing.T) {
	if f := fitFont("8", 200); f != readoutFonts[0] {
		t.Fatal("expected the large font for short text")
	}
	long := "-1.234568e-300"
	if f := fitFont(long, readoutFonts[0].TextWidth(long)-1); f == readoutFonts[0] {
		t.Fatal("expected a smaller font for text that does not fit")
	}
}
