package calculator

import (
	"image"
	"image/color"

	"abacus/accum"
	"abacus/gfx"
	"abacus/services/keypad"
)

var (
	colorBG       = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xFF}
	colorReadout  = color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
	colorError    = color.RGBA{R: 0xFF, G: 0x50, B: 0x50, A: 0xFF}
	colorDim      = color.RGBA{R: 0x80, G: 0x80, B: 0x88, A: 0xFF}
	colorDigit    = color.RGBA{R: 0x33, G: 0x33, B: 0x38, A: 0xFF}
	colorFunction = color.RGBA{R: 0xA5, G: 0xA5, B: 0xA5, A: 0xFF}
	colorOperator = color.RGBA{R: 0xFF, G: 0x9F, B: 0x0A, A: 0xFF}
	colorPending  = color.RGBA{R: 0xFF, G: 0xE0, B: 0xB0, A: 0xFF}
	colorLabel    = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorLabelInv = color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xFF}
)

// readoutFonts are tried in order until the text fits.
var readoutFonts = []gfx.Font{gfx.Large, gfx.Medium, gfx.Small}

const readoutPad = 4

func (t *Task) render() {
	if t.d == nil {
		return
	}
	t.drawReadout()
	for _, b := range t.layout.Buttons() {
		t.drawButton(b)
	}
	_ = t.d.Display()
}

func (t *Task) drawReadout() {
	r := t.layout.Readout()
	x, y, w, h := rectArgs(r)
	_ = t.d.FillRectangle(x, y, w, h, colorBG)

	if op := t.acc.Pending(); op.Valid() {
		t.d.DrawText(gfx.Small, x+readoutPad, y+readoutPad, opSymbol(op), colorDim)
	}
	if t.acc.NegatePending() {
		t.d.DrawText(gfx.Small, x+readoutPad, y+h-gfx.Small.Height-readoutPad, "neg", colorDim)
	}

	text := t.Readout()
	c := colorReadout
	switch {
	case t.failed:
		c = colorError
	case text == "":
		text, c = "0", colorDim
	}
	font := fitFont(text, w-3*readoutPad)
	t.d.DrawTextRight(font, x+w-readoutPad, y+h-font.Height-readoutPad, text, c)
}

func fitFont(text string, width int16) gfx.Font {
	for _, f := range readoutFonts {
		if f.TextWidth(text) <= width {
			return f
		}
	}
	return readoutFonts[len(readoutFonts)-1]
}

func (t *Task) drawButton(b keypad.Button) {
	x, y, w, h := rectArgs(b.Rect)

	bg, fg := colorDigit, colorLabel
	switch b.Cmd.Kind {
	case accum.KindClear, accum.KindToggleSign, accum.KindPercent:
		bg, fg = colorFunction, colorLabelInv
	case accum.KindOperator, accum.KindEquals:
		bg = colorOperator
		if b.Cmd.Kind == accum.KindOperator && b.Cmd.Op == t.acc.Pending() {
			bg, fg = colorPending, colorOperator
		}
	}
	if b.Cmd == t.pressed {
		bg = lighten(bg)
	}

	_ = t.d.FillRectangle(x, y, w, h, bg)
	t.d.DrawTextCentered(gfx.Medium, x, y, w, h, b.Label(), fg)
}

func lighten(c color.RGBA) color.RGBA {
	up := func(v uint8) uint8 { return v + (0xFF-v)/3 }
	return color.RGBA{R: up(c.R), G: up(c.G), B: up(c.B), A: c.A}
}

func rectArgs(r image.Rectangle) (x, y, w, h int16) {
	return int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy())
}
