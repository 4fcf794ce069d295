// Package tape keeps a scrolling paper-tape log of finished calculations,
// drawn with tinyterm into a framebuffer region.
package tape

import (
	"image/color"
	"unicode/utf8"

	"abacus/gfx"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyterm"
)

// colorBG matches tinyterm's default background.
var colorBG = color.RGBA{A: 0xFF}

// Tape writes one line per entry and starts over on a fresh page when the
// region is full.
type Tape struct {
	d    *gfx.Display
	font gfx.Font

	term  *tinyterm.Terminal
	cols  int
	rows  int
	lines int
}

// New returns a Tape drawing into d.
func New(d *gfx.Display, font gfx.Font) *Tape {
	t := &Tape{d: d, font: font}
	t.Reset()
	return t
}

// Reset clears the region and starts a new page.
func (t *Tape) Reset() {
	w, h := t.d.Size()
	_ = t.d.FillRectangle(0, 0, w, h, colorBG)

	t.lines = 0
	t.rows = 0
	t.cols = 0
	if t.font.Height <= 0 {
		return
	}
	charW := t.font.TextWidth("0")
	if charW <= 0 {
		return
	}
	t.rows = int(h / t.font.Height)
	t.cols = int(w / charW)

	t.term = tinyterm.NewTerminal(t.d)
	t.term.Configure(&tinyterm.Config{
		Font:       t.font.Face.(*tinyfont.Font),
		FontHeight: t.font.Height,
		FontOffset: t.font.Ascent,
	})
}

// Lines returns the number of entries on the current page.
func (t *Tape) Lines() int { return t.lines }

// Rows returns how many entries fit on a page.
func (t *Tape) Rows() int {
	if t.rows <= 1 {
		return 0
	}
	return t.rows - 1
}

// Append writes line, cut to the region width.
func (t *Tape) Append(line string) {
	if t.term == nil || t.Rows() == 0 {
		return
	}
	if t.lines >= t.Rows() {
		t.Reset()
	}
	if utf8.RuneCountInString(line) > t.cols {
		rs := []rune(line)
		line = string(rs[:t.cols])
	}
	_, _ = t.term.Write([]byte(line + "\r\n"))
	t.lines++
}
