package gfx

import (
	"image/color"

	"tinygo.org/x/tinyfont"
)

// Font pairs a tinyfont face with the metrics needed to place text in boxes.
type Font struct {
	Face tinyfont.Fonter

	// Ascent is the distance from the top of a line to the baseline.
	Ascent int16
	// Height is the line height.
	Height int16
}

// TextWidth returns the advance width of s in pixels.
func (f Font) TextWidth(s string) int16 {
	if f.Face == nil || s == "" {
		return 0
	}
	_, outbox := tinyfont.LineWidth(f.Face, s)
	return int16(outbox)
}

// DrawText draws s with its top-left corner at (x, y).
func (d *Display) DrawText(f Font, x, y int16, s string, c color.RGBA) {
	if f.Face == nil || s == "" {
		return
	}
	tinyfont.WriteLine(d, f.Face, x, y+f.Ascent, s, c)
}

// DrawTextRight draws s right-aligned against x, top at y.
func (d *Display) DrawTextRight(f Font, x, y int16, s string, c color.RGBA) {
	d.DrawText(f, x-f.TextWidth(s), y, s, c)
}

// DrawTextCentered centers s inside the w x h box at (x, y).
func (d *Display) DrawTextCentered(f Font, x, y, w, h int16, s string, c color.RGBA) {
	tw := f.TextWidth(s)
	d.DrawText(f, x+(w-tw)/2, y+(h-f.Height)/2, s, c)
}
