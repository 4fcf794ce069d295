// Package gfx draws into a hal.Framebuffer through the tinygo drivers
// Displayer interface, so tinyfont and tinyterm can render onto it.
package gfx

import (
	"image/color"

	"abacus/hal"

	"tinygo.org/x/drivers"
)

// Display is a rectangular view of a framebuffer. Coordinates are relative to
// the view origin and clipped to its bounds.
type Display struct {
	fb hal.Framebuffer

	x0, y0 int
	w, h   int
}

// New returns a Display covering the whole framebuffer.
func New(fb hal.Framebuffer) *Display {
	if fb == nil {
		return &Display{}
	}
	return &Display{fb: fb, w: fb.Width(), h: fb.Height()}
}

// Sub returns a view of the w x h rectangle at (x, y), clipped to d.
func (d *Display) Sub(x, y, w, h int) *Display {
	x0 := clampInt(x, 0, d.w)
	y0 := clampInt(y, 0, d.h)
	x1 := clampInt(x+w, 0, d.w)
	y1 := clampInt(y+h, 0, d.h)
	return &Display{fb: d.fb, x0: d.x0 + x0, y0: d.y0 + y0, w: x1 - x0, h: y1 - y0}
}

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.w), int16(d.h)
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.w || iy < 0 || iy >= d.h {
		return
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	off := (d.y0+iy)*d.fb.StrideBytes() + (d.x0+ix)*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	x0 := clampInt(int(x), 0, d.w)
	y0 := clampInt(int(y), 0, d.h)
	x1 := clampInt(int(x)+int(width), 0, d.w)
	y1 := clampInt(int(y)+int(height), 0, d.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := (d.y0 + py) * stride
		for px := x0; px < x1; px++ {
			off := row + (d.x0+px)*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// SetScroll is a no-op; framebuffers have no hardware scroll.
func (d *Display) SetScroll(line int16) {}

func (d *Display) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
