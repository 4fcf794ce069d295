package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"abacus/gfx"
	"abacus/hal"
	"abacus/kernel"
)

func installPanicHandler(h hal.HAL, headless bool) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}
		if headless {
			return
		}
		if disp := h.Display(); disp != nil {
			drawPanic(disp.Framebuffer(), lines)
		}
		// Freeze the panicking task; the window keeps showing the report.
		select {}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"calculator panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func drawPanic(fb hal.Framebuffer, lines []string) {
	if fb == nil {
		return
	}
	fb.ClearRGB(255, 255, 255)

	font := gfx.Small
	d := gfx.New(fb)
	fg := color.RGBA{A: 255}

	cols := 1
	if cw := int(font.TextWidth("M")); cw > 0 {
		cols = max(1, fb.Width()/cw)
	}
	maxY := int16(fb.Height())

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+font.Height > maxY {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			d.DrawText(font, 0, y, chunk, fg)
			y += font.Height
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

// takeRunes splits s after at most n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
