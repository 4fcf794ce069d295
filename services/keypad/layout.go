package keypad

import (
	"image"

	"abacus/accum"
)

// Button is one key of the on-screen grid.
type Button struct {
	Cmd  accum.Command
	Rect image.Rectangle
}

// Label returns the text drawn on the button. The fonts carry 7-bit ASCII
// only, so symbols fall back to plain characters.
func (b Button) Label() string {
	switch b.Cmd.Kind {
	case accum.KindToggleSign:
		return "+/-"
	case accum.KindOperator:
		switch b.Cmd.Op {
		case accum.OpSubtract:
			return "-"
		case accum.OpMultiply:
			return "x"
		case accum.OpDivide:
			return "/"
		}
	}
	return b.Cmd.String()
}

const (
	gridCols = 4
	gridRows = 5
	// buttonGap is the spacing between buttons in pixels.
	buttonGap = 2
)

// grid mirrors the classic four-function layout. A zero Command continues the
// button to its left.
var grid = [gridRows][gridCols]accum.Command{
	{{Kind: accum.KindClear}, {Kind: accum.KindToggleSign}, {Kind: accum.KindPercent}, accum.OperatorCommand(accum.OpDivide)},
	{accum.DigitCommand('7'), accum.DigitCommand('8'), accum.DigitCommand('9'), accum.OperatorCommand(accum.OpMultiply)},
	{accum.DigitCommand('4'), accum.DigitCommand('5'), accum.DigitCommand('6'), accum.OperatorCommand(accum.OpSubtract)},
	{accum.DigitCommand('1'), accum.DigitCommand('2'), accum.DigitCommand('3'), accum.OperatorCommand(accum.OpAdd)},
	{accum.DigitCommand('0'), {}, {Kind: accum.KindDecimalPoint}, {Kind: accum.KindEquals}},
}

// Layout places the readout and the button grid inside a rectangle.
type Layout struct {
	readout image.Rectangle
	buttons []Button
}

// NewLayout lays out the calculator inside r: the readout takes the top sixth,
// the grid the rest.
func NewLayout(r image.Rectangle) Layout {
	rowH := r.Dy() / (gridRows + 1)
	colW := r.Dx() / gridCols

	l := Layout{
		readout: image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+rowH),
	}
	for row := 0; row < gridRows; row++ {
		y0 := r.Min.Y + (row+1)*rowH
		for col := 0; col < gridCols; col++ {
			cmd := grid[row][col]
			if cmd.Kind == accum.KindNone {
				continue
			}
			span := 1
			for col+span < gridCols && grid[row][col+span].Kind == accum.KindNone {
				span++
			}
			x0 := r.Min.X + col*colW
			rect := image.Rect(x0, y0, x0+span*colW, y0+rowH).Inset(buttonGap / 2)
			l.buttons = append(l.buttons, Button{Cmd: cmd, Rect: rect})
		}
	}
	return l
}

// Readout returns the rectangle reserved for the display string.
func (l Layout) Readout() image.Rectangle { return l.readout }

// Buttons returns every button in row-major order.
func (l Layout) Buttons() []Button { return l.buttons }

// Hit returns the button under (x, y).
func (l Layout) Hit(x, y int) (Button, bool) {
	p := image.Pt(x, y)
	for _, b := range l.buttons {
		if p.In(b.Rect) {
			return b, true
		}
	}
	return Button{}, false
}

// Find returns the button that issues cmd.
func (l Layout) Find(cmd accum.Command) (Button, bool) {
	for _, b := range l.buttons {
		if b.Cmd == cmd {
			return b, true
		}
	}
	return Button{}, false
}
