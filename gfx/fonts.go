package gfx

import (
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	// Large is used for the calculator readout.
	Large = Font{Face: &freemono.Bold12pt7b, Ascent: 17, Height: 24}
	// Medium is used for button labels.
	Medium = Font{Face: &freemono.Bold9pt7b, Ascent: 12, Height: 18}
	// Small is used for the tape, status lines and the panic screen.
	Small = Font{Face: &proggy.TinySZ8pt7b, Ascent: 9, Height: 13}
)
