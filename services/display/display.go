// Package display echoes the last decoded symbol on the LED bank. The
// value is written verbatim; there is no segment encoding.
package display

import (
	"sync/atomic"

	"keypad-motor-go/hal/halcore"
)

// BootPattern lights every LED until the first key is decoded.
const BootPattern uint8 = 0xFF

type Display struct {
	leds halcore.LEDBank
	last atomic.Uint32
}

func New(leds halcore.LEDBank) *Display {
	return &Display{leds: leds}
}

// Init shows the boot pattern.
func (d *Display) Init() { d.Render(BootPattern) }

// Render writes v to the bank and remembers it.
func (d *Display) Render(v uint8) {
	d.leds.Render(v)
	d.last.Store(uint32(v))
}

// Last returns the most recently rendered pattern.
func (d *Display) Last() uint8 { return uint8(d.last.Load()) }
