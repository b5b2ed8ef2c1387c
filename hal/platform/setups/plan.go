package setups

import "keypad-motor-go/hal/halcore"

// Plan specifies the wiring chosen for one board. GPIO numbers follow the
// platform's native scheme (RP2 GP numbers, BCM numbers on a Raspberry Pi).
type Plan struct {
	Name string

	// Lines[n] drives/senses keypad bus line n: 0..3 columns, 4..7 rows.
	Lines [halcore.BusWidth]int

	// Sense is the "any key" falling-edge line.
	Sense     int
	SensePull halcore.Pull

	// LEDs[n] shows bit n of the display. Ignored when Expander is set.
	LEDs     [halcore.BusWidth]int
	Expander *ExpanderPlan

	// Motor is the PWM-capable output pin.
	Motor int

	// Console, when set, carries the log output.
	Console *SerialPlan
}

// ExpanderPlan places the LED bank behind an 8-bit I2C latch.
type ExpanderPlan struct {
	Bus  string // e.g. "i2c0"
	SDA  int
	SCL  int
	Hz   uint32
	Addr uint16
}

// SerialPlan is a UART used for the log console.
type SerialPlan struct {
	ID   string // "uart0" or "uart1"
	TX   int
	RX   int
	Baud uint32
}
