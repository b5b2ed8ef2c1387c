package setups

import "keypad-motor-go/hal/halcore"

// RPiDefault uses BCM numbering; the motor sits on the PWM0 pin.
var RPiDefault = Plan{
	Name:      "rpi_default",
	Lines:     [halcore.BusWidth]int{5, 6, 13, 19, 26, 16, 20, 21},
	Sense:     4,
	SensePull: halcore.PullDown,
	LEDs:      [halcore.BusWidth]int{17, 27, 22, 23, 24, 25, 8, 7},
	Motor:     18,
}
