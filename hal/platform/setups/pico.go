package setups

import "keypad-motor-go/hal/halcore"

// PicoDefault mirrors the bench wiring: keypad on GP2..GP9, LEDs on
// GP11..GP18, motor driver on GP20 (PWM slice 2, channel A).
var PicoDefault = Plan{
	Name:      "pico_default",
	Lines:     [halcore.BusWidth]int{2, 3, 4, 5, 6, 7, 8, 9},
	Sense:     10,
	SensePull: halcore.PullDown,
	LEDs:      [halcore.BusWidth]int{11, 12, 13, 14, 15, 16, 17, 18},
	Motor:     20,
	Console:   &SerialPlan{ID: "uart0", TX: 0, RX: 1, Baud: 115200},
}

// PicoExpander moves the LED bank onto a PCF8574-style latch on i2c0.
var PicoExpander = Plan{
	Name:      "pico_expander",
	Lines:     [halcore.BusWidth]int{2, 3, 4, 5, 6, 7, 8, 9},
	Sense:     10,
	SensePull: halcore.PullDown,
	Expander: &ExpanderPlan{
		Bus: "i2c0", SDA: 16, SCL: 17, Hz: 100_000, Addr: 0x20,
	},
	Motor:   20,
	Console: &SerialPlan{ID: "uart0", TX: 0, RX: 1, Baud: 115200},
}
