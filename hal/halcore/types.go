package halcore

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// ---- Keypad bus ----

// LineMode is the drive/pull configuration applied to a group of bus lines.
type LineMode uint8

const (
	LineOutputLow LineMode = iota
	LineInputPullUp
	LineInputPullDown
)

// Lines is the 8-line keypad bus. Bit n of a mask or reading is line n.
type Lines interface {
	Configure(mask uint8, mode LineMode) error
	// ReadLines returns the current level of every line; output lines
	// read back their driven level.
	ReadLines() uint8
}

// EdgeIRQ is the "any key" sense line interrupt and the global
// interrupt mask.
type EdgeIRQ interface {
	OnFallingEdge(handler func()) error
	// ClearPending discards an edge latched while interrupts were masked.
	ClearPending()
	Enable()
	Disable()
}

// LEDBank writes the low 8 bits verbatim to the output bank.
type LEDBank interface {
	Render(v uint8)
}

// OutputMode selects how the motor pin is driven.
type OutputMode uint8

const (
	OutputLow OutputMode = iota
	OutputHigh
	OutputPWM
)

// Timer is the PWM timer behind the motor output. Counts are ticks of the
// timer's count clock.
type Timer interface {
	ConfigurePeriod(counts uint32) error
	SetCompare(counts uint32)
	Enable()
	Disable()
	SetOutputMode(m OutputMode)
}

// Settler is a fixed busy wait that does not yield.
type Settler interface {
	Settle()
}

// Board bundles the peripherals one firmware image drives.
type Board struct {
	Lines Lines
	IRQ   EdgeIRQ
	LEDs  LEDBank
	Timer Timer
	Delay Settler
}

// Util
func LineModeToString(m LineMode) string {
	switch m {
	case LineOutputLow:
		return "output_low"
	case LineInputPullUp:
		return "input_pullup"
	case LineInputPullDown:
		return "input_pulldown"
	default:
		return "unknown"
	}
}

func OutputModeToString(m OutputMode) string {
	switch m {
	case OutputLow:
		return "low"
	case OutputHigh:
		return "high"
	case OutputPWM:
		return "pwm"
	default:
		return "unknown"
	}
}
