// Package motor drives the DC motor output from a keypad duty index.
//
// Index 0 parks the pin low and index 10 drives it high, both with the
// timer stopped; indices 1..9 hand the pin to the timer with the compare
// value from the lookup table.
package motor

import (
	"keypad-motor-go/drivers/keypad"
	"keypad-motor-go/errcode"
	"keypad-motor-go/hal/halcore"
	"keypad-motor-go/x/mathx"
)

// State is the last configuration applied to the timer and pin.
type State struct {
	Duty    uint8
	Mode    halcore.OutputMode
	Compare uint32
	Enabled bool
}

type Engine struct {
	timer halcore.Timer
	lut   Lookup
	state State
}

// New builds the lookup table for the given timer period. The hardware is
// not touched until Init.
func New(t halcore.Timer, periodCounts uint32) (*Engine, error) {
	if t == nil {
		return nil, errcode.InvalidParams
	}
	lut, err := BuildLookup(periodCounts)
	if err != nil {
		return nil, err
	}
	return &Engine{timer: t, lut: lut}, nil
}

// Init programs the period and parks the output low with the timer off.
func (e *Engine) Init() error {
	if err := e.timer.ConfigurePeriod(e.lut.Period()); err != nil {
		return errcode.Wrap(errcode.HWNotReady, "motor.init", err)
	}
	e.timer.SetCompare(0)
	e.timer.SetOutputMode(halcore.OutputLow)
	e.timer.Disable()
	e.state = State{Mode: halcore.OutputLow}
	return nil
}

// Apply drives the output for duty index s. Repeating the same index
// re-applies the same configuration. Indices above 10 are rejected and
// leave the hardware as it was.
func (e *Engine) Apply(s keypad.Symbol) error {
	if !mathx.Between(s, 0, keypad.MaxDuty) {
		return errcode.InvalidDutyIndex
	}
	switch s {
	case 0:
		e.timer.SetOutputMode(halcore.OutputLow)
		e.timer.Disable()
		e.state = State{Duty: 0, Mode: halcore.OutputLow}
	case keypad.MaxDuty:
		e.timer.SetOutputMode(halcore.OutputHigh)
		e.timer.Disable()
		e.state = State{Duty: uint8(s), Mode: halcore.OutputHigh}
	default:
		cmp, _ := e.lut.Compare(uint8(s))
		e.timer.SetOutputMode(halcore.OutputPWM)
		e.timer.SetCompare(cmp)
		e.timer.Enable()
		e.state = State{Duty: uint8(s), Mode: halcore.OutputPWM, Compare: cmp, Enabled: true}
	}
	return nil
}

// State returns the last applied configuration.
func (e *Engine) State() State { return e.state }

// Lookup returns the compare table.
func (e *Engine) Lookup() Lookup { return e.lut }
