package config

import (
	"time"

	"keypad-motor-go/errcode"
	"keypad-motor-go/types"
)

const (
	// DefaultTimerClockHz is the 2.097 MHz count clock the bench board
	// runs its timers from.
	DefaultTimerClockHz uint32 = 0x0020_0000
	DefaultPWMFreqHz    uint32 = 1000
	// DefaultSettleSpins is a few microseconds on a Cortex-M0+.
	DefaultSettleSpins  uint32 = 50
	DefaultPollInterval        = time.Millisecond

	// MinPeriodCounts keeps every duty step strictly below the full period.
	MinPeriodCounts uint32 = 10
)

// Default returns the bench configuration.
func Default() types.Config {
	return types.Config{
		TimerClockHz: DefaultTimerClockHz,
		PWMFreqHz:    DefaultPWMFreqHz,
		SettleSpins:  DefaultSettleSpins,
		PollInterval: DefaultPollInterval,
	}
}

// WithDefaults fills zero fields from Default.
func WithDefaults(c types.Config) types.Config {
	d := Default()
	if c.TimerClockHz == 0 {
		c.TimerClockHz = d.TimerClockHz
	}
	if c.PWMFreqHz == 0 {
		c.PWMFreqHz = d.PWMFreqHz
	}
	if c.SettleSpins == 0 {
		c.SettleSpins = d.SettleSpins
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	return c
}

// PeriodCounts is the timer auto-reload value: clock/freq - 1.
func PeriodCounts(c types.Config) uint32 {
	if c.PWMFreqHz == 0 || c.TimerClockHz < c.PWMFreqHz {
		return 0
	}
	return c.TimerClockHz/c.PWMFreqHz - 1
}

// Validate reports the first unusable parameter.
func Validate(c types.Config) error {
	if c.PWMFreqHz == 0 || c.TimerClockHz == 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "config", Msg: "zero clock or frequency"}
	}
	if PeriodCounts(c) < MinPeriodCounts {
		return &errcode.E{C: errcode.InvalidPeriod, Op: "config", Msg: "pwm frequency too high for timer clock"}
	}
	if c.PollInterval <= 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "config", Msg: "poll interval must be positive"}
	}
	return nil
}
