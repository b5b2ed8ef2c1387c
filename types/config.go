package types

import "time"

// Config carries the operating parameters of the firmware. Wiring lives in
// the board plan, not here.
type Config struct {
	// TimerClockHz is the count clock of the PWM timer.
	TimerClockHz uint32 `json:"timer_clock_hz"`
	// PWMFreqHz is the motor PWM frequency.
	PWMFreqHz uint32 `json:"pwm_freq_hz"`
	// SettleSpins is the length of the busy-wait settle delay: loop
	// iterations on an MCU, microseconds on Linux.
	SettleSpins uint32 `json:"settle_spins"`
	// PollInterval is how long the main loop idles between polls.
	PollInterval time.Duration `json:"poll_interval"`
}
