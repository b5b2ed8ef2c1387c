//go:build !(rp2040 || rp2350)

package platform

import (
	"sync"

	"keypad-motor-go/drivers/keypad"
	"keypad-motor-go/hal/halcore"
)

// ----------------------------- Keypad (host) ---------------------------------

// SimKeypad models a 4x4 matrix keypad on the 8-line bus together with the
// "any key" sense line and the interrupt mask. It implements halcore.Lines
// and halcore.EdgeIRQ for host-side tests and the simulator.
//
// A pressed key at (row, col) joins bus line 7-row to line 3-col. A line
// configured as a pulled-up input reads low when a chain of pressed keys
// connects it to a line driving low.
type SimKeypad struct {
	mu      sync.Mutex
	modes   [halcore.BusWidth]halcore.LineMode
	pressed [keypad.Rows][keypad.Cols]bool

	handler func()
	enabled bool
	pending bool // edge latched while masked

	configures int
	edges      int
}

var (
	_ halcore.Lines   = (*SimKeypad)(nil)
	_ halcore.EdgeIRQ = (*SimKeypad)(nil)
)

func NewSimKeypad() *SimKeypad {
	k := &SimKeypad{}
	for i := range k.modes {
		k.modes[i] = halcore.LineInputPullUp
	}
	return k
}

func (k *SimKeypad) Configure(mask uint8, mode halcore.LineMode) error {
	k.mu.Lock()
	for i := 0; i < halcore.BusWidth; i++ {
		if mask&(1<<i) != 0 {
			k.modes[i] = mode
		}
	}
	k.configures++
	k.mu.Unlock()
	return nil
}

func (k *SimKeypad) ReadLines() uint8 {
	k.mu.Lock()
	defer k.mu.Unlock()

	// Lines reachable from a low driver through pressed keys read low.
	var low uint8
	for i, m := range k.modes {
		if m == halcore.LineOutputLow {
			low |= 1 << i
		}
	}
	for changed := true; changed; {
		changed = false
		for r := 0; r < keypad.Rows; r++ {
			for c := 0; c < keypad.Cols; c++ {
				if !k.pressed[r][c] {
					continue
				}
				pair := uint8(1)<<(7-r) | uint8(1)<<(3-c)
				if low&pair != 0 && low&pair != pair {
					low |= pair
					changed = true
				}
			}
		}
	}

	var v uint8
	for i, m := range k.modes {
		if m == halcore.LineInputPullUp && low&(1<<i) == 0 {
			v |= 1 << i
		}
	}
	return v
}

func (k *SimKeypad) OnFallingEdge(handler func()) error {
	k.mu.Lock()
	k.handler = handler
	k.mu.Unlock()
	return nil
}

func (k *SimKeypad) ClearPending() {
	k.mu.Lock()
	k.pending = false
	k.mu.Unlock()
}

func (k *SimKeypad) Disable() {
	k.mu.Lock()
	k.enabled = false
	k.mu.Unlock()
}

// Enable unmasks interrupts; an edge latched while masked fires now.
func (k *SimKeypad) Enable() {
	k.mu.Lock()
	k.enabled = true
	fire := k.pending && k.handler != nil
	k.pending = false
	h := k.handler
	k.mu.Unlock()
	if fire {
		h()
	}
}

// Press closes the key at (row, col). The sense line falls only when no
// other key is already held. The handler runs on the caller's goroutine.
func (k *SimKeypad) Press(row, col int) {
	k.mu.Lock()
	if row < 0 || row >= keypad.Rows || col < 0 || col >= keypad.Cols {
		k.mu.Unlock()
		return
	}
	first := !k.anyPressedLocked()
	k.pressed[row][col] = true
	if !first {
		k.mu.Unlock()
		return
	}
	k.edges++
	h := k.handler
	if h == nil || !k.enabled {
		k.pending = h != nil
		k.mu.Unlock()
		return
	}
	k.mu.Unlock()
	h() // ISR-style callback
}

// Release opens the key at (row, col).
func (k *SimKeypad) Release(row, col int) {
	k.mu.Lock()
	if row >= 0 && row < keypad.Rows && col >= 0 && col < keypad.Cols {
		k.pressed[row][col] = false
	}
	k.mu.Unlock()
}

// Tap presses and releases one key.
func (k *SimKeypad) Tap(row, col int) {
	k.Press(row, col)
	k.Release(row, col)
}

// Modes returns the current configuration of every bus line.
func (k *SimKeypad) Modes() [halcore.BusWidth]halcore.LineMode {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.modes
}

// Enabled reports whether interrupts are unmasked.
func (k *SimKeypad) Enabled() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.enabled
}

// Configures counts Configure calls.
func (k *SimKeypad) Configures() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.configures
}

// Edges counts falling edges on the sense line.
func (k *SimKeypad) Edges() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.edges
}

func (k *SimKeypad) anyPressedLocked() bool {
	for r := range k.pressed {
		for c := range k.pressed[r] {
			if k.pressed[r][c] {
				return true
			}
		}
	}
	return false
}

// ----------------------------- LEDs (host) -----------------------------------

// SimLEDs records every pattern written to the bank.
type SimLEDs struct {
	mu      sync.Mutex
	history []uint8
}

func (l *SimLEDs) Render(v uint8) {
	l.mu.Lock()
	l.history = append(l.history, v)
	l.mu.Unlock()
}

// Value returns the pattern on the bank and whether anything was written.
func (l *SimLEDs) Value() (uint8, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.history) == 0 {
		return 0, false
	}
	return l.history[len(l.history)-1], true
}

func (l *SimLEDs) History() []uint8 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]uint8(nil), l.history...)
}

// ----------------------------- Timer (host) ----------------------------------

// TimerState is the register-level view of SimTimer.
type TimerState struct {
	Period  uint32
	Compare uint32
	Enabled bool
	Mode    halcore.OutputMode
}

// SimTimer holds the timer registers and the motor pin function.
type SimTimer struct {
	mu     sync.Mutex
	st     TimerState
	writes int
}

func (t *SimTimer) ConfigurePeriod(counts uint32) error {
	t.mu.Lock()
	t.st.Period = counts
	t.writes++
	t.mu.Unlock()
	return nil
}

func (t *SimTimer) SetCompare(counts uint32) {
	t.mu.Lock()
	t.st.Compare = counts
	t.writes++
	t.mu.Unlock()
}

func (t *SimTimer) Enable()  { t.set(func(s *TimerState) { s.Enabled = true }) }
func (t *SimTimer) Disable() { t.set(func(s *TimerState) { s.Enabled = false }) }

func (t *SimTimer) SetOutputMode(m halcore.OutputMode) {
	t.set(func(s *TimerState) { s.Mode = m })
}

func (t *SimTimer) set(f func(*TimerState)) {
	t.mu.Lock()
	f(&t.st)
	t.writes++
	t.mu.Unlock()
}

func (t *SimTimer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st
}

// Duty reports the output duty in percent as seen on the pin.
func (t *SimTimer) Duty() uint32 {
	s := t.State()
	switch {
	case s.Mode == halcore.OutputHigh:
		return 100
	case s.Mode == halcore.OutputPWM && s.Enabled && s.Period > 0:
		return s.Compare * 100 / (s.Period + 1)
	default:
		return 0
	}
}

// ----------------------------- Delay (host) ----------------------------------

// SimSettler counts settle calls and runs an optional hook inside each,
// standing in for whatever happens on the wires during the wait.
type SimSettler struct {
	mu     sync.Mutex
	count  int
	onWait func(n int)
}

func (s *SimSettler) Settle() {
	s.mu.Lock()
	s.count++
	n, hook := s.count, s.onWait
	s.mu.Unlock()
	if hook != nil {
		hook(n)
	}
}

// OnSettle installs a hook called with the 1-based settle count.
func (s *SimSettler) OnSettle(f func(n int)) {
	s.mu.Lock()
	s.onWait = f
	s.mu.Unlock()
}

func (s *SimSettler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// ----------------------------- Board (host) ----------------------------------

// SimBoard is a complete simulated peripheral set.
type SimBoard struct {
	Keypad *SimKeypad
	LEDs   *SimLEDs
	Timer  *SimTimer
	Delay  *SimSettler
}

func NewSimBoard() *SimBoard {
	return &SimBoard{
		Keypad: NewSimKeypad(),
		LEDs:   &SimLEDs{},
		Timer:  &SimTimer{},
		Delay:  &SimSettler{},
	}
}

// Board exposes the simulated peripherals through the HAL interfaces.
func (b *SimBoard) Board() halcore.Board {
	return halcore.Board{
		Lines: b.Keypad,
		IRQ:   b.Keypad,
		LEDs:  b.LEDs,
		Timer: b.Timer,
		Delay: b.Delay,
	}
}
