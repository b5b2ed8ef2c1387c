// Package ledbank drives the 8-LED display bank through a PCF8574-style
// I2C output latch. Each Render is a single one-byte write; the latch holds
// the pattern until the next one.
//
// Quasi-bidirectional latches sink far more current than they source, so
// LEDs are usually wired to VCC and lit by a low bit. Set ActiveLow for that
// wiring.
package ledbank

import (
	"sync/atomic"

	"tinygo.org/x/drivers"

	"keypad-motor-go/errcode"
)

// DefaultAddress is a PCF8574 with A2..A0 tied low.
const DefaultAddress = 0x20

type Config struct {
	// Address defaults to 0x20 if zero.
	Address   uint16
	ActiveLow bool
}

// Expander is an 8-bit LED bank behind an I2C latch.
type Expander struct {
	bus       drivers.I2C
	addr      uint16
	activeLow bool

	buf      [1]byte
	last     atomic.Uint32
	failures atomic.Uint32
	lastErr  atomic.Value // error
}

// New creates the bank. The I2C bus must already be configured; the latch
// is not touched until the first Render.
func New(bus drivers.I2C, cfg Config) *Expander {
	addr := cfg.Address
	if addr == 0 {
		addr = DefaultAddress
	}
	return &Expander{bus: bus, addr: addr, activeLow: cfg.ActiveLow}
}

// Render writes v to the latch. Render has no failure mode for its callers:
// a failed write is counted and the previous pattern stays lit.
func (e *Expander) Render(v uint8) {
	out := v
	if e.activeLow {
		out = ^v
	}
	e.buf[0] = out
	if err := e.bus.Tx(e.addr, e.buf[:], nil); err != nil {
		e.failures.Add(1)
		e.lastErr.Store(errcode.Wrap(errcode.HWNotReady, "ledbank.render", err))
		return
	}
	e.last.Store(uint32(v))
}

// Last returns the last pattern the latch acknowledged.
func (e *Expander) Last() uint8 { return uint8(e.last.Load()) }

// Failures counts writes the latch did not acknowledge.
func (e *Expander) Failures() uint32 { return e.failures.Load() }

// Err returns the most recent write failure, or nil.
func (e *Expander) Err() error {
	if v := e.lastErr.Load(); v != nil {
		return v.(error)
	}
	return nil
}
