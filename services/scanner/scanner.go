// Package scanner captures keypad presses from the sense-line interrupt.
//
// The eight bus lines serve both halves of the matrix. At rest the column
// lines drive low and the row lines sense with pull-ups, so a press pulls
// its row low and the sense line falls. The handler then reads the rows,
// swaps the roles, settles, reads the columns and puts the bus back.
package scanner

import (
	"sync/atomic"

	"keypad-motor-go/drivers/keypad"
	"keypad-motor-go/hal/halcore"
)

// Stats is a snapshot of the capture counters.
type Stats struct {
	Captures uint32 // codes handed to the main loop
	Drops    uint32 // codes lost because one was outstanding
	Faults   uint32 // line reconfigurations that failed
}

type Scanner struct {
	lines halcore.Lines
	irq   halcore.EdgeIRQ
	delay halcore.Settler

	pend Pending

	captures atomic.Uint32
	faults   atomic.Uint32
}

func New(lines halcore.Lines, irq halcore.EdgeIRQ, delay halcore.Settler) *Scanner {
	return &Scanner{lines: lines, irq: irq, delay: delay}
}

// Start puts the bus in its resting configuration, installs the edge
// handler and unmasks interrupts.
func (s *Scanner) Start() error {
	s.irq.Disable()
	if err := s.restore(); err != nil {
		return err
	}
	if err := s.irq.OnFallingEdge(s.handleEdge); err != nil {
		return err
	}
	s.irq.ClearPending()
	s.irq.Enable()
	return nil
}

// Stop removes the handler. Interrupts are left masked, also when the
// handler could not be removed.
func (s *Scanner) Stop() error {
	s.irq.Disable()
	return s.irq.OnFallingEdge(nil)
}

// Pending exposes the hand-off slot to the main loop.
func (s *Scanner) Pending() *Pending { return &s.pend }

func (s *Scanner) Stats() Stats {
	return Stats{
		Captures: s.captures.Load(),
		Drops:    s.pend.Drops(),
		Faults:   s.faults.Load(),
	}
}

// handleEdge runs in interrupt context with no nesting: a press arriving
// while it runs is latched by the hardware and discarded by ClearPending.
func (s *Scanner) handleEdge() {
	s.irq.Disable()
	code, ok := s.capture()
	s.irq.ClearPending()
	if ok && s.pend.Offer(code) {
		s.captures.Add(1)
	}
	s.irq.Enable()
}

// capture reads both halves of the matrix. The resting configuration is
// restored on every path out.
func (s *Scanner) capture() (code keypad.RawCode, ok bool) {
	defer func() {
		if err := s.restore(); err != nil {
			s.faults.Add(1)
		}
	}()

	rows := s.lines.ReadLines() & keypad.RowMask

	if err := s.swap(); err != nil {
		s.faults.Add(1)
		return 0, false
	}
	s.delay.Settle()
	cols := s.lines.ReadLines() & keypad.ColMask

	return keypad.Compose(rows, cols), true
}

// restore: columns drive low, rows sense.
func (s *Scanner) restore() error {
	err := s.lines.Configure(keypad.ColMask, halcore.LineOutputLow)
	if e := s.lines.Configure(keypad.RowMask, halcore.LineInputPullUp); err == nil {
		err = e
	}
	return err
}

// swap: rows drive low, columns sense.
func (s *Scanner) swap() error {
	if err := s.lines.Configure(keypad.RowMask, halcore.LineOutputLow); err != nil {
		return err
	}
	return s.lines.Configure(keypad.ColMask, halcore.LineInputPullUp)
}
