package scanner

import (
	"sync/atomic"

	"keypad-motor-go/drivers/keypad"
)

const slotFull = 1 << 16

// Pending is the single-slot hand-off between the edge handler (writer)
// and the main loop (reader). A capture offered while the slot is full is
// dropped and counted; nothing is queued behind it.
type Pending struct {
	slot  atomic.Uint32
	drops atomic.Uint32
}

// Offer stores c if the slot is empty. It never blocks.
func (p *Pending) Offer(c keypad.RawCode) bool {
	if p.slot.CompareAndSwap(0, slotFull|uint32(c)) {
		return true
	}
	p.drops.Add(1)
	return false
}

// Peek returns the outstanding capture without consuming it.
func (p *Pending) Peek() (keypad.RawCode, bool) {
	v := p.slot.Load()
	if v&slotFull == 0 {
		return 0, false
	}
	return keypad.RawCode(v), true
}

// Clear empties the slot. Only the main loop calls it.
func (p *Pending) Clear() { p.slot.Store(0) }

// Drops counts captures lost because the slot was full.
func (p *Pending) Drops() uint32 { return p.drops.Load() }
