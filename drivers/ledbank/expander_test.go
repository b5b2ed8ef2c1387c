package ledbank

import (
	"errors"
	"testing"

	"keypad-motor-go/errcode"
)

type fakeI2C struct {
	addr   uint16
	writes [][]byte
	err    error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	f.addr = addr
	f.writes = append(f.writes, append([]byte(nil), w...))
	return nil
}

func TestRenderWritesOneByte(t *testing.T) {
	bus := &fakeI2C{}
	e := New(bus, Config{})

	e.Render(0x5A)

	if bus.addr != DefaultAddress {
		t.Fatalf("addr = %#x, want %#x", bus.addr, DefaultAddress)
	}
	if len(bus.writes) != 1 || len(bus.writes[0]) != 1 || bus.writes[0][0] != 0x5A {
		t.Fatalf("writes = %v", bus.writes)
	}
	if e.Last() != 0x5A {
		t.Fatalf("Last = %#x", e.Last())
	}
}

func TestRenderActiveLowInverts(t *testing.T) {
	bus := &fakeI2C{}
	e := New(bus, Config{Address: 0x27, ActiveLow: true})

	e.Render(0x0F)

	if bus.addr != 0x27 || bus.writes[0][0] != 0xF0 {
		t.Fatalf("addr=%#x writes=%v", bus.addr, bus.writes)
	}
	// Last reports the logical pattern.
	if e.Last() != 0x0F {
		t.Fatalf("Last = %#x", e.Last())
	}
}

func TestRenderFailureIsCounted(t *testing.T) {
	bus := &fakeI2C{}
	e := New(bus, Config{})
	e.Render(0x01)

	bus.err = errors.New("nack")
	e.Render(0x02)
	e.Render(0x03)

	if e.Failures() != 2 {
		t.Fatalf("failures = %d, want 2", e.Failures())
	}
	if e.Last() != 0x01 {
		t.Fatalf("Last = %#x, want the acknowledged pattern", e.Last())
	}
	if errcode.Of(e.Err()) != errcode.HWNotReady {
		t.Fatalf("Err = %v", e.Err())
	}
}

func TestErrNilBeforeFailure(t *testing.T) {
	e := New(&fakeI2C{}, Config{})
	e.Render(0xFF)
	if e.Err() != nil {
		t.Fatalf("Err = %v", e.Err())
	}
}
