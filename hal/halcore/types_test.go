package halcore

import (
	"testing"

	"keypad-motor-go/errcode"
)

func TestModeToString(t *testing.T) {
	if LineModeToString(LineOutputLow) != "output_low" ||
		LineModeToString(LineInputPullUp) != "input_pullup" ||
		LineModeToString(LineInputPullDown) != "input_pulldown" ||
		LineModeToString(LineMode(9)) != "unknown" {
		t.Fatal("LineModeToString mapping incorrect")
	}
	if OutputModeToString(OutputLow) != "low" ||
		OutputModeToString(OutputHigh) != "high" ||
		OutputModeToString(OutputPWM) != "pwm" {
		t.Fatal("OutputModeToString mapping incorrect")
	}
}

// fakePin records its configuration; inputs read back pulled level.
type fakePin struct {
	n      int
	out    bool
	pull   Pull
	level  bool
	cfgErr error
}

func (p *fakePin) ConfigureInput(pull Pull) error {
	if p.cfgErr != nil {
		return p.cfgErr
	}
	p.out, p.pull = false, pull
	p.level = pull == PullUp
	return nil
}
func (p *fakePin) ConfigureOutput(initial bool) error {
	if p.cfgErr != nil {
		return p.cfgErr
	}
	p.out, p.level = true, initial
	return nil
}
func (p *fakePin) Set(b bool)  { p.level = b }
func (p *fakePin) Get() bool   { return p.level }
func (p *fakePin) Number() int { return p.n }

func newFakeBus() (*PinBus, [BusWidth]*fakePin) {
	var b PinBus
	var pins [BusWidth]*fakePin
	for i := range pins {
		pins[i] = &fakePin{n: 10 + i}
		b.Pins[i] = pins[i]
	}
	return &b, pins
}

func TestPinBusConfigureAndRead(t *testing.T) {
	b, pins := newFakeBus()
	if err := b.Configure(0x0F, LineOutputLow); err != nil {
		t.Fatalf("Configure outputs: %v", err)
	}
	if err := b.Configure(0xF0, LineInputPullUp); err != nil {
		t.Fatalf("Configure inputs: %v", err)
	}
	for i, p := range pins {
		wantOut := i < 4
		if p.out != wantOut {
			t.Fatalf("line %d out=%v, want %v", i, p.out, wantOut)
		}
	}
	if got := b.ReadLines(); got != 0xF0 {
		t.Fatalf("ReadLines = %#x, want 0xf0", got)
	}
	pins[6].level = false // key pulls row line low
	if got := b.ReadLines(); got != 0xB0 {
		t.Fatalf("ReadLines = %#x, want 0xb0", got)
	}
	if err := b.Configure(0x01, LineInputPullDown); err != nil || pins[0].pull != PullDown {
		t.Fatalf("pull-down not applied: err=%v pull=%d", err, pins[0].pull)
	}
}

func TestPinBusConfigureErrors(t *testing.T) {
	b, pins := newFakeBus()
	b.Pins[2] = nil
	if err := b.Configure(0x0F, LineOutputLow); err != errcode.UnknownPin {
		t.Fatalf("missing pin: got %v, want unknown_pin", err)
	}
	// The remaining lines were still configured.
	if !pins[3].out || !pins[0].out {
		t.Fatal("remaining lines not configured after error")
	}
	pins[5].cfgErr = errcode.Error
	if err := b.Configure(0xF0, LineInputPullUp); err != errcode.Error {
		t.Fatalf("pin error not surfaced: %v", err)
	}
	if err := b.Configure(0x80, LineMode(7)); err != errcode.InvalidParams {
		t.Fatalf("bad mode: got %v", err)
	}
}

func TestPinLEDsRender(t *testing.T) {
	var l PinLEDs
	var pins [BusWidth]*fakePin
	for i := range pins {
		pins[i] = &fakePin{n: i}
		l.Pins[i] = pins[i]
	}
	if err := l.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	l.Render(0xA5)
	for i, p := range pins {
		want := 0xA5&(1<<i) != 0
		if p.level != want {
			t.Fatalf("led %d = %v, want %v", i, p.level, want)
		}
	}
	l.Pins[7] = nil
	if err := l.Init(); err != errcode.UnknownPin {
		t.Fatalf("Init with missing pin: %v", err)
	}
}
