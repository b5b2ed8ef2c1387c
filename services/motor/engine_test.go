package motor

import (
	"math"
	"reflect"
	"testing"

	"keypad-motor-go/drivers/keypad"
	"keypad-motor-go/errcode"
	"keypad-motor-go/hal/halcore"
)

// fakeTimer records the register-level state and every call.
type fakeTimer struct {
	period  uint32
	compare uint32
	enabled bool
	mode    halcore.OutputMode
	calls   []string
	cfgErr  error
}

func (f *fakeTimer) ConfigurePeriod(c uint32) error {
	f.calls = append(f.calls, "period")
	if f.cfgErr != nil {
		return f.cfgErr
	}
	f.period = c
	return nil
}
func (f *fakeTimer) SetCompare(c uint32) { f.calls = append(f.calls, "compare"); f.compare = c }
func (f *fakeTimer) Enable()             { f.calls = append(f.calls, "enable"); f.enabled = true }
func (f *fakeTimer) Disable()            { f.calls = append(f.calls, "disable"); f.enabled = false }
func (f *fakeTimer) SetOutputMode(m halcore.OutputMode) {
	f.calls = append(f.calls, "mode:"+halcore.OutputModeToString(m))
	f.mode = m
}

type hwState struct {
	period, compare uint32
	enabled         bool
	mode            halcore.OutputMode
}

func (f *fakeTimer) snapshot() hwState {
	return hwState{f.period, f.compare, f.enabled, f.mode}
}

func TestBuildLookup(t *testing.T) {
	for _, period := range []uint32{10, 11, 99, 2096, 65535, 1 << 24, math.MaxUint32 - 1, math.MaxUint32} {
		l, err := BuildLookup(period)
		if err != nil {
			t.Fatalf("period %d: %v", period, err)
		}
		base := uint32((uint64(period) + 1) / 10)
		v := l.Values()
		if v[0] != base {
			t.Fatalf("period %d: lookup[0] = %d, want %d", period, v[0], base)
		}
		for k := 1; k < LookupLen; k++ {
			if v[k] != v[k-1]+base {
				t.Fatalf("period %d: lookup[%d] = %d, want %d", period, k, v[k], v[k-1]+base)
			}
		}
		if v[8] != 9*base || v[8] >= period {
			t.Fatalf("period %d: lookup[8] = %d must equal 9*base and stay below period", period, v[8])
		}
	}
}

func TestBuildLookupBenchValues(t *testing.T) {
	l, err := BuildLookup(2096)
	if err != nil {
		t.Fatal(err)
	}
	want := [LookupLen]uint32{209, 418, 627, 836, 1045, 1254, 1463, 1672, 1881}
	if got := l.Values(); got != want {
		t.Fatalf("lookup = %v, want %v", got, want)
	}
	if _, ok := l.Compare(0); ok {
		t.Fatal("Compare(0) should have no entry")
	}
	if _, ok := l.Compare(10); ok {
		t.Fatal("Compare(10) should have no entry")
	}
}

func TestBuildLookupFullRangePeriod(t *testing.T) {
	l, err := BuildLookup(math.MaxUint32)
	if err != nil {
		t.Fatal(err)
	}
	if v := l.Values(); v[0] != 429496729 || v[8] != 9*429496729 {
		t.Fatalf("lookup = %v", v)
	}
}

func TestBuildLookupRejectsShortPeriod(t *testing.T) {
	if _, err := BuildLookup(9); errcode.Of(err) != errcode.InvalidPeriod {
		t.Fatalf("got %v, want invalid_period", err)
	}
}

func newEngine(t *testing.T) (*Engine, *fakeTimer) {
	t.Helper()
	ft := &fakeTimer{}
	e, err := New(ft, 2096)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	ft.calls = nil
	return e, ft
}

func TestInitParksLow(t *testing.T) {
	ft := &fakeTimer{enabled: true, mode: halcore.OutputPWM}
	e, err := New(ft, 2096)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	if ft.period != 2096 || ft.enabled || ft.mode != halcore.OutputLow {
		t.Fatalf("after Init: %+v", ft.snapshot())
	}
}

func TestInitSurfacesTimerError(t *testing.T) {
	ft := &fakeTimer{cfgErr: errcode.Error}
	e, _ := New(ft, 2096)
	if err := e.Init(); errcode.Of(err) != errcode.HWNotReady {
		t.Fatalf("got %v, want hw_not_ready", err)
	}
}

func TestApplyPolicies(t *testing.T) {
	e, ft := newEngine(t)

	if err := e.Apply(0); err != nil {
		t.Fatal(err)
	}
	if ft.enabled || ft.mode != halcore.OutputLow {
		t.Fatalf("Apply(0): %+v", ft.snapshot())
	}

	if err := e.Apply(10); err != nil {
		t.Fatal(err)
	}
	if ft.enabled || ft.mode != halcore.OutputHigh {
		t.Fatalf("Apply(10): %+v", ft.snapshot())
	}

	if err := e.Apply(5); err != nil {
		t.Fatal(err)
	}
	want, _ := e.Lookup().Compare(5)
	if !ft.enabled || ft.mode != halcore.OutputPWM || ft.compare != want || want != 1045 {
		t.Fatalf("Apply(5): %+v, want compare %d", ft.snapshot(), want)
	}
	if s := e.State(); s.Duty != 5 || s.Compare != 1045 || !s.Enabled || s.Mode != halcore.OutputPWM {
		t.Fatalf("State after Apply(5): %+v", s)
	}
}

func TestApplyOrderMatchesPinThenTimer(t *testing.T) {
	e, ft := newEngine(t)
	_ = e.Apply(3)
	if want := []string{"mode:pwm", "compare", "enable"}; !reflect.DeepEqual(ft.calls, want) {
		t.Fatalf("calls = %v, want %v", ft.calls, want)
	}
	ft.calls = nil
	_ = e.Apply(0)
	if want := []string{"mode:low", "disable"}; !reflect.DeepEqual(ft.calls, want) {
		t.Fatalf("calls = %v, want %v", ft.calls, want)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	e, ft := newEngine(t)
	for _, s := range []keypad.Symbol{0, 5, 10} {
		_ = e.Apply(s)
		first := ft.snapshot()
		_ = e.Apply(s)
		if second := ft.snapshot(); second != first {
			t.Fatalf("Apply(%d) twice: %+v then %+v", s, first, second)
		}
	}
}

func TestApplyRejectsOutOfRange(t *testing.T) {
	e, ft := newEngine(t)
	_ = e.Apply(7)
	before := ft.snapshot()
	ft.calls = nil
	for _, s := range []keypad.Symbol{11, 14, 15} {
		if err := e.Apply(s); err != errcode.InvalidDutyIndex {
			t.Fatalf("Apply(%d): got %v, want invalid_duty_index", s, err)
		}
	}
	if len(ft.calls) != 0 || ft.snapshot() != before {
		t.Fatalf("hardware touched by rejected index: calls=%v", ft.calls)
	}
	if e.State().Duty != 7 {
		t.Fatalf("state changed: %+v", e.State())
	}
}

func TestNewRejectsNilTimer(t *testing.T) {
	if _, err := New(nil, 2096); err != errcode.InvalidParams {
		t.Fatalf("got %v", err)
	}
}
