// Package controller owns the foreground loop: it takes the outstanding
// key capture, decodes it, shows it on the LEDs and, for duty keys, drives
// the motor.
package controller

import (
	"context"
	"time"

	"keypad-motor-go/drivers/keypad"
	"keypad-motor-go/errcode"
	"keypad-motor-go/hal/halcore"
	"keypad-motor-go/services/display"
	"keypad-motor-go/services/motor"
	"keypad-motor-go/services/scanner"
	"keypad-motor-go/types"
	"keypad-motor-go/x/logx"
	"keypad-motor-go/x/timex"
)

// Emitter receives state updates. Emit must not block; false means the
// update was dropped.
type Emitter interface {
	Emit(ev types.Event) bool
}

type Loop struct {
	pend  *scanner.Pending
	disp  *display.Display
	motor *motor.Engine
	delay halcore.Settler
	pub   Emitter
	poll  time.Duration

	handled uint32
}

func NewLoop(p *scanner.Pending, d *display.Display, m *motor.Engine, delay halcore.Settler, pub Emitter, poll time.Duration) *Loop {
	if poll <= 0 {
		poll = time.Millisecond
	}
	return &Loop{pend: p, disp: d, motor: m, delay: delay, pub: pub, poll: poll}
}

// Step handles the outstanding capture, if any, and reports whether there
// was one. A capture arriving between the read and the clear is lost.
func (l *Loop) Step() bool {
	code, ok := l.pend.Peek()
	if !ok {
		return false
	}

	sym := keypad.Decode(code)
	l.disp.Render(uint8(sym))

	var motorErr error
	if sym.IsDuty() {
		motorErr = l.motor.Apply(sym)
	}

	l.pend.Clear()
	l.handled++

	l.report(code, sym, motorErr)

	// Post-press debounce.
	l.delay.Settle()
	return true
}

// Run polls until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	tick := time.NewTicker(l.poll)
	defer tick.Stop()
	for {
		for l.Step() {
		}
		select {
		case <-ctx.Done():
			logx.Println("ctrl", "stopping after", logx.Uint(uint64(l.handled)), "presses")
			return
		case <-tick.C:
		}
	}
}

// Handled counts processed presses.
func (l *Loop) Handled() uint32 { return l.handled }

func (l *Loop) report(code keypad.RawCode, sym keypad.Symbol, motorErr error) {
	logx.Println("ctrl", "key", keypad.Label(sym), "raw="+logx.Hex16(uint16(code)), "sym="+logx.Uint(uint64(sym)))

	if l.pub == nil {
		if motorErr != nil {
			logx.Println("ctrl", "motor apply failed:", motorErr.Error())
		}
		return
	}
	ts := timex.NowMs()
	l.pub.Emit(types.Event{
		Kind:    types.KindKeypad,
		Payload: types.KeyPress{Raw: uint16(code), Symbol: uint8(sym), Label: keypad.Label(sym)},
		TSms:    ts,
	})
	l.pub.Emit(types.Event{
		Kind:    types.KindDisplay,
		Payload: types.DisplayValue{Pattern: l.disp.Last()},
		TSms:    ts,
	})
	if !sym.IsDuty() {
		return
	}
	if motorErr != nil {
		logx.Println("ctrl", "motor apply failed:", motorErr.Error())
		l.pub.Emit(types.Event{Kind: types.KindMotor, TSms: ts, Err: string(errcode.Of(motorErr))})
		return
	}
	st := l.motor.State()
	l.pub.Emit(types.Event{
		Kind: types.KindMotor,
		Payload: types.MotorValue{
			Duty:    st.Duty,
			Mode:    halcore.OutputModeToString(st.Mode),
			Compare: st.Compare,
			Enabled: st.Enabled,
		},
		TSms: ts,
	})
}
