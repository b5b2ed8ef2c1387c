package controller

import (
	"keypad-motor-go/errcode"
	"keypad-motor-go/hal/halcore"
	"keypad-motor-go/services/config"
	"keypad-motor-go/services/display"
	"keypad-motor-go/services/motor"
	"keypad-motor-go/services/scanner"
	"keypad-motor-go/types"
	"keypad-motor-go/x/logx"
)

// System is the booted firmware: every service wired to one board.
type System struct {
	Scanner *scanner.Scanner
	Display *display.Display
	Motor   *motor.Engine
	Loop    *Loop
}

// Boot validates cfg, parks the motor low, arms the keypad interrupt and
// lights the boot pattern, in that order. pub may be nil.
func Boot(b halcore.Board, cfg types.Config, pub Emitter) (*System, error) {
	cfg = config.WithDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if b.Lines == nil || b.IRQ == nil || b.LEDs == nil || b.Timer == nil || b.Delay == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "boot", Msg: "incomplete board"}
	}

	period := config.PeriodCounts(cfg)
	eng, err := motor.New(b.Timer, period)
	if err != nil {
		return nil, err
	}
	if err := eng.Init(); err != nil {
		return nil, err
	}
	logx.Println("boot", "motor period="+logx.Uint(uint64(period)), "step="+logx.Uint(uint64(eng.Lookup().Values()[0])))

	sc := scanner.New(b.Lines, b.IRQ, b.Delay)
	if err := sc.Start(); err != nil {
		return nil, errcode.Wrap(errcode.HWNotReady, "boot.keypad", err)
	}

	disp := display.New(b.LEDs)
	disp.Init()
	logx.Println("boot", "ready")

	return &System{
		Scanner: sc,
		Display: disp,
		Motor:   eng,
		Loop:    NewLoop(sc.Pending(), disp, eng, b.Delay, pub, cfg.PollInterval),
	}, nil
}
