//go:build linux && !(rp2040 || rp2350)

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"keypad-motor-go/bus"
	"keypad-motor-go/hal/platform"
	"keypad-motor-go/hal/platform/setups"
	"keypad-motor-go/services/config"
	"keypad-motor-go/services/controller"
	"keypad-motor-go/services/heartbeat"
	"keypad-motor-go/types"
	"keypad-motor-go/x/logx"
)

func main() {
	logx.Output = os.Stderr

	plan := setups.RPiDefault
	logx.Println("main", "boot", plan.Name)

	cfg := config.Default()
	// The Pi waits in microseconds rather than spin iterations.
	cfg.SettleSpins = 20

	board, err := platform.NewRPiBoard(plan, cfg)
	if err != nil {
		logx.Println("main", "board failed:", err.Error())
		os.Exit(1)
	}
	defer board.Close()

	events := bus.NewBus(16)
	sys, err := controller.Boot(board.Board, cfg, events)
	if err != nil {
		logx.Println("main", "boot failed:", err.Error())
		board.Close()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func(sub *bus.Subscription) {
		for ev := range sub.Channel() {
			if mv, ok := ev.Payload.(types.MotorValue); ok {
				logx.Println("motor", mv.Mode, "duty="+logx.Uint(uint64(mv.Duty)))
			}
		}
	}(events.Subscribe(types.KindMotor))
	_ = heartbeat.New(sys.Scanner, 10*time.Second).Start(ctx)

	sys.Loop.Run(ctx)

	if err := sys.Scanner.Stop(); err != nil {
		logx.Println("main", "stop:", err.Error())
	}
	// Leave the motor off.
	_ = sys.Motor.Apply(0)
	logx.Println("main", "bye")
}
