//go:build rp2040 || rp2350

package main

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

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
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	plan := setups.Selected
	if c := plan.Console; c != nil {
		openConsole(c)
	}
	logx.Println("main", "boot", plan.Name)

	cfg := config.Default()
	board, err := platform.NewBoard(plan, cfg)
	if err != nil {
		halt("board", err)
	}

	events := bus.NewBus(8)
	sys, err := controller.Boot(board, cfg, events)
	if err != nil {
		halt("boot", err)
	}

	ctx := context.Background()
	go monitorMotor(events.Subscribe(types.KindMotor))
	_ = heartbeat.New(sys.Scanner, 10*time.Second).Start(ctx)

	sys.Loop.Run(ctx)
}

// openConsole moves log output onto a hardware UART.
func openConsole(c *setups.SerialPlan) {
	var u *uartx.UART
	switch c.ID {
	case "uart0":
		u = uartx.UART0
	case "uart1":
		u = uartx.UART1
	default:
		return
	}
	err := u.Configure(uartx.UARTConfig{
		BaudRate: c.Baud,
		TX:       machine.Pin(c.TX),
		RX:       machine.Pin(c.RX),
	})
	if err != nil {
		println("[main] console:", err.Error())
		return
	}
	logx.Output = u
}

func monitorMotor(sub *bus.Subscription) {
	for ev := range sub.Channel() {
		if ev.Err != "" {
			logx.Println("motor", "error", ev.Err)
			continue
		}
		if mv, ok := ev.Payload.(types.MotorValue); ok {
			logx.Println("motor", mv.Mode, "duty="+logx.Uint(uint64(mv.Duty)), "cmp="+logx.Uint(uint64(mv.Compare)))
		}
	}
}

func halt(stage string, err error) {
	for {
		logx.Println("main", stage, "failed:", err.Error())
		time.Sleep(5 * time.Second)
	}
}
