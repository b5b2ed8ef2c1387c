//go:build !(rp2040 || rp2350)

// keypad-sim runs the firmware against the simulated board and replays a
// key sequence given on the command line, e.g. "keypad-sim 1 5 A 0 B".
package main

import (
	"os"

	"keypad-motor-go/bus"
	"keypad-motor-go/drivers/keypad"
	"keypad-motor-go/hal/platform"
	"keypad-motor-go/services/config"
	"keypad-motor-go/services/controller"
	"keypad-motor-go/services/heartbeat"
	"keypad-motor-go/types"
	"keypad-motor-go/x/logx"
)

var defaultScript = []string{"1", "5", "9", "A", "B", "0", "*", "#"}

func main() {
	logx.Output = os.Stdout

	script := os.Args[1:]
	if len(script) == 0 {
		script = defaultScript
	}

	sb := platform.NewSimBoard()
	events := bus.NewBus(32)
	all := events.SubscribeAll()

	sys, err := controller.Boot(sb.Board(), config.Default(), events)
	if err != nil {
		logx.Println("sim", "boot failed:", err.Error())
		os.Exit(1)
	}

	for _, label := range script {
		row, col, ok := keypad.Locate(label)
		if !ok {
			logx.Println("sim", "no key", label)
			continue
		}
		sb.Keypad.Tap(row, col)
		// One poll of the main loop per key keeps the replay deterministic.
		sys.Loop.Step()
		drain(all)

		leds, _ := sb.LEDs.Value()
		logx.Println("sim", "key", label,
			"leds="+logx.Hex8(leds),
			"motor="+logx.Uint(uint64(sb.Timer.Duty()))+"%")
	}

	heartbeat.New(sys.Scanner, 0).Beat()
}

func drain(sub *bus.Subscription) {
	for {
		select {
		case ev := <-sub.Channel():
			if ev.Kind == types.KindMotor && ev.Err == "" {
				mv := ev.Payload.(types.MotorValue)
				logx.Println("sim", "motor", mv.Mode, "cmp="+logx.Uint(uint64(mv.Compare)))
			}
		default:
			return
		}
	}
}
