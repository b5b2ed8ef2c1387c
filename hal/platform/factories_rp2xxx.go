//go:build rp2040 || rp2350

package platform

import (
	"device/arm"
	"device/rp"
	"machine"
	"runtime/interrupt"

	"keypad-motor-go/drivers/ledbank"
	"keypad-motor-go/errcode"
	"keypad-motor-go/hal/halcore"
	"keypad-motor-go/hal/platform/setups"
	"keypad-motor-go/types"
	"keypad-motor-go/x/logx"
	"keypad-motor-go/x/mathx"
	"keypad-motor-go/x/timex"
)

// NewBoard builds the RP2 peripherals described by plan. Nothing is driven
// until the services initialise them, apart from the LED pins which start
// off.
func NewBoard(plan setups.Plan, cfg types.Config) (halcore.Board, error) {
	var b halcore.Board

	bus := &halcore.PinBus{}
	for i, n := range plan.Lines {
		p, ok := pinByNumber(n)
		if !ok {
			return b, &errcode.E{C: errcode.UnknownPin, Op: "board.lines", Msg: "GP" + logx.Int(int64(n))}
		}
		bus.Pins[i] = p
	}

	sense, ok := pinByNumber(plan.Sense)
	if !ok {
		return b, &errcode.E{C: errcode.UnknownPin, Op: "board.sense"}
	}
	if err := sense.ConfigureInput(plan.SensePull); err != nil {
		return b, err
	}

	leds, err := newLEDs(plan)
	if err != nil {
		return b, err
	}

	motor, ok := pinByNumber(plan.Motor)
	if !ok {
		return b, &errcode.E{C: errcode.UnknownPin, Op: "board.motor"}
	}

	b.Lines = bus
	b.IRQ = &rp2IRQ{pin: sense.p}
	b.LEDs = leds
	b.Timer = newRP2Timer(motor.p, cfg.TimerClockHz)
	b.Delay = spinSettler{n: cfg.SettleSpins}
	return b, nil
}

func newLEDs(plan setups.Plan) (halcore.LEDBank, error) {
	if x := plan.Expander; x != nil {
		var i2c *machine.I2C
		switch x.Bus {
		case "i2c0":
			i2c = machine.I2C0
		case "i2c1":
			i2c = machine.I2C1
		default:
			return nil, &errcode.E{C: errcode.Unsupported, Op: "board.leds", Msg: x.Bus}
		}
		err := i2c.Configure(machine.I2CConfig{
			Frequency: x.Hz,
			SDA:       machine.Pin(x.SDA),
			SCL:       machine.Pin(x.SCL),
		})
		if err != nil {
			return nil, errcode.Wrap(errcode.HWNotReady, "board.leds", err)
		}
		return ledbank.New(i2c, ledbank.Config{Address: x.Addr, ActiveLow: true}), nil
	}

	pl := &halcore.PinLEDs{}
	for i, n := range plan.LEDs {
		p, ok := pinByNumber(n)
		if !ok {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "board.leds", Msg: "GP" + logx.Int(int64(n))}
		}
		pl.Pins[i] = p
	}
	if err := pl.Init(); err != nil {
		return nil, err
	}
	return pl, nil
}

// ---- GPIO implementation ----

// pinByNumber maps logical numbers directly to machine.Pin(n). This
// matches Pico/Pico 2 GP numbering.
func pinByNumber(n int) (*rp2Pin, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// ---- Sense line interrupt ----

// rp2IRQ masks at the core (PRIMASK) so the whole handler runs without
// nesting. Only the edge handler and the main loop at boot touch it.
type rp2IRQ struct {
	pin    machine.Pin
	state  interrupt.State
	masked bool
}

func (q *rp2IRQ) OnFallingEdge(handler func()) error {
	if handler == nil {
		var zero machine.PinChange
		return q.pin.SetInterrupt(zero, nil)
	}
	return q.pin.SetInterrupt(machine.PinFalling, func(machine.Pin) { handler() })
}

// ClearPending acknowledges a falling edge latched in IO_BANK0 while
// masked. The NVIC still takes the interrupt on Restore but the dispatcher
// finds no status and calls nothing.
func (q *rp2IRQ) ClearPending() {
	const edgeLow = 1 << 2
	bit := uint32(edgeLow) << ((uint32(q.pin) & 7) * 4)
	switch uint8(q.pin) >> 3 {
	case 0:
		rp.IO_BANK0.INTR0.Set(bit)
	case 1:
		rp.IO_BANK0.INTR1.Set(bit)
	case 2:
		rp.IO_BANK0.INTR2.Set(bit)
	case 3:
		rp.IO_BANK0.INTR3.Set(bit)
	}
}

func (q *rp2IRQ) Disable() {
	if q.masked {
		return
	}
	q.state = interrupt.Disable()
	q.masked = true
}

func (q *rp2IRQ) Enable() {
	if !q.masked {
		return
	}
	q.masked = false
	interrupt.Restore(q.state)
}

// ---- PWM timer ----

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

// Select controller handle for a given slice number (0..7).
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// rp2Timer presents one PWM slice in the count-clock units the motor engine
// works in. Compare values are rescaled onto the slice's own TOP.
type rp2Timer struct {
	pin     machine.Pin
	ctrl    pwmCtrl
	ch      uint8
	clockHz uint32

	counts  uint32 // requested period in count-clock ticks
	compare uint32
}

func newRP2Timer(pin machine.Pin, clockHz uint32) *rp2Timer {
	return &rp2Timer{
		pin:     pin,
		ctrl:    pwmGroupBySlice(uint8(pin>>1) & 7),
		clockHz: clockHz,
	}
}

func (t *rp2Timer) ConfigurePeriod(counts uint32) error {
	ns := timex.PeriodNs(counts, t.clockHz)
	if err := t.ctrl.Configure(machine.PWMConfig{Period: ns}); err != nil {
		return err
	}
	ch, err := t.ctrl.Channel(t.pin)
	if err != nil {
		return err
	}
	t.ch = ch
	t.counts = counts
	t.ctrl.Enable(false)
	return nil
}

func (t *rp2Timer) SetCompare(counts uint32) {
	t.compare = counts
	if t.counts == 0 {
		return
	}
	top := t.ctrl.Top()
	hw := uint64(counts) * (uint64(top) + 1) / (uint64(t.counts) + 1)
	t.ctrl.Set(t.ch, uint32(mathx.Clamp(hw, 0, uint64(top))))
}

func (t *rp2Timer) Enable()  { t.ctrl.Enable(true) }
func (t *rp2Timer) Disable() { t.ctrl.Enable(false) }

// SetOutputMode hands the pin to the slice or takes it back as a plain
// output at a fixed level.
func (t *rp2Timer) SetOutputMode(m halcore.OutputMode) {
	switch m {
	case halcore.OutputPWM:
		t.pin.Configure(machine.PinConfig{Mode: machine.PinPWM})
	case halcore.OutputHigh:
		t.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		t.pin.High()
	default:
		t.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		t.pin.Low()
	}
}

// ---- Settle delay ----

type spinSettler struct{ n uint32 }

func (s spinSettler) Settle() {
	for i := uint32(0); i < s.n; i++ {
		arm.Asm("nop")
	}
}
