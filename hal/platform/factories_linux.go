//go:build linux && !(rp2040 || rp2350)

package platform

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/stianeikeland/go-rpio"

	"keypad-motor-go/errcode"
	"keypad-motor-go/hal/halcore"
	"keypad-motor-go/hal/platform/setups"
	"keypad-motor-go/types"
	"keypad-motor-go/x/logx"
	"keypad-motor-go/x/mathx"
)

// senseInterval is how often the sense line is sampled. The BCM GPIO block
// has no user-space interrupt, so falling edges are found by polling.
const senseInterval = 200 * time.Microsecond

// RPiBoard is a Raspberry Pi driven through /dev/gpiomem.
type RPiBoard struct {
	halcore.Board
	irq *rpiIRQ
}

// NewRPiBoard maps the GPIO block and builds the peripherals described by
// plan. Close releases them.
func NewRPiBoard(plan setups.Plan, cfg types.Config) (*RPiBoard, error) {
	if plan.Expander != nil {
		return nil, &errcode.E{C: errcode.Unsupported, Op: "board.leds", Msg: "expander on raspberry pi"}
	}
	if err := rpio.Open(); err != nil {
		return nil, errcode.Wrap(errcode.HWNotReady, "board.open", err)
	}

	fail := func(err error) (*RPiBoard, error) {
		_ = rpio.Close()
		return nil, err
	}

	bus := &halcore.PinBus{}
	for i, n := range plan.Lines {
		p, ok := rpiPinByNumber(n)
		if !ok {
			return fail(&errcode.E{C: errcode.UnknownPin, Op: "board.lines", Msg: "BCM" + logx.Int(int64(n))})
		}
		bus.Pins[i] = p
	}

	leds := &halcore.PinLEDs{}
	for i, n := range plan.LEDs {
		p, ok := rpiPinByNumber(n)
		if !ok {
			return fail(&errcode.E{C: errcode.UnknownPin, Op: "board.leds", Msg: "BCM" + logx.Int(int64(n))})
		}
		leds.Pins[i] = p
	}
	if err := leds.Init(); err != nil {
		return fail(err)
	}

	sense, ok := rpiPinByNumber(plan.Sense)
	if !ok {
		return fail(&errcode.E{C: errcode.UnknownPin, Op: "board.sense"})
	}
	_ = sense.ConfigureInput(plan.SensePull)

	motor, ok := rpiPinByNumber(plan.Motor)
	if !ok {
		return fail(&errcode.E{C: errcode.UnknownPin, Op: "board.motor"})
	}

	irq := newRPiIRQ(sense.p)
	b := &RPiBoard{
		Board: halcore.Board{
			Lines: bus,
			IRQ:   irq,
			LEDs:  leds,
			Timer: &rpiTimer{pin: motor.p, clockHz: cfg.TimerClockHz},
			Delay: busyWait{d: time.Duration(cfg.SettleSpins) * time.Microsecond},
		},
		irq: irq,
	}
	return b, nil
}

// Close stops the sense poller and unmaps the GPIO block.
func (b *RPiBoard) Close() error {
	b.irq.close()
	return rpio.Close()
}

// ---- GPIO implementation ----

func rpiPinByNumber(n int) (*rpiPin, bool) {
	// BCM GPIO0..GPIO27 are on the header.
	if n < 0 || n > 27 {
		return nil, false
	}
	return &rpiPin{p: rpio.Pin(n), n: n}, true
}

type rpiPin struct {
	p rpio.Pin
	n int
}

func (r *rpiPin) ConfigureInput(pull halcore.Pull) error {
	r.p.Input()
	switch pull {
	case halcore.PullUp:
		r.p.PullUp()
	case halcore.PullDown:
		r.p.PullDown()
	default:
		r.p.PullOff()
	}
	return nil
}

func (r *rpiPin) ConfigureOutput(initial bool) error {
	r.p.Output()
	r.Set(initial)
	return nil
}

func (r *rpiPin) Set(level bool) {
	if level {
		r.p.High()
	} else {
		r.p.Low()
	}
}

func (r *rpiPin) Get() bool   { return r.p.Read() == rpio.High }
func (r *rpiPin) Number() int { return r.n }

// ---- Sense line interrupt ----

// rpiIRQ emulates the edge interrupt and the global mask with a sampling
// goroutine. While masked an edge is latched and delivered on the first
// sample after Enable.
type rpiIRQ struct {
	pin rpio.Pin

	mu      sync.Mutex
	handler func()

	enabled atomic.Bool
	pending atomic.Bool

	stop chan struct{}
	done chan struct{}
}

func newRPiIRQ(pin rpio.Pin) *rpiIRQ {
	q := &rpiIRQ{pin: pin, stop: make(chan struct{}), done: make(chan struct{})}
	go q.poll()
	return q
}

func (q *rpiIRQ) OnFallingEdge(handler func()) error {
	q.mu.Lock()
	q.handler = handler
	q.mu.Unlock()
	return nil
}

func (q *rpiIRQ) ClearPending() { q.pending.Store(false) }
func (q *rpiIRQ) Enable()       { q.enabled.Store(true) }
func (q *rpiIRQ) Disable()      { q.enabled.Store(false) }

func (q *rpiIRQ) poll() {
	defer close(q.done)
	tick := time.NewTicker(senseInterval)
	defer tick.Stop()

	prev := q.pin.Read()
	for {
		select {
		case <-q.stop:
			return
		case <-tick.C:
		}
		level := q.pin.Read()
		if prev == rpio.High && level == rpio.Low {
			q.pending.Store(true)
		}
		prev = level

		if q.enabled.Load() && q.pending.Swap(false) {
			q.mu.Lock()
			h := q.handler
			q.mu.Unlock()
			if h != nil {
				h()
			}
		}
	}
}

func (q *rpiIRQ) close() {
	close(q.stop)
	<-q.done
}

// ---- PWM timer ----

// rpiTimer drives the motor from a hardware PWM channel clocked at the
// count clock, so compare and period counts are written unchanged.
// GPIO12/13/18/19 carry PWM0/PWM1.
type rpiTimer struct {
	pin     rpio.Pin
	clockHz uint32

	cycle   uint32 // period + 1
	compare uint32
	running bool
	pwmMode bool
}

func (t *rpiTimer) ConfigurePeriod(counts uint32) error {
	switch t.pin {
	case 12, 13, 18, 19:
	default:
		return &errcode.E{C: errcode.Unsupported, Op: "timer.period", Msg: "pin has no hardware pwm"}
	}
	if t.clockHz == 0 {
		return errcode.InvalidPeriod
	}
	t.cycle = counts + 1
	return nil
}

func (t *rpiTimer) SetCompare(counts uint32) {
	t.compare = mathx.Clamp(counts, 0, t.cycle)
	t.write()
}

func (t *rpiTimer) Enable() {
	t.running = true
	t.write()
}

func (t *rpiTimer) Disable() {
	t.running = false
	t.write()
}

func (t *rpiTimer) SetOutputMode(m halcore.OutputMode) {
	switch m {
	case halcore.OutputPWM:
		t.pin.Pwm()
		t.pin.Freq(int(t.clockHz))
		t.pwmMode = true
		t.write()
	case halcore.OutputHigh:
		t.pwmMode = false
		t.pin.Output()
		t.pin.High()
	default:
		t.pwmMode = false
		t.pin.Output()
		t.pin.Low()
	}
}

// write pushes the current compare into the channel; a stopped timer
// holds the output low.
func (t *rpiTimer) write() {
	if !t.pwmMode || t.cycle == 0 {
		return
	}
	duty := t.compare
	if !t.running {
		duty = 0
	}
	t.pin.DutyCycle(duty, t.cycle)
}

// ---- Settle delay ----

type busyWait struct{ d time.Duration }

func (w busyWait) Settle() {
	start := time.Now()
	for time.Since(start) < w.d {
	}
}
