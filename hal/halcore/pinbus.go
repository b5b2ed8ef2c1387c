package halcore

import "keypad-motor-go/errcode"

// BusWidth is the number of lines on the keypad bus and LED bank.
const BusWidth = 8

// PinBus implements Lines over individual GPIO pins; Pins[n] is line n.
type PinBus struct {
	Pins [BusWidth]GPIOPin
}

var _ Lines = (*PinBus)(nil)

// Configure applies mode to every line in mask. All selected lines are
// attempted; the first error is returned.
func (b *PinBus) Configure(mask uint8, mode LineMode) error {
	var first error
	for i := 0; i < BusWidth; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		p := b.Pins[i]
		if p == nil {
			if first == nil {
				first = errcode.UnknownPin
			}
			continue
		}
		var err error
		switch mode {
		case LineOutputLow:
			err = p.ConfigureOutput(false)
		case LineInputPullUp:
			err = p.ConfigureInput(PullUp)
		case LineInputPullDown:
			err = p.ConfigureInput(PullDown)
		default:
			err = errcode.InvalidParams
		}
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (b *PinBus) ReadLines() uint8 {
	var v uint8
	for i := 0; i < BusWidth; i++ {
		if p := b.Pins[i]; p != nil && p.Get() {
			v |= 1 << i
		}
	}
	return v
}

// PinLEDs implements LEDBank over eight output pins; Pins[n] shows bit n.
type PinLEDs struct {
	Pins [BusWidth]GPIOPin
}

var _ LEDBank = (*PinLEDs)(nil)

// Init configures every pin as an output, initially off.
func (l *PinLEDs) Init() error {
	for _, p := range l.Pins {
		if p == nil {
			return errcode.UnknownPin
		}
		if err := p.ConfigureOutput(false); err != nil {
			return err
		}
	}
	return nil
}

func (l *PinLEDs) Render(v uint8) {
	for i, p := range l.Pins {
		if p != nil {
			p.Set(v&(1<<i) != 0)
		}
	}
}
