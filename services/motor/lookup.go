package motor

import (
	"keypad-motor-go/errcode"
)

// LookupLen is the number of PWM duty steps (10%..90%). 0% and 100% are
// driven as plain GPIO levels and have no entry.
const LookupLen = 9

// Lookup holds the timer compare value for duty indices 1..9.
// Built once from the timer period and read-only afterwards.
type Lookup struct {
	period  uint32
	compare [LookupLen]uint32
}

// BuildLookup fills the table in steps of (period+1)/10 counts.
// Periods below 10 counts cannot keep the 90% step under the period.
func BuildLookup(periodCounts uint32) (Lookup, error) {
	if periodCounts < 10 {
		return Lookup{}, &errcode.E{C: errcode.InvalidPeriod, Op: "motor.lookup", Msg: "period below 10 counts"}
	}
	base := uint32((uint64(periodCounts) + 1) / 10)
	l := Lookup{period: periodCounts}
	l.compare[0] = base
	for i := 1; i < LookupLen; i++ {
		l.compare[i] = l.compare[i-1] + base
	}
	return l, nil
}

// Period returns the timer period the table was built for.
func (l Lookup) Period() uint32 { return l.period }

// Compare returns the compare value for duty index 1..9.
func (l Lookup) Compare(duty uint8) (uint32, bool) {
	if duty < 1 || duty > LookupLen {
		return 0, false
	}
	return l.compare[duty-1], true
}

// Values returns a copy of the table.
func (l Lookup) Values() [LookupLen]uint32 { return l.compare }
