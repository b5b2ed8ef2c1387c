package setups

import "testing"

func TestPlansHaveDistinctPins(t *testing.T) {
	for _, p := range []Plan{PicoDefault, PicoExpander, RPiDefault} {
		seen := map[int]string{}
		claim := func(n int, what string) {
			if prev, ok := seen[n]; ok {
				t.Fatalf("%s: pin %d used by %s and %s", p.Name, n, prev, what)
			}
			seen[n] = what
		}
		for _, n := range p.Lines {
			claim(n, "line")
		}
		claim(p.Sense, "sense")
		claim(p.Motor, "motor")
		if c := p.Console; c != nil {
			claim(c.TX, "console tx")
			claim(c.RX, "console rx")
		}
		if p.Expander != nil {
			claim(p.Expander.SDA, "sda")
			claim(p.Expander.SCL, "scl")
			continue
		}
		for _, n := range p.LEDs {
			claim(n, "led")
		}
	}
}
