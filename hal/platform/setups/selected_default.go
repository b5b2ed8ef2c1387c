//go:build !pico_expander

package setups

var Selected = PicoDefault
