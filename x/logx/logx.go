// Package logx writes tagged console lines ("[keypad] press 5") to a
// swappable writer. The platform bootstrap may point Output at a UART.
package logx

import (
	"io"
	"sync"

	"keypad-motor-go/x/conv"
)

// Output receives one Write per line. Defaults to the runtime console.
var Output io.Writer = console{}

var mu sync.Mutex

type console struct{}

func (console) Write(p []byte) (int, error) {
	print(string(p))
	return len(p), nil
}

// Println writes "[tag] part part ...\n".
func Println(tag string, parts ...string) {
	n := len(tag) + 3
	for _, p := range parts {
		n += len(p) + 1
	}
	b := make([]byte, 0, n)
	b = append(b, '[')
	b = append(b, tag...)
	b = append(b, ']')
	for _, p := range parts {
		b = append(b, ' ')
		b = append(b, p...)
	}
	b = append(b, '\n')

	mu.Lock()
	_, _ = Output.Write(b)
	mu.Unlock()
}

// Int formats a signed integer.
func Int(n int64) string {
	var buf [20]byte
	return string(conv.Itoa(buf[:], n))
}

// Uint formats an unsigned integer.
func Uint(n uint64) string {
	var buf [20]byte
	return string(conv.Utoa(buf[:], n))
}

// Hex8 formats a byte as 0xNN.
func Hex8(n uint8) string {
	var buf [2]byte
	return "0x" + string(conv.U8Hex(buf[:], n))
}

// Hex16 formats a half-word as 0xNNNN.
func Hex16(n uint16) string {
	var buf [4]byte
	return "0x" + string(conv.U16Hex(buf[:], n))
}
