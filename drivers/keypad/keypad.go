// Package keypad holds the wiring constants of a 4x4 matrix keypad on an
// 8-line bus and the decode from a captured raw code to a key symbol.
//
// Bus layout (one bit per line):
//
//	bit:   7    6    5    4  |  3    2    1    0
//	      row0 row1 row2 row3 | col0 col1 col2 col3   (physical, top-left = 0,0)
//
//	row0:  1  2  3  A
//	row1:  4  5  6  B
//	row2:  7  8  9  C
//	row3:  *  0  #  F
//
// Both halves are captured active-low: a pressed key pulls its row line low
// while the columns drive, and its column line low while the rows drive.
package keypad

// RawCode is the unprocessed 16-bit capture: bits 7..4 row lines,
// bits 3..0 column lines, both active-low.
type RawCode uint16

// Symbol is the logical key value in [0,15].
type Symbol uint8

const (
	// RowMask selects the row half of the bus.
	RowMask uint8 = 0xF0
	// ColMask selects the column half of the bus.
	ColMask uint8 = 0x0F

	Rows = 4
	Cols = 4

	// MaxDuty is the highest symbol that maps to a motor duty index.
	MaxDuty Symbol = 10
)

// Nibble bit positions as seen after inversion.
const (
	bit0 = 1 << iota
	bit1
	bit2
	bit3
)

// Rows returns the row nibble (still active-low).
func (c RawCode) Rows() uint8 { return uint8(c>>4) & 0x0F }

// Cols returns the column nibble (still active-low).
func (c RawCode) Cols() uint8 { return uint8(c) & 0x0F }

// Compose builds a raw code from the two bus reads taken by the scanner.
func Compose(rowRead, colRead uint8) RawCode {
	return RawCode(rowRead&RowMask) | RawCode(colRead&ColMask)
}

// Encode returns the raw code a single press at physical (row, col)
// produces. Out-of-range positions yield the idle code 0xFF.
func Encode(row, col int) RawCode {
	code := RawCode(0xFF)
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return code
	}
	code &^= RawCode(1) << (7 - row)
	code &^= RawCode(1) << (3 - col)
	return code
}

var labels = [16]string{
	"0", "1", "2", "3", "4", "5", "6", "7",
	"8", "9", "A", "B", "C", "F", "*", "#",
}

// Label returns the printed legend of a symbol.
func Label(s Symbol) string {
	if int(s) >= len(labels) {
		return "?"
	}
	return labels[s]
}

// String implements fmt.Stringer.
func (s Symbol) String() string { return Label(s) }

// IsDuty reports whether s selects a motor duty index.
func (s Symbol) IsDuty() bool { return s <= MaxDuty }

// Locate returns the physical position of the key printed with label.
func Locate(label string) (row, col int, ok bool) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if Label(Decode(Encode(r, c))) == label {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
