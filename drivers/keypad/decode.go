package keypad

// Decode maps a raw capture to a key symbol.
//
// The checks are ordered and the bottom-row override runs after the
// column/row arithmetic, so it replaces whatever the first columns produced.
// Multi-key captures resolve to the first matching bit; a capture with no
// bits set decodes to 0, the same as the "0" key.
func Decode(code RawCode) Symbol {
	rows := ^code.Rows() & 0x0F
	cols := ^code.Cols() & 0x0F

	var out Symbol
	switch {
	case cols&bit3 != 0:
		out = 1
	case cols&bit2 != 0:
		out = 2
	case cols&bit1 != 0:
		out = 3
	case cols&bit0 != 0:
		// Rightmost column: A, B, C, F down the rows.
		out = 10
		switch {
		case rows&bit3 != 0:
		case rows&bit2 != 0:
			out += 1
		case rows&bit1 != 0:
			out += 2
		case rows&bit0 != 0:
			out += 3
		}
		return out
	}

	switch {
	case rows&bit3 != 0:
	case rows&bit2 != 0:
		out += 3
	case rows&bit1 != 0:
		out += 6
	}

	if rows&bit0 != 0 {
		switch {
		case cols&bit3 != 0:
			out = 14
		case cols&bit2 != 0:
			out = 0
		case cols&bit1 != 0:
			out = 15
		}
	}
	return out
}
