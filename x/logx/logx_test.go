package logx

import (
	"bytes"
	"testing"
)

func TestPrintlnFormatsTaggedLine(t *testing.T) {
	var buf bytes.Buffer
	old := Output
	Output = &buf
	t.Cleanup(func() { Output = old })

	Println("keypad", "raw="+Hex16(0x007E), "sym="+Int(10))
	Println("boot")

	want := "[keypad] raw=0x007E sym=10\n[boot]\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatters(t *testing.T) {
	if Hex8(0xFF) != "0xFF" || Uint(2096) != "2096" || Int(-3) != "-3" {
		t.Fatal("formatter mismatch")
	}
}
