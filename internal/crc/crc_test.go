package crc

import "testing"

func TestCRC16_Preset(t *testing.T) {
	c := New()
	if c.Checksum() != 0xFFFF {
		t.Errorf("initial checksum = %#04x, want 0xFFFF", c.Checksum())
	}
}

func TestCRC16_SingleBits(t *testing.T) {
	// Hand-traced single-bit updates from the all-ones preset.
	c := New()
	c.AddBits(0, 1) // msb 1 != bit 0: shift and xor polynomial
	if got := c.Checksum(); got != 0x7FFB {
		t.Errorf("after 0 bit: %#04x, want 0x7ffb", got)
	}

	c.Reset()
	c.AddBits(1, 1) // msb 1 == bit 1: plain shift
	if got := c.Checksum(); got != 0xFFFE {
		t.Errorf("after 1 bit: %#04x, want 0xfffe", got)
	}
}

func TestCRC16_MultiBitMatchesSingleBits(t *testing.T) {
	words := []struct {
		value uint32
		n     uint
	}{
		{0x964, 16},
		{0b1010, 4},
		{0x1FF, 9},
		{0, 12},
	}

	multi := New()
	single := New()
	for _, w := range words {
		multi.AddBits(w.value, w.n)
		for i := w.n; i > 0; i-- {
			single.AddBits(w.value>>(i-1), 1)
		}
	}
	if multi.Checksum() != single.Checksum() {
		t.Errorf("multi-bit feed = %#04x, single-bit feed = %#04x",
			multi.Checksum(), single.Checksum())
	}
}

func TestCRC16_Reset(t *testing.T) {
	c := New()
	c.AddBits(0xDEAD, 16)
	c.Reset()
	if c.Checksum() != 0xFFFF {
		t.Errorf("checksum after Reset = %#04x, want 0xFFFF", c.Checksum())
	}
}
