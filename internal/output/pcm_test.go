package output

import "testing"

func TestClip16(t *testing.T) {
	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, 1},
		{-1, -1},
		{32766.4, 32766},
		{32767.0, 32767},
		{40000, 32767},
		{-32768.0, -32768},
		{-50000, -32768},
		{0.5, 0},  // ties to even
		{1.5, 2},  // ties to even
		{-0.5, 0}, // ties to even
	}
	for _, tt := range tests {
		if got := clip16(tt.in); got != tt.want {
			t.Errorf("clip16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToPCM16Bit_Stereo(t *testing.T) {
	left := []float32{0, 0.5, -0.5}
	right := []float32{1, -1, 0.25}
	out := make([]int16, 6)
	ToPCM16Bit(left, right, 3, false, out)

	want := []int16{0, 32767, 16384, -32768, -16384, 8192}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestToPCM16Bit_MonoUpmix(t *testing.T) {
	left := []float32{0.25, -0.25}
	out := make([]int16, 4)
	ToPCM16Bit(left, nil, 2, true, out)

	want := []int16{8192, 8192, -8192, -8192}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestToPCM16BitMono(t *testing.T) {
	in := []float32{0.25, -0.25, 1}
	out := make([]int16, 3)
	ToPCM16BitMono(in, 3, out)

	want := []int16{8192, -8192, 32767}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestToBytes(t *testing.T) {
	samples := []int16{0x1234, -2}
	out := make([]byte, 4)
	ToBytes(samples, out)
	want := []byte{0x34, 0x12, 0xFE, 0xFF}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %#02x, want %#02x", i, out[i], want[i])
		}
	}
}
