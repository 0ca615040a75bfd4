// Package output provides PCM output conversion.
package output

import "math"

// FloatScale maps the decoder's nominal -1..1 range onto 16-bit PCM.
const FloatScale = float32(32768.0)

// clip16 clips and rounds a float32 to int16 range.
func clip16(sample float32) int16 {
	if sample >= 32767.0 {
		return 32767
	}
	if sample <= -32768.0 {
		return -32768
	}
	// Round to nearest, ties to even
	return int16(math.RoundToEven(float64(sample)))
}

// ToPCM16Bit converts per-channel float32 samples in nominal -1..1
// range to interleaved 16-bit PCM.
//
// With upMatrix set, a single input channel is duplicated onto both
// output channels so the output is always two-channel.
func ToPCM16Bit(left, right []float32, n int, upMatrix bool, out []int16) {
	if upMatrix || right == nil {
		for i := 0; i < n; i++ {
			s := clip16(left[i] * FloatScale)
			out[i*2+0] = s
			out[i*2+1] = s
		}
		return
	}
	for i := 0; i < n; i++ {
		out[i*2+0] = clip16(left[i] * FloatScale)
		out[i*2+1] = clip16(right[i] * FloatScale)
	}
}

// ToPCM16BitMono converts a single channel of float32 samples to
// 16-bit PCM without channel duplication.
func ToPCM16BitMono(in []float32, n int, out []int16) {
	for i := 0; i < n; i++ {
		out[i] = clip16(in[i] * FloatScale)
	}
}

// ToBytes serializes interleaved int16 samples as little-endian bytes.
func ToBytes(samples []int16, out []byte) {
	for i, s := range samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(uint16(s) >> 8)
	}
}
