// Package synthesis implements the polyphase synthesis filter bank
// shared by all three layers: 32 subband samples in, 32 PCM samples
// out per call, with 1024 samples of rolling history per channel.
//
// Reference: ISO/IEC 11172-3 section 2.4.3.2 and figure A.2
package synthesis

import "math"

// nMatrix[i][k] = cos((16+i)(2k+1)pi/64), the matrixing operation that
// turns 32 subband samples into 64 intermediate values.
var nMatrix [64][32]float32

// dWindow is the synthesis window (table B.3). The stored constants are
// scaled by 32768; init rescales them to unity full scale.
var dWindow [512]float32

func init() {
	for i := 0; i < 64; i++ {
		for k := 0; k < 32; k++ {
			nMatrix[i][k] = float32(math.Cos(float64((16+i)*(2*k+1)) * math.Pi / 64))
		}
	}
	for i, w := range dCoeff {
		dWindow[i] = w / 32768
	}
}

// Filter holds the synthesis state for one channel.
type Filter struct {
	v    [1024]float32 // rolling history of matrixed values
	vPos int           // ring position of the newest 64-value block
}

// NewFilter returns a filter with zeroed history.
func NewFilter() *Filter {
	return &Filter{}
}

// Reset clears the history, e.g. after a stream discontinuity.
func (f *Filter) Reset() {
	f.v = [1024]float32{}
	f.vPos = 0
}

// Process runs one granule step: it consumes 32 subband samples and
// appends 32 PCM samples (nominal range -1..1) to out[:32].
func (f *Filter) Process(s *[32]float32, out []float32) {
	_ = out[31]

	// Shift the ring and matrix the new subband samples in.
	f.vPos = (f.vPos - 64) & 1023
	for i := 0; i < 64; i++ {
		var sum float32
		n := &nMatrix[i]
		for k := 0; k < 32; k++ {
			sum += n[k] * s[k]
		}
		f.v[(f.vPos+i)&1023] = sum
	}

	// Build the output samples by windowing 16 taps of alternating
	// 64-value blocks from the history.
	for j := 0; j < 32; j++ {
		var sum float32
		for i := 0; i < 8; i++ {
			sum += dWindow[64*i+j] * f.v[(f.vPos+128*i+j)&1023]
			sum += dWindow[64*i+32+j] * f.v[(f.vPos+128*i+96+j)&1023]
		}
		out[j] = sum
	}
}
