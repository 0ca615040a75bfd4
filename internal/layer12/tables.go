package layer12

import "math"

// quantizerSpec describes one subband quantizer class: the number of
// steps, whether three consecutive samples share one grouped codeword,
// and the codeword width in bits.
//
// Reference: ISO/IEC 11172-3 tables 3-B.2 and 3-B.4
type quantizerSpec struct {
	levels int
	group  bool
	bits   uint
}

var quantTab = [17]quantizerSpec{
	{3, true, 5},
	{5, true, 7},
	{7, false, 3},
	{9, true, 10},
	{15, false, 4},
	{31, false, 5},
	{63, false, 6},
	{127, false, 7},
	{255, false, 8},
	{511, false, 9},
	{1023, false, 10},
	{2047, false, 11},
	{4095, false, 12},
	{8191, false, 13},
	{16383, false, 14},
	{32767, false, 15},
	{65535, false, 16},
}

// Quantizer lookup, step 1: channel mode and bitrate index select a
// bitrate class (0 low, 1 mid, 2 high).
var quantLutStep1 = [2][15]byte{
	// 32, 48, 56, 64, 80, 96,112,128,160,192,224,256,320,384 <- kbit/s
	{0, 0, 0, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2}, // mono
	// 16, 24, 28, 32, 40, 48, 56, 64, 80, 96,112,128,160,192 <- kbit/s/ch
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 2, 2, 2, 2, 2}, // stereo
}

// Allocation table classes. The low 6 bits carry the subband limit,
// bit 6 selects the high-rate row set of quantLutStep3.
const (
	quantTabA = 27 | 64 // table 3-B.2a: high-rate, sblimit = 27
	quantTabB = 30 | 64 // table 3-B.2b: high-rate, sblimit = 30
	quantTabC = 8       // table 3-B.2c:  low-rate, sblimit =  8
	quantTabD = 12      // table 3-B.2d:  low-rate, sblimit = 12
)

// Quantizer lookup, step 2: bitrate class and sample rate pick the
// allocation table.
var quantLutStep2 = [3][3]byte{
	// 44.1 kHz, 48 kHz, 32 kHz
	{quantTabC, quantTabC, quantTabD}, // 32 - 48 kbit/s/ch
	{quantTabA, quantTabA, quantTabA}, // 56 - 80 kbit/s/ch
	{quantTabB, quantTabA, quantTabB}, // 96+  kbit/s/ch
}

// Quantizer lookup, step 3: per-subband allocation field width (upper
// 4 bits) and quantLutStep4 row (lower 4 bits).
var quantLutStep3 = [3][]byte{
	// Low-rate table (3-B.2c and 3-B.2d)
	{
		0x44, 0x44,
		0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34,
	},
	// High-rate table (3-B.2a and 3-B.2b)
	{
		0x43, 0x43, 0x43,
		0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42,
		0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31,
		0x20, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20,
	},
	// Lower sampling frequency table (ISO 13818-3 table B.1)
	{
		0x45, 0x45, 0x45, 0x45,
		0x34, 0x34, 0x34, 0x34, 0x34, 0x34, 0x34,
		0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24,
		0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24,
	},
}

// Quantizer lookup, step 4: allocation value to quantTab index plus
// one, 0 meaning no bits allocated.
var quantLutStep4 = [6][16]byte{
	{0, 1, 2, 17},
	{0, 1, 2, 3, 4, 5, 6, 17},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 17},
	{0, 1, 3, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17},
	{0, 1, 2, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
}

// scaleFactors[i] = 2 * 2^(-i/3), the Layer I/II scale factor values of
// table 3-B.1. Index 63 is reserved and decodes to zero.
var scaleFactors [64]float32

// dequantC and dequantD hold the requantization constants C and D of
// table 3-B.4, keyed by quantTab index: with nb the codeword width of
// one sample, C = 2^nb/levels and D = 1 - (levels-1)/2^nb.
var dequantC, dequantD [17]float32

// fracShift[i] is nb-1 for the fraction mapping of codes to -1..1.
var fracShift [17]uint

func init() {
	for i := 0; i < 63; i++ {
		scaleFactors[i] = float32(2.0 * math.Pow(2.0, -float64(i)/3.0))
	}

	for i, q := range quantTab {
		// Smallest nb with 2^nb > levels.
		nb := uint(1)
		for 1<<nb < q.levels+1 {
			nb++
		}
		fracShift[i] = nb - 1
		dequantC[i] = float32(float64(int(1)<<nb) / float64(q.levels))
		dequantD[i] = float32(1.0 - float64(q.levels-1)/float64(int(1)<<nb))
	}
}
