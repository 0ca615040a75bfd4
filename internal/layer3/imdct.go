package layer3

import "math"

// IMDCT cosine banks: 18 spectral lines onto 36 time samples for long
// blocks, 6 onto 12 for each short window. ISO/IEC 11172-3 section
// 2.4.3.4.10.3.
var (
	cosN12 [6][12]float32
	cosN36 [18][36]float32
)

// The four block windows: normal, start, short and stop. The short
// entry holds the 12-point window; the others cover all 36 samples.
var imdctWindows [4][36]float32

func init() {
	for m := 0; m < 6; m++ {
		for p := 0; p < 12; p++ {
			cosN12[m][p] = float32(math.Cos(math.Pi / 24 * float64((2*p+7)*(2*m+1))))
		}
	}
	for m := 0; m < 18; m++ {
		for p := 0; p < 36; p++ {
			cosN36[m][p] = float32(math.Cos(math.Pi / 72 * float64((2*p+19)*(2*m+1))))
		}
	}

	for i := 0; i < 36; i++ {
		imdctWindows[0][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}
	for i := 0; i < 36; i++ {
		switch {
		case i < 18:
			imdctWindows[1][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
		case i < 24:
			imdctWindows[1][i] = 1.0
		case i < 30:
			imdctWindows[1][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5 - 18)))
		default:
			imdctWindows[1][i] = 0.0
		}
	}
	for i := 0; i < 12; i++ {
		imdctWindows[2][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5)))
	}
	for i := 0; i < 36; i++ {
		switch {
		case i < 6:
			imdctWindows[3][i] = 0.0
		case i < 12:
			imdctWindows[3][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5 - 6)))
		case i < 18:
			imdctWindows[3][i] = 1.0
		default:
			imdctWindows[3][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
		}
	}
}

// imdctWin transforms the 18 spectral lines of one subband into 36
// windowed time samples. Short blocks run three overlapping 12-point
// transforms offset by 6 samples each.
func imdctWin(in []float32, blockType int, out *[36]float32) {
	for i := range out {
		out[i] = 0
	}
	if blockType == 2 {
		for w := 0; w < 3; w++ {
			for p := 0; p < 12; p++ {
				var sum float32
				for m := 0; m < 6; m++ {
					sum += in[w+3*m] * cosN12[m][p]
				}
				out[6*w+p+6] += sum * imdctWindows[2][p]
			}
		}
		return
	}
	win := &imdctWindows[blockType]
	for p := 0; p < 36; p++ {
		var sum float32
		for m := 0; m < 18; m++ {
			sum += in[m] * cosN36[m][p]
		}
		out[p] = sum * win[p]
	}
}

// hybrid runs the IMDCT over all 32 subbands of one granule and
// overlap-adds with the previous granule's tail kept in store. In a
// mixed block the two lowest subbands use the normal long window.
func (d *Decoder) hybrid(g *granule, ch int, xr *[576]float32) {
	var rawout [36]float32
	for sb := 0; sb < 32; sb++ {
		bt := g.blockType
		if g.windowSwitching && g.mixedBlock && sb < 2 {
			bt = 0
		}
		imdctWin(xr[sb*18:sb*18+18], bt, &rawout)
		for i := 0; i < 18; i++ {
			xr[sb*18+i] = rawout[i] + d.store[ch][sb][i]
			d.store[ch][sb][i] = rawout[i+18]
		}
	}
}

// frequencyInversion compensates the polyphase filterbank's decimation
// by negating every odd time sample of every odd subband.
func frequencyInversion(xr *[576]float32) {
	for sb := 1; sb < 32; sb += 2 {
		for i := 1; i < 18; i += 2 {
			xr[sb*18+i] = -xr[sb*18+i]
		}
	}
}
