package layer3

import (
	"math"

	"github.com/llehouerou/go-mpa/internal/header"
	"github.com/llehouerou/go-mpa/internal/tables"
)

// requantize converts one granule's raw Huffman integers into spectral
// values, walking the scale factor bands so each sample picks up its
// band's gain. ISO/IEC 11172-3 section 2.4.3.4.7.1.
func (d *Decoder) requantize(h header.FrameHeader, g *granule, is *[576]int, xr *[576]float32) error {
	sr := h.SamplingRateIndex()
	long, err := tables.LongBands(sr)
	if err != nil {
		return err
	}
	short, err := tables.ShortBands(sr)
	if err != nil {
		return err
	}

	// Only samples below count1 are coded; the rest stay zero.
	n := g.count1
	if n > 576 {
		n = 576
	}
	for i := n; i < 576; i++ {
		xr[i] = 0
	}

	if g.windowSwitching && g.blockType == 2 {
		if g.mixedBlock {
			// The first two subbands, 36 samples, are long bands.
			sfb := 0
			for i := 0; i < 36 && i < n; i++ {
				if i == long[sfb+1] {
					sfb++
				}
				xr[i] = d.requantLong(g, sfb, is[i])
			}
			i := 36
			for sfb := 3; sfb < 13 && i < n; sfb++ {
				winLen := short[sfb+1] - short[sfb]
				for win := 0; win < 3; win++ {
					for j := 0; j < winLen && i < n; j++ {
						xr[i] = d.requantShort(g, sfb, win, is[i])
						i++
					}
				}
			}
			return nil
		}
		i := 0
		for sfb := 0; sfb < 13 && i < n; sfb++ {
			winLen := short[sfb+1] - short[sfb]
			for win := 0; win < 3; win++ {
				for j := 0; j < winLen && i < n; j++ {
					xr[i] = d.requantShort(g, sfb, win, is[i])
					i++
				}
			}
		}
		return nil
	}

	i := 0
	for sfb := 0; sfb < 22 && i < n; sfb++ {
		stop := long[sfb+1]
		for ; i < stop && i < n; i++ {
			xr[i] = d.requantLong(g, sfb, is[i])
		}
	}
	return nil
}

// requantLong requantizes one long-block sample: |is|^(4/3) scaled by
// the global gain and the band's scale factor, with the preflag
// emphasis added on the upper bands.
func (d *Decoder) requantLong(g *granule, sfb int, is int) float32 {
	if is == 0 {
		return 0
	}
	sfMult := 0.5
	if g.scalefacScale == 1 {
		sfMult = 1.0
	}
	sf := g.scalefacL[sfb]
	if g.preflag == 1 {
		sf += tables.Pretab[sfb]
	}
	tmp := math.Exp2(0.25*float64(g.globalGain-210)) *
		math.Exp2(-sfMult*float64(sf))
	return float32(tmp * pow43(is))
}

// requantShort is the short-window variant: the window's subblock gain
// joins the exponent and there is no preemphasis.
func (d *Decoder) requantShort(g *granule, sfb, win int, is int) float32 {
	if is == 0 {
		return 0
	}
	sfMult := 0.5
	if g.scalefacScale == 1 {
		sfMult = 1.0
	}
	tmp := math.Exp2(0.25*float64(g.globalGain-210-8*g.subblockGain[win])) *
		math.Exp2(-sfMult*float64(g.scalefacS[sfb][win]))
	return float32(tmp * pow43(is))
}

// pow43 is the signed |x|^(4/3) lookup. Linbits escapes keep the
// magnitude within the table.
func pow43(is int) float64 {
	if is < 0 {
		return -tables.Pow43[-is]
	}
	return tables.Pow43[is]
}

// reorder rearranges short-block samples from window-major codeword
// order into the frequency-interleaved order the filterbank expects.
// Long blocks and the long part of mixed blocks are untouched.
func (d *Decoder) reorder(h header.FrameHeader, g *granule, xr *[576]float32) error {
	if !(g.windowSwitching && g.blockType == 2) {
		return nil
	}
	short, err := tables.ShortBands(h.SamplingRateIndex())
	if err != nil {
		return err
	}

	var re [576]float32
	sfb := 0
	i := 0
	if g.mixedBlock {
		sfb = 3
		i = 36
	}
	nextSfb := short[sfb+1] * 3
	winLen := short[sfb+1] - short[sfb]
	for i < 576 {
		if i == nextSfb {
			j := 3 * short[sfb]
			copy(xr[j:j+3*winLen], re[:3*winLen])
			if i >= g.count1 {
				return nil
			}
			sfb++
			nextSfb = short[sfb+1] * 3
			winLen = short[sfb+1] - short[sfb]
		}
		for win := 0; win < 3; win++ {
			for j := 0; j < winLen; j++ {
				re[j*3+win] = xr[i]
				i++
			}
		}
	}
	j := 3 * short[12]
	copy(xr[j:j+3*winLen], re[:3*winLen])
	return nil
}
