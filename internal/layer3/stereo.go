package layer3

import (
	"math"

	"github.com/llehouerou/go-mpa/internal/header"
	"github.com/llehouerou/go-mpa/internal/tables"
)

// isRatios caches tan(is_pos * pi / 12) for intensity positions 0-5.
// Position 6 is the pi/2 pole and handled separately, position 7 marks
// a band without intensity coding.
var isRatios [6]float32

func init() {
	for i := range isRatios {
		isRatios[i] = float32(math.Tan(float64(i) * math.Pi / 12))
	}
}

// stereo applies middle/side and intensity stereo processing to one
// granule, in place. ISO/IEC 11172-3 section 2.4.3.4.9.
func (d *Decoder) stereo(h header.FrameHeader, si *sideInfo, gri int, xr *[2][576]float32) error {
	if h.UsesMSStereo() {
		// Process up to the longer of the two channels' coded regions.
		maxPos := si.gr[gri][0].count1
		if si.gr[gri][1].count1 > maxPos {
			maxPos = si.gr[gri][1].count1
		}
		const invSqrt2 = float32(math.Sqrt2 / 2)
		for i := 0; i < maxPos; i++ {
			mid := xr[0][i]
			side := xr[1][i]
			xr[0][i] = (mid + side) * invSqrt2
			xr[1][i] = (mid - side) * invSqrt2
		}
	}

	if !h.UsesIntensityStereo() {
		return nil
	}

	// Intensity stereo reconstructs the bands above the right channel's
	// coded region from the left channel and the transmitted position.
	sr := h.SamplingRateIndex()
	long, err := tables.LongBands(sr)
	if err != nil {
		return err
	}
	short, err := tables.ShortBands(sr)
	if err != nil {
		return err
	}
	g := &si.gr[gri][0]
	right := si.gr[gri][1].count1
	lsf := h.LowSamplingFrequency()

	if g.windowSwitching && g.blockType == 2 {
		if g.mixedBlock {
			for sfb := 0; sfb < 8; sfb++ {
				if long[sfb] >= right {
					d.intensityLong(g, long, sfb, lsf, xr)
				}
			}
			for sfb := 3; sfb < 12; sfb++ {
				if short[sfb]*3 >= right {
					d.intensityShort(g, short, sfb, lsf, xr)
				}
			}
		} else {
			for sfb := 0; sfb < 12; sfb++ {
				if short[sfb]*3 >= right {
					d.intensityShort(g, short, sfb, lsf, xr)
				}
			}
		}
		return nil
	}
	for sfb := 0; sfb < 21; sfb++ {
		if long[sfb] >= right {
			d.intensityLong(g, long, sfb, lsf, xr)
		}
	}
	return nil
}

// intensityRatio maps an intensity position to the left and right
// channel gains. Position 7 disables the band and reports ok false.
func intensityRatio(g *granule, isPos int, lsf bool) (kl, kr float32, ok bool) {
	if isPos == 7 {
		return 0, 0, false
	}
	if lsf {
		// ISO/IEC 13818-3 section 2.4.3.2: gains are powers of
		// io = 2^-1/4 or 2^-1/2 chosen by scalefac_compress parity.
		io := float32(1 / math.Sqrt(math.Sqrt2))
		if g.scalefacCompress&1 == 1 {
			io = float32(math.Sqrt2 / 2)
		}
		kl, kr = 1, 1
		if isPos&1 == 1 {
			kl = pow(io, (isPos+1)/2)
		} else if isPos > 0 {
			kr = pow(io, isPos/2)
		}
		return kl, kr, true
	}
	if isPos == 6 {
		return 1, 0, true
	}
	ratio := isRatios[isPos]
	return ratio / (1 + ratio), 1 / (1 + ratio), true
}

func pow(base float32, n int) float32 {
	v := float32(1)
	for ; n > 0; n-- {
		v *= base
	}
	return v
}

func (d *Decoder) intensityLong(g *granule, long *[23]int, sfb int, lsf bool, xr *[2][576]float32) {
	kl, kr, ok := intensityRatio(g, g.scalefacL[sfb], lsf)
	if !ok {
		return
	}
	for i := long[sfb]; i < long[sfb+1]; i++ {
		v := xr[0][i]
		xr[0][i] = v * kl
		xr[1][i] = v * kr
	}
}

func (d *Decoder) intensityShort(g *granule, short *[14]int, sfb int, lsf bool, xr *[2][576]float32) {
	start := short[sfb] * 3
	winLen := short[sfb+1] - short[sfb]
	for win := 0; win < 3; win++ {
		kl, kr, ok := intensityRatio(g, g.scalefacS[sfb][win], lsf)
		if !ok {
			continue
		}
		for i := 0; i < winLen; i++ {
			j := start + win*winLen + i
			v := xr[0][j]
			xr[0][j] = v * kl
			xr[1][j] = v * kr
		}
	}
}
