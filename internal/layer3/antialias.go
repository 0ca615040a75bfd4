package layer3

import "math"

// Alias reduction butterfly coefficients, ISO/IEC 11172-3 table B.9.
var csTab, caTab [8]float32

func init() {
	ci := [8]float64{-0.6, -0.535, -0.33, -0.185, -0.095, -0.041, -0.0142, -0.0037}
	for i, c := range ci {
		sq := math.Sqrt(1.0 + c*c)
		csTab[i] = float32(1.0 / sq)
		caTab[i] = float32(c / sq)
	}
}

// antialias runs the eight alias reduction butterflies across each
// subband boundary of one granule. Pure short blocks skip it entirely;
// mixed blocks only treat the boundary below the short region.
func (d *Decoder) antialias(g *granule, xr *[576]float32) {
	if g.windowSwitching && g.blockType == 2 && !g.mixedBlock {
		return
	}
	sblim := 32
	if g.windowSwitching && g.blockType == 2 && g.mixedBlock {
		sblim = 2
	}
	for sb := 1; sb < sblim; sb++ {
		for i := 0; i < 8; i++ {
			li := 18*sb - 1 - i
			ui := 18*sb + i
			lb := xr[li]*csTab[i] - xr[ui]*caTab[i]
			ub := xr[ui]*csTab[i] + xr[li]*caTab[i]
			xr[li] = lb
			xr[ui] = ub
		}
	}
}
