package layer3

import "github.com/llehouerou/go-mpa/internal/bits"

// slen pairs for MPEG-1 scalefac_compress, ISO/IEC 11172-3 section
// 2.4.2.7: bit widths for the low and high scale factor bands.
var scalefacSizes = [16][2]uint{
	{0, 0}, {0, 1}, {0, 2}, {0, 3},
	{3, 0}, {1, 1}, {1, 2}, {1, 3},
	{2, 1}, {2, 2}, {2, 3}, {3, 1},
	{3, 2}, {3, 3}, {4, 2}, {4, 3},
}

// Scale factor band group sizes for the lower sampling frequency
// extension, ISO/IEC 13818-3 section 2.4.3.2. The first index selects
// long, short or mixed blocks; the second is derived from
// scalefac_compress; the third is the band group.
var scalefacSizesLSF = [3][6][4]int{
	{
		{6, 5, 5, 5},
		{6, 5, 7, 3},
		{11, 10, 0, 0},
		{7, 7, 7, 0},
		{6, 6, 6, 3},
		{8, 8, 5, 0},
	},
	{
		{9, 9, 9, 9},
		{9, 9, 12, 6},
		{18, 18, 0, 0},
		{12, 12, 12, 0},
		{12, 9, 9, 6},
		{15, 12, 9, 0},
	},
	{
		{6, 9, 9, 9},
		{6, 9, 12, 6},
		{15, 18, 0, 0},
		{6, 15, 12, 0},
		{6, 12, 9, 6},
		{6, 18, 9, 0},
	},
}

// slenLSF maps an LSF scalefac_compress value to four packed 3-bit
// slen fields, the row index into scalefacSizesLSF (bits 12-14) and
// the preflag (bit 15).
var slenLSF = initSlenLSF()

func initSlenLSF() (tab [512]int) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			for k := 0; k < 4; k++ {
				for l := 0; l < 4; l++ {
					n := l + k*4 + j*16 + i*80
					tab[n] = i | j<<3 | k<<6 | l<<9
				}
			}
		}
	}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			for k := 0; k < 4; k++ {
				n := k + j*4 + i*20
				tab[n+400] = i | j<<3 | k<<6 | 1<<12
			}
		}
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			n := j + i*3
			tab[n+500] = i | j<<3 | 2<<12 | 1<<15
		}
	}
	return tab
}

// iSlenLSF is the slen table for the right channel of an
// intensity-coded LSF granule, indexed by scalefac_compress >> 1. It
// selects rows 3 to 5 of scalefacSizesLSF, which carry the intensity
// position band layout. ISO/IEC 13818-3 section 2.4.3.2.
var iSlenLSF = initISlenLSF()

func initISlenLSF() (tab [256]int) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 6; j++ {
			for k := 0; k < 6; k++ {
				n := k + j*6 + i*36
				tab[n] = i | j<<3 | k<<6 | 3<<12
			}
		}
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				n := k + j*4 + i*16
				tab[n+180] = i | j<<3 | k<<6 | 4<<12
			}
		}
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			n := j + i*3
			tab[n+244] = i | j<<3 | 5<<12
		}
	}
	return tab
}

// readScalefacs decodes the scale factors of one MPEG-1 granule.
// scfsi bands marked shared copy granule 0's values instead of reading
// bits, which is only legal on the second granule.
func (si *sideInfo) readScalefacs(rv *bits.Reserve, gri, ch int) {
	g := &si.gr[gri][ch]
	slen1 := scalefacSizes[g.scalefacCompress][0]
	slen2 := scalefacSizes[g.scalefacCompress][1]

	if g.windowSwitching && g.blockType == 2 {
		if g.mixedBlock {
			for sfb := 0; sfb < 8; sfb++ {
				g.scalefacL[sfb] = rv.ReadBits(slen1)
			}
			for sfb := 3; sfb < 12; sfb++ {
				nbits := slen2
				if sfb < 6 {
					nbits = slen1
				}
				for win := 0; win < 3; win++ {
					g.scalefacS[sfb][win] = rv.ReadBits(nbits)
				}
			}
		} else {
			for sfb := 0; sfb < 12; sfb++ {
				nbits := slen2
				if sfb < 6 {
					nbits = slen1
				}
				for win := 0; win < 3; win++ {
					g.scalefacS[sfb][win] = rv.ReadBits(nbits)
				}
			}
		}
		return
	}

	// Long blocks: four scfsi band groups, 0-5, 6-10, 11-15 and 16-20.
	groups := [5]int{0, 6, 11, 16, 21}
	for band := 0; band < 4; band++ {
		nbits := slen1
		if band >= 2 {
			nbits = slen2
		}
		shared := si.scfsi[ch][band] == 1 && gri == 1
		for sfb := groups[band]; sfb < groups[band+1]; sfb++ {
			if shared {
				g.scalefacL[sfb] = si.gr[0][ch].scalefacL[sfb]
			} else {
				g.scalefacL[sfb] = rv.ReadBits(nbits)
			}
		}
	}
}

// readScalefacsLSF decodes the scale factors of an MPEG-2/2.5 granule.
// The preflag is implied by scalefac_compress rather than transmitted.
// The right channel of an intensity-coded granule carries intensity
// positions instead of scale factors and uses a different compress
// mapping with only the top 8 of the 9 bits.
func (si *sideInfo) readScalefacsLSF(rv *bits.Reserve, ch int, intensity bool) {
	g := &si.gr[0][ch]
	slen := slenLSF[g.scalefacCompress]
	if intensity {
		slen = iSlenLSF[g.scalefacCompress>>1]
	}
	g.preflag = slen >> 15 & 1

	blockIdx := 0
	if g.blockType == 2 {
		blockIdx = 1
		if g.mixedBlock {
			blockIdx = 2
		}
	}

	var sf [54]int
	n := 0
	row := slen >> 12 & 7
	for group := 0; group < 4; group++ {
		nbits := uint(slen & 7)
		slen >>= 3
		count := scalefacSizesLSF[blockIdx][row][group]
		for i := 0; i < count; i++ {
			if nbits > 0 {
				sf[n] = rv.ReadBits(nbits)
			}
			n++
		}
	}
	// Trailing bands are always zero: one for long blocks, three for
	// short, five for mixed.
	n += blockIdx*2 + 1

	if n == 22 {
		copy(g.scalefacL[:22], sf[:22])
		return
	}
	if g.mixedBlock {
		// Six long bands, then short bands from sfb 3 up.
		copy(g.scalefacL[:6], sf[:6])
		for sfb := 3; sfb < 13; sfb++ {
			for win := 0; win < 3; win++ {
				g.scalefacS[sfb][win] = sf[6+(sfb-3)*3+win]
			}
		}
		return
	}
	for sfb := 0; sfb < 13; sfb++ {
		for win := 0; win < 3; win++ {
			g.scalefacS[sfb][win] = sf[sfb*3+win]
		}
	}
}
