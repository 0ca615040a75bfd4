package layer3

import (
	"errors"

	"github.com/llehouerou/go-mpa/internal/bits"
	"github.com/llehouerou/go-mpa/internal/header"
	"github.com/llehouerou/go-mpa/internal/huffman"
	"github.com/llehouerou/go-mpa/internal/tables"
)

// ErrHuffmanData indicates inconsistent Huffman region information.
var ErrHuffmanData = errors.New("layer3: bad huffman region data")

// readHuffman decodes one granule's spectral samples into is. The raw
// values stay integers here; requantization turns them into spectral
// magnitudes later.
//
// part2Start is the reservoir bit position where the granule's scale
// factors began: part2_3_length is counted from there, and everything
// between the last codeword and that boundary is stuffing.
func (d *Decoder) readHuffman(rv *bits.Reserve, h header.FrameHeader, g *granule, part2Start int, is *[576]int) error {
	for i := range is {
		is[i] = 0
	}
	if g.part23Length == 0 {
		g.count1 = 0
		return nil
	}
	bitPosEnd := part2Start + g.part23Length - 1

	// Region boundaries in sample indices. Short blocks have a fixed
	// split after 36 samples and no third region.
	region1Start := 36
	region2Start := 576
	if !(g.windowSwitching && g.blockType == 2) {
		long, err := tables.LongBands(h.SamplingRateIndex())
		if err != nil {
			return err
		}
		i := g.region0Count + 1
		j := g.region0Count + g.region1Count + 2
		if i >= len(long) || j >= len(long) {
			return ErrHuffmanData
		}
		region1Start = long[i]
		region2Start = long[j]
	}

	// Big values region: pairs, three sub-regions with their own
	// codebooks.
	bigValues := g.bigValues * 2
	if bigValues > 576 {
		return ErrHuffmanData
	}
	for pos := 0; pos < bigValues; pos += 2 {
		sel := g.tableSelect[2]
		if pos < region1Start {
			sel = g.tableSelect[0]
		} else if pos < region2Start {
			sel = g.tableSelect[1]
		}
		tab, err := huffman.Spectral(sel)
		if err != nil {
			return err
		}
		if tab == nil {
			continue // table 0: the pair is zero
		}
		x, y := tab.DecodePair(rv)
		is[pos] = readEscape(rv, tab, x)
		is[pos+1] = readEscape(rv, tab, y)
	}

	// Count1 region: quadruples of -1, 0 or 1 until the bit budget is
	// spent or the spectrum is full.
	pos := bigValues
	for pos <= 572 && rv.Tell() <= bitPosEnd {
		v, w, x, y := huffman.DecodeQuad(g.count1Table == 1, rv)
		is[pos] = readSign(rv, v)
		is[pos+1] = readSign(rv, w)
		is[pos+2] = readSign(rv, x)
		is[pos+3] = readSign(rv, y)
		pos += 4
	}
	// The last quadruple may straddle the boundary; it belongs to the
	// next granule's bits and must be dropped.
	if rv.Tell() > bitPosEnd+1 && pos >= 4 {
		pos -= 4
		is[pos], is[pos+1], is[pos+2], is[pos+3] = 0, 0, 0, 0
	}
	g.count1 = pos

	// Skip any stuffing bits up to the granule boundary.
	rv.SetBitPos(bitPosEnd + 1)
	return nil
}

// readEscape extends a big-value magnitude with its linbits escape and
// sign bit.
func readEscape(rv *bits.Reserve, tab *huffman.Table, mag int) int {
	if mag == 15 && tab.Linbits > 0 {
		mag += rv.ReadBits(tab.Linbits)
	}
	if mag != 0 && rv.ReadBit() == 1 {
		return -mag
	}
	return mag
}

// readSign applies the sign bit that follows each nonzero count1 value.
func readSign(rv *bits.Reserve, mag int) int {
	if mag != 0 && rv.ReadBit() == 1 {
		return -mag
	}
	return mag
}
