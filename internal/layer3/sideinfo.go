package layer3

import (
	"errors"

	"github.com/llehouerou/go-mpa/internal/bits"
	"github.com/llehouerou/go-mpa/internal/header"
)

// ErrSideInfo indicates malformed Layer III side information.
var ErrSideInfo = errors.New("layer3: malformed side information")

// granule holds the side information for one granule of one channel,
// plus the per-granule state filled in while decoding the main data.
type granule struct {
	part23Length     int // bits spent on scale factors plus Huffman data
	bigValues        int
	globalGain       int
	scalefacCompress int
	windowSwitching  bool
	blockType        int
	mixedBlock       bool
	tableSelect      [3]int
	subblockGain     [3]int
	region0Count     int
	region1Count     int
	preflag          int
	scalefacScale    int
	count1Table      int

	// Derived during main data decode: index of the first sample of
	// the all-zero region, and the decoded scale factors.
	count1    int
	scalefacL [23]int
	scalefacS [13][3]int
}

// sideInfo is the decoded side information of one frame. gr is indexed
// [granule][channel]; MPEG-2/2.5 frames use granule 0 only.
type sideInfo struct {
	mainDataBegin int
	scfsi         [2][4]int
	gr            [2][2]granule
}

// Field widths that differ between MPEG-1 and the lower sampling
// frequency extension: main_data_begin, private bits (mono, stereo)
// and scalefac_compress.
var sideInfoBits = [2][4]uint{
	{9, 5, 3, 4}, // MPEG-1
	{8, 1, 2, 9}, // MPEG-2, MPEG-2.5
}

// readSideInfo parses the side information that follows the frame
// header (and CRC word, when present). r must hold exactly
// h.SideInfoSize() bytes.
func readSideInfo(r *bits.Reader, h header.FrameHeader) (*sideInfo, error) {
	nch := h.Channels()
	lsf := 0
	if h.LowSamplingFrequency() {
		lsf = 1
	}
	widths := sideInfoBits[lsf]

	si := &sideInfo{}
	si.mainDataBegin = int(r.GetBits(widths[0]))
	if nch == 1 {
		r.FlushBits(widths[1])
	} else {
		r.FlushBits(widths[2])
	}

	if lsf == 0 {
		for ch := 0; ch < nch; ch++ {
			for band := 0; band < 4; band++ {
				si.scfsi[ch][band] = int(r.Get1Bit())
			}
		}
	}

	for gri := 0; gri < h.Granules(); gri++ {
		for ch := 0; ch < nch; ch++ {
			g := &si.gr[gri][ch]
			g.part23Length = int(r.GetBits(12))
			g.bigValues = int(r.GetBits(9))
			g.globalGain = int(r.GetBits(8))
			g.scalefacCompress = int(r.GetBits(widths[3]))
			g.windowSwitching = r.Get1Bit() == 1
			if g.windowSwitching {
				g.blockType = int(r.GetBits(2))
				g.mixedBlock = r.Get1Bit() == 1
				if g.blockType == 0 {
					return nil, ErrSideInfo
				}
				for region := 0; region < 2; region++ {
					g.tableSelect[region] = int(r.GetBits(5))
				}
				for win := 0; win < 3; win++ {
					g.subblockGain[win] = int(r.GetBits(3))
				}
				// Implicit region split for window switching frames.
				if g.blockType == 2 && !g.mixedBlock {
					g.region0Count = 8
				} else {
					g.region0Count = 7
				}
				g.region1Count = 20 - g.region0Count
			} else {
				for region := 0; region < 3; region++ {
					g.tableSelect[region] = int(r.GetBits(5))
				}
				g.region0Count = int(r.GetBits(4))
				g.region1Count = int(r.GetBits(3))
				g.blockType = 0
			}
			if lsf == 0 {
				g.preflag = int(r.Get1Bit())
			}
			g.scalefacScale = int(r.Get1Bit())
			g.count1Table = int(r.Get1Bit())
		}
	}

	if r.Error() {
		return nil, ErrSideInfo
	}
	return si, nil
}
