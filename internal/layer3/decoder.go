// Package layer3 decodes MPEG audio Layer III granules: side
// information, scale factors, Huffman coded spectrum, requantization,
// stereo processing, alias reduction and the hybrid IMDCT filterbank.
// The polyphase synthesis stage is shared with Layers I and II.
//
// Reference: ISO/IEC 11172-3 section 2.4.3.4, ISO/IEC 13818-3 section
// 2.4.3.2 (lower sampling frequencies)
package layer3

import (
	"github.com/llehouerou/go-mpa/internal/bits"
	"github.com/llehouerou/go-mpa/internal/header"
	"github.com/llehouerou/go-mpa/internal/synthesis"
)

// Decoder carries the Layer III decoding state that survives across
// frames: the bit reservoir, the IMDCT overlap store and the polyphase
// filter history of each channel.
type Decoder struct {
	reserve bits.Reserve
	filters [2]*synthesis.Filter
	store   [2][32][18]float32

	// Per-granule scratch, reused across calls.
	is [576]int
	xr [2][576]float32
}

// NewDecoder returns a Decoder with empty reservoir and filter state.
func NewDecoder() *Decoder {
	return &Decoder{
		filters: [2]*synthesis.Filter{synthesis.NewFilter(), synthesis.NewFilter()},
	}
}

// Reset drops all cross-frame state. Call it after a seek or a lost
// sync, since the reservoir contents no longer match the stream.
func (d *Decoder) Reset() {
	d.reserve = bits.Reserve{}
	d.filters[0].Reset()
	d.filters[1].Reset()
	d.store = [2][32][18]float32{}
}

// Decode decodes one Layer III frame. r reads the frame's side
// information bytes and mainData is its main data portion, which is
// appended to the bit reservoir. pcm receives Granules()*576 samples
// per channel at nominal full scale.
//
// The returned sample count per channel is zero when the frame's
// main_data_begin points back at reservoir bytes that were never seen,
// which happens on the first frames after a seek. The main data is
// still retained so following frames can decode.
func (d *Decoder) Decode(h header.FrameHeader, r *bits.Reader, mainData []byte, pcm [2][]float32) (int, error) {
	si, err := readSideInfo(r, h)
	if err != nil {
		return 0, err
	}

	start := d.reserve.BytesWritten() - si.mainDataBegin
	d.reserve.Write(mainData)
	if !d.reserve.SetBytePos(start) {
		return 0, nil
	}

	nch := h.Channels()
	lsf := h.LowSamplingFrequency()
	for gri := 0; gri < h.Granules(); gri++ {
		for ch := 0; ch < nch; ch++ {
			g := &si.gr[gri][ch]
			part2Start := d.reserve.Tell()
			if lsf {
				si.readScalefacsLSF(&d.reserve, ch, h.UsesIntensityStereo() && ch == 1)
			} else {
				si.readScalefacs(&d.reserve, gri, ch)
			}
			if err := d.readHuffman(&d.reserve, h, g, part2Start, &d.is); err != nil {
				return 0, err
			}
			if err := d.requantize(h, g, &d.is, &d.xr[ch]); err != nil {
				return 0, err
			}
			if err := d.reorder(h, g, &d.xr[ch]); err != nil {
				return 0, err
			}
			// A reservoir overrun means the granule's data ran past the
			// bytes actually received, so the spectrum is garbage. Mute
			// it but keep feeding the filterbank to stay time-aligned.
			if d.reserve.Overrun() {
				d.xr[ch] = [576]float32{}
			}
		}
		if nch == 2 {
			if err := d.stereo(h, si, gri, &d.xr); err != nil {
				return 0, err
			}
		}
		for ch := 0; ch < nch; ch++ {
			g := &si.gr[gri][ch]
			d.antialias(g, &d.xr[ch])
			d.hybrid(g, ch, &d.xr[ch])
			frequencyInversion(&d.xr[ch])
			d.polyphase(ch, gri, pcm[ch])
		}
	}
	return h.Granules() * 576, nil
}

// polyphase feeds one granule through the channel's synthesis filter,
// one 32-sample slice per time step.
func (d *Decoder) polyphase(ch, gri int, pcm []float32) {
	var s [32]float32
	for ss := 0; ss < 18; ss++ {
		for sb := 0; sb < 32; sb++ {
			s[sb] = d.xr[ch][sb*18+ss]
		}
		off := (gri*18 + ss) * 32
		d.filters[ch].Process(&s, pcm[off:off+32])
	}
}
