// Package layer12 decodes Layer I and Layer II audio frames.
//
// Both layers share the subband model: a bit allocation per subband,
// scale factors, uniformly quantized subband samples and the polyphase
// synthesis filter. Layer I codes 12 samples per subband with one
// scale factor; Layer II codes 36 samples in three parts with shared
// scale factor selection and optional sample grouping.
//
// Reference: ISO/IEC 11172-3 sections 2.4.2.5-2.4.2.6 and A.2
package layer12

import (
	"errors"

	"github.com/llehouerou/go-mpa/internal/bits"
	"github.com/llehouerou/go-mpa/internal/crc"
	"github.com/llehouerou/go-mpa/internal/header"
	"github.com/llehouerou/go-mpa/internal/synthesis"
)

// ErrBadAllocation indicates a forbidden allocation code in the frame.
var ErrBadAllocation = errors.New("layer12: invalid bit allocation")

// Decoder holds the per-stream Layer I/II state: one synthesis filter
// per channel plus frame-sized scratch arrays.
type Decoder struct {
	filters [2]*synthesis.Filter

	allocation  [2][32]int // quantTab index + 1, 0 = no bits
	scfsi       [2][32]int
	scaleFactor [2][32][3]float32
	sample      [2][32][3]float32
}

func NewDecoder() *Decoder {
	return &Decoder{
		filters: [2]*synthesis.Filter{synthesis.NewFilter(), synthesis.NewFilter()},
	}
}

// Reset clears the synthesis history after a stream discontinuity.
func (d *Decoder) Reset() {
	d.filters[0].Reset()
	d.filters[1].Reset()
}

// DecodeLayerI decodes one Layer I frame body (the reader is positioned
// after the header and CRC word) into 384 samples per channel. When c
// is non-nil the allocation bits are accumulated into it, so the caller
// can verify the frame's CRC word.
func (d *Decoder) DecodeLayerI(h header.FrameHeader, r *bits.Reader, c *crc.CRC16, pcm [2][]float32) error {
	channels := h.Channels()
	bound := 32
	if h.Mode() == header.ModeJointStereo {
		bound = h.Bound(32)
	}

	// Bit allocation: 4 bits per subband and channel, one shared field
	// in the intensity region.
	var alloc [2][32]uint
	for sb := 0; sb < bound; sb++ {
		for ch := 0; ch < channels; ch++ {
			a := uint(r.GetBits(4))
			if a == 15 {
				return ErrBadAllocation
			}
			if c != nil {
				c.AddBits(uint32(a), 4)
			}
			alloc[ch][sb] = a
		}
	}
	for sb := bound; sb < 32; sb++ {
		a := uint(r.GetBits(4))
		if a == 15 {
			return ErrBadAllocation
		}
		if c != nil {
			c.AddBits(uint32(a), 4)
		}
		alloc[0][sb] = a
		alloc[1][sb] = a
	}

	// Scale factors for every coded subband. Intensity subbands share
	// the codeword but still carry one scale factor per channel.
	var sf [2][32]float32
	for sb := 0; sb < 32; sb++ {
		for ch := 0; ch < channels; ch++ {
			if alloc[ch][sb] != 0 {
				sf[ch][sb] = scaleFactors[r.GetBits(6)]
			}
		}
	}

	// 12 granules of one sample per subband and channel. Intensity
	// subbands share the codeword but keep per-channel scale factors.
	var s [2][32]float32
	for gr := 0; gr < 12; gr++ {
		for sb := 0; sb < 32; sb++ {
			if sb < bound {
				for ch := 0; ch < channels; ch++ {
					if alloc[ch][sb] == 0 {
						s[ch][sb] = 0
						continue
					}
					s[ch][sb] = dequantLayerI(r, alloc[ch][sb]) * sf[ch][sb]
				}
				continue
			}
			if alloc[0][sb] == 0 {
				s[0][sb] = 0
				s[1][sb] = 0
				continue
			}
			f := dequantLayerI(r, alloc[0][sb])
			s[0][sb] = f * sf[0][sb]
			s[1][sb] = f * sf[1][sb]
		}
		for ch := 0; ch < channels; ch++ {
			d.filters[ch].Process(&s[ch], pcm[ch][gr*32:])
		}
	}
	return nil
}

// dequantLayerI reads one (alloc+1)-bit code and requantizes it: the
// Layer I grid has 2^nb - 1 levels, so C = 2^nb/(2^nb - 1) and
// D = 2^(1-nb).
func dequantLayerI(r *bits.Reader, alloc uint) float32 {
	nb := alloc + 1
	code := r.GetBits(nb)
	half := float32(int(1) << (nb - 1))
	f := float32(code)/half - 1.0
	c := float32(int(1)<<nb) / float32((int(1)<<nb)-1)
	return c * (f + 1.0/half)
}

// DecodeLayerII decodes one Layer II frame body into 1152 samples per
// channel. When c is non-nil the allocation and scale factor selection
// bits are accumulated into it for CRC verification.
func (d *Decoder) DecodeLayerII(h header.FrameHeader, r *bits.Reader, c *crc.CRC16, pcm [2][]float32) error {
	channels := h.Channels()

	// Pick the allocation table from mode, bitrate and sample rate.
	var lut3, sblimit int
	if h.LowSamplingFrequency() {
		lut3 = 2
		sblimit = 30
	} else {
		tab1 := 1
		if h.Mode() == header.ModeMono {
			tab1 = 0
		}
		tab2 := quantLutStep1[tab1][h.BitrateIndex()]
		tab3 := quantLutStep2[tab2][h.SamplingRateIndex()]
		sblimit = int(tab3) & 63
		lut3 = int(tab3) >> 6
	}

	bound := sblimit
	if h.Mode() == header.ModeJointStereo {
		bound = h.Bound(sblimit)
	}
	if h.Mode() == header.ModeMono {
		bound = 0
	}

	// Bit allocation.
	for sb := 0; sb < bound; sb++ {
		for ch := 0; ch < 2; ch++ {
			q, err := d.readAllocation(r, c, sb, lut3)
			if err != nil {
				return err
			}
			d.allocation[ch][sb] = q
		}
	}
	for sb := bound; sb < sblimit; sb++ {
		q, err := d.readAllocation(r, c, sb, lut3)
		if err != nil {
			return err
		}
		d.allocation[0][sb] = q
		d.allocation[1][sb] = q
	}

	// Scale factor selection information.
	for sb := 0; sb < sblimit; sb++ {
		for ch := 0; ch < channels; ch++ {
			if d.allocation[ch][sb] != 0 {
				v := r.GetBits(2)
				if c != nil {
					c.AddBits(v, 2)
				}
				d.scfsi[ch][sb] = int(v)
			}
		}
		if channels == 1 {
			d.scfsi[1][sb] = d.scfsi[0][sb]
		}
	}

	// Scale factors, shared across parts per the selection info.
	for sb := 0; sb < sblimit; sb++ {
		for ch := 0; ch < channels; ch++ {
			if d.allocation[ch][sb] == 0 {
				continue
			}
			sf := &d.scaleFactor[ch][sb]
			switch d.scfsi[ch][sb] {
			case 0:
				sf[0] = scaleFactors[r.GetBits(6)]
				sf[1] = scaleFactors[r.GetBits(6)]
				sf[2] = scaleFactors[r.GetBits(6)]
			case 1:
				tmp := scaleFactors[r.GetBits(6)]
				sf[0] = tmp
				sf[1] = tmp
				sf[2] = scaleFactors[r.GetBits(6)]
			case 2:
				tmp := scaleFactors[r.GetBits(6)]
				sf[0] = tmp
				sf[1] = tmp
				sf[2] = tmp
			case 3:
				sf[0] = scaleFactors[r.GetBits(6)]
				tmp := scaleFactors[r.GetBits(6)]
				sf[1] = tmp
				sf[2] = tmp
			}
		}
		if channels == 1 {
			d.scaleFactor[1][sb] = d.scaleFactor[0][sb]
		}
	}

	// Sample data: 3 parts of 4 granules of 3 samples per subband.
	outPos := 0
	for part := 0; part < 3; part++ {
		for gr := 0; gr < 4; gr++ {
			for sb := 0; sb < bound; sb++ {
				d.readSamples(r, 0, sb, part)
				d.readSamples(r, 1, sb, part)
			}
			for sb := bound; sb < sblimit; sb++ {
				d.readSamplesShared(r, sb, part)
			}
			for sb := sblimit; sb < 32; sb++ {
				d.sample[0][sb] = [3]float32{}
				d.sample[1][sb] = [3]float32{}
			}

			for p := 0; p < 3; p++ {
				var s [2][32]float32
				for sb := 0; sb < 32; sb++ {
					s[0][sb] = d.sample[0][sb][p]
					s[1][sb] = d.sample[1][sb][p]
				}
				for ch := 0; ch < channels; ch++ {
					d.filters[ch].Process(&s[ch], pcm[ch][outPos:])
				}
				outPos += 32
			}
		}
	}
	return nil
}

// readAllocation reads one allocation field and maps it to a quantTab
// index plus one (0 means the subband carries no bits).
func (d *Decoder) readAllocation(r *bits.Reader, c *crc.CRC16, sb, lut3 int) (int, error) {
	tab4 := quantLutStep3[lut3][sb]
	val := r.GetBits(uint(tab4) >> 4)
	if c != nil {
		c.AddBits(val, uint(tab4)>>4)
	}
	qtab := quantLutStep4[tab4&15][val]
	if qtab == 0 && val != 0 {
		return 0, ErrBadAllocation
	}
	return int(qtab), nil
}

// dequantize maps one raw code to the -1..1 mid-tread grid of the
// quantizer class q (a quantTab index).
func dequantize(code uint32, q int) float32 {
	f := float32(code)/float32(int(1)<<fracShift[q]) - 1.0
	return dequantC[q] * (f + dequantD[q])
}

// readSamples decodes the three samples of one part for a single
// channel, applying that channel's scale factor.
func (d *Decoder) readSamples(r *bits.Reader, ch, sb, part int) {
	q := d.allocation[ch][sb]
	if q == 0 {
		d.sample[ch][sb] = [3]float32{}
		return
	}
	q--
	sf := d.scaleFactor[ch][sb][part]
	spec := &quantTab[q]

	var raw [3]uint32
	if spec.group {
		// One codeword carries three samples in base-levels digits.
		val := r.GetBits(spec.bits)
		adj := uint32(spec.levels)
		raw[0] = val % adj
		val /= adj
		raw[1] = val % adj
		raw[2] = val / adj
	} else {
		raw[0] = r.GetBits(spec.bits)
		raw[1] = r.GetBits(spec.bits)
		raw[2] = r.GetBits(spec.bits)
	}
	for i := 0; i < 3; i++ {
		d.sample[ch][sb][i] = dequantize(raw[i], q) * sf
	}
}

// readSamplesShared decodes one intensity-coded subband: a single
// codeword stream scaled by each channel's own scale factor.
func (d *Decoder) readSamplesShared(r *bits.Reader, sb, part int) {
	q := d.allocation[0][sb]
	if q == 0 {
		d.sample[0][sb] = [3]float32{}
		d.sample[1][sb] = [3]float32{}
		return
	}
	q--
	spec := &quantTab[q]

	var raw [3]uint32
	if spec.group {
		val := r.GetBits(spec.bits)
		adj := uint32(spec.levels)
		raw[0] = val % adj
		val /= adj
		raw[1] = val % adj
		raw[2] = val / adj
	} else {
		raw[0] = r.GetBits(spec.bits)
		raw[1] = r.GetBits(spec.bits)
		raw[2] = r.GetBits(spec.bits)
	}
	for i := 0; i < 3; i++ {
		f := dequantize(raw[i], q)
		d.sample[0][sb][i] = f * d.scaleFactor[0][sb][part]
		d.sample[1][sb][i] = f * d.scaleFactor[1][sb][part]
	}
}
