package header

// Bitrate tables in kbit/s, indexed by bitrate_index. Index 0 is the
// free format escape and index 15 is forbidden.
//
// Reference: ISO/IEC 11172-3 table B.1, ISO/IEC 13818-3 table B.1
var (
	bitratesV1L1 = [16]int{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0}
	bitratesV1L2 = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0}
	bitratesV1L3 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	bitratesV2L1 = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0}
	bitratesV2L2 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// Sampling frequencies in Hz, indexed by sampling_frequency. Index 3 is
// reserved.
var sampleRates = map[Version][4]int{
	MPEG1:  {44100, 48000, 32000, 0},
	MPEG2:  {22050, 24000, 16000, 0},
	MPEG25: {11025, 12000, 8000, 0},
}

// Bitrate returns the frame bitrate in bits per second, or 0 for
// reserved or free-format indices.
func (h FrameHeader) Bitrate() int {
	var table *[16]int
	if h.Version() == MPEG1 {
		switch h.Layer() {
		case LayerI:
			table = &bitratesV1L1
		case LayerII:
			table = &bitratesV1L2
		default:
			table = &bitratesV1L3
		}
	} else {
		if h.Layer() == LayerI {
			table = &bitratesV2L1
		} else {
			table = &bitratesV2L2
		}
	}
	return table[h.BitrateIndex()] * 1000
}

// SampleRate returns the sampling frequency in Hz, or 0 for the
// reserved index.
func (h FrameHeader) SampleRate() int {
	return sampleRates[h.Version()][h.samplingBits()]
}

// SamplesPerFrame returns the number of PCM samples per channel decoded
// from one frame.
func (h FrameHeader) SamplesPerFrame() int {
	switch h.Layer() {
	case LayerI:
		return 384
	case LayerII:
		return 1152
	default:
		if h.LowSamplingFrequency() {
			return 576
		}
		return 1152
	}
}

// FrameSize returns the total frame length in bytes, header and CRC
// included, accounting for the padding slot.
//
// Layer I slots are 4 bytes wide; Layers II and III use 1-byte slots.
func (h FrameHeader) FrameSize() int {
	br := h.Bitrate()
	sr := h.SampleRate()
	if br == 0 || sr == 0 {
		return 0
	}

	pad := 0
	if h.Padding() {
		pad = 1
	}
	if h.Layer() == LayerI {
		return (12*br/sr + pad) * 4
	}
	// samples/8 slots per frame: 144 at full rate, 72 for LSF Layer III.
	slots := 144
	if h.Layer() == LayerIII && h.LowSamplingFrequency() {
		slots = 72
	}
	return slots*br/sr + pad
}

// SideInfoSize returns the Layer III side information length in bytes.
func (h FrameHeader) SideInfoSize() int {
	mono := h.Mode() == ModeMono
	if h.LowSamplingFrequency() {
		if mono {
			return 9
		}
		return 17
	}
	if mono {
		return 17
	}
	return 32
}

// SamplingRateIndex returns a 0..8 index over all defined sampling
// frequencies (44.1/48/32, 22.05/24/16, 11.025/12/8 kHz), used to key
// the scale factor band tables.
func (h FrameHeader) SamplingRateIndex() int {
	base := 0
	switch h.Version() {
	case MPEG2:
		base = 3
	case MPEG25:
		base = 6
	}
	return base + h.samplingBits()
}
