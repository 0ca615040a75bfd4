// Package header parses the 32-bit MPEG audio frame header and derives
// the frame geometry (frame size in bytes, samples per frame, side
// information size) for every version and layer combination.
//
// Reference: ISO/IEC 11172-3 section 2.4.1.3 and ISO/IEC 13818-3
// section 2.4.1.3 (lower sampling frequency extension)
package header

// Version is the MPEG audio version ID, as encoded in the header.
type Version int

const (
	MPEG25 Version = 0 // unofficial 2.5 extension
	// 1 is reserved
	MPEG2 Version = 2
	MPEG1 Version = 3
)

func (v Version) String() string {
	switch v {
	case MPEG1:
		return "MPEG-1"
	case MPEG2:
		return "MPEG-2"
	case MPEG25:
		return "MPEG-2.5"
	}
	return "reserved"
}

// Layer is the MPEG audio layer, as encoded in the header (note the
// reversed numbering: Layer I has the highest code).
type Layer int

const (
	// 0 is reserved
	LayerIII Layer = 1
	LayerII  Layer = 2
	LayerI   Layer = 3
)

func (l Layer) String() string {
	switch l {
	case LayerI:
		return "Layer I"
	case LayerII:
		return "Layer II"
	case LayerIII:
		return "Layer III"
	}
	return "reserved"
}

// Mode is the channel mode.
type Mode int

const (
	ModeStereo Mode = iota
	ModeJointStereo
	ModeDualChannel
	ModeMono
)

func (m Mode) String() string {
	switch m {
	case ModeStereo:
		return "stereo"
	case ModeJointStereo:
		return "joint stereo"
	case ModeDualChannel:
		return "dual channel"
	}
	return "mono"
}

// FrameHeader is the 32-bit frame header word, syncword in the high bits.
type FrameHeader uint32

// Parse assembles a header word from the first four bytes of b.
func Parse(b []byte) FrameHeader {
	return FrameHeader(uint32(b[0])<<24 | uint32(b[1])<<16 |
		uint32(b[2])<<8 | uint32(b[3]))
}

// IsValid reports whether the word carries the syncword and only legal
// field values. Free-format streams (bitrate index 0) are rejected.
func (h FrameHeader) IsValid() bool {
	const sync = 0xFFE00000
	if uint32(h)&sync != sync {
		return false
	}
	if h.versionBits() == 1 {
		return false
	}
	if h.layerBits() == 0 {
		return false
	}
	if h.BitrateIndex() == 0 || h.BitrateIndex() == 15 {
		return false
	}
	if h.samplingBits() == 3 {
		return false
	}
	return true
}

func (h FrameHeader) versionBits() int  { return int(h>>19) & 3 }
func (h FrameHeader) layerBits() int    { return int(h>>17) & 3 }
func (h FrameHeader) samplingBits() int { return int(h>>10) & 3 }

// Version returns the MPEG version ID.
func (h FrameHeader) Version() Version { return Version(h.versionBits()) }

// Layer returns the audio layer.
func (h FrameHeader) Layer() Layer { return Layer(h.layerBits()) }

// LowSamplingFrequency reports whether the stream uses the MPEG-2 or
// MPEG-2.5 lower sampling frequency extension.
func (h FrameHeader) LowSamplingFrequency() bool {
	return h.Version() != MPEG1
}

// Protected reports whether a 16-bit CRC word follows the header.
func (h FrameHeader) Protected() bool { return h>>16&1 == 0 }

// BitrateIndex returns the raw 4-bit bitrate index.
func (h FrameHeader) BitrateIndex() int { return int(h>>12) & 15 }

// Padding reports whether the frame carries one extra slot.
func (h FrameHeader) Padding() bool { return h>>9&1 == 1 }

// Private returns the private bit.
func (h FrameHeader) Private() bool { return h>>8&1 == 1 }

// Mode returns the channel mode.
func (h FrameHeader) Mode() Mode { return Mode(int(h>>6) & 3) }

// ModeExtension returns the 2-bit mode extension field. For Layer III
// joint stereo, bit 1 enables M/S stereo and bit 0 intensity stereo;
// for Layers I and II the field selects the intensity bound.
func (h FrameHeader) ModeExtension() int { return int(h>>4) & 3 }

// UsesMSStereo reports whether Layer III middle/side stereo is active.
func (h FrameHeader) UsesMSStereo() bool {
	return h.Mode() == ModeJointStereo && h.ModeExtension()&2 != 0
}

// UsesIntensityStereo reports whether Layer III intensity stereo is
// active.
func (h FrameHeader) UsesIntensityStereo() bool {
	return h.Mode() == ModeJointStereo && h.ModeExtension()&1 != 0
}

// Copyright returns the copyright bit.
func (h FrameHeader) Copyright() bool { return h>>3&1 == 1 }

// Original returns the original/copy bit.
func (h FrameHeader) Original() bool { return h>>2&1 == 1 }

// Emphasis returns the 2-bit de-emphasis indication.
func (h FrameHeader) Emphasis() int { return int(h) & 3 }

// Channels returns 1 for single channel mode, 2 otherwise.
func (h FrameHeader) Channels() int {
	if h.Mode() == ModeMono {
		return 1
	}
	return 2
}

// Granules returns the number of Layer III granules per frame.
func (h FrameHeader) Granules() int {
	if h.LowSamplingFrequency() {
		return 1
	}
	return 2
}

// Bound returns the lowest subband coded independently per channel in
// Layer I/II intensity stereo mode, or the subband limit when intensity
// stereo is not in use.
func (h FrameHeader) Bound(sblimit int) int {
	if h.Mode() != ModeJointStereo {
		return sblimit
	}
	b := (h.ModeExtension() + 1) * 4
	if b > sblimit {
		b = sblimit
	}
	return b
}
