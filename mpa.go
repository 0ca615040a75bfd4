package mpa

import "github.com/llehouerou/go-mpa/internal/header"

// Version identifies the MPEG audio version of a stream.
type Version int

// MPEG audio versions. MPEG-2.5 is the unofficial extension covering
// 8-12 kHz sample rates.
const (
	MPEG1 Version = iota
	MPEG2
	MPEG25
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
	return "unknown"
}

// Layer identifies the MPEG audio layer.
type Layer int

// Audio layers.
const (
	LayerI Layer = 1 + iota
	LayerII
	LayerIII
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
	return "unknown"
}

// Mode is the channel mode of a stream.
type Mode int

// Channel modes.
const (
	Stereo Mode = iota
	JointStereo
	DualChannel
	Mono
)

func (m Mode) String() string {
	switch m {
	case Stereo:
		return "stereo"
	case JointStereo:
		return "joint stereo"
	case DualChannel:
		return "dual channel"
	case Mono:
		return "mono"
	}
	return "unknown"
}

// Config contains decoder configuration options. Apply it with
// SetConfiguration before the first Read or DecodeFrame call.
type Config struct {
	// NoUpmix keeps single channel streams mono instead of
	// duplicating them into two identical output channels.
	NoUpmix bool
}

func versionOf(h header.FrameHeader) Version {
	switch h.Version() {
	case header.MPEG2:
		return MPEG2
	case header.MPEG25:
		return MPEG25
	default:
		return MPEG1
	}
}

func layerOf(h header.FrameHeader) Layer {
	switch h.Layer() {
	case header.LayerI:
		return LayerI
	case header.LayerII:
		return LayerII
	default:
		return LayerIII
	}
}

func modeOf(h header.FrameHeader) Mode {
	switch h.Mode() {
	case header.ModeJointStereo:
		return JointStereo
	case header.ModeDualChannel:
		return DualChannel
	case header.ModeMono:
		return Mono
	default:
		return Stereo
	}
}
