package mpa

import (
	"io"

	"github.com/llehouerou/go-mpa/internal/bits"
	"github.com/llehouerou/go-mpa/internal/crc"
	"github.com/llehouerou/go-mpa/internal/header"
	"github.com/llehouerou/go-mpa/internal/layer12"
	"github.com/llehouerou/go-mpa/internal/layer3"
	"github.com/llehouerou/go-mpa/internal/output"
)

// Frame is one decoded audio frame: its PCM samples plus the header
// metadata of the frame that produced them.
type Frame struct {
	header   header.FrameHeader
	samples  []int16 // interleaved
	channels int
	perChan  int // samples per channel
}

// PCM returns the frame's interleaved signed 16-bit samples.
func (f *Frame) PCM() []int16 { return f.samples }

// SamplesPerChannel returns the sample count per output channel.
func (f *Frame) SamplesPerChannel() int { return f.perChan }

// Channels returns the number of interleaved output channels.
func (f *Frame) Channels() int { return f.channels }

// SampleRate returns the frame's sample rate in Hz.
func (f *Frame) SampleRate() int { return f.header.SampleRate() }

// Bitrate returns the frame's bitrate in bits per second. Streams may
// switch bitrate per frame.
func (f *Frame) Bitrate() int { return f.header.Bitrate() }

// Layer returns the frame's audio layer.
func (f *Frame) Layer() Layer { return layerOf(f.header) }

// Version returns the frame's MPEG version.
func (f *Frame) Version() Version { return versionOf(f.header) }

// Mode returns the frame's channel mode.
func (f *Frame) Mode() Mode { return modeOf(f.header) }

// Padding reports whether the frame carries a padding slot.
func (f *Frame) Padding() bool { return f.header.Padding() }

// bytes serializes the samples to little-endian order.
func (f *Frame) bytes() []byte {
	out := make([]byte, 2*len(f.samples))
	output.ToBytes(f.samples, out)
	return out
}

// DecodeFrame decodes and returns the next frame of the stream. It
// reports io.EOF at the clean end of the stream. Layer III frames
// whose main data back-reference cannot be satisfied yet produce a
// frame with zero samples per channel.
func (d *Decoder) DecodeFrame() (*Frame, error) {
	if d.closed {
		return nil, ErrDecoderClosed
	}
	if d.err != nil {
		return nil, d.err
	}
	f, err := d.decodeFrame()
	if err != nil && err != io.EOF {
		d.err = err
	}
	return f, err
}

func (d *Decoder) decodeFrame() (*Frame, error) {
	h, err := d.nextHeader()
	if err != nil {
		return nil, err
	}

	body := make([]byte, h.FrameSize()-4)
	if _, err := d.readFull(body); err != nil {
		// A frame cut off by the end of input is dropped.
		return nil, eofOrTruncated(err)
	}

	var c *crc.CRC16
	var crcStored uint16
	pos := 0
	if h.Protected() {
		crcStored = uint16(body[0])<<8 | uint16(body[1])
		pos = 2
		c = crc.New()
		// The CRC covers the last 16 header bits and the layer's
		// protected side data.
		c.AddBits(uint32(h)&0xFFFF, 16)
	}

	n := 0
	switch h.Layer() {
	case header.LayerIII:
		n, err = d.decodeLayerIII(h, body[pos:], c, crcStored)
	case header.LayerII:
		n, err = d.decodeLayerII(h, body[pos:], c, crcStored)
	case header.LayerI:
		n, err = d.decodeLayerI(h, body[pos:], c, crcStored)
	}
	if err != nil {
		return nil, err
	}
	return d.newFrame(h, n), nil
}

func (d *Decoder) decodeLayerIII(h header.FrameHeader, body []byte, c *crc.CRC16, stored uint16) (int, error) {
	sideSize := h.SideInfoSize()
	if len(body) < sideSize {
		return 0, ErrTruncatedFrame
	}
	side := body[:sideSize]
	bad := false
	if c != nil {
		for _, b := range side {
			c.AddBits(uint32(b), 8)
		}
		bad = c.Checksum() != stored
	}
	n, err := d.l3.Decode(h, bits.NewReader(side), body[sideSize:], d.pcm)
	if err == layer3.ErrSideInfo {
		return 0, ErrBadSideInfo
	}
	if err == layer3.ErrHuffmanData {
		return 0, ErrBadHuffmanData
	}
	if err != nil {
		return 0, err
	}
	if bad {
		// The side info failed its CRC. The frame is still decoded so
		// the bit reservoir stays aligned, but its audio is muted.
		for i := 0; i < n; i++ {
			d.pcm[0][i] = 0
			d.pcm[1][i] = 0
		}
	}
	return n, nil
}

func (d *Decoder) decodeLayerII(h header.FrameHeader, body []byte, c *crc.CRC16, stored uint16) (int, error) {
	err := d.l12.DecodeLayerII(h, bits.NewReader(body), c, d.pcm)
	if err == layer12.ErrBadAllocation {
		return 0, ErrBadAllocation
	}
	if err != nil {
		return 0, err
	}
	return d.checkCRC(c, stored, 1152), nil
}

func (d *Decoder) decodeLayerI(h header.FrameHeader, body []byte, c *crc.CRC16, stored uint16) (int, error) {
	err := d.l12.DecodeLayerI(h, bits.NewReader(body), c, d.pcm)
	if err == layer12.ErrBadAllocation {
		return 0, ErrBadAllocation
	}
	if err != nil {
		return 0, err
	}
	return d.checkCRC(c, stored, 384), nil
}

// checkCRC silences a Layer I/II frame whose protected bits failed the
// CRC: the allocation data is untrustworthy, so the decoded samples
// are noise.
func (d *Decoder) checkCRC(c *crc.CRC16, stored uint16, n int) int {
	if c != nil && c.Checksum() != stored {
		for i := 0; i < n; i++ {
			d.pcm[0][i] = 0
			d.pcm[1][i] = 0
		}
	}
	return n
}

// newFrame interleaves the float samples into a 16-bit frame.
func (d *Decoder) newFrame(h header.FrameHeader, n int) *Frame {
	mono := h.Channels() == 1
	channels := 2
	if mono && d.config.NoUpmix {
		channels = 1
	}

	f := &Frame{
		header:   h,
		channels: channels,
		perChan:  n,
		samples:  make([]int16, n*channels),
	}
	if n == 0 {
		return f
	}
	if channels == 1 {
		output.ToPCM16BitMono(d.pcm[0][:n], n, f.samples)
		return f
	}
	if mono {
		output.ToPCM16Bit(d.pcm[0][:n], nil, n, true, f.samples)
		return f
	}
	output.ToPCM16Bit(d.pcm[0][:n], d.pcm[1][:n], n, false, f.samples)
	return f
}
