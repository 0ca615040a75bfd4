package mpa

import (
	"io"

	"github.com/llehouerou/go-mpa/internal/header"
	"github.com/llehouerou/go-mpa/internal/layer12"
	"github.com/llehouerou/go-mpa/internal/layer3"
)

// maxSyncScan bounds how many bytes of garbage the frame synchroniser
// chews through before giving up on the stream.
const maxSyncScan = 1 << 16

// Decoder decodes an MPEG audio stream (Layers I, II and III; MPEG-1,
// 2 and 2.5) read from an io.Reader.
//
// A Decoder is not safe for concurrent use. Read-only accessors may be
// called at any time after NewDecoder returns.
type Decoder struct {
	src    io.Reader
	config Config

	// hold buffers bytes read ahead of the parser during sync scans.
	hold []byte

	header header.FrameHeader // first frame, fixes the stream params
	l12    *layer12.Decoder
	l3     *layer3.Decoder

	pcm [2][]float32 // per-frame float samples

	// Pending serialized PCM for Read.
	out    []byte
	outPos int

	closed bool
	err    error // sticky stream error
}

// NewDecoder reads ahead to the first valid frame header, skipping
// ID3v2/ID3v1 metadata and other garbage, and captures the stream
// parameters. The frame itself is not consumed; the first Read or
// DecodeFrame call decodes it.
func NewDecoder(r io.Reader) (*Decoder, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	d := &Decoder{
		src:    r,
		l12:    layer12.NewDecoder(),
		l3:     layer3.NewDecoder(),
	}
	d.pcm[0] = make([]float32, 1152)
	d.pcm[1] = make([]float32, 1152)

	h, err := d.nextHeader()
	if err != nil {
		return nil, err
	}
	d.header = h
	// Leave the header bytes for the frame reader.
	d.unread(headerBytes(h))
	return d, nil
}

// SetConfiguration applies decoder options. Call it before the first
// Read or DecodeFrame.
func (d *Decoder) SetConfiguration(cfg Config) {
	d.config = cfg
}

// SampleRate returns the stream's sample rate in Hz.
func (d *Decoder) SampleRate() int { return d.header.SampleRate() }

// Channels returns the number of output channels: 2 unless the stream
// is mono and upmixing is disabled.
func (d *Decoder) Channels() int {
	if d.header.Channels() == 1 && d.config.NoUpmix {
		return 1
	}
	return 2
}

// Layer returns the stream's audio layer.
func (d *Decoder) Layer() Layer { return layerOf(d.header) }

// Version returns the stream's MPEG version.
func (d *Decoder) Version() Version { return versionOf(d.header) }

// Mode returns the stream's channel mode.
func (d *Decoder) Mode() Mode { return modeOf(d.header) }

// Read fills p with interleaved signed 16-bit little-endian PCM and
// reports io.EOF at the clean end of the stream.
func (d *Decoder) Read(p []byte) (int, error) {
	if d.closed {
		return 0, ErrDecoderClosed
	}
	total := 0
	for total < len(p) {
		if d.outPos == len(d.out) {
			f, err := d.DecodeFrame()
			if err != nil {
				if total > 0 && err == io.EOF {
					return total, nil
				}
				return total, err
			}
			d.out = f.bytes()
			d.outPos = 0
			continue
		}
		n := copy(p[total:], d.out[d.outPos:])
		d.outPos += n
		total += n
	}
	return total, nil
}

// Close releases the decoder. Further calls to Read or DecodeFrame
// fail; the underlying reader is not closed.
func (d *Decoder) Close() {
	d.closed = true
	d.out = nil
	d.hold = nil
}

// unread pushes bytes back so the next read sees them first.
func (d *Decoder) unread(b []byte) {
	d.hold = append(b, d.hold...)
}

// readFull fills p from the pushback buffer and then the source.
func (d *Decoder) readFull(p []byte) (int, error) {
	n := copy(p, d.hold)
	d.hold = d.hold[n:]
	if n == len(p) {
		return n, nil
	}
	m, err := io.ReadFull(d.src, p[n:])
	return n + m, err
}

func headerBytes(h header.FrameHeader) []byte {
	return []byte{byte(h >> 24), byte(h >> 16), byte(h >> 8), byte(h)}
}

// nextHeader scans the stream for the next valid frame header,
// skipping ID3 tags and resynchronising on garbage. The four header
// bytes are consumed. A valid frame header whose parameters differ
// from the stream's first frame is treated as a false sync.
func (d *Decoder) nextHeader() (header.FrameHeader, error) {
	var buf [4]byte
	if _, err := d.readFull(buf[:]); err != nil {
		return 0, eofOrTruncated(err)
	}
	skipped := 0
	for {
		// ID3v2 tag: 10 byte header with a syncsafe size.
		if buf[0] == 'I' && buf[1] == 'D' && buf[2] == '3' {
			if err := d.skipID3v2(); err != nil {
				return 0, err
			}
			if _, err := d.readFull(buf[:]); err != nil {
				return 0, eofOrTruncated(err)
			}
			continue
		}
		// ID3v1 tag: 128 bytes starting with "TAG".
		if buf[0] == 'T' && buf[1] == 'A' && buf[2] == 'G' {
			var tag [124]byte
			if _, err := d.readFull(tag[:]); err != nil {
				return 0, eofOrTruncated(err)
			}
			if _, err := d.readFull(buf[:]); err != nil {
				return 0, eofOrTruncated(err)
			}
			continue
		}

		h := header.Parse(buf[:])
		if h.IsValid() && d.matchesStream(h) {
			if skipped > 0 {
				// The reservoir and filter history are stale after a
				// discontinuity.
				d.resetAfterGap()
			}
			return h, nil
		}
		if isFreeFormat(h) {
			return 0, ErrFreeFormat
		}

		skipped++
		if skipped > maxSyncScan {
			return 0, ErrNoSyncword
		}
		copy(buf[:3], buf[1:])
		if _, err := d.readFull(buf[3:]); err != nil {
			return 0, io.EOF // trailing garbage
		}
	}
}

// matchesStream reports whether h carries the same version, layer and
// sample rate as the first frame. Bitrate, padding and mode extension
// may change frame to frame.
func (d *Decoder) matchesStream(h header.FrameHeader) bool {
	if d.header == 0 {
		return true
	}
	return h.Version() == d.header.Version() &&
		h.Layer() == d.header.Layer() &&
		h.SampleRate() == d.header.SampleRate() &&
		h.Channels() == d.header.Channels()
}

// isFreeFormat reports a header that is valid except for the free
// format bitrate index, which this decoder does not support.
func isFreeFormat(h header.FrameHeader) bool {
	const sync = 0xFFE00000
	if uint32(h)&sync != sync {
		return false
	}
	return h.BitrateIndex() == 0 &&
		h.Version() != 1 && h.Layer() != 0 &&
		h.SampleRate() != 0
}

func (d *Decoder) skipID3v2() error {
	// Remaining header: version (2), flags (1), syncsafe size (4).
	var rest [6]byte
	if _, err := d.readFull(rest[:]); err != nil {
		return eofOrTruncated(err)
	}
	size := int(rest[2]&0x7F)<<21 | int(rest[3]&0x7F)<<14 |
		int(rest[4]&0x7F)<<7 | int(rest[5]&0x7F)
	var skip [4096]byte
	for size > 0 {
		n := size
		if n > len(skip) {
			n = len(skip)
		}
		if _, err := d.readFull(skip[:n]); err != nil {
			return eofOrTruncated(err)
		}
		size -= n
	}
	return nil
}

// resetAfterGap clears the cross-frame state that a stream
// discontinuity invalidates.
func (d *Decoder) resetAfterGap() {
	d.l12.Reset()
	d.l3.Reset()
}

// eofOrTruncated treats a stream that ends during sync scanning or tag
// skipping as a clean end of stream.
func eofOrTruncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return io.EOF
	}
	return err
}
