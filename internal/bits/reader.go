package bits

// Reader reads bits MSB-first from a byte buffer.
//
// Two 32-bit words are kept loaded: bufa is the word being consumed
// and bufb the look-ahead, so ShowBits never touches the byte slice.
type Reader struct {
	buffer   []byte
	bufa     uint32
	bufb     uint32
	bitsLeft uint32 // unread bits in bufa
	pos      int    // byte offset of the next word to load
	err      bool
}

// NewReader creates a Reader over data. The first 64 bits (zero padded
// past the end of short buffers) are pre-loaded. An empty buffer sets
// the error flag.
func NewReader(data []byte) *Reader {
	r := &Reader{buffer: data}
	if len(data) == 0 {
		r.err = true
		return r
	}
	r.bufa = r.loadWord(0)
	r.bufb = r.loadWord(4)
	r.pos = 8
	r.bitsLeft = 32
	return r
}

// loadWord reads a big-endian word at offset, padding with zero bytes
// past the end of the buffer.
func (r *Reader) loadWord(offset int) uint32 {
	var w uint32
	for i := 0; i < 4; i++ {
		w <<= 8
		if offset+i < len(r.buffer) {
			w |= uint32(r.buffer[offset+i])
		}
	}
	return w
}

// Error reports whether the reader was created over an empty buffer.
func (r *Reader) Error() bool { return r.err }

// BitsLeft returns the number of unread bits in the current word.
func (r *Reader) BitsLeft() uint32 { return r.bitsLeft }

// BitsConsumed returns the number of bits read so far.
func (r *Reader) BitsConsumed() int {
	return (r.pos-8)*8 + int(32-r.bitsLeft)
}

// ShowBits returns the next n bits without consuming them, n in 0..32.
func (r *Reader) ShowBits(n uint) uint32 {
	if n == 0 {
		return 0
	}
	if n <= uint(r.bitsLeft) {
		return (r.bufa << (32 - r.bitsLeft)) >> (32 - n)
	}
	// Straddles the word boundary: low bits of bufa, high bits of bufb.
	fromB := n - uint(r.bitsLeft)
	return (r.bufa&(1<<r.bitsLeft-1))<<fromB | r.bufb>>(32-fromB)
}

// FlushBits discards n bits, n in 0..32.
func (r *Reader) FlushBits(n uint) {
	if r.err {
		return
	}
	if n < uint(r.bitsLeft) {
		r.bitsLeft -= uint32(n)
		return
	}
	// bufa is exhausted, promote the look-ahead word.
	r.bufa = r.bufb
	r.bufb = r.loadWord(r.pos)
	r.pos += 4
	r.bitsLeft += 32 - uint32(n)
}

// GetBits reads and returns n bits, n in 0..32.
func (r *Reader) GetBits(n uint) uint32 {
	if n == 0 {
		return 0
	}
	v := r.ShowBits(n)
	r.FlushBits(n)
	return v
}

// Get1Bit reads a single bit.
func (r *Reader) Get1Bit() uint8 {
	if r.bitsLeft > 0 {
		r.bitsLeft--
		return uint8(r.bufa >> r.bitsLeft & 1)
	}
	return uint8(r.GetBits(1))
}
