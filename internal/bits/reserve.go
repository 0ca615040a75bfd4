package bits

// ReserveSize is the capacity of the bit reservoir in bytes. Layer III
// frames may reference up to 511 bytes of main data from earlier frames
// (main_data_begin is a 9-bit field); 4096 bytes comfortably covers the
// largest frame plus that back-reference.
const ReserveSize = 4096

const reserveMask = ReserveSize - 1

// Reserve is the Layer III bit reservoir: a ring of the most recent main
// data bytes with an MSB-first bit cursor. Positions are absolute (they
// count from the first byte ever written), so a frame's main_data_begin
// back-pointer maps directly onto a cursor position.
//
// Reading past the written region, or positioning the cursor outside the
// ring's retained window, sets the overrun flag and yields zero bits.
type Reserve struct {
	buf     [ReserveSize]byte
	written int // absolute count of bytes written
	bitPos  int // absolute bit position of the read cursor
	overrun bool
}

// Write appends main data bytes to the reservoir, evicting the oldest
// bytes once the ring is full.
func (r *Reserve) Write(p []byte) {
	for _, b := range p {
		r.buf[r.written&reserveMask] = b
		r.written++
	}
}

// BytesWritten returns the absolute number of bytes written so far.
func (r *Reserve) BytesWritten() int {
	return r.written
}

// SetBytePos positions the read cursor at an absolute byte offset.
// It reports false when the offset is before the ring's retained window
// or past the written region; the cursor is left unchanged in that case.
func (r *Reserve) SetBytePos(pos int) bool {
	if pos < 0 || pos > r.written || pos < r.written-ReserveSize {
		return false
	}
	r.bitPos = pos * 8
	r.overrun = false
	return true
}

// SetBitPos positions the read cursor at an absolute bit offset. Like
// SetBytePos it reports false and leaves the cursor unchanged when the
// offset falls outside the retained window.
func (r *Reserve) SetBitPos(pos int) bool {
	bytePos := pos >> 3
	if pos < 0 || bytePos > r.written || bytePos < r.written-ReserveSize {
		return false
	}
	r.bitPos = pos
	return true
}

// Tell returns the absolute bit position of the read cursor.
func (r *Reserve) Tell() int {
	return r.bitPos
}

// Overrun returns true if a read or rewind went outside the valid window.
func (r *Reserve) Overrun() bool {
	return r.overrun
}

// ReadBit reads a single bit.
func (r *Reserve) ReadBit() int {
	return r.ReadBits(1)
}

// ReadBits reads n bits MSB-first, n in 0..32. Reads past the written
// region set the overrun flag and return zeros for the missing bits.
func (r *Reserve) ReadBits(n uint) int {
	if n == 0 {
		return 0
	}
	v := 0
	for i := uint(0); i < n; i++ {
		bytePos := r.bitPos >> 3
		var bit int
		if bytePos >= r.written {
			r.overrun = true
		} else {
			shift := 7 - uint(r.bitPos&7)
			bit = int(r.buf[bytePos&reserveMask]>>shift) & 1
		}
		v = v<<1 | bit
		r.bitPos++
	}
	return v
}

// RewindBits moves the read cursor n bits backwards. Used to undo a
// count1 quadruple decoded past the granule's bit budget.
func (r *Reserve) RewindBits(n int) {
	r.bitPos -= n
	if r.bitPos < 0 {
		r.bitPos = 0
		r.overrun = true
	}
}

// RewindBytes moves the read cursor n bytes backwards.
func (r *Reserve) RewindBytes(n int) {
	r.RewindBits(n * 8)
}
