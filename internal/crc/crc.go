// Package crc implements the CRC-16 error check used by MPEG audio
// frames (generator polynomial x^16 + x^15 + x^2 + 1, preset to all
// ones).
//
// Reference: ISO/IEC 11172-3 section 2.4.3.1 and annex B.5
package crc

const polynomial = 0x8005

// CRC16 accumulates the checksum over the protected bit fields of a
// frame. The protected region is the last 16 bits of the header plus a
// layer-dependent stretch of audio data, fed bit-exact in stream order.
type CRC16 struct {
	state uint16
}

// New returns a CRC16 preset to 0xFFFF.
func New() *CRC16 {
	return &CRC16{state: 0xFFFF}
}

// Reset presets the register for a new frame.
func (c *CRC16) Reset() {
	c.state = 0xFFFF
}

// AddBits feeds the low n bits of value into the register, MSB first.
func (c *CRC16) AddBits(value uint32, n uint) {
	for i := n; i > 0; i-- {
		bit := uint16(value>>(i-1)) & 1
		if (c.state>>15)&1 != bit {
			c.state = c.state<<1 ^ polynomial
		} else {
			c.state <<= 1
		}
	}
}

// Checksum returns the current register value. A frame passes the check
// when this equals the crc_check word transmitted after the header.
func (c *CRC16) Checksum() uint16 {
	return c.state
}
