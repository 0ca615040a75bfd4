// Package huffman implements the Layer III spectral Huffman codebooks.
//
// The 32 big-value tables and 2 count1 tables are stored as canonical
// (codeword, length) lists and unpacked into binary decode trees at
// package init. Decoding walks the tree one bit at a time, which keeps
// the bit source interface down to a single-bit read and lets the bit
// reservoir feed the decoder directly.
//
// Reference: ISO/IEC 11172-3 sections 2.4.2.7 and B.7
package huffman

import "fmt"

// BitSource supplies the coded bits, MSB first.
type BitSource interface {
	ReadBit() int
}

type node struct {
	child [2]*node
	leaf  bool
	x, y  uint8
}

// Table is one spectral pair codebook.
type Table struct {
	root    *node
	ylen    int
	Linbits uint // escape bits appended to a magnitude of 15
}

// DecodePair reads one codeword and returns the magnitude pair (x, y).
// Sign bits and linbits escapes are the caller's concern.
func (t *Table) DecodePair(src BitSource) (x, y int) {
	n := t.root
	for !n.leaf {
		n = n.child[src.ReadBit()]
	}
	return int(n.x), int(n.y)
}

// spectral tables indexed by table_select. Entries 0, 4 and 14 are nil:
// table 0 codes no data and 4/14 are not defined.
var spectral [32]*Table

// count1 tables indexed by the count1table_select bit.
var count1 [2]*Table

// Spectral returns the pair codebook for a table_select value, or nil
// for table 0 (all-zero region).
func Spectral(tableSelect int) (*Table, error) {
	if tableSelect < 0 || tableSelect > 31 {
		return nil, fmt.Errorf("huffman: table_select %d out of range", tableSelect)
	}
	if tableSelect != 0 && spectral[tableSelect] == nil {
		return nil, fmt.Errorf("huffman: table %d is not defined", tableSelect)
	}
	return spectral[tableSelect], nil
}

// DecodeQuad reads one count1 codeword and returns the four magnitude
// bits (v, w, x, y). The second table is the 4-bit identity code.
func DecodeQuad(tableB bool, src BitSource) (v, w, x, y int) {
	idx := 0
	if tableB {
		idx = 1
	}
	n := count1[idx].root
	for !n.leaf {
		n = n.child[src.ReadBit()]
	}
	val := int(n.x)
	return val >> 3 & 1, val >> 2 & 1, val >> 1 & 1, val & 1
}

// build unpacks a (code, length) list into a decode tree. ylen is the
// row width of the value matrix; for count1 tables the combined 4-bit
// value is stored in x.
func build(codes []uint32, lengths []uint8, ylen int, quad bool) *node {
	root := &node{}
	for i, code := range codes {
		n := root
		for bit := int(lengths[i]) - 1; bit >= 0; bit-- {
			b := code >> uint(bit) & 1
			if n.child[b] == nil {
				n.child[b] = &node{}
			}
			n = n.child[b]
		}
		n.leaf = true
		if quad {
			n.x = uint8(i)
		} else {
			n.x = uint8(i / ylen)
			n.y = uint8(i % ylen)
		}
	}
	return root
}

func newTable(codes []uint32, lengths []uint8, ylen int, linbits uint) *Table {
	return &Table{
		root:    build(codes, lengths, ylen, false),
		ylen:    ylen,
		Linbits: linbits,
	}
}

func init() {
	spectral[1] = newTable(t1code, t1len, 2, 0)
	spectral[2] = newTable(t2code, t2len, 3, 0)
	spectral[3] = newTable(t3code, t3len, 3, 0)
	spectral[5] = newTable(t5code, t5len, 4, 0)
	spectral[6] = newTable(t6code, t6len, 4, 0)
	spectral[7] = newTable(t7code, t7len, 6, 0)
	spectral[8] = newTable(t8code, t8len, 6, 0)
	spectral[9] = newTable(t9code, t9len, 6, 0)
	spectral[10] = newTable(t10code, t10len, 8, 0)
	spectral[11] = newTable(t11code, t11len, 8, 0)
	spectral[12] = newTable(t12code, t12len, 8, 0)
	spectral[13] = newTable(t13code, t13len, 16, 0)
	spectral[15] = newTable(t15code, t15len, 16, 0)

	// Tables 16-23 share one code list, 24-31 another; only the escape
	// width differs.
	linbits16 := [8]uint{1, 2, 3, 4, 6, 8, 10, 13}
	linbits24 := [8]uint{4, 5, 6, 7, 8, 9, 11, 13}
	tree16 := build(t16code, t16len, 16, false)
	tree24 := build(t24code, t24len, 16, false)
	for i := 0; i < 8; i++ {
		spectral[16+i] = &Table{root: tree16, ylen: 16, Linbits: linbits16[i]}
		spectral[24+i] = &Table{root: tree24, ylen: 16, Linbits: linbits24[i]}
	}

	count1[0] = &Table{root: build(t32code, t32len, 0, true)}
	count1[1] = &Table{root: build(t33code, t33len, 0, true)}
}
