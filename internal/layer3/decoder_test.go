package layer3

import (
	"math"
	"testing"

	"github.com/llehouerou/go-mpa/internal/bits"
	"github.com/llehouerou/go-mpa/internal/header"
)

func headerFromBytes(t *testing.T, b ...byte) header.FrameHeader {
	t.Helper()
	h := header.Parse(b)
	if !h.IsValid() {
		t.Fatalf("header % X is not valid", b)
	}
	return h
}

func TestRequantizeUnity(t *testing.T) {
	d := NewDecoder()
	h := headerFromBytes(t, 0xFF, 0xFB, 0x90, 0xC4)
	// global_gain 210 cancels the gain term; with all scale factors
	// zero the output is just sign(is) * |is|^(4/3).
	g := &granule{globalGain: 210, count1: 4}
	var is [576]int
	is[0] = 1
	is[1] = -8
	is[2] = 2
	var xr [576]float32
	if err := d.requantize(h, g, &is, &xr); err != nil {
		t.Fatalf("requantize: %v", err)
	}
	want := []float64{1, -16, math.Pow(2, 4.0/3), 0}
	for i, w := range want {
		if math.Abs(float64(xr[i])-w) > 1e-4 {
			t.Errorf("xr[%d] = %v, want %v", i, xr[i], w)
		}
	}
}

func TestRequantizeScalefacScale(t *testing.T) {
	d := NewDecoder()
	h := headerFromBytes(t, 0xFF, 0xFB, 0x90, 0xC4)
	// Scale factor 2 attenuates by 2^-1 at scalefac_scale 0 and by
	// 2^-2 at scalefac_scale 1.
	g := &granule{globalGain: 210, count1: 1}
	g.scalefacL[0] = 2
	var is [576]int
	is[0] = 1
	var xr [576]float32

	if err := d.requantize(h, g, &is, &xr); err != nil {
		t.Fatalf("requantize: %v", err)
	}
	if math.Abs(float64(xr[0])-0.5) > 1e-6 {
		t.Errorf("scalefac_scale 0: xr[0] = %v, want 0.5", xr[0])
	}

	g.scalefacScale = 1
	if err := d.requantize(h, g, &is, &xr); err != nil {
		t.Fatalf("requantize: %v", err)
	}
	if math.Abs(float64(xr[0])-0.25) > 1e-6 {
		t.Errorf("scalefac_scale 1: xr[0] = %v, want 0.25", xr[0])
	}
}

func TestReorderShortBlock(t *testing.T) {
	d := NewDecoder()
	h := headerFromBytes(t, 0xFF, 0xFB, 0x90, 0xC4) // 44.1 kHz
	g := &granule{windowSwitching: true, blockType: 2, count1: 576}
	var xr [576]float32
	for i := range xr {
		xr[i] = float32(i)
	}
	if err := d.reorder(h, g, &xr); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	// First short band at 44.1 kHz is 4 samples wide. Codeword order
	// is window major; the filterbank wants the windows interleaved.
	want := []float32{0, 4, 8, 1, 5, 9, 2, 6, 10, 3, 7, 11}
	for i, w := range want {
		if xr[i] != w {
			t.Errorf("xr[%d] = %v, want %v", i, xr[i], w)
		}
	}
}

func TestReorderLongBlockUntouched(t *testing.T) {
	d := NewDecoder()
	h := headerFromBytes(t, 0xFF, 0xFB, 0x90, 0xC4)
	g := &granule{count1: 576}
	var xr [576]float32
	xr[0], xr[100] = 3, 7
	if err := d.reorder(h, g, &xr); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if xr[0] != 3 || xr[100] != 7 {
		t.Errorf("long block changed: xr[0]=%v xr[100]=%v", xr[0], xr[100])
	}
}

func TestReadHuffmanBigValuesAndCount1(t *testing.T) {
	d := NewDecoder()
	h := headerFromBytes(t, 0xFF, 0xFB, 0x90, 0xC4)
	// Two big value pairs from table 1, then one count1 quadruple.
	// Bit stream: "1" (0,0), "000" (1,1), sign bits 0 and 1, then
	// count1 codeword "1" which is the all-zero quadruple.
	rv := &bits.Reserve{}
	rv.Write([]byte{0b10000110})
	rv.SetBytePos(0)

	g := &granule{
		part23Length: 7,
		bigValues:    2,
		tableSelect:  [3]int{1, 1, 1},
	}
	var is [576]int
	if err := d.readHuffman(rv, h, g, 0, &is); err != nil {
		t.Fatalf("readHuffman: %v", err)
	}
	want := []int{0, 0, 1, -1, 0, 0, 0, 0}
	for i, w := range want {
		if is[i] != w {
			t.Errorf("is[%d] = %d, want %d", i, is[i], w)
		}
	}
	if g.count1 != 8 {
		t.Errorf("count1 = %d, want 8", g.count1)
	}
	if rv.Tell() != 7 {
		t.Errorf("bit position = %d, want 7", rv.Tell())
	}
}

func TestReadHuffmanOverrunDropsLastQuad(t *testing.T) {
	d := NewDecoder()
	h := headerFromBytes(t, 0xFF, 0xFB, 0x90, 0xC4)
	// No big values. Budget of 3 bits, but the first count1 codeword
	// from table A needs only 1 bit, so two quads fit and a third
	// one starts past the boundary and must be dropped.
	// Stream: "1" "1" then "0110..." which would decode as a longer
	// codeword crossing the boundary.
	rv := &bits.Reserve{}
	rv.Write([]byte{0b11011000, 0b00000000})
	rv.SetBytePos(0)

	g := &granule{part23Length: 3, count1Table: 0}
	var is [576]int
	if err := d.readHuffman(rv, h, g, 0, &is); err != nil {
		t.Fatalf("readHuffman: %v", err)
	}
	// Quads one and two decode inside the budget; the third overran
	// and was rewound.
	if g.count1 != 8 {
		t.Errorf("count1 = %d, want 8", g.count1)
	}
	if rv.Tell() != 3 {
		t.Errorf("bit position = %d, want 3", rv.Tell())
	}
	for i := 0; i < 12; i++ {
		if is[i] != 0 {
			t.Errorf("is[%d] = %d, want 0", i, is[i])
		}
	}
}

func TestDecodeSilentFrame(t *testing.T) {
	d := NewDecoder()
	h := headerFromBytes(t, 0xFF, 0xFB, 0x90, 0xC4)
	// 128 kbit/s at 44.1 kHz: 417 byte frame, 17 bytes side info,
	// no CRC. All-zero side info means both granules are silent.
	sideInfo := make([]byte, 17)
	mainData := make([]byte, 417-4-17)
	var pcm [2][]float32
	pcm[0] = make([]float32, 1152)
	pcm[1] = make([]float32, 1152)
	// Mark the buffers to prove they are written.
	pcm[0][0] = 42

	n, err := d.Decode(h, bits.NewReader(sideInfo), mainData, pcm)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 1152 {
		t.Fatalf("n = %d, want 1152", n)
	}
	for i, v := range pcm[0] {
		if v != 0 {
			t.Fatalf("pcm[0][%d] = %v, want 0", i, v)
		}
	}
}

func TestDecodeSkipsUnprimedReservoir(t *testing.T) {
	d := NewDecoder()
	h := headerFromBytes(t, 0xFF, 0xFB, 0x90, 0xC4)
	// main_data_begin = 9 but the reservoir is empty: the frame
	// cannot decode, its main data must still be retained.
	sideInfo := make([]byte, 17)
	sideInfo[0] = 0x04
	sideInfo[1] = 0x80
	mainData := make([]byte, 396)
	var pcm [2][]float32
	pcm[0] = make([]float32, 1152)
	pcm[1] = make([]float32, 1152)

	n, err := d.Decode(h, bits.NewReader(sideInfo), mainData, pcm)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 0 {
		t.Fatalf("n = %d, want 0 for unprimed reservoir", n)
	}
	if d.reserve.BytesWritten() != 396 {
		t.Errorf("reservoir holds %d bytes, want 396", d.reserve.BytesWritten())
	}
}

func TestDecodeMutesReservoirOverrun(t *testing.T) {
	d := NewDecoder()
	h := headerFromBytes(t, 0xFF, 0xFB, 0x90, 0xC4)
	// Granule 0 claims 30 bits of main data but none arrive: the
	// reservoir reads return zeros, which decode as count1 quads with
	// nonzero magnitudes. The granule must come out silent instead of
	// synthesizing that garbage.
	w := newBitWriter()
	w.put(0, 9)    // main_data_begin
	w.put(0, 5)    // private bits
	w.put(0, 4)    // scfsi
	w.put(30, 12)  // granule 0 part2_3_length
	w.put(0, 9)    // big_values
	w.put(210, 8)  // global_gain: unity requantization
	w.put(0, 4+1+15+4+3+3)
	w.put(0, 59) // granule 1

	var pcm [2][]float32
	pcm[0] = make([]float32, 1152)
	pcm[1] = make([]float32, 1152)
	n, err := d.Decode(h, bits.NewReader(w.bytes(17)), nil, pcm)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 1152 {
		t.Fatalf("n = %d, want 1152", n)
	}
	for i, v := range pcm[0] {
		if v != 0 {
			t.Fatalf("pcm[0][%d] = %v, want muted output", i, v)
		}
	}
}

func TestDecoderReset(t *testing.T) {
	d := NewDecoder()
	d.reserve.Write(make([]byte, 100))
	d.store[0][0][0] = 1
	d.Reset()
	if d.reserve.BytesWritten() != 0 {
		t.Errorf("reservoir not cleared: %d bytes", d.reserve.BytesWritten())
	}
	if d.store[0][0][0] != 0 {
		t.Errorf("overlap store not cleared")
	}
}
