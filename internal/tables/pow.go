package tables

import "math"

// Pow43 caches x^(4/3) for every quantized magnitude the Huffman stage
// can produce: 15 plus the largest 13-bit linbits escape gives 8206.
var Pow43 [8207]float64

func init() {
	for i := range Pow43 {
		Pow43[i] = math.Pow(float64(i), 4.0/3.0)
	}
}
