// Package tables contains lookup tables shared by the Layer III decode
// stages.
// This file provides the scale factor band boundary tables.
//
// Reference: ISO/IEC 11172-3 table B.8, ISO/IEC 13818-3 table B.2
package tables

import "errors"

// ErrInvalidSRIndex indicates an invalid sample rate index.
var ErrInvalidSRIndex = errors.New("tables: invalid sample rate index")

// SFBLong holds the long-block scale factor band start indices (21
// bands plus a terminator at 576), keyed by the 0..8 sampling rate
// index (44.1/48/32, 22.05/24/16, 11.025/12/8 kHz).
var SFBLong = [9][23]int{
	{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 52, 62, 74, 90, 110, 134, 162, 196, 238, 288, 342, 418, 576},
	{0, 4, 8, 12, 16, 20, 24, 30, 36, 42, 50, 60, 72, 88, 106, 128, 156, 190, 230, 276, 330, 384, 576},
	{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 54, 66, 82, 102, 126, 156, 194, 240, 296, 364, 448, 550, 576},
	{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 116, 140, 168, 200, 238, 284, 336, 396, 464, 522, 576},
	{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 114, 136, 162, 194, 232, 278, 332, 394, 464, 540, 576},
	{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 116, 140, 168, 200, 238, 284, 336, 396, 464, 522, 576},
	{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 116, 140, 168, 200, 238, 284, 336, 396, 464, 522, 576},
	{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 116, 140, 168, 200, 238, 284, 336, 396, 464, 522, 576},
	{0, 12, 24, 36, 48, 60, 72, 88, 108, 132, 160, 192, 232, 280, 336, 400, 476, 566, 568, 570, 572, 574, 576},
}

// SFBShort holds the short-block band start indices (12 bands plus a
// terminator at 192), same keying as SFBLong.
var SFBShort = [9][14]int{
	{0, 4, 8, 12, 16, 22, 30, 40, 52, 66, 84, 106, 136, 192},
	{0, 4, 8, 12, 16, 22, 28, 38, 50, 64, 80, 100, 126, 192},
	{0, 4, 8, 12, 16, 22, 30, 42, 58, 78, 104, 138, 180, 192},
	{0, 4, 8, 12, 18, 24, 32, 42, 56, 74, 100, 132, 174, 192},
	{0, 4, 8, 12, 18, 26, 36, 48, 62, 80, 104, 136, 180, 192},
	{0, 4, 8, 12, 18, 26, 36, 48, 62, 80, 104, 134, 174, 192},
	{0, 4, 8, 12, 18, 26, 36, 48, 62, 80, 104, 134, 174, 192},
	{0, 4, 8, 12, 18, 26, 36, 48, 62, 80, 104, 134, 174, 192},
	{0, 8, 16, 24, 36, 52, 72, 96, 124, 160, 162, 164, 166, 192},
}

// LongBands returns the long-block band table for a sampling rate
// index, or an error when the index is out of range.
func LongBands(srIndex int) (*[23]int, error) {
	if srIndex < 0 || srIndex >= len(SFBLong) {
		return nil, ErrInvalidSRIndex
	}
	return &SFBLong[srIndex], nil
}

// ShortBands returns the short-block band table for a sampling rate
// index.
func ShortBands(srIndex int) (*[14]int, error) {
	if srIndex < 0 || srIndex >= len(SFBShort) {
		return nil, ErrInvalidSRIndex
	}
	return &SFBShort[srIndex], nil
}

// Pretab is the high-band scale factor preemphasis applied when the
// preflag side info bit is set.
//
// Reference: ISO/IEC 11172-3 section 2.4.3.4.4
var Pretab = [22]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 3, 3, 3, 2, 0}
