package tables

import (
	"math"
	"testing"
)

func TestBandTables_Terminators(t *testing.T) {
	for sr := 0; sr < 9; sr++ {
		long, err := LongBands(sr)
		if err != nil {
			t.Fatalf("LongBands(%d): %v", sr, err)
		}
		if long[0] != 0 || long[22] != 576 {
			t.Errorf("sr %d: long bands span %d..%d, want 0..576", sr, long[0], long[22])
		}
		short, err := ShortBands(sr)
		if err != nil {
			t.Fatalf("ShortBands(%d): %v", sr, err)
		}
		if short[0] != 0 || short[13] != 192 {
			t.Errorf("sr %d: short bands span %d..%d, want 0..192", sr, short[0], short[13])
		}
	}
}

func TestBandTables_Monotonic(t *testing.T) {
	for sr := 0; sr < 9; sr++ {
		long, _ := LongBands(sr)
		for i := 1; i < len(long); i++ {
			if long[i] <= long[i-1] {
				t.Errorf("sr %d: long band %d not increasing (%d, %d)",
					sr, i, long[i-1], long[i])
			}
		}
		short, _ := ShortBands(sr)
		for i := 1; i < len(short); i++ {
			if short[i] <= short[i-1] {
				t.Errorf("sr %d: short band %d not increasing (%d, %d)",
					sr, i, short[i-1], short[i])
			}
		}
	}
}

func TestBandTables_InvalidIndex(t *testing.T) {
	if _, err := LongBands(9); err != ErrInvalidSRIndex {
		t.Errorf("LongBands(9) err = %v, want ErrInvalidSRIndex", err)
	}
	if _, err := ShortBands(-1); err != ErrInvalidSRIndex {
		t.Errorf("ShortBands(-1) err = %v, want ErrInvalidSRIndex", err)
	}
}

func TestPow43(t *testing.T) {
	if Pow43[0] != 0 {
		t.Errorf("Pow43[0] = %v, want 0", Pow43[0])
	}
	if Pow43[1] != 1 {
		t.Errorf("Pow43[1] = %v, want 1", Pow43[1])
	}
	// 8^(4/3) = 16 exactly.
	if got := Pow43[8]; math.Abs(got-16) > 1e-9 {
		t.Errorf("Pow43[8] = %v, want 16", got)
	}
	for _, i := range []int{2, 15, 100, 8206} {
		want := math.Pow(float64(i), 4.0/3.0)
		if rel := math.Abs(Pow43[i]-want) / want; rel > 1e-3 {
			t.Errorf("Pow43[%d] = %v, want %v (rel err %v)", i, Pow43[i], want, rel)
		}
	}
}
