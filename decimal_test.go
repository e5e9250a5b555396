package cprintf

import "testing"

func newDecimal(digits string, dp int, trunc bool) *decimal {
	var sc scratch
	d := &decimal{d: sc.digits[:], dp: dp, trunc: trunc}
	for i := 0; i < len(digits); i++ {
		d.push(digits[i])
	}
	return d
}

func TestDecimal_Round(t *testing.T) {
	tests := []struct {
		digits string
		dp     int
		trunc  bool
		k      int
		want   string
		wantDP int
	}{
		{"125", 1, false, 2, "12", 1},
		{"135", 1, false, 2, "14", 1},
		{"125", 1, true, 2, "13", 1},
		{"1251", 1, false, 2, "13", 1},
		{"124", 1, false, 2, "12", 1},
		{"999", 1, false, 2, "1", 2},
		{"999", 1, false, 3, "999", 1},
		{"5", 0, false, 0, "", 0},
		{"51", 0, false, 0, "1", 1},
		{"5", 0, true, 0, "1", 1},
		{"4", 0, true, 0, "", 0},
		{"123", 1, false, -1, "", 0},
		{"1200", 4, false, 3, "12", 4},
	}
	for _, tt := range tests {
		d := newDecimal(tt.digits, tt.dp, tt.trunc)
		d.round(tt.k)
		got := string(d.d[:d.nd])
		if got != tt.want || d.dp != tt.wantDP {
			t.Errorf("round(%s e%d, %d): expected %s e%d, got %s e%d", tt.digits, tt.dp, tt.k, tt.want, tt.wantDP, got, d.dp)
		}
		if d.trunc {
			t.Errorf("round(%s e%d, %d): trunc flag survived", tt.digits, tt.dp, tt.k)
		}
	}
}

func TestDecimal_AssignLimit(t *testing.T) {
	var sc scratch
	var d decimal

	// 0.1 = 0x1.999999999999ap-4
	d.assign(&sc, 0x1999999999999a, -56, digitLimit{n: 5})
	if got := string(d.d[:d.nd]); got != "100000" || d.dp != 0 || !d.trunc {
		t.Errorf("expected 100000 e0 truncated, got %s e%d %v", got, d.dp, d.trunc)
	}

	// leading zeros of the fraction do not count as digits
	d.assign(&sc, 1, -20, digitLimit{n: 2})
	if got := string(d.d[:d.nd]); got != "953" || d.dp != -6 || !d.trunc {
		t.Errorf("expected 953 e-6 truncated, got %s e%d %v", got, d.dp, d.trunc)
	}

	// a fixed limit counts digits after the point
	d.assign(&sc, 1, -20, digitLimit{fixed: true, n: 2})
	if d.nd != 0 || !d.trunc {
		t.Errorf("expected no digits, got %s e%d", d.d[:d.nd], d.dp)
	}

	d.assign(&sc, 3, 100, digitLimit{n: 1})
	if got := string(d.d[:d.nd]); got != "3802951800684688204490109616128" || d.dp != 31 {
		t.Errorf("expected 3×2^100, got %s e%d", got, d.dp)
	}
}

func TestDecimal_Digit(t *testing.T) {
	d := newDecimal("42", 2, false)
	for i, want := range []byte{'0', '4', '2', '0'} {
		if got := d.digit(i - 1); got != want {
			t.Errorf("digit(%d): expected %c, got %c", i-1, want, got)
		}
	}
}
