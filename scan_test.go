package cprintf

import (
	"math"
	"testing"
)

func TestScan(t *testing.T) {
	tests := []struct {
		format string
		want   Directive
	}{
		{
			"abc%d",
			Directive{Conversion: 'd', Offset: 3, Text: "%d"},
		},
		{
			"%-+ #0d",
			Directive{Flags: FlagMinus | FlagPlus | FlagSpace | FlagHash | FlagZero, Conversion: 'd', Text: "%-+ #0d"},
		},
		{
			"%00-12.5lld rest",
			Directive{Flags: FlagZero | FlagMinus, Width: 12, Precision: Precision{PrecSome, 5}, Length: LenLL, Conversion: 'd', Text: "%00-12.5lld"},
		},
		{
			"%.f",
			Directive{Precision: Precision{PrecSome, 0}, Conversion: 'f', Text: "%.f"},
		},
		{
			"%*.*e",
			Directive{WidthStar: true, Precision: Precision{PrecStar, 0}, Conversion: 'e', Text: "%*.*e"},
		},
		{
			"%hhx%hx",
			Directive{Length: LenHH, Conversion: 'x', Text: "%hhx"},
		},
		{
			"%Lg",
			Directive{Length: LenBigL, Conversion: 'g', Text: "%Lg"},
		},
		{
			"%w32u",
			Directive{Length: LenD, Conversion: 'u', Text: "%w32u"},
		},
		{
			"%wf16d",
			Directive{Length: LenQ, Conversion: 'd', Text: "%wf16d"},
		},
		{
			"%w128x",
			Directive{Length: LenO, Conversion: 'x', Text: "%w128x"},
		},
		{
			"%w12d",
			Directive{Length: LenInvalid, Conversion: 'd', Text: "%w12d"},
		},
		{
			"%%",
			Directive{Conversion: '%', Text: "%%"},
		},
		{
			"50%",
			Directive{Offset: 2, Text: "%"},
		},
		{
			"%5.2",
			Directive{Width: 5, Precision: Precision{PrecSome, 2}, Text: "%5.2"},
		},
		{
			"%q",
			Directive{Conversion: 'q', Text: "%q"},
		},
		{
			"%99999999999999999999d",
			Directive{Width: math.MaxInt32, Conversion: 'd', Text: "%99999999999999999999d"},
		},
		{
			"%.99999999999999999999d",
			Directive{Precision: Precision{PrecSome, math.MaxInt32}, Conversion: 'd', Text: "%.99999999999999999999d"},
		},
	}

	for _, tt := range tests {
		got, ok := Scan(tt.format, nil)
		if !ok {
			t.Errorf("%q: expected a directive", tt.format)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.format, tt.want, got)
		}
		if got.Text != tt.format[got.Offset:got.Offset+len(got.Text)] {
			t.Errorf("%q: Text is not a view of the format", tt.format)
		}
	}
}

func TestScan_NoDirective(t *testing.T) {
	for _, format := range []string{"", "plain", "100 percent"} {
		if d, ok := Scan(format, nil); ok {
			t.Errorf("%q: expected no directive, got %+v", format, d)
		}
	}
}

func TestScan_Stars(t *testing.T) {
	tests := []struct {
		format string
		args   []any
		flags  Flags
		width  int
		prec   Precision
	}{
		{"%*d", []any{7}, 0, 7, Precision{}},
		{"%*d", []any{-7}, FlagMinus, 7, Precision{}},
		{"%*d", []any{math.MinInt32}, FlagMinus, math.MaxInt32, Precision{}},
		{"%.*d", []any{3}, 0, 0, Precision{PrecStar, 3}},
		{"%.*d", []any{-3}, 0, 0, Precision{}},
		{"%*.*d", []any{4, 2}, 0, 4, Precision{PrecStar, 2}},
		{"%*.*d", []any{}, 0, 0, Precision{PrecStar, 0}},
		{"%*d", []any{int64(1<<32 + 9)}, 0, 9, Precision{}},
	}
	for _, tt := range tests {
		args := NewArgs(tt.args...)
		d, _ := Scan(tt.format, args)
		if d.Flags != tt.flags || d.Width != tt.width || d.Precision != tt.prec {
			t.Errorf("%q %v: expected flags %q width %d precision %+v, got %q %d %+v",
				tt.format, tt.args, tt.flags, tt.width, tt.prec, d.Flags, d.Width, d.Precision)
		}
		if !d.WidthStar && tt.format[1] == '*' {
			t.Errorf("%q: expected WidthStar", tt.format)
		}
	}
}

func TestScan_StarOrder(t *testing.T) {
	// width, then precision, then the value
	args := NewArgs(6, 2, 3.14159)
	d, _ := Scan("%*.*f", args)
	if d.Width != 6 || d.Precision.Value != 2 {
		t.Fatalf("unexpected directive %+v", d)
	}
	if got := args.NextFloat(); got != 3.14159 {
		t.Errorf("expected the value after the stars, got %v", got)
	}
}

func TestDirective_String(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"%d", "%d"},
		{"%0-+5.3lld", "%-+05.3lld"},
		{"%*.*f", "%*.*f"},
		{"%.f", "%.0f"},
		{"%w8u", "%Bu"},
		{"%wf32x", "%Qx"},
		{"%y", "%y"},
		{"%w3d", "%w3d"},
		{"%#08.3a", "%#08.3a"},
	}
	for _, tt := range tests {
		d, _ := Scan(tt.format, nil)
		if got := d.String(); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.format, tt.want, got)
		}
	}
}

func TestDirective_Recognized(t *testing.T) {
	for _, c := range []byte(conversions) {
		d, _ := Scan("%"+string(c), nil)
		if !d.Recognized() {
			t.Errorf("%%%c: expected recognized", c)
		}
	}
	for _, format := range []string{"%n", "%", "%l", "%k", "%w0d", "%w256d"} {
		d, _ := Scan(format, nil)
		if d.Recognized() {
			t.Errorf("%q: expected unrecognized", format)
		}
	}
}

func TestLengthModifier_Bits(t *testing.T) {
	tests := []struct {
		m    LengthModifier
		want uint
	}{
		{LenNone, 32},
		{LenHH, 8},
		{LenH, 16},
		{LenL, 64},
		{LenLL, 64},
		{LenJ, 64},
		{LenZ, 64},
		{LenT, 64},
		{LenBigL, 64},
		{LenB, 8},
		{LenW, 16},
		{LenD, 32},
		{LenQ, 64},
		{LenO, 128},
	}
	for _, tt := range tests {
		if got := tt.m.Bits(); got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.m, tt.want, got)
		}
	}
}
