package cprintf

import (
	"fmt"
	"math"
	"testing"

	"github.com/shogo82148/cprintf/wide"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		format string
		x      any
		want   string
	}{
		{"%08.3f", 3.14159, "0003.142"},
		{"%-6x|", 255, "ff    |"},
		{"%+d", int8(5), "+5"},
		{"%#o", 8, "010"},
		{"%x", -1, "ffffffffffffffff"},
		{"%u", wide.MaxUint128, "340282366920938463463374607431768211455"},
		{"%d", wide.MinInt128, "-170141183460469231731687303715884105728"},
		{"%c", 'A', "A"},
		{"%c", 'é', "é"},
		{"%.2s", []rune("héllo"), "h"},
		{"%5s", "ab", "   ab"},
		{"%e", float32(0.1), "1.000000e-01"},
		{"%5.1f", math.Inf(-1), " -inf"},
		{"%a", 1.0, "0x1p+0"},
		{"%G", 1e-10, "1E-10"},

		{"%v", -5, "-5"},
		{"%v", uint(5), "5"},
		{"%v", 0.1, "0.1"},
		{"%v", "s", "s"},
		{"%v", nil, "(nil)"},
		{"%8v", 1e6, "   1e+06"},

		{"%y", 5, "%!y(5)"},
		{"%n", "s", `%!n("s")`},
	}

	for _, tt := range tests {
		got := fmt.Sprintf(tt.format, V(tt.x))
		if got != tt.want {
			t.Errorf("%q of %v: expected %s, got %s", tt.format, tt.x, tt.want, got)
		}
	}
}

func TestFormat_Mixed(t *testing.T) {
	got := fmt.Sprintf("%s=%08.3f %T", "pi", V(math.Pi), 1)
	want := "pi=0003.142 int"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
