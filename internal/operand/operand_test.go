package operand

import (
	"math"
	"strconv"
	"testing"

	"github.com/happy-sdk/happy/pkg/devel/testutils"
)

func TestInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		err  error
	}{
		{"42", 42, nil},
		{"  -42", -42, nil},
		{"+7", 7, nil},
		{"0x1F", 31, nil},
		{"-0x10", -16, nil},
		{"017", 15, nil},
		{"0", 0, nil},
		{"'A", 65, nil},
		{"\"é", 0xe9, nil},
		{"'", 0, nil},
		{"12abc", 12, ErrPartial},
		{"08", 0, ErrPartial},
		{"0x", 0, ErrPartial},
		{"1.5", 1, ErrPartial},
		{"abc", 0, strconv.ErrSyntax},
		{"", 0, strconv.ErrSyntax},
		{"-", 0, strconv.ErrSyntax},
		{"9223372036854775808", math.MaxInt64, strconv.ErrRange},
		{"-9223372036854775809", math.MinInt64, strconv.ErrRange},
	}
	for _, tt := range tests {
		got, err := Int(tt.in)
		testutils.Equal(t, tt.want, got, tt.in)
		if tt.err == nil {
			testutils.NoError(t, err, tt.in)
		} else {
			testutils.ErrorIs(t, err, tt.err, tt.in)
		}
	}
}

func TestUint(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		err  error
	}{
		{"42", 42, nil},
		{"0xffffffffffffffff", math.MaxUint64, nil},
		{"-1", math.MaxUint64, nil},
		{"0777", 511, nil},
		{"'a", 97, nil},
		{"7z", 7, ErrPartial},
		{"x", 0, strconv.ErrSyntax},
		{"18446744073709551616", math.MaxUint64, strconv.ErrRange},
	}
	for _, tt := range tests {
		got, err := Uint(tt.in)
		testutils.Equal(t, tt.want, got, tt.in)
		if tt.err == nil {
			testutils.NoError(t, err, tt.in)
		} else {
			testutils.ErrorIs(t, err, tt.err, tt.in)
		}
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		err  error
	}{
		{"3.25", 3.25, nil},
		{" -0.5", -0.5, nil},
		{".5", 0.5, nil},
		{"5.", 5, nil},
		{"1e3", 1000, nil},
		{"1E-2", 0.01, nil},
		{"0x1p-2", 0.25, nil},
		{"0x1.8", 1.5, nil},
		{"0X.8P1", 1, nil},
		{"inf", math.Inf(1), nil},
		{"-Infinity", math.Inf(-1), nil},
		{"'0", 48, nil},
		{"1e", 1, ErrPartial},
		{"2.5kg", 2.5, ErrPartial},
		{"infinit", math.Inf(1), ErrPartial},
		{"0x", 0, ErrPartial},
		{"1e400", math.Inf(1), strconv.ErrRange},
		{"e5", 0, strconv.ErrSyntax},
		{".", 0, strconv.ErrSyntax},
	}
	for _, tt := range tests {
		got, err := Float(tt.in)
		testutils.Equal(t, tt.want, got, tt.in)
		if tt.err == nil {
			testutils.NoError(t, err, tt.in)
		} else {
			testutils.ErrorIs(t, err, tt.err, tt.in)
		}
	}
}

func TestFloat_NaN(t *testing.T) {
	for _, in := range []string{"nan", "NaN", "-nan", "nan(0x7ff)"} {
		got, err := Float(in)
		testutils.NoError(t, err, in)
		testutils.True(t, math.IsNaN(got), in)
		testutils.Equal(t, in[0] == '-', math.Signbit(got), in)
	}
}

func TestCommonPrefixLenIgnoreCase(t *testing.T) {
	testutils.Equal(t, 3, commonPrefixLenIgnoreCase("INFx", "infinity"))
	testutils.Equal(t, 8, commonPrefixLenIgnoreCase("InFiNiTy", "infinity"))
	testutils.Equal(t, 2, commonPrefixLenIgnoreCase("na", "nan"))
}
