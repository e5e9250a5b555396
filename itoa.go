// convert integers to text

package cprintf

import (
	"github.com/shogo82148/cprintf/sink"
	"github.com/shogo82148/cprintf/wide"
)

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

// chunk is the largest power of a base that fits in 64 bits, and the
// number of digits it spans.
type chunk struct {
	pow    uint64
	digits int
}

var chunks = [...]chunk{
	8:  {1 << 63, 21},
	10: {pow10x19, 19},
	16: {1 << 60, 15},
}

// formatBits writes the digits of u in base 8, 10 or 16 at the end of buf
// and returns the index of the first one. Zero has the single digit "0".
func formatBits(buf *[128]byte, u wide.Uint128, base uint64, upper bool) int {
	digits := lowerDigits
	if upper {
		digits = upperDigits
	}
	i := len(buf)
	c := chunks[base]
	for !u.IsUint64() {
		q, r := u.DivMod(wide.From64(c.pow))
		v := r.Lo
		for j := 0; j < c.digits; j++ {
			i--
			buf[i] = digits[v%base]
			v /= base
		}
		u = q
	}
	v := u.Lo
	for v >= base {
		i--
		buf[i] = digits[v%base]
		v /= base
	}
	i--
	buf[i] = digits[v]
	return i
}

// formatInteger writes one d, i, u, o, x, X or non-nil p conversion.
// neg is the sign of a signed argument with magnitude mag.
func formatInteger(s sink.Sink, d Directive, neg bool, mag wide.Uint128) field {
	fl := field{noZero: d.HasPrecision()}

	var base uint64 = 10
	var prefix string
	signed := false
	switch d.Conversion {
	case 'd', 'i':
		signed = true
	case 'o':
		base = 8
	case 'x':
		base = 16
		if d.Flags.Has(FlagHash) && !mag.IsZero() {
			prefix = "0x"
		}
	case 'X':
		base = 16
		if d.Flags.Has(FlagHash) && !mag.IsZero() {
			prefix = "0X"
		}
	case 'p':
		// glibc prints pointers like %#lx but keeps the sign flags
		signed = true
		base = 16
		prefix = "0x"
	}

	if signed {
		if c := signChar(neg, d.Flags); c != 0 {
			s.AppendByte(c)
			fl.prefix++
		}
	}
	s.AppendString(prefix)
	fl.prefix += len(prefix)

	var buf [128]byte
	i := len(buf)
	if !d.HasPrecision() || d.Precision.Value != 0 || !mag.IsZero() {
		i = formatBits(&buf, mag, base, d.Conversion == 'X')
	}
	digits := buf[i:]

	zeros := max(d.precision(0)-len(digits), 0)
	if base == 8 && d.Flags.Has(FlagHash) && zeros == 0 && (len(digits) == 0 || digits[0] != '0') {
		zeros = 1
	}
	s.Pad('0', zeros)
	s.Append(digits)
	return fl
}
