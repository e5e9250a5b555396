// convert float64 to text

package cprintf

import (
	"math"

	"github.com/shogo82148/cprintf/sink"
)

const (
	// maxFracDigits bounds the digits after the point of any binary64.
	// Precisions beyond it only add zeros.
	maxFracDigits = 1100

	expBits  = 11
	fracBits = 52
	bias     = 1023
)

// formatFloat writes one f, F, e, E, g, G, a or A conversion of v.
func formatFloat(s sink.Sink, sc *scratch, d Directive, v float64) field {
	var fl field
	b := math.Float64bits(v)
	if c := signChar(b>>63 != 0, d.Flags); c != 0 {
		s.AppendByte(c)
		fl.prefix = 1
	}

	exp := int(b>>fracBits) & (1<<expBits - 1)
	mant := b & (1<<fracBits - 1)
	upper := 'A' <= d.Conversion && d.Conversion <= 'Z'

	if exp == 1<<expBits-1 {
		fl.noZero = true
		switch {
		case mant != 0 && upper:
			s.AppendString("NAN")
		case mant != 0:
			s.AppendString("nan")
		case upper:
			s.AppendString("INF")
		default:
			s.AppendString("inf")
		}
		return fl
	}

	if d.Conversion == 'a' || d.Conversion == 'A' {
		appendHex(s, d, exp, mant)
		fl.prefix += 2
		return fl
	}

	// normalize to mant × 2^exp
	if exp == 0 {
		exp = 1
	} else {
		mant |= 1 << fracBits
	}
	exp -= bias + fracBits

	hash := d.Flags.Has(FlagHash)
	var dec decimal
	switch d.Conversion | 0x20 {
	case 'f':
		prec := d.precision(6)
		pk := min(prec, maxFracDigits)
		dec.assign(sc, mant, exp, digitLimit{fixed: true, n: pk})
		dec.round(dec.dp + pk)
		appendDec(s, &dec, prec, hash)

	case 'e':
		prec := d.precision(6)
		pk := min(prec, maxDigits)
		dec.assign(sc, mant, exp, digitLimit{n: pk + 1})
		dec.round(pk + 1)
		appendSci(s, &dec, prec, d.Conversion, hash)

	case 'g':
		p := d.precision(6)
		if p == 0 {
			p = 1
		}
		pk := min(p, maxDigits)
		dec.assign(sc, mant, exp, digitLimit{n: pk})
		dec.round(pk)

		x := dec.dp - 1
		if dec.nd == 0 {
			x = 0
		}
		if -4 <= x && x < p {
			prec := p - 1 - x
			if !hash {
				prec = min(prec, max(dec.nd-dec.dp, 0))
			}
			appendDec(s, &dec, prec, hash)
		} else {
			prec := p - 1
			if !hash {
				prec = min(prec, max(dec.nd-1, 0))
			}
			appendSci(s, &dec, prec, d.Conversion+'e'-'g', hash)
		}
	}
	return fl
}

// signChar returns the sign to print for a number, or 0 for none.
func signChar(neg bool, flags Flags) byte {
	switch {
	case neg:
		return '-'
	case flags.Has(FlagPlus):
		return '+'
	case flags.Has(FlagSpace):
		return ' '
	}
	return 0
}

// appendDec writes d in fixed notation with prec digits after the point.
func appendDec(s sink.Sink, d *decimal, prec int, hash bool) {
	// integer part
	if d.dp > 0 {
		n := min(d.dp, d.nd)
		s.Append(d.d[:n])
		s.Pad('0', d.dp-n)
	} else {
		s.AppendByte('0')
	}

	if prec > 0 || hash {
		s.AppendByte('.')
	}
	if prec <= 0 {
		return
	}

	// fractional part: digits d.dp through d.dp+prec-1
	lead := 0
	if d.dp < 0 {
		lead = min(-d.dp, prec)
		s.Pad('0', lead)
	}
	from := max(d.dp, 0)
	to := min(d.nd, d.dp+prec)
	written := 0
	if to > from {
		s.Append(d.d[from:to])
		written = to - from
	}
	s.Pad('0', prec-lead-written)
}

// appendSci writes d in scientific notation with prec digits after the
// point. fmt is 'e' or 'E'.
func appendSci(s sink.Sink, d *decimal, prec int, fmt byte, hash bool) {
	s.AppendByte(d.digit(0))
	if prec > 0 || hash {
		s.AppendByte('.')
	}
	if prec > 0 {
		n := min(max(d.nd-1, 0), prec)
		s.Append(d.d[1 : 1+n])
		s.Pad('0', prec-n)
	}

	exp := d.dp - 1
	if d.nd == 0 {
		exp = 0
	}
	s.AppendByte(fmt)
	appendExp(s, exp, 2)
}

// appendExp writes a signed exponent with at least minDigits digits.
func appendExp(s sink.Sink, exp, minDigits int) {
	if exp < 0 {
		s.AppendByte('-')
		exp = -exp
	} else {
		s.AppendByte('+')
	}
	var buf [8]byte
	i := len(buf)
	for exp > 0 || len(buf)-i < minDigits {
		i--
		buf[i] = byte('0' + exp%10)
		exp /= 10
	}
	s.Append(buf[i:])
}

// appendHex writes the body of an a or A conversion after the sign: the
// value in binary scientific notation with a hexadecimal significand.
func appendHex(s sink.Sink, d Directive, exp int, mant uint64) {
	fmt := d.Conversion
	s.AppendByte('0')
	s.AppendByte(fmt + 'x' - 'a') // 0x or 0X

	lead := uint64(1)
	switch {
	case exp == 0 && mant == 0:
		lead = 0
	case exp == 0:
		// subnormal number
		lead = 0
		exp = 1 - bias
	default:
		exp -= bias
	}

	const nibbles = fracBits / 4
	n := nibbles
	prec := d.precision(-1)
	switch {
	case prec < 0:
		for n > 0 && mant&0xf == 0 {
			mant >>= 4
			n--
		}
		prec = n
	case prec < nibbles:
		// round to nearest even
		shift := uint(4 * (nibbles - prec))
		half := uint64(1) << (shift - 1)
		rem := mant & (1<<shift - 1)
		mant >>= shift
		last := mant // the last digit kept decides ties
		if prec == 0 {
			last = lead
		}
		if rem > half || rem == half && last&1 != 0 {
			mant++
		}
		if mant>>(4*prec) != 0 {
			lead++
			mant &= 1<<(4*prec) - 1
		}
		n = prec
	}

	s.AppendByte(nibble(fmt, lead))
	if prec > 0 || d.Flags.Has(FlagHash) {
		s.AppendByte('.')
	}
	for i := n - 1; i >= 0; i-- {
		s.AppendByte(nibble(fmt, mant>>(4*i)))
	}
	s.Pad('0', prec-n)

	s.AppendByte(fmt + 'p' - 'a')
	appendExp(s, exp, 1)
}

func nibble(fmt byte, x uint64) byte {
	x &= 0xf
	if x < 10 {
		return '0' + byte(x)
	}
	return ('A' + byte(x-10)) | (fmt & ('a' - 'A'))
}
