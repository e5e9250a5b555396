package cprintf

import "strings"

// Flags is the set of flag characters of a directive.
type Flags uint8

const (
	FlagMinus Flags = 1 << iota // '-'
	FlagPlus                    // '+'
	FlagSpace                   // ' '
	FlagHash                    // '#'
	FlagZero                    // '0'
)

// Has reports whether all flags in x are set.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

func (f Flags) String() string {
	var buf [5]byte
	n := 0
	for i, c := range "-+ #0" {
		if f&(1<<i) != 0 {
			buf[n] = byte(c)
			n++
		}
	}
	return string(buf[:n])
}

// PrecisionMode tells where the precision of a directive came from.
type PrecisionMode uint8

const (
	PrecNone PrecisionMode = iota // no precision: "%f"
	PrecSome                      // literal precision: "%.3f", "%.f"
	PrecStar                      // precision taken from an argument: "%.*f"
)

// Precision is the precision of a directive.
// With PrecStar, Value holds the argument once it has been read.
type Precision struct {
	Mode  PrecisionMode
	Value int
}

// LengthModifier sizes the argument of an integer conversion and selects
// the wide variants of %c and %s.
type LengthModifier uint8

const (
	LenNone    LengthModifier = iota
	LenHH                     // hh: char
	LenH                      // h: short
	LenL                      // l: long
	LenLL                     // ll: long long
	LenJ                      // j: intmax_t
	LenZ                      // z: size_t
	LenT                      // t: ptrdiff_t
	LenBigL                   // L: long double
	LenB                      // B, w8: 8 bits
	LenW                      // W, w16: 16 bits
	LenD                      // D, w32: 32 bits
	LenQ                      // Q, w64: 64 bits
	LenO                      // O, w128: 128 bits
	LenInvalid                // a malformed wN modifier
)

var lengthNames = [...]string{
	LenNone:    "",
	LenHH:      "hh",
	LenH:       "h",
	LenL:       "l",
	LenLL:      "ll",
	LenJ:       "j",
	LenZ:       "z",
	LenT:       "t",
	LenBigL:    "L",
	LenB:       "B",
	LenW:       "W",
	LenD:       "D",
	LenQ:       "Q",
	LenO:       "O",
	LenInvalid: "",
}

func (m LengthModifier) String() string {
	if int(m) < len(lengthNames) {
		return lengthNames[m]
	}
	return ""
}

// Bits returns the width in bits of the integer argument the modifier
// selects, on an LP64 target.
func (m LengthModifier) Bits() uint {
	switch m {
	case LenHH, LenB:
		return 8
	case LenH, LenW:
		return 16
	case LenL, LenLL, LenJ, LenZ, LenT, LenBigL, LenQ:
		return 64
	case LenO:
		return 128
	}
	return 32
}

// Directive is one conversion specification of a format string:
//
//	%[flags][width|*][.precision|.*][length]conversion
//
// Text is a view into the scanned format string starting at Offset.
type Directive struct {
	Flags      Flags
	Width      int
	WidthStar  bool
	Precision  Precision
	Length     LengthModifier
	Conversion byte
	Offset     int
	Text       string
}

const conversions = "diuoxXfFeEgGaAcsSp%"

// Recognized reports whether the directive is a conversion this package
// implements. Unrecognized directives are copied to the output verbatim.
func (d Directive) Recognized() bool {
	return d.Conversion != 0 && d.Length != LenInvalid &&
		strings.IndexByte(conversions, d.Conversion) >= 0
}

// HasPrecision reports whether the directive carries a precision.
func (d Directive) HasPrecision() bool {
	return d.Precision.Mode != PrecNone
}

// precision returns the precision, or def if there is none.
func (d Directive) precision(def int) int {
	if d.Precision.Mode == PrecNone {
		return def
	}
	return d.Precision.Value
}

// String renders the directive in canonical form: flags in a fixed order,
// wN modifiers spelled with their letter equivalents.
func (d Directive) String() string {
	if !d.Recognized() {
		return d.Text
	}
	var b strings.Builder
	b.WriteByte('%')
	b.WriteString(d.Flags.String())
	switch {
	case d.WidthStar:
		b.WriteByte('*')
	case d.Width > 0:
		b.Write(appendInt(nil, d.Width))
	}
	switch d.Precision.Mode {
	case PrecSome:
		b.WriteByte('.')
		b.Write(appendInt(nil, d.Precision.Value))
	case PrecStar:
		b.WriteString(".*")
	}
	b.WriteString(d.Length.String())
	b.WriteByte(d.Conversion)
	return b.String()
}

// appendInt appends the decimal form of a non-negative v.
func appendInt(dst []byte, v int) []byte {
	var buf [20]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	return append(dst, buf[i:]...)
}
