// Package operand converts the text operands of the format command into
// numbers, the way printf(1) does.
//
// A number may be followed by other characters; the converted prefix is
// returned together with an error wrapping ErrPartial. An operand starting
// with a quote character stands for the code point of the character after
// it.
package operand

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrPartial reports an operand with characters after its number.
var ErrPartial = errors.New("value not completely converted")

const space = " \t\n\v\f\r"

// lower(c) is a lower-case letter if and only if
// c is either that lower-case letter or the equivalent upper-case letter.
// Instead of writing c == 'x' || c == 'X' one can write lower(c) == 'x'.
// Note that lower of non-letters can produce other non-letters.
func lower(c byte) byte {
	return c | ('x' - 'X')
}

// commonPrefixLenIgnoreCase returns the length of the common
// prefix of s and prefix, with the character case of s ignored.
// The prefix argument must be all lower-case.
func commonPrefixLenIgnoreCase(s, prefix string) int {
	n := min(len(prefix), len(s))
	for i := 0; i < n; i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != prefix[i] {
			return i
		}
	}
	return n
}

func isDigit(c byte, base int) bool {
	switch base {
	case 8:
		return '0' <= c && c <= '7'
	case 16:
		return '0' <= c && c <= '9' || 'a' <= lower(c) && lower(c) <= 'f'
	}
	return '0' <= c && c <= '9'
}

// charValue returns the code point of a quoted character operand: 'a or "a.
// A lone quote is zero.
func charValue(s string) (rune, bool) {
	if s == "" || s[0] != '\'' && s[0] != '"' {
		return 0, false
	}
	if len(s) == 1 {
		return 0, true
	}
	r, _ := utf8.DecodeRuneInString(s[1:])
	return r, true
}

// special parses a signed infinity or NaN at the start of s.
func special(s string) (f float64, n int, ok bool) {
	if len(s) == 0 {
		return 0, 0, false
	}

	sign := 1
	nsign := 0
	if s[0] == '+' || s[0] == '-' {
		if s[0] == '-' {
			sign = -1
		}
		nsign = 1
		s = s[1:]
	}
	if s == "" {
		return 0, 0, false
	}

	switch lower(s[0]) {
	case 'i':
		n := commonPrefixLenIgnoreCase(s, "infinity")
		// Anything longer than "inf" is ok, but if we
		// don't have "infinity", only consume "inf".
		if 3 < n && n < 8 {
			n = 3
		}
		if n == 3 || n == 8 {
			return math.Inf(sign), nsign + n, true
		}
	case 'n':
		if commonPrefixLenIgnoreCase(s, "nan") != 3 {
			break
		}
		n := 3
		// nan(n-char-sequence)
		if n < len(s) && s[n] == '(' {
			if end := strings.IndexByte(s[n:], ')'); end >= 0 {
				n += end + 1
			}
		}
		return math.Copysign(math.NaN(), float64(sign)), nsign + n, true
	}
	return 0, 0, false
}

// scanFloat returns the length of the longest prefix of s that is a
// decimal or hexadecimal floating-point number.
func scanFloat(s string) (n int, hex, exp bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	base := 10
	expChar := byte('e')
	if i+2 < len(s) && s[i] == '0' && lower(s[i+1]) == 'x' &&
		(isDigit(s[i+2], 16) || s[i+2] == '.' && i+3 < len(s) && isDigit(s[i+3], 16)) {
		base = 16
		expChar = 'p'
		hex = true
		i += 2
	}

	sawdot := false
	sawdigits := false
	for ; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if sawdot {
				break
			}
			sawdot = true
			continue
		}
		if !isDigit(c, base) {
			break
		}
		sawdigits = true
	}
	if !sawdigits {
		return 0, false, false
	}

	if i < len(s) && lower(s[i]) == expChar {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j], 10) {
			for j < len(s) && isDigit(s[j], 10) {
				j++
			}
			i = j
			exp = true
		}
	}
	return i, hex, exp
}

// Float converts a floating-point operand. It accepts what strtod accepts:
// decimal and hexadecimal numbers, inf, infinity and nan, in any case.
func Float(s string) (float64, error) {
	const fn = "operand.Float"
	t := strings.TrimLeft(s, space)
	if r, ok := charValue(t); ok {
		return float64(r), nil
	}

	if f, n, ok := special(t); ok {
		if n != len(t) {
			return f, &strconv.NumError{Func: fn, Num: s, Err: ErrPartial}
		}
		return f, nil
	}

	n, hex, exp := scanFloat(t)
	if n == 0 {
		return 0, &strconv.NumError{Func: fn, Num: s, Err: strconv.ErrSyntax}
	}
	num := t[:n]
	if hex && !exp {
		num += "p0"
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return f, &strconv.NumError{Func: fn, Num: s, Err: errors.Unwrap(err)}
	}
	if n != len(t) {
		return f, &strconv.NumError{Func: fn, Num: s, Err: ErrPartial}
	}
	return f, nil
}

// scanInt returns the length of the longest prefix of s that is an
// integer: decimal, octal with a leading 0, or hexadecimal with 0x.
func scanInt(s string) (n int, neg bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	base := 10
	switch {
	case i+2 < len(s) && s[i] == '0' && lower(s[i+1]) == 'x' && isDigit(s[i+2], 16):
		base = 16
		i += 2
	case i < len(s) && s[i] == '0':
		base = 8
	}
	for i < len(s) && isDigit(s[i], base) {
		i++
	}
	if i == start {
		return 0, false
	}
	return i, neg
}

// Uint converts an unsigned integer operand. A negative number wraps
// around, as strtoumax does.
func Uint(s string) (uint64, error) {
	const fn = "operand.Uint"
	t := strings.TrimLeft(s, space)
	if r, ok := charValue(t); ok {
		return uint64(r), nil
	}

	n, neg := scanInt(t)
	if n == 0 {
		return 0, &strconv.NumError{Func: fn, Num: s, Err: strconv.ErrSyntax}
	}
	num := strings.TrimLeft(t[:n], "+-")
	v, err := strconv.ParseUint(num, 0, 64)
	if err != nil {
		return v, &strconv.NumError{Func: fn, Num: s, Err: errors.Unwrap(err)}
	}
	if neg {
		v = -v
	}
	if n != len(t) {
		return v, &strconv.NumError{Func: fn, Num: s, Err: ErrPartial}
	}
	return v, nil
}

// Int converts a signed integer operand. Out of range values saturate.
func Int(s string) (int64, error) {
	const fn = "operand.Int"
	t := strings.TrimLeft(s, space)
	if r, ok := charValue(t); ok {
		return int64(r), nil
	}

	n, _ := scanInt(t)
	if n == 0 {
		return 0, &strconv.NumError{Func: fn, Num: s, Err: strconv.ErrSyntax}
	}
	v, err := strconv.ParseInt(t[:n], 0, 64)
	if err != nil {
		return v, &strconv.NumError{Func: fn, Num: s, Err: errors.Unwrap(err)}
	}
	if n != len(t) {
		return v, &strconv.NumError{Func: fn, Num: s, Err: ErrPartial}
	}
	return v, nil
}
