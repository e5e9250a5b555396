package cprintf

import (
	"math"
	"strings"
)

// Scan finds the first directive in format. It returns false if format
// contains no '%'.
//
// A '*' width or precision reads one int from args, width first. A negative
// width sets FlagMinus and uses the absolute value; a negative precision
// means no precision. If args is nil, stars are left unresolved.
//
// Scan always consumes at least the '%'. A directive that does not end in a
// known conversion is returned with the text consumed so far; see
// Directive.Recognized.
func Scan(format string, args *Args) (Directive, bool) {
	start := strings.IndexByte(format, '%')
	if start < 0 {
		return Directive{}, false
	}
	d := Directive{Offset: start}
	i := start + 1

flags:
	for ; i < len(format); i++ {
		switch format[i] {
		case '-':
			d.Flags |= FlagMinus
		case '+':
			d.Flags |= FlagPlus
		case ' ':
			d.Flags |= FlagSpace
		case '#':
			d.Flags |= FlagHash
		case '0':
			d.Flags |= FlagZero
		default:
			break flags
		}
	}

	if i < len(format) && format[i] == '*' {
		i++
		d.WidthStar = true
		if args != nil {
			w := args.NextInt()
			if w < 0 {
				d.Flags |= FlagMinus
				w = min(-w, math.MaxInt32)
			}
			d.Width = w
		}
	} else {
		d.Width, i = scanNumber(format, i)
	}

	if i < len(format) && format[i] == '.' {
		i++
		if i < len(format) && format[i] == '*' {
			i++
			d.Precision.Mode = PrecStar
			if args != nil {
				if p := args.NextInt(); p >= 0 {
					d.Precision.Value = p
				} else {
					d.Precision = Precision{}
				}
			}
		} else {
			d.Precision.Mode = PrecSome
			d.Precision.Value, i = scanNumber(format, i)
		}
	}

	d.Length, i = scanLength(format, i)
	if i < len(format) {
		d.Conversion = format[i]
		i++
	}
	d.Text = format[start:i]
	return d, true
}

// scanNumber parses the decimal digits at format[i:], saturating at
// math.MaxInt32.
func scanNumber(format string, i int) (int, int) {
	n := 0
	for ; i < len(format) && '0' <= format[i] && format[i] <= '9'; i++ {
		n = min(n*10+int(format[i]-'0'), math.MaxInt32)
	}
	return n, i
}

func scanLength(format string, i int) (LengthModifier, int) {
	if i >= len(format) {
		return LenNone, i
	}
	next := func(c byte) bool {
		return i+1 < len(format) && format[i+1] == c
	}
	switch format[i] {
	case 'h':
		if next('h') {
			return LenHH, i + 2
		}
		return LenH, i + 1
	case 'l':
		if next('l') {
			return LenLL, i + 2
		}
		return LenL, i + 1
	case 'j':
		return LenJ, i + 1
	case 'z':
		return LenZ, i + 1
	case 't':
		return LenT, i + 1
	case 'L':
		return LenBigL, i + 1
	case 'B':
		return LenB, i + 1
	case 'W':
		return LenW, i + 1
	case 'D':
		return LenD, i + 1
	case 'Q':
		return LenQ, i + 1
	case 'O':
		return LenO, i + 1
	case 'w':
		return scanWidthModifier(format, i+1)
	}
	return LenNone, i
}

// scanWidthModifier parses the N of wN and wfN. The fast types have the
// glibc LP64 widths.
func scanWidthModifier(format string, i int) (LengthModifier, int) {
	fast := false
	if i < len(format) && format[i] == 'f' {
		fast = true
		i++
	}
	n, i := scanNumber(format, i)
	switch {
	case n == 8:
		return LenB, i
	case n == 16 && !fast:
		return LenW, i
	case n == 32 && !fast:
		return LenD, i
	case n == 16, n == 32, n == 64:
		return LenQ, i
	case n == 128 && !fast:
		return LenO, i
	}
	return LenInvalid, i
}
