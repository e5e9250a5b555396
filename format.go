package cprintf

import (
	"fmt"

	"github.com/shogo82148/cprintf/sink"
)

// Formatter renders one value through the fmt package with C semantics.
// Create it with V.
type Formatter struct {
	arg Arg
}

// V returns a Formatter for v, so that
//
//	fmt.Sprintf("%08.3f|%-6x", cprintf.V(x), cprintf.V(n))
//
// pads, rounds and prefixes like C printf. The verb %v picks the natural
// conversion of the argument kind: d, u, g, s or p.
func V(v any) Formatter {
	return Formatter{arg: ArgOf(v)}
}

var _ fmt.Formatter = Formatter{}

// Format implements [fmt.Formatter].
func (f Formatter) Format(s fmt.State, verb rune) {
	d := Directive{Conversion: byte(verb)}
	if verb == 'v' {
		d.Conversion = f.arg.verb()
	}
	for i, c := range "-+ #0" {
		if s.Flag(int(c)) {
			d.Flags |= 1 << i
		}
	}
	if w, ok := s.Width(); ok {
		d.Width = w
	}
	if p, ok := s.Precision(); ok {
		d.Precision = Precision{Mode: PrecSome, Value: p}
	}
	switch f.arg.kind {
	case KindInt, KindUint, KindWString:
		// 64-bit integers, wide characters and wide strings
		d.Length = LenL
	case KindInt128, KindUint128:
		d.Length = LenO
	}

	if verb > 0x7f || !d.Recognized() {
		fmt.Fprintf(s, "%%!%c(%s)", verb, f.arg)
		return
	}

	var stack [64]byte
	buf := sink.Bytes(stack[:0])
	var sc scratch
	convert(sink.NewGrowable(&buf), &sc, d, ArgsOf(f.arg))
	s.Write(buf)
}

// verb returns the conversion %v stands for.
func (a Arg) verb() byte {
	switch a.kind {
	case KindInt, KindInt128:
		return 'd'
	case KindUint, KindUint128:
		return 'u'
	case KindFloat:
		return 'g'
	case KindString, KindWString:
		return 's'
	}
	return 'p'
}
