// Package cprintf formats text with the semantics of the C printf family.
//
// Output is byte-for-byte compatible with glibc's snprintf for the
// supported conversions:
//
//	%[flags][width|*][.precision|.*][length]conversion
//
// with the flags "-+ #0", the length modifiers hh h l ll j z t L B W D Q O
// wN wfN, and the conversions d i u o x X f F e E g G a A c s S p %.
// Floating-point conversions are exact: every binary64 is converted to
// decimal without loss and rounded half to even.
//
// Arguments are Go values, converted with ArgOf, and are read in the order
// a C implementation reads its variadic arguments. Directives this package
// does not understand, including %n, are copied to the output unchanged.
package cprintf

import (
	"io"
	"os"
	"sync"

	"github.com/shogo82148/cprintf/sink"
	"github.com/shogo82148/cprintf/wide"
)

// field describes the body a conversion wrote, for padding.
type field struct {
	prefix int  // sign and 0x prefix; zero padding goes after it
	noZero bool // the '0' flag does not apply
}

// Format writes format with args to s and returns the number of bytes
// produced. A nil args behaves like an empty list.
func Format(s sink.Sink, format string, args *Args) int {
	if args == nil {
		args = &Args{}
	}
	var sc scratch
	start := s.Len()
	for {
		d, ok := Scan(format, args)
		if !ok {
			break
		}
		s.AppendString(format[:d.Offset])
		format = format[d.Offset+len(d.Text):]
		if !d.Recognized() {
			s.AppendString(d.Text)
			continue
		}
		convert(s, &sc, d, args)
	}
	s.AppendString(format)
	return s.Len() - start
}

func convert(s sink.Sink, sc *scratch, d Directive, args *Args) {
	start := s.Len()
	var fl field
	switch d.Conversion {
	case 'd', 'i':
		v := args.NextSigned(d.Length)
		fl = formatInteger(s, d, v.Sign() < 0, v.Abs())
	case 'u', 'o', 'x', 'X':
		fl = formatInteger(s, d, false, args.NextUnsigned(d.Length))
	case 'p':
		addr := args.NextPointer()
		if addr == 0 {
			padString(s, d, "(nil)", len("(nil)"))
			return
		}
		fl = formatInteger(s, d, false, wide.From64(addr))
	case 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A':
		fl = formatFloat(s, sc, d, args.NextFloat())
	case 'c':
		formatChar(s, d, args)
		return
	case 's':
		formatString(s, d, args)
		return
	case 'S':
		formatLibString(s, d, args)
		return
	case '%':
		s.AppendByte('%')
		return
	}

	written := s.Len() - start
	if written >= d.Width {
		return
	}
	n := d.Width - written
	switch {
	case d.Flags.Has(FlagMinus):
		s.Pad(' ', n)
	case d.Flags.Has(FlagZero) && !fl.noZero:
		s.InsertPad(start+fl.prefix, '0', n)
	default:
		s.InsertPad(start, ' ', n)
	}
}

// Vsnprintf formats into buf. It writes at most len(buf) bytes and returns
// the length the complete output would have; the output was truncated if
// that exceeds len(buf). No terminating NUL is written.
func Vsnprintf(buf []byte, format string, args *Args) int {
	return Format(sink.NewBounded(buf), format, args)
}

// Snprintf is Vsnprintf with the arguments converted by ArgOf.
func Snprintf(buf []byte, format string, args ...any) int {
	return Vsnprintf(buf, format, NewArgs(args...))
}

// Append formats and appends the result to dst.
func Append(dst []byte, format string, args ...any) []byte {
	b := sink.Bytes(dst)
	Format(sink.NewGrowable(&b), format, NewArgs(args...))
	return b
}

var bufPool = sync.Pool{
	New: func() any {
		b := make(sink.Bytes, 0, 256)
		return &b
	},
}

// maxPooled bounds the buffers kept for reuse.
const maxPooled = 64 << 10

// Sprintf formats and returns the resulting string.
func Sprintf(format string, args ...any) string {
	b := bufPool.Get().(*sink.Bytes)
	*b = (*b)[:0]
	Format(sink.NewGrowable(b), format, NewArgs(args...))
	str := string(*b)
	if cap(*b) <= maxPooled {
		bufPool.Put(b)
	}
	return str
}

// stackSize is the size of the first formatting attempt of Vfprintf.
const stackSize = 4096

// Vfprintf formats and writes the result to w. Output that does not fit a
// fixed buffer is formatted a second time into a buffer of the right size,
// reading args again from the same position.
func Vfprintf(w io.Writer, format string, args *Args) (int, error) {
	if args == nil {
		args = &Args{}
	}
	pos := args.pos

	var stack [stackSize]byte
	b := sink.NewBounded(stack[:])
	n := Format(b, format, args)
	if !b.Truncated() {
		return w.Write(b.Bytes())
	}

	args.pos = pos
	buf := make(sink.Bytes, 0, n)
	Format(sink.NewGrowable(&buf), format, args)
	return w.Write(buf)
}

// Fprintf is Vfprintf with the arguments converted by ArgOf.
func Fprintf(w io.Writer, format string, args ...any) (int, error) {
	return Vfprintf(w, format, NewArgs(args...))
}

// Printf writes to standard output.
func Printf(format string, args ...any) (int, error) {
	return Fprintf(os.Stdout, format, args...)
}
