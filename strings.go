package cprintf

import (
	"strings"
	"unicode/utf8"

	"github.com/shogo82148/cprintf/sink"
)

const nullString = "(null)"

// formatChar writes a c conversion. With the l modifier the argument is a
// wide character, written as UTF-8.
func formatChar(s sink.Sink, d Directive, args *Args) {
	v := args.NextUnsigned(LenD).Lo
	if d.Length != LenL {
		padString(s, d, string([]byte{byte(v)}), 1)
		return
	}
	text := string(utf8.AppendRune(nil, rune(uint32(v))))
	padString(s, d, text, len(text))
}

// formatString writes an s conversion. The string ends at its first NUL
// byte, as a C string does. The precision is a byte limit; with the l
// modifier it never splits a character.
func formatString(s sink.Sink, d Directive, args *Args) {
	str, ok := args.NextString()
	if !ok {
		// glibc prints "(null)" only when it fits the precision
		if d.precision(len(nullString)) >= len(nullString) {
			str = nullString
		}
	}
	if i := strings.IndexByte(str, 0); i >= 0 {
		str = str[:i]
	}
	if d.HasPrecision() {
		if d.Length == LenL {
			str = trimToRune(str, d.Precision.Value)
		} else if d.Precision.Value < len(str) {
			str = str[:d.Precision.Value]
		}
	}
	padString(s, d, str, len(str))
}

// formatLibString writes an S conversion: UTF-8 text whose width is counted
// in code points. The precision is a byte limit trimmed back to a code point
// boundary.
func formatLibString(s sink.Sink, d Directive, args *Args) {
	str, ok := args.NextString()
	if !ok {
		str = nullString
	}
	if d.HasPrecision() {
		str = trimToRune(str, d.Precision.Value)
	}
	padString(s, d, str, utf8.RuneCountInString(str))
}

// trimToRune returns the longest prefix of str of at most n bytes that does
// not end inside a UTF-8 sequence.
func trimToRune(str string, n int) string {
	if n >= len(str) {
		return str
	}
	i := 0
	for i < n {
		_, size := utf8.DecodeRuneInString(str[i:])
		if i+size > n {
			break
		}
		i += size
	}
	return str[:i]
}

// padString writes text padded with spaces to the field width. count is
// the length of text in the unit the width is measured in.
func padString(s sink.Sink, d Directive, text string, count int) {
	diff := max(d.Width-count, 0)
	if d.Flags.Has(FlagMinus) {
		s.AppendString(text)
		s.Pad(' ', diff)
		return
	}
	s.Pad(' ', diff)
	s.AppendString(text)
}
