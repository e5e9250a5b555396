package cprintf

import (
	"strconv"

	"github.com/shogo82148/cprintf/sink"
)

// FormatFloat formats v like the C conversion %.<prec><fmt>.
// See AppendFloat.
func FormatFloat(v float64, fmt byte, prec int) string {
	return string(AppendFloat(make([]byte, 0, 24), v, fmt, prec))
}

// AppendFloat appends v formatted like the C conversion %.<prec><fmt>, with
// no flags and no width. fmt is one of f, F, e, E, g, G, a and A; a negative
// prec selects the default of the conversion. Other formats are those of
// strconv.AppendFloat.
func AppendFloat(dst []byte, v float64, fmt byte, prec int) []byte {
	switch fmt {
	case 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A':
	default:
		return strconv.AppendFloat(dst, v, fmt, prec, 64)
	}

	d := Directive{Conversion: fmt}
	if prec >= 0 {
		d.Precision = Precision{Mode: PrecSome, Value: prec}
	}
	b := sink.Bytes(dst)
	var sc scratch
	formatFloat(sink.NewGrowable(&b), &sc, d, v)
	return b
}
