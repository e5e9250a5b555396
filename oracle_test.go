//go:build cgo

package cprintf_test

import (
	"math"
	"math/rand/v2"
	"runtime"
	"strings"
	"testing"

	"github.com/shogo82148/cprintf"
	"github.com/shogo82148/cprintf/internal/oracle"
)

func skipUnlessGlibc(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("the reference output is that of glibc")
	}
}

// randDirective returns a random directive ending in one of convs, with
// the given length modifier.
func randDirective(r *rand.Rand, length string, convs string) string {
	var sb strings.Builder
	sb.WriteByte('%')
	for _, c := range "-+ #0" {
		if r.IntN(4) == 0 {
			sb.WriteRune(c)
		}
	}
	if r.IntN(2) == 0 {
		sb.WriteString(cprintf.Sprintf("%d", r.IntN(30)))
	}
	if r.IntN(2) == 0 {
		sb.WriteString(cprintf.Sprintf(".%d", r.IntN(30)))
	}
	sb.WriteString(length)
	sb.WriteByte(convs[r.IntN(len(convs))])
	return sb.String()
}

func randInt64(r *rand.Rand) int64 {
	switch r.IntN(4) {
	case 0:
		return int64(r.IntN(200)) - 100
	case 1:
		return []int64{0, math.MinInt64, math.MaxInt64, -1, math.MinInt32, math.MaxUint32}[r.IntN(6)]
	}
	return int64(r.Uint64()) >> r.IntN(64)
}

func TestOracle_Integers(t *testing.T) {
	skipUnlessGlibc(t)
	r := rand.New(rand.NewPCG(11, 12))
	for range 5000 {
		v := randInt64(r)
		format := randDirective(r, "ll", "diouxX")
		if got, want := cprintf.Sprintf(format, v), oracle.LongLong(format, v); got != want {
			t.Errorf("%q of %d: expected %q, got %q", format, v, want, got)
		}

		length := []string{"hh", "h", ""}[r.IntN(3)]
		format = randDirective(r, length, "diouxX")
		if got, want := cprintf.Sprintf(format, int32(v)), oracle.Int(format, int32(v)); got != want {
			t.Errorf("%q of %d: expected %q, got %q", format, int32(v), want, got)
		}
	}
}

func TestOracle_Floats(t *testing.T) {
	skipUnlessGlibc(t)
	r := rand.New(rand.NewPCG(13, 14))
	specials := []float64{0, math.Copysign(0, -1), math.Inf(1), math.Inf(-1), math.NaN(),
		math.MaxFloat64, math.SmallestNonzeroFloat64, 0x1p-1022, 0.1, 0.5, 9.5, 1e21, 123.456}
	for i := range 10000 {
		var v float64
		switch {
		case i < len(specials):
			v = specials[i]
		case r.IntN(3) == 0:
			v = float64(r.IntN(100000)) / float64(int(1)<<r.IntN(16))
		default:
			v = math.Float64frombits(r.Uint64())
		}
		format := randDirective(r, "", "fFeEgGaA")
		if strings.ContainsAny(format, "fF") && math.Abs(v) > 1e50 {
			continue
		}
		if got, want := cprintf.Sprintf(format, v), oracle.Double(format, v); got != want {
			t.Errorf("%q of %b: expected %q, got %q", format, v, want, got)
		}
	}
}

func TestOracle_Stars(t *testing.T) {
	skipUnlessGlibc(t)
	r := rand.New(rand.NewPCG(15, 16))
	for range 2000 {
		w := int32(r.IntN(41) - 20)
		p := int32(r.IntN(41) - 20)
		v := math.Float64frombits(r.Uint64())
		if math.Abs(v) > 1e50 {
			v = math.Mod(v, 1e20)
		}
		for _, format := range []string{"%*.*f", "%*.*e", "%-*.*g", "%0*.*a"} {
			if got, want := cprintf.Sprintf(format, w, p, v), oracle.StarDouble(format, w, p, v); got != want {
				t.Errorf("%q of %d %d %b: expected %q, got %q", format, w, p, v, want, got)
			}
		}
	}
}

func TestOracle_StringsAndPointers(t *testing.T) {
	skipUnlessGlibc(t)
	strs := []string{"", "a", "hello", "héllo wörld", strings.Repeat("x", 600)}
	for _, s := range strs {
		for _, format := range []string{"%s", "%10s", "%-10s|", "%.3s", "%8.2s", "%.0s", "%.700s"} {
			if got, want := cprintf.Sprintf(format, s), oracle.String(format, s); got != want {
				t.Errorf("%q of %q: expected %q, got %q", format, s, want, got)
			}
		}
	}

	for _, p := range []uintptr{0, 1, 0xdeadbeef, 0x7fffffffffff} {
		for _, format := range []string{"%p", "%20p", "%-20p|", "%+p", "% p"} {
			if got, want := cprintf.Sprintf(format, cprintf.PointerArg(p)), oracle.Pointer(format, p); got != want {
				t.Errorf("%q of %#x: expected %q, got %q", format, p, want, got)
			}
		}
	}
}
