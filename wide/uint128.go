// Package wide implements fixed-width 128-bit integers.
//
// Values are addressed as a high/low pair of 64-bit words regardless of the
// host byte order. All operations return new values. Unsigned arithmetic
// wraps modulo 2^128; signed arithmetic wraps in two's complement exactly
// like Go's native integer types. Division by zero panics.
//
// Two interchangeable back ends implement the arithmetic: a portable one
// written with 64-bit operations only, and a native one built on math/bits
// intrinsics and github.com/shogo82148/int128. The default is the native back
// end; building with the cprintf_portable tag selects the portable one.
package wide

import (
	"math"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// MaxUint128 is the largest value representable by a Uint128.
var MaxUint128 = Uint128{Hi: 1<<64 - 1, Lo: 1<<64 - 1}

// New returns the Uint128 with the given high and low words.
func New(hi, lo uint64) Uint128 {
	return Uint128{Hi: hi, Lo: lo}
}

// From64 returns v as a Uint128.
func From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero reports whether a == 0.
func (a Uint128) IsZero() bool {
	return a.Hi|a.Lo == 0
}

// IsUint64 reports whether a fits in 64 bits.
func (a Uint128) IsUint64() bool {
	return a.Hi == 0
}

// Cmp compares a and b and returns -1, 0 or +1.
func (a Uint128) Cmp(b Uint128) int {
	switch {
	case a.Hi < b.Hi:
		return -1
	case a.Hi > b.Hi:
		return 1
	case a.Lo < b.Lo:
		return -1
	case a.Lo > b.Lo:
		return 1
	}
	return 0
}

// And returns a & b.
func (a Uint128) And(b Uint128) Uint128 {
	return Uint128{Hi: a.Hi & b.Hi, Lo: a.Lo & b.Lo}
}

// Or returns a | b.
func (a Uint128) Or(b Uint128) Uint128 {
	return Uint128{Hi: a.Hi | b.Hi, Lo: a.Lo | b.Lo}
}

// Xor returns a ^ b.
func (a Uint128) Xor(b Uint128) Uint128 {
	return Uint128{Hi: a.Hi ^ b.Hi, Lo: a.Lo ^ b.Lo}
}

// Not returns ^a.
func (a Uint128) Not() Uint128 {
	return Uint128{Hi: ^a.Hi, Lo: ^a.Lo}
}

// Lsh returns a << n. Shifts of 128 or more yield zero.
func (a Uint128) Lsh(n uint) Uint128 {
	switch {
	case n == 0:
		return a
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: a.Lo << (n - 64)}
	}
	return Uint128{Hi: a.Hi<<n | a.Lo>>(64-n), Lo: a.Lo << n}
}

// Rsh returns the logical right shift a >> n.
func (a Uint128) Rsh(n uint) Uint128 {
	switch {
	case n == 0:
		return a
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: a.Hi >> (n - 64)}
	}
	return Uint128{Hi: a.Hi >> n, Lo: a.Lo>>n | a.Hi<<(64-n)}
}

// LeadingZeros returns the number of leading zero bits in a.
func (a Uint128) LeadingZeros() int {
	if a.Hi != 0 {
		return bits.LeadingZeros64(a.Hi)
	}
	return 64 + bits.LeadingZeros64(a.Lo)
}

// Len returns the minimum number of bits required to represent a.
func (a Uint128) Len() int {
	return 128 - a.LeadingZeros()
}

// Float64 returns the float64 nearest to a, rounding ties to even.
func (a Uint128) Float64() float64 {
	if a.Hi == 0 {
		return float64(a.Lo)
	}
	// keep the top 64 bits; the bits shifted out are folded into a sticky bit
	n := uint(a.Len() - 64)
	m := a.Rsh(n).Lo
	if a.Lo&(1<<n-1) != 0 {
		m |= 1
	}
	return math.Ldexp(float64(m), int(n))
}

// Add returns a + b, wrapping on overflow.
func (a Uint128) Add(b Uint128) Uint128 {
	return defaultArith{}.add(a, b)
}

// Sub returns a - b, wrapping on underflow.
func (a Uint128) Sub(b Uint128) Uint128 {
	return defaultArith{}.sub(a, b)
}

// Neg returns -a modulo 2^128.
func (a Uint128) Neg() Uint128 {
	return defaultArith{}.sub(Uint128{}, a)
}

// Mul64 returns the full 128-bit product of a and b.
func Mul64(a, b uint64) Uint128 {
	return defaultArith{}.mul64(a, b)
}

// Mul returns a * b modulo 2^128.
func (a Uint128) Mul(b Uint128) Uint128 {
	return defaultArith{}.mul(a, b)
}

// DivMod returns the quotient and remainder of a / b.
// It panics if b is zero.
func (a Uint128) DivMod(b Uint128) (q, r Uint128) {
	if b.IsZero() {
		panic(errDivideByZero)
	}
	return defaultArith{}.divmod(a, b)
}

// Quo returns a / b. It panics if b is zero.
func (a Uint128) Quo(b Uint128) Uint128 {
	q, _ := a.DivMod(b)
	return q
}

// Rem returns a % b. It panics if b is zero.
func (a Uint128) Rem(b Uint128) Uint128 {
	_, r := a.DivMod(b)
	return r
}

// Int128 reinterprets the bits of a as a signed integer.
func (a Uint128) Int128() Int128 {
	return Int128{Hi: int64(a.Hi), Lo: a.Lo}
}

// String returns the decimal representation of a.
func (a Uint128) String() string {
	var buf [39]byte
	return string(buf[a.putDecimal(&buf):])
}

const pow10x19 = 10000000000000000000 // = 10^19

// putDecimal writes the decimal digits of a at the end of buf and returns
// the index of the first digit.
func (a Uint128) putDecimal(buf *[39]byte) int {
	i := len(buf)
	for !a.IsUint64() {
		q, r := a.DivMod(From64(pow10x19))
		chunk := r.Lo
		for j := 0; j < 19; j++ {
			i--
			buf[i] = byte('0' + chunk%10)
			chunk /= 10
		}
		a = q
	}
	v := a.Lo
	for v >= 10 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	i--
	buf[i] = byte('0' + v)
	return i
}
