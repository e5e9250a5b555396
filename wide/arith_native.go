package wide

import (
	"math/bits"

	"github.com/shogo82148/int128"
)

// nativeArith relies on the double-word intrinsics of math/bits and the
// division of github.com/shogo82148/int128.
type nativeArith struct{}

func toLib(a Uint128) int128.Uint128 {
	return int128.Uint128{H: a.Hi, L: a.Lo}
}

func fromLib(a int128.Uint128) Uint128 {
	return Uint128{Hi: a.H, Lo: a.L}
}

func (nativeArith) add(a, b Uint128) Uint128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

func (nativeArith) sub(a, b Uint128) Uint128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

func (nativeArith) mul64(a, b uint64) Uint128 {
	hi, lo := bits.Mul64(a, b)
	return Uint128{Hi: hi, Lo: lo}
}

func (nativeArith) mul(a, b Uint128) Uint128 {
	return fromLib(toLib(a).Mul(toLib(b)))
}

func (nativeArith) divmod(a, b Uint128) (q, r Uint128) {
	if a.Hi < b.Lo && b.Hi == 0 {
		// the quotient fits in 64 bits
		quo, rem := bits.Div64(a.Hi, a.Lo, b.Lo)
		return Uint128{Lo: quo}, Uint128{Lo: rem}
	}
	lq, lr := toLib(a).DivMod(toLib(b))
	return fromLib(lq), fromLib(lr)
}
