// export access to internals for tests

package cprintf

import "math"

// ExactDecimal returns the exact decimal expansion of |v| as digits
// 0.d1d2... × 10^dp, without trailing zeros. v must be finite.
func ExactDecimal(v float64) (digits string, dp int, trunc bool) {
	b := math.Float64bits(v)
	exp := int(b>>fracBits) & (1<<expBits - 1)
	mant := b & (1<<fracBits - 1)
	if exp == 0 {
		exp = 1
	} else {
		mant |= 1 << fracBits
	}
	exp -= bias + fracBits

	var sc scratch
	var d decimal
	d.assign(&sc, mant, exp, digitLimit{fixed: true, n: maxFracDigits})
	d.trimZeros()
	return string(d.d[:d.nd]), d.dp, d.trunc
}
