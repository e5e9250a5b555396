package wide

const errDivideByZero = "wide: division by zero"

// arith is the contract both back ends implement. divmod is never called
// with a zero divisor.
type arith interface {
	add(a, b Uint128) Uint128
	sub(a, b Uint128) Uint128
	mul64(a, b uint64) Uint128
	mul(a, b Uint128) Uint128
	divmod(a, b Uint128) (q, r Uint128)
}

var (
	_ arith = portableArith{}
	_ arith = nativeArith{}
)

// portableArith uses plain 64-bit operations only, for targets without a
// double-word multiply or divide.
type portableArith struct{}

func (portableArith) add(a, b Uint128) Uint128 {
	lo := a.Lo + b.Lo
	var carry uint64
	if lo < a.Lo {
		carry = 1
	}
	return Uint128{Hi: a.Hi + b.Hi + carry, Lo: lo}
}

func (portableArith) sub(a, b Uint128) Uint128 {
	lo := a.Lo - b.Lo
	var borrow uint64
	if a.Lo < b.Lo {
		borrow = 1
	}
	return Uint128{Hi: a.Hi - b.Hi - borrow, Lo: lo}
}

// mul64 splits both operands into 32-bit halves and sums the four partial
// products.
func (portableArith) mul64(a, b uint64) Uint128 {
	const mask32 = 1<<32 - 1
	ah, al := a>>32, a&mask32
	bh, bl := b>>32, b&mask32

	albl, albh := al*bl, al*bh
	ahbl, ahbh := ah*bl, ah*bh

	// carry out of bit 64 when the middle products meet the low product
	carry := ((ahbl & mask32) + (albh & mask32) + (albl >> 32)) >> 32

	return Uint128{
		Hi: ahbh + ahbl>>32 + albh>>32 + carry,
		Lo: ahbl<<32 + albh<<32 + albl,
	}
}

func (p portableArith) mul(a, b Uint128) Uint128 {
	lo := p.mul64(a.Lo, b.Lo)
	lo.Hi += a.Hi*b.Lo + a.Lo*b.Hi
	return lo
}

// divmod is binary long division, most significant bit first.
func (p portableArith) divmod(a, b Uint128) (q, r Uint128) {
	if a.Cmp(b) < 0 {
		return Uint128{}, a
	}
	if a.Hi == 0 {
		// b <= a < 2^64
		return Uint128{Lo: a.Lo / b.Lo}, Uint128{Lo: a.Lo % b.Lo}
	}

	shift := b.LeadingZeros() - a.LeadingZeros()
	d := b.Lsh(uint(shift))
	r = a
	for ; shift >= 0; shift-- {
		q = q.Lsh(1)
		if r.Cmp(d) >= 0 {
			r = p.sub(r, d)
			q.Lo |= 1
		}
		d = d.Rsh(1)
	}
	return q, r
}
