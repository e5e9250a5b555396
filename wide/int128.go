package wide

// Int128 is a signed 128-bit integer in two's complement.
type Int128 struct {
	Hi int64
	Lo uint64
}

var (
	// MaxInt128 is the largest value representable by an Int128.
	MaxInt128 = Int128{Hi: 1<<63 - 1, Lo: 1<<64 - 1}

	// MinInt128 is the smallest value representable by an Int128.
	MinInt128 = Int128{Hi: -1 << 63}
)

// NewInt128 returns the Int128 with the given high and low words.
func NewInt128(hi int64, lo uint64) Int128 {
	return Int128{Hi: hi, Lo: lo}
}

// Int128From64 returns v sign-extended to 128 bits.
func Int128From64(v int64) Int128 {
	return Int128{Hi: v >> 63, Lo: uint64(v)}
}

// Uint128 reinterprets the bits of a as an unsigned integer.
func (a Int128) Uint128() Uint128 {
	return Uint128{Hi: uint64(a.Hi), Lo: a.Lo}
}

// IsZero reports whether a == 0.
func (a Int128) IsZero() bool {
	return a.Hi == 0 && a.Lo == 0
}

// Sign returns -1, 0 or +1 depending on the sign of a.
func (a Int128) Sign() int {
	switch {
	case a.Hi < 0:
		return -1
	case a.IsZero():
		return 0
	}
	return 1
}

// Cmp compares a and b and returns -1, 0 or +1.
func (a Int128) Cmp(b Int128) int {
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

// Abs returns the magnitude of a. The magnitude of MinInt128 is 2^127,
// which is representable as a Uint128.
func (a Int128) Abs() Uint128 {
	if a.Hi < 0 {
		return a.Uint128().Neg()
	}
	return a.Uint128()
}

// Float64 returns the float64 nearest to a, rounding ties to even.
func (a Int128) Float64() float64 {
	f := a.Abs().Float64()
	if a.Hi < 0 {
		return -f
	}
	return f
}

// Add returns a + b. Overflow wraps like Go's native signed integers.
func (a Int128) Add(b Int128) Int128 {
	return a.Uint128().Add(b.Uint128()).Int128()
}

// Sub returns a - b. Overflow wraps like Go's native signed integers.
func (a Int128) Sub(b Int128) Int128 {
	return a.Uint128().Sub(b.Uint128()).Int128()
}

// Neg returns -a. The negation of MinInt128 is MinInt128.
func (a Int128) Neg() Int128 {
	return a.Uint128().Neg().Int128()
}

// Mul returns a * b. Overflow wraps like Go's native signed integers.
func (a Int128) Mul(b Int128) Int128 {
	return a.Uint128().Mul(b.Uint128()).Int128()
}

// QuoRem returns the quotient a / b truncated toward zero and the remainder,
// which has the sign of a. As with int64, MinInt128 / -1 overflows to
// MinInt128 with remainder 0. It panics if b is zero.
func (a Int128) QuoRem(b Int128) (q, r Int128) {
	qu, ru := a.Abs().DivMod(b.Abs())
	q, r = qu.Int128(), ru.Int128()
	if (a.Hi < 0) != (b.Hi < 0) {
		q = q.Neg()
	}
	if a.Hi < 0 {
		r = r.Neg()
	}
	return q, r
}

// Quo returns a / b truncated toward zero. It panics if b is zero.
func (a Int128) Quo(b Int128) Int128 {
	q, _ := a.QuoRem(b)
	return q
}

// Rem returns the remainder of a / b. It panics if b is zero.
func (a Int128) Rem(b Int128) Int128 {
	_, r := a.QuoRem(b)
	return r
}

// Lsh returns a << n.
func (a Int128) Lsh(n uint) Int128 {
	return a.Uint128().Lsh(n).Int128()
}

// Rsh returns the arithmetic right shift a >> n.
func (a Int128) Rsh(n uint) Int128 {
	switch {
	case n == 0:
		return a
	case n >= 128:
		return Int128{Hi: a.Hi >> 63, Lo: uint64(a.Hi >> 63)}
	case n >= 64:
		return Int128{Hi: a.Hi >> 63, Lo: uint64(a.Hi >> (n - 64))}
	}
	return Int128{Hi: a.Hi >> n, Lo: a.Lo>>n | uint64(a.Hi)<<(64-n)}
}

// String returns the decimal representation of a.
func (a Int128) String() string {
	var buf [39]byte
	i := a.Abs().putDecimal(&buf)
	if a.Hi < 0 {
		return "-" + string(buf[i:])
	}
	return string(buf[i:])
}
