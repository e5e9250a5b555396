package wide

import (
	"math/big"
	"math/rand/v2"
	"testing"
)

var backends = []struct {
	name string
	a    arith
}{
	{"portable", portableArith{}},
	{"native", nativeArith{}},
}

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

func bigU(a Uint128) *big.Int {
	b := new(big.Int).SetUint64(a.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(a.Lo))
}

func fromBig(b *big.Int) Uint128 {
	b = new(big.Int).Mod(b, two128)
	lo := new(big.Int).And(b, new(big.Int).SetUint64(1<<64-1))
	hi := new(big.Int).Rsh(b, 64)
	return Uint128{Hi: hi.Uint64(), Lo: lo.Uint64()}
}

// randUint128 returns a value with a random bit length, so that small and
// large operands are equally likely.
func randUint128(r *rand.Rand) Uint128 {
	v := Uint128{Hi: r.Uint64(), Lo: r.Uint64()}
	return v.Rsh(uint(r.IntN(128)))
}

var edgeValues = []Uint128{
	{},
	{Lo: 1},
	{Lo: 2},
	{Lo: 10},
	{Lo: 1<<32 - 1},
	{Lo: 1 << 32},
	{Lo: 1<<64 - 1},
	{Hi: 1},
	{Hi: 1, Lo: 1<<64 - 1},
	{Hi: 1<<63 - 1, Lo: 1<<64 - 1},
	{Hi: 1 << 63},
	{Hi: 1<<64 - 1, Lo: 1<<64 - 1},
	{Lo: pow10x19},
	{Hi: 0x8ac7230489e80000},
}

func TestMul64(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, be := range backends {
		t.Run(be.name, func(t *testing.T) {
			check := func(a, b uint64) {
				got := be.a.mul64(a, b)
				want := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
				if bigU(got).Cmp(want) != 0 {
					t.Errorf("%#x * %#x: expected %s, got %s", a, b, want, got)
				}
			}
			for _, a := range edgeValues {
				for _, b := range edgeValues {
					check(a.Lo, b.Lo)
				}
			}
			for i := 0; i < 10000; i++ {
				check(r.Uint64()>>r.IntN(64), r.Uint64()>>r.IntN(64))
			}
		})
	}
}

func TestAddSubMul(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for _, be := range backends {
		t.Run(be.name, func(t *testing.T) {
			check := func(a, b Uint128) {
				ba, bb := bigU(a), bigU(b)
				if got, want := be.a.add(a, b), fromBig(new(big.Int).Add(ba, bb)); got != want {
					t.Errorf("%s + %s: expected %s, got %s", a, b, want, got)
				}
				if got, want := be.a.sub(a, b), fromBig(new(big.Int).Sub(ba, bb)); got != want {
					t.Errorf("%s - %s: expected %s, got %s", a, b, want, got)
				}
				if got, want := be.a.mul(a, b), fromBig(new(big.Int).Mul(ba, bb)); got != want {
					t.Errorf("%s * %s: expected %s, got %s", a, b, want, got)
				}
			}
			for _, a := range edgeValues {
				for _, b := range edgeValues {
					check(a, b)
				}
			}
			for i := 0; i < 10000; i++ {
				check(randUint128(r), randUint128(r))
			}
		})
	}
}

func TestDivMod(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for _, be := range backends {
		t.Run(be.name, func(t *testing.T) {
			check := func(n, d Uint128) {
				if d.IsZero() {
					return
				}
				q, rem := be.a.divmod(n, d)
				bq, br := new(big.Int).QuoRem(bigU(n), bigU(d), new(big.Int))
				if bigU(q).Cmp(bq) != 0 || bigU(rem).Cmp(br) != 0 {
					t.Errorf("%s / %s: expected (%s, %s), got (%s, %s)", n, d, bq, br, q, rem)
				}
				if rem.Cmp(d) >= 0 {
					t.Errorf("%s / %s: remainder %s not less than divisor", n, d, rem)
				}
				if back := be.a.add(be.a.mul(q, d), rem); back != n {
					t.Errorf("%s / %s: q*d+r = %s", n, d, back)
				}
			}
			for _, n := range edgeValues {
				for _, d := range edgeValues {
					check(n, d)
				}
			}
			for i := 0; i < 20000; i++ {
				check(randUint128(r), randUint128(r))
			}
		})
	}
}

func TestDivideByZero(t *testing.T) {
	defer func() {
		if r := recover(); r != errDivideByZero {
			t.Errorf("expected panic %q, got %v", errDivideByZero, r)
		}
	}()
	From64(1).DivMod(Uint128{})
	t.Error("expected panic")
}
