package cprintf

import "github.com/shogo82148/cprintf/wide"

const (
	// maxDigits bounds the significant digits of any binary64.
	// The longest exact expansion has 767.
	maxDigits = 800

	// maxLimbs holds 2^1024 as an integer or 2^-1074 as a fraction.
	maxLimbs = 17

	pow10x19 = 10000000000000000000 // = 10^19
)

// scratch is the working memory of one float conversion. It lives in the
// frame of the formatting call and is passed down by pointer.
type scratch struct {
	digits [maxDigits]byte
	limbs  [maxLimbs]uint64
	chunks [maxLimbs]uint64
}

// decimal is the exact or truncated decimal expansion 0.d[0]d[1]... × 10^dp.
// trunc records that non-zero digits were dropped after d[nd-1].
type decimal struct {
	d     []byte
	nd    int
	dp    int
	trunc bool
}

// digitLimit says when digit generation may stop.
type digitLimit struct {
	fixed bool // count digits after the decimal point, not significant digits
	n     int
}

// reached reports whether d holds enough digits to round to the limit,
// including one guard digit.
func (l digitLimit) reached(d *decimal) bool {
	if l.fixed {
		return d.nd-d.dp > l.n
	}
	return d.nd > l.n
}

func (d *decimal) push(c byte) {
	if d.nd == len(d.d) {
		if c != '0' {
			d.trunc = true
		}
		return
	}
	d.d[d.nd] = c
	d.nd++
}

// assign sets d to the value mant × 2^exp, generating digits until limit is
// reached or the expansion is exact.
func (d *decimal) assign(sc *scratch, mant uint64, exp int, limit digitLimit) {
	*d = decimal{d: sc.digits[:]}
	if mant == 0 {
		return
	}

	if exp >= 0 {
		d.assignInt(sc, mant, uint(exp))
		return
	}

	s := uint(-exp) // fraction bits
	var frac uint64
	if s < 64 {
		frac = mant & (1<<s - 1)
		if ip := mant >> s; ip != 0 {
			d.assignUint64(ip)
		}
	} else {
		frac = mant
	}
	if frac != 0 {
		d.assignFrac(sc, frac, s, limit)
	}
}

// assignUint64 appends the digits of v, which is not zero.
func (d *decimal) assignUint64(v uint64) {
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	for _, c := range buf[i:] {
		d.push(c)
	}
	d.dp = d.nd
}

// assignInt sets d to the integer mant << shift. The integer is held in
// 64-bit limbs and split into 19-digit chunks by repeated division.
func (d *decimal) assignInt(sc *scratch, mant uint64, shift uint) {
	if shift < 64 && mant>>(64-shift) == 0 {
		d.assignUint64(mant << shift)
		return
	}

	limbs := sc.limbs[:]
	clear(limbs)
	i, off := shift/64, shift%64
	limbs[i] = mant << off
	n := int(i) + 1
	if off != 0 && mant>>(64-off) != 0 {
		limbs[i+1] = mant >> (64 - off)
		n++
	}

	ten19 := wide.From64(pow10x19)
	nc := 0
	for n > 0 {
		var rem uint64
		for j := n - 1; j >= 0; j-- {
			q, r := wide.New(rem, limbs[j]).DivMod(ten19)
			limbs[j] = q.Lo
			rem = r.Lo
		}
		sc.chunks[nc] = rem
		nc++
		for n > 0 && limbs[n-1] == 0 {
			n--
		}
	}

	// most significant chunk without leading zeros, the rest in full
	var buf [19]byte
	for c := nc - 1; c >= 0; c-- {
		v := sc.chunks[c]
		for j := len(buf) - 1; j >= 0; j-- {
			buf[j] = byte('0' + v%10)
			v /= 10
		}
		digits := buf[:]
		if c == nc-1 {
			for len(digits) > 1 && digits[0] == '0' {
				digits = digits[1:]
			}
		}
		for _, ch := range digits {
			d.push(ch)
		}
	}
	d.dp = d.nd
	d.trimZeros()
}

// assignFrac appends the digits of frac / 2^s. The fraction is aligned to
// the top of a limb array, so that multiplying by ten carries the next
// digit out of the most significant limb.
func (d *decimal) assignFrac(sc *scratch, frac uint64, s uint, limit digitLimit) {
	n := int((s + 63) / 64)
	limbs := sc.limbs[:n]
	clear(limbs)
	sh := uint(n)*64 - s
	i, off := sh/64, sh%64
	limbs[i] = frac << off
	if off != 0 && int(i)+1 < n {
		limbs[i+1] = frac >> (64 - off)
	}

	lo := 0
	for {
		for lo < n && limbs[lo] == 0 {
			lo++
		}
		if lo == n {
			return
		}
		if limit.reached(d) || d.nd == len(d.d) {
			d.trunc = true
			return
		}

		var carry uint64
		for j := lo; j < n; j++ {
			p := wide.Mul64(limbs[j], 10).Add(wide.From64(carry))
			limbs[j] = p.Lo
			carry = p.Hi
		}
		if d.nd == 0 && carry == 0 {
			d.dp--
			continue
		}
		d.push(byte('0' + carry))
	}
}

func (d *decimal) trimZeros() {
	for d.nd > 0 && d.d[d.nd-1] == '0' {
		d.nd--
	}
	if d.nd == 0 {
		d.dp = 0
	}
}

// shouldRoundUp reports whether rounding to k digits goes up, rounding
// half to even.
func (d *decimal) shouldRoundUp(k int) bool {
	if k < 0 || k >= d.nd {
		return false
	}
	if d.d[k] != '5' {
		return d.d[k] > '5'
	}
	if d.trunc {
		return true
	}
	for _, c := range d.d[k+1 : d.nd] {
		if c != '0' {
			return true
		}
	}
	// exactly halfway
	return k > 0 && (d.d[k-1]-'0')%2 == 1
}

// round rounds d to k significant digits. Rounding to a negative number of
// digits yields zero.
func (d *decimal) round(k int) {
	switch {
	case k < 0:
		d.nd, d.dp = 0, 0
	case d.shouldRoundUp(k):
		d.roundUp(k)
	default:
		d.nd = min(d.nd, k)
	}
	d.trunc = false
	d.trimZeros()
}

func (d *decimal) roundUp(k int) {
	i := k - 1
	for i >= 0 && d.d[i] == '9' {
		i--
	}
	if i < 0 {
		// all nines
		d.d[0] = '1'
		d.nd = 1
		d.dp++
		return
	}
	d.d[i]++
	d.nd = i + 1
}

// digit returns the i-th digit, or '0' past the stored ones.
func (d *decimal) digit(i int) byte {
	if i < 0 || i >= d.nd {
		return '0'
	}
	return d.d[i]
}
