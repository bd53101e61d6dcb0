package vsa

import "math/big"

// union computes the tightest strided interval covering a ∪ b.
func (a StridedInterval) union(b StridedInterval) StridedInterval {
	switch {
	case a.empty:
		return b
	case b.empty:
		return a
	}
	stride := gcd(gcd(a.stride, b.stride), absDiff(a.lower, b.lower))
	return mkSI(a.bits, stride, min64(a.lower, b.lower), max64(a.upper, b.upper))
}

// intersect computes a ∩ b exactly. The members common to two arithmetic
// progressions form a progression whose stride is the lcm of both strides.
func (a StridedInterval) intersect(b StridedInterval) StridedInterval {
	if a.empty || b.empty {
		return emptySI(a.bits)
	}
	lo, hi := max64(a.lower, b.lower), min64(a.upper, b.upper)
	switch {
	case lo > hi:
		return emptySI(a.bits)
	case a.stride == 0:
		if b.Contains(a.lower) {
			return a
		}
		return emptySI(a.bits)
	case b.stride == 0:
		if a.Contains(b.lower) {
			return constSI(a.bits, b.lower)
		}
		return emptySI(a.bits)
	}

	// Solve x ≡ a.lower (mod sa), x ≡ b.lower (mod sb).
	sa, sb := new(big.Int).SetUint64(a.stride), new(big.Int).SetUint64(b.stride)
	g := new(big.Int).GCD(nil, nil, sa, sb)
	d := new(big.Int).Sub(new(big.Int).SetUint64(b.lower), new(big.Int).SetUint64(a.lower))
	if new(big.Int).Mod(d, g).Sign() != 0 {
		return emptySI(a.bits)
	}
	m := new(big.Int).Quo(sb, g)
	k := new(big.Int)
	if m.Cmp(big.NewInt(1)) != 0 {
		inv := new(big.Int).ModInverse(new(big.Int).Quo(sa, g), m)
		k.Mul(new(big.Int).Quo(d, g), inv)
		k.Mod(k, m)
	}
	lcm := new(big.Int).Mul(sa, m)
	x := new(big.Int).Mul(sa, k)
	x.Add(x, new(big.Int).SetUint64(a.lower))

	// First common member at or above lo.
	bigLo := new(big.Int).SetUint64(lo)
	first := new(big.Int).Sub(x, bigLo)
	first.Mod(first, lcm)
	first.Add(first, bigLo)
	if first.Cmp(new(big.Int).SetUint64(hi)) > 0 {
		return emptySI(a.bits)
	}

	f := first.Uint64()
	if lcm.Cmp(new(big.Int).SetUint64(hi-f)) > 0 {
		return constSI(a.bits, f)
	}
	return mkSI(a.bits, lcm.Uint64(), f, hi)
}

// widen computes a ∇ b. A bound of a that b exceeds jumps to the extreme
// word of the width that stays congruent to the joined stride.
func (a StridedInterval) widen(b StridedInterval) StridedInterval {
	switch {
	case a.empty:
		return b
	case b.empty:
		return a
	}
	j := a.union(b)
	lo, hi := a.lower, a.upper
	m := mask(a.bits)
	if j.stride == 0 {
		return j
	}
	r := j.lower % j.stride
	if b.lower < a.lower {
		lo = r
	}
	if b.upper > a.upper {
		hi = m - (m-r)%j.stride
	}
	return mkSI(a.bits, j.stride, lo, hi)
}

// Unsigned ternary comparisons.

func (a StridedInterval) eq(b StridedInterval) BoolResult {
	switch {
	case a.empty || b.empty:
		return False
	case a.IsSingleton() && b.IsSingleton():
		return elFact.Bool(a.lower == b.lower)
	case a.intersect(b).empty:
		return False
	}
	return Maybe
}

func (a StridedInterval) lt(b StridedInterval) BoolResult {
	switch {
	case a.empty || b.empty:
		return False
	case a.upper < b.lower:
		return True
	case a.lower >= b.upper:
		return False
	}
	return Maybe
}

func (a StridedInterval) le(b StridedInterval) BoolResult {
	switch {
	case a.empty || b.empty:
		return False
	case a.upper <= b.lower:
		return True
	case a.lower > b.upper:
		return False
	}
	return Maybe
}

func (a StridedInterval) compare(c Cmp, b StridedInterval) BoolResult {
	switch c {
	case CmpEq:
		return a.eq(b)
	case CmpNe:
		return a.compare(c.Negate(), b).Not()
	case CmpLt:
		return a.lt(b)
	case CmpLe:
		return a.le(b)
	case CmpGt:
		return b.lt(a)
	case CmpGe:
		return b.le(a)
	}
	panic(errInternal)
}
