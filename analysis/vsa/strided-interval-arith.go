package vsa

import "math/bits"

// Internal interval operations. They assume the caller already matched
// operand widths where this is required.

// add computes a + b modulo 2^bits.
func (a StridedInterval) add(b StridedInterval) StridedInterval {
	if a.empty || b.empty {
		return emptySI(a.bits)
	}
	m := mask(a.bits)
	stride := gcd(a.stride, b.stride)
	lo, c1 := bits.Add64(a.lower, b.lower, 0)
	hi, c2 := bits.Add64(a.upper, b.upper, 0)

	var wrapLo, wrapHi bool
	if a.bits == 64 {
		wrapLo, wrapHi = c1 != 0, c2 != 0
	} else {
		wrapLo, wrapHi = lo > m, hi > m
	}

	switch {
	case !wrapHi:
		return mkSI(a.bits, stride, lo, hi)
	case wrapLo:
		// Every sum wraps exactly once.
		return mkSI(a.bits, stride, lo&m, hi&m)
	}
	return wrapCover(a.bits, stride, lo)
}

// sub computes a - b modulo 2^bits.
func (a StridedInterval) sub(b StridedInterval) StridedInterval {
	if a.empty || b.empty {
		return emptySI(a.bits)
	}
	m := mask(a.bits)
	stride := gcd(a.stride, b.stride)
	lo, hi := a.lower-b.upper, a.upper-b.lower

	switch {
	case a.lower >= b.upper:
		return mkSI(a.bits, stride, lo, hi)
	case a.upper < b.lower:
		// Every difference wraps exactly once.
		return mkSI(a.bits, stride, lo&m, hi&m)
	}
	return wrapCover(a.bits, stride, lo&m)
}

// not computes the bitwise complement ~a.
func (a StridedInterval) not() StridedInterval {
	if a.empty {
		return a
	}
	m := mask(a.bits)
	return mkSI(a.bits, a.stride, m-a.upper, m-a.lower)
}

// neg computes the two's complement negation 0 - a.
func (a StridedInterval) neg() StridedInterval {
	m := mask(a.bits)
	switch {
	case a.empty:
		return a
	case a.lower > 0:
		return mkSI(a.bits, a.stride, (0-a.upper)&m, (0-a.lower)&m)
	case a.stride == 0:
		return a
	}
	// 0 maps to itself, the remaining members wrap.
	rest := mkSI(a.bits, a.stride, (0-a.upper)&m, (0-a.stride)&m)
	return constSI(a.bits, 0).union(rest)
}

// orBound is the smallest all-ones word covering both upper bounds.
func orBound(a, b StridedInterval) uint64 {
	k := uint(bits.Len64(a.upper | b.upper))
	return mask(k)
}

func (a StridedInterval) and(b StridedInterval) StridedInterval {
	switch {
	case a.empty || b.empty:
		return emptySI(a.bits)
	case a.IsSingleton() && b.IsSingleton():
		return constSI(a.bits, a.lower&b.lower)
	}
	return mkSI(a.bits, 1, 0, min64(a.upper, b.upper))
}

func (a StridedInterval) or(b StridedInterval) StridedInterval {
	switch {
	case a.empty || b.empty:
		return emptySI(a.bits)
	case a.IsSingleton() && b.IsSingleton():
		return constSI(a.bits, a.lower|b.lower)
	}
	return mkSI(a.bits, 1, max64(a.lower, b.lower), orBound(a, b)&mask(a.bits))
}

func (a StridedInterval) xor(b StridedInterval) StridedInterval {
	switch {
	case a.empty || b.empty:
		return emptySI(a.bits)
	case a.IsSingleton() && b.IsSingleton():
		return constSI(a.bits, a.lower^b.lower)
	}
	return mkSI(a.bits, 1, 0, orBound(a, b)&mask(a.bits))
}

// shlConst computes a << k.
func (a StridedInterval) shlConst(k uint64) StridedInterval {
	m := mask(a.bits)
	switch {
	case a.empty:
		return a
	case k >= uint64(a.bits):
		return constSI(a.bits, 0)
	case a.upper <= m>>k:
		return mkSI(a.bits, a.stride<<k, a.lower<<k, a.upper<<k)
	case a.stride == 0:
		return constSI(a.bits, (a.lower<<k)&m)
	}
	tz := uint(bits.TrailingZeros64(a.stride)) + uint(k)
	return congruenceCover(a.bits, tz, a.lower<<k)
}

// shrConst computes the logical shift a >> k.
func (a StridedInterval) shrConst(k uint64) StridedInterval {
	switch {
	case a.empty:
		return a
	case k >= uint64(a.bits):
		return constSI(a.bits, 0)
	case a.stride == 0:
		return constSI(a.bits, a.lower>>k)
	case uint64(bits.TrailingZeros64(a.stride)) >= k:
		return mkSI(a.bits, a.stride>>k, a.lower>>k, a.upper>>k)
	}
	return mkSI(a.bits, 1, a.lower>>k, a.upper>>k)
}

// shiftBy unions the shift of a by every possible shift amount in b.
// Amounts of at least the width all yield 0, so at most bits+1 shifts happen.
func (a StridedInterval) shiftBy(b StridedInterval, shift func(StridedInterval, uint64) StridedInterval) StridedInterval {
	if a.empty || b.empty {
		return emptySI(a.bits)
	}
	res := emptySI(a.bits)
	for k := b.lower; ; k += b.stride {
		res = res.union(shift(a, k))
		if k >= uint64(a.bits) || k == b.upper {
			break
		}
	}
	return res
}

func (a StridedInterval) shl(b StridedInterval) StridedInterval {
	return a.shiftBy(b, StridedInterval.shlConst)
}

func (a StridedInterval) shr(b StridedInterval) StridedInterval {
	return a.shiftBy(b, StridedInterval.shrConst)
}
