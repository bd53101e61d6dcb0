package vsa

import "fmt"

// truncate reduces a modulo 2^width.
func (a StridedInterval) truncate(width uint) StridedInterval {
	mw := mask(width)
	switch {
	case a.empty:
		return emptySI(width)
	case a.upper <= mw:
		return mkSI(width, a.stride, a.lower, a.upper)
	case a.stride == 0:
		return constSI(width, a.lower&mw)
	case a.lower>>width == a.upper>>width:
		// All members share the discarded high part.
		return mkSI(width, a.stride, a.lower&mw, a.upper&mw)
	}
	return wrapCover(width, a.stride, a.lower)
}

// extract computes a[high:low].
func (a StridedInterval) extract(high, low uint) (StridedInterval, error) {
	if low > high || high >= a.bits {
		return StridedInterval{}, fmt.Errorf("%w: [%d:%d] of a %d-bit value", ErrInvalidExtract, high, low, a.bits)
	}
	return a.shrConst(uint64(low)).truncate(high - low + 1), nil
}

func extendedWidth(op string, w, n uint) (uint, error) {
	if w+n > 64 {
		return 0, fmt.Errorf("%w: %s of %d bits by %d", ErrWidthOverflow, op, w, n)
	}
	return w + n, nil
}

// zeroExtend widens a by n bits, keeping every member.
func (a StridedInterval) zeroExtend(n uint) (StridedInterval, error) {
	width, err := extendedWidth("zero-extension", a.bits, n)
	if err != nil {
		return StridedInterval{}, err
	}
	a.bits = width
	return a, nil
}

// signExtend widens a by n bits, replicating the sign bit of every member.
func (a StridedInterval) signExtend(n uint) (StridedInterval, error) {
	width, err := extendedWidth("sign-extension", a.bits, n)
	if err != nil {
		return StridedInterval{}, err
	}
	if a.empty {
		return emptySI(width), nil
	}

	sign := uint64(1) << (a.bits - 1)
	ext := mask(width) &^ mask(a.bits)
	switch {
	case a.upper < sign:
		return mkSI(width, a.stride, a.lower, a.upper), nil
	case a.lower >= sign:
		return mkSI(width, a.stride, a.lower|ext, a.upper|ext), nil
	}

	// The members straddle the sign boundary: extend both halves separately.
	lastPos := a.lower + (sign-1-a.lower)/a.stride*a.stride
	firstNeg := lastPos + a.stride
	pos := mkSI(width, a.stride, a.lower, lastPos)
	neg := mkSI(width, a.stride, firstNeg|ext, a.upper|ext)
	return pos.union(neg), nil
}

// concat computes a .. b, placing a in the high bits.
func (a StridedInterval) concat(b StridedInterval) (StridedInterval, error) {
	width, err := extendedWidth("concatenation", a.bits, b.bits)
	if err != nil {
		return StridedInterval{}, err
	}
	if a.empty || b.empty {
		return emptySI(width), nil
	}
	stride := gcd(a.stride<<b.bits, b.stride)
	lo := a.lower<<b.bits | b.lower
	hi := a.upper<<b.bits | b.upper
	return mkSI(width, stride, lo, hi), nil
}
