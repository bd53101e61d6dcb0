package vsa

import "fmt"

// elementFactory is a structure that implements methods for creating domain values.
type elementFactory struct{}

// elFact is a singleton instantiation of the element factory.
var elFact = elementFactory{}

// Elements returns a factory for which the methods are used
// to create strided intervals and discrete sets.
func Elements() elementFactory {
	return elFact
}

func checkWidth(bits uint) {
	if bits == 0 || bits > 64 {
		panic(fmt.Sprintf("Unsupported bit-width %d, expected 1..64", bits))
	}
}

// StridedInterval creates the interval lo[stride]hi over the given width.
// Bounds are truncated to the width. Wrapping bounds (lo > hi) are not supported.
func (elementFactory) StridedInterval(bits uint, stride, lo, hi uint64) StridedInterval {
	checkWidth(bits)
	m := mask(bits)
	lo, hi = lo&m, hi&m
	if lo > hi {
		panic(fmt.Sprintf("Wrapping interval %d..%d is not supported", lo, hi))
	}
	return mkSI(bits, stride, lo, hi)
}

// Constant creates the singleton interval {v}.
func (elementFactory) Constant(bits uint, v uint64) StridedInterval {
	checkWidth(bits)
	return constSI(bits, v&mask(bits))
}

// Top creates the interval of every value of the given width.
func (elementFactory) Top(bits uint) StridedInterval {
	checkWidth(bits)
	return topSI(bits)
}

// Empty creates the canonical empty interval of the given width.
func (elementFactory) Empty(bits uint) StridedInterval {
	checkWidth(bits)
	return emptySI(bits)
}

// DSIS creates a discrete set holding the given intervals, without normalizing it.
// Member widths are not checked against bits: Bits reports bits, Collapse
// unions the members as given, and lifted operations fail with
// ErrWidthMismatch once they reach a member of another width.
func (elementFactory) DSIS(bits uint, elems ...StridedInterval) DSIS {
	return newDSIS(dsisIDs.Name("DSIS"), bits, elems...)
}

// NamedDSIS is like DSIS, but uses the given display name.
func (elementFactory) NamedDSIS(name string, bits uint, elems ...StridedInterval) DSIS {
	return newDSIS(name, bits, elems...)
}

// Set creates the value representing the union of the given intervals.
// The result is a discrete set only if it holds between 2 and MaxElements members.
func (elementFactory) Set(bits uint, elems ...StridedInterval) Value {
	s := elFact.DSIS(bits)
	for _, e := range elems {
		s.insert(e)
	}
	return s.Normalize()
}
