package vsa

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/cs-au-dk/vsa/utils"
)

// StridedInterval is the set of unsigned machine words
//
//	{ lower + k·stride | k ∈ ℕ, lower + k·stride ≤ upper }
//
// over a fixed bit-width, or the empty set of that width.
// Intervals never wrap around the modulus: lower ≤ upper always holds.
// Values are kept in normal form: a singleton has stride 0, any other
// interval has a positive stride that divides upper - lower.
type StridedInterval struct {
	bits   uint
	stride uint64
	lower  uint64
	upper  uint64
	empty  bool
}

func mask(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<bits - 1
}

// mkSI builds an interval in normal form. Requires lo ≤ hi ≤ mask(bits).
// The upper bound is lowered to the last member of the progression.
func mkSI(bits uint, stride, lo, hi uint64) StridedInterval {
	if lo == hi {
		return StridedInterval{bits: bits, lower: lo, upper: lo}
	}
	if stride == 0 {
		stride = 1
	}
	hi = lo + (hi-lo)/stride*stride
	if lo == hi {
		stride = 0
	}
	return StridedInterval{bits: bits, stride: stride, lower: lo, upper: hi}
}

func constSI(bits uint, v uint64) StridedInterval {
	return StridedInterval{bits: bits, lower: v, upper: v}
}

func topSI(bits uint) StridedInterval {
	return mkSI(bits, 1, 0, mask(bits))
}

func emptySI(bits uint) StridedInterval {
	return StridedInterval{bits: bits, empty: true}
}

// congruenceCover is the interval of all words of the given width that are
// congruent to r modulo 2^tz.
func congruenceCover(width uint, tz uint, r uint64) StridedInterval {
	m := mask(width)
	if tz >= width {
		return constSI(width, r&m)
	}
	g := uint64(1) << tz
	r &= g - 1
	return mkSI(width, g, r, r+((m-r)>>tz)<<tz)
}

// wrapCover over-approximates a progression with the given stride and first
// member, once reduced modulo 2^width.
func wrapCover(width uint, stride, lo uint64) StridedInterval {
	if stride == 0 {
		return constSI(width, lo&mask(width))
	}
	return congruenceCover(width, uint(bits.TrailingZeros64(stride)), lo)
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func (StridedInterval) isValue() {}

// Bits returns the bit-width of the interval.
func (si StridedInterval) Bits() uint {
	return si.bits
}

// Stride returns the step between consecutive members (0 for singletons).
func (si StridedInterval) Stride() uint64 {
	return si.stride
}

// IsEmpty checks whether the interval has no members.
func (si StridedInterval) IsEmpty() bool {
	return si.empty
}

// IsSingleton checks whether the interval has exactly one member.
func (si StridedInterval) IsSingleton() bool {
	return !si.empty && si.lower == si.upper
}

// IsTop checks whether the interval holds every word of its width.
func (si StridedInterval) IsTop() bool {
	return !si.empty && si.lower == 0 && si.upper == mask(si.bits) && si.stride <= 1
}

// LowerBound returns the smallest member, if any.
func (si StridedInterval) LowerBound() (uint64, bool) {
	return si.lower, !si.empty
}

// UpperBound returns the largest member, if any.
func (si StridedInterval) UpperBound() (uint64, bool) {
	return si.upper, !si.empty
}

// Cardinality returns the number of members.
func (si StridedInterval) Cardinality() *big.Int {
	switch {
	case si.empty:
		return new(big.Int)
	case si.stride == 0:
		return big.NewInt(1)
	}
	n := new(big.Int).SetUint64((si.upper - si.lower) / si.stride)
	return n.Add(n, big.NewInt(1))
}

// Contains checks whether v is a member of the interval.
func (si StridedInterval) Contains(v uint64) bool {
	switch {
	case si.empty || v < si.lower || v > si.upper:
		return false
	case si.stride == 0:
		return v == si.lower
	}
	return (v-si.lower)%si.stride == 0
}

// Eval enumerates up to n members in ascending order.
func (si StridedInterval) Eval(n int) []uint64 {
	res := []uint64{}
	if si.empty {
		return res
	}
	for v := si.lower; len(res) < n; v += si.stride {
		res = append(res, v)
		if v == si.upper {
			break
		}
	}
	return res
}

// Equal checks for structural equality.
func (si StridedInterval) Equal(o StridedInterval) bool {
	return si == o
}

// Hash computes a 32-bit hash of the interval.
func (si StridedInterval) Hash() uint32 {
	if si.empty {
		return utils.HashCombine(uint32(si.bits), 0xe3)
	}
	return utils.HashCombine(
		uint32(si.bits),
		utils.HashUint64(si.stride),
		utils.HashUint64(si.lower),
		utils.HashUint64(si.upper),
	)
}

func (si StridedInterval) String() string {
	if si.empty {
		return colorize.Element("∅") + fmt.Sprintf("<%d>", si.bits)
	}
	if si.stride == 0 {
		return fmt.Sprintf("<%d>", si.bits) + colorize.Const(fmt.Sprintf("%#x", si.lower))
	}
	return fmt.Sprintf("<%d>", si.bits) + colorize.Element(
		fmt.Sprintf("%#x[%#x]%#x", si.lower, si.stride, si.upper))
}
