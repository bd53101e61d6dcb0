package vsa

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cs-au-dk/vsa/utils"
	"github.com/cs-au-dk/vsa/utils/counter"

	"github.com/benbjohnson/immutable"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// MaxElements is the largest number of members a discrete set may hold
// before it is collapsed into a single interval.
const MaxElements = 256

// dsisIDs names discrete sets created without an explicit name.
var dsisIDs counter.Counter

// DSIS (discrete strided-interval set) is a value represented by several
// strided intervals of one bit-width. It is more precise than a single
// interval when the possible values are few and far apart.
//
// A DSIS is immutable: the member set is a persistent map, and every operation
// copies it before modification. Results are normalized so that callers only
// ever observe a DSIS with 2 to MaxElements members; anything else is demoted
// to a single interval.
type DSIS struct {
	name string
	bits uint
	set  *immutable.Map[StridedInterval, struct{}]

	// Cached bounds over all members. Absent until a non-empty member is added.
	lower, upper       uint64
	hasLower, hasUpper bool
}

func newDSIS(name string, bits uint, elems ...StridedInterval) DSIS {
	mp := utils.NewImmMapBuilder[StridedInterval, struct{}]()
	for _, e := range elems {
		mp.Set(e, struct{}{})
	}
	s := DSIS{name: name, bits: bits, set: mp.Map()}
	for _, e := range elems {
		s.updateBounds(e)
	}
	return s
}

func (DSIS) isValue() {}

// Name returns the display name of the set.
func (s DSIS) Name() string {
	return s.name
}

// Bits returns the bit-width shared by the members.
func (s DSIS) Bits() uint {
	return s.bits
}

// NumberOfElements returns the exact number of member intervals.
func (s DSIS) NumberOfElements() int {
	return s.set.Len()
}

// Cardinality over-approximates the number of concrete values by summing
// the cardinalities of the members, which may overlap.
func (s DSIS) Cardinality() *big.Int {
	n := new(big.Int)
	s.forEach(func(e StridedInterval) bool {
		n.Add(n, e.Cardinality())
		return true
	})
	return n
}

// IsEmpty checks whether the set represents no values.
func (s DSIS) IsEmpty() bool {
	return s.Cardinality().Sign() == 0
}

// LowerBound returns the smallest lower bound among the members, if any.
func (s DSIS) LowerBound() (uint64, bool) {
	return s.lower, s.hasLower
}

// UpperBound returns the largest upper bound among the members, if any.
func (s DSIS) UpperBound() (uint64, bool) {
	return s.upper, s.hasUpper
}

// forEach visits the members in storage order until do returns false.
func (s DSIS) forEach(do func(StridedInterval) bool) {
	for iter := s.set.Iterator(); !iter.Done(); {
		e, _, _ := iter.Next()
		if !do(e) {
			return
		}
	}
}

// ForEach visits every member in storage order.
func (s DSIS) ForEach(do func(StridedInterval)) {
	s.forEach(func(e StridedInterval) bool {
		do(e)
		return true
	})
}

// Elements returns the members in storage order.
func (s DSIS) Elements() []StridedInterval {
	res := make([]StridedInterval, 0, s.set.Len())
	s.ForEach(func(e StridedInterval) {
		res = append(res, e)
	})
	return res
}

// Contains checks whether si is a member interval (structurally).
func (s DSIS) Contains(si StridedInterval) bool {
	_, found := s.set.Get(si)
	return found
}

// Equal checks whether two sets hold the same members at the same width.
func (s DSIS) Equal(o DSIS) bool {
	if s.bits != o.bits || s.set.Len() != o.set.Len() {
		return false
	}
	equal := true
	s.forEach(func(e StridedInterval) bool {
		equal = o.Contains(e)
		return equal
	})
	return equal
}

// copy duplicates the set under a fresh name. The member map is persistent,
// so sharing it is safe.
func (s DSIS) copy() DSIS {
	s.name = dsisIDs.Name("DSIS")
	return s
}

// updateBounds widens the cached bounds to include those of v.
func (s *DSIS) updateBounds(v Value) error {
	var (
		lo, hi     uint64
		loOk, hiOk bool
	)
	switch v := v.(type) {
	case StridedInterval:
		lo, loOk = v.LowerBound()
		hi, hiOk = v.UpperBound()
	case DSIS:
		lo, loOk = v.LowerBound()
		hi, hiOk = v.UpperBound()
	default:
		return errUnsupported("bounds", v)
	}

	if loOk && (!s.hasLower || lo < s.lower) {
		s.lower, s.hasLower = lo, true
	}
	if hiOk && (!s.hasUpper || hi > s.upper) {
		s.upper, s.hasUpper = hi, true
	}
	return nil
}

// add stores a member without checking for semantic duplicates.
// Empty intervals contribute nothing and are dropped.
func (s *DSIS) add(si StridedInterval) {
	if si.empty {
		return
	}
	s.set = s.set.Set(si, struct{}{})
	s.updateBounds(si)
}

// insert stores a member unless some member is definitely equal to it.
func (s *DSIS) insert(si StridedInterval) {
	dup := false
	s.forEach(func(e StridedInterval) bool {
		dup = e.eq(si).IsTrue()
		return !dup
	})
	if !dup {
		s.add(si)
	}
}

// ShouldCollapse checks whether the set is too large to be kept discrete.
func (s DSIS) ShouldCollapse() bool {
	return s.NumberOfElements() > MaxElements
}

// Collapse folds all members into the tightest single interval covering them.
func (s DSIS) Collapse() StridedInterval {
	if s.IsEmpty() {
		return emptySI(s.bits)
	}
	var (
		res   StridedInterval
		first = true
	)
	s.ForEach(func(e StridedInterval) {
		if first {
			res, first = e, false
			return
		}
		res = res.union(e)
	})
	return res
}

// Normalize demotes the set to a single interval when it is oversized or has
// a single member. A set without members becomes the empty interval.
func (s DSIS) Normalize() Value {
	switch n := s.NumberOfElements(); {
	case n > MaxElements:
		metrics.collapses.Add(1)
		logEvent("collapse", logrus.Fields{"name": s.name, "bits": s.bits, "elements": n})
		return s.Collapse()
	case n == 1:
		metrics.demotions.Add(1)
		logEvent("demote", logrus.Fields{"name": s.name, "bits": s.bits})
		return s.Elements()[0]
	case n == 0:
		return emptySI(s.bits)
	}
	return s
}

// Eval enumerates up to n distinct concrete values, visiting the members
// in storage order. The values are not sorted.
func (s DSIS) Eval(n int) []uint64 {
	res := []uint64{}
	seen := make(map[uint64]struct{})
	s.forEach(func(e StridedInterval) bool {
		for _, v := range e.Eval(n) {
			if _, found := seen[v]; !found {
				seen[v] = struct{}{}
				res = append(res, v)
			}
			if len(res) >= n {
				return false
			}
		}
		return true
	})
	return res
}

func (s DSIS) String() string {
	reps := make([]string, 0, s.NumberOfElements())
	s.ForEach(func(e StridedInterval) {
		reps = append(reps, e.String())
	})
	slices.Sort(reps)

	more := ""
	if len(reps) > 5 {
		reps, more = reps[:5], ", ..."
	}
	return fmt.Sprintf("%s<%d>(%d){%s%s}",
		colorize.Name(s.name), s.bits, s.NumberOfElements(), strings.Join(reps, ", "), more)
}
