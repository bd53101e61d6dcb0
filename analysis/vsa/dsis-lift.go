package vsa

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// fanOut collects the intervals produced by gen into a fresh set and
// normalizes it. The result width is taken from the produced intervals,
// since concatenation and extension change it.
func (s DSIS) fanOut(name string, gen func(yield func(StridedInterval)) error) (Value, error) {
	res := newDSIS(dsisIDs.Name("DSIS"), s.bits)
	produced := 0
	err := gen(func(r StridedInterval) {
		if produced == 0 {
			res.bits = r.bits
		}
		produced++
		res.add(r)
	})
	if err != nil {
		return nil, err
	}

	metrics.recordLift(produced)
	logEvent("lift", logrus.Fields{
		"op":       name,
		"name":     s.name,
		"produced": produced,
		"elements": res.NumberOfElements(),
	})
	return res.Normalize(), nil
}

// lift applies a binary operation to every member against o: against each
// member of o if o is discrete (the cross product), or against o itself.
func (s DSIS) lift(op Op, o Value) (Value, error) {
	var operands []StridedInterval
	switch o := o.(type) {
	case DSIS:
		operands = o.Elements()
	case StridedInterval:
		operands = []StridedInterval{o}
	default:
		return nil, errUnsupported(op, o)
	}

	f := intervalOp(op)
	return s.fanOut(op.String(), func(yield func(StridedInterval)) (err error) {
		s.forEach(func(a StridedInterval) bool {
			for _, b := range operands {
				var r StridedInterval
				if r, err = f(a, b); err != nil {
					return false
				}
				yield(r)
			}
			return true
		})
		return
	})
}

// liftLeft computes a op e for every member e.
func (s DSIS) liftLeft(op Op, a StridedInterval) (Value, error) {
	f := intervalOp(op)
	return s.fanOut(op.String(), func(yield func(StridedInterval)) (err error) {
		s.forEach(func(e StridedInterval) bool {
			var r StridedInterval
			if r, err = f(a, e); err != nil {
				return false
			}
			yield(r)
			return true
		})
		return
	})
}

// mapElements applies a unary operation to every member.
func (s DSIS) mapElements(name string, f func(StridedInterval) (StridedInterval, error)) (Value, error) {
	return s.fanOut(name, func(yield func(StridedInterval)) (err error) {
		s.forEach(func(e StridedInterval) bool {
			var r StridedInterval
			if r, err = f(e); err != nil {
				return false
			}
			yield(r)
			return true
		})
		return
	})
}

// mapTotal is mapElements for operations that cannot fail. fanOut only
// reports errors raised by the mapped operation.
func (s DSIS) mapTotal(name string, f func(StridedInterval) StridedInterval) Value {
	v, err := s.mapElements(name, func(e StridedInterval) (StridedInterval, error) {
		return f(e), nil
	})
	if err != nil {
		panic(fmt.Errorf("%w: %v", errInternal, err))
	}
	return v
}

func (s DSIS) Add(o Value) (Value, error) { return s.lift(OpAdd, o) }
func (s DSIS) Sub(o Value) (Value, error) { return s.lift(OpSub, o) }
func (s DSIS) And(o Value) (Value, error) { return s.lift(OpAnd, o) }
func (s DSIS) Or(o Value) (Value, error)  { return s.lift(OpOr, o) }
func (s DSIS) Xor(o Value) (Value, error) { return s.lift(OpXor, o) }
func (s DSIS) Shl(o Value) (Value, error) { return s.lift(OpShl, o) }

// Shr computes the logical right shift of every member.
func (s DSIS) Shr(o Value) (Value, error) { return s.lift(OpShr, o) }

// Concat places every member in the high bits of the result.
func (s DSIS) Concat(o Value) (Value, error) { return s.lift(OpConcat, o) }

// Not complements every member.
func (s DSIS) Not() Value {
	return s.mapTotal("~", StridedInterval.not)
}

// Neg negates every member.
func (s DSIS) Neg() Value {
	return s.mapTotal("neg", StridedInterval.neg)
}

func (s DSIS) SignExtend(n uint) (Value, error) {
	return s.mapElements("sign-extend", func(e StridedInterval) (StridedInterval, error) {
		return e.signExtend(n)
	})
}

func (s DSIS) ZeroExtend(n uint) (Value, error) {
	return s.mapElements("zero-extend", func(e StridedInterval) (StridedInterval, error) {
		return e.zeroExtend(n)
	})
}

// Extract computes bits high down to low of every member. Extraction never
// adds members, so the result is never collapsed, only demoted when a single
// distinct interval remains.
func (s DSIS) Extract(high, low uint) (Value, error) {
	if _, err := emptySI(s.bits).extract(high, low); err != nil {
		return nil, err
	}
	width := high - low + 1

	res := newDSIS(dsisIDs.Name("DSIS"), width)
	var err error
	s.forEach(func(e StridedInterval) bool {
		var r StridedInterval
		if r, err = e.extract(high, low); err != nil {
			return false
		}
		res.add(r)
		return true
	})
	if err != nil {
		return nil, err
	}

	switch res.NumberOfElements() {
	case 0:
		return emptySI(width), nil
	case 1:
		return res.Elements()[0], nil
	}
	return res, nil
}

// cmp compares the collapsed set against the collapsed operand. Comparing
// member by member would need to reconcile many ternary outcomes, so
// precision is traded for a single comparison.
func (s DSIS) cmp(c Cmp, o Value) (BoolResult, error) {
	return s.Collapse().cmp(c, o)
}

func (s DSIS) Eq(o Value) (BoolResult, error) { return s.cmp(CmpEq, o) }
func (s DSIS) Ne(o Value) (BoolResult, error) { return s.cmp(CmpNe, o) }
func (s DSIS) Lt(o Value) (BoolResult, error) { return s.cmp(CmpLt, o) }
func (s DSIS) Le(o Value) (BoolResult, error) { return s.cmp(CmpLe, o) }
func (s DSIS) Gt(o Value) (BoolResult, error) { return s.cmp(CmpGt, o) }
func (s DSIS) Ge(o Value) (BoolResult, error) { return s.cmp(CmpGe, o) }
