package vsa

// siOp is a binary interval operation that may reject its operands.
type siOp func(a, b StridedInterval) (StridedInterval, error)

func sameWidth(op Op, f func(a, b StridedInterval) StridedInterval) siOp {
	return func(a, b StridedInterval) (StridedInterval, error) {
		if a.bits != b.bits {
			return StridedInterval{}, errMismatch(op, a.bits, b.bits)
		}
		return f(a, b), nil
	}
}

// intervalOp retrieves the interval implementation of a binary operation.
func intervalOp(op Op) siOp {
	switch op {
	case OpAdd:
		return sameWidth(op, StridedInterval.add)
	case OpSub:
		return sameWidth(op, StridedInterval.sub)
	case OpAnd:
		return sameWidth(op, StridedInterval.and)
	case OpOr:
		return sameWidth(op, StridedInterval.or)
	case OpXor:
		return sameWidth(op, StridedInterval.xor)
	case OpShl:
		return sameWidth(op, StridedInterval.shl)
	case OpShr:
		return sameWidth(op, StridedInterval.shr)
	case OpConcat:
		return StridedInterval.concat
	case OpWiden:
		return sameWidth(op, StridedInterval.widen)
	case OpUnion:
		return sameWidth(op, StridedInterval.union)
	case OpIntersection:
		return sameWidth(op, StridedInterval.intersect)
	}
	panic(errInternal)
}

// apply computes a op o. Commutative operations on a discrete operand are
// delegated to the set with swapped operands. The others are lifted over the
// members of the set, with a kept on the left.
func (a StridedInterval) apply(op Op, o Value) (Value, error) {
	switch o := o.(type) {
	case StridedInterval:
		r, err := intervalOp(op)(a, o)
		if err != nil {
			return nil, err
		}
		return r, nil
	case DSIS:
		if op.Commutative() {
			return Apply(op, o, a)
		}
		return o.liftLeft(op, a)
	}
	return nil, errUnsupported(op, o)
}

func (a StridedInterval) Add(o Value) (Value, error) { return a.apply(OpAdd, o) }
func (a StridedInterval) Sub(o Value) (Value, error) { return a.apply(OpSub, o) }
func (a StridedInterval) And(o Value) (Value, error) { return a.apply(OpAnd, o) }
func (a StridedInterval) Or(o Value) (Value, error)  { return a.apply(OpOr, o) }
func (a StridedInterval) Xor(o Value) (Value, error) { return a.apply(OpXor, o) }
func (a StridedInterval) Shl(o Value) (Value, error) { return a.apply(OpShl, o) }

// Shr computes the logical right shift.
func (a StridedInterval) Shr(o Value) (Value, error) { return a.apply(OpShr, o) }

// Concat places a in the high bits and o in the low bits.
func (a StridedInterval) Concat(o Value) (Value, error) { return a.apply(OpConcat, o) }

func (a StridedInterval) Union(o Value) (Value, error) { return a.apply(OpUnion, o) }

func (a StridedInterval) Intersection(o Value) (Value, error) {
	return a.apply(OpIntersection, o)
}

// Widen computes a ∇ o. A discrete operand is collapsed first.
func (a StridedInterval) Widen(o Value) (Value, error) {
	b, err := asInterval(OpWiden, o)
	if err != nil {
		return nil, err
	}
	r, err := intervalOp(OpWiden)(a, b)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Not computes the bitwise complement.
func (a StridedInterval) Not() Value { return a.not() }

// Neg computes the two's complement negation.
func (a StridedInterval) Neg() Value { return a.neg() }

// Extract computes the bits high down to low, both inclusive.
func (a StridedInterval) Extract(high, low uint) (Value, error) {
	r, err := a.extract(high, low)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (a StridedInterval) SignExtend(n uint) (Value, error) {
	r, err := a.signExtend(n)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (a StridedInterval) ZeroExtend(n uint) (Value, error) {
	r, err := a.zeroExtend(n)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// cmp compares against a single interval, collapsing a discrete operand.
func (a StridedInterval) cmp(c Cmp, o Value) (BoolResult, error) {
	b, err := asInterval(c, o)
	if err != nil {
		return Maybe, err
	}
	if a.bits != b.bits {
		return Maybe, errMismatch(c, a.bits, b.bits)
	}
	return a.compare(c, b), nil
}

func (a StridedInterval) Eq(o Value) (BoolResult, error) { return a.cmp(CmpEq, o) }
func (a StridedInterval) Ne(o Value) (BoolResult, error) { return a.cmp(CmpNe, o) }
func (a StridedInterval) Lt(o Value) (BoolResult, error) { return a.cmp(CmpLt, o) }
func (a StridedInterval) Le(o Value) (BoolResult, error) { return a.cmp(CmpLe, o) }
func (a StridedInterval) Gt(o Value) (BoolResult, error) { return a.cmp(CmpGt, o) }
func (a StridedInterval) Ge(o Value) (BoolResult, error) { return a.cmp(CmpGe, o) }
