package vsa

import (
	"fmt"
	"math/big"
)

// Value is an abstract machine word: either a single StridedInterval or a
// DSIS of several. Both variants offer the same operations, so callers never
// need to know which one they hold.
//
// Binary operations fail with ErrUnsupportedOperand when the operand is not
// one of the two variants (in practice, a nil Value).
type Value interface {
	Bits() uint
	IsEmpty() bool
	Cardinality() *big.Int
	LowerBound() (uint64, bool)
	UpperBound() (uint64, bool)
	// Eval enumerates up to n distinct concrete members.
	Eval(n int) []uint64

	Add(Value) (Value, error)
	Sub(Value) (Value, error)
	And(Value) (Value, error)
	Or(Value) (Value, error)
	Xor(Value) (Value, error)
	Shl(Value) (Value, error)
	Shr(Value) (Value, error)
	Concat(Value) (Value, error)
	Widen(Value) (Value, error)
	Union(Value) (Value, error)
	Intersection(Value) (Value, error)

	Not() Value
	Neg() Value
	Extract(high, low uint) (Value, error)
	SignExtend(n uint) (Value, error)
	ZeroExtend(n uint) (Value, error)

	Eq(Value) (BoolResult, error)
	Ne(Value) (BoolResult, error)
	Lt(Value) (BoolResult, error)
	Le(Value) (BoolResult, error)
	Gt(Value) (BoolResult, error)
	Ge(Value) (BoolResult, error)

	String() string

	isValue()
}

var (
	_ Value = StridedInterval{}
	_ Value = DSIS{}
)

// Op enumerates the binary operations over values.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpConcat
	OpWiden
	OpUnion
	OpIntersection
)

var opNames = [...]string{
	OpAdd:          "+",
	OpSub:          "-",
	OpAnd:          "&",
	OpOr:           "|",
	OpXor:          "^",
	OpShl:          "<<",
	OpShr:          ">>",
	OpConcat:       "..",
	OpWiden:        "widen",
	OpUnion:        "union",
	OpIntersection: "intersection",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Commutative checks whether a op b = b op a.
func (op Op) Commutative() bool {
	switch op {
	case OpAdd, OpAnd, OpOr, OpXor, OpUnion, OpIntersection:
		return true
	}
	return false
}

// Apply computes a op b.
func Apply(op Op, a, b Value) (Value, error) {
	if a == nil {
		return nil, errUnsupported(op, a)
	}
	switch op {
	case OpAdd:
		return a.Add(b)
	case OpSub:
		return a.Sub(b)
	case OpAnd:
		return a.And(b)
	case OpOr:
		return a.Or(b)
	case OpXor:
		return a.Xor(b)
	case OpShl:
		return a.Shl(b)
	case OpShr:
		return a.Shr(b)
	case OpConcat:
		return a.Concat(b)
	case OpWiden:
		return a.Widen(b)
	case OpUnion:
		return a.Union(b)
	case OpIntersection:
		return a.Intersection(b)
	}
	return nil, fmt.Errorf("unknown operation %v", op)
}

// Cmp enumerates the unsigned comparisons over values.
type Cmp uint8

const (
	CmpEq Cmp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

var cmpNames = [...]string{
	CmpEq: "==",
	CmpNe: "!=",
	CmpLt: "<",
	CmpLe: "<=",
	CmpGt: ">",
	CmpGe: ">=",
}

func (c Cmp) String() string {
	if int(c) < len(cmpNames) {
		return cmpNames[c]
	}
	return fmt.Sprintf("Cmp(%d)", uint8(c))
}

// Flip returns the comparison that holds for swapped operands: a c b ⇔ b c.Flip() a.
func (c Cmp) Flip() Cmp {
	switch c {
	case CmpLt:
		return CmpGt
	case CmpGt:
		return CmpLt
	case CmpLe:
		return CmpGe
	case CmpGe:
		return CmpLe
	}
	return c
}

// Negate returns the complementary comparison: ¬(a c b) ⇔ a c.Negate() b.
func (c Cmp) Negate() Cmp {
	switch c {
	case CmpEq:
		return CmpNe
	case CmpNe:
		return CmpEq
	case CmpLt:
		return CmpGe
	case CmpGe:
		return CmpLt
	case CmpLe:
		return CmpGt
	case CmpGt:
		return CmpLe
	}
	panic(errInternal)
}

// Compare computes a c b.
func Compare(c Cmp, a, b Value) (BoolResult, error) {
	if a == nil {
		return Maybe, errUnsupported(c, a)
	}
	switch c {
	case CmpEq:
		return a.Eq(b)
	case CmpNe:
		return a.Ne(b)
	case CmpLt:
		return a.Lt(b)
	case CmpLe:
		return a.Le(b)
	case CmpGt:
		return a.Gt(b)
	case CmpGe:
		return a.Ge(b)
	}
	return Maybe, fmt.Errorf("unknown comparison %v", c)
}

// Identical checks whether two values have the same representation.
// Discrete sets are identical if they hold the same members; names are ignored.
func Identical(a, b Value) bool {
	switch a := a.(type) {
	case StridedInterval:
		b, ok := b.(StridedInterval)
		return ok && a.Equal(b)
	case DSIS:
		b, ok := b.(DSIS)
		return ok && a.Equal(b)
	}
	return false
}

// asInterval coerces an operand to a single interval, collapsing discrete sets.
func asInterval(op interface{}, v Value) (StridedInterval, error) {
	switch v := v.(type) {
	case StridedInterval:
		return v, nil
	case DSIS:
		return v.Collapse(), nil
	}
	return StridedInterval{}, errUnsupported(op, v)
}
