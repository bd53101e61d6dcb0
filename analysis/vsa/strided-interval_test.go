package vsa

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStridedIntervalNormalForm(t *testing.T) {
	tests := []struct {
		si                  StridedInterval
		stride, lower, upper uint64
	}{
		{el.StridedInterval(8, 3, 1, 11), 3, 1, 10},
		{el.StridedInterval(8, 5, 7, 7), 0, 7, 7},
		{el.StridedInterval(8, 0, 1, 5), 1, 1, 5},
		{el.StridedInterval(8, 10, 1, 5), 0, 1, 1},
		{el.StridedInterval(8, 1, 0x100, 0x1ff), 1, 0, 0xff},
		{el.Constant(8, 0x1ff), 0, 0xff, 0xff},
		{el.Top(64), 1, 0, ^uint64(0)},
	}

	for _, test := range tests {
		lo, _ := test.si.LowerBound()
		hi, _ := test.si.UpperBound()
		if test.si.Stride() != test.stride || lo != test.lower || hi != test.upper {
			t.Errorf("%s: expected %#x[%#x]%#x", test.si, test.lower, test.stride, test.upper)
		}
	}
}

func TestStridedIntervalConstructorPanics(t *testing.T) {
	for name, mk := range map[string]func(){
		"zero width":  func() { el.Top(0) },
		"wide":        func() { el.Constant(65, 0) },
		"wrapping":    func() { el.StridedInterval(8, 1, 10, 5) },
		"empty width": func() { el.Empty(100) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected a panic", name)
				}
			}()
			mk()
		}()
	}
}

func TestStridedIntervalQueries(t *testing.T) {
	top := el.Top(64)
	expected := new(big.Int).Lsh(big.NewInt(1), 64)
	if top.Cardinality().Cmp(expected) != 0 {
		t.Errorf("|%s| = %s, expected %s", top, top.Cardinality(), expected)
	}
	if !top.IsTop() || el.StridedInterval(8, 2, 0, 254).IsTop() {
		t.Error("IsTop is wrong")
	}

	si := el.StridedInterval(8, 4, 2, 18)
	if n := si.Cardinality().Int64(); n != 5 {
		t.Errorf("|%s| = %d, expected 5", si, n)
	}
	if !si.Contains(6) || si.Contains(7) || si.Contains(22) {
		t.Errorf("%s has wrong members", si)
	}
	if diff := cmp.Diff([]uint64{2, 6, 10}, si.Eval(3)); diff != "" {
		t.Errorf("Eval mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint64{2, 6, 10, 14, 18}, si.Eval(100)); diff != "" {
		t.Errorf("Eval mismatch (-want +got):\n%s", diff)
	}

	empty := el.Empty(8)
	if _, ok := empty.LowerBound(); ok {
		t.Error("the empty interval has no lower bound")
	}
	if len(empty.Eval(10)) != 0 || empty.Cardinality().Sign() != 0 {
		t.Error("the empty interval has members")
	}
}

func TestStridedIntervalArithmetic(t *testing.T) {
	tests := []struct {
		op       Op
		a, b     StridedInterval
		expected StridedInterval
	}{
		{OpAdd, el.StridedInterval(8, 1, 1, 3), el.Constant(8, 10), el.StridedInterval(8, 1, 11, 13)},
		{OpAdd, el.StridedInterval(8, 1, 250, 252), el.Constant(8, 10), el.StridedInterval(8, 1, 4, 6)},
		{OpAdd, el.StridedInterval(8, 1, 240, 255), el.Constant(8, 10), el.Top(8)},
		{OpAdd, el.StridedInterval(8, 1, 250, 255), el.Constant(8, 10), el.StridedInterval(8, 1, 4, 9)},
		{OpAdd, el.Constant(8, 200), el.StridedInterval(8, 2, 100, 104), el.StridedInterval(8, 2, 44, 48)},
		{OpAdd, el.StridedInterval(8, 4, 0, 252), el.Constant(8, 4), el.StridedInterval(8, 4, 0, 252)},
		{OpSub, el.Constant(8, 0), el.Constant(8, 1), el.Constant(8, 255)},
		{OpSub, el.StridedInterval(8, 2, 10, 20), el.Constant(8, 4), el.StridedInterval(8, 2, 6, 16)},
		{OpAnd, el.Constant(8, 0xf0), el.Constant(8, 0x3c), el.Constant(8, 0x30)},
		{OpOr, el.Constant(8, 0xf0), el.Constant(8, 0x0f), el.Constant(8, 0xff)},
		{OpXor, el.Constant(8, 0xff), el.Constant(8, 0x0f), el.Constant(8, 0xf0)},
		{OpShl, el.Constant(8, 1), el.Constant(8, 7), el.Constant(8, 0x80)},
		{OpShl, el.Constant(8, 1), el.Constant(8, 8), el.Constant(8, 0)},
		{OpShr, el.Constant(8, 0x80), el.Constant(8, 7), el.Constant(8, 1)},
		{OpShr, el.StridedInterval(8, 4, 0, 16), el.Constant(8, 2), el.StridedInterval(8, 1, 0, 4)},
		{OpConcat, el.Constant(8, 0x12), el.Constant(8, 0x34), el.Constant(16, 0x1234)},
	}

	for _, test := range tests {
		res := checked(t)(Apply(test.op, test.a, test.b))
		if !Identical(res, test.expected) {
			t.Errorf("%s %s %s = %s, expected %s", test.a, test.op, test.b, res, test.expected)
		} else {
			t.Logf("%s %s %s = %s", test.a, test.op, test.b, res)
		}
	}
}

func TestStridedIntervalUnary(t *testing.T) {
	tests := []struct {
		name     string
		res      Value
		expected StridedInterval
	}{
		{"~", el.StridedInterval(8, 2, 0, 4).Not(), el.StridedInterval(8, 2, 251, 255)},
		{"neg", el.Constant(8, 1).Neg(), el.Constant(8, 255)},
		{"neg", el.StridedInterval(8, 1, 1, 3).Neg(), el.StridedInterval(8, 1, 253, 255)},
		{"neg", el.Constant(8, 0).Neg(), el.Constant(8, 0)},
	}

	for _, test := range tests {
		if !Identical(test.res, test.expected) {
			t.Errorf("%s: got %s, expected %s", test.name, test.res, test.expected)
		}
	}
}

func TestStridedIntervalBits(t *testing.T) {
	tests := []struct {
		name     string
		res      func() (Value, error)
		expected StridedInterval
	}{
		{"low byte", func() (Value, error) { return el.Constant(16, 0x1234).Extract(7, 0) }, el.Constant(8, 0x34)},
		{"high byte", func() (Value, error) { return el.Constant(16, 0x1234).Extract(15, 8) }, el.Constant(8, 0x12)},
		{"shared high part", func() (Value, error) {
			return el.StridedInterval(16, 2, 0x1200, 0x1210).Extract(7, 0)
		}, el.StridedInterval(8, 2, 0, 0x10)},
		{"sign extend negative", func() (Value, error) { return el.Constant(8, 0x80).SignExtend(8) }, el.Constant(16, 0xff80)},
		{"sign extend positive", func() (Value, error) { return el.Constant(8, 0x7f).SignExtend(8) }, el.Constant(16, 0x7f)},
		{"zero extend", func() (Value, error) { return el.Constant(8, 0x80).ZeroExtend(8) }, el.Constant(16, 0x80)},
		{"sign extend straddling", func() (Value, error) {
			return el.StridedInterval(8, 1, 0x7f, 0x80).SignExtend(8)
		}, el.StridedInterval(16, 0xff01, 0x7f, 0xff80)},
	}

	for _, test := range tests {
		res := checked(t)(test.res())
		if !Identical(res, test.expected) {
			t.Errorf("%s: got %s, expected %s", test.name, res, test.expected)
		}
	}
}

func TestStridedIntervalErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   error
	}{
		{"extract above width", func() error { _, err := el.Top(16).Extract(16, 0); return err }(), ErrInvalidExtract},
		{"extract reversed", func() error { _, err := el.Top(16).Extract(3, 4); return err }(), ErrInvalidExtract},
		{"zero extend", func() error { _, err := el.Top(60).ZeroExtend(8); return err }(), ErrWidthOverflow},
		{"sign extend", func() error { _, err := el.Top(60).SignExtend(8); return err }(), ErrWidthOverflow},
		{"concat", func() error { _, err := el.Top(40).Concat(el.Top(40)); return err }(), ErrWidthOverflow},
		{"add", func() error { _, err := el.Constant(8, 1).Add(el.Constant(16, 1)); return err }(), ErrWidthMismatch},
		{"compare", func() error { _, err := el.Constant(8, 1).Lt(el.Constant(16, 1)); return err }(), ErrWidthMismatch},
		{"nil operand", func() error { _, err := el.Constant(8, 1).Add(nil); return err }(), ErrUnsupportedOperand},
		{"nil comparison", func() error { _, err := el.Constant(8, 1).Eq(nil); return err }(), ErrUnsupportedOperand},
		{"nil widen", func() error { _, err := el.Constant(8, 1).Widen(nil); return err }(), ErrUnsupportedOperand},
		{"nil apply", func() error { _, err := Apply(OpSub, nil, el.Constant(8, 1)); return err }(), ErrUnsupportedOperand},
		{"nil compare", func() error { _, err := Compare(CmpLe, nil, el.Constant(8, 1)); return err }(), ErrUnsupportedOperand},
	}

	for _, test := range tests {
		if !errors.Is(test.err, test.is) {
			t.Errorf("%s: expected %v, got %v", test.name, test.is, test.err)
		} else {
			t.Logf("%s: %v", test.name, test.err)
		}
	}
}

func TestStridedIntervalSetOperations(t *testing.T) {
	tests := []struct {
		op       Op
		a, b     StridedInterval
		expected StridedInterval
	}{
		{OpUnion, el.Constant(8, 0), el.Constant(8, 4), el.StridedInterval(8, 4, 0, 4)},
		{OpUnion, el.StridedInterval(8, 4, 0, 8), el.StridedInterval(8, 6, 2, 14), el.StridedInterval(8, 2, 0, 14)},
		{OpUnion, el.Empty(8), el.Constant(8, 3), el.Constant(8, 3)},
		{OpIntersection, el.StridedInterval(8, 4, 0, 100), el.StridedInterval(8, 6, 2, 100), el.StridedInterval(8, 12, 8, 92)},
		{OpIntersection, el.StridedInterval(8, 2, 0, 100), el.StridedInterval(8, 2, 1, 99), el.Empty(8)},
		{OpIntersection, el.StridedInterval(8, 1, 0, 10), el.StridedInterval(8, 1, 20, 30), el.Empty(8)},
		{OpIntersection, el.StridedInterval(8, 3, 0, 30), el.Constant(8, 9), el.Constant(8, 9)},
		{OpWiden, el.StridedInterval(8, 1, 0, 2), el.StridedInterval(8, 1, 0, 3), el.Top(8)},
		{OpWiden, el.StridedInterval(8, 1, 10, 20), el.StridedInterval(8, 1, 5, 20), el.StridedInterval(8, 1, 0, 20)},
		{OpWiden, el.StridedInterval(8, 4, 8, 16), el.StridedInterval(8, 4, 8, 24), el.StridedInterval(8, 4, 8, 252)},
		{OpWiden, el.StridedInterval(8, 4, 8, 16), el.StridedInterval(8, 4, 12, 16), el.StridedInterval(8, 4, 8, 16)},
		{OpWiden, el.Empty(8), el.Constant(8, 3), el.Constant(8, 3)},
	}

	for _, test := range tests {
		res := checked(t)(Apply(test.op, test.a, test.b))
		if !Identical(res, test.expected) {
			t.Errorf("%s %s %s = %s, expected %s", test.a, test.op, test.b, res, test.expected)
		} else {
			t.Logf("%s %s %s = %s", test.a, test.op, test.b, res)
		}
	}
}

func TestStridedIntervalComparisons(t *testing.T) {
	tests := []struct {
		a        StridedInterval
		c        Cmp
		b        StridedInterval
		expected BoolResult
	}{
		{el.Constant(8, 3), CmpEq, el.Constant(8, 3), True},
		{el.Constant(8, 3), CmpNe, el.Constant(8, 3), False},
		{el.StridedInterval(8, 1, 0, 10), CmpEq, el.Constant(8, 5), Maybe},
		{el.StridedInterval(8, 2, 0, 10), CmpEq, el.Constant(8, 3), False},
		{el.StridedInterval(8, 2, 0, 10), CmpNe, el.Constant(8, 3), True},
		{el.StridedInterval(8, 1, 0, 10), CmpLt, el.Constant(8, 11), True},
		{el.StridedInterval(8, 1, 0, 10), CmpLt, el.Constant(8, 10), Maybe},
		{el.StridedInterval(8, 1, 0, 10), CmpLe, el.Constant(8, 10), True},
		{el.StridedInterval(8, 1, 20, 30), CmpGt, el.Constant(8, 10), True},
		{el.StridedInterval(8, 1, 20, 30), CmpGe, el.Constant(8, 30), Maybe},
		{el.StridedInterval(8, 1, 20, 30), CmpGe, el.Constant(8, 31), False},
		{el.Empty(8), CmpEq, el.Constant(8, 1), False},
		{el.Empty(8), CmpNe, el.Constant(8, 1), True},
	}

	for _, test := range tests {
		res, err := Compare(test.c, test.a, test.b)
		if err != nil {
			t.Fatal(err)
		}
		if res != test.expected {
			t.Errorf("%s %s %s = %s, expected %s", test.a, test.c, test.b, res, test.expected)
		}

		flipped, err := Compare(test.c.Flip(), test.b, test.a)
		if err != nil {
			t.Fatal(err)
		}
		if flipped != res && test.c != CmpNe && test.c != CmpEq {
			t.Errorf("%s %s %s = %s, but flipped %s", test.a, test.c, test.b, res, flipped)
		}
	}
}

type concreteOp struct {
	op Op
	f  func(bits uint, x, y uint64) uint64
}

var concreteOps = []concreteOp{
	{OpAdd, func(w uint, x, y uint64) uint64 { return (x + y) & mask(w) }},
	{OpSub, func(w uint, x, y uint64) uint64 { return (x - y) & mask(w) }},
	{OpAnd, func(w uint, x, y uint64) uint64 { return x & y }},
	{OpOr, func(w uint, x, y uint64) uint64 { return x | y }},
	{OpXor, func(w uint, x, y uint64) uint64 { return x ^ y }},
	{OpShl, func(w uint, x, y uint64) uint64 {
		if y >= uint64(w) {
			return 0
		}
		return (x << y) & mask(w)
	}},
	{OpShr, func(w uint, x, y uint64) uint64 {
		if y >= uint64(w) {
			return 0
		}
		return x >> y
	}},
	{OpConcat, func(w uint, x, y uint64) uint64 { return x<<w | y }},
}

func TestStridedIntervalSoundness(t *testing.T) {
	const w = 3
	all := allIntervals(w)

	for _, a := range all {
		ma := members(a)
		for _, b := range all {
			mb := members(b)

			for _, cop := range concreteOps {
				res := checked(t)(Apply(cop.op, a, b))
				mr := members(res)
				for x := range ma {
					for y := range mb {
						if z := cop.f(w, x, y); !mr[z] {
							t.Fatalf("%s %s %s = %s is missing %d %s %d = %d", a, cop.op, b, res, x, cop.op, y, z)
						}
					}
				}
			}

			union := members(checked(t)(a.Union(b)))
			widened := members(checked(t)(a.Widen(b)))
			for _, m := range []map[uint64]bool{ma, mb} {
				for x := range m {
					if !union[x] || !widened[x] {
						t.Fatalf("%s ∪ %s or %s ∇ %s is missing %d", a, b, a, b, x)
					}
				}
			}

			common := make(map[uint64]bool)
			for x := range ma {
				if mb[x] {
					common[x] = true
				}
			}
			res := checked(t)(a.Intersection(b))
			if diff := cmp.Diff(common, members(res)); diff != "" {
				t.Fatalf("%s ∩ %s = %s is not exact (-want +got):\n%s", a, b, res, diff)
			}

			for c := CmpEq; c <= CmpGe; c++ {
				r, err := Compare(c, a, b)
				if err != nil {
					t.Fatal(err)
				}
				for x := range ma {
					for y := range mb {
						if holds := concreteCmp(c, x, y); (r.IsTrue() && !holds) || (r.IsFalse() && holds) {
							t.Fatalf("%s %s %s = %s, but %d %s %d is %v", a, c, b, r, x, c, y, holds)
						}
					}
				}
			}
		}
	}
}

func concreteCmp(c Cmp, x, y uint64) bool {
	switch c {
	case CmpEq:
		return x == y
	case CmpNe:
		return x != y
	case CmpLt:
		return x < y
	case CmpLe:
		return x <= y
	case CmpGt:
		return x > y
	}
	return x >= y
}

func TestStridedIntervalUnarySoundness(t *testing.T) {
	const w = 4
	for _, a := range allIntervals(w) {
		not, neg := members(a.Not()), members(a.Neg())
		sext := members(checked(t)(a.SignExtend(2)))
		for x := range members(a) {
			if !not[^x&mask(w)] || !neg[-x&mask(w)] {
				t.Fatalf("~%s or -%s is missing the image of %d", a, a, x)
			}
			ext := x
			if x&(1<<(w-1)) != 0 {
				ext |= mask(w+2) &^ mask(w)
			}
			if !sext[ext] {
				t.Fatalf("sign extension of %s is missing %#x", a, ext)
			}
		}

		for high := uint(0); high < w; high++ {
			for low := uint(0); low <= high; low++ {
				res := checked(t)(a.Extract(high, low))
				if res.Bits() != high-low+1 {
					t.Fatalf("%s[%d:%d] has width %d", a, high, low, res.Bits())
				}
				mr := members(res)
				for x := range members(a) {
					if y := (x >> low) & mask(high-low+1); !mr[y] {
						t.Fatalf("%s[%d:%d] = %s is missing %d", a, high, low, res, y)
					}
				}
			}
		}
	}
}

func TestCmpFlipNegate(t *testing.T) {
	for c := CmpEq; c <= CmpGe; c++ {
		if c.Flip().Flip() != c || c.Negate().Negate() != c {
			t.Errorf("%s: Flip or Negate is not an involution", c)
		}
		for x := uint64(0); x < 3; x++ {
			for y := uint64(0); y < 3; y++ {
				holds := concreteCmp(c, x, y)
				if concreteCmp(c.Negate(), x, y) == holds {
					t.Errorf("%d %s %d and %d %s %d agree", x, c, y, x, c.Negate(), y)
				}
				if concreteCmp(c.Flip(), y, x) != holds {
					t.Errorf("%d %s %d and %d %s %d differ", x, c, y, y, c.Flip(), x)
				}
			}
		}
	}
}
