package vsa

// BoolResult is the three-valued outcome of an abstract comparison.
type BoolResult uint8

const (
	False BoolResult = iota
	True
	Maybe
)

// Bool lifts a concrete boolean.
func (elementFactory) Bool(b bool) BoolResult {
	if b {
		return True
	}
	return False
}

// IsTrue holds only for a definitely true result.
func (b BoolResult) IsTrue() bool {
	return b == True
}

// IsFalse holds only for a definitely false result.
func (b BoolResult) IsFalse() bool {
	return b == False
}

// IsMaybe holds if both outcomes are possible.
func (b BoolResult) IsMaybe() bool {
	return b == Maybe
}

// Not computes ¬b. The negation of Maybe is Maybe.
func (b BoolResult) Not() BoolResult {
	switch b {
	case True:
		return False
	case False:
		return True
	}
	return Maybe
}

// And computes b1 ∧ b2:
//
//	.---------------------------.
//	|  b1 \ b2 |  T  |  F  |  ?  |
//	|==========|=====|=====|=====|
//	|     T    |  T  |  F  |  ?  |
//	|     F    |  F  |  F  |  F  |
//	|     ?    |  ?  |  F  |  ?  |
//	 ---------------------------
func (b1 BoolResult) And(b2 BoolResult) BoolResult {
	switch {
	case b1 == False || b2 == False:
		return False
	case b1 == True && b2 == True:
		return True
	}
	return Maybe
}

// Or computes b1 ∨ b2.
func (b1 BoolResult) Or(b2 BoolResult) BoolResult {
	return b1.Not().And(b2.Not()).Not()
}

// Join over-approximates both results: it is b1 if b1 = b2 and Maybe otherwise.
func (b1 BoolResult) Join(b2 BoolResult) BoolResult {
	if b1 == b2 {
		return b1
	}
	return Maybe
}

func (b BoolResult) String() string {
	switch b {
	case True:
		return colorize.Bool("True")
	case False:
		return colorize.Bool("False")
	case Maybe:
		return colorize.Bool("Maybe")
	}
	return "!!INVALID BOOL RESULT!!"
}
