package indicator

import (
	"github.com/c9s/tacore/pkg/fixedpoint"
)

// BinaryIndicator combines two indicators of the same series index by index.
type BinaryIndicator struct {
	*Cached

	op          fixedpoint.Op
	left, right Indicator
}

func newBinary(op fixedpoint.Op, left, right Indicator) *BinaryIndicator {
	s := &BinaryIndicator{op: op, left: left, right: right}
	s.Cached = NewCached(left.Series(), s)
	return s
}

func Plus(left, right Indicator) *BinaryIndicator     { return newBinary(fixedpoint.OpAdd, left, right) }
func Minus(left, right Indicator) *BinaryIndicator    { return newBinary(fixedpoint.OpSub, left, right) }
func Multiply(left, right Indicator) *BinaryIndicator { return newBinary(fixedpoint.OpMul, left, right) }
func Divide(left, right Indicator) *BinaryIndicator   { return newBinary(fixedpoint.OpDiv, left, right) }
func Min(left, right Indicator) *BinaryIndicator      { return newBinary(fixedpoint.OpMin, left, right) }
func Max(left, right Indicator) *BinaryIndicator      { return newBinary(fixedpoint.OpMax, left, right) }

func (s *BinaryIndicator) Calculate(index int) fixedpoint.Value {
	v, err := fixedpoint.Apply(s.op, s.left.ValueAt(index), s.right.ValueAt(index))
	if err != nil {
		panic(err)
	}
	return v
}

func (s *BinaryIndicator) UnstableBars() int {
	return maxInt(s.left.UnstableBars(), s.right.UnstableBars())
}

// UnaryIndicator applies a function to every value of an indicator.
type UnaryIndicator struct {
	*Cached

	source Indicator
	fn     func(v fixedpoint.Value) fixedpoint.Value
}

func newUnary(source Indicator, fn func(v fixedpoint.Value) fixedpoint.Value) *UnaryIndicator {
	s := &UnaryIndicator{source: source, fn: fn}
	s.Cached = NewCached(source.Series(), s)
	return s
}

func Abs(source Indicator) *UnaryIndicator {
	return newUnary(source, fixedpoint.Value.Abs)
}

// Sqrt is NaN where the source is negative.
func Sqrt(source Indicator) *UnaryIndicator {
	return newUnary(source, fixedpoint.Value.Sqrt)
}

func (s *UnaryIndicator) Calculate(index int) fixedpoint.Value {
	return s.fn(s.source.ValueAt(index))
}

func (s *UnaryIndicator) UnstableBars() int {
	return s.source.UnstableBars()
}
