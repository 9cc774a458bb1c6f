package fixedpoint

import (
	"math"

	"github.com/shopspring/decimal"
)

// Op is a binary operation that can be applied with Apply.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpMin
	OpMax
	OpCompare
)

var opNames = [...]string{
	OpAdd:     "add",
	OpSub:     "subtract",
	OpMul:     "multiply",
	OpDiv:     "divide",
	OpMod:     "take the remainder of",
	OpMin:     "take the min of",
	OpMax:     "take the max of",
	OpCompare: "compare",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "apply an unknown op to"
}

// Apply is the checked form of the binary operations.
// A NaN operand always yields NaN, operands of different kinds yield a *TypeMismatchError.
func Apply(op Op, a, b Value) (Value, error) {
	if a.kind == KindNaN || b.kind == KindNaN {
		return NaN, nil
	}

	if a.kind != b.kind {
		return NaN, &TypeMismatchError{Op: op.String(), Left: a.kind, Right: b.kind}
	}

	switch a.kind {
	case KindFloat:
		return applyFloat(op, a.f, b.f), nil
	case KindDecimal:
		return applyDecimal(op, a, b), nil
	}

	return NaN, nil
}

func applyFloat(op Op, a, b float64) Value {
	switch op {
	case OpAdd:
		return newFloat(a + b)
	case OpSub:
		return newFloat(a - b)
	case OpMul:
		return newFloat(a * b)
	case OpDiv:
		if b == 0 {
			return NaN
		}
		return newFloat(a / b)
	case OpMod:
		if b == 0 {
			return NaN
		}
		return newFloat(math.Mod(a, b))
	case OpMin:
		return newFloat(math.Min(a, b))
	case OpMax:
		return newFloat(math.Max(a, b))
	}
	return NaN
}

func applyDecimal(op Op, a, b Value) Value {
	prec := a.prec
	if b.prec > prec {
		prec = b.prec
	}

	switch op {
	case OpAdd:
		return newDecimal(a.d.Add(b.d), prec)
	case OpSub:
		return newDecimal(a.d.Sub(b.d), prec)
	case OpMul:
		return newDecimal(a.d.Mul(b.d).Round(prec), prec)
	case OpDiv:
		if b.d.IsZero() {
			return NaN
		}
		return newDecimal(a.d.DivRound(b.d, prec), prec)
	case OpMod:
		if b.d.IsZero() {
			return NaN
		}
		return newDecimal(a.d.Mod(b.d), prec)
	case OpMin:
		if a.d.Cmp(b.d) <= 0 {
			return a
		}
		return b
	case OpMax:
		if a.d.Cmp(b.d) >= 0 {
			return a
		}
		return b
	}
	return NaN
}

func (v Value) must(op Op, o Value) Value {
	r, err := Apply(op, v, o)
	if err != nil {
		panic(err)
	}
	return r
}

// Add returns v + o. It panics with a *TypeMismatchError when the kinds differ,
// use Apply to get the error instead.
func (v Value) Add(o Value) Value {
	return v.must(OpAdd, o)
}

func (v Value) Sub(o Value) Value {
	return v.must(OpSub, o)
}

func (v Value) Mul(o Value) Value {
	return v.must(OpMul, o)
}

// Div returns v / o, or NaN when o is zero.
func (v Value) Div(o Value) Value {
	return v.must(OpDiv, o)
}

// Mod returns the remainder of v / o, or NaN when o is zero.
func (v Value) Mod(o Value) Value {
	return v.must(OpMod, o)
}

func (v Value) Min(o Value) Value {
	return v.must(OpMin, o)
}

func (v Value) Max(o Value) Value {
	return v.must(OpMax, o)
}

func (v Value) Abs() Value {
	switch v.kind {
	case KindFloat:
		return newFloat(math.Abs(v.f))
	case KindDecimal:
		return newDecimal(v.d.Abs(), v.prec)
	}
	return NaN
}

func (v Value) Neg() Value {
	switch v.kind {
	case KindFloat:
		return newFloat(-v.f)
	case KindDecimal:
		return newDecimal(v.d.Neg(), v.prec)
	}
	return NaN
}

func (v Value) Floor() Value {
	switch v.kind {
	case KindFloat:
		return newFloat(math.Floor(v.f))
	case KindDecimal:
		return newDecimal(v.d.Floor(), v.prec)
	}
	return NaN
}

func (v Value) Ceil() Value {
	switch v.kind {
	case KindFloat:
		return newFloat(math.Ceil(v.f))
	case KindDecimal:
		return newDecimal(v.d.Ceil(), v.prec)
	}
	return NaN
}

// Pow raises v to the integer power n. 0^-n is NaN.
func (v Value) Pow(n int) Value {
	switch v.kind {
	case KindFloat:
		if v.f == 0 && n < 0 {
			return NaN
		}
		return newFloat(math.Pow(v.f, float64(n)))

	case KindDecimal:
		exp := n
		if exp < 0 {
			exp = -exp
		}

		result := decimal.NewFromInt(1)
		base := v.d
		for exp > 0 {
			if exp&1 == 1 {
				result = result.Mul(base).Round(v.prec)
			}
			base = base.Mul(base).Round(v.prec)
			exp >>= 1
		}

		if n < 0 {
			if result.IsZero() {
				return NaN
			}
			result = decimal.NewFromInt(1).DivRound(result, v.prec)
		}
		return newDecimal(result, v.prec)
	}
	return NaN
}

// Sqrt returns the square root of v, NaN for negative values.
func (v Value) Sqrt() Value {
	switch v.kind {
	case KindFloat:
		if v.f < 0 {
			return NaN
		}
		return newFloat(math.Sqrt(v.f))

	case KindDecimal:
		if v.d.Sign() < 0 {
			return NaN
		}
		return newDecimal(sqrtDecimal(v.d, v.prec), v.prec)
	}
	return NaN
}
