package fixedpoint

import (
	"math"

	"github.com/shopspring/decimal"
)

// Kind is the concrete numeric representation carried by a Value.
type Kind uint8

const (
	// KindNaN is the undefined value. It is the zero Kind so the zero Value is NaN.
	KindNaN Kind = iota

	// KindFloat is backed by a float64.
	KindFloat

	// KindDecimal is backed by an arbitrary precision decimal.
	KindDecimal
)

func (k Kind) String() string {
	switch k {
	case KindNaN:
		return "NaN"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	}
	return "unknown"
}

// DefaultPrecision is the number of decimal places kept by decimal values
// after rounding operations (Mul, Div, Sqrt and negative powers).
const DefaultPrecision = 16

// Epsilon is the tolerance used by Eq when both values are floats.
const Epsilon = 0.00001

// Value is an immutable number. A Value is one of: a float64, a decimal or NaN.
// Values of different kinds can not be mixed, see TypeMismatchError.
type Value struct {
	kind Kind
	prec int32
	f    float64
	d    decimal.Decimal
}

// NaN is the undefined value, it equals the zero Value.
var NaN = Value{}

func newFloat(f float64) Value {
	if math.IsNaN(f) {
		return NaN
	}
	return Value{kind: KindFloat, f: f}
}

func newDecimal(d decimal.Decimal, prec int32) Value {
	return Value{kind: KindDecimal, prec: prec, d: d}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNaN() bool {
	return v.kind == KindNaN
}

// Precision returns the number of decimal places kept by a decimal value, 0 otherwise.
func (v Value) Precision() int32 {
	return v.prec
}

// Sign returns -1, 0 or 1. NaN returns 0.
func (v Value) Sign() int {
	switch v.kind {
	case KindFloat:
		switch {
		case v.f > 0:
			return 1
		case v.f < 0:
			return -1
		}
		return 0
	case KindDecimal:
		return v.d.Sign()
	}
	return 0
}
