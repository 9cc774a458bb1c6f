package fixedpoint

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Factory creates values of a single kind. Every bar and indicator attached to a
// series uses the factory of that series, so a well formed pipeline never mixes kinds.
type Factory struct {
	kind      Kind
	precision int32
}

// FloatFactory creates float64 backed values.
func FloatFactory() Factory {
	return Factory{kind: KindFloat}
}

// DecimalFactory creates decimal values rounded to precision decimal places.
// A non-positive precision falls back to DefaultPrecision.
func DecimalFactory(precision int) Factory {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return Factory{kind: KindDecimal, precision: int32(precision)}
}

// ParseFactory selects a factory by name: "float" (or "double") and "decimal".
func ParseFactory(name string, precision int) (Factory, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "float", "float64", "double":
		return FloatFactory(), nil
	case "decimal", "":
		return DecimalFactory(precision), nil
	}

	return Factory{}, errors.Errorf("unsupported numeric type %q, valid types: float, decimal", name)
}

// Valid reports whether f was created by one of the factory constructors.
func (f Factory) Valid() bool {
	return f.kind != KindNaN
}

func (f Factory) Kind() Kind {
	return f.kind
}

func (f Factory) Precision() int {
	return int(f.precision)
}

func (f Factory) String() string {
	if f.kind == KindDecimal {
		return "decimal(" + strconv.Itoa(int(f.precision)) + ")"
	}
	return f.kind.String()
}

// Produces reports whether v is NaN or of the kind this factory creates.
func (f Factory) Produces(v Value) bool {
	return v.kind == KindNaN || v.kind == f.kind
}

func (f Factory) NewFromInt(i int64) Value {
	if f.kind == KindDecimal {
		return newDecimal(decimal.NewFromInt(i), f.precision)
	}
	return newFloat(float64(i))
}

// NewFromFloat converts a float64, NaN input gives NaN.
func (f Factory) NewFromFloat(x float64) Value {
	if math.IsNaN(x) {
		return NaN
	}

	if f.kind == KindDecimal {
		if math.IsInf(x, 0) {
			return NaN
		}
		return newDecimal(decimal.NewFromFloat(x), f.precision)
	}
	return newFloat(x)
}

// NewFromString parses a decimal literal such as "12.345" or "NaN".
func (f Factory) NewFromString(s string) (Value, error) {
	if f.kind == KindDecimal {
		return parseDecimal(s, f.precision)
	}
	return parseFloat(s)
}

func (f Factory) MustNewFromString(s string) Value {
	v, err := f.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromValue converts a value of another kind into this factory's kind.
func (f Factory) FromValue(v Value) Value {
	switch {
	case v.kind == KindNaN || v.kind == f.kind:
		return v
	case f.kind == KindDecimal:
		d, ok := v.Decimal()
		if !ok {
			return NaN
		}
		return newDecimal(d, f.precision)
	}
	return newFloat(v.Float64())
}

func (f Factory) Zero() Value {
	return f.NewFromInt(0)
}

func (f Factory) One() Value {
	return f.NewFromInt(1)
}

func (f Factory) Two() Value {
	return f.NewFromInt(2)
}

func (f Factory) Hundred() Value {
	return f.NewFromInt(100)
}

func (f Factory) NaN() Value {
	return NaN
}
