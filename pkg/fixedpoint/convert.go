package fixedpoint

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func (v Value) Float64() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindDecimal:
		f, _ := v.d.Float64()
		return f
	}
	return math.NaN()
}

// Int64 truncates v towards zero. NaN converts to 0.
func (v Value) Int64() int64 {
	switch v.kind {
	case KindFloat:
		return int64(v.f)
	case KindDecimal:
		return v.d.IntPart()
	}
	return 0
}

// Decimal converts v to a decimal. ok is false for NaN and for infinite floats.
func (v Value) Decimal() (d decimal.Decimal, ok bool) {
	switch v.kind {
	case KindDecimal:
		return v.d, true
	case KindFloat:
		if math.IsInf(v.f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v.f), true
	}
	return decimal.Zero, false
}

func (v Value) String() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindDecimal:
		return v.d.String()
	}
	return "NaN"
}

// FormatString formats v with prec digits after the decimal point.
func (v Value) FormatString(prec int) string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', prec, 64)
	case KindDecimal:
		return v.d.StringFixed(int32(prec))
	}
	return "NaN"
}

// MarshalJSON encodes floats as numbers, decimals as strings and NaN as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindFloat:
		if math.IsInf(v.f, 0) {
			return nil, errors.Errorf("can not marshal infinite value %v", v.f)
		}
		return json.Marshal(v.f)
	case KindDecimal:
		return json.Marshal(v.d.String())
	}
	return []byte("null"), nil
}

func isNaNLiteral(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "nan")
}

func parseFloat(s string) (Value, error) {
	if isNaNLiteral(s) {
		return NaN, nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return NaN, errors.Wrapf(err, "can not parse %q as float", s)
	}

	return newFloat(f), nil
}

func parseDecimal(s string, prec int32) (Value, error) {
	if isNaNLiteral(s) {
		return NaN, nil
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return NaN, errors.Wrapf(err, "can not parse %q as decimal", s)
	}

	return newDecimal(d, prec), nil
}
