package fixedpoint

// Sum adds up the values, an empty slice sums to NaN.
func Sum(values []Value) (s Value) {
	if len(values) == 0 {
		return NaN
	}

	s = values[0]
	for _, value := range values[1:] {
		s = s.Add(value)
	}
	return s
}

// Avg returns the arithmetic mean of the values, NaN for an empty slice.
func Avg(values []Value) (avg Value) {
	s := Sum(values)
	if s.IsNaN() {
		return s
	}

	var n Value
	switch s.kind {
	case KindDecimal:
		n = DecimalFactory(int(s.prec)).NewFromInt(int64(len(values)))
	default:
		n = FloatFactory().NewFromInt(int64(len(values)))
	}
	return s.Div(n)
}
