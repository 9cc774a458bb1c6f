package fixedpoint

import "math"

// cmp compares two values of the same kind. ok is false when either side is NaN.
func (v Value) cmp(o Value) (c int, ok bool) {
	if v.kind == KindNaN || o.kind == KindNaN {
		return 0, false
	}

	if v.kind != o.kind {
		panic(&TypeMismatchError{Op: OpCompare.String(), Left: v.kind, Right: o.kind})
	}

	if v.kind == KindDecimal {
		return v.d.Cmp(o.d), true
	}

	switch {
	case v.f < o.f:
		return -1, true
	case v.f > o.f:
		return 1, true
	}
	return 0, true
}

// Compare orders two values exactly, NaN sorts before every number and equals NaN.
func (v Value) Compare(o Value) int {
	switch {
	case v.kind == KindNaN && o.kind == KindNaN:
		return 0
	case v.kind == KindNaN:
		return -1
	case o.kind == KindNaN:
		return 1
	}

	c, _ := v.cmp(o)
	return c
}

// Eq reports whether v equals o. NaN equals NaN, but NaN is never ordered against
// anything: NaN.Gte(NaN) is false. Floats are compared with Epsilon tolerance.
func (v Value) Eq(o Value) bool {
	if v.kind == KindNaN || o.kind == KindNaN {
		return v.kind == o.kind
	}

	if v.kind == KindFloat && o.kind == KindFloat {
		return math.Abs(v.f-o.f) < Epsilon
	}

	c, _ := v.cmp(o)
	return c == 0
}

func (v Value) Gt(o Value) bool {
	c, ok := v.cmp(o)
	return ok && c > 0
}

func (v Value) Gte(o Value) bool {
	c, ok := v.cmp(o)
	return ok && c >= 0
}

func (v Value) Lt(o Value) bool {
	c, ok := v.cmp(o)
	return ok && c < 0
}

func (v Value) Lte(o Value) bool {
	c, ok := v.cmp(o)
	return ok && c <= 0
}

func (v Value) IsZero() bool {
	switch v.kind {
	case KindFloat:
		return v.f == 0
	case KindDecimal:
		return v.d.IsZero()
	}
	return false
}

func (v Value) IsPositive() bool {
	return v.kind != KindNaN && v.Sign() > 0
}

func (v Value) IsPositiveOrZero() bool {
	return v.kind != KindNaN && v.Sign() >= 0
}

func (v Value) IsNegative() bool {
	return v.kind != KindNaN && v.Sign() < 0
}

func (v Value) IsNegativeOrZero() bool {
	return v.kind != KindNaN && v.Sign() <= 0
}
