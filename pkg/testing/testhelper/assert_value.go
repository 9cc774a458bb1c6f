package testhelper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c9s/tacore/pkg/fixedpoint"
)

// Factories lists one factory per numeric kind, for tests that run against both backends.
var Factories = []struct {
	Name    string
	Factory fixedpoint.Factory
}{
	{"float", fixedpoint.FloatFactory()},
	{"decimal", fixedpoint.DecimalFactory(fixedpoint.DefaultPrecision)},
}

// AssertValue asserts v is a defined value within delta of expected.
func AssertValue(t *testing.T, expected float64, v fixedpoint.Value, delta float64, msgAndArgs ...interface{}) bool {
	t.Helper()
	if !assert.False(t, v.IsNaN(), msgAndArgs...) {
		return false
	}
	return assert.InDelta(t, expected, v.Float64(), delta, msgAndArgs...)
}

// AssertValues asserts values[i] against expected[i], NaN expectations must be NaN.
func AssertValues(t *testing.T, expected []float64, values []fixedpoint.Value, delta float64) {
	t.Helper()
	if !assert.Len(t, values, len(expected)) {
		return
	}

	for i, e := range expected {
		if math.IsNaN(e) {
			assert.Truef(t, values[i].IsNaN(), "value #%d should be NaN, got %s", i, values[i])
			continue
		}
		AssertValue(t, e, values[i], delta, "value #%d", i)
	}
}

// AssertNaN asserts v is undefined.
func AssertNaN(t *testing.T, v fixedpoint.Value, msgAndArgs ...interface{}) bool {
	t.Helper()
	return assert.True(t, v.IsNaN(), msgAndArgs...)
}
