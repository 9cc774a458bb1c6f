// Package indicator derives values from a bar series.
//
// Every indicator answers ValueAt(index) for a stable series index. Most
// indicators are backed by a Cached store, self-referential ones (EMA, MMA)
// by Recursive, which resolves earlier indices in a forward loop instead of
// recursing through the whole chain.
package indicator

import (
	"github.com/sirupsen/logrus"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

var log = logrus.WithField("component", "indicator")

// Indicator is a function from a series index to a value.
type Indicator interface {
	// ValueAt returns the value at index. Indices below the series begin index
	// (evicted bars) return NaN.
	ValueAt(index int) fixedpoint.Value

	// UnstableBars is the number of leading bars before the value is meaningful.
	UnstableBars() int

	Series() *types.BarSeries
}

// Calculator computes the uncached value at index.
type Calculator interface {
	Calculate(index int) fixedpoint.Value
}

// IsStable reports whether index is past the warm-up period of ind.
func IsStable(ind Indicator, index int) bool {
	return index >= ind.Series().BeginIndex()+ind.UnstableBars()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
