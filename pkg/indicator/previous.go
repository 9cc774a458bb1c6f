package indicator

import (
	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

// PreviousIndicator returns the source value n bars back, NaN before the begin index.
type PreviousIndicator struct {
	source Indicator
	n      int
}

func Previous(source Indicator, n int) *PreviousIndicator {
	if n < 1 {
		n = 1
	}
	return &PreviousIndicator{source: source, n: n}
}

func (s *PreviousIndicator) ValueAt(index int) fixedpoint.Value {
	i := index - s.n
	if i < s.source.Series().BeginIndex() {
		return fixedpoint.NaN
	}
	return s.source.ValueAt(i)
}

func (s *PreviousIndicator) UnstableBars() int {
	return s.source.UnstableBars() + s.n
}

func (s *PreviousIndicator) Series() *types.BarSeries {
	return s.source.Series()
}
