package indicator

import (
	"github.com/pkg/errors"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

// Get is the checked form of ind.ValueAt: an index past the series end index
// returns an error wrapping types.ErrOutOfRange instead of panicking.
func Get(ind Indicator, index int) (v fixedpoint.Value, err error) {
	series := ind.Series()
	if index < 0 || index > series.EndIndex() {
		return fixedpoint.NaN, errors.Wrapf(types.ErrOutOfRange, "series %s: index %d not in [%d, %d]",
			series.Name(), index, series.BeginIndex(), series.EndIndex())
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, types.ErrOutOfRange) {
				v, err = fixedpoint.NaN, e
				return
			}
			panic(r)
		}
	}()

	return ind.ValueAt(index), nil
}

// Values returns the values of ind over the resident bars, from BeginIndex to EndIndex.
func Values(ind Indicator) []fixedpoint.Value {
	series := ind.Series()
	begin, end := series.BeginIndex(), series.EndIndex()
	if end < begin {
		return nil
	}

	values := make([]fixedpoint.Value, 0, end-begin+1)
	for i := begin; i <= end; i++ {
		values = append(values, ind.ValueAt(i))
	}
	return values
}

// Last returns the value at the series end index, NaN for an empty series.
func Last(ind Indicator) fixedpoint.Value {
	end := ind.Series().EndIndex()
	if end < ind.Series().BeginIndex() {
		return fixedpoint.NaN
	}
	return ind.ValueAt(end)
}
