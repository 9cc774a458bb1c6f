package indicator

import (
	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

// Recursive is the cache of an indicator whose value at i depends on its own
// value at i-1.
//
// Before computing index i it fills every missing slot from the highest
// cached index up to i-1 in one loop, so the calculator's call to ValueAt(i-1)
// is always a cache hit and the call depth stays constant. The calculator must
// return its seed for index <= BeginIndex.
type Recursive struct {
	*Cached
}

func NewRecursive(series *types.BarSeries, calculator Calculator) *Recursive {
	return &Recursive{Cached: NewCached(series, calculator)}
}

func (r *Recursive) ValueAt(index int) fixedpoint.Value {
	r.sync()

	begin := r.series.BeginIndex()
	if index > begin {
		from := maxInt(r.highest+1, begin)
		to := index - 1
		if end := r.series.EndIndex(); to > end {
			to = end
		}

		for i := from; i <= to; i++ {
			r.valueAt(i)
		}
	}

	return r.valueAt(index)
}
