package indicator

import (
	"github.com/sirupsen/logrus"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

type CacheStats struct {
	Hits         uint64 `json:"hits"`
	Misses       uint64 `json:"misses"`
	Computations uint64 `json:"computations"`
}

// Cached memoizes the values of a Calculator over a series.
//
// Slots are dense for unbounded series and live in a ring of MaxBarCount
// slots for bounded ones. Before every access the cache compares the series
// revision with the one it has seen: an in-place update of the open bar drops
// the slot of the updated bar and everything above it, so at most the open bar
// is recomputed. Indices below BeginIndex are evicted and always read as NaN.
type Cached struct {
	series     *types.BarSeries
	calculator Calculator

	store   store
	highest int

	revision  uint64
	syncedEnd int

	stats CacheStats
}

func NewCached(series *types.BarSeries, calculator Calculator) *Cached {
	c := &Cached{
		series:     series,
		calculator: calculator,
		highest:    -1,
		revision:   series.ReplaceCount(),
		syncedEnd:  series.EndIndex(),
	}

	if series.IsBounded() {
		c.store = newRingStore(series.MaxBarCount())
	} else {
		c.store = newDenseStore(series.BarCount())
	}

	return c
}

func (c *Cached) Series() *types.BarSeries {
	return c.series
}

func (c *Cached) Stats() CacheStats {
	return c.stats
}

// HighestIndex returns the highest cached index, -1 if nothing is cached.
func (c *Cached) HighestIndex() int {
	return c.highest
}

// Clear drops every cached value.
func (c *Cached) Clear() {
	c.store.reset()
	c.highest = -1
}

func (c *Cached) sync() {
	end := c.series.EndIndex()

	if revision := c.series.ReplaceCount(); revision != c.revision {
		from := c.syncedEnd
		if index, ok := c.series.ReplacedSince(c.revision); ok {
			from = index
		}
		if from < 0 {
			from = 0
		}

		c.store.truncate(from)
		if c.highest >= from {
			c.highest = from - 1
		}

		if log.Logger.IsLevelEnabled(logrus.TraceLevel) {
			log.Tracef("series %s: bar replaced (revision %d -> %d), invalidated slots from %d",
				c.series.Name(), c.revision, revision, from)
		}

		c.revision = revision
	}

	c.syncedEnd = end
}

func (c *Cached) ValueAt(index int) fixedpoint.Value {
	c.sync()
	return c.valueAt(index)
}

func (c *Cached) valueAt(index int) fixedpoint.Value {
	if index < c.series.BeginIndex() {
		return fixedpoint.NaN
	}

	// bars past the end do not exist yet, nothing to cache
	if index > c.series.EndIndex() {
		c.stats.Computations++
		return c.calculator.Calculate(index)
	}

	if v, ok := c.store.get(index); ok {
		c.stats.Hits++
		return v
	}

	c.stats.Misses++
	c.stats.Computations++

	v := c.calculator.Calculate(index)
	c.store.set(index, v)
	if index > c.highest {
		c.highest = index
	}

	return v
}
