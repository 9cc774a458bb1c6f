// Package indicatorset builds named indicators over one bar series and shares
// identical definitions, so two strategies asking for SMA(close, 20) read the
// same cache.
package indicatorset

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/tacore/pkg/config"
	"github.com/c9s/tacore/pkg/indicator"
	"github.com/c9s/tacore/pkg/types"
)

var log = logrus.WithField("component", "indicatorset")

// key identifies an indicator definition independently of its id.
type key struct {
	kind        string
	left, right indicator.Indicator
	window      int
	value       float64
}

type statsReader interface {
	Stats() indicator.CacheStats
}

type IndicatorSet struct {
	series *types.BarSeries

	ids        []string
	byID       map[string]indicator.Indicator
	allocated  map[key]indicator.Indicator
	allocCount int
}

func New(series *types.BarSeries) *IndicatorSet {
	return &IndicatorSet{
		series:    series,
		byID:      make(map[string]indicator.Indicator),
		allocated: make(map[key]indicator.Indicator),
	}
}

// NewFromConfig builds every configured indicator in order.
func NewFromConfig(series *types.BarSeries, configs []config.IndicatorConfig) (*IndicatorSet, error) {
	if err := config.ValidateIndicators(configs); err != nil {
		return nil, err
	}

	s := New(series)
	for _, c := range configs {
		if _, err := s.Define(c); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *IndicatorSet) Series() *types.BarSeries {
	return s.series
}

func (s *IndicatorSet) allocate(k key, create func() indicator.Indicator) indicator.Indicator {
	if inc, ok := s.allocated[k]; ok {
		return inc
	}

	inc := create()
	s.allocated[k] = inc
	s.allocCount++
	return inc
}

// Resolve returns a price indicator or an indicator defined earlier.
func (s *IndicatorSet) Resolve(name string) (indicator.Indicator, error) {
	if inc, ok := s.byID[name]; ok {
		return inc, nil
	}

	if config.IsPriceSource(name) {
		return s.Price(name), nil
	}

	return nil, errors.Errorf("indicator %q is not defined", name)
}

// Define builds the indicator of c and registers it under c.ID.
func (s *IndicatorSet) Define(c config.IndicatorConfig) (indicator.Indicator, error) {
	if _, dup := s.byID[c.ID]; dup {
		return nil, errors.Errorf("indicator %s: duplicated id", c.ID)
	}

	var inc indicator.Indicator
	var err error

	switch c.Type {
	case "close", "open", "high", "low", "volume", "typical":
		inc = s.Price(c.Type)

	case "constant":
		inc = s.Constant(c.Value)

	case "sma", "ema", "mma", "previous":
		var source indicator.Indicator
		if source, err = s.Resolve(c.Source); err != nil {
			return nil, errors.Wrapf(err, "indicator %s", c.ID)
		}
		inc = s.windowed(c.Type, source, c.Window)

	case "abs", "sqrt":
		var source indicator.Indicator
		if source, err = s.Resolve(c.Source); err != nil {
			return nil, errors.Wrapf(err, "indicator %s", c.ID)
		}
		inc = s.unary(c.Type, source)

	case "plus", "minus", "multiply", "divide", "min", "max":
		var left, right indicator.Indicator
		if left, err = s.Resolve(c.Left); err != nil {
			return nil, errors.Wrapf(err, "indicator %s", c.ID)
		}
		if right, err = s.Resolve(c.Right); err != nil {
			return nil, errors.Wrapf(err, "indicator %s", c.ID)
		}
		inc = s.binary(c.Type, left, right)

	default:
		return nil, errors.Errorf("indicator %s: unknown type %q", c.ID, c.Type)
	}

	s.byID[c.ID] = inc
	s.ids = append(s.ids, c.ID)
	log.Debugf("defined indicator %s = %s", c.ID, describe(c))
	return inc, nil
}

func describe(c config.IndicatorConfig) string {
	switch {
	case c.Left != "":
		return fmt.Sprintf("%s(%s, %s)", c.Type, c.Left, c.Right)
	case c.Source != "":
		return fmt.Sprintf("%s(%s, %d)", c.Type, c.Source, c.Window)
	}
	return c.Type
}

func (s *IndicatorSet) Price(name string) indicator.Indicator {
	return s.allocate(key{kind: name}, func() indicator.Indicator {
		switch name {
		case "open":
			return indicator.OpenPrice(s.series)
		case "high":
			return indicator.HighPrice(s.series)
		case "low":
			return indicator.LowPrice(s.series)
		case "volume":
			return indicator.Volume(s.series)
		case "typical":
			return indicator.TypicalPrice(s.series)
		}
		return indicator.ClosePrice(s.series)
	})
}

func (s *IndicatorSet) Constant(v float64) indicator.Indicator {
	return s.allocate(key{kind: "constant", value: v}, func() indicator.Indicator {
		return indicator.Constant(s.series, s.series.Factory().NewFromFloat(v))
	})
}

// SMA returns the shared simple moving average of source.
func (s *IndicatorSet) SMA(source indicator.Indicator, window int) indicator.Indicator {
	return s.windowed("sma", source, window)
}

// EMA returns the shared exponential moving average of source.
func (s *IndicatorSet) EMA(source indicator.Indicator, window int) indicator.Indicator {
	return s.windowed("ema", source, window)
}

func (s *IndicatorSet) windowed(kind string, source indicator.Indicator, window int) indicator.Indicator {
	return s.allocate(key{kind: kind, left: source, window: window}, func() indicator.Indicator {
		switch kind {
		case "ema":
			return indicator.EMA(source, window)
		case "mma":
			return indicator.MMA(source, window)
		case "previous":
			return indicator.Previous(source, window)
		}
		return indicator.SMA(source, window)
	})
}

func (s *IndicatorSet) unary(kind string, source indicator.Indicator) indicator.Indicator {
	return s.allocate(key{kind: kind, left: source}, func() indicator.Indicator {
		if kind == "sqrt" {
			return indicator.Sqrt(source)
		}
		return indicator.Abs(source)
	})
}

func (s *IndicatorSet) binary(kind string, left, right indicator.Indicator) indicator.Indicator {
	return s.allocate(key{kind: kind, left: left, right: right}, func() indicator.Indicator {
		switch kind {
		case "minus":
			return indicator.Minus(left, right)
		case "multiply":
			return indicator.Multiply(left, right)
		case "divide":
			return indicator.Divide(left, right)
		case "min":
			return indicator.Min(left, right)
		case "max":
			return indicator.Max(left, right)
		}
		return indicator.Plus(left, right)
	})
}

// Get returns the indicator defined under id.
func (s *IndicatorSet) Get(id string) (indicator.Indicator, bool) {
	inc, ok := s.byID[id]
	return inc, ok
}

// IDs returns the defined ids in definition order.
func (s *IndicatorSet) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Allocated returns the number of distinct indicator instances.
func (s *IndicatorSet) Allocated() int {
	return s.allocCount
}

// Stats returns the cache statistics of every cached indicator, keyed by id.
func (s *IndicatorSet) Stats() map[string]indicator.CacheStats {
	stats := make(map[string]indicator.CacheStats)
	for id, inc := range s.byID {
		if r, ok := inc.(statsReader); ok {
			stats[id] = r.Stats()
		}
	}
	return stats
}

// SortedStatIDs returns the ids of Stats in a stable order.
func SortedStatIDs(stats map[string]indicator.CacheStats) []string {
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
