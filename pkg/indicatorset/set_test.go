package indicatorset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/tacore/pkg/config"
	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/indicator"
	"github.com/c9s/tacore/pkg/testing/testhelper"
)

func TestNewFromConfig(t *testing.T) {
	f := fixedpoint.DecimalFactory(8)
	series := testhelper.SeriesFromCloses(f, []float64{1, 2, 3, 4, 5, 6})

	set, err := NewFromConfig(series, []config.IndicatorConfig{
		{ID: "sma", Type: "sma", Source: "close", Window: 2},
		{ID: "sma2", Type: "sma", Source: "close", Window: 2},
		{ID: "ema", Type: "ema", Source: "close", Window: 3},
		{ID: "diff", Type: "minus", Left: "sma", Right: "ema"},
		{ID: "absdiff", Type: "abs", Source: "diff"},
		{ID: "lag", Type: "previous", Source: "close", Window: 1},
		{ID: "half", Type: "divide", Left: "close", Right: "two"},
		{ID: "two", Type: "constant", Value: 2},
	})
	require.Error(t, err, "two is referenced before it is defined")
	assert.Nil(t, set)

	set, err = NewFromConfig(series, []config.IndicatorConfig{
		{ID: "sma", Type: "sma", Source: "close", Window: 2},
		{ID: "sma2", Type: "sma", Source: "close", Window: 2},
		{ID: "ema", Type: "ema", Source: "close", Window: 3},
		{ID: "diff", Type: "minus", Left: "sma", Right: "ema"},
		{ID: "absdiff", Type: "abs", Source: "diff"},
		{ID: "lag", Type: "previous", Source: "close", Window: 1},
		{ID: "two", Type: "constant", Value: 2},
		{ID: "half", Type: "divide", Left: "close", Right: "two"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"sma", "sma2", "ema", "diff", "absdiff", "lag", "two", "half"}, set.IDs())

	sma, ok := set.Get("sma")
	require.True(t, ok)
	sma2, _ := set.Get("sma2")
	assert.Same(t, sma, sma2, "identical definitions share one instance")

	// close, sma, ema, diff, absdiff, lag, two, half
	assert.Equal(t, 8, set.Allocated())

	end := series.EndIndex()
	assert.Equal(t, "5.5", sma.ValueAt(end).String())

	diff, _ := set.Get("diff")
	ema, _ := set.Get("ema")
	assert.True(t, diff.ValueAt(end).Eq(sma.ValueAt(end).Sub(ema.ValueAt(end))))

	lag, _ := set.Get("lag")
	assert.Equal(t, "5", lag.ValueAt(end).String())

	half, _ := set.Get("half")
	assert.Equal(t, "3", half.ValueAt(end).String())

	stats := set.Stats()
	assert.Contains(t, stats, "sma")
	assert.Contains(t, stats, "ema")
	assert.NotContains(t, stats, "lag")
	assert.Equal(t, []string{"absdiff", "diff", "ema", "half", "sma", "sma2"}, SortedStatIDs(stats))
	assert.Equal(t, uint64(2), stats["sma"].Hits, "read directly and again through diff")
}

func TestIndicatorSet_Helpers(t *testing.T) {
	series := testhelper.SeriesFromCloses(fixedpoint.FloatFactory(), []float64{1, 2, 3})
	set := New(series)

	closes := set.Price("close")
	assert.Same(t, closes, set.Price("close"))
	assert.Same(t, set.SMA(closes, 3), set.SMA(closes, 3))
	assert.NotSame(t, set.SMA(closes, 3), set.SMA(closes, 2))
	assert.Same(t, set.EMA(closes, 3), set.EMA(closes, 3))
	assert.Same(t, series, set.Series())

	_, err := set.Resolve("nope")
	assert.Error(t, err)

	_, err = set.Define(config.IndicatorConfig{ID: "x", Type: "wma", Source: "close", Window: 3})
	assert.Error(t, err)

	_, err = set.Define(config.IndicatorConfig{ID: "x", Type: "sma", Source: "close", Window: 3})
	require.NoError(t, err)
	_, err = set.Define(config.IndicatorConfig{ID: "x", Type: "ema", Source: "close", Window: 3})
	assert.Error(t, err)

	inc, _ := set.Get("x")
	testhelper.AssertValue(t, 2, indicator.Last(inc), 1e-9)
}
