package indicator

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/testing/testhelper"
	"github.com/c9s/tacore/pkg/types"
)

func Test_EMA(t *testing.T) {
	for _, tt := range testhelper.Factories {
		t.Run(tt.Name, func(t *testing.T) {
			series := testhelper.SeriesFromCloses(tt.Factory, []float64{1, 2, 3, 4, 5})

			// k = 2 / (3 + 1) = 0.5
			ema := EMA(ClosePrice(series), 3)
			testhelper.AssertValues(t, []float64{1, 1.5, 2.25, 3.125, 4.0625}, Values(ema), 1e-9)
			assert.Equal(t, 3, ema.UnstableBars())

			// k = 1 / 3
			mma := MMA(ClosePrice(series), 3)
			testhelper.AssertValues(t, []float64{1, 4.0 / 3, 17.0 / 9, 70.0 / 27, 275.0 / 81}, Values(mma), 1e-9)
		})
	}
}

func Test_EMA_FloatAndDecimalAgree(t *testing.T) {
	closes := []float64{
		10.5, 10.75, 10.25, 11, 11.5, 11.25, 12, 11.75, 12.5, 13,
		12.75, 12.25, 12, 11.5, 11.75, 12.25, 12.5, 13.25, 13.5, 13,
	}

	floatEMA := EMA(ClosePrice(testhelper.SeriesFromCloses(fixedpoint.FloatFactory(), closes)), 5)
	decimalEMA := EMA(ClosePrice(testhelper.SeriesFromCloses(fixedpoint.DecimalFactory(16), closes)), 5)

	for i := range closes {
		f := floatEMA.ValueAt(i)
		d := decimalEMA.ValueAt(i)
		assert.Equal(t, fixedpoint.KindFloat, f.Kind())
		assert.Equal(t, fixedpoint.KindDecimal, d.Kind())
		assert.InDelta(t, f.Float64(), d.Float64(), 1e-9, "index %d", i)
	}
}

// depthProbe records the deepest call stack seen while the indicator chain reads it.
type depthProbe struct {
	Indicator

	pcs      []uintptr
	maxDepth int
}

func (p *depthProbe) ValueAt(index int) fixedpoint.Value {
	if d := runtime.Callers(0, p.pcs); d > p.maxDepth {
		p.maxDepth = d
	}
	return p.Indicator.ValueAt(index)
}

func TestRecursive_LongSeriesBoundedDepth(t *testing.T) {
	const n = 100_000

	// a naive recursion over 100k bars needs far more than this
	old := debug.SetMaxStack(512 * 1024)
	defer debug.SetMaxStack(old)

	f := fixedpoint.FloatFactory()
	closes := make([]float64, n+20)
	for i := range closes {
		closes[i] = float64(i%100) + 1
	}

	series := testhelper.SeriesFromCloses(f, closes)
	probe := &depthProbe{Indicator: ClosePrice(series), pcs: make([]uintptr, 1024)}
	ema := EMA(probe, 10)

	v := ema.ValueAt(n)
	assert.False(t, v.IsNaN())
	assert.Less(t, probe.maxDepth, 64, "call depth must not grow with the index")

	stats := ema.Stats()
	assert.Equal(t, uint64(n+1), stats.Computations)
	assert.Equal(t, n, ema.HighestIndex())

	// a later index only resolves the new suffix
	ema.ValueAt(n + 10)
	assert.Equal(t, uint64(n+11), ema.Stats().Computations)

	// and earlier ones are hits
	ema.ValueAt(n / 2)
	assert.Equal(t, uint64(n+11), ema.Stats().Computations)
}

func TestRecursive_MatchesSequentialEvaluation(t *testing.T) {
	f := fixedpoint.DecimalFactory(10)
	closes := []float64{5, 4, 6, 7, 3, 2, 8, 9, 10, 4, 5, 6}

	// jump straight to the end on one series, walk forward on the other
	jump := EMA(ClosePrice(testhelper.SeriesFromCloses(f, closes)), 4)
	walk := EMA(ClosePrice(testhelper.SeriesFromCloses(f, closes)), 4)

	last := len(closes) - 1
	jumped := jump.ValueAt(last)

	var walked fixedpoint.Value
	for i := 0; i <= last; i++ {
		walked = walk.ValueAt(i)
	}

	assert.Equal(t, walked.String(), jumped.String())
}

func TestRecursive_ReplaceOpenBar(t *testing.T) {
	f := fixedpoint.FloatFactory()
	series := testhelper.SeriesFromCloses(f, []float64{1, 2, 3})

	open := testhelper.BarsFromCloses(f, 1, 2, 3, 4)[3]
	open.Closed = false
	require.NoError(t, series.Append(open))

	ema := EMA(ClosePrice(series), 3)
	testhelper.AssertValue(t, 3.125, ema.ValueAt(3), 1e-9)
	before := ema.Stats().Computations

	require.NoError(t, series.AddPrice(f.NewFromInt(6)))
	// 2.25 + 0.5 * (6 - 2.25)
	testhelper.AssertValue(t, 4.125, ema.ValueAt(3), 1e-9)
	assert.Equal(t, before+1, ema.Stats().Computations)
}

func TestRecursive_BoundedSeries(t *testing.T) {
	f := fixedpoint.FloatFactory()
	series := types.NewBarSeries("live", f, types.WithMaxBarCount(4))
	ema := EMA(ClosePrice(series), 3)

	var values []fixedpoint.Value
	for i, bar := range testhelper.BarsFromCloses(f, 1, 2, 3, 4, 5, 6, 7, 8) {
		require.NoError(t, series.Append(bar))
		values = append(values, ema.ValueAt(i))
	}

	// the chain was resolved while every index was resident, so the seed stays at index 0
	testhelper.AssertValue(t, 7.0078125, values[7], 1e-9)
	for i := series.BeginIndex(); i <= series.EndIndex(); i++ {
		assert.True(t, values[i].Eq(ema.ValueAt(i)), "index %d", i)
	}
	assert.True(t, ema.ValueAt(series.BeginIndex()-1).IsNaN())
}
