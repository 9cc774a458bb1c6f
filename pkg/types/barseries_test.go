package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/tacore/pkg/fixedpoint"
)

var testStart = time.Date(2024, time.January, 1, 0, 1, 0, 0, time.UTC)

func minuteBar(f fixedpoint.Factory, i int, price float64) Bar {
	p := f.NewFromFloat(price)
	return Bar{
		EndTime: testStart.Add(time.Duration(i) * time.Minute),
		Period:  time.Minute,
		Open:    p,
		High:    p,
		Low:     p,
		Close:   p,
		Volume:  f.One(),
	}
}

func TestBarSeries_Append(t *testing.T) {
	f := fixedpoint.FloatFactory()
	s := NewBarSeries("test", f)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.BeginIndex())
	assert.Equal(t, -1, s.EndIndex())

	_, err := s.Bar(0)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	var appended []int
	s.OnBarAppended(func(index int, bar Bar) {
		appended = append(appended, index)
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(minuteBar(f, i, float64(i+1))))
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, appended)
	assert.Equal(t, 5, s.BarCount())
	assert.Equal(t, 0, s.BeginIndex())
	assert.Equal(t, 4, s.EndIndex())
	assert.Equal(t, 0, s.MaxBarCount())
	assert.False(t, s.IsBounded())

	bar, err := s.Bar(2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, bar.Close.Float64())

	first, ok := s.FirstBar()
	require.True(t, ok)
	assert.Equal(t, 1.0, first.Close.Float64())

	last, ok := s.LastBar()
	require.True(t, ok)
	assert.Equal(t, 5.0, last.Close.Float64())

	_, err = s.Bar(5)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = s.Bar(-1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestBarSeries_MaxBarCount(t *testing.T) {
	const maxBarCount = 5
	const n = 12

	f := fixedpoint.DecimalFactory(8)
	s := NewBarSeries("bounded", f, WithMaxBarCount(maxBarCount))
	assert.True(t, s.IsBounded())

	var evicted []int
	s.OnBarsEvicted(func(beginIndex, count int) {
		assert.Equal(t, 1, count)
		evicted = append(evicted, beginIndex)
	})

	for i := 0; i < n; i++ {
		require.NoError(t, s.Append(minuteBar(f, i, float64(i))))
		assert.LessOrEqual(t, s.EndIndex()-s.BeginIndex()+1, maxBarCount)
	}

	assert.Equal(t, maxBarCount, s.EndIndex()-s.BeginIndex()+1)
	assert.Equal(t, n-maxBarCount, s.BeginIndex())
	assert.Equal(t, n-1, s.EndIndex())
	assert.Equal(t, n-maxBarCount, s.RemovedBarsCount())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, evicted)

	// indices are stable, index i still holds the i-th bar ever appended
	for i := s.BeginIndex(); i <= s.EndIndex(); i++ {
		bar, err := s.Bar(i)
		require.NoError(t, err)
		assert.Equal(t, int64(i), bar.Close.Int64())
	}

	_, err := s.Bar(s.BeginIndex() - 1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Contains(t, err.Error(), "bounded")
}

func TestBarSeries_OutOfOrder(t *testing.T) {
	for _, bounded := range []int{0, 3} {
		f := fixedpoint.FloatFactory()
		s := NewBarSeries("test", f, WithMaxBarCount(bounded))
		require.NoError(t, s.Append(minuteBar(f, 0, 1)))
		require.NoError(t, s.Append(minuteBar(f, 1, 2)))

		// ends before the last bar
		err := s.Append(minuteBar(f, 0, 3))
		assert.True(t, errors.Is(err, ErrOutOfOrder))

		// ends later but overlaps the last period
		overlapping := minuteBar(f, 2, 3)
		overlapping.Period = 2 * time.Minute
		err = s.Append(overlapping)
		assert.True(t, errors.Is(err, ErrOutOfOrder))

		// the series is left untouched
		assert.Equal(t, 1, s.EndIndex())
		assert.Equal(t, uint64(0), s.ReplaceCount())
		last, _ := s.LastBar()
		assert.Equal(t, 2.0, last.Close.Float64())

		// gaps are allowed
		require.NoError(t, s.Append(minuteBar(f, 5, 4)))
		assert.Equal(t, 2, s.EndIndex())
	}
}

func TestBarSeries_TypeMismatch(t *testing.T) {
	s := NewBarSeries("test", fixedpoint.FloatFactory())
	err := s.Append(minuteBar(fixedpoint.DecimalFactory(8), 0, 1))
	assert.True(t, errors.Is(err, fixedpoint.ErrTypeMismatch))
	assert.True(t, s.IsEmpty())
}

func TestBarSeries_ReplaceOpenBar(t *testing.T) {
	f := fixedpoint.FloatFactory()
	s := NewBarSeries("test", f, WithMaxBarCount(3))

	var replaced []int
	s.OnBarReplaced(func(index int, bar Bar) {
		replaced = append(replaced, index)
	})

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Append(minuteBar(f, i, float64(i))))
	}

	// same period: replaces the open last bar
	require.NoError(t, s.Append(minuteBar(f, 3, 30)))
	assert.Equal(t, 3, s.EndIndex())
	assert.Equal(t, uint64(1), s.ReplaceCount())

	require.NoError(t, s.ReplaceLast(minuteBar(f, 3, 31)))
	assert.Equal(t, uint64(2), s.ReplaceCount())

	err := s.ReplaceLast(minuteBar(f, 4, 31))
	assert.True(t, errors.Is(err, ErrOutOfOrder))

	require.NoError(t, s.AddPrice(f.NewFromInt(40)))
	require.NoError(t, s.AddTrade(f.NewFromInt(2), f.NewFromInt(20)))

	last, _ := s.LastBar()
	assert.Equal(t, 20.0, last.Close.Float64())
	assert.Equal(t, 40.0, last.High.Float64())
	assert.Equal(t, 20.0, last.Low.Float64())
	assert.Equal(t, 3.0, last.Volume.Float64())
	assert.Equal(t, uint64(4), s.ReplaceCount())
	assert.Equal(t, []int{3, 3, 3, 3}, replaced)

	// earlier bars are untouched
	bar, err := s.Bar(2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, bar.Close.Float64())

	err = s.AddPrice(fixedpoint.DecimalFactory(8).One())
	assert.True(t, errors.Is(err, fixedpoint.ErrTypeMismatch))
}

func TestBarSeries_ReplacedSince(t *testing.T) {
	f := fixedpoint.FloatFactory()
	s := NewBarSeries("replaced-since", f)

	_, ok := s.ReplacedSince(0)
	assert.False(t, ok)

	require.NoError(t, s.Append(minuteBar(f, 0, 1)))
	require.NoError(t, s.AddPrice(f.NewFromInt(2)))
	require.NoError(t, s.AddPrice(f.NewFromInt(3)))

	index, ok := s.ReplacedSince(0)
	assert.True(t, ok)
	assert.Equal(t, 0, index)

	require.NoError(t, s.Append(minuteBar(f, 1, 4)))
	require.NoError(t, s.AddPrice(f.NewFromInt(5)))

	// revision 3 is the first update of bar 1
	index, ok = s.ReplacedSince(2)
	assert.True(t, ok)
	assert.Equal(t, 1, index)

	// updates on bar 0 and bar 1 since revision 1
	_, ok = s.ReplacedSince(1)
	assert.False(t, ok)

	// nothing new since the latest revision
	_, ok = s.ReplacedSince(s.ReplaceCount())
	assert.False(t, ok)
}

func TestBarSeries_ClosedBar(t *testing.T) {
	f := fixedpoint.FloatFactory()
	s := NewBarSeries("test", f)

	err := s.AddPrice(f.One())
	assert.True(t, errors.Is(err, ErrEmptySeries))

	bar := minuteBar(f, 0, 1)
	bar.Closed = true
	require.NoError(t, s.Append(bar))

	err = s.Append(minuteBar(f, 0, 2))
	assert.True(t, errors.Is(err, ErrBarClosed))
	err = s.AddTrade(f.One(), f.One())
	assert.True(t, errors.Is(err, ErrBarClosed))
	assert.Equal(t, uint64(0), s.ReplaceCount())
}

func TestBarSeries_Interval(t *testing.T) {
	f := fixedpoint.FloatFactory()
	s := NewBarSeries("test", f, WithInterval(Interval5m))
	assert.Equal(t, Interval5m, s.Interval())

	bar := minuteBar(f, 0, 1)
	bar.Period = 0
	require.NoError(t, s.Append(bar))

	last, _ := s.LastBar()
	assert.Equal(t, 5*time.Minute, last.Period)
}

func TestBarSeries_SubSeries(t *testing.T) {
	f := fixedpoint.FloatFactory()
	s := NewBarSeries("test", f, WithMaxBarCount(6))
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Append(minuteBar(f, i, float64(i))))
	}

	// resident: 4..9
	sub, err := s.SubSeries(2, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, sub.BeginIndex())
	assert.Equal(t, 2, sub.EndIndex())
	assert.Equal(t, 6, sub.MaxBarCount())

	var closes []float64
	sub.Each(func(index int, bar Bar) {
		closes = append(closes, bar.Close.Float64())
	})
	assert.Equal(t, []float64{4, 5, 6}, closes)

	sub, err = s.SubSeries(8, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.BarCount())

	_, err = s.SubSeries(5, 5)
	assert.Error(t, err)
	_, err = s.SubSeries(-1, 5)
	assert.Error(t, err)
}

func TestNewBarSeries_InvalidFactory(t *testing.T) {
	s := NewBarSeries("test", fixedpoint.Factory{})
	assert.Equal(t, fixedpoint.KindDecimal, s.Factory().Kind())
	assert.Equal(t, "test", s.Name())
}
