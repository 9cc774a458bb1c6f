package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/c9s/tacore/pkg/fixedpoint"
)

func TestBar_AddTrade(t *testing.T) {
	f := fixedpoint.DecimalFactory(8)
	end := time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC)
	bar := NewBar(f, 5*time.Minute, end)

	assert.Equal(t, end.Add(-5*time.Minute), bar.BeginTime())
	assert.True(t, bar.InPeriod(end.Add(-time.Minute)))
	assert.False(t, bar.InPeriod(end))

	bar.AddTrade(f.NewFromInt(2), f.NewFromInt(10))
	bar.AddTrade(f.NewFromInt(1), f.NewFromInt(12))
	bar.AddTrade(f.NewFromInt(3), f.NewFromInt(9))

	assert.Equal(t, "10", bar.Open.String())
	assert.Equal(t, "12", bar.High.String())
	assert.Equal(t, "9", bar.Low.String())
	assert.Equal(t, "9", bar.Close.String())
	assert.Equal(t, "6", bar.Volume.String())
	assert.Equal(t, "59", bar.Amount.String())
	assert.Equal(t, uint64(3), bar.Trades)
	assert.Equal(t, fixedpoint.KindDecimal, bar.Kind())
}

func TestBar_AddPrice(t *testing.T) {
	f := fixedpoint.FloatFactory()
	var bar Bar
	assert.Equal(t, fixedpoint.KindNaN, bar.Kind())

	bar.AddPrice(f.NewFromFloat(1.5))
	bar.AddPrice(f.NewFromFloat(0.5))
	bar.AddPrice(f.NewFromFloat(1.0))

	assert.Equal(t, 1.5, bar.Open.Float64())
	assert.Equal(t, 1.5, bar.High.Float64())
	assert.Equal(t, 0.5, bar.Low.Float64())
	assert.Equal(t, 1.0, bar.Close.Float64())
	assert.True(t, bar.Volume.IsNaN())
	assert.Equal(t, uint64(0), bar.Trades)
}
