package testhelper

import (
	"strings"
	"time"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

// StartTime is the end time of the first bar built by the helpers in this package.
var StartTime = time.Date(2024, time.January, 1, 0, 1, 0, 0, time.UTC)

// Bar returns a closed bar whose open, high, low and close are all price.
func Bar(f fixedpoint.Factory, endTime time.Time, period time.Duration, price fixedpoint.Value) types.Bar {
	return types.Bar{
		EndTime: endTime,
		Period:  period,
		Open:    price,
		High:    price,
		Low:     price,
		Close:   price,
		Volume:  f.One(),
		Amount:  price,
		Trades:  1,
		Closed:  true,
	}
}

// BarsFromCloses builds one-minute bars, one per closing price.
func BarsFromCloses(f fixedpoint.Factory, closes ...float64) []types.Bar {
	bars := make([]types.Bar, 0, len(closes))
	for i, c := range closes {
		endTime := StartTime.Add(time.Duration(i) * time.Minute)
		bars = append(bars, Bar(f, endTime, time.Minute, f.NewFromFloat(c)))
	}
	return bars
}

// SeriesFromCloses builds a one-minute series holding one bar per closing price.
func SeriesFromCloses(f fixedpoint.Factory, closes []float64, options ...types.Option) *types.BarSeries {
	options = append([]types.Option{types.WithInterval(types.Interval1m)}, options...)
	series := types.NewBarSeries("test", f, options...)
	for _, bar := range BarsFromCloses(f, closes...) {
		if err := series.Append(bar); err != nil {
			panic(err)
		}
	}
	return series
}

// BarsFromText parses one bar per line in the form "open,high,low,close[,volume]".
func BarsFromText(f fixedpoint.Factory, str string) []types.Bar {
	var bars []types.Bar
	lines := strings.Split(str, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		cols := strings.Split(line, ",")
		if len(cols) < 4 {
			panic("column length should be at least 4")
		}

		endTime := StartTime.Add(time.Duration(len(bars)) * time.Minute)
		bar := types.Bar{
			EndTime: endTime,
			Period:  time.Minute,
			Open:    f.MustNewFromString(strings.TrimSpace(cols[0])),
			High:    f.MustNewFromString(strings.TrimSpace(cols[1])),
			Low:     f.MustNewFromString(strings.TrimSpace(cols[2])),
			Close:   f.MustNewFromString(strings.TrimSpace(cols[3])),
			Volume:  f.Zero(),
			Closed:  true,
		}

		if len(cols) > 4 {
			bar.Volume = f.MustNewFromString(strings.TrimSpace(cols[4]))
		}

		bars = append(bars, bar)
	}

	return bars
}
