package types

import (
	"fmt"
	"time"

	"github.com/c9s/tacore/pkg/fixedpoint"
)

// Bar is one OHLCV observation over a fixed period ending at EndTime.
//
// Amount is NaN when the source does not provide it. A bar is built once and
// appended once; only the last bar of a series may still be updated while it is
// not Closed.
type Bar struct {
	EndTime time.Time     `json:"endTime"`
	Period  time.Duration `json:"period"`

	Open   fixedpoint.Value `json:"open"`
	High   fixedpoint.Value `json:"high"`
	Low    fixedpoint.Value `json:"low"`
	Close  fixedpoint.Value `json:"close"`
	Volume fixedpoint.Value `json:"volume"`
	Amount fixedpoint.Value `json:"amount"`

	Trades uint64 `json:"trades"`
	Closed bool   `json:"closed"`
}

// NewBar creates an empty bar for the period ending at endTime, with zero volume and amount.
func NewBar(f fixedpoint.Factory, period time.Duration, endTime time.Time) Bar {
	return Bar{
		EndTime: endTime,
		Period:  period,
		Volume:  f.Zero(),
		Amount:  f.Zero(),
	}
}

func (b Bar) BeginTime() time.Time {
	return b.EndTime.Add(-b.Period)
}

// InPeriod reports whether t falls into [BeginTime, EndTime).
func (b Bar) InPeriod(t time.Time) bool {
	return !t.Before(b.BeginTime()) && t.Before(b.EndTime)
}

// AddPrice updates the close price and widens the high/low range, the first price also sets the open.
func (b *Bar) AddPrice(price fixedpoint.Value) {
	if b.Open.IsNaN() {
		b.Open = price
	}

	b.Close = price

	if b.High.IsNaN() || b.High.Lt(price) {
		b.High = price
	}

	if b.Low.IsNaN() || b.Low.Gt(price) {
		b.Low = price
	}
}

// AddTrade applies a trade to the bar: the price like AddPrice, plus volume, amount and trade count.
func (b *Bar) AddTrade(volume, price fixedpoint.Value) {
	b.AddPrice(price)

	b.Volume = addOrSet(b.Volume, volume)
	b.Amount = addOrSet(b.Amount, volume.Mul(price))
	b.Trades++
}

func addOrSet(a, b fixedpoint.Value) fixedpoint.Value {
	if a.IsNaN() {
		return b
	}
	return a.Add(b)
}

// Kind returns the numeric kind of the bar, taken from the first non-NaN price field.
func (b Bar) Kind() fixedpoint.Kind {
	for _, v := range []fixedpoint.Value{b.Close, b.Open, b.High, b.Low, b.Volume} {
		if !v.IsNaN() {
			return v.Kind()
		}
	}
	return fixedpoint.KindNaN
}

func (b Bar) values() []fixedpoint.Value {
	return []fixedpoint.Value{b.Open, b.High, b.Low, b.Close, b.Volume, b.Amount}
}

func (b Bar) String() string {
	return fmt.Sprintf("Bar{End: %s, O: %s, H: %s, L: %s, C: %s, V: %s}",
		b.EndTime.Format(time.RFC3339), b.Open, b.High, b.Low, b.Close, b.Volume)
}
