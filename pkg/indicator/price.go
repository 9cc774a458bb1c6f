package indicator

import (
	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

// PriceIndicator reads one field of a bar.
//
// It is not cached, reading a bar is already O(1). An evicted index returns NaN,
// an index past EndIndex panics with an error wrapping types.ErrOutOfRange, use
// Get for a checked read.
type PriceIndicator struct {
	series *types.BarSeries
	name   string
	price  func(bar types.Bar) fixedpoint.Value
}

func NewPriceIndicator(series *types.BarSeries, name string, price func(bar types.Bar) fixedpoint.Value) *PriceIndicator {
	return &PriceIndicator{series: series, name: name, price: price}
}

func (p *PriceIndicator) ValueAt(index int) fixedpoint.Value {
	if index < p.series.BeginIndex() {
		return fixedpoint.NaN
	}

	bar, err := p.series.Bar(index)
	if err != nil {
		panic(err)
	}

	return p.price(bar)
}

func (p *PriceIndicator) UnstableBars() int {
	return 0
}

func (p *PriceIndicator) Series() *types.BarSeries {
	return p.series
}

func (p *PriceIndicator) String() string {
	return p.name
}

func ClosePrice(series *types.BarSeries) *PriceIndicator {
	return NewPriceIndicator(series, "close", func(bar types.Bar) fixedpoint.Value { return bar.Close })
}

func OpenPrice(series *types.BarSeries) *PriceIndicator {
	return NewPriceIndicator(series, "open", func(bar types.Bar) fixedpoint.Value { return bar.Open })
}

func HighPrice(series *types.BarSeries) *PriceIndicator {
	return NewPriceIndicator(series, "high", func(bar types.Bar) fixedpoint.Value { return bar.High })
}

func LowPrice(series *types.BarSeries) *PriceIndicator {
	return NewPriceIndicator(series, "low", func(bar types.Bar) fixedpoint.Value { return bar.Low })
}

func Volume(series *types.BarSeries) *PriceIndicator {
	return NewPriceIndicator(series, "volume", func(bar types.Bar) fixedpoint.Value { return bar.Volume })
}

// TypicalPrice is (high + low + close) / 3.
func TypicalPrice(series *types.BarSeries) *PriceIndicator {
	three := series.Factory().NewFromInt(3)
	return NewPriceIndicator(series, "typical", func(bar types.Bar) fixedpoint.Value {
		return bar.High.Add(bar.Low).Add(bar.Close).Div(three)
	})
}

// ConstantIndicator returns the same value for every index.
type ConstantIndicator struct {
	series *types.BarSeries
	value  fixedpoint.Value
}

func Constant(series *types.BarSeries, value fixedpoint.Value) *ConstantIndicator {
	return &ConstantIndicator{series: series, value: value}
}

func (c *ConstantIndicator) ValueAt(int) fixedpoint.Value {
	return c.value
}

func (c *ConstantIndicator) UnstableBars() int {
	return 0
}

func (c *ConstantIndicator) Series() *types.BarSeries {
	return c.series
}
