package indicator

import (
	"github.com/c9s/tacore/pkg/fixedpoint"
)

// EMAIndicator is an exponential moving average:
//
//	ema[i] = ema[i-1] + k * (source[i] - ema[i-1])
//
// seeded with the source value at the begin index. EMA uses k = 2 / (window + 1),
// MMA (Wilder's smoothing, the RMA of other libraries) uses k = 1 / window.
type EMAIndicator struct {
	*Recursive

	source Indicator
	window int
	k      fixedpoint.Value
}

func newEMA(source Indicator, window int, k fixedpoint.Value) *EMAIndicator {
	s := &EMAIndicator{
		source: source,
		window: window,
		k:      k,
	}
	s.Recursive = NewRecursive(source.Series(), s)
	return s
}

func EMA(source Indicator, window int) *EMAIndicator {
	if window <= 0 {
		window = 1
	}

	f := source.Series().Factory()
	return newEMA(source, window, f.Two().Div(f.NewFromInt(int64(window+1))))
}

func MMA(source Indicator, window int) *EMAIndicator {
	if window <= 0 {
		window = 1
	}

	f := source.Series().Factory()
	return newEMA(source, window, f.One().Div(f.NewFromInt(int64(window))))
}

func (s *EMAIndicator) Calculate(index int) fixedpoint.Value {
	if index <= s.Series().BeginIndex() {
		return s.source.ValueAt(index)
	}

	prev := s.ValueAt(index - 1)
	return prev.Add(s.k.Mul(s.source.ValueAt(index).Sub(prev)))
}

func (s *EMAIndicator) Window() int {
	return s.window
}

func (s *EMAIndicator) UnstableBars() int {
	return s.window
}
