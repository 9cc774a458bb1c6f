package indicator

import (
	"github.com/c9s/tacore/pkg/fixedpoint"
)

// SMAIndicator is the simple moving average of the last Window values.
//
// During warm-up the window shrinks to the values available since the begin
// index, so SMA(3) at the first index is the first value itself.
type SMAIndicator struct {
	*Cached

	source Indicator
	window int
	buffer []fixedpoint.Value
}

func SMA(source Indicator, window int) *SMAIndicator {
	if window <= 0 {
		window = 1
	}

	s := &SMAIndicator{
		source: source,
		window: window,
		buffer: make([]fixedpoint.Value, 0, window),
	}
	s.Cached = NewCached(source.Series(), s)
	return s
}

func (s *SMAIndicator) Calculate(index int) fixedpoint.Value {
	from := maxInt(s.Series().BeginIndex(), index-s.window+1)

	s.buffer = s.buffer[:0]
	for i := from; i <= index; i++ {
		s.buffer = append(s.buffer, s.source.ValueAt(i))
	}

	return fixedpoint.Avg(s.buffer)
}

func (s *SMAIndicator) Window() int {
	return s.window
}

func (s *SMAIndicator) UnstableBars() int {
	return s.window
}
