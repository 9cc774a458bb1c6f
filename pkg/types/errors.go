package types

import "github.com/pkg/errors"

// ErrOutOfRange is returned when an index outside [BeginIndex, EndIndex] is requested.
var ErrOutOfRange = errors.New("bar index out of range")

// ErrOutOfOrder is returned when a bar does not strictly follow the last bar of the series.
var ErrOutOfOrder = errors.New("bar out of order")

// ErrBarClosed is returned when replacing a bar that was already closed.
var ErrBarClosed = errors.New("bar is closed")

// ErrEmptySeries is returned when an operation needs an open bar but the series has none.
var ErrEmptySeries = errors.New("bar series is empty")

func outOfRange(s *BarSeries, index int) error {
	return errors.Wrapf(ErrOutOfRange, "series %s: index %d not in [%d, %d]", s.name, index, s.BeginIndex(), s.EndIndex())
}
