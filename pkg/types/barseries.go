package types

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/tacore/pkg/datatype/ring"
	"github.com/c9s/tacore/pkg/fixedpoint"
)

var log = logrus.WithField("component", "barseries")

type Option func(s *BarSeries)

// WithMaxBarCount bounds the series to the n most recent bars, n <= 0 means unbounded.
func WithMaxBarCount(n int) Option {
	return func(s *BarSeries) {
		s.maxBarCount = n
	}
}

// WithInterval sets the period given to appended bars that do not carry one.
func WithInterval(interval Interval) Option {
	return func(s *BarSeries) {
		s.interval = interval
	}
}

// BarSeries is an ordered sequence of bars.
//
// Indices are stable for the whole life of the series: index 0 is the first bar
// ever appended. When MaxBarCount is set, appending past the limit evicts the
// oldest bar and BeginIndex moves forward in the same call.
//
// A BarSeries has a single writer and performs no locking.
//
//go:generate callbackgen -type BarSeries
type BarSeries struct {
	name     string
	factory  fixedpoint.Factory
	interval Interval

	maxBarCount int

	// exactly one of bars and window is used
	bars   []Bar
	window *ring.Buffer[Bar]

	replaceCount uint64

	// index of the latest in-place update and the revision of the first update at that index
	replacedIndex int
	replacedSince uint64

	barAppendedCallbacks []func(index int, bar Bar)
	barReplacedCallbacks []func(index int, bar Bar)
	barsEvictedCallbacks []func(beginIndex, count int)
}

func NewBarSeries(name string, factory fixedpoint.Factory, options ...Option) *BarSeries {
	if !factory.Valid() {
		factory = fixedpoint.DecimalFactory(fixedpoint.DefaultPrecision)
	}

	s := &BarSeries{
		name:    name,
		factory: factory,
	}

	for _, option := range options {
		option(s)
	}

	if s.maxBarCount > 0 {
		s.window = ring.New[Bar](s.maxBarCount)
	} else {
		s.maxBarCount = 0
	}

	return s
}

func (s *BarSeries) Name() string {
	return s.name
}

func (s *BarSeries) Factory() fixedpoint.Factory {
	return s.factory
}

func (s *BarSeries) Interval() Interval {
	return s.interval
}

// MaxBarCount returns the configured bound, 0 when the series is unbounded.
func (s *BarSeries) MaxBarCount() int {
	return s.maxBarCount
}

func (s *BarSeries) IsBounded() bool {
	return s.window != nil
}

// BeginIndex returns the index of the oldest resident bar.
func (s *BarSeries) BeginIndex() int {
	if s.window != nil {
		return int(s.window.First())
	}
	return 0
}

// EndIndex returns the index of the last bar, -1 when nothing was appended yet.
func (s *BarSeries) EndIndex() int {
	if s.window != nil {
		return int(s.window.Next()) - 1
	}
	return len(s.bars) - 1
}

// BarCount returns the number of resident bars.
func (s *BarSeries) BarCount() int {
	if s.window != nil {
		return s.window.Len()
	}
	return len(s.bars)
}

func (s *BarSeries) IsEmpty() bool {
	return s.BarCount() == 0
}

// RemovedBarsCount returns how many bars were evicted so far.
func (s *BarSeries) RemovedBarsCount() int {
	return s.BeginIndex()
}

// ReplaceCount is incremented on every in-place update of the last bar.
func (s *BarSeries) ReplaceCount() uint64 {
	return s.replaceCount
}

// Has reports whether index is resident.
// ReplacedSince returns the lowest index updated in place after revision.
// ok is false when the updates after revision are not all on one bar, the
// caller then has to assume every bar from its own last seen end index.
func (s *BarSeries) ReplacedSince(revision uint64) (index int, ok bool) {
	if revision >= s.replaceCount || s.replacedSince == 0 || s.replacedSince > revision+1 {
		return 0, false
	}
	return s.replacedIndex, true
}

func (s *BarSeries) Has(index int) bool {
	return index >= s.BeginIndex() && index <= s.EndIndex()
}

func (s *BarSeries) get(index int) (Bar, bool) {
	if s.window != nil {
		return s.window.Get(int64(index))
	}

	if index < 0 || index >= len(s.bars) {
		return Bar{}, false
	}
	return s.bars[index], true
}

// Bar returns the bar at index, or ErrOutOfRange if it is not in [BeginIndex, EndIndex].
func (s *BarSeries) Bar(index int) (Bar, error) {
	bar, ok := s.get(index)
	if !ok {
		return Bar{}, outOfRange(s, index)
	}
	return bar, nil
}

func (s *BarSeries) FirstBar() (Bar, bool) {
	return s.get(s.BeginIndex())
}

func (s *BarSeries) LastBar() (Bar, bool) {
	return s.get(s.EndIndex())
}

func (s *BarSeries) checkKind(bar Bar) error {
	for _, v := range bar.values() {
		if !s.factory.Produces(v) {
			return &fixedpoint.TypeMismatchError{Op: "append", Left: s.factory.Kind(), Right: v.Kind()}
		}
	}
	return nil
}

// Append adds bar at EndIndex+1.
//
// A bar with the same EndTime as the last bar replaces it, unless the last bar is
// closed. Any other bar must end after the last bar and must not begin before it
// ends, otherwise ErrOutOfOrder is returned and the series is left untouched.
func (s *BarSeries) Append(bar Bar) error {
	if bar.Period == 0 && s.interval != "" {
		bar.Period = s.interval.Duration()
	}

	if err := s.checkKind(bar); err != nil {
		return err
	}

	if last, ok := s.LastBar(); ok {
		if bar.EndTime.Equal(last.EndTime) {
			return s.replaceLast(last, bar)
		}

		if !bar.EndTime.After(last.EndTime) || bar.BeginTime().Before(last.EndTime) {
			return errors.Wrapf(ErrOutOfOrder, "series %s: bar %s (begin %s) does not follow the last bar ending at %s",
				s.name, bar.EndTime, bar.BeginTime(), last.EndTime)
		}
	}

	s.add(bar)
	return nil
}

func (s *BarSeries) add(bar Bar) {
	var evicted bool
	var begin int

	if s.window != nil {
		begin = s.BeginIndex()
		evicted = s.window.Len() == s.window.Capacity()
		s.window.AddLast(bar)
	} else {
		s.bars = append(s.bars, bar)
	}

	index := s.EndIndex()

	if evicted {
		if log.Logger.IsLevelEnabled(logrus.TraceLevel) {
			log.Tracef("series %s: evicted bar %d, window is now [%d, %d]", s.name, begin, s.BeginIndex(), index)
		}
		s.EmitBarsEvicted(begin, 1)
	}

	s.EmitBarAppended(index, bar)
}

// ReplaceLast replaces the still-open last bar in place, without changing any index.
func (s *BarSeries) ReplaceLast(bar Bar) error {
	if bar.Period == 0 && s.interval != "" {
		bar.Period = s.interval.Duration()
	}

	if err := s.checkKind(bar); err != nil {
		return err
	}

	last, ok := s.LastBar()
	if !ok {
		return errors.Wrapf(ErrEmptySeries, "series %s: nothing to replace", s.name)
	}

	if !bar.EndTime.Equal(last.EndTime) {
		return errors.Wrapf(ErrOutOfOrder, "series %s: replacement ends at %s, the last bar ends at %s",
			s.name, bar.EndTime, last.EndTime)
	}

	return s.replaceLast(last, bar)
}

func (s *BarSeries) replaceLast(last, bar Bar) error {
	if last.Closed {
		return errors.Wrapf(ErrBarClosed, "series %s: can not replace bar %d", s.name, s.EndIndex())
	}

	s.setLast(bar)
	return nil
}

func (s *BarSeries) setLast(bar Bar) {
	index := s.EndIndex()
	if s.window != nil {
		s.window.Set(int64(index), bar)
	} else {
		s.bars[index] = bar
	}

	s.replaceCount++
	if s.replacedSince == 0 || index != s.replacedIndex {
		s.replacedIndex = index
		s.replacedSince = s.replaceCount
	}

	if log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		log.Tracef("series %s: replaced bar %d, revision %d", s.name, index, s.replaceCount)
	}

	s.EmitBarReplaced(index, bar)
}

func (s *BarSeries) updateLast(update func(b *Bar)) error {
	last, ok := s.LastBar()
	if !ok {
		return errors.Wrapf(ErrEmptySeries, "series %s: no open bar", s.name)
	}

	if last.Closed {
		return errors.Wrapf(ErrBarClosed, "series %s: can not update bar %d", s.name, s.EndIndex())
	}

	update(&last)
	s.setLast(last)
	return nil
}

// AddPrice applies a price tick to the open last bar.
func (s *BarSeries) AddPrice(price fixedpoint.Value) error {
	if !s.factory.Produces(price) {
		return &fixedpoint.TypeMismatchError{Op: "price", Left: s.factory.Kind(), Right: price.Kind()}
	}

	return s.updateLast(func(b *Bar) {
		b.AddPrice(price)
	})
}

// AddTrade applies a trade to the open last bar.
func (s *BarSeries) AddTrade(volume, price fixedpoint.Value) error {
	for _, v := range []fixedpoint.Value{volume, price} {
		if !s.factory.Produces(v) {
			return &fixedpoint.TypeMismatchError{Op: "trade", Left: s.factory.Kind(), Right: v.Kind()}
		}
	}

	return s.updateLast(func(b *Bar) {
		b.AddTrade(volume, price)
	})
}

// SubSeries copies the resident bars of [start, end) into a new series indexed from 0.
// The range is clamped to the resident bars.
func (s *BarSeries) SubSeries(start, end int) (*BarSeries, error) {
	if start < 0 {
		return nil, errors.Errorf("sub series start index %d must not be negative", start)
	}

	if start >= end {
		return nil, errors.Errorf("sub series end index %d must be greater than start index %d", end, start)
	}

	sub := NewBarSeries(s.name, s.factory, WithInterval(s.interval), WithMaxBarCount(s.maxBarCount))

	if begin := s.BeginIndex(); start < begin {
		start = begin
	}

	if last := s.EndIndex() + 1; end > last {
		end = last
	}

	for i := start; i < end; i++ {
		bar, _ := s.get(i)
		sub.add(bar)
	}

	return sub, nil
}

// Each calls fn for every resident bar in index order.
func (s *BarSeries) Each(fn func(index int, bar Bar)) {
	for i := s.BeginIndex(); i <= s.EndIndex(); i++ {
		bar, _ := s.get(i)
		fn(i, bar)
	}
}
