package types

import (
	"time"

	"github.com/pkg/errors"

	"github.com/c9s/tacore/pkg/fixedpoint"
)

type BarBuilderMode string

const (
	// TimeBars aggregate the trades of one fixed period, aligned to period boundaries.
	TimeBars BarBuilderMode = "time"

	// VolumeBars aggregate trades until the traded volume reaches a threshold.
	VolumeBars BarBuilderMode = "volume"
)

// BarBuilder aggregates trades into the bars of a series.
//
// In time mode the bar being built is appended as an open bar on its first
// trade and updated in place afterwards. It is closed by the first trade of a
// later period or by Close.
//
// In volume mode a bar only reaches the series once its volume reached the
// threshold. The volume above the threshold is carried into the next bar.
// Trade times must increase strictly across bar boundaries, since every bar
// has to end after the previous one.
type BarBuilder struct {
	series  *BarSeries
	factory fixedpoint.Factory
	mode    BarBuilderMode

	period  time.Duration
	openEnd time.Time

	threshold fixedpoint.Value
	pending   *Bar
	begin     time.Time
}

// NewTimeBarBuilder creates a time bar builder for series. A period <= 0 uses the series interval.
func NewTimeBarBuilder(series *BarSeries, period time.Duration) (*BarBuilder, error) {
	if period <= 0 && series.Interval() != "" {
		period = series.Interval().Duration()
	}

	if period <= 0 {
		return nil, errors.Errorf("series %s: time bars need a positive period", series.Name())
	}

	return &BarBuilder{
		series:  series,
		factory: series.Factory(),
		mode:    TimeBars,
		period:  period,
	}, nil
}

// NewVolumeBarBuilder creates a volume bar builder for series. The series must
// not have an interval, volume bars span a varying period.
func NewVolumeBarBuilder(series *BarSeries, threshold fixedpoint.Value) (*BarBuilder, error) {
	if series.Interval() != "" {
		return nil, errors.Errorf("series %s: volume bars can not be built on a series with interval %s", series.Name(), series.Interval())
	}

	if !series.Factory().Produces(threshold) || threshold.IsNaN() || !threshold.IsPositive() {
		return nil, errors.Errorf("series %s: invalid volume threshold %s", series.Name(), threshold)
	}

	return &BarBuilder{
		series:    series,
		factory:   series.Factory(),
		mode:      VolumeBars,
		threshold: threshold,
	}, nil
}

func (b *BarBuilder) Series() *BarSeries {
	return b.series
}

func (b *BarBuilder) Mode() BarBuilderMode {
	return b.mode
}

// AddTrade applies one trade at time t.
func (b *BarBuilder) AddTrade(t time.Time, volume, price fixedpoint.Value) error {
	for _, v := range []fixedpoint.Value{volume, price} {
		if !b.factory.Produces(v) || v.IsNaN() {
			return &fixedpoint.TypeMismatchError{Op: "trade", Left: b.factory.Kind(), Right: v.Kind()}
		}
	}

	if b.mode == VolumeBars {
		return b.addVolumeTrade(t, volume, price)
	}
	return b.addTimeTrade(t, volume, price)
}

func (b *BarBuilder) addTimeTrade(t time.Time, volume, price fixedpoint.Value) error {
	if !b.openEnd.IsZero() {
		if t.Before(b.openEnd.Add(-b.period)) {
			return errors.Wrapf(ErrOutOfOrder, "series %s: trade at %s is before the open bar begins at %s",
				b.series.Name(), t, b.openEnd.Add(-b.period))
		}

		if t.Before(b.openEnd) {
			return b.series.AddTrade(volume, price)
		}

		previousEnd := b.openEnd
		if err := b.Close(); err != nil {
			return err
		}

		if skipped := int(t.Sub(previousEnd) / b.period); skipped > 0 {
			log.Warnf("series %s: %d bar period(s) without trades after %s", b.series.Name(), skipped, previousEnd)
		}
	}

	bar := NewBar(b.factory, b.period, t.Truncate(b.period).Add(b.period))
	bar.AddTrade(volume, price)
	if err := b.series.Append(bar); err != nil {
		return err
	}

	b.openEnd = bar.EndTime
	return nil
}

func (b *BarBuilder) addVolumeTrade(t time.Time, volume, price fixedpoint.Value) error {
	if b.pending == nil {
		bar := NewBar(b.factory, 0, t)
		b.pending = &bar
		b.begin = t
	}

	bar := b.pending
	if t.Before(bar.EndTime) {
		return errors.Wrapf(ErrOutOfOrder, "series %s: trade at %s is before the last trade at %s",
			b.series.Name(), t, bar.EndTime)
	}

	bar.EndTime = t
	bar.AddTrade(volume, price)

	if bar.Volume.Lt(b.threshold) {
		return nil
	}

	remainder := bar.Volume.Sub(b.threshold)
	if remainder.IsPositive() {
		bar.Volume = b.threshold
		bar.Amount = bar.Amount.Sub(remainder.Mul(price))
	}

	bar.Period = bar.EndTime.Sub(b.begin)
	bar.Closed = true
	if err := b.series.Append(*bar); err != nil {
		return err
	}

	b.pending = nil
	if remainder.IsPositive() {
		next := NewBar(b.factory, 0, t)
		next.Volume = remainder
		b.pending = &next
		b.begin = t
	}

	return nil
}

// Close closes the open time bar, if any. Incomplete volume bars are kept
// until they reach the threshold.
func (b *BarBuilder) Close() error {
	if b.mode != TimeBars || b.openEnd.IsZero() {
		return nil
	}

	openEnd := b.openEnd
	b.openEnd = time.Time{}

	last, ok := b.series.LastBar()
	if !ok || !last.EndTime.Equal(openEnd) {
		return errors.Wrapf(ErrOutOfOrder, "series %s: the open bar ending at %s is no longer the last bar",
			b.series.Name(), openEnd)
	}

	last.Closed = true
	return b.series.ReplaceLast(last)
}
