package csvsource

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

// MetaTraderTimeFormat is the time format expected by the MetaTrader decoder when cols [0] and [1] are used.
const MetaTraderTimeFormat = "02/01/2006 15:04"

var (
	// ErrNotEnoughColumns is returned when the CSV price record does not have enough columns.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrInvalidTimeFormat is returned when the CSV record does not start with a valid time.
	ErrInvalidTimeFormat = errors.New("cannot parse time string")

	// ErrInvalidPriceFormat is returned when the OHLC columns are not numbers.
	ErrInvalidPriceFormat = errors.New("OHLC prices must be in valid decimal format")

	// ErrInvalidVolumeFormat is returned when the volume column is not a number.
	ErrInvalidVolumeFormat = errors.New("volume must be in valid decimal format")
)

// CSVBarDecoder is an extension point for CSVBarReader to support custom file formats.
// The decoded bar covers [start, start+interval) and is closed.
type CSVBarDecoder func(record []string, interval time.Duration, f fixedpoint.Factory) (types.Bar, error)

func decodePrices(f fixedpoint.Factory, bar *types.Bar, cols []string) error {
	targets := []*fixedpoint.Value{&bar.Open, &bar.High, &bar.Low, &bar.Close}
	for i, target := range targets {
		v, err := f.NewFromString(cols[i])
		if err != nil || v.IsNaN() {
			return ErrInvalidPriceFormat
		}
		*target = v
	}

	bar.Volume = f.Zero()
	if len(cols) > 4 && strings.TrimSpace(cols[4]) != "" {
		v, err := f.NewFromString(cols[4])
		if err != nil || v.IsNaN() {
			return ErrInvalidVolumeFormat
		}
		bar.Volume = v
	}

	return nil
}

// BinanceCSVBarDecoder decodes a Binance or Bybit record: open time in unix
// milliseconds, open, high, low, close and an optional volume.
func BinanceCSVBarDecoder(record []string, interval time.Duration, f fixedpoint.Factory) (types.Bar, error) {
	var empty types.Bar

	if len(record) < 5 {
		return empty, ErrNotEnoughColumns
	}

	msec, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}

	bar := types.Bar{
		EndTime: time.UnixMilli(msec).UTC().Add(interval),
		Period:  interval,
		Closed:  true,
	}

	if err := decodePrices(f, &bar, record[1:]); err != nil {
		return empty, err
	}

	return bar, nil
}

// MetaTraderCSVBarDecoder decodes a MetaTrader record: date, time, open, high,
// low, close and an optional volume.
func MetaTraderCSVBarDecoder(record []string, interval time.Duration, f fixedpoint.Factory) (types.Bar, error) {
	var empty types.Bar

	if len(record) < 6 {
		return empty, ErrNotEnoughColumns
	}

	t, err := time.Parse(MetaTraderTimeFormat, fmt.Sprintf("%s %s", record[0], record[1]))
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}

	bar := types.Bar{
		EndTime: t.Add(interval),
		Period:  interval,
		Closed:  true,
	}

	if err := decodePrices(f, &bar, record[2:]); err != nil {
		return empty, err
	}

	return bar, nil
}
