// Package klinejson decodes bars from the kline JSON payload of the Binance
// REST API, as saved from GET /api/v3/klines.
package klinejson

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

var ErrInvalidKLine = errors.New("invalid kline entry")

// ParseKLines parses a payload of the form
//
//	[[openTime, "open", "high", "low", "close", "volume", closeTime, "quoteVolume", trades, ...], ...]
//
// into closed bars covering [openTime, openTime+interval).
func ParseKLines(payload []byte, interval types.Interval, f fixedpoint.Factory) ([]types.Bar, error) {
	if err := interval.Validate(); err != nil {
		return nil, err
	}

	parser := fastjson.Parser{}
	val, err := parser.ParseBytes(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse kline payload")
	}

	entries, err := val.Array()
	if err != nil {
		return nil, errors.Wrap(err, "kline payload is not an array")
	}

	bars := make([]types.Bar, 0, len(entries))
	for i, entry := range entries {
		bar, err := parseKLine(entry, interval.Duration(), f)
		if err != nil {
			return nil, errors.Wrapf(err, "kline #%d", i)
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

func parseKLine(val *fastjson.Value, period time.Duration, f fixedpoint.Factory) (types.Bar, error) {
	var empty types.Bar

	fields, err := val.Array()
	if err != nil {
		return empty, errors.Wrap(ErrInvalidKLine, err.Error())
	}

	if len(fields) < 6 {
		return empty, errors.Wrapf(ErrInvalidKLine, "expected at least 6 fields, got %d", len(fields))
	}

	openTime, err := fields[0].Int64()
	if err != nil {
		return empty, errors.Wrap(ErrInvalidKLine, "open time must be an integer")
	}

	bar := types.Bar{
		EndTime: time.UnixMilli(openTime).UTC().Add(period),
		Period:  period,
		Amount:  fixedpoint.NaN,
		Closed:  true,
	}

	targets := []*fixedpoint.Value{&bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume}
	for i, target := range targets {
		v, err := parseNumber(fields[i+1], f)
		if err != nil {
			return empty, errors.Wrapf(ErrInvalidKLine, "field %d: %v", i+1, err)
		}
		*target = v
	}

	if len(fields) > 7 {
		if amount, err := parseNumber(fields[7], f); err == nil {
			bar.Amount = amount
		}
	}

	if len(fields) > 8 {
		if trades, err := fields[8].Uint64(); err == nil {
			bar.Trades = trades
		}
	}

	return bar, nil
}

// parseNumber accepts both quoted decimals and bare JSON numbers.
func parseNumber(val *fastjson.Value, f fixedpoint.Factory) (fixedpoint.Value, error) {
	switch val.Type() {
	case fastjson.TypeString:
		return f.NewFromString(string(val.GetStringBytes()))
	case fastjson.TypeNumber:
		return f.NewFromString(val.String())
	}

	return fixedpoint.NaN, errors.Errorf("unexpected %s", val.Type())
}

// ReadBarsFromJSON reads a saved kline payload from path.
func ReadBarsFromJSON(path string, interval types.Interval, f fixedpoint.Factory) ([]types.Bar, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseKLines(payload, interval, f)
}
