package csvsource

import (
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

// ReadBarsFromCSV reads all the .csv files in a given directory, or a single file, with the Binance decoder.
func ReadBarsFromCSV(path string, interval types.Interval, f fixedpoint.Factory) ([]types.Bar, error) {
	return ReadBarsFromCSVWithDecoder(path, interval, f, NewCSVBarReader)
}

// ReadBarsFromCSVWithDecoder permits using a custom CSVBarReader. Files are read in name order.
func ReadBarsFromCSVWithDecoder(path string, interval types.Interval, f fixedpoint.Factory, maker MakeCSVBarReader) ([]types.Bar, error) {
	if err := interval.Validate(); err != nil {
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".csv" {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	var bars []types.Bar
	for _, file := range files {
		fileBars, err := readFile(file, interval, f, maker)
		if err != nil {
			return nil, errors.Wrapf(err, "can not read %s", file)
		}
		bars = append(bars, fileBars...)
	}

	return bars, nil
}

func readFile(path string, interval types.Interval, f fixedpoint.Factory, maker MakeCSVBarReader) ([]types.Bar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Read ops only so safe to ignore err return
	defer file.Close()

	return maker(csv.NewReader(file), f).ReadAll(interval.Duration())
}

// LoadSeries appends bars to series, stopping at the first rejected bar.
func LoadSeries(series *types.BarSeries, bars []types.Bar) error {
	for i, bar := range bars {
		if err := series.Append(bar); err != nil {
			return errors.Wrapf(err, "bar #%d", i)
		}
	}
	return nil
}
