package csvsource

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/c9s/tacore/pkg/types"
)

// WriteBars writes bars in the Binance layout to <dir>/bars/<interval>/<name>-<date>.csv
// and returns the file name.
func WriteBars(dir, name string, interval types.Interval, bars []types.Bar) (fileName string, err error) {
	if len(bars) == 0 {
		return "", fmt.Errorf("no bars to write")
	}

	dir = filepath.Join(dir, "bars", interval.String())
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.Wrapf(err, "mkdir %s", dir)
	}

	from := bars[0].BeginTime()
	fileName = filepath.Join(dir, fmt.Sprintf("%s-%s.csv", name, from.Format("2006-01-02")))

	file, err := os.Create(fileName)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()

	w := csv.NewWriter(file)
	for _, bar := range bars {
		row := []string{
			strconv.FormatInt(bar.BeginTime().UnixMilli(), 10),
			bar.Open.String(),
			bar.High.String(),
			bar.Low.String(),
			bar.Close.String(),
			bar.Volume.String(),
		}
		if err := w.Write(row); err != nil {
			return "", errors.Wrap(err, "writing record to file")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, "flushing csv writer")
	}

	return fileName, nil
}
