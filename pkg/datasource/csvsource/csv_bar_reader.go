package csvsource

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

// BarReader reads bars one by one or all at once.
type BarReader interface {
	Read(interval time.Duration) (types.Bar, error)
	ReadAll(interval time.Duration) ([]types.Bar, error)
}

var _ BarReader = (*CSVBarReader)(nil)

// CSVBarReader is a BarReader that reads from a CSV file.
type CSVBarReader struct {
	csv     *csv.Reader
	decoder CSVBarDecoder
	factory fixedpoint.Factory
}

// MakeCSVBarReader is a factory method type that creates a new CSVBarReader.
type MakeCSVBarReader func(csv *csv.Reader, f fixedpoint.Factory) *CSVBarReader

// NewCSVBarReader creates a new CSVBarReader with the default Binance decoder.
func NewCSVBarReader(csv *csv.Reader, f fixedpoint.Factory) *CSVBarReader {
	return NewCSVBarReaderWithDecoder(csv, f, BinanceCSVBarDecoder)
}

// NewMetaTraderCSVBarReader creates a reader for semicolon separated MetaTrader files.
func NewMetaTraderCSVBarReader(csv *csv.Reader, f fixedpoint.Factory) *CSVBarReader {
	csv.Comma = ';'
	return NewCSVBarReaderWithDecoder(csv, f, MetaTraderCSVBarDecoder)
}

func NewCSVBarReaderWithDecoder(csv *csv.Reader, f fixedpoint.Factory, decoder CSVBarDecoder) *CSVBarReader {
	csv.FieldsPerRecord = -1
	return &CSVBarReader{
		csv:     csv,
		decoder: decoder,
		factory: f,
	}
}

// Read reads the next bar from the underlying CSV data.
func (r *CSVBarReader) Read(interval time.Duration) (types.Bar, error) {
	rec, err := r.csv.Read()
	if err != nil {
		return types.Bar{}, err
	}

	return r.decoder(rec, interval, r.factory)
}

// ReadAll reads all the bars from the underlying CSV data.
func (r *CSVBarReader) ReadAll(interval time.Duration) ([]types.Bar, error) {
	var bars []types.Bar
	for {
		bar, err := r.Read(interval)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}

	return bars, nil
}
