package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/c9s/tacore/pkg/config"
	"github.com/c9s/tacore/pkg/datasource/csvsource"
	"github.com/c9s/tacore/pkg/datasource/klinejson"
	"github.com/c9s/tacore/pkg/datasource/randomwalk"
	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/indicator"
	"github.com/c9s/tacore/pkg/indicatorset"
	"github.com/c9s/tacore/pkg/style"
	"github.com/c9s/tacore/pkg/types"
)

// go run ./cmd/tacore bench --bars 50000 --runs 3
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "evaluate the configured indicators over a series with every numeric type",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		bars, err := cmd.Flags().GetInt("bars")
		if err != nil {
			return err
		}

		if bars > 0 {
			cfg.Bench.Bars = bars
		}

		if runs, err := cmd.Flags().GetInt("runs"); err != nil {
			return err
		} else if runs > 0 {
			cfg.Bench.Runs = runs
		}

		csvPath, err := cmd.Flags().GetString("csv")
		if err != nil {
			return err
		}

		jsonPath, err := cmd.Flags().GetString("json")
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("progress") {
			if cfg.Bench.Progress, err = cmd.Flags().GetBool("progress"); err != nil {
				return err
			}
		}

		var progress *pb.ProgressBar
		if cfg.Bench.Progress {
			progress = pb.Full.Start(cfg.Bench.Runs * len(cfg.Bench.Numerics))
			progress.SetTemplateString(`{{ string . "numeric" | green}} | {{counters . }} {{bar . }} {{percent . }} {{etime . }}`)
		}

		results, err := runBench(cmd.Context(), cfg, benchInput{CSV: csvPath, JSON: jsonPath, Bars: bars}, progress)
		if progress != nil {
			progress.Finish()
		}
		if err != nil {
			return err
		}

		renderBenchResults(cmd.OutOrStdout(), cfg, results)
		return nil
	},
}

func init() {
	benchCmd.Flags().Int("bars", 0, "number of bars, overrides bench.bars and limits the bars read from --csv or --json")
	benchCmd.Flags().Int("runs", 0, "number of runs, overrides bench.runs")
	benchCmd.Flags().String("csv", "", "read the bars from a csv file or directory instead of the random walk")
	benchCmd.Flags().String("json", "", "read the bars from a saved binance kline json payload instead of the random walk")
	benchCmd.Flags().Bool("progress", false, "show a progress bar, overrides bench.progress")
	RootCmd.AddCommand(benchCmd)
}

type benchResult struct {
	Numeric string
	Bars    int

	// Durations of every run in milliseconds.
	Durations    []float64
	Mean, StdDev float64

	Last  map[string]fixedpoint.Value
	Stats map[string]indicator.CacheStats
}

// benchInput selects the bar source, the random walk when both paths are empty.
// Bars limits the bars read from a file, 0 reads all of them.
type benchInput struct {
	CSV  string
	JSON string
	Bars int
}

// runBench runs the numeric types in parallel, each one with its own bars and series.
// progress may be nil.
func runBench(ctx context.Context, cfg *config.Config, input benchInput, progress *pb.ProgressBar) ([]*benchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]*benchResult, len(cfg.Bench.Numerics))

	g, ctx := errgroup.WithContext(ctx)
	for i, numeric := range cfg.Bench.Numerics {
		i, numeric := i, numeric
		g.Go(func() error {
			f, err := fixedpoint.ParseFactory(numeric, cfg.Numeric.Precision)
			if err != nil {
				return err
			}

			bars, err := benchBars(cfg, f, input)
			if err != nil {
				return err
			}

			result, err := benchNumeric(ctx, cfg, f, bars, func() {
				if progress != nil {
					progress.Set("numeric", f.String())
					progress.Increment()
				}
			})
			if err != nil {
				return err
			}

			result.Numeric = f.String()
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func benchBars(cfg *config.Config, f fixedpoint.Factory, input benchInput) (bars []types.Bar, err error) {
	switch {
	case input.CSV != "":
		bars, err = csvsource.ReadBarsFromCSV(input.CSV, cfg.Series.Interval, f)
	case input.JSON != "":
		bars, err = klinejson.ReadBarsFromJSON(input.JSON, cfg.Series.Interval, f)
	default:
		return newGenerator(cfg, f).Bars(cfg.Bench.Bars), nil
	}

	if err != nil {
		return nil, err
	}

	if input.Bars > 0 && len(bars) > input.Bars {
		log.Infof("using the first %d of %d bars", input.Bars, len(bars))
		bars = bars[:input.Bars]
	}
	return bars, nil
}

func newGenerator(cfg *config.Config, f fixedpoint.Factory) *randomwalk.Generator {
	rw := cfg.Series.RandomWalk
	return randomwalk.New(f, randomwalk.Options{
		Seed:       rw.Seed,
		StartPrice: rw.StartPrice,
		Volatility: rw.Volatility,
		TicksOfBar: rw.TicksOfBar,
		Interval:   cfg.Series.Interval,
	})
}

// benchNumeric appends the bars one by one and reads every indicator at the
// new end index after each append, like a strategy reacting to closed bars.
func benchNumeric(ctx context.Context, cfg *config.Config, f fixedpoint.Factory, bars []types.Bar, onRun func()) (*benchResult, error) {
	result := &benchResult{Bars: len(bars)}

	for run := 0; run < cfg.Bench.Runs; run++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		series := types.NewBarSeries(cfg.Series.Name, f,
			types.WithInterval(cfg.Series.Interval),
			types.WithMaxBarCount(cfg.Series.MaxBarCount))

		set, err := indicatorset.NewFromConfig(series, cfg.Indicators)
		if err != nil {
			return nil, err
		}

		ids := set.IDs()
		inds := make([]indicator.Indicator, len(ids))
		for i, id := range ids {
			inds[i], _ = set.Get(id)
		}

		start := time.Now()
		for _, bar := range bars {
			if err := series.Append(bar); err != nil {
				return nil, err
			}

			end := series.EndIndex()
			for _, ind := range inds {
				ind.ValueAt(end)
			}
		}
		elapsed := time.Since(start)

		log.Debugf("bench %s run #%d: %d bars in %s", f, run, len(bars), elapsed)
		result.Durations = append(result.Durations, float64(elapsed)/float64(time.Millisecond))
		onRun()

		if run == cfg.Bench.Runs-1 {
			result.Last = make(map[string]fixedpoint.Value, len(ids))
			for i, id := range ids {
				result.Last[id] = indicator.Last(inds[i])
			}
			result.Stats = set.Stats()
		}
	}

	if len(result.Durations) > 0 {
		result.Mean, result.StdDev = stat.MeanStdDev(result.Durations, nil)
	}

	return result, nil
}

func renderBenchResults(w io.Writer, cfg *config.Config, results []*benchResult) {
	timing := style.NewTable(w, "timing", "numeric", "bars", "runs", "mean (ms)", "stddev (ms)", "bars/s")
	for _, r := range results {
		barsPerSecond := 0.0
		if r.Mean > 0 {
			barsPerSecond = float64(r.Bars) / (r.Mean / 1000)
		}

		timing.AppendRow([]interface{}{
			r.Numeric,
			r.Bars,
			len(r.Durations),
			fmt.Sprintf("%.3f", r.Mean),
			fmt.Sprintf("%.3f", r.StdDev),
			fmt.Sprintf("%.0f", barsPerSecond),
		})
	}
	timing.SetStyle(*style.NewDefaultTableStyle())
	timing.Render()

	header := []interface{}{"indicator"}
	for _, r := range results {
		header = append(header, r.Numeric)
	}

	values := style.NewTable(w, "last values", header...)
	for _, c := range cfg.Indicators {
		row := []interface{}{c.ID}
		for _, r := range results {
			row = append(row, r.Last[c.ID].String())
		}
		values.AppendRow(row)
	}
	values.SetStyle(*style.NewDefaultTableStyle())
	values.Render()
}
