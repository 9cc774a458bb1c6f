package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/c9s/tacore/pkg/cmd/cmdutil"
	"github.com/c9s/tacore/pkg/config"
	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/indicator"
	"github.com/c9s/tacore/pkg/indicatorset"
	"github.com/c9s/tacore/pkg/metrics"
	"github.com/c9s/tacore/pkg/style"
	"github.com/c9s/tacore/pkg/types"
)

// DefaultLiveMaxBarCount bounds the live series when the config leaves it unbounded.
const DefaultLiveMaxBarCount = 500

// go run ./cmd/tacore live --duration 1m --metrics-port 9300
var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "feed a bounded series from a simulated market and keep the indicators up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if duration, err := cmd.Flags().GetDuration("duration"); err != nil {
			return err
		} else if duration > 0 {
			cfg.Live.Duration = duration
		}

		if r, err := cmd.Flags().GetFloat64("rate"); err != nil {
			return err
		} else if r > 0 {
			cfg.Live.BarsPerSecond = r
		}

		if port, err := cmd.Flags().GetInt("metrics-port"); err != nil {
			return err
		} else if port > 0 {
			cfg.Live.MetricsPort = port
		}

		maxBars, err := cmd.Flags().GetInt("bars")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			cmdutil.WaitForSignal(ctx, syscall.SIGINT, syscall.SIGTERM)
			cancel()
		}()

		if cfg.Live.MetricsPort > 0 {
			server, err := serveMetrics(cfg.Live.MetricsPort)
			if err != nil {
				return err
			}

			defer func() {
				shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancelShutdown()
				if err := server.Shutdown(shutdownCtx); err != nil {
					log.WithError(err).Error("metrics server shutdown error")
				}
			}()
		}

		summary, err := runLive(ctx, cfg, maxBars)
		if err != nil {
			return err
		}

		renderLiveSummary(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	liveCmd.Flags().Duration("duration", 0, "stop after the duration, overrides live.duration")
	liveCmd.Flags().Float64("rate", 0, "bars per second, overrides live.barsPerSecond")
	liveCmd.Flags().Int("metrics-port", 0, "serve the prometheus metrics on this port")
	liveCmd.Flags().Int("bars", 0, "stop after feeding this many bars, 0 runs until the duration or a signal")
	RootCmd.AddCommand(liveCmd)
}

func serveMetrics(port int) (*http.Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := net.JoinHostPort("", strconv.Itoa(port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server error")
		}
	}()

	log.Infof("serving metrics at http://%s/metrics", listener.Addr())
	return server, nil
}

type liveSummary struct {
	RunID      string
	Series     *types.BarSeries
	Fed        int
	Evicted    int
	Replaced   int
	Last       map[string]fixedpoint.Value
	Stable     map[string]bool
	Stats      map[string]indicator.CacheStats
	IDs        []string
	Evaluation int
}

// runLive feeds bars at the configured rate until ctx is done, the live
// duration elapses or maxBars bars were fed. Every tick updates the open bar
// in place and every configured indicator is read at the end index afterwards.
func runLive(ctx context.Context, cfg *config.Config, maxBars int) (*liveSummary, error) {
	f, err := cfg.Numeric.Factory()
	if err != nil {
		return nil, err
	}

	if cfg.Live.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Live.Duration)
		defer cancel()
	}

	maxBarCount := cfg.Series.MaxBarCount
	if maxBarCount <= 0 {
		maxBarCount = DefaultLiveMaxBarCount
	}

	series := types.NewBarSeries(cfg.Series.Name, f,
		types.WithInterval(cfg.Series.Interval),
		types.WithMaxBarCount(maxBarCount))
	metrics.BindSeries(series)

	set, err := indicatorset.NewFromConfig(series, cfg.Indicators)
	if err != nil {
		return nil, err
	}

	summary := &liveSummary{RunID: uuid.New().String(), Series: series, IDs: set.IDs()}
	logger := log.WithFields(log.Fields{"run": summary.RunID, "series": series.Name()})
	inds := make([]indicator.Indicator, len(summary.IDs))
	for i, id := range summary.IDs {
		inds[i], _ = set.Get(id)
	}

	evaluate := func(index int) {
		for _, ind := range inds {
			ind.ValueAt(index)
		}
		summary.Evaluation++
	}

	series.OnBarsEvicted(func(beginIndex, count int) {
		summary.Evicted += count
		logger.Debugf("evicted %d bar(s) from index %d", count, beginIndex)
	})

	series.OnBarReplaced(func(index int, bar types.Bar) {
		summary.Replaced++
		evaluate(index)
	})

	series.OnBarAppended(func(index int, bar types.Bar) {
		evaluate(index)
	})

	limiter, err := cmdutil.NewValidLimiter(rate.Limit(cfg.Live.BarsPerSecond), 1)
	if err != nil {
		return nil, err
	}

	gen := newGenerator(cfg, f)

	for maxBars <= 0 || summary.Fed < maxBars {
		if err := limiter.Wait(ctx); err != nil {
			// the context is done
			break
		}

		if err := gen.Feed(series); err != nil {
			return nil, err
		}
		summary.Fed++

		metrics.UpdateCacheMetrics(series.Name(), set.Stats())

		if log.IsLevelEnabled(log.DebugLevel) {
			bar, _ := series.LastBar()
			logger.Debugf("bar %d closed: %s", series.EndIndex(), bar.String())
		}
	}

	summary.Last = make(map[string]fixedpoint.Value, len(inds))
	summary.Stable = make(map[string]bool, len(inds))
	for i, id := range summary.IDs {
		summary.Last[id] = indicator.Last(inds[i])
		summary.Stable[id] = !series.IsEmpty() && indicator.IsStable(inds[i], series.EndIndex())
	}
	summary.Stats = set.Stats()

	logger.Infof("live run stopped after %d bars, %d evicted", summary.Fed, summary.Evicted)
	return summary, nil
}

func renderLiveSummary(w io.Writer, summary *liveSummary) {
	series := summary.Series
	fmt.Fprintf(w, "run %s\n", summary.RunID)
	fmt.Fprintf(w, "series %s: bars fed %d, window [%d, %d], evicted %d, open bar updates %d\n",
		series.Name(), summary.Fed, series.BeginIndex(), series.EndIndex(), summary.Evicted, summary.Replaced)

	t := style.NewTable(w, "indicators", "indicator", "value", "stable", "hits", "misses", "computations")
	for _, id := range summary.IDs {
		stats := summary.Stats[id]
		t.AppendRow([]interface{}{
			id,
			summary.Last[id].String(),
			summary.Stable[id],
			stats.Hits,
			stats.Misses,
			stats.Computations,
		})
	}
	t.SetStyle(*style.NewDefaultTableStyle())
	t.Render()
}
