package config

import (
	"github.com/c9s/tacore/pkg/envvar"
)

// ApplyEnv overrides config values from TACORE_ environment variables:
// TACORE_NUMERIC, TACORE_PRECISION, TACORE_MAX_BAR_COUNT, TACORE_SEED,
// TACORE_BENCH_BARS, TACORE_BENCH_RUNS, TACORE_BENCH_PROGRESS,
// TACORE_LIVE_DURATION and TACORE_METRICS_PORT.
func (c *Config) ApplyEnv() {
	envvar.SetString("numeric", &c.Numeric.Type)
	envvar.SetInt("precision", &c.Numeric.Precision)
	envvar.SetInt("max_bar_count", &c.Series.MaxBarCount)
	envvar.SetInt64("seed", &c.Series.RandomWalk.Seed)
	envvar.SetInt("bench_bars", &c.Bench.Bars)
	envvar.SetInt("bench_runs", &c.Bench.Runs)
	envvar.SetBool("bench_progress", &c.Bench.Progress)
	envvar.SetDuration("live_duration", &c.Live.Duration)
	envvar.SetInt("metrics_port", &c.Live.MetricsPort)
}
