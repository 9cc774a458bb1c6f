package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

const (
	DefaultSeriesName = "default"
	DefaultInterval   = types.Interval("1m")
	DefaultBenchRuns  = 5
	DefaultBenchBars  = 10_000
	DefaultBarsPerSec = 10.0
	DefaultTicksOfBar = 4
)

type NumericConfig struct {
	// Type is "float" or "decimal"
	Type      string `json:"type" yaml:"type"`
	Precision int    `json:"precision,omitempty" yaml:"precision,omitempty"`
}

func (c NumericConfig) Factory() (fixedpoint.Factory, error) {
	return fixedpoint.ParseFactory(c.Type, c.Precision)
}

type RandomWalkConfig struct {
	Seed       int64   `json:"seed" yaml:"seed"`
	StartPrice float64 `json:"startPrice" yaml:"startPrice"`
	Volatility float64 `json:"volatility" yaml:"volatility"`
	TicksOfBar int     `json:"ticksOfBar" yaml:"ticksOfBar"`
}

type SeriesConfig struct {
	Name        string         `json:"name" yaml:"name"`
	Interval    types.Interval `json:"interval" yaml:"interval"`
	MaxBarCount int            `json:"maxBarCount,omitempty" yaml:"maxBarCount,omitempty"`

	RandomWalk RandomWalkConfig `json:"randomWalk" yaml:"randomWalk"`
}

// IndicatorConfig defines one indicator of the set.
//
// Source, Left and Right refer to a price ("close", "open", "high", "low",
// "volume", "typical") or to the ID of an indicator defined earlier.
type IndicatorConfig struct {
	ID     string  `json:"id" yaml:"id"`
	Type   string  `json:"type" yaml:"type"`
	Source string  `json:"source,omitempty" yaml:"source,omitempty"`
	Left   string  `json:"left,omitempty" yaml:"left,omitempty"`
	Right  string  `json:"right,omitempty" yaml:"right,omitempty"`
	Window int     `json:"window,omitempty" yaml:"window,omitempty"`
	Value  float64 `json:"value,omitempty" yaml:"value,omitempty"`
}

type BenchConfig struct {
	Runs     int         `json:"runs" yaml:"runs"`
	Bars     int         `json:"bars" yaml:"bars"`
	Numerics StringSlice `json:"numerics" yaml:"numerics"`
	Progress bool        `json:"progress,omitempty" yaml:"progress,omitempty"`
}

type LiveConfig struct {
	BarsPerSecond float64       `json:"barsPerSecond" yaml:"barsPerSecond"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
	MetricsPort   int           `json:"metricsPort,omitempty" yaml:"metricsPort,omitempty"`
}

type Config struct {
	Numeric    NumericConfig     `json:"numeric" yaml:"numeric"`
	Series     SeriesConfig      `json:"series" yaml:"series"`
	Indicators []IndicatorConfig `json:"indicators" yaml:"indicators"`
	Bench      BenchConfig       `json:"bench" yaml:"bench"`
	Live       LiveConfig        `json:"live" yaml:"live"`
}

// Load reads the YAML config file, applies the defaults and validates it.
func Load(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "can not read config file %s", configFile)
	}

	return Parse(content)
}

func Parse(content []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(content, &config); err != nil {
		return nil, errors.Wrap(err, "can not parse config")
	}

	config.SetDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns the config used when no config file is given.
func Default() *Config {
	config := &Config{
		Indicators: []IndicatorConfig{
			{ID: "sma", Type: "sma", Source: "close", Window: 20},
			{ID: "ema", Type: "ema", Source: "close", Window: 20},
			{ID: "spread", Type: "minus", Left: "sma", Right: "ema"},
		},
	}
	config.SetDefaults()
	return config
}

func (c *Config) SetDefaults() {
	if c.Numeric.Type == "" {
		c.Numeric.Type = "decimal"
	}

	if c.Numeric.Type == "decimal" && c.Numeric.Precision == 0 {
		c.Numeric.Precision = fixedpoint.DefaultPrecision
	}

	if c.Series.Name == "" {
		c.Series.Name = DefaultSeriesName
	}

	if c.Series.Interval == "" {
		c.Series.Interval = DefaultInterval
	}

	rw := &c.Series.RandomWalk
	if rw.StartPrice == 0 {
		rw.StartPrice = 100
	}
	if rw.Volatility == 0 {
		rw.Volatility = 0.01
	}
	if rw.TicksOfBar == 0 {
		rw.TicksOfBar = DefaultTicksOfBar
	}

	if c.Bench.Runs == 0 {
		c.Bench.Runs = DefaultBenchRuns
	}
	if c.Bench.Bars == 0 {
		c.Bench.Bars = DefaultBenchBars
	}
	if len(c.Bench.Numerics) == 0 {
		c.Bench.Numerics = StringSlice{"float", "decimal"}
	}

	if c.Live.BarsPerSecond == 0 {
		c.Live.BarsPerSecond = DefaultBarsPerSec
	}
}

// Validate reports every problem of the config at once.
func (c *Config) Validate() (err error) {
	if _, e := c.Numeric.Factory(); e != nil {
		err = multierr.Append(err, e)
	}

	if e := c.Series.Interval.Validate(); e != nil {
		err = multierr.Append(err, e)
	}

	if c.Series.MaxBarCount < 0 {
		err = multierr.Append(err, errors.Errorf("series %s: maxBarCount must not be negative", c.Series.Name))
	}

	if c.Series.RandomWalk.Volatility < 0 {
		err = multierr.Append(err, errors.New("randomWalk.volatility must not be negative"))
	}

	err = multierr.Append(err, ValidateIndicators(c.Indicators))

	if c.Bench.Runs < 0 || c.Bench.Bars < 0 {
		err = multierr.Append(err, errors.New("bench runs and bars must not be negative"))
	}

	for _, name := range c.Bench.Numerics {
		if _, e := fixedpoint.ParseFactory(name, 0); e != nil {
			err = multierr.Append(err, errors.Wrap(e, "bench.numerics"))
		}
	}

	if c.Live.BarsPerSecond < 0 {
		err = multierr.Append(err, errors.New("live.barsPerSecond must not be negative"))
	}

	if c.Live.MetricsPort < 0 || c.Live.MetricsPort > 65535 {
		err = multierr.Append(err, errors.Errorf("live.metricsPort %d is not a valid port", c.Live.MetricsPort))
	}

	return err
}
