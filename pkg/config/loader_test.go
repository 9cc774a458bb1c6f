package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/c9s/tacore/pkg/fixedpoint"
	"github.com/c9s/tacore/pkg/types"
)

func TestLoadConfig(t *testing.T) {
	type args struct {
		configFile string
	}

	tests := []struct {
		name    string
		args    args
		wantErr bool
		f       func(t *testing.T, config *Config)
	}{
		{
			name:    "tacore",
			args:    args{configFile: "testdata/tacore.yaml"},
			wantErr: false,
			f: func(t *testing.T, config *Config) {
				factory, err := config.Numeric.Factory()
				require.NoError(t, err)
				assert.Equal(t, fixedpoint.KindFloat, factory.Kind())

				assert.Equal(t, "btcusdt", config.Series.Name)
				assert.Equal(t, types.Interval5m, config.Series.Interval)
				assert.Equal(t, 500, config.Series.MaxBarCount)
				assert.Equal(t, int64(42), config.Series.RandomWalk.Seed)
				assert.Equal(t, DefaultTicksOfBar, config.Series.RandomWalk.TicksOfBar)

				assert.Len(t, config.Indicators, 4)
				assert.Equal(t, "macd", config.Indicators[2].ID)
				assert.Equal(t, "fast", config.Indicators[2].Left)

				assert.Equal(t, 3, config.Bench.Runs)
				assert.Equal(t, StringSlice{"float", "decimal"}, config.Bench.Numerics)
				assert.Equal(t, 30*time.Second, config.Live.Duration)
				assert.Equal(t, 9300, config.Live.MetricsPort)
			},
		},
		{
			name:    "invalid",
			args:    args{configFile: "testdata/invalid.yaml"},
			wantErr: true,
		},
		{
			name:    "missing",
			args:    args{configFile: "testdata/missing.yaml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := Load(tt.args.configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.f != nil {
				tt.f(t, config)
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 7)

	msg := err.Error()
	assert.Contains(t, msg, "bigint")
	assert.Contains(t, msg, "invalid interval")
	assert.Contains(t, msg, "maxBarCount")
	assert.Contains(t, msg, "indicator sma: window must be positive")
	assert.Contains(t, msg, `right "ema" is not defined`)
	assert.Contains(t, msg, "indicator sma: duplicated id")
	assert.Contains(t, msg, `unknown type "wma"`)
}

func TestDefault(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())
	assert.Equal(t, "decimal", config.Numeric.Type)
	assert.Equal(t, fixedpoint.DefaultPrecision, config.Numeric.Precision)
	assert.Equal(t, DefaultSeriesName, config.Series.Name)
	assert.Equal(t, DefaultInterval, config.Series.Interval)
	assert.Equal(t, 0, config.Series.MaxBarCount)
	assert.Len(t, config.Indicators, 3)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TACORE_NUMERIC", "float")
	t.Setenv("TACORE_MAX_BAR_COUNT", "64")
	t.Setenv("TACORE_SEED", "9")
	t.Setenv("TACORE_BENCH_PROGRESS", "true")
	t.Setenv("TACORE_LIVE_DURATION", "2m")

	config := Default()
	config.ApplyEnv()
	require.NoError(t, config.Validate())

	assert.Equal(t, "float", config.Numeric.Type)
	assert.Equal(t, 64, config.Series.MaxBarCount)
	assert.Equal(t, int64(9), config.Series.RandomWalk.Seed)
	assert.True(t, config.Bench.Progress)
	assert.Equal(t, 2*time.Minute, config.Live.Duration)
}

func TestStringSlice(t *testing.T) {
	config, err := Parse([]byte("bench:\n  numerics: [float]\n"))
	require.NoError(t, err)
	assert.Equal(t, StringSlice{"float"}, config.Bench.Numerics)

	var s StringSlice
	require.NoError(t, s.UnmarshalJSON([]byte(`["float", "decimal, double"]`)))
	assert.Equal(t, StringSlice{"float", "decimal", "double"}, s)
	assert.Error(t, s.UnmarshalJSON([]byte(`[1]`)))
}
