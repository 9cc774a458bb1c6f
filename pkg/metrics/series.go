package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c9s/tacore/pkg/types"
)

var SeriesBarCountMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "tacore_series_bar_count",
		Help: "number of bars resident in the series",
	}, []string{"series"})

var SeriesEndIndexMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "tacore_series_end_index",
		Help: "index of the last bar of the series",
	}, []string{"series"})

var SeriesAppendsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tacore_series_appends_total",
		Help: "bars appended to the series",
	}, []string{"series"})

var SeriesReplacementsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tacore_series_replacements_total",
		Help: "in-place updates of the open bar",
	}, []string{"series"})

var SeriesEvictionsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tacore_series_evictions_total",
		Help: "bars evicted by the maximum bar count",
	}, []string{"series"})

func init() {
	prometheus.MustRegister(
		SeriesBarCountMetrics,
		SeriesEndIndexMetrics,
		SeriesAppendsMetrics,
		SeriesReplacementsMetrics,
		SeriesEvictionsMetrics,
	)
}

// BindSeries keeps the series metrics up to date through the series callbacks.
func BindSeries(series *types.BarSeries) {
	name := series.Name()
	barCount := SeriesBarCountMetrics.WithLabelValues(name)
	endIndex := SeriesEndIndexMetrics.WithLabelValues(name)
	appends := SeriesAppendsMetrics.WithLabelValues(name)
	replacements := SeriesReplacementsMetrics.WithLabelValues(name)
	evictions := SeriesEvictionsMetrics.WithLabelValues(name)

	barCount.Set(float64(series.BarCount()))
	endIndex.Set(float64(series.EndIndex()))

	series.OnBarAppended(func(index int, bar types.Bar) {
		appends.Inc()
		barCount.Set(float64(series.BarCount()))
		endIndex.Set(float64(index))
	})

	series.OnBarReplaced(func(index int, bar types.Bar) {
		replacements.Inc()
	})

	series.OnBarsEvicted(func(beginIndex, count int) {
		evictions.Add(float64(count))
	})
}
