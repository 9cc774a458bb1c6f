package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c9s/tacore/pkg/indicator"
)

var IndicatorCacheHitsMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "tacore_indicator_cache_hits",
		Help: "cache hits of the indicator",
	}, []string{"series", "indicator"})

var IndicatorCacheMissesMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "tacore_indicator_cache_misses",
		Help: "cache misses of the indicator",
	}, []string{"series", "indicator"})

var IndicatorComputationsMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "tacore_indicator_computations",
		Help: "values computed by the indicator",
	}, []string{"series", "indicator"})

func init() {
	prometheus.MustRegister(
		IndicatorCacheHitsMetrics,
		IndicatorCacheMissesMetrics,
		IndicatorComputationsMetrics,
	)
}

// UpdateCacheMetrics publishes a snapshot of the cache statistics, keyed by indicator id.
func UpdateCacheMetrics(seriesName string, stats map[string]indicator.CacheStats) {
	for id, s := range stats {
		IndicatorCacheHitsMetrics.WithLabelValues(seriesName, id).Set(float64(s.Hits))
		IndicatorCacheMissesMetrics.WithLabelValues(seriesName, id).Set(float64(s.Misses))
		IndicatorComputationsMetrics.WithLabelValues(seriesName, id).Set(float64(s.Computations))
	}
}
