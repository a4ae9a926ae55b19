// Package metrics defines upstream data source metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream counter vectors
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream team-data requests by source and outcome",
	}, []string{"source", "outcome"})

	StatSourcesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stat_sources_total",
		Help:      "Total number of resolved team statistics by origin",
	}, []string{"source"})

	CacheWarmupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_warmups_total",
		Help:      "Total number of scheduled standings refreshes by league and outcome",
	}, []string{"league", "outcome"})
)

// Upstream histogram vectors
var (
	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream team-data requests in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"source"})
)

// RecordUpstreamRequest records an upstream request. Outcome is "success"
// or a data source error code.
func RecordUpstreamRequest(source, outcome string, durationSeconds float64) {
	UpstreamRequestsTotal.WithLabelValues(source, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordStatSource records where a resolved TeamStat came from.
func RecordStatSource(source string) {
	StatSourcesTotal.WithLabelValues(source).Inc()
}

// RecordCacheWarmup records a scheduled standings refresh.
func RecordCacheWarmup(league string, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	CacheWarmupsTotal.WithLabelValues(league, outcome).Inc()
}
