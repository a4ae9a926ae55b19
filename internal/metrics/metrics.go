// Package metrics provides centralized Prometheus metrics registry for the analysis service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "futurologia"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total number of match analyses by league and predicted side",
	}, []string{"league", "winner_side"})
	AnalysisErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_errors_total",
		Help:      "Total number of failed match analyses by reason",
	}, []string{"reason"})
	TieBreaksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tie_breaks_total",
		Help:      "Total number of analyses whose winner came from the tie-break rule",
	})
	HistoryWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_writes_total",
		Help:      "Total number of analysis history writes by outcome",
	}, []string{"outcome"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of upstream circuit breaker trips",
	})
)

// Gauge metrics
var (
	CacheHitRatio = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_hit_ratio",
		Help:      "Hit ratio of in-memory caches",
	}, []string{"cache"})
	CircuitBreakerOpen = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_open",
		Help:      "Whether the upstream circuit breaker is open (1) or closed (0)",
	})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of match analyses in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	PredictionConfidence = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_confidence",
		Help:      "Confidence percentage of predicted winners",
		Buckets:   []float64{30, 40, 50, 60, 70, 80, 90, 95},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(AnalysesTotal)
		registry.MustRegister(AnalysisErrorsTotal)
		registry.MustRegister(TieBreaksTotal)
		registry.MustRegister(HistoryWritesTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)

		// Register gauge metrics
		registry.MustRegister(CacheHitRatio)
		registry.MustRegister(CircuitBreakerOpen)

		// Register histogram metrics
		registry.MustRegister(AnalysisDuration)
		registry.MustRegister(PredictionConfidence)

		// Register upstream metrics
		registry.MustRegister(UpstreamRequestsTotal)
		registry.MustRegister(UpstreamRequestDuration)
		registry.MustRegister(StatSourcesTotal)
		registry.MustRegister(CacheWarmupsTotal)

		// Register HTTP metrics
		registry.MustRegister(HTTPRequestsTotal)
		registry.MustRegister(HTTPRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysis records a completed analysis.
func RecordAnalysis(league, winnerSide string, confidence int, tieBreak bool, durationSeconds float64) {
	AnalysesTotal.WithLabelValues(league, winnerSide).Inc()
	PredictionConfidence.Observe(float64(confidence))
	AnalysisDuration.Observe(durationSeconds)
	if tieBreak {
		TieBreaksTotal.Inc()
	}
}

// RecordAnalysisError records a failed analysis.
func RecordAnalysisError(reason string) {
	AnalysisErrorsTotal.WithLabelValues(reason).Inc()
}

// RecordHistoryWrite records the outcome of a history write.
func RecordHistoryWrite(success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	HistoryWritesTotal.WithLabelValues(outcome).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
	CircuitBreakerOpen.Set(1)
}

// RecordCircuitBreakerReset marks the circuit breaker closed.
func RecordCircuitBreakerReset() {
	CircuitBreakerOpen.Set(0)
}

// UpdateCacheHitRatio updates the hit ratio gauge of a cache.
func UpdateCacheHitRatio(cache string, ratio float64) {
	CacheHitRatio.WithLabelValues(cache).Set(ratio)
}
