package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// estimation service.
type Metrics struct {
	EstimatesComputed prometheus.Counter
	EstimateErrors    *prometheus.CounterVec // labels: reason={validation,geocode,weather,rate,internal}
	EstimateDuration  prometheus.Histogram

	// TemperatureSource counts projections by backing series, so the
	// silent historical→synthetic degradation stays observable.
	TemperatureSource *prometheus.CounterVec // labels: source={historical,synthetic}

	ProviderRequests *prometheus.CounterVec   // labels: provider={geocode,weather,historical,rate}, outcome={success,error,empty}
	ProviderDuration *prometheus.HistogramVec // labels: provider

	GeocodeCache *prometheus.CounterVec // labels: result={hit,miss}

	HistorySaves    prometheus.Counter
	EventsPublished prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.EstimatesComputed,
		m.EstimateErrors,
		m.EstimateDuration,
		m.TemperatureSource,
		m.ProviderRequests,
		m.ProviderDuration,
		m.GeocodeCache,
		m.HistorySaves,
		m.EventsPublished,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		EstimatesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ac_cost",
			Name:      "estimates_computed_total",
			Help:      "Total cost estimates completed successfully.",
		}),
		EstimateErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ac_cost",
			Name:      "estimate_errors_total",
			Help:      "Failed estimate requests by reason.",
		}, []string{"reason"}),
		EstimateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ac_cost",
			Name:      "estimate_duration_seconds",
			Help:      "End-to-end duration of an estimate request.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		TemperatureSource: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ac_cost",
			Name:      "temperature_source_total",
			Help:      "Projections by temperature series source.",
		}, []string{"source"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ac_cost",
			Name:      "provider_requests_total",
			Help:      "External provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ac_cost",
			Name:      "provider_request_duration_seconds",
			Help:      "External provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"provider"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ac_cost",
			Name:      "geocode_cache_total",
			Help:      "Geocode cache lookups by result.",
		}, []string{"result"}),
		HistorySaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ac_cost",
			Name:      "history_saves_total",
			Help:      "Calculations persisted to the history store.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ac_cost",
			Name:      "events_published_total",
			Help:      "Completed-estimate events published to Kafka.",
		}),
	}
}
