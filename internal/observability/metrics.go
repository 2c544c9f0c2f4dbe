package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the detection
// pipeline.
type Metrics struct {
	SensorFetches       *prometheus.CounterVec // labels: satellite, outcome={success,empty,error}
	SensorFetchDuration *prometheus.HistogramVec

	DetectionsFetched  prometheus.Counter
	DetectionsReported prometheus.Counter
	DetectionsFiltered prometheus.Counter

	Runs        *prometheus.CounterVec // labels: outcome={report,no_data,all_filtered}
	RunDuration prometheus.Histogram

	FeedCacheRequests *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SensorFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "sensor_fetches_total",
			Help:      "Feed fetches by satellite and outcome.",
		}, []string{"satellite", "outcome"}),
		SensorFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "firewatch",
			Name:      "sensor_fetch_duration_seconds",
			Help:      "FIRMS area API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"satellite"}),
		DetectionsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "detections_fetched_total",
			Help:      "Total raw detection rows returned by all sensors.",
		}),
		DetectionsReported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "detections_reported_total",
			Help:      "Total detections that passed the reliability filter.",
		}),
		DetectionsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "detections_filtered_total",
			Help:      "Total detections discarded by the reliability filter.",
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "firewatch",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-normalize-report run.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		FeedCacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "feed_cache_requests_total",
			Help:      "Feed cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.SensorFetches,
		m.SensorFetchDuration,
		m.DetectionsFetched,
		m.DetectionsReported,
		m.DetectionsFiltered,
		m.Runs,
		m.RunDuration,
		m.FeedCacheRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SensorFetches:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "firewatch", Name: "sensor_fetches_total"}, []string{"satellite", "outcome"}),
		SensorFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "firewatch", Name: "sensor_fetch_duration_seconds"}, []string{"satellite"}),
		DetectionsFetched:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "detections_fetched_total"}),
		DetectionsReported:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "detections_reported_total"}),
		DetectionsFiltered:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "detections_filtered_total"}),
		Runs:                prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "firewatch", Name: "runs_total"}, []string{"outcome"}),
		RunDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "firewatch", Name: "run_duration_seconds"}),
		FeedCacheRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "firewatch", Name: "feed_cache_requests_total"}, []string{"result"}),
	}
}
