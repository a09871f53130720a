package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	dispatches *prometheus.CounterVec
	fetches    *prometheus.CounterVec
	stale      *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		dispatches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trainboard_training_dispatches_total",
				Help: "Settled training submissions by outcome",
			},
			[]string{"outcome"},
		),
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trainboard_stock_fetches_total",
				Help: "Settled stock data fetches by outcome",
			},
			[]string{"outcome"},
		),
		stale: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trainboard_stale_results_total",
				Help: "Results discarded because a newer request superseded them",
			},
			[]string{"component"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trainboard_backend_duration_seconds",
				Help:    "Duration of backend calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordDispatch records a settled training submission.
func (r *Recorder) RecordDispatch(outcome string) {
	r.dispatches.WithLabelValues(outcome).Inc()
}

// RecordFetch records a settled stock data fetch.
func (r *Recorder) RecordFetch(outcome string) {
	r.fetches.WithLabelValues(outcome).Inc()
}

// RecordStaleResult records a discarded result.
func (r *Recorder) RecordStaleResult(component string) {
	r.stale.WithLabelValues(component).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
