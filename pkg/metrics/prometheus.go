package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	itemsTotal   *prometheus.CounterVec
	batchesTotal *prometheus.CounterVec
	batchItems   *prometheus.HistogramVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered on reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		itemsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nts_forecast_items_total",
				Help: "Total number of SKU forecasts computed",
			},
			[]string{"path"},
		),
		batchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nts_forecast_batches_total",
				Help: "Total number of forecast batches by source",
			},
			[]string{"source"},
		),
		batchItems: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nts_forecast_batch_items",
				Help:    "Number of items per forecast batch",
				Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
			},
			[]string{"source"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nts_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nts_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordItemForecast counts one item by the method used ("trend" or "mean").
func (r *Recorder) RecordItemForecast(path string) {
	r.itemsTotal.WithLabelValues(path).Inc()
}

// RecordBatch counts a batch and observes its size.
func (r *Recorder) RecordBatch(source string, items int) {
	r.batchesTotal.WithLabelValues(source).Inc()
	r.batchItems.WithLabelValues(source).Observe(float64(items))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards every observation.
type Nop struct{}

func (Nop) RecordItemForecast(string)     {}
func (Nop) RecordBatch(string, int)       {}
func (Nop) RecordError(string)            {}
func (Nop) RecordLatency(string, float64) {}
