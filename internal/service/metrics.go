package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsObserver counts use cases and batch items on its own registry so a
// CLI run can export exactly what it did.
type MetricsObserver struct {
	registry   *prometheus.Registry
	useCases   *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	batchItems *prometheus.CounterVec
}

func NewMetricsObserver() *MetricsObserver {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &MetricsObserver{
		registry: reg,
		useCases: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provost_use_case_total",
				Help: "Total number of service use cases run",
			},
			[]string{"use_case", "outcome"},
		),
		durations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "provost_use_case_duration_seconds",
				Help:    "Duration of service use cases in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"use_case"},
		),
		batchItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provost_batch_items_total",
				Help: "Total number of batch items processed",
			},
			[]string{"batch", "outcome"},
		),
	}
}

func (m *MetricsObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	m.useCases.WithLabelValues(event.Name, outcome(event.Success)).Inc()
	m.durations.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}

func (m *MetricsObserver) ObserveBatchItem(_ context.Context, batch string, success bool) {
	m.batchItems.WithLabelValues(batch, outcome(success)).Inc()
}

func (m *MetricsObserver) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the collected metrics in the node_exporter textfile
// format. The write goes through a temp file and rename.
func (m *MetricsObserver) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
