package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels completed aggregation runs.
	OutcomeSuccess = "success"
	// OutcomeError labels failed aggregation runs (missing data or storage issues).
	OutcomeError = "error"
)

var (
	aggregationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "api510",
			Name:      "aggregations_total",
			Help:      "Total number of aggregation runs handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	aggregationDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "api510",
			Name:      "aggregation_seconds",
			Help:      "Aggregation run latency in seconds.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	componentStatusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "api510",
			Name:      "component_status_total",
			Help:      "Component results produced, partitioned by classification.",
		},
		[]string{"status"},
	)
)

// Register attaches the engine's collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		aggregationsTotal,
		aggregationDurationSeconds,
		componentStatusTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveAggregation records an aggregation duration and outcome label.
func ObserveAggregation(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	aggregationsTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	aggregationDurationSeconds.Observe(duration.Seconds())
}

// ObserveComponentStatus counts one classified component result.
func ObserveComponentStatus(status string) {
	componentStatusTotal.WithLabelValues(status).Inc()
}
