package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	estimatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "valuai",
			Name:      "estimates_total",
			Help:      "Total number of estimates served, partitioned by provenance.",
		},
		[]string{"provenance"},
	)

	estimateDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "valuai",
			Name:      "estimate_seconds",
			Help:      "End-to-end estimate latency in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		},
	)
)

// Register attaches the valuai collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		estimatesTotal,
		estimateDurationSeconds,
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

// RecordEstimate counts one served estimate under its provenance label.
func RecordEstimate(provenance string) {
	estimatesTotal.WithLabelValues(provenance).Inc()
}

// ObserveEstimateDuration records the latency of one estimate request.
func ObserveEstimateDuration(d time.Duration) {
	estimateDurationSeconds.Observe(d.Seconds())
}
