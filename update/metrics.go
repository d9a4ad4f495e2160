package update

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors recorded by an Updater.
type Metrics struct {
	// moves counts proposals by kind and result ("accepted", "rejected").
	moves *prometheus.CounterVec

	// loopSteps observes the number of edges raised per move.
	loopSteps *prometheus.HistogramVec

	// linkChange observes the filled-link delta of accepted moves.
	linkChange prometheus.Histogram
}

// NewMetrics builds the collectors and registers them on reg. A nil reg
// yields working but unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		moves: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stringnet",
				Subsystem: "update",
				Name:      "moves_total",
				Help:      "Monte Carlo proposals by update kind and result",
			},
			[]string{"kind", "result"},
		),
		loopSteps: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stringnet",
				Subsystem: "update",
				Name:      "loop_steps",
				Help:      "Edges raised per proposal",
				Buckets:   prometheus.ExponentialBuckets(4, 2, 14),
			},
			[]string{"kind"},
		),
		linkChange: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "stringnet",
				Subsystem: "update",
				Name:      "accepted_link_change",
				Help:      "Filled-link delta of accepted proposals",
				Buckets:   prometheus.LinearBuckets(-8, 2, 9),
			},
		),
	}
}

func (m *Metrics) observe(r Result) {
	if m == nil {
		return
	}
	result := "rejected"
	if r.Accepted {
		result = "accepted"
		m.linkChange.Observe(float64(r.LinkChange))
	}
	m.moves.WithLabelValues(r.Kind.String(), result).Inc()
	m.loopSteps.WithLabelValues(r.Kind.String()).Observe(float64(r.Steps))
}
