// Package metrics exposes Prometheus collectors for the solver.
//
// Metrics implements board.Observer so evaluators and sessions report into it
// without knowing about Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the solver's collectors.
type Metrics struct {
	Evaluations *prometheus.CounterVec
	Candidates  prometheus.Histogram
	Deliveries  *prometheus.CounterVec
	Vocabulary  prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// A nil reg uses a fresh registry, which keeps tests independent.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quordle_evaluations_total",
				Help: "Board evaluations, by board and kind (opener or filter).",
			},
			[]string{"board", "kind"},
		),
		Candidates: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quordle_candidates",
				Help:    "Candidates left after filtering a board.",
				Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50, 100, 250, 1000},
			},
		),
		Deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quordle_deliveries_total",
				Help: "Completed suggestion passes handed to delivery, by result.",
			},
			[]string{"result"},
		),
		Vocabulary: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quordle_vocabulary_words",
				Help: "Words in the loaded vocabulary.",
			},
		),
	}
	reg.MustRegister(m.Evaluations, m.Candidates, m.Deliveries, m.Vocabulary)
	return m
}

// ObserveEvaluation implements board.Observer.
func (m *Metrics) ObserveEvaluation(b int, opener bool, candidates int) {
	kind := "filter"
	if opener {
		kind = "opener"
	}
	m.Evaluations.WithLabelValues(strconv.Itoa(b), kind).Inc()
	if !opener {
		m.Candidates.Observe(float64(candidates))
	}
}

// ObserveDelivery implements board.Observer.
func (m *Metrics) ObserveDelivery(err error) {
	if err != nil {
		m.Deliveries.WithLabelValues("error").Inc()
		return
	}
	m.Deliveries.WithLabelValues("ok").Inc()
}
