package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSolverMetrics() {
	r.SolvesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fingering_solves_total",
			Help: "Total number of solver runs by outcome",
		},
		[]string{"status"},
	)

	r.SolveDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fingering_solve_duration_seconds",
			Help:    "Solver run duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"status"},
	)

	r.ReductionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fingering_reductions_total",
			Help: "Total number of graph reductions applied by rule",
		},
		[]string{"rule"},
	)

	r.SearchSteps = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fingering_search_steps",
			Help:    "Branch-and-bound steps per solver run",
			Buckets: []float64{0, 10, 100, 1000, 10000, 100000, 1000000},
		},
	)

	r.SolutionCost = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fingering_solution_cost",
			Help:    "Total cost of returned labelings",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
		},
	)

	r.FailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fingering_failures_total",
			Help: "Total number of failed runs by reason",
		},
		[]string{"reason"},
	)
}
