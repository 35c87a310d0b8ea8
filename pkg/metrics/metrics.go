package metrics

import (
	"io"
	"time"

	"github.com/prometheus/common/expfmt"
)

// AssemblyStats describes one assembled graph
type AssemblyStats struct {
	Notes      int
	Edges      int
	Relations  map[string]int
	Candidates []int
	Duration   time.Duration
}

// SolveStats describes one solver run
type SolveStats struct {
	Optimal     bool
	Cost        float64
	Reductions  map[string]int
	SearchSteps int64
	Duration    time.Duration
}

// RecordAssembly records the shape of an assembled graph
func (r *Registry) RecordAssembly(s AssemblyStats) {
	r.NotesTotal.Add(float64(s.Notes))
	r.GraphNodes.Observe(float64(s.Notes))
	r.GraphEdges.Observe(float64(s.Edges))
	r.AssemblyDuration.Observe(s.Duration.Seconds())
	for kind, n := range s.Relations {
		r.RelationsTotal.WithLabelValues(kind).Add(float64(n))
	}
	for _, n := range s.Candidates {
		r.CandidatesPerNote.Observe(float64(n))
	}
}

// RecordSolve records a successful solver run
func (r *Registry) RecordSolve(s SolveStats) {
	status := StatusOptimal
	if !s.Optimal {
		status = StatusHeuristic
	}
	r.SolvesTotal.WithLabelValues(status).Inc()
	r.SolveDuration.WithLabelValues(status).Observe(s.Duration.Seconds())
	r.SearchSteps.Observe(float64(s.SearchSteps))
	r.SolutionCost.Observe(s.Cost)
	for rule, n := range s.Reductions {
		r.ReductionsTotal.WithLabelValues(rule).Add(float64(n))
	}
}

// RecordFailure records a run that produced no labeling
func (r *Registry) RecordFailure(reason string, duration time.Duration) {
	r.SolvesTotal.WithLabelValues(StatusFailed).Inc()
	r.SolveDuration.WithLabelValues(StatusFailed).Observe(duration.Seconds())
	r.FailuresTotal.WithLabelValues(reason).Inc()
}

// WriteText writes every gathered metric family in the Prometheus text format
func (r *Registry) WriteText(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
