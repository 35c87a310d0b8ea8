package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var metric dto.Metric
	if err := h.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.NotesTotal == nil {
		t.Error("NotesTotal not initialized")
	}
	if r.SolvesTotal == nil {
		t.Error("SolvesTotal not initialized")
	}
	if r.ReductionsTotal == nil {
		t.Error("ReductionsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordAssembly(t *testing.T) {
	r := NewRegistry()

	r.RecordAssembly(AssemblyStats{
		Notes:      4,
		Edges:      6,
		Relations:  map[string]int{"simultaneous": 5, "sequential": 1},
		Candidates: []int{1, 2, 3, 2},
		Duration:   time.Millisecond,
	})
	r.RecordAssembly(AssemblyStats{Notes: 2, Relations: map[string]int{"sequential": 1}})

	if got := counterValue(t, r.NotesTotal); got != 6 {
		t.Errorf("NotesTotal = %v, want 6", got)
	}
	if got := counterValue(t, r.RelationsTotal.WithLabelValues("sequential")); got != 2 {
		t.Errorf("sequential relations = %v, want 2", got)
	}
	if got := histogramCount(t, r.CandidatesPerNote); got != 4 {
		t.Errorf("CandidatesPerNote samples = %v, want 4", got)
	}
	if got := histogramCount(t, r.GraphNodes); got != 2 {
		t.Errorf("GraphNodes samples = %v, want 2", got)
	}
}

func TestRecordSolve(t *testing.T) {
	r := NewRegistry()

	r.RecordSolve(SolveStats{
		Optimal:    true,
		Cost:       12,
		Reductions: map[string]int{"r0": 1, "r1": 3, "r2": 2},
		Duration:   2 * time.Millisecond,
	})
	r.RecordSolve(SolveStats{
		Optimal:     false,
		Cost:        40,
		Reductions:  map[string]int{"rn": 4},
		SearchSteps: 5000,
	})

	if got := counterValue(t, r.SolvesTotal.WithLabelValues(StatusOptimal)); got != 1 {
		t.Errorf("optimal solves = %v, want 1", got)
	}
	if got := counterValue(t, r.SolvesTotal.WithLabelValues(StatusHeuristic)); got != 1 {
		t.Errorf("heuristic solves = %v, want 1", got)
	}
	if got := counterValue(t, r.ReductionsTotal.WithLabelValues("r1")); got != 3 {
		t.Errorf("r1 reductions = %v, want 3", got)
	}
	if got := histogramCount(t, r.SearchSteps); got != 2 {
		t.Errorf("SearchSteps samples = %v, want 2", got)
	}
}

func TestRecordFailure(t *testing.T) {
	r := NewRegistry()

	r.RecordFailure(ReasonInfeasible, time.Millisecond)
	r.RecordFailure(ReasonInfeasible, time.Millisecond)
	r.RecordFailure(ReasonTimeout, time.Second)

	if got := counterValue(t, r.FailuresTotal.WithLabelValues(ReasonInfeasible)); got != 2 {
		t.Errorf("infeasible failures = %v, want 2", got)
	}
	if got := counterValue(t, r.SolvesTotal.WithLabelValues(StatusFailed)); got != 3 {
		t.Errorf("failed solves = %v, want 3", got)
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	promRegistry := r.GetPrometheusRegistry()

	if promRegistry == nil {
		t.Fatal("GetPrometheusRegistry() returned nil")
	}

	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	// Vectors only appear once a label is used
	expectedMetrics := []string{
		"fingering_notes_total",
		"fingering_graph_nodes",
		"fingering_search_steps",
	}

	metricNames := make(map[string]bool)
	for _, m := range metrics {
		metricNames[m.GetName()] = true
	}

	for _, expected := range expectedMetrics {
		if !metricNames[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestWriteText(t *testing.T) {
	r := NewRegistry()
	r.RecordFailure(ReasonMalformed, 0)

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `fingering_failures_total{reason="malformed"} 1`) {
		t.Errorf("Expected failure counter in output:\n%s", out)
	}
	if !strings.Contains(out, "# HELP fingering_notes_total") {
		t.Errorf("Expected help text in output:\n%s", out)
	}
}
