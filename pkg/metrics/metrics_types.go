package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Solve outcomes used as the status label
const (
	StatusOptimal   = "optimal"
	StatusHeuristic = "heuristic"
	StatusFailed    = "failed"
)

// Failure reasons used as the reason label
const (
	ReasonInfeasible    = "infeasible"
	ReasonTimeout       = "timeout"
	ReasonCancelled     = "cancelled"
	ReasonConfiguration = "configuration"
	ReasonMalformed     = "malformed"
	ReasonVerification  = "verification"
	ReasonInternal      = "internal"
)

// Registry holds all metrics for the application
type Registry struct {
	// Assembly Metrics
	NotesTotal        prometheus.Counter
	RelationsTotal    *prometheus.CounterVec
	CandidatesPerNote prometheus.Histogram
	GraphNodes        prometheus.Histogram
	GraphEdges        prometheus.Histogram
	AssemblyDuration  prometheus.Histogram

	// Solver Metrics
	SolvesTotal     *prometheus.CounterVec
	SolveDuration   *prometheus.HistogramVec
	ReductionsTotal *prometheus.CounterVec
	SearchSteps     prometheus.Histogram
	SolutionCost    prometheus.Histogram
	FailuresTotal   *prometheus.CounterVec

	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initAssemblyMetrics()
	r.initSolverMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
