package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAssemblyMetrics() {
	r.NotesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "fingering_notes_total",
			Help: "Total number of notes assembled into graphs",
		},
	)

	r.RelationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fingering_relations_total",
			Help: "Total number of note relations by kind",
		},
		[]string{"kind"},
	)

	r.CandidatesPerNote = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fingering_candidates_per_note",
			Help:    "Number of reed and finger candidates per note",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 12},
		},
	)

	r.GraphNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fingering_graph_nodes",
			Help:    "Number of nodes per assembled graph",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000},
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fingering_graph_edges",
			Help:    "Number of edges per assembled graph",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 20000},
		},
	)

	r.AssemblyDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fingering_assembly_duration_seconds",
			Help:    "Time spent building graphs from event streams",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)
}
