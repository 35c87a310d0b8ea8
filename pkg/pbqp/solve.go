package pbqp

import (
	"context"
	"errors"
	"time"

	"github.com/dd0wney/cluso-fingering/pkg/validation"
)

// Options bounds the fallback path taken when the graph is not fully
// reducible by R0, R1 and R2.
type Options struct {
	// ExhaustiveLimit is the largest residual component, measured as the
	// product of its nodes' option counts, solved by exact search instead of
	// the RN heuristic.
	ExhaustiveLimit int
	// MaxSearchSteps caps the partial labelings visited by exact search.
	MaxSearchSteps int
	// Timeout caps wall time spent in exact search. Zero disables it.
	Timeout time.Duration
}

// DefaultOptions returns the bounds used when none are supplied
func DefaultOptions() Options {
	return Options{
		ExhaustiveLimit: 1 << 16,
		MaxSearchSteps:  2_000_000,
		Timeout:         30 * time.Second,
	}
}

// Validate checks the bounds
func (o Options) Validate() error {
	return validation.NewConfigValidator("pbqp.Options").
		Positive("ExhaustiveLimit", o.ExhaustiveLimit).
		Positive("MaxSearchSteps", o.MaxSearchSteps).
		MinDuration("Timeout", o.Timeout, 0).
		Validate()
}

// Stats counts the work done by one Solve call
type Stats struct {
	R0          int `json:"r0"`
	R1          int `json:"r1"`
	R2          int `json:"r2"`
	RN          int `json:"rn"`       // heuristic eliminations
	Searched    int `json:"searched"` // nodes labeled by exact search
	SearchSteps int `json:"search_steps"`
	Restarts    int `json:"restarts"` // heuristic attempts abandoned for exact search
}

// Solution maps every node to the index of its selected option
type Solution struct {
	Selections []int
	Cost       Cost
	// Optimal is false when the RN heuristic decided part of the labeling.
	Optimal bool
	Stats   Stats
}

// Selection returns the option chosen for node n
func (s *Solution) Selection(n NodeID) int {
	return s.Selections[n]
}

type solver struct {
	ctx      context.Context
	opts     Options
	w        *workGraph
	stack    []record
	stats    Stats
	start    time.Time
	deadline time.Time
}

type snapshot struct {
	w     *workGraph
	depth int
	stats Stats
}

func (s *solver) push(r record) {
	s.stack = append(s.stack, r)
}

// Solve finds a minimum-cost labeling of g. The graph is not modified.
//
// Nodes of degree zero, one and two are eliminated exactly. Remaining
// components small enough for ExhaustiveLimit are solved by branch-and-bound;
// larger ones are broken up by heuristic RN eliminations. Should the
// heuristic path dead-end, the solver rewinds and searches the whole residue
// exactly, within MaxSearchSteps and Timeout.
func Solve(ctx context.Context, g *Graph, opts Options) (*Solution, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &solver{
		ctx:   ctx,
		opts:  opts,
		w:     newWorkGraph(g),
		stack: make([]record, 0, g.NumNodes()),
		start: time.Now(),
	}
	if opts.Timeout > 0 {
		s.deadline = s.start.Add(opts.Timeout)
	}

	heuristic, err := s.run()
	if err != nil {
		return nil, err
	}

	selections := s.backSubstitute(g.NumNodes())
	total, err := g.TotalCost(selections)
	if err != nil {
		return nil, err
	}
	if IsInf(total) {
		nodes, edges := g.violations(selections)
		return nil, &InfeasibleError{Op: "verify", Nodes: nodes, Edges: edges, Reason: "labeling selects a forbidden cost"}
	}

	return &Solution{
		Selections: selections,
		Cost:       total,
		Optimal:    !heuristic,
		Stats:      s.stats,
	}, nil
}

// run drives reductions and the fallback path. It reports whether the final
// labeling depends on a heuristic choice.
func (s *solver) run() (bool, error) {
	var snap *snapshot
	heuristic := false

	for {
		err := s.reduce()
		if err == nil && s.w.alive > 0 {
			err = s.fallback(&snap, &heuristic)
		}
		if err != nil {
			var infeasible *InfeasibleError
			if heuristic && snap != nil && errors.As(err, &infeasible) {
				// The heuristic may have cut off every feasible labeling.
				s.w = snap.w
				s.stack = s.stack[:snap.depth]
				steps := s.stats.SearchSteps
				s.stats = snap.stats
				s.stats.SearchSteps = steps
				s.stats.Restarts++
				snap, heuristic = nil, false
				if err := s.searchAll(); err != nil {
					return false, err
				}
				continue
			}
			return false, err
		}
		if s.w.alive == 0 {
			return heuristic, nil
		}
	}
}

// fallback handles a residue of degree >= 3 nodes: small components are
// searched exactly, then one heuristic elimination is applied to the rest.
func (s *solver) fallback(snap **snapshot, heuristic *bool) error {
	var large []NodeID
	for _, comp := range s.w.components() {
		if s.w.searchSpace(comp, s.opts.ExhaustiveLimit) <= s.opts.ExhaustiveLimit {
			if err := s.search(comp); err != nil {
				return err
			}
			s.stats.Searched += len(comp)
			continue
		}
		large = append(large, comp...)
	}
	if len(large) == 0 {
		return nil
	}
	if *snap == nil {
		*snap = &snapshot{w: s.w.clone(), depth: len(s.stack), stats: s.stats}
	}
	*heuristic = true
	return s.reduceRN(s.pickHeuristic(large))
}

// searchAll labels every alive node by exact search.
func (s *solver) searchAll() error {
	var all []NodeID
	for i, n := range s.w.nodes {
		if n.alive {
			all = append(all, NodeID(i))
		}
	}
	if len(all) == 0 {
		return nil
	}
	if err := s.search(all); err != nil {
		return err
	}
	s.stats.Searched += len(all)
	return nil
}

// backSubstitute replays the elimination stack in reverse.
func (s *solver) backSubstitute(n int) []int {
	sel := make([]int, n)
	for i := len(s.stack) - 1; i >= 0; i-- {
		r := s.stack[i]
		switch r.kind {
		case recordR0:
			sel[r.node] = r.costs.MinIndex()
		case recordR1:
			sel[r.node] = r.table[sel[r.y]]
		case recordR2:
			sel[r.node] = r.table[sel[r.y]*r.zLen+sel[r.z]]
		case recordFixed:
			sel[r.node] = r.pick
		}
	}
	return sel
}
