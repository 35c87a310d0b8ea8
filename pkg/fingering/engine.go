package fingering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-fingering/pkg/constraints"
	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/logging"
	"github.com/dd0wney/cluso-fingering/pkg/metrics"
	"github.com/dd0wney/cluso-fingering/pkg/pbqp"
	"github.com/dd0wney/cluso-fingering/pkg/score"
)

// Config holds everything an Assigner needs besides the layout
type Config struct {
	Penalties Penalties
	Assembler AssemblerConfig
	Solver    pbqp.Options

	// Logger defaults to a no-op logger
	Logger logging.Logger
	// Metrics is optional
	Metrics *metrics.Registry
}

// DefaultConfig returns the default penalties and bounds, without logging or
// metrics
func DefaultConfig() Config {
	return Config{
		Penalties: DefaultPenalties(),
		Assembler: DefaultAssemblerConfig(),
		Solver:    pbqp.DefaultOptions(),
	}
}

// Validate checks every section of the configuration
func (c Config) Validate() error {
	if err := c.Penalties.Validate(); err != nil {
		return err
	}
	if err := c.Assembler.Validate(); err != nil {
		return err
	}
	return c.Solver.Validate()
}

// Assigner computes fingerings for one layout. It holds no per-run state and
// may be shared between goroutines.
type Assigner struct {
	layout    *layout.Layout
	config    Config
	assembler *Assembler
	logger    logging.Logger
}

// NewAssigner validates cfg and binds it to a layout
func NewAssigner(l *layout.Layout, cfg Config) (*Assigner, error) {
	if l == nil {
		return nil, errors.New("fingering: nil layout")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Assigner{
		layout:    l,
		config:    cfg,
		assembler: NewAssembler(l, cfg.Penalties, cfg.Assembler),
		logger:    logger.With(logging.Component("fingering"), logging.Layout(l.Name)),
	}, nil
}

// Layout returns the layout the assigner was built for
func (a *Assigner) Layout() *layout.Layout {
	return a.layout
}

// Config returns the validated configuration
func (a *Assigner) Config() Config {
	return a.config
}

// Assemble builds the optimization problem for an event stream without
// solving it
func (a *Assigner) Assemble(events []score.Event) (*Problem, error) {
	return a.assembler.Assemble(events)
}

// Assign assembles, solves and extracts a fingering for the event stream.
// Malformed and unplayable input fails before the solver runs. The returned
// result has passed the hard-constraint check and carries its findings.
func (a *Assigner) Assign(ctx context.Context, events []score.Event) (*Result, error) {
	runID := uuid.New().String()
	logger := a.logger.With(logging.RunID(runID))
	timer := logging.StartTimer(logger, "fingering run", logging.Operation("assign"), logging.Count(len(events)))
	started := time.Now()

	res, err := a.run(ctx, logger, events)
	if err != nil {
		a.recordFailure(err, time.Since(started))
		timer.EndError(err)
		return nil, err
	}
	res.RunID = runID

	if !res.Optimal {
		logger.Warn("labeling decided by heuristic, may be suboptimal",
			logging.Int("rn", res.Stats.RN),
			logging.Int("restarts", res.Stats.Restarts))
	}
	timer.End(
		logging.Int("notes", len(res.Assignments)),
		logging.Float64("cost", res.Cost),
		logging.Bool("optimal", res.Optimal))
	return res, nil
}

func (a *Assigner) run(ctx context.Context, logger logging.Logger, events []score.Event) (*Result, error) {
	assembleStart := time.Now()
	p, err := a.assembler.Assemble(events)
	if err != nil {
		return nil, err
	}
	assembled := time.Since(assembleStart)
	a.recordAssembly(p, assembled)
	logger.Debug("graph assembled",
		logging.Int("nodes", p.Graph.NumNodes()),
		logging.Int("edges", p.Graph.NumEdges()),
		logging.Latency(assembled))

	solveStart := time.Now()
	sol, err := pbqp.Solve(ctx, p.Graph, a.config.Solver)
	if err != nil {
		var inf *pbqp.InfeasibleError
		if errors.As(err, &inf) && len(inf.Nodes) > 0 {
			n := p.Note(inf.Nodes[0])
			logger.Debug("no playable assignment", logging.NodeID(int(n.ID)), logging.Note(n.Note), logging.Tick(n.Start))
		}
		return nil, fmt.Errorf("solve %d notes: %w", len(p.Notes), err)
	}
	solved := time.Since(solveStart)
	a.recordSolve(sol, solved)
	logger.Debug("graph solved",
		logging.Int("r2", sol.Stats.R2),
		logging.Int("search_steps", sol.Stats.SearchSteps),
		logging.Duration("solve_time", solved))

	res, err := Extract(p, sol)
	if err != nil {
		return nil, err
	}

	findings, err := Verify(p, res, a.config.Penalties.DoubledNotes == DoubledShare)
	if err != nil {
		return nil, err
	}
	for _, f := range findings {
		if f.Severity == constraints.Info {
			logger.Debug(f.Message, logging.String("constraint", f.Constraint))
		}
	}
	res.Findings = findings
	return res, nil
}

func (a *Assigner) recordAssembly(p *Problem, d time.Duration) {
	if a.config.Metrics == nil {
		return
	}
	stats := metrics.AssemblyStats{
		Notes:      len(p.Notes),
		Edges:      p.Graph.NumEdges(),
		Relations:  make(map[string]int),
		Candidates: make([]int, len(p.Notes)),
		Duration:   d,
	}
	for _, r := range p.Relations {
		stats.Relations[r.Kind.String()]++
	}
	for i, n := range p.Notes {
		stats.Candidates[i] = len(n.Candidates)
	}
	a.config.Metrics.RecordAssembly(stats)
}

func (a *Assigner) recordSolve(sol *pbqp.Solution, d time.Duration) {
	if a.config.Metrics == nil {
		return
	}
	a.config.Metrics.RecordSolve(metrics.SolveStats{
		Optimal: sol.Optimal,
		Cost:    sol.Cost,
		Reductions: map[string]int{
			"r0": sol.Stats.R0,
			"r1": sol.Stats.R1,
			"r2": sol.Stats.R2,
			"rn": sol.Stats.RN,
		},
		SearchSteps: int64(sol.Stats.SearchSteps),
		Duration:    d,
	})
}

func (a *Assigner) recordFailure(err error, d time.Duration) {
	if a.config.Metrics == nil {
		return
	}
	a.config.Metrics.RecordFailure(FailureReason(err), d)
}

// FailureReason classifies a run error for reporting
func FailureReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return metrics.ReasonCancelled
	case pbqp.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return metrics.ReasonTimeout
	case pbqp.IsInfeasible(err):
		return metrics.ReasonInfeasible
	case IsConfiguration(err):
		return metrics.ReasonConfiguration
	case IsMalformed(err):
		return metrics.ReasonMalformed
	case errors.Is(err, ErrVerification):
		return metrics.ReasonVerification
	default:
		return metrics.ReasonInternal
	}
}
