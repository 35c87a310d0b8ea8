package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-fingering/pkg/constraints"
	"github.com/dd0wney/cluso-fingering/pkg/fingering"
	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/logging"
	"github.com/dd0wney/cluso-fingering/pkg/metrics"
	"github.com/dd0wney/cluso-fingering/pkg/parallel"
	"github.com/dd0wney/cluso-fingering/pkg/score"
	"github.com/dd0wney/cluso-fingering/pkg/validation"
)

// loadLayout resolves a layout file or built-in name
func loadLayout(name, file string) (*layout.Layout, error) {
	if file != "" {
		return layout.Load(file)
	}
	return layout.Builtin(name)
}

func loadPenalties(file string) (fingering.Penalties, error) {
	if file == "" {
		return fingering.DefaultPenalties(), nil
	}
	return fingering.LoadPenalties(file)
}

// validateSolveFlags checks the flags that need no file access
func validateSolveFlags(f solveFlags) error {
	cv := validation.NewConfigValidator("solve").
		OneOf("format", f.format, []string{"text", "json"}).
		RangeInt("channel", f.channel, -1, 15).
		MinInt("jobs", f.jobs, 1)
	if f.layoutFile == "" {
		cv.Required("layout", f.layoutName)
	}
	return cv.Validate()
}

// solveConfig applies the command-line overrides to the defaults
func solveConfig(f solveFlags) (fingering.Config, error) {
	cfg := fingering.DefaultConfig()

	p, err := loadPenalties(f.penaltiesFile)
	if err != nil {
		return cfg, err
	}
	if f.doubled != "" {
		if err := validation.Var("doubled", f.doubled, "oneof=forbid share"); err != nil {
			return cfg, err
		}
		p.DoubledNotes = f.doubled
	}
	cfg.Penalties = p

	if f.gap >= 0 {
		cfg.Assembler.GapThreshold = f.gap
	}
	if f.noArpeggio {
		cfg.Assembler.ArpeggioLinks = false
	}
	if f.exhaustive > 0 {
		cfg.Solver.ExhaustiveLimit = f.exhaustive
	}
	if f.maxSteps > 0 {
		cfg.Solver.MaxSearchSteps = f.maxSteps
	}
	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid --timeout: %w", err)
		}
		cfg.Solver.Timeout = d
	}

	cfg.Logger = logging.DefaultLogger()
	return cfg, nil
}

// scoreRun is the outcome for one score of a batch
type scoreRun struct {
	path     string
	title    string
	result   *fingering.Result
	findings []constraints.Violation
}

func runSolve(cmd *cobra.Command, paths []string, f solveFlags) error {
	if err := validateSolveFlags(f); err != nil {
		return err
	}

	l, err := loadLayout(f.layoutName, f.layoutFile)
	if err != nil {
		return err
	}
	cfg, err := solveConfig(f)
	if err != nil {
		return err
	}
	reg := metrics.NewRegistry()
	cfg.Metrics = reg

	assigner, err := fingering.NewAssigner(l, cfg)
	if err != nil {
		return err
	}

	pool, err := parallel.NewWorkerPool(min(f.jobs, len(paths)), cfg.Logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	if f.showMetrics {
		defer func() { _ = reg.WriteText(cmd.ErrOrStderr()) }()
	}

	runs, errs := parallel.Map(ctx, pool, len(paths), func(ctx context.Context, i int) (scoreRun, error) {
		return solveScore(ctx, assigner, paths[i], f)
	})

	out := cmd.OutOrStdout()
	var failed []error
	for i, run := range runs {
		if errs != nil && errs[i] != nil {
			if len(paths) == 1 {
				return errs[i]
			}
			failed = append(failed, fmt.Errorf("%s: %w", paths[i], errs[i]))
			continue
		}
		if err := writeRun(out, f.format, run, len(paths) > 1); err != nil {
			return err
		}
	}
	return errors.Join(failed...)
}

// solveScore loads, filters and solves one score
func solveScore(ctx context.Context, assigner *fingering.Assigner, path string, f solveFlags) (scoreRun, error) {
	s, err := score.Load(path)
	if err != nil {
		return scoreRun{}, err
	}
	if logger := assigner.Config().Logger; logger != nil {
		logger.Debug("score loaded", logging.Path(path), logging.Count(s.NoteCount()))
	}
	if f.channel >= 0 {
		s = s.FilterChannel(uint8(f.channel))
	}

	res, err := assigner.Assign(ctx, s.Events)
	if err != nil {
		return scoreRun{}, err
	}
	run := scoreRun{path: path, title: s.Title, result: res}
	if f.showFindings {
		run.findings = res.Findings
	}
	return run, nil
}

func writeRun(out io.Writer, format string, run scoreRun, batch bool) error {
	if format == "json" {
		var path string
		if batch {
			path = run.path
		}
		res := *run.result
		res.Findings = run.findings
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Path  string `json:"path,omitempty"`
			Title string `json:"title,omitempty"`
			*fingering.Result
		}{path, run.title, &res})
	}

	title := run.title
	if batch && title == "" {
		title = run.path
	}
	fmt.Fprint(out, renderResult(title, run.result))
	if len(run.findings) > 0 {
		fmt.Fprint(out, renderFindings(run.findings))
	}
	return nil
}

// cmdContext keeps a command runnable outside Execute, as in tests
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
