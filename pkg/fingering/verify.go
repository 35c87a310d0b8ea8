package fingering

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-fingering/pkg/constraints"
	"github.com/dd0wney/cluso-fingering/pkg/layout"
)

// assignmentView exposes a problem and its selections to pkg/constraints
type assignmentView struct {
	problem    *Problem
	selections []int
}

func (v assignmentView) NumNotes() int { return len(v.problem.Notes) }

func (v assignmentView) Pitch(note int) layout.Note { return v.problem.Notes[note].Note }

func (v assignmentView) Options(note int) []constraints.Placement {
	cands := v.problem.Notes[note].Candidates
	out := make([]constraints.Placement, len(cands))
	for i, c := range cands {
		out[i] = constraints.Placement{Control: c.Control, Finger: c.Finger}
	}
	return out
}

func (v assignmentView) Selected(note int) int { return v.selections[note] }

func (v assignmentView) SimultaneousPairs() [][2]int { return v.problem.SimultaneousPairs() }

// Verify re-checks a result against the hard playing constraints. Info and
// Warning findings are returned for reporting; any Error finding fails with
// ErrVerification.
func Verify(p *Problem, r *Result, allowDoubled bool) ([]constraints.Violation, error) {
	view := assignmentView{problem: p, selections: r.Selections()}
	vr, err := constraints.NewPlayabilityValidator(allowDoubled).Validate(view)
	if err != nil {
		return nil, err
	}
	if vr.Valid {
		return vr.Violations, nil
	}

	errs := vr.GetViolationsBySeverity(constraints.Error)
	msgs := make([]string, len(errs))
	for i, v := range errs {
		msgs[i] = v.Message
	}
	return vr.Violations, fmt.Errorf("%w: %s", ErrVerification, strings.Join(msgs, "; "))
}
