package fingering

import (
	"fmt"

	"github.com/dd0wney/cluso-fingering/pkg/constraints"
	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/pbqp"
)

// Assignment is the chosen reed and finger for one note
type Assignment struct {
	Index     int            `json:"index"`
	Note      layout.Note    `json:"note"`
	Channel   uint8          `json:"channel"`
	Start     int64          `json:"start"`
	End       int64          `json:"end"`
	Control   layout.Control `json:"control"`
	Finger    layout.Finger  `json:"finger"`
	Option    int            `json:"option"`
	Options   int            `json:"options"`
	UnaryCost pbqp.Cost      `json:"unary_cost"`
}

// Candidate returns the assignment as a candidate value
func (a Assignment) Candidate() Candidate {
	return Candidate{Control: a.Control, Finger: a.Finger}
}

// Group collects the notes that start on the same tick
type Group struct {
	Tick  int64 `json:"tick"`
	Notes []int `json:"notes"`
}

// Result is the outcome of one run
type Result struct {
	RunID       string       `json:"run_id"`
	Layout      string       `json:"layout"`
	Assignments []Assignment `json:"assignments"`
	Groups      []Group      `json:"groups"`
	Cost        pbqp.Cost    `json:"cost"`
	Optimal     bool         `json:"optimal"`
	Stats       pbqp.Stats   `json:"stats"`
	// Findings are the non-fatal playability notes from verification
	Findings []constraints.Violation `json:"findings,omitempty"`
}

// Selections returns the raw solution mapping: candidate index per note
func (r *Result) Selections() []int {
	out := make([]int, len(r.Assignments))
	for i, a := range r.Assignments {
		out[i] = a.Option
	}
	return out
}

// Directions returns the bellows direction of every note in onset order
func (r *Result) Directions() []layout.Direction {
	out := make([]layout.Direction, len(r.Assignments))
	for i, a := range r.Assignments {
		out[i] = a.Control.Direction
	}
	return out
}

// GroupAssignments returns the assignments of one group
func (r *Result) GroupAssignments(g Group) []Assignment {
	out := make([]Assignment, len(g.Notes))
	for i, n := range g.Notes {
		out[i] = r.Assignments[n]
	}
	return out
}

// Extract maps a solution back onto the notes of the problem
func Extract(p *Problem, sol *pbqp.Solution) (*Result, error) {
	if len(sol.Selections) != len(p.Notes) {
		return nil, fmt.Errorf("solution covers %d notes, problem has %d", len(sol.Selections), len(p.Notes))
	}

	res := &Result{
		Layout:      p.Layout.Name,
		Assignments: make([]Assignment, len(p.Notes)),
		Cost:        sol.Cost,
		Optimal:     sol.Optimal,
		Stats:       sol.Stats,
	}

	for i, n := range p.Notes {
		sel := sol.Selections[i]
		if sel < 0 || sel >= len(n.Candidates) {
			return nil, fmt.Errorf("note %d: selection %d outside %d candidates", i, sel, len(n.Candidates))
		}
		c := n.Candidates[sel]
		res.Assignments[i] = Assignment{
			Index:     i,
			Note:      n.Note,
			Channel:   n.Channel,
			Start:     n.Start,
			End:       n.End,
			Control:   c.Control,
			Finger:    c.Finger,
			Option:    sel,
			Options:   len(n.Candidates),
			UnaryCost: n.Costs[sel],
		}

		// Notes are in onset order, so equal onsets are adjacent.
		if len(res.Groups) == 0 || res.Groups[len(res.Groups)-1].Tick != n.Start {
			res.Groups = append(res.Groups, Group{Tick: n.Start})
		}
		last := &res.Groups[len(res.Groups)-1]
		last.Notes = append(last.Notes, i)
	}

	return res, nil
}
