package fingering

import (
	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/pbqp"
)

// Candidate is one way to play a note: a reed and the finger pressing it
type Candidate struct {
	Control layout.Control `json:"control"`
	Finger  layout.Finger  `json:"finger"`
}

func (c Candidate) String() string {
	return c.Control.String() + "/" + c.Finger.String()
}

// Generator produces the candidates for a note and their unary costs
type Generator struct {
	layout    *layout.Layout
	penalties Penalties
}

// NewGenerator creates a generator for one layout and penalty set
func NewGenerator(l *layout.Layout, p Penalties) *Generator {
	return &Generator{layout: l, penalties: p}
}

// Candidates lists every admissible (reed, finger) pair for the note in layout
// order, the home finger first for each reed, together with a parallel unary
// cost vector. A note the layout cannot play yields a ConfigurationError.
func (g *Generator) Candidates(n layout.Note) ([]Candidate, pbqp.Vector, error) {
	controls := g.layout.Controls(n)
	if len(controls) == 0 {
		return nil, nil, &ConfigurationError{Note: n, Index: -1, Layout: g.layout.Name}
	}

	var cands []Candidate
	var costs pbqp.Vector
	for _, c := range controls {
		for _, f := range g.fingersFor(c.Button) {
			cands = append(cands, Candidate{Control: c, Finger: f})
			costs = append(costs, g.unaryCost(c, f))
		}
	}
	return cands, costs, nil
}

// fingersFor returns the fingers that can reach the button, home finger first
func (g *Generator) fingersFor(b layout.Button) []layout.Finger {
	home := g.layout.HomeFinger(b)
	fingers := []layout.Finger{home}
	for _, f := range layout.Fingers() {
		if f == home {
			continue
		}
		if g.layout.IsNaturalReach(b, f) ||
			g.layout.FingerColumnDistance(b.Hand, f, b.Column) <= g.penalties.MaxReach {
			fingers = append(fingers, f)
		}
	}
	return fingers
}

func (g *Generator) unaryCost(c layout.Control, f layout.Finger) pbqp.Cost {
	p := g.penalties
	b := c.Button
	var cost pbqp.Cost

	// A marked natural reach is costed as if the finger were at home.
	if !g.layout.IsNaturalReach(b, f) {
		dist := g.layout.FingerColumnDistance(b.Hand, f, b.Column)
		cost += p.ColumnDistance * pbqp.Cost(dist)
		if f != g.layout.HomeFinger(b) {
			cost += p.FingerMismatch
		}
	}
	if g.layout.IsPinkyColumn(b.Hand, b.Column) {
		cost += p.PinkyColumn
	}
	return cost
}
