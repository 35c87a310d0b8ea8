package fingering

import (
	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/pbqp"
)

// RelationKind tells why two notes are connected
type RelationKind int

const (
	// Simultaneous notes sound together
	Simultaneous RelationKind = iota
	// Sequential notes follow one another
	Sequential
	// Arpeggiated notes overlap and also follow one another
	Arpeggiated
)

func (k RelationKind) String() string {
	switch k {
	case Simultaneous:
		return "simultaneous"
	case Sequential:
		return "sequential"
	case Arpeggiated:
		return "arpeggiated"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k RelationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// RelationBuilder produces pairwise cost matrices. Rows index the first
// note's candidates and columns the second's.
type RelationBuilder struct {
	layout    *layout.Layout
	penalties Penalties
}

// NewRelationBuilder creates a builder for one layout and penalty set
func NewRelationBuilder(l *layout.Layout, p Penalties) *RelationBuilder {
	return &RelationBuilder{layout: l, penalties: p}
}

// Costs dispatches on the relation kind
func (r *RelationBuilder) Costs(kind RelationKind, a, b *NoteNode) pbqp.Matrix {
	switch kind {
	case Sequential:
		return r.SequentialCosts(a, b)
	case Arpeggiated:
		return r.CombinedCosts(a, b)
	default:
		return r.SimultaneousCosts(a, b)
	}
}

// SimultaneousCosts forbids opposite bellows directions, one finger on two
// buttons, and two notes on one reed (unless doubled notes may share), then
// charges same-column and row-crossing stretches within a hand.
func (r *RelationBuilder) SimultaneousCosts(a, b *NoteNode) pbqp.Matrix {
	samePitch := a.Note == b.Note
	m := pbqp.NewMatrix(len(a.Candidates), len(b.Candidates))
	for i, ca := range a.Candidates {
		for j, cb := range b.Candidates {
			m.Set(i, j, r.simultaneous(ca, cb, samePitch))
		}
	}
	return m
}

func (r *RelationBuilder) simultaneous(ca, cb Candidate, samePitch bool) pbqp.Cost {
	p := r.penalties
	a, b := ca.Control, cb.Control
	share := p.DoubledNotes == DoubledShare && samePitch

	if a.Direction != b.Direction {
		return pbqp.Inf
	}
	if a.SameButton(b) {
		if share && ca.Finger == cb.Finger {
			return 0
		}
		return pbqp.Inf
	}
	if a.Hand() != b.Hand() {
		if share {
			return p.DoubledSplit
		}
		return 0
	}
	if ca.Finger == cb.Finger {
		return pbqp.Inf
	}

	var cost pbqp.Cost
	if a.Column() == b.Column() {
		cost += p.SimSameColumn
	}
	if r.rowJump(a.Button, b.Button) {
		cost += p.SimRowCrossing
	}
	if share {
		cost += p.DoubledSplit
	}
	return cost
}

// SequentialCosts charges any change of reed other than reversing the bellows
// on one button, plus hand switches, changing direction and button together,
// top-to-bottom row jumps, reusing a column or finger on another button, and
// moving between the two pinky columns.
func (r *RelationBuilder) SequentialCosts(a, b *NoteNode) pbqp.Matrix {
	m := pbqp.NewMatrix(len(a.Candidates), len(b.Candidates))
	for i, ca := range a.Candidates {
		for j, cb := range b.Candidates {
			m.Set(i, j, r.sequential(ca, cb))
		}
	}
	return m
}

func (r *RelationBuilder) sequential(ca, cb Candidate) pbqp.Cost {
	p := r.penalties
	a, b := ca.Control, cb.Control
	sameButton := a.SameButton(b)

	var cost pbqp.Cost
	if !sameButton {
		cost += p.SeqChange
		if a.Direction != b.Direction {
			cost += p.SeqDirectionAndButton
		}
	}
	if a.Hand() != b.Hand() {
		return cost + p.SeqHandSwitch
	}

	if r.rowJump(a.Button, b.Button) {
		cost += p.SeqRowJump
	}
	if !sameButton {
		if a.Column() == b.Column() || ca.Finger == cb.Finger {
			cost += p.SeqSameColumn
		}
		if a.Column() != b.Column() &&
			r.layout.IsPinkyColumn(a.Hand(), a.Column()) &&
			r.layout.IsPinkyColumn(b.Hand(), b.Column()) {
			cost += p.SeqPinkyPair
		}
	}
	return cost
}

// CombinedCosts is the sum of the simultaneous and sequential matrices
func (r *RelationBuilder) CombinedCosts(a, b *NoteNode) pbqp.Matrix {
	m := r.SimultaneousCosts(a, b)
	// Shapes match by construction.
	_ = m.Add(r.SequentialCosts(a, b))
	return m
}

// rowJump reports a same-hand move between the top and bottom rows
func (r *RelationBuilder) rowJump(a, b layout.Button) bool {
	if a.Hand != b.Hand || r.layout.Rows < 2 {
		return false
	}
	return (r.layout.IsTopRow(a) && r.layout.IsBottomRow(b)) ||
		(r.layout.IsBottomRow(a) && r.layout.IsTopRow(b))
}
