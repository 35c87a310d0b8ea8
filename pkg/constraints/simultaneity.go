package constraints

import (
	"fmt"
)

// BellowsConstraint checks that notes sounding together agree on bellows
// direction
type BellowsConstraint struct{}

// Name returns the constraint name
func (BellowsConstraint) Name() string {
	return "Bellows"
}

// Validate reports simultaneous pairs played push against pull
func (c BellowsConstraint) Validate(a AssignmentReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	for _, pair := range a.SimultaneousPairs() {
		x, okX := selected(a, pair[0])
		y, okY := selected(a, pair[1])
		if !okX || !okY {
			// CandidateMembershipConstraint reports these
			continue
		}
		if x.Control.Direction == y.Control.Direction {
			continue
		}
		violations = append(violations, Violation{
			Type:       BellowsMismatch,
			Severity:   Error,
			Notes:      []int{pair[0], pair[1]},
			Constraint: c.Name(),
			Message: fmt.Sprintf("Notes %d and %d sound together on %s and %s",
				pair[0], pair[1], x.Control, y.Control),
		})
	}

	return violations, nil
}

// FingerCollisionConstraint checks that one finger never holds two buttons
type FingerCollisionConstraint struct{}

// Name returns the constraint name
func (FingerCollisionConstraint) Name() string {
	return "FingerCollision"
}

// Validate reports simultaneous pairs using one finger on different buttons
func (c FingerCollisionConstraint) Validate(a AssignmentReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	for _, pair := range a.SimultaneousPairs() {
		x, okX := selected(a, pair[0])
		y, okY := selected(a, pair[1])
		if !okX || !okY {
			continue
		}
		if x.Control.Hand() != y.Control.Hand() || x.Finger != y.Finger || x.Control.SameButton(y.Control) {
			continue
		}
		violations = append(violations, Violation{
			Type:       FingerCollision,
			Severity:   Error,
			Notes:      []int{pair[0], pair[1]},
			Constraint: c.Name(),
			Message: fmt.Sprintf("Notes %d and %d both need the %s %s finger (%s, %s)",
				pair[0], pair[1], x.Control.Hand().Name(), x.Finger, x.Control, y.Control),
			Details: map[string]any{
				"hand":   x.Control.Hand().Name(),
				"finger": x.Finger.String(),
			},
		})
	}

	return violations, nil
}
