package constraints

import (
	"fmt"
)

// SharedButtonConstraint checks that simultaneous notes do not share a
// button. With AllowDoubled, two notes of the same pitch may share one reed
// and finger; such sharing and any doubled pitch split across reeds are
// reported as Info.
type SharedButtonConstraint struct {
	AllowDoubled bool
}

// Name returns the constraint name
func (c SharedButtonConstraint) Name() string {
	if c.AllowDoubled {
		return "SharedButton(doubled)"
	}
	return "SharedButton"
}

// Validate reports simultaneous pairs on one button
func (c SharedButtonConstraint) Validate(a AssignmentReader) ([]Violation, error) {
	var violations []Violation

	for _, pair := range a.SimultaneousPairs() {
		x, okX := selected(a, pair[0])
		y, okY := selected(a, pair[1])
		if !okX || !okY {
			continue
		}
		doubled := c.AllowDoubled && a.Pitch(pair[0]) == a.Pitch(pair[1])

		if !x.Control.SameButton(y.Control) {
			if doubled {
				violations = append(violations, Violation{
					Type:       DoubledSplit,
					Severity:   Info,
					Notes:      []int{pair[0], pair[1]},
					Constraint: c.Name(),
					Message: fmt.Sprintf("Doubled %s played on %s and %s",
						a.Pitch(pair[0]), x.Control, y.Control),
				})
			}
			continue
		}

		severity := Error
		if doubled && x == y {
			severity = Info
		}
		violations = append(violations, Violation{
			Type:       SharedButton,
			Severity:   severity,
			Notes:      []int{pair[0], pair[1]},
			Constraint: c.Name(),
			Message: fmt.Sprintf("Notes %d and %d share button %s (%s, %s)",
				pair[0], pair[1], x.Control.Button, x, y),
			Details: map[string]any{
				"button":  x.Control.Button.ID(),
				"doubled": doubled,
			},
		})
	}

	return violations, nil
}
