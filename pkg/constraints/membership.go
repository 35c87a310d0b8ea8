package constraints

import (
	"fmt"
)

// CandidateMembershipConstraint checks every note selected one of its own
// candidates
type CandidateMembershipConstraint struct{}

// Name returns the constraint name
func (CandidateMembershipConstraint) Name() string {
	return "CandidateMembership"
}

// Validate reports notes whose selection is outside their option list
func (c CandidateMembershipConstraint) Validate(a AssignmentReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	for i := 0; i < a.NumNotes(); i++ {
		if _, ok := selected(a, i); ok {
			continue
		}
		violations = append(violations, Violation{
			Type:       SelectionOutOfRange,
			Severity:   Error,
			Notes:      []int{i},
			Constraint: c.Name(),
			Message: fmt.Sprintf("Note %d (%s) selected option %d of %d",
				i, a.Pitch(i), a.Selected(i), len(a.Options(i))),
			Details: map[string]any{
				"selected": a.Selected(i),
				"options":  len(a.Options(i)),
			},
		})
	}

	return violations, nil
}
