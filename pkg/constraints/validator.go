package constraints

import (
	"time"
)

// ValidationResult contains the results of validating an assignment against constraints
type ValidationResult struct {
	Valid      bool        // True if no Error-severity violations found
	Violations []Violation // List of all violations, including Info and Warning
	CheckedAt  time.Time   // When validation was performed
}

// GetViolationsBySeverity returns violations filtered by severity level
func (vr *ValidationResult) GetViolationsBySeverity(severity Severity) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Severity == severity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// GetViolationsByType returns violations filtered by type
func (vr *ValidationResult) GetViolationsByType(violationType ViolationType) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Type == violationType {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Validator manages a set of constraints and validates assignments against them
type Validator struct {
	constraints []Constraint
}

// NewValidator creates a new empty validator
func NewValidator() *Validator {
	return &Validator{
		constraints: make([]Constraint, 0),
	}
}

// NewPlayabilityValidator returns a validator holding every hard playing
// constraint. allowDoubled mirrors the doubled-note sharing policy.
func NewPlayabilityValidator(allowDoubled bool) *Validator {
	v := NewValidator()
	v.AddConstraints([]Constraint{
		CandidateMembershipConstraint{},
		BellowsConstraint{},
		FingerCollisionConstraint{},
		SharedButtonConstraint{AllowDoubled: allowDoubled},
	})
	return v
}

// AddConstraint adds a constraint to the validator
func (v *Validator) AddConstraint(constraint Constraint) {
	v.constraints = append(v.constraints, constraint)
}

// AddConstraints adds multiple constraints to the validator
func (v *Validator) AddConstraints(constraints []Constraint) {
	v.constraints = append(v.constraints, constraints...)
}

// Validate runs all constraints against the assignment and returns the results
func (v *Validator) Validate(a AssignmentReader) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:      true,
		Violations: make([]Violation, 0),
		CheckedAt:  time.Now(),
	}

	for _, constraint := range v.constraints {
		violations, err := constraint.Validate(a)
		if err != nil {
			return nil, err
		}

		for _, violation := range violations {
			if violation.Severity == Error {
				result.Valid = false
			}
		}
		result.Violations = append(result.Violations, violations...)
	}

	return result, nil
}

// GetConstraints returns all constraints in the validator
func (v *Validator) GetConstraints() []Constraint {
	return v.constraints
}

// ClearConstraints removes all constraints from the validator
func (v *Validator) ClearConstraints() {
	v.constraints = make([]Constraint, 0)
}
