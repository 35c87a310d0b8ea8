package constraints

import (
	"encoding/json"
	"testing"

	"github.com/dd0wney/cluso-fingering/pkg/layout"
)

// fakeAssignment is an in-memory AssignmentReader
type fakeAssignment struct {
	pitches   []layout.Note
	options   [][]Placement
	selection []int
	pairs     [][2]int
}

func (f *fakeAssignment) NumNotes() int               { return len(f.pitches) }
func (f *fakeAssignment) Pitch(i int) layout.Note     { return f.pitches[i] }
func (f *fakeAssignment) Options(i int) []Placement   { return f.options[i] }
func (f *fakeAssignment) Selected(i int) int          { return f.selection[i] }
func (f *fakeAssignment) SimultaneousPairs() [][2]int { return f.pairs }

func place(hand layout.Hand, number int, dir layout.Direction, finger layout.Finger) Placement {
	return Placement{
		Control: layout.Control{
			Button:    layout.Button{Hand: hand, Row: (number - 1) / 5, Column: (number - 1) % 5, Number: number},
			Direction: dir,
		},
		Finger: finger,
	}
}

// twoNotes builds a simultaneous pair, each note with a single option
func twoNotes(a, b Placement, pitchA, pitchB string) *fakeAssignment {
	return &fakeAssignment{
		pitches:   []layout.Note{layout.MustParseNote(pitchA), layout.MustParseNote(pitchB)},
		options:   [][]Placement{{a}, {b}},
		selection: []int{0, 0},
		pairs:     [][2]int{{0, 1}},
	}
}

// TestValidator_AllValid tests a playable chord
func TestValidator_AllValid(t *testing.T) {
	a := twoNotes(
		place(layout.Left, 7, layout.Push, layout.Pinky),
		place(layout.Right, 6, layout.Push, layout.Index),
		"G3", "C5",
	)

	result, err := NewPlayabilityValidator(false).Validate(a)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if !result.Valid {
		t.Errorf("Expected validation to pass, got %+v", result.Violations)
	}
	if len(result.Violations) != 0 {
		t.Errorf("Expected 0 violations, got %d", len(result.Violations))
	}
	if result.CheckedAt.IsZero() {
		t.Error("Expected CheckedAt to be set")
	}
}

// TestBellowsConstraint tests push against pull
func TestBellowsConstraint(t *testing.T) {
	a := twoNotes(
		place(layout.Left, 7, layout.Push, layout.Pinky),
		place(layout.Right, 7, layout.Pull, layout.Middle),
		"G3", "D5",
	)

	violations, err := BellowsConstraint{}.Validate(a)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("Expected 1 violation, got %d", len(violations))
	}
	if violations[0].Type != BellowsMismatch || violations[0].Severity != Error {
		t.Errorf("Unexpected violation %+v", violations[0])
	}
	if len(violations[0].Notes) != 2 {
		t.Errorf("Expected both notes named, got %v", violations[0].Notes)
	}
}

// TestFingerCollisionConstraint tests one finger on two buttons
func TestFingerCollisionConstraint(t *testing.T) {
	a := twoNotes(
		place(layout.Left, 8, layout.Push, layout.Ring),
		place(layout.Left, 13, layout.Push, layout.Ring),
		"C4", "G4",
	)

	violations, err := FingerCollisionConstraint{}.Validate(a)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("Expected 1 violation, got %d", len(violations))
	}
	if violations[0].Details["finger"] != "ring" {
		t.Errorf("Expected ring finger in details, got %v", violations[0].Details)
	}

	// Same finger on different hands is fine
	b := twoNotes(
		place(layout.Left, 8, layout.Push, layout.Ring),
		place(layout.Right, 8, layout.Push, layout.Ring),
		"C4", "G5",
	)
	violations, _ = FingerCollisionConstraint{}.Validate(b)
	if len(violations) != 0 {
		t.Errorf("Expected no violations across hands, got %d", len(violations))
	}
}

// TestSharedButtonConstraint tests reed sharing with and without doubled notes
func TestSharedButtonConstraint(t *testing.T) {
	shared := place(layout.Right, 8, layout.Push, layout.Ring)

	tests := []struct {
		name         string
		allowDoubled bool
		a, b         Placement
		pitchB       string
		wantType     ViolationType
		wantSeverity Severity
		wantCount    int
	}{
		{"forbidden", false, shared, shared, "G5", SharedButton, Error, 1},
		{"doubled shared", true, shared, shared, "G5", SharedButton, Info, 1},
		{"doubled other finger", true, shared, place(layout.Right, 8, layout.Push, layout.Middle), "G5", SharedButton, Error, 1},
		{"doubled split", true, shared, place(layout.Right, 11, layout.Push, layout.Index), "G5", DoubledSplit, Info, 1},
		{"distinct pitches", true, shared, place(layout.Right, 7, layout.Push, layout.Middle), "E5", SharedButton, Error, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := twoNotes(tt.a, tt.b, "G5", tt.pitchB)
			violations, err := SharedButtonConstraint{AllowDoubled: tt.allowDoubled}.Validate(a)
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if len(violations) != tt.wantCount {
				t.Fatalf("Expected %d violations, got %d", tt.wantCount, len(violations))
			}
			if tt.wantCount == 0 {
				return
			}
			if violations[0].Type != tt.wantType {
				t.Errorf("Type = %v, want %v", violations[0].Type, tt.wantType)
			}
			if violations[0].Severity != tt.wantSeverity {
				t.Errorf("Severity = %v, want %v", violations[0].Severity, tt.wantSeverity)
			}
		})
	}
}

// TestCandidateMembershipConstraint tests out-of-range selections
func TestCandidateMembershipConstraint(t *testing.T) {
	a := twoNotes(
		place(layout.Left, 7, layout.Push, layout.Pinky),
		place(layout.Right, 6, layout.Push, layout.Index),
		"G3", "C5",
	)
	a.selection = []int{0, 3}

	result, err := NewPlayabilityValidator(false).Validate(a)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if result.Valid {
		t.Error("Expected validation to fail")
	}
	// The pair checks skip the broken note, so only membership reports.
	if len(result.Violations) != 1 {
		t.Fatalf("Expected 1 violation, got %d", len(result.Violations))
	}
	if got := result.GetViolationsByType(SelectionOutOfRange); len(got) != 1 || got[0].Notes[0] != 1 {
		t.Errorf("Expected note 1 out of range, got %+v", got)
	}
}

// TestValidator_InfoDoesNotInvalidate tests severity handling
func TestValidator_InfoDoesNotInvalidate(t *testing.T) {
	shared := place(layout.Right, 8, layout.Push, layout.Ring)
	a := twoNotes(shared, shared, "G5", "G5")

	result, err := NewPlayabilityValidator(true).Validate(a)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.Valid {
		t.Errorf("Expected shared doubled note to be valid, got %+v", result.Violations)
	}
	if len(result.GetViolationsBySeverity(Info)) != 1 {
		t.Errorf("Expected 1 info violation, got %d", len(result.GetViolationsBySeverity(Info)))
	}
	if len(result.GetViolationsBySeverity(Error)) != 0 {
		t.Error("Expected no error violations")
	}
}

// TestValidator_ManageConstraints tests adding and clearing constraints
func TestValidator_ManageConstraints(t *testing.T) {
	v := NewValidator()
	v.AddConstraint(BellowsConstraint{})
	v.AddConstraints([]Constraint{FingerCollisionConstraint{}, SharedButtonConstraint{}})

	if len(v.GetConstraints()) != 3 {
		t.Errorf("Expected 3 constraints, got %d", len(v.GetConstraints()))
	}

	v.ClearConstraints()
	if len(v.GetConstraints()) != 0 {
		t.Errorf("Expected 0 constraints after clear, got %d", len(v.GetConstraints()))
	}

	if NewPlayabilityValidator(true).GetConstraints()[3].Name() != "SharedButton(doubled)" {
		t.Error("Expected doubled-aware shared button constraint")
	}
}

func TestSeverityAndTypeStrings(t *testing.T) {
	if Error.String() != "Error" || Severity(9).String() != "Unknown" {
		t.Error("Unexpected severity names")
	}
	if FingerCollision.String() != "FingerCollision" || ViolationType(42).String() != "Unknown" {
		t.Error("Unexpected violation type names")
	}
}

func TestViolation_JSON(t *testing.T) {
	data, err := json.Marshal(Violation{Type: BellowsMismatch, Severity: Error, Notes: []int{0, 1}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"type":"BellowsMismatch","severity":"Error","notes":[0,1],"constraint":"","message":""}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
