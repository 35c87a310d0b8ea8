package constraints

import (
	"github.com/dd0wney/cluso-fingering/pkg/layout"
)

// Placement is a reed plus the finger pressing it
type Placement struct {
	Control layout.Control
	Finger  layout.Finger
}

func (p Placement) String() string {
	return p.Control.String() + "/" + p.Finger.String()
}

// AssignmentReader defines the read-only view of a solved run needed for
// constraint validation. Notes are addressed by their position in onset order.
type AssignmentReader interface {
	// NumNotes returns how many notes were assigned
	NumNotes() int
	// Pitch returns the note's pitch
	Pitch(note int) layout.Note
	// Options returns the candidates the note was allowed to choose from
	Options(note int) []Placement
	// Selected returns the index of the chosen option
	Selected(note int) int
	// SimultaneousPairs lists every pair of notes that sound together
	SimultaneousPairs() [][2]int
}

// Severity indicates the importance of a violation
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ViolationType categorizes the type of constraint violation
type ViolationType int

const (
	SelectionOutOfRange ViolationType = iota
	BellowsMismatch
	FingerCollision
	SharedButton
	DoubledSplit
)

func (vt ViolationType) String() string {
	switch vt {
	case SelectionOutOfRange:
		return "SelectionOutOfRange"
	case BellowsMismatch:
		return "BellowsMismatch"
	case FingerCollision:
		return "FingerCollision"
	case SharedButton:
		return "SharedButton"
	case DoubledSplit:
		return "DoubledSplit"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (vt ViolationType) MarshalText() ([]byte, error) {
	return []byte(vt.String()), nil
}

// Violation represents a constraint violation
type Violation struct {
	Type       ViolationType  `json:"type"`
	Severity   Severity       `json:"severity"`
	Notes      []int          `json:"notes"`
	Constraint string         `json:"constraint"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
}

// Constraint is the interface that all constraint types must implement.
type Constraint interface {
	// Validate checks the constraint against the assignment
	// Returns a list of violations (empty if valid)
	Validate(a AssignmentReader) ([]Violation, error)

	// Name returns a human-readable name for the constraint
	Name() string
}

// selected returns the note's chosen placement, or false if the selection is
// out of range
func selected(a AssignmentReader, note int) (Placement, bool) {
	opts := a.Options(note)
	sel := a.Selected(note)
	if sel < 0 || sel >= len(opts) {
		return Placement{}, false
	}
	return opts[sel], true
}
