package fingering

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-fingering/pkg/layout"
)

var (
	// ErrUnplayableNote is wrapped by ConfigurationError
	ErrUnplayableNote = errors.New("note not playable on layout")

	// ErrMalformedInput is wrapped by MalformedInputError
	ErrMalformedInput = errors.New("malformed event stream")

	// ErrVerification means a solved assignment broke a hard constraint. It
	// indicates a bug in cost construction, never a property of the input.
	ErrVerification = errors.New("assignment failed verification")
)

// ConfigurationError reports a note the active layout has no reed for
type ConfigurationError struct {
	Note   layout.Note
	Tick   int64
	Index  int // event index, -1 when not raised from a stream
	Layout string
}

func (e *ConfigurationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s on layout %q", ErrUnplayableNote, e.Note, e.Layout)
	}
	return fmt.Sprintf("%s: %s at tick %d (event %d) on layout %q", ErrUnplayableNote, e.Note, e.Tick, e.Index, e.Layout)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrUnplayableNote
}

// MalformedInputError reports an inconsistency in the event stream
type MalformedInputError struct {
	Index  int
	Tick   int64
	Note   layout.Note
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: event %d (%s at tick %d): %s", ErrMalformedInput, e.Index, e.Note, e.Tick, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

// IsConfiguration reports whether err is or wraps a ConfigurationError
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrUnplayableNote)
}

// IsMalformed reports whether err is or wraps a MalformedInputError
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}
