package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidNote is returned when a note name cannot be parsed
var ErrInvalidNote = errors.New("invalid note")

// PitchClass is a semitone within the octave, C = 0 through B = 11
type PitchClass int

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	BFlat
	B
)

var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}

var letterClass = map[byte]PitchClass{
	'C': C, 'D': D, 'E': E, 'F': F, 'G': G, 'A': A, 'B': B,
}

// String returns the conventional concertina spelling
func (p PitchClass) String() string {
	return pitchNames[((int(p)%12)+12)%12]
}

// Note is a pitch class in a specific octave (scientific pitch notation, C4 = middle C)
type Note struct {
	Class  PitchClass
	Octave int
}

// N builds a note, e.g. N(G, 3)
func N(class PitchClass, octave int) Note {
	return Note{Class: class, Octave: octave}
}

// MIDI returns the MIDI key number (C4 = 60)
func (n Note) MIDI() int {
	return (n.Octave+1)*12 + int(n.Class)
}

// NoteFromMIDI converts a MIDI key number to a note
func NoteFromMIDI(key int) Note {
	return Note{Class: PitchClass(((key % 12) + 12) % 12), Octave: floorDiv(key, 12) - 1}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// String renders the note as e.g. "C#4" or "Bb3"
func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Class, n.Octave)
}

// ParseNote accepts names such as "G3", "C#4", "Db4", "Csharp4", "Bflat3" and "Bb3".
func ParseNote(s string) (Note, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Note{}, fmt.Errorf("%w: empty name", ErrInvalidNote)
	}

	class, ok := letterClass[strings.ToUpper(s[:1])[0]]
	if !ok {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, raw)
	}
	rest := s[1:]

	shift := 0
	lower := strings.ToLower(rest)
	switch {
	case strings.HasPrefix(lower, "sharp"):
		shift, rest = 1, rest[len("sharp"):]
	case strings.HasPrefix(lower, "flat"):
		shift, rest = -1, rest[len("flat"):]
	case strings.HasPrefix(rest, "#"), strings.HasPrefix(rest, "♯"):
		shift, rest = 1, strings.TrimLeft(rest, "#♯")
	case strings.HasPrefix(rest, "b"), strings.HasPrefix(rest, "♭"):
		shift, rest = -1, strings.TrimLeft(rest, "b♭")
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Note{}, fmt.Errorf("%w: %q has no octave", ErrInvalidNote, raw)
	}

	// Shifting across B/C moves the octave (B#3 is C4, Cb4 is B3).
	return NoteFromMIDI(N(class, octave).MIDI() + shift), nil
}

// MustParseNote is ParseNote for literals known to be valid
func MustParseNote(s string) Note {
	n, err := ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

// ParseNotes parses a list of note names
func ParseNotes(names ...string) ([]Note, error) {
	out := make([]Note, 0, len(names))
	for _, name := range names {
		n, err := ParseNote(name)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// MarshalText implements encoding.TextMarshaler
func (n Note) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (n *Note) UnmarshalText(text []byte) error {
	parsed, err := ParseNote(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// UnmarshalYAML decodes a note from a scalar name
func (n *Note) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a note name", ErrInvalidNote, value.Line)
	}
	return n.UnmarshalText([]byte(value.Value))
}

// MarshalYAML encodes a note as its name
func (n Note) MarshalYAML() (any, error) {
	return n.String(), nil
}
