package score

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/validation"
)

var (
	// ErrInvalidScore is returned for fixture files that cannot be turned into events
	ErrInvalidScore = errors.New("invalid score")

	// ErrUnsupportedFormat is returned by Load for unknown file extensions
	ErrUnsupportedFormat = errors.New("unsupported score format")
)

// DefaultTicksPerBeat is assumed when a fixture does not say
const DefaultTicksPerBeat = 480

type fixture struct {
	Title        string         `yaml:"title"`
	TicksPerBeat int            `yaml:"ticks_per_beat" validate:"gte=0"`
	Notes        []fixtureNote  `yaml:"notes" validate:"dive"`
	Events       []fixtureEvent `yaml:"events" validate:"dive"`
}

type fixtureNote struct {
	Note    layout.Note `yaml:"note"`
	Start   int64       `yaml:"start" validate:"gte=0"`
	Length  int64       `yaml:"length" validate:"gt=0"`
	Channel uint8       `yaml:"channel" validate:"lte=15"`
}

type fixtureEvent struct {
	Tick    int64        `yaml:"tick" validate:"gte=0"`
	On      *layout.Note `yaml:"on"`
	Off     *layout.Note `yaml:"off"`
	Channel uint8        `yaml:"channel" validate:"lte=15"`
}

// Parse reads a YAML fixture. A fixture lists either notes with a start and
// length, which are expanded into a sorted event stream, or raw events, which
// are kept in the order written.
func Parse(data []byte) (*Score, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScore, err)
	}
	if err := validation.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScore, err)
	}
	if len(f.Notes) > 0 && len(f.Events) > 0 {
		return nil, fmt.Errorf("%w: use either notes or events, not both", ErrInvalidScore)
	}

	s := &Score{Title: f.Title, TicksPerBeat: f.TicksPerBeat}
	if s.TicksPerBeat == 0 {
		s.TicksPerBeat = DefaultTicksPerBeat
	}

	for _, n := range f.Notes {
		s.Events = append(s.Events,
			Event{Tick: n.Start, Kind: NoteOn, Note: n.Note, Channel: n.Channel},
			Event{Tick: n.Start + n.Length, Kind: NoteOff, Note: n.Note, Channel: n.Channel},
		)
	}
	Sort(s.Events)

	for i, e := range f.Events {
		switch {
		case e.On != nil && e.Off == nil:
			s.Events = append(s.Events, Event{Tick: e.Tick, Kind: NoteOn, Note: *e.On, Channel: e.Channel})
		case e.Off != nil && e.On == nil:
			s.Events = append(s.Events, Event{Tick: e.Tick, Kind: NoteOff, Note: *e.Off, Channel: e.Channel})
		default:
			return nil, fmt.Errorf("%w: event %d must set exactly one of on or off", ErrInvalidScore, i)
		}
	}

	return s, nil
}

// LoadFixture reads a YAML fixture from disk
func LoadFixture(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read score: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Title == "" {
		s.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Load reads a score, choosing the reader from the file extension
func Load(path string) (*Score, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadFixture(path)
	case ".mid", ".midi", ".smf":
		return LoadMIDI(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
