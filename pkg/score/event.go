// Package score turns fixture files and Standard MIDI Files into the
// chronological note-on/note-off stream the fingering engine consumes.
package score

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dd0wney/cluso-fingering/pkg/layout"
)

// Kind distinguishes note-on from note-off events
type Kind int

const (
	NoteOn Kind = iota
	NoteOff
)

func (k Kind) String() string {
	if k == NoteOff {
		return "off"
	}
	return "on"
}

// Event is one note-on or note-off at an absolute tick
type Event struct {
	Tick    int64
	Kind    Kind
	Note    layout.Note
	Channel uint8
}

func (e Event) String() string {
	return fmt.Sprintf("%d %s %s ch%d", e.Tick, e.Kind, e.Note, e.Channel)
}

// On builds a note-on event on channel 0
func On(tick int64, n layout.Note) Event {
	return Event{Tick: tick, Kind: NoteOn, Note: n}
}

// Off builds a note-off event on channel 0
func Off(tick int64, n layout.Note) Event {
	return Event{Tick: tick, Kind: NoteOff, Note: n}
}

// Score is a titled event stream
type Score struct {
	Title        string
	TicksPerBeat int
	Events       []Event
}

// NoteCount returns the number of note-on events
func (s *Score) NoteCount() int {
	n := 0
	for _, e := range s.Events {
		if e.Kind == NoteOn {
			n++
		}
	}
	return n
}

// FilterChannel returns a copy of the score holding only one channel's events
func (s *Score) FilterChannel(ch uint8) *Score {
	out := &Score{Title: s.Title, TicksPerBeat: s.TicksPerBeat}
	for _, e := range s.Events {
		if e.Channel == ch {
			out.Events = append(out.Events, e)
		}
	}
	return out
}

// Sort orders events by tick, putting note-offs before note-ons that share a
// tick. Events that compare equal keep their relative order.
func Sort(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		if c := cmp.Compare(a.Tick, b.Tick); c != 0 {
			return c
		}
		return int(b.Kind) - int(a.Kind)
	})
}

// Sequence plays the notes one after another from tick 0, each lasting length
// ticks.
func Sequence(length int64, notes ...layout.Note) []Event {
	events := make([]Event, 0, 2*len(notes))
	for i, n := range notes {
		start := int64(i) * length
		events = append(events, Off(start+length, n), On(start, n))
	}
	Sort(events)
	return events
}

// Chord sounds every note together from start for length ticks
func Chord(start, length int64, notes ...layout.Note) []Event {
	events := make([]Event, 0, 2*len(notes))
	for _, n := range notes {
		events = append(events, On(start, n))
	}
	for _, n := range notes {
		events = append(events, Off(start+length, n))
	}
	return events
}

// Shift moves every event later by delta ticks
func Shift(events []Event, delta int64) []Event {
	out := slices.Clone(events)
	for i := range out {
		out[i].Tick += delta
	}
	return out
}

// Merge interleaves several event lists into one chronological stream
func Merge(parts ...[]Event) []Event {
	var out []Event
	for _, p := range parts {
		out = append(out, p...)
	}
	Sort(out)
	return out
}
