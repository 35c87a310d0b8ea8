package score

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/dd0wney/cluso-fingering/pkg/layout"
)

// ReadMIDI decodes a Standard MIDI File. Note events from every track are
// merged on absolute tick, keeping file order among events that share a tick,
// and a note-on with velocity 0 counts as a note-off.
func ReadMIDI(r io.Reader) (*Score, error) {
	file, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScore, err)
	}

	s := &Score{TicksPerBeat: DefaultTicksPerBeat}
	if mt, ok := file.TimeFormat.(smf.MetricTicks); ok {
		s.TicksPerBeat = int(mt.Resolution())
	}

	for _, track := range file.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)

			var ch, key, vel uint8
			msg := midi.Message(ev.Message)
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				s.Events = append(s.Events, Event{Tick: tick, Kind: NoteOn, Note: layout.NoteFromMIDI(int(key)), Channel: ch})
			case msg.GetNoteEnd(&ch, &key):
				s.Events = append(s.Events, Event{Tick: tick, Kind: NoteOff, Note: layout.NoteFromMIDI(int(key)), Channel: ch})
			}
		}
	}

	slices.SortStableFunc(s.Events, func(a, b Event) int {
		return cmp.Compare(a.Tick, b.Tick)
	})
	return s, nil
}

// LoadMIDI reads a Standard MIDI File from disk
func LoadMIDI(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read score: %w", err)
	}
	s, err := ReadMIDI(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s, nil
}

// WriteMIDI encodes the events as a single-track Standard MIDI File. Events
// must already be in chronological order.
func WriteMIDI(w io.Writer, s *Score) error {
	file := smf.New()
	if s.TicksPerBeat > 0 {
		file.TimeFormat = smf.MetricTicks(s.TicksPerBeat)
	}

	var track smf.Track
	var last int64
	for i, e := range s.Events {
		if e.Tick < last {
			return fmt.Errorf("%w: event %d at tick %d precedes tick %d", ErrInvalidScore, i, e.Tick, last)
		}
		key := uint8(e.Note.MIDI())
		delta := uint32(e.Tick - last)
		if e.Kind == NoteOn {
			track.Add(delta, midi.NoteOn(e.Channel, key, 100))
		} else {
			track.Add(delta, midi.NoteOff(e.Channel, key))
		}
		last = e.Tick
	}
	track.Close(0)

	if err := file.Add(track); err != nil {
		return fmt.Errorf("write score: %w", err)
	}
	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("write score: %w", err)
	}
	return nil
}
