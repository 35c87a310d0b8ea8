package fingering

import (
	"fmt"
	"slices"

	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/pbqp"
	"github.com/dd0wney/cluso-fingering/pkg/score"
	"github.com/dd0wney/cluso-fingering/pkg/validation"
)

// AssemblerConfig controls how the event stream becomes a graph
type AssemblerConfig struct {
	// GapThreshold is how many ticks after its note-off a note still links
	// sequentially to a new onset
	GapThreshold int64 `yaml:"gap_threshold" json:"gap_threshold"`

	// ArpeggioLinks adds the sequential costs to the simultaneous edge between
	// a new note and the still-sounding note whose onset came just before it
	ArpeggioLinks bool `yaml:"arpeggio_links" json:"arpeggio_links"`
}

// DefaultAssemblerConfig links notes separated by up to a sixteenth at 480 PPQ
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		GapThreshold:  120,
		ArpeggioLinks: true,
	}
}

// Validate checks the configuration
func (c AssemblerConfig) Validate() error {
	return validation.NewConfigValidator("AssemblerConfig").
		NonNegative("GapThreshold", c.GapThreshold).
		Validate()
}

// Assembler turns an event stream into a Problem
type Assembler struct {
	layout    *layout.Layout
	generator *Generator
	relations *RelationBuilder
	config    AssemblerConfig
}

// NewAssembler creates an assembler for one layout
func NewAssembler(l *layout.Layout, p Penalties, cfg AssemblerConfig) *Assembler {
	return &Assembler{
		layout:    l,
		generator: NewGenerator(l, p),
		relations: NewRelationBuilder(l, p),
		config:    cfg,
	}
}

type voice struct {
	channel uint8
	key     int
}

// scan validates the stream and resolves every note's extent. closes maps
// each note-off event to the note it ends.
func (a *Assembler) scan(events []score.Event) ([]*NoteNode, map[int]int, error) {
	var notes []*NoteNode
	closes := make(map[int]int)
	sounding := make(map[voice][]int)
	var last int64

	for i, e := range events {
		if e.Tick < 0 {
			return nil, nil, &MalformedInputError{Index: i, Tick: e.Tick, Note: e.Note, Reason: "negative tick"}
		}
		if i > 0 && e.Tick < last {
			return nil, nil, &MalformedInputError{Index: i, Tick: e.Tick, Note: e.Note,
				Reason: fmt.Sprintf("tick goes back from %d", last)}
		}
		last = e.Tick

		v := voice{channel: e.Channel, key: e.Note.MIDI()}
		switch e.Kind {
		case score.NoteOn:
			cands, costs, err := a.generator.Candidates(e.Note)
			if err != nil {
				return nil, nil, &ConfigurationError{Note: e.Note, Tick: e.Tick, Index: i, Layout: a.layout.Name}
			}
			id := len(notes)
			notes = append(notes, &NoteNode{
				ID:         pbqp.NodeID(id),
				Note:       e.Note,
				Channel:    e.Channel,
				Start:      e.Tick,
				End:        -1,
				Candidates: cands,
				Costs:      costs,
			})
			sounding[v] = append(sounding[v], id)

		case score.NoteOff:
			queue := sounding[v]
			if len(queue) == 0 {
				return nil, nil, &MalformedInputError{Index: i, Tick: e.Tick, Note: e.Note,
					Reason: "note-off without a sounding note-on"}
			}
			notes[queue[0]].End = e.Tick
			closes[i] = queue[0]
			sounding[v] = queue[1:]

		default:
			return nil, nil, &MalformedInputError{Index: i, Tick: e.Tick, Note: e.Note,
				Reason: fmt.Sprintf("unknown event kind %d", e.Kind)}
		}
	}

	// Notes still sounding at the end of the stream stop with it.
	for _, n := range notes {
		if n.End < 0 {
			n.End = last
		}
	}
	return notes, closes, nil
}

// Assemble builds the graph. Every note-on becomes a node; it gets a
// simultaneous edge to each sounding note and a sequential edge from each
// note that ended at most GapThreshold ticks earlier and has not yet been
// followed by an onset at an earlier tick. Nothing is built if the
// stream is malformed or holds an unplayable note.
func (a *Assembler) Assemble(events []score.Event) (*Problem, error) {
	notes, closes, err := a.scan(events)
	if err != nil {
		return nil, err
	}

	p := &Problem{Layout: a.layout, Notes: notes, Graph: pbqp.NewGraph()}
	for _, n := range notes {
		if _, err := p.Graph.AddNode(n.Costs); err != nil {
			return nil, fmt.Errorf("add note %d: %w", n.ID, err)
		}
	}

	var live, recent []int
	prevOnset := -1
	next := 0
	// followed is the tick of the last onset before the current one. Notes
	// that ended by then already have their successor.
	followed, onsetTick := int64(-1), int64(-1)
	for i, e := range events {
		if e.Kind == score.NoteOff {
			id := closes[i]
			live = slices.DeleteFunc(live, func(n int) bool { return n == id })
			recent = append(recent, id)
			continue
		}

		id := next
		next++

		if e.Tick != onsetTick {
			followed, onsetTick = onsetTick, e.Tick
		}
		recent = slices.DeleteFunc(recent, func(r int) bool {
			end := notes[r].End
			return end <= followed || e.Tick-end > a.config.GapThreshold
		})

		for _, l := range live {
			kind := Simultaneous
			if a.config.ArpeggioLinks && l == prevOnset && a.arpeggiated(notes[l], e.Tick) {
				kind = Arpeggiated
			}
			if err := a.link(p, l, id, kind); err != nil {
				return nil, err
			}
		}
		for _, r := range recent {
			if err := a.link(p, r, id, Sequential); err != nil {
				return nil, err
			}
		}

		live = append(live, id)
		prevOnset = id
	}

	return p, nil
}

func (a *Assembler) arpeggiated(prev *NoteNode, tick int64) bool {
	return prev.Start < tick && tick-prev.Start <= a.config.GapThreshold
}

func (a *Assembler) link(p *Problem, from, to int, kind RelationKind) error {
	m := a.relations.Costs(kind, p.Notes[from], p.Notes[to])
	edge, err := p.Graph.AddEdge(pbqp.NodeID(from), pbqp.NodeID(to), m)
	if err != nil {
		return fmt.Errorf("link notes %d and %d: %w", from, to, err)
	}
	p.Relations = append(p.Relations, Relation{
		A:    pbqp.NodeID(from),
		B:    pbqp.NodeID(to),
		Kind: kind,
		Edge: edge,
	})
	return nil
}
