package fingering

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/pbqp"
	"github.com/dd0wney/cluso-fingering/pkg/score"
)

func notes(names ...string) []layout.Note {
	out := make([]layout.Note, len(names))
	for i, n := range names {
		out[i] = layout.MustParseNote(n)
	}
	return out
}

func newAssembler(t *testing.T, cfg AssemblerConfig) *Assembler {
	t.Helper()
	return NewAssembler(wheatstone(t), DefaultPenalties(), cfg)
}

type pair struct {
	a, b int
	kind RelationKind
}

func relationPairs(p *Problem) []pair {
	out := make([]pair, len(p.Relations))
	for i, r := range p.Relations {
		out[i] = pair{int(r.A), int(r.B), r.Kind}
	}
	return out
}

func TestAssemble_Chord(t *testing.T) {
	a := newAssembler(t, DefaultAssemblerConfig())

	p, err := a.Assemble(score.Chord(0, 480, notes("G3", "B3", "D4", "F4")...))
	require.NoError(t, err)

	require.Len(t, p.Notes, 4)
	assert.Equal(t, 4, p.Graph.NumNodes())
	assert.Equal(t, 6, p.Graph.NumEdges())
	assert.Len(t, p.RelationsOf(Simultaneous), 6)
	assert.Empty(t, p.RelationsOf(Sequential))
	assert.Len(t, p.SimultaneousPairs(), 6)

	for i, n := range p.Notes {
		assert.Equal(t, pbqp.NodeID(i), n.ID)
		assert.Equal(t, int64(0), n.Start)
		assert.Equal(t, int64(480), n.End)
		assert.Equal(t, len(n.Candidates), p.Graph.NumOptions(n.ID))
	}
}

func TestAssemble_Melody(t *testing.T) {
	a := newAssembler(t, DefaultAssemblerConfig())
	want := []pair{
		{0, 1, Sequential},
		{1, 2, Sequential},
		{2, 3, Sequential},
		{3, 4, Sequential},
	}

	// Note lengths at and below the gap must not reach past the next onset
	for _, length := range []int64{480, 240, 120, 60, 1} {
		t.Run(fmt.Sprint(length), func(t *testing.T) {
			p, err := a.Assemble(score.Sequence(length, notes("C5", "D5", "E5", "F5", "G5")...))
			require.NoError(t, err)

			// Each note links only to the one just before it
			assert.Equal(t, want, relationPairs(p))
		})
	}
}

func TestAssemble_ShortNotesBeforeChord(t *testing.T) {
	ns := notes("C4", "D4", "F4", "A4")
	events := score.Merge(
		score.Chord(0, 60, ns[0]),
		score.Chord(60, 60, ns[1]),
		score.Chord(120, 240, ns[2], ns[3]),
	)

	p, err := newAssembler(t, DefaultAssemblerConfig()).Assemble(events)
	require.NoError(t, err)
	assert.Equal(t, []pair{
		{0, 1, Sequential},
		{1, 2, Sequential},
		{2, 3, Simultaneous},
		{1, 3, Sequential},
	}, relationPairs(p), "both chord notes follow D4, neither follows C4")
}

func TestAssemble_GapThreshold(t *testing.T) {
	events := score.Merge(
		score.Chord(0, 480, notes("C4")...),
		score.Chord(700, 480, notes("D4")...),
	)

	p, err := newAssembler(t, DefaultAssemblerConfig()).Assemble(events)
	require.NoError(t, err)
	assert.Empty(t, p.Relations, "a 220 tick rest exceeds the default gap")

	cfg := DefaultAssemblerConfig()
	cfg.GapThreshold = 300
	p, err = newAssembler(t, cfg).Assemble(events)
	require.NoError(t, err)
	assert.Equal(t, []pair{{0, 1, Sequential}}, relationPairs(p))
}

func TestAssemble_Arpeggio(t *testing.T) {
	c4, e4, g4 := layout.MustParseNote("C4"), layout.MustParseNote("E4"), layout.MustParseNote("G4")
	events := []score.Event{
		score.On(0, c4),
		score.On(60, e4),
		score.On(100, g4),
		score.Off(480, c4),
		score.Off(480, e4),
		score.Off(480, g4),
	}

	p, err := newAssembler(t, DefaultAssemblerConfig()).Assemble(events)
	require.NoError(t, err)
	assert.Equal(t, []pair{
		{0, 1, Arpeggiated},
		{0, 2, Simultaneous},
		{1, 2, Arpeggiated},
	}, relationPairs(p))
	assert.Len(t, p.SimultaneousPairs(), 3)

	cfg := DefaultAssemblerConfig()
	cfg.ArpeggioLinks = false
	p, err = newAssembler(t, cfg).Assemble(events)
	require.NoError(t, err)
	assert.Len(t, p.RelationsOf(Simultaneous), 3)
	assert.Empty(t, p.RelationsOf(Arpeggiated))
}

func TestAssemble_MixedTexture(t *testing.T) {
	// A held E4 under a two-note melody
	e5, b4, e4 := layout.MustParseNote("E5"), layout.MustParseNote("B4"), layout.MustParseNote("E4")
	events := []score.Event{
		score.On(0, e4),
		score.On(0, e5),
		score.Off(480, e5),
		score.On(480, b4),
		score.Off(960, b4),
		score.Off(960, e4),
	}

	p, err := newAssembler(t, DefaultAssemblerConfig()).Assemble(events)
	require.NoError(t, err)
	assert.Equal(t, []pair{
		{0, 1, Simultaneous},
		{0, 2, Simultaneous},
		{1, 2, Sequential},
	}, relationPairs(p))
}

func TestAssemble_RepeatedPitch(t *testing.T) {
	a := newAssembler(t, DefaultAssemblerConfig())
	c4 := layout.MustParseNote("C4")

	// Overlapping notes on one key close in first-in first-out order
	events := []score.Event{
		score.On(0, c4),
		score.On(100, c4),
		score.Off(200, c4),
		score.Off(300, c4),
	}
	p, err := a.Assemble(events)
	require.NoError(t, err)
	assert.Equal(t, int64(200), p.Notes[0].End)
	assert.Equal(t, int64(300), p.Notes[1].End)

	// A note left sounding ends with the stream
	events = []score.Event{score.On(0, c4), score.On(240, layout.MustParseNote("E4")), score.Off(480, c4)}
	p, err = a.Assemble(events)
	require.NoError(t, err)
	assert.Equal(t, int64(480), p.Notes[1].End)
}

func TestAssemble_Malformed(t *testing.T) {
	c4, d4 := layout.MustParseNote("C4"), layout.MustParseNote("D4")

	tests := []struct {
		name   string
		events []score.Event
		index  int
	}{
		{"off without on", []score.Event{score.On(0, c4), score.Off(100, d4)}, 1},
		{"tick goes back", []score.Event{score.On(100, c4), score.On(50, d4)}, 1},
		{"negative tick", []score.Event{score.On(-1, c4)}, 0},
		{"unknown kind", []score.Event{{Tick: 0, Kind: score.Kind(9), Note: c4}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAssembler(t, DefaultAssemblerConfig()).Assemble(tt.events)
			require.Error(t, err)
			assert.True(t, IsMalformed(err))

			var mErr *MalformedInputError
			require.True(t, errors.As(err, &mErr))
			assert.Equal(t, tt.index, mErr.Index)
		})
	}
}

func TestAssemble_Unplayable(t *testing.T) {
	events := score.Sequence(480, notes("C4", "D4", "C2", "E4")...)

	_, err := newAssembler(t, DefaultAssemblerConfig()).Assemble(events)
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
	assert.False(t, IsMalformed(err))

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "C2", cfgErr.Note.String())
	assert.Equal(t, int64(960), cfgErr.Tick)
	assert.Equal(t, 4, cfgErr.Index)
}

func TestAssemble_Empty(t *testing.T) {
	p, err := newAssembler(t, DefaultAssemblerConfig()).Assemble(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Notes)
	assert.Equal(t, 0, p.Graph.NumNodes())
}

func TestAssemblerConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultAssemblerConfig().Validate())
	assert.Error(t, AssemblerConfig{GapThreshold: -1}.Validate())
}
