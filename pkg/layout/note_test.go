package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		in   string
		want Note
	}{
		{"G3", N(G, 3)},
		{"C#4", N(CSharp, 4)},
		{"Db4", N(CSharp, 4)},
		{"Csharp4", N(CSharp, 4)},
		{"Bflat3", N(BFlat, 3)},
		{"Bb3", N(BFlat, 3)},
		{"bb3", N(BFlat, 3)},
		{" f#5 ", N(FSharp, 5)},
		{"B#3", N(C, 4)},
		{"Cb4", N(B, 3)},
		{"C-1", N(C, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNote(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNote_Invalid(t *testing.T) {
	for _, in := range []string{"", "H3", "C", "C#", "Cx4", "4"} {
		_, err := ParseNote(in)
		assert.ErrorIs(t, err, ErrInvalidNote, "input %q", in)
	}
}

func TestNote_MIDIRoundTrip(t *testing.T) {
	assert.Equal(t, 60, N(C, 4).MIDI())
	assert.Equal(t, 55, MustParseNote("G3").MIDI())
	assert.Equal(t, 0, N(C, -1).MIDI())

	for key := 0; key < 128; key++ {
		assert.Equal(t, key, NoteFromMIDI(key).MIDI())
	}
}

func TestNote_String(t *testing.T) {
	assert.Equal(t, "C#4", N(CSharp, 4).String())
	assert.Equal(t, "Bb3", MustParseNote("A#3").String())
	assert.Equal(t, "G5", NoteFromMIDI(79).String())
}

func TestNote_YAML(t *testing.T) {
	var doc struct {
		Notes []Note `yaml:"notes"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("notes: [G3, Bflat3, C#5]"), &doc))
	assert.Equal(t, []Note{N(G, 3), N(BFlat, 3), N(CSharp, 5)}, doc.Notes)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Bb3")

	err = yaml.Unmarshal([]byte("notes: [Q9]"), &doc)
	assert.ErrorIs(t, err, ErrInvalidNote)
}
