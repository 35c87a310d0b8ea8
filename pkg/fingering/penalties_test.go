package fingering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPenalties_Valid(t *testing.T) {
	require.NoError(t, DefaultPenalties().Validate())
	require.NoError(t, DefaultConfig().Validate())
}

func TestParsePenalties_OverlaysDefaults(t *testing.T) {
	p, err := ParsePenalties([]byte(`
seq_hand_switch: 4
doubled_notes: share
max_reach: 2
`))
	require.NoError(t, err)

	want := DefaultPenalties()
	want.SeqHandSwitch = 4
	want.DoubledNotes = DoubledShare
	want.MaxReach = 2
	assert.Equal(t, want, p)
}

func TestParsePenalties_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "seq_change: [1"},
		{"negative cost", "finger_mismatch: -1"},
		{"reach too far", "max_reach: 9"},
		{"unknown policy", "doubled_notes: merge"},
		{"infinite cost", "seq_row_jump: .inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePenalties([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadPenalties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "penalties.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pinky_column: 0\n"), 0o600))

	p, err := LoadPenalties(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.PinkyColumn)
	assert.Equal(t, DefaultPenalties().SeqPinkyPair, p.SeqPinkyPair)

	_, err = LoadPenalties(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
