package fingering

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-fingering/pkg/validation"
)

// Doubled-note policies for two simultaneous notes of the same pitch
const (
	// DoubledForbid never lets two simultaneous notes share a reed
	DoubledForbid = "forbid"
	// DoubledShare lets same-pitch notes share one reed and finger for free,
	// charging DoubledSplit when they are played on separate reeds instead
	DoubledShare = "share"
)

// Penalties holds every cost magnitude used to build unary vectors and
// relation matrices. Zero disables a rule.
type Penalties struct {
	// Unary
	ColumnDistance float64 `yaml:"column_distance" json:"column_distance" validate:"gte=0"`
	FingerMismatch float64 `yaml:"finger_mismatch" json:"finger_mismatch" validate:"gte=0"`
	PinkyColumn    float64 `yaml:"pinky_column" json:"pinky_column" validate:"gte=0"`
	MaxReach       int     `yaml:"max_reach" json:"max_reach" validate:"gte=0,lte=4"`

	// Simultaneous
	SimSameColumn  float64 `yaml:"sim_same_column" json:"sim_same_column" validate:"gte=0"`
	SimRowCrossing float64 `yaml:"sim_row_crossing" json:"sim_row_crossing" validate:"gte=0"`

	// Sequential
	SeqChange             float64 `yaml:"seq_change" json:"seq_change" validate:"gte=0"`
	SeqHandSwitch         float64 `yaml:"seq_hand_switch" json:"seq_hand_switch" validate:"gte=0"`
	SeqDirectionAndButton float64 `yaml:"seq_direction_and_button" json:"seq_direction_and_button" validate:"gte=0"`
	SeqRowJump            float64 `yaml:"seq_row_jump" json:"seq_row_jump" validate:"gte=0"`
	SeqSameColumn         float64 `yaml:"seq_same_column" json:"seq_same_column" validate:"gte=0"`
	SeqPinkyPair          float64 `yaml:"seq_pinky_pair" json:"seq_pinky_pair" validate:"gte=0"`

	// Doubled notes
	DoubledNotes string  `yaml:"doubled_notes" json:"doubled_notes" validate:"oneof=forbid share"`
	DoubledSplit float64 `yaml:"doubled_split" json:"doubled_split" validate:"gte=0"`
}

// DefaultPenalties returns magnitudes tuned for Anglo C/G playing
func DefaultPenalties() Penalties {
	return Penalties{
		ColumnDistance: 1,
		FingerMismatch: 2,
		PinkyColumn:    1,
		MaxReach:       1,

		SimSameColumn:  3,
		SimRowCrossing: 1,

		SeqChange:             1,
		SeqHandSwitch:         1,
		SeqDirectionAndButton: 1,
		SeqRowJump:            1,
		SeqSameColumn:         3,
		SeqPinkyPair:          3,

		DoubledNotes: DoubledForbid,
		DoubledSplit: 1,
	}
}

// Validate checks every magnitude is usable. Magnitudes must be finite:
// forbidden combinations come from the hard constraints, never a penalty.
func (p Penalties) Validate() error {
	if err := validation.Struct(p); err != nil {
		return fmt.Errorf("penalties: %w", err)
	}
	return validation.NewConfigValidator("penalties").
		Finite("column_distance", p.ColumnDistance).
		Finite("finger_mismatch", p.FingerMismatch).
		Finite("pinky_column", p.PinkyColumn).
		Finite("sim_same_column", p.SimSameColumn).
		Finite("sim_row_crossing", p.SimRowCrossing).
		Finite("seq_change", p.SeqChange).
		Finite("seq_hand_switch", p.SeqHandSwitch).
		Finite("seq_direction_and_button", p.SeqDirectionAndButton).
		Finite("seq_row_jump", p.SeqRowJump).
		Finite("seq_same_column", p.SeqSameColumn).
		Finite("seq_pinky_pair", p.SeqPinkyPair).
		Finite("doubled_split", p.DoubledSplit).
		Validate()
}

// ParsePenalties overlays a YAML document onto the defaults. Keys the
// document omits keep their default value.
func ParsePenalties(data []byte) (Penalties, error) {
	p := DefaultPenalties()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Penalties{}, fmt.Errorf("penalties: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Penalties{}, err
	}
	return p, nil
}

// LoadPenalties reads a penalty file from disk
func LoadPenalties(path string) (Penalties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Penalties{}, fmt.Errorf("read penalties: %w", err)
	}
	return ParsePenalties(data)
}
