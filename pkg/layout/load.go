package layout

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-fingering/pkg/validation"
)

var (
	// ErrInvalidLayout is returned when a layout table is inconsistent
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrUnknownLayout is returned by Builtin for names it does not know
	ErrUnknownLayout = errors.New("unknown layout")
)

// DefaultBuiltin is the layout used when none is named
const DefaultBuiltin = "wheatstone-cg-30"

//go:embed layouts/*.yaml
var builtinFS embed.FS

// file mirrors the on-disk YAML schema
type file struct {
	Name         string       `yaml:"name" validate:"required"`
	Description  string       `yaml:"description"`
	Rows         int          `yaml:"rows" validate:"gte=1,lte=8"`
	Columns      int          `yaml:"columns" validate:"gte=1,lte=12"`
	HomeRow      int          `yaml:"home_row" validate:"gte=0"`
	Hands        handsFile    `yaml:"hands"`
	NaturalReach []reachFile  `yaml:"natural_reach" validate:"dive"`
	Buttons      []buttonFile `yaml:"buttons" validate:"required,min=1,dive"`
}

type handsFile struct {
	Left  handFile `yaml:"left"`
	Right handFile `yaml:"right"`
}

type handFile struct {
	Fingers []string `yaml:"fingers" validate:"required,dive,oneof=index middle ring pinky"`
}

type reachFile struct {
	Button string `yaml:"button" validate:"required"`
	Finger string `yaml:"finger" validate:"required,oneof=index middle ring pinky"`
}

type buttonFile struct {
	ID   string `yaml:"id" validate:"required"`
	Push string `yaml:"push"`
	Pull string `yaml:"pull"`
}

// Parse builds a layout from its YAML description
func Parse(data []byte) (*Layout, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := validation.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	cv := validation.NewConfigValidator("layout "+f.Name).
		RangeInt("home_row", f.HomeRow, 0, f.Rows-1).
		Custom("hands.left.fingers", func() error {
			return checkFingerCount(len(f.Hands.Left.Fingers), f.Columns)
		}).
		Custom("hands.right.fingers", func() error {
			return checkFingerCount(len(f.Hands.Right.Fingers), f.Columns)
		})
	if err := cv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	l := &Layout{
		Name:        f.Name,
		Description: f.Description,
		Rows:        f.Rows,
		Columns:     f.Columns,
		HomeRow:     f.HomeRow,
		reach:       make(map[reachKey]struct{}),
		controls:    make(map[int][]Control),
	}
	for hand, hf := range [2]handFile{f.Hands.Left, f.Hands.Right} {
		for _, name := range hf.Fingers {
			finger, err := ParseFinger(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
			}
			l.homeFingers[hand] = append(l.homeFingers[hand], finger)
		}
	}

	seen := make(map[string]bool)
	for _, bf := range f.Buttons {
		b, err := l.parseButtonID(bf.ID)
		if err != nil {
			return nil, err
		}
		if seen[b.ID()] {
			return nil, fmt.Errorf("%w: button %s listed twice", ErrInvalidLayout, b.ID())
		}
		seen[b.ID()] = true

		sounding := false
		for _, reed := range []struct {
			dir  Direction
			name string
		}{{Push, bf.Push}, {Pull, bf.Pull}} {
			if reed.name == "" {
				continue
			}
			n, err := ParseNote(reed.name)
			if err != nil {
				return nil, fmt.Errorf("%w: button %s: %v", ErrInvalidLayout, b.ID(), err)
			}
			key := n.MIDI()
			if _, ok := l.controls[key]; !ok {
				l.notes = append(l.notes, n)
			}
			l.controls[key] = append(l.controls[key], Control{Button: b, Direction: reed.dir})
			sounding = true
		}
		if !sounding {
			return nil, fmt.Errorf("%w: button %s has no reeds", ErrInvalidLayout, b.ID())
		}
		l.buttons = append(l.buttons, b)
	}

	for _, r := range f.NaturalReach {
		b, err := l.parseButtonID(r.Button)
		if err != nil {
			return nil, err
		}
		if !seen[b.ID()] {
			return nil, fmt.Errorf("%w: natural reach names unknown button %s", ErrInvalidLayout, b.ID())
		}
		finger, err := ParseFinger(r.Finger)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
		l.reach[reachKey{hand: b.Hand, number: b.Number, finger: finger}] = struct{}{}
	}

	slices.SortFunc(l.notes, func(a, b Note) int { return a.MIDI() - b.MIDI() })
	return l, nil
}

func checkFingerCount(got, columns int) error {
	if got != columns {
		return fmt.Errorf("%d home fingers for %d columns", got, columns)
	}
	return nil
}

// parseButtonID reads IDs like "L07" or "R12"
func (l *Layout) parseButtonID(id string) (Button, error) {
	id = strings.TrimSpace(id)
	if len(id) < 2 {
		return Button{}, fmt.Errorf("%w: malformed button id %q", ErrInvalidLayout, id)
	}
	hand, err := parseHand(id[:1])
	if err != nil {
		return Button{}, fmt.Errorf("%w: button %q: %v", ErrInvalidLayout, id, err)
	}
	number, err := strconv.Atoi(id[1:])
	if err != nil || number < 1 || number > l.Rows*l.Columns {
		return Button{}, fmt.Errorf("%w: button %q outside the %dx%d grid", ErrInvalidLayout, id, l.Rows, l.Columns)
	}
	return l.ButtonAt(hand, number), nil
}

// Load reads a layout file from disk
func Load(filename string) (*Layout, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return Parse(data)
}

// Builtin returns one of the layouts compiled into the binary
func Builtin(name string) (*Layout, error) {
	data, err := builtinFS.ReadFile(path.Join("layouts", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownLayout, name, strings.Join(BuiltinNames(), ", "))
	}
	return Parse(data)
}

// BuiltinNames lists the compiled-in layouts in lexical order
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("layouts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}
