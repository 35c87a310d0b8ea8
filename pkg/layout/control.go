package layout

import (
	"fmt"
	"strings"
)

// Hand identifies which side of the instrument a button sits on
type Hand int

const (
	Left Hand = iota
	Right
)

// String returns "L" or "R"
func (h Hand) String() string {
	if h == Right {
		return "R"
	}
	return "L"
}

// Name returns the lower-case hand name used in layout files
func (h Hand) Name() string {
	if h == Right {
		return "right"
	}
	return "left"
}

func parseHand(s string) (Hand, error) {
	switch strings.ToLower(s) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown hand %q", s)
}

// Direction is the bellows direction a reed sounds in
type Direction int

const (
	Push Direction = iota
	Pull
)

func (d Direction) String() string {
	if d == Pull {
		return "Pull"
	}
	return "Push"
}

// Finger is a playing finger. The zero value means no finger is assigned.
type Finger int

const (
	NoFinger Finger = iota
	Index
	Middle
	Ring
	Pinky
)

var fingerNames = map[Finger]string{
	NoFinger: "none",
	Index:    "index",
	Middle:   "middle",
	Ring:     "ring",
	Pinky:    "pinky",
}

func (f Finger) String() string {
	if name, ok := fingerNames[f]; ok {
		return name
	}
	return fmt.Sprintf("finger(%d)", int(f))
}

// ParseFinger parses a finger name such as "ring"
func ParseFinger(s string) (Finger, error) {
	for f, name := range fingerNames {
		if f != NoFinger && strings.EqualFold(name, s) {
			return f, nil
		}
	}
	return NoFinger, fmt.Errorf("unknown finger %q", s)
}

// Fingers lists the playing fingers in index-to-pinky order
func Fingers() []Finger {
	return []Finger{Index, Middle, Ring, Pinky}
}

// Button is a physical button. Number is 1-based within its hand and
// determines Row and Column.
type Button struct {
	Hand   Hand
	Row    int
	Column int
	Number int
}

// ID renders the button as e.g. "L07"
func (b Button) ID() string {
	return fmt.Sprintf("%s%02d", b.Hand, b.Number)
}

func (b Button) String() string {
	return b.ID()
}

// Control is one reed: a button played in one bellows direction
type Control struct {
	Button    Button
	Direction Direction
}

// String renders the control as e.g. "L07Push"
func (c Control) String() string {
	return c.Button.ID() + c.Direction.String()
}

// Hand returns the hand that plays the control
func (c Control) Hand() Hand { return c.Button.Hand }

// Row returns the control's button row, 0 being the top row
func (c Control) Row() int { return c.Button.Row }

// Column returns the control's button column, 0 being the outermost column
func (c Control) Column() int { return c.Button.Column }

// SameButton reports whether both controls use the same physical button
func (c Control) SameButton(o Control) bool {
	return c.Button.Hand == o.Button.Hand && c.Button.Number == o.Button.Number
}

// MarshalText implements encoding.TextMarshaler
func (c Control) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// MarshalText implements encoding.TextMarshaler
func (f Finger) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// MarshalText implements encoding.TextMarshaler
func (h Hand) MarshalText() ([]byte, error) {
	return []byte(h.Name()), nil
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(d.String())), nil
}
