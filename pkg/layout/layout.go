package layout

import (
	"slices"
)

// Layout describes one instrument variant: which reeds sound which notes and
// how the buttons sit under the hands. Layouts are immutable once built.
type Layout struct {
	Name        string
	Description string
	Rows        int
	Columns     int
	HomeRow     int

	homeFingers [2][]Finger
	reach       map[reachKey]struct{}
	buttons     []Button
	controls    map[int][]Control
	notes       []Note
}

type reachKey struct {
	hand   Hand
	number int
	finger Finger
}

// Controls returns the reeds that sound the note, in layout order. The
// result is nil when the layout cannot play the note.
func (l *Layout) Controls(n Note) []Control {
	return slices.Clone(l.controls[n.MIDI()])
}

// Plays reports whether at least one reed sounds the note
func (l *Layout) Plays(n Note) bool {
	return len(l.controls[n.MIDI()]) > 0
}

// Notes returns every playable note in ascending pitch order
func (l *Layout) Notes() []Note {
	return slices.Clone(l.notes)
}

// Buttons returns every button with at least one reed, left hand first
func (l *Layout) Buttons() []Button {
	return slices.Clone(l.buttons)
}

// HomeFinger returns the finger that covers the button's column at rest
func (l *Layout) HomeFinger(b Button) Finger {
	cols := l.homeFingers[b.Hand]
	if b.Column < 0 || b.Column >= len(cols) {
		return NoFinger
	}
	return cols[b.Column]
}

// FingerColumnDistance returns how many columns the finger has to travel from
// its nearest home column to reach column. A finger with no home column on
// that hand is reported as Columns away.
func (l *Layout) FingerColumnDistance(hand Hand, finger Finger, column int) int {
	best := l.Columns
	for c, home := range l.homeFingers[hand] {
		if home != finger {
			continue
		}
		d := c - column
		if d < 0 {
			d = -d
		}
		if d < best {
			best = d
		}
	}
	return best
}

// IsPinkyColumn reports whether only the pinky covers the column
func (l *Layout) IsPinkyColumn(hand Hand, column int) bool {
	cols := l.homeFingers[hand]
	return column >= 0 && column < len(cols) && cols[column] == Pinky
}

// IsNaturalReach reports whether the layout marks the button as more naturally
// played by finger than by the column's home finger.
func (l *Layout) IsNaturalReach(b Button, finger Finger) bool {
	_, ok := l.reach[reachKey{hand: b.Hand, number: b.Number, finger: finger}]
	return ok
}

// IsTopRow reports whether the button is on the row furthest from the player
func (l *Layout) IsTopRow(b Button) bool {
	return b.Row == 0
}

// IsBottomRow reports whether the button is on the row nearest the player
func (l *Layout) IsBottomRow(b Button) bool {
	return b.Row == l.Rows-1
}

// Button looks up a button by its ID, e.g. "R07"
func (l *Layout) Button(id string) (Button, bool) {
	for _, b := range l.buttons {
		if b.ID() == id {
			return b, true
		}
	}
	return Button{}, false
}

// ButtonAt converts a hand and 1-based button number into row and column
func (l *Layout) ButtonAt(hand Hand, number int) Button {
	return Button{
		Hand:   hand,
		Row:    (number - 1) / l.Columns,
		Column: (number - 1) % l.Columns,
		Number: number,
	}
}

// Sounds returns the note a reed plays, if the button has a reed in that
// direction
func (l *Layout) Sounds(c Control) (Note, bool) {
	for _, n := range l.notes {
		if slices.Contains(l.controls[n.MIDI()], c) {
			return n, true
		}
	}
	return Note{}, false
}
