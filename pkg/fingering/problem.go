package fingering

import (
	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/pbqp"
)

// NoteNode is one played note: its timing, its candidates and their unary
// costs. ID is the solver node and equals the note's position in onset order.
type NoteNode struct {
	ID         pbqp.NodeID
	Note       layout.Note
	Channel    uint8
	Start      int64
	End        int64
	Candidates []Candidate
	Costs      pbqp.Vector
}

// Relation is an edge between two notes, A being the earlier onset
type Relation struct {
	A    pbqp.NodeID
	B    pbqp.NodeID
	Kind RelationKind
	Edge pbqp.EdgeID
}

// Problem is a fully assembled optimization run
type Problem struct {
	Layout    *layout.Layout
	Notes     []*NoteNode
	Relations []Relation
	Graph     *pbqp.Graph
}

// Note returns the node for a solver ID
func (p *Problem) Note(id pbqp.NodeID) *NoteNode {
	return p.Notes[id]
}

// RelationsOf returns the relations of one kind
func (p *Problem) RelationsOf(kind RelationKind) []Relation {
	var out []Relation
	for _, r := range p.Relations {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// SimultaneousPairs lists every pair of notes that sound together,
// including arpeggiated pairs
func (p *Problem) SimultaneousPairs() [][2]int {
	var out [][2]int
	for _, r := range p.Relations {
		if r.Kind == Simultaneous || r.Kind == Arpeggiated {
			out = append(out, [2]int{int(r.A), int(r.B)})
		}
	}
	return out
}
