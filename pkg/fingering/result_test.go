package fingering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-fingering/pkg/constraints"
	"github.com/dd0wney/cluso-fingering/pkg/pbqp"
	"github.com/dd0wney/cluso-fingering/pkg/score"
)

func assembleChord(t *testing.T, names ...string) *Problem {
	t.Helper()
	p, err := newAssembler(t, DefaultAssemblerConfig()).Assemble(score.Chord(0, 480, notes(names...)...))
	require.NoError(t, err)
	return p
}

func TestExtract(t *testing.T) {
	events := score.Merge(
		score.Chord(0, 480, notes("G3", "B3")...),
		score.Shift(score.Sequence(480, notes("C5", "D5")...), 480),
	)
	p, err := newAssembler(t, DefaultAssemblerConfig()).Assemble(events)
	require.NoError(t, err)
	require.Len(t, p.Notes, 4)

	sol := &pbqp.Solution{
		Selections: []int{
			option(t, p.Notes[0], "L06Pull/pinky"),
			option(t, p.Notes[1], "L07Pull/ring"),
			option(t, p.Notes[2], "R06Push/index"),
			option(t, p.Notes[3], "R07Pull/middle"),
		},
		Cost:    7,
		Optimal: true,
	}

	res, err := Extract(p, sol)
	require.NoError(t, err)

	assert.Equal(t, "wheatstone-cg-30", res.Layout)
	assert.Equal(t, pbqp.Cost(7), res.Cost)
	assert.Equal(t, sol.Selections, res.Selections())

	first := res.Assignments[0]
	assert.Equal(t, "G3", first.Note.String())
	assert.Equal(t, "L06Pull", first.Control.String())
	assert.Equal(t, "L06Pull/pinky", first.Candidate().String())
	assert.Equal(t, len(p.Notes[0].Candidates), first.Options)
	assert.Equal(t, p.Notes[0].Costs[first.Option], first.UnaryCost)

	assert.Equal(t, []Group{
		{Tick: 0, Notes: []int{0, 1}},
		{Tick: 480, Notes: []int{2}},
		{Tick: 960, Notes: []int{3}},
	}, res.Groups)
	assert.Len(t, res.GroupAssignments(res.Groups[0]), 2)
	assert.Equal(t, "D5", res.GroupAssignments(res.Groups[2])[0].Note.String())
}

func TestExtract_RejectsBadSolutions(t *testing.T) {
	p := assembleChord(t, "G3", "B3")

	_, err := Extract(p, &pbqp.Solution{Selections: []int{0}})
	assert.Error(t, err)

	_, err = Extract(p, &pbqp.Solution{Selections: []int{0, 99}})
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	p := assembleChord(t, "G3", "B3")

	extract := func(a, b string) *Result {
		res, err := Extract(p, &pbqp.Solution{Selections: []int{
			option(t, p.Notes[0], a),
			option(t, p.Notes[1], b),
		}})
		require.NoError(t, err)
		return res
	}

	findings, err := Verify(p, extract("L06Pull/pinky", "L07Pull/ring"), false)
	require.NoError(t, err)
	assert.Empty(t, findings)

	findings, err = Verify(p, extract("L06Pull/pinky", "L11Push/pinky"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVerification))

	types := make(map[constraints.ViolationType]bool)
	for _, f := range findings {
		types[f.Type] = true
	}
	assert.True(t, types[constraints.BellowsMismatch])
	assert.True(t, types[constraints.FingerCollision])
}

func TestVerify_DoubledNotes(t *testing.T) {
	p := assembleChord(t, "G4", "G4")
	res, err := Extract(p, &pbqp.Solution{Selections: []int{
		option(t, p.Notes[0], "L13Push/ring"),
		option(t, p.Notes[1], "L13Push/ring"),
	}})
	require.NoError(t, err)

	_, err = Verify(p, res, false)
	assert.ErrorIs(t, err, ErrVerification)

	findings, err := Verify(p, res, true)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, constraints.Info, findings[0].Severity)
}
