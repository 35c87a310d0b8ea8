package main

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-fingering/pkg/layout"
)

func browseFixture(t *testing.T, name string) browseModel {
	t.Helper()
	f := solveFlags{layoutName: layout.DefaultBuiltin, channel: -1, gap: -1}
	m, err := browseScore(newBrowseCmd(), filepath.Join(scoresDir, name), f)
	require.NoError(t, err)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(browseModel)
}

func press(t *testing.T, m browseModel, msg tea.KeyMsg) (browseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(browseModel), cmd
}

func TestBrowse_Views(t *testing.T) {
	m := browseFixture(t, "melody.yaml")
	assert.Equal(t, "Initializing...", browseModel{}.View())

	view := m.View()
	assert.Contains(t, view, "Scale fragment")
	assert.Contains(t, view, "Bellows")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, gridView, m.current)
	assert.Contains(t, m.View(), "group 1/7")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, statsView, m.current)
	assert.Contains(t, m.View(), "optimal")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, gridView, m.current)
}

func TestBrowse_GroupNavigation(t *testing.T) {
	m := browseFixture(t, "melody.yaml")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.group, "no group before the first")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	assert.Equal(t, 2, m.group)
	assert.Equal(t, m.result.Groups[2].Notes[0], m.notes.Cursor())
	assert.Contains(t, m.View(), "group 3/7")

	a := m.result.Assignments[m.result.Groups[2].Notes[0]]
	assert.Contains(t, m.View(), a.Control.Button.ID())
}

func TestBrowse_TableFollowsGroups(t *testing.T) {
	m := browseFixture(t, "chord.yaml")
	require.Len(t, m.result.Groups, 1)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.notes.Cursor())
	assert.Equal(t, 0, m.group, "chord notes share one group")
}

func TestBrowse_Quit(t *testing.T) {
	m := browseFixture(t, "chord.yaml")
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestBrowse_Errors(t *testing.T) {
	_, _, err := execute(t, "browse", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none.yaml")

	_, _, err = execute(t, "browse")
	require.Error(t, err)
}
