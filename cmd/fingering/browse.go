package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-fingering/pkg/fingering"
	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/score"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2)
)

type browseView int

const (
	notesView browseView = iota
	gridView
	statsView
	viewCount
)

var viewNames = [viewCount]string{"Notes", "Grid", "Stats"}

type browseKeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Prev     key.Binding
	Next     key.Binding
	Quit     key.Binding
}

var browseKeys = browseKeyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev group"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next group"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Prev, k.Next, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab},
		{k.Prev, k.Next},
		{k.Quit},
	}
}

// browseModel steps through a solved score group by group
type browseModel struct {
	title   string
	layout  *layout.Layout
	result  *fingering.Result
	groupOf []int // note index to group index

	current browseView
	group   int
	notes   table.Model
	help    help.Model
	keys    browseKeyMap
	width   int
	height  int
}

func newBrowseModel(title string, l *layout.Layout, res *fingering.Result) browseModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Tick", Width: 8},
		{Title: "Note", Width: 5},
		{Title: "Button", Width: 6},
		{Title: "Bellows", Width: 7},
		{Title: "Finger", Width: 7},
		{Title: "Cost", Width: 6},
	}

	rows := make([]table.Row, len(res.Assignments))
	for i, a := range res.Assignments {
		rows[i] = table.Row{
			fmt.Sprint(i),
			fmt.Sprint(a.Start),
			a.Note.String(),
			a.Control.Button.ID(),
			strings.ToLower(a.Control.Direction.String()),
			a.Finger.String(),
			formatCost(a.UnaryCost),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows), 12)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	groupOf := make([]int, len(res.Assignments))
	for gi, g := range res.Groups {
		for _, n := range g.Notes {
			groupOf[n] = gi
		}
	}

	return browseModel{
		title:   title,
		layout:  l,
		result:  res,
		groupOf: groupOf,
		current: notesView,
		notes:   t,
		help:    help.New(),
		keys:    browseKeys,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.current = (m.current + 1) % viewCount
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.current = (m.current + viewCount - 1) % viewCount
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.selectGroup(m.group - 1)
			return m, nil

		case key.Matches(msg, m.keys.Next):
			m.selectGroup(m.group + 1)
			return m, nil
		}
	}

	if m.current != notesView {
		return m, nil
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	if c := m.notes.Cursor(); c >= 0 && c < len(m.groupOf) {
		m.group = m.groupOf[c]
	}
	return m, cmd
}

// selectGroup moves to group g and puts the table cursor on its first note
func (m *browseModel) selectGroup(g int) {
	if g < 0 || g >= len(m.result.Groups) {
		return
	}
	m.group = g
	m.notes.SetCursor(m.result.Groups[g].Notes[0])
}

func (m browseModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(m.title))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.current {
	case notesView:
		s.WriteString(m.notes.View())
	case gridView:
		s.WriteString(m.renderGroup())
	case statsView:
		s.WriteString(m.renderStats())
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m browseModel) renderTabs() string {
	tabs := make([]string, 0, viewCount)
	for i, name := range viewNames {
		if browseView(i) == m.current {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m browseModel) renderGroup() string {
	if len(m.result.Groups) == 0 {
		return "no notes"
	}
	g := m.result.Groups[m.group]
	marks := make(map[layout.Button]fingering.Assignment, len(g.Notes))
	var names []string
	for _, a := range m.result.GroupAssignments(g) {
		marks[a.Control.Button] = a
		names = append(names, a.Note.String())
	}
	head := fmt.Sprintf("group %d/%d  tick %d  %s", m.group+1, len(m.result.Groups), g.Tick, strings.Join(names, " "))
	return head + "\n" + renderGrid(m.layout, marks)
}

func (m browseModel) renderStats() string {
	res := m.result
	status := "optimal"
	if !res.Optimal {
		status = "heuristic"
	}
	return statsBoxStyle.Render(fmt.Sprintf(`layout       %s
notes        %d
groups       %d
cost         %s
labeling     %s
reductions   r0=%d r1=%d r2=%d rn=%d
search       %d nodes, %d steps, %d restarts`,
		res.Layout, len(res.Assignments), len(res.Groups), formatCost(res.Cost), status,
		res.Stats.R0, res.Stats.R1, res.Stats.R2, res.Stats.RN,
		res.Stats.Searched, res.Stats.SearchSteps, res.Stats.Restarts))
}

// browseScore solves one score for the interactive viewer
func browseScore(cmd *cobra.Command, path string, f solveFlags) (browseModel, error) {
	l, err := loadLayout(f.layoutName, f.layoutFile)
	if err != nil {
		return browseModel{}, err
	}
	cfg, err := solveConfig(f)
	if err != nil {
		return browseModel{}, err
	}
	assigner, err := fingering.NewAssigner(l, cfg)
	if err != nil {
		return browseModel{}, err
	}
	s, err := score.Load(path)
	if err != nil {
		return browseModel{}, err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()
	res, err := assigner.Assign(ctx, s.Events)
	if err != nil {
		return browseModel{}, err
	}

	title := s.Title
	if title == "" {
		title = path
	}
	return newBrowseModel(title, l, res), nil
}

func runBrowse(cmd *cobra.Command, path string, f solveFlags) error {
	m, err := browseScore(cmd, path, f)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	return err
}
