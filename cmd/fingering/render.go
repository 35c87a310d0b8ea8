package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-fingering/pkg/constraints"
	"github.com/dd0wney/cluso-fingering/pkg/fingering"
	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/pbqp"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	pushStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	pullStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF"))

	tickStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(8).
			Align(lipgloss.Right)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	markStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF"))
)

func directionStyle(d layout.Direction) lipgloss.Style {
	if d == layout.Pull {
		return pullStyle
	}
	return pushStyle
}

func formatCost(c pbqp.Cost) string {
	return fmt.Sprintf("%g", c)
}

// renderResult prints one line per onset group
func renderResult(title string, res *fingering.Result) string {
	var b strings.Builder

	status := "optimal"
	if !res.Optimal {
		status = warnStyle.Render("heuristic")
	}
	header := fmt.Sprintf("%s\nlayout %s  notes %d  cost %s  %s",
		titleStyle.Render(title), res.Layout, len(res.Assignments), formatCost(res.Cost), status)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, g := range res.Groups {
		cells := make([]string, 0, len(g.Notes))
		for _, a := range res.GroupAssignments(g) {
			dir := directionStyle(a.Control.Direction).Render(strings.ToLower(a.Control.Direction.String()))
			cells = append(cells, fmt.Sprintf("%-4s %s %s %s", a.Note, a.Control.Button.ID(), dir, a.Finger))
		}
		b.WriteString(tickStyle.Render(fmt.Sprint(g.Tick)))
		b.WriteString("  ")
		b.WriteString(strings.Join(cells, "  |  "))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf("reductions r0=%d r1=%d r2=%d rn=%d, search steps %d",
		res.Stats.R0, res.Stats.R1, res.Stats.R2, res.Stats.RN, res.Stats.SearchSteps)))
	b.WriteString("\n")
	return b.String()
}

func renderFindings(findings []constraints.Violation) string {
	var b strings.Builder
	for _, f := range findings {
		line := fmt.Sprintf("[%s] %s: %s", f.Severity, f.Constraint, f.Message)
		if f.Severity == constraints.Error {
			line = errorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderGrid draws each hand as rows of "ID push/pull" cells. Buttons in
// marks are highlighted and show the finger pressing them.
func renderGrid(l *layout.Layout, marks map[layout.Button]fingering.Assignment) string {
	var hands []string
	for _, hand := range []layout.Hand{layout.Left, layout.Right} {
		var rows []string
		for row := 0; row < l.Rows; row++ {
			var cells []string
			for col := 0; col < l.Columns; col++ {
				b := l.ButtonAt(hand, row*l.Columns+col+1)
				if a, ok := marks[b]; ok {
					cells = append(cells, renderMark(a))
					continue
				}
				cells = append(cells, renderButton(l, b))
			}
			rows = append(rows, strings.Join(cells, " "))
		}
		title := titleStyle.Render(hand.Name())
		hands = append(hands, headerStyle.Render(title+"\n"+strings.Join(rows, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, hands[0], " ", hands[1]) + "\n"
}

func renderButton(l *layout.Layout, b layout.Button) string {
	reed := func(d layout.Direction) string {
		n, ok := l.Sounds(layout.Control{Button: b, Direction: d})
		if !ok {
			return "-"
		}
		return directionStyle(d).Render(n.String())
	}
	return fmt.Sprintf("%s %4s/%-4s", b.ID(), reed(layout.Push), reed(layout.Pull))
}

func renderMark(a fingering.Assignment) string {
	dir := strings.ToLower(a.Control.Direction.String())
	return markStyle.Render(fmt.Sprintf("%s %4s %-4s", a.Control.Button.ID(), dir, a.Finger))
}
