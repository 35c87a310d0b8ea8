package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-fingering/pkg/fingering"
	"github.com/dd0wney/cluso-fingering/pkg/layout"
)

func runCandidates(cmd *cobra.Command, names []string, f candidateFlags) error {
	l, err := loadLayout(f.layoutName, f.layoutFile)
	if err != nil {
		return err
	}
	p, err := loadPenalties(f.penaltiesFile)
	if err != nil {
		return err
	}
	notes, err := layout.ParseNotes(names...)
	if err != nil {
		return err
	}

	g := fingering.NewGenerator(l, p)
	out := cmd.OutOrStdout()
	for _, n := range notes {
		cands, costs, err := g.Candidates(n)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, titleStyle.Render(n.String()))
		for i, c := range cands {
			dir := directionStyle(c.Control.Direction).Render(c.Control.Direction.String())
			fmt.Fprintf(out, "  %2d  %s %-4s %-6s cost %s\n", i, c.Control.Button.ID(), dir, c.Finger, formatCost(costs[i]))
		}
	}
	return nil
}
