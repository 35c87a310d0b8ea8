package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-fingering/pkg/layout"
)

func runLayouts(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	for _, name := range layout.BuiltinNames() {
		l, err := layout.Builtin(name)
		if err != nil {
			return err
		}
		notes := l.Notes()
		fmt.Fprintf(out, "%s  %d buttons, %s to %s\n",
			titleStyle.Render(l.Name), len(l.Buttons()), notes[0], notes[len(notes)-1])
		if l.Description != "" {
			fmt.Fprintln(out, helpStyle.Render("  "+l.Description))
		}
	}
	return nil
}

func runLayoutShow(cmd *cobra.Command, name, file string) error {
	l, err := loadLayout(name, file)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderGrid(l, nil))
	return nil
}
