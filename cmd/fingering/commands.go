package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-fingering/pkg/layout"
	"github.com/dd0wney/cluso-fingering/pkg/logging"
)

// solveFlags holds the options of the solve command
type solveFlags struct {
	layoutName    string
	layoutFile    string
	penaltiesFile string
	channel       int
	gap           int64
	noArpeggio    bool
	doubled       string
	format        string
	exhaustive    int
	maxSteps      int
	timeout       string
	showMetrics   bool
	showFindings  bool
	jobs          int
}

type candidateFlags struct {
	layoutName    string
	layoutFile    string
	penaltiesFile string
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "fingering",
		Short: "Assign concertina reeds and fingers to a score",
		Long: `fingering reads a score (YAML fixture or Standard MIDI File) and picks,
for every note, the reed and finger that minimise the total playing cost on
an Anglo concertina layout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				logging.DefaultLogger().SetLevel(logging.ParseLevel(logLevel))
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to LOG_LEVEL")

	rootCmd.AddCommand(newSolveCmd(), newBrowseCmd(), newLayoutsCmd(), newCandidatesCmd())
	return rootCmd
}

func newSolveCmd() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve [score...]",
		Short: "Compute a fingering for each score file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.layoutName, "layout", "l", layout.DefaultBuiltin, "Built-in layout name")
	flags.StringVar(&f.layoutFile, "layout-file", "", "Layout YAML file, overrides --layout")
	flags.StringVarP(&f.penaltiesFile, "penalties", "p", "", "Penalty YAML file overlaid on the defaults")
	flags.IntVarP(&f.channel, "channel", "c", -1, "Only use events on this MIDI channel (0-15)")
	flags.Int64Var(&f.gap, "gap", -1, "Ticks after a note-off that still link sequentially")
	flags.BoolVar(&f.noArpeggio, "no-arpeggio", false, "Do not add sequential costs to overlapping onsets")
	flags.StringVar(&f.doubled, "doubled", "", "Doubled-note policy (forbid, share)")
	flags.StringVarP(&f.format, "format", "f", "text", "Output format (text, json)")
	flags.IntVar(&f.exhaustive, "exhaustive-limit", 0, "Largest residual search space solved exactly")
	flags.IntVar(&f.maxSteps, "max-steps", 0, "Step bound for exact search")
	flags.StringVar(&f.timeout, "timeout", "", "Time bound for exact search, e.g. 10s")
	flags.BoolVar(&f.showMetrics, "metrics", false, "Print solver metrics to stderr")
	flags.BoolVar(&f.showFindings, "findings", false, "Report informational playability findings")
	flags.IntVarP(&f.jobs, "jobs", "j", runtime.NumCPU(), "Scores solved concurrently")

	return cmd
}

func newBrowseCmd() *cobra.Command {
	f := solveFlags{channel: -1, gap: -1}

	cmd := &cobra.Command{
		Use:   "browse [score]",
		Short: "Solve a score and step through the fingering interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.layoutName, "layout", "l", layout.DefaultBuiltin, "Built-in layout name")
	flags.StringVar(&f.layoutFile, "layout-file", "", "Layout YAML file, overrides --layout")
	flags.StringVarP(&f.penaltiesFile, "penalties", "p", "", "Penalty YAML file overlaid on the defaults")
	flags.StringVar(&f.doubled, "doubled", "", "Doubled-note policy (forbid, share)")

	return cmd
}

func newLayoutsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List the built-in layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayouts(cmd)
		},
	}

	var file string
	show := &cobra.Command{
		Use:   "show [name]",
		Short: "Print the button grid of a layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := layout.DefaultBuiltin
			if len(args) == 1 {
				name = args[0]
			}
			return runLayoutShow(cmd, name, file)
		},
	}
	show.Flags().StringVar(&file, "file", "", "Layout YAML file instead of a built-in")
	cmd.AddCommand(show)

	return cmd
}

func newCandidatesCmd() *cobra.Command {
	var f candidateFlags

	cmd := &cobra.Command{
		Use:   "candidates [note...]",
		Short: "Show every reed and finger for the given notes with their costs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCandidates(cmd, args, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.layoutName, "layout", "l", layout.DefaultBuiltin, "Built-in layout name")
	flags.StringVar(&f.layoutFile, "layout-file", "", "Layout YAML file, overrides --layout")
	flags.StringVarP(&f.penaltiesFile, "penalties", "p", "", "Penalty YAML file overlaid on the defaults")

	return cmd
}
