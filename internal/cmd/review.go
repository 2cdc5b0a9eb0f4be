package cmd

import (
	"github.com/pthm/clarity/internal/engine"
	"github.com/spf13/cobra"
)

var withStrategy bool

var reviewCmd = &cobra.Command{
	Use:   "review [files...]",
	Short: "Review documents for errors and overall quality",
	Long: `Detect spelling, grammar and calculation errors, score quality
dimensions and classify each document. Reads standard input when no
files are given.

Examples:
  clarity review proposal.md
  clarity review --strategy proposal.md report.md
  cat memo.txt | clarity review --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := engine.ModeReview
		if withStrategy {
			mode = engine.ModeAll
		}
		return runAnalysis(cmd.Context(), args, mode, nil)
	},
}

func init() {
	reviewCmd.Flags().BoolVarP(&withStrategy, "strategy", "s", false, "Also run strategic analysis")
	RootCmd.AddCommand(reviewCmd)
}
