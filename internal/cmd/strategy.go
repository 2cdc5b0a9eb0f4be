package cmd

import (
	"github.com/pthm/clarity/internal/engine"
	"github.com/pthm/clarity/internal/strategy"
	"github.com/spf13/cobra"
)

var strategyContext map[string]string

var strategyCmd = &cobra.Command{
	Use:   "strategy [files...]",
	Short: "Score documents for persuasion and proposal readiness",
	Long: `Rate value proposition, credibility, urgency and ROI clarity, detect
persuasion triggers and suggest strategic improvements. YAML frontmatter
and --context values are accepted as client context. Reads standard input
when no files are given.

Examples:
  clarity strategy proposal.md
  clarity strategy --context industry=Healthcare --context urgency=high proposal.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		extra := make(strategy.Context, len(strategyContext))
		for k, v := range strategyContext {
			extra[k] = v
		}
		return runAnalysis(cmd.Context(), args, engine.ModeStrategy, extra)
	},
}

func init() {
	strategyCmd.Flags().StringToStringVarP(&strategyContext, "context", "c", nil, "Client context as key=value pairs")
	RootCmd.AddCommand(strategyCmd)
}
