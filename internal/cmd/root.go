package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pthm/clarity/internal/reporter"
	"github.com/pthm/clarity/internal/ruleset"
	"github.com/pthm/clarity/internal/ui"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	format      string
	rulesFile   string
	concurrency int
	noOutline   bool
)

// RootCmd is the clarity command tree
var RootCmd = &cobra.Command{
	Use:   "clarity",
	Short: "Proofreading and persuasion analysis for business documents",
	Long: `clarity reviews business documents such as proposals, reports and
correspondence.

It detects spelling, grammar and arithmetic mistakes, scores overall
quality, classifies the document, and rates how persuasive and
proposal-ready the content is, with concrete recommendations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch format {
		case "terminal", "json":
			return nil
		default:
			return fmt.Errorf("unknown format %q (want terminal or json)", format)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVarP(&rulesFile, "rules", "r", "", "Rule set YAML file (defaults to the builtin business rules)")
	RootCmd.PersistentFlags().IntVarP(&concurrency, "concurrency", "j", 0, "Documents analysed in parallel (0 = number of CPUs)")
	RootCmd.PersistentFlags().BoolVar(&noOutline, "no-outline", false, "Omit the heading outline of markdown documents")
}

// Output streams of every command
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// GetUI returns a UI bound to the command output streams
func GetUI() *ui.UI {
	return ui.New(stdout, stderr, format)
}

// newLogger logs to stderr; warnings only unless --verbose
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// loadRules returns the rule set selected by --rules
func loadRules() (*ruleset.RuleSet, error) {
	if rulesFile == "" {
		return ruleset.Load(ruleset.DefaultName)
	}
	rs, err := ruleset.LoadFromFile(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	return rs, nil
}

func newReporter(u *ui.UI) reporter.Reporter {
	if u.IsJSON() {
		return reporter.NewJSONReporter(u.Writer)
	}
	return reporter.NewTerminalReporter(u.Writer, u, reporter.WithOutline(!noOutline))
}
