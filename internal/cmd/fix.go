package cmd

import (
	"fmt"

	"github.com/pthm/clarity/internal/fixer"
	"github.com/spf13/cobra"
)

var dryRun bool

var fixCmd = &cobra.Command{
	Use:   "fix [files...]",
	Short: "Correct fixable spelling and grammar mistakes in place",
	Long: `Apply the corrections of fixable spelling and grammar rules to each
file. Only the affected lines are rewritten.

Examples:
  clarity fix proposal.md
  clarity fix --dry-run proposal.md
  cat memo.txt | clarity fix --dry-run`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show fixes without applying them")
	RootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	u := GetUI()
	logger := newLogger()

	rs, err := loadRules()
	if err != nil {
		return err
	}

	f, err := fixer.New(rs, fixer.Options{DryRun: dryRun}, u)
	if err != nil {
		return err
	}

	docs, err := loadDocuments(documentArgs(args), nil)
	if err != nil {
		return err
	}

	total := 0
	var failed int
	for _, doc := range docs {
		plan, err := f.Fix(doc)
		if err != nil {
			failed++
			u.Errorf("%v", err)
			continue
		}
		logger.Debug("fix planned", "path", doc.Name(), "edits", len(plan.Edits))
		total += len(plan.Edits)
	}

	if failed > 0 {
		return fmt.Errorf("failed to fix %d of %d documents", failed, len(docs))
	}
	if total == 0 {
		u.Successf("No fixable issues found")
	}
	return nil
}
