package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pthm/clarity/internal/ruleset"
	"github.com/spf13/cobra"
)

var listRules bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active rule set",
	Long: `Print the active rule set after validation: the builtin business
rules, or the file given with --rules. The output is valid input for --rules
and is a convenient starting point for custom rule sets.

Examples:
  clarity rules > my-rules.yaml
  clarity rules --rules my-rules.yaml
  clarity rules --list`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().BoolVarP(&listRules, "list", "l", false, "List builtin rule sets")
	RootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	u := GetUI()

	if listRules {
		for _, name := range ruleset.Available() {
			fmt.Fprintln(u.Writer, name)
		}
		return nil
	}

	rs, err := loadRules()
	if err != nil {
		return err
	}
	if err := rs.Compile(); err != nil {
		return fmt.Errorf("invalid rule set: %w", err)
	}

	if u.IsJSON() {
		enc := json.NewEncoder(u.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	}

	data, err := rs.Marshal()
	if err != nil {
		return err
	}
	_, err = u.Writer.Write(data)
	return err
}
