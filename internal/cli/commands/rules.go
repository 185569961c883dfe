package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/probelens-labs/probelens/pkg/rules"
)

// NewRulesCommand creates the rules command group.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Work with rules files",
	}
	cmd.AddCommand(newRulesValidateCommand())
	return cmd
}

func newRulesValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rules.yaml>",
		Short: "Validate a rules file",
		Long: `Validate the structure of a rules YAML file.

Checks that column rules, unique keys, and row rules are well formed.
Row rule expressions are parsed at profiling time; a malformed
expression surfaces as a row_rule_error issue, not a validation error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := rules.Load(args[0])
			if err != nil {
				return &InputError{Err: err}
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s is valid\n", args[0])
			_, _ = fmt.Fprintf(out, "  column rules: %d\n", len(set.ColumnNames()))
			_, _ = fmt.Fprintf(out, "  unique keys:  %d\n", len(set.UniqueKeys))
			_, _ = fmt.Fprintf(out, "  row rules:    %d\n", len(set.RowRules))
			for _, key := range set.UniqueKeys {
				_, _ = fmt.Fprintf(out, "  key: %s\n", strings.Join(key, ", "))
			}
			return nil
		},
	}
}
