// Package cli provides the command-line interface for probelens.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/probelens-labs/probelens/internal/cli/commands"
	"github.com/probelens-labs/probelens/pkg/rules"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "probelens",
		Short: "Probelens - Data Quality Profiler",
		Long: `Probelens profiles tabular data for quality problems.

It reads a CSV file, infers column types, runs completeness, uniqueness,
validity, outlier, and consistency checks against an optional rules file,
and produces a scored summary with issue and report outputs.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Data Quality Profiler
`)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./probelens.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
// Bad inputs (unreadable CSV, invalid rules or configuration) exit 2;
// any other failure exits 1.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var inputErr *commands.InputError
		var rulesErr *rules.ConfigError
		if errors.As(err, &inputErr) || errors.As(err, &rulesErr) {
			return 2
		}
		return 1
	}
	return 0
}
