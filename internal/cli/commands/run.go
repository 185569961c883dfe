// Package commands implements the probelens subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/probelens-labs/probelens/internal/config"
	"github.com/probelens-labs/probelens/internal/loader"
	"github.com/probelens-labs/probelens/internal/report"
	"github.com/probelens-labs/probelens/pkg/profile"
	"github.com/probelens-labs/probelens/pkg/rules"
)

// InputError marks a failure caused by the user's inputs (CSV file,
// rules file, or configuration) rather than by the profiler itself.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return e.Err.Error() }

func (e *InputError) Unwrap() error { return e.Err }

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <input.csv>",
		Short: "Profile a CSV file",
		Long: `Profile a CSV file for data quality problems.

Runs type inference and the five quality checks, prints a scored
summary, and writes summary.csv and issues.csv (plus an optional HTML
report) to the output directory.`,
		Example: `  # Profile with defaults
  probelens run data.csv

  # Profile against a rules file with explicit id columns
  probelens run data.csv --rules rules.yaml --id-cols order_id

  # Machine-readable output
  probelens run data.csv --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0])
		},
	}

	cmd.Flags().StringP("rules", "r", "", "Path to rules YAML file")
	cmd.Flags().StringP("output-dir", "o", "", "Output directory (default: probelens_output)")
	cmd.Flags().StringP("format", "f", "", "Summary format: table, json, csv, markdown")
	cmd.Flags().String("delimiter", "", "CSV delimiter (default: ,)")
	cmd.Flags().StringSlice("id-cols", nil, "Identifier columns for key uniqueness")
	cmd.Flags().StringSlice("null-markers", nil, "Cell values read as null")
	cmd.Flags().Bool("html-report", false, "Write report.html to the output directory")

	return cmd
}

func runRun(cmd *cobra.Command, inputPath string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return &InputError{Err: err}
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ds, err := loader.ReadCSV(inputPath, loader.ReadOptions{
		Delimiter:   rune(cfg.Delimiter[0]),
		NullMarkers: cfg.NullMarkers,
		Logger:      logger,
	})
	if err != nil {
		return &InputError{Err: err}
	}

	var rs *rules.Set
	if cfg.RulesPath != "" {
		rs, err = rules.Load(cfg.RulesPath)
		if err != nil {
			return &InputError{Err: fmt.Errorf("rules error: %w", err)}
		}
	}

	result, err := profile.Run(cmd.Context(), ds, rs, profile.Options{
		IDColumns: cfg.IDColumns,
		RulesPath: cfg.RulesPath,
		Weights:   cfg.Weights,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if err := loader.EnsureOutputDir(cfg.OutputDir); err != nil {
		return err
	}
	summaryPath, err := loader.WriteSummaryCSV(result.Summary, cfg.OutputDir)
	if err != nil {
		return err
	}
	issuesPath, err := loader.WriteIssuesCSV(result.Issues, cfg.OutputDir)
	if err != nil {
		return err
	}
	logger.Info("wrote outputs", "summary", summaryPath, "issues", issuesPath)

	if cfg.HTMLReport {
		reportPath, err := report.Write(result, cfg.OutputDir)
		if err != nil {
			return err
		}
		logger.Info("wrote report", "path", reportPath)
	}

	return renderSummary(cmd.OutOrStdout(), result, cfg.Format)
}

// newLogger returns a stderr text logger in verbose mode and a silent
// logger otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
