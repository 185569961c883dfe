package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/probelens-labs/probelens/pkg/checks"
	"github.com/probelens-labs/probelens/pkg/profile"
)

// SummaryFileName is the summary table file written under the output dir.
const SummaryFileName = "summary.csv"

// IssuesFileName is the issue table file written under the output dir.
const IssuesFileName = "issues.csv"

// EnsureOutputDir creates the output directory if needed.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// WriteSummaryCSV writes the summary table to summary.csv in dir and
// returns the written path.
func WriteSummaryCSV(summary []profile.SummaryRow, dir string) (string, error) {
	header := []string{
		"column", "inferred_type",
		"missing_count", "missing_pct",
		"invalid_count", "invalid_pct",
		"outlier_count", "outlier_pct",
		"duplicate_rows_count", "duplicate_rows_pct",
		"consistency_invalid_count", "consistency_invalid_pct",
		"score_total",
	}

	records := make([][]string, 0, len(summary))
	for _, row := range summary {
		record := []string{
			row.Column,
			string(row.InferredType),
			strconv.Itoa(row.MissingCount),
			formatFloat(row.MissingPct),
			strconv.Itoa(row.InvalidCount),
			formatFloat(row.InvalidPct),
			strconv.Itoa(row.OutlierCount),
			formatFloat(row.OutlierPct),
		}
		if row.Column == profile.GlobalRow {
			record = append(record,
				strconv.Itoa(row.DuplicateRowsCount),
				formatFloat(row.DuplicateRowsPct),
				strconv.Itoa(row.ConsistencyInvalidCount),
				formatFloat(row.ConsistencyInvalidPct),
			)
			if row.ScoreTotal != nil {
				record = append(record, formatFloat(*row.ScoreTotal))
			} else {
				record = append(record, "")
			}
		} else {
			record = append(record, "", "", "", "", "")
		}
		records = append(records, record)
	}

	path := filepath.Join(dir, SummaryFileName)
	return path, writeCSV(path, header, records)
}

// WriteIssuesCSV writes the issue table to issues.csv in dir and
// returns the written path.
func WriteIssuesCSV(issues []checks.Issue, dir string) (string, error) {
	header := []string{"type", "columns", "count", "examples"}
	records := make([][]string, 0, len(issues))
	for _, issue := range issues {
		records = append(records, []string{
			string(issue.Kind),
			strings.Join(issue.Columns, ";"),
			strconv.Itoa(issue.Count),
			strings.Join(issue.Examples, ";"),
		})
	}
	path := filepath.Join(dir, IssuesFileName)
	return path, writeCSV(path, header, records)
}

func writeCSV(path string, header []string, records [][]string) error {
	file, err := os.Create(path) //nolint:gosec // path is under the configured output dir
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	// WriteAll flushes and reports any buffered write error
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return file.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
