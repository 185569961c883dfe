package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelens-labs/probelens/pkg/checks"
	"github.com/probelens-labs/probelens/pkg/dataset"
	"github.com/probelens-labs/probelens/pkg/profile"
	"github.com/probelens-labs/probelens/pkg/score"
)

func sampleResult() *profile.Result {
	total := 91.2
	return &profile.Result{
		Summary: []profile.SummaryRow{
			{Column: "age", InferredType: dataset.TypeInt, MissingCount: 2, MissingPct: 0.2},
			{Column: profile.GlobalRow, MissingCount: 2, MissingPct: 0.1, ScoreTotal: &total},
		},
		Issues: []checks.Issue{
			{Kind: checks.IssueMissingValues, Columns: []string{"age"}, Count: 2, Examples: []string{"0", "4"}},
		},
		Scores: score.Scores{
			Completeness: 90, Validity: 100, Uniqueness: 100, Consistency: 80, Outliers: 100, Total: 91.2,
		},
		InferredTypes: map[string]dataset.ColumnType{"age": dataset.TypeInt},
		Metadata: profile.Metadata{
			RunID:       "run-1",
			RowCount:    10,
			ColumnCount: 1,
			GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			RulesPath:   "rules.yaml",
		},
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(sampleResult(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.html"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(content)

	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, "Data Quality Report")
	assert.Contains(t, html, "91.2")
	assert.Contains(t, html, "missing_values")
	assert.Contains(t, html, "rules.yaml")
	assert.Contains(t, html, "run-1")
	// per-column completeness row, global row excluded
	assert.Contains(t, html, "age")
	assert.NotContains(t, html, profile.GlobalRow)
}

func TestWriteReportTruncatesIssues(t *testing.T) {
	result := sampleResult()
	result.Issues = nil
	for i := 0; i < 30; i++ {
		result.Issues = append(result.Issues, checks.Issue{
			Kind: checks.IssueOutliers, Columns: []string{"amount"}, Count: 30 - i,
		})
	}

	path, err := Write(result, t.TempDir())
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "Top Issues (20 of 30)")
}
