package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelens-labs/probelens/pkg/dataset"
	"github.com/probelens-labs/probelens/pkg/profile"
	"github.com/probelens-labs/probelens/pkg/score"
)

func renderResult() *profile.Result {
	total := 95.0
	return &profile.Result{
		Summary: []profile.SummaryRow{
			{Column: "age", InferredType: dataset.TypeInt, MissingCount: 1, MissingPct: 0.25},
			{Column: profile.GlobalRow, MissingCount: 1, ScoreTotal: &total},
		},
		Scores: score.Scores{Total: 95, Completeness: 75, Validity: 100, Uniqueness: 100, Consistency: 100, Outliers: 100},
	}
}

func TestRenderSummaryTable(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderSummary(buf, renderResult(), "table"))

	out := buf.String()
	assert.Contains(t, out, "age")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "Scores: total 95.0")
	assert.NotContains(t, out, profile.GlobalRow)
}

func TestRenderSummaryMarkdown(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderSummary(buf, renderResult(), "markdown"))

	assert.Contains(t, buf.String(), "| age |")
}

func TestRenderSummaryCSV(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderSummary(buf, renderResult(), "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(t, strings.ToLower(lines[0]), "column,type,missing")
}

func TestRenderSummaryJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderSummary(buf, renderResult(), "json"))

	out := buf.String()
	assert.Contains(t, out, `"scores"`)
	assert.Contains(t, out, `"summary"`)
	// json carries the global row; the rendered formats drop it
	assert.Contains(t, out, profile.GlobalRow)
}
