package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/probelens-labs/probelens/pkg/profile"
)

// renderSummary writes the summary table and scores in the requested
// format. The table, csv, and markdown formats share one go-pretty
// table; json emits the whole result.
func renderSummary(w io.Writer, result *profile.Result, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{
		"column", "type", "missing", "missing %", "invalid", "invalid %", "outliers", "outlier %",
	})
	for _, row := range result.Summary {
		if row.Column == profile.GlobalRow {
			continue
		}
		t.AppendRow(table.Row{
			row.Column,
			string(row.InferredType),
			row.MissingCount,
			formatPct(row.MissingPct),
			row.InvalidCount,
			formatPct(row.InvalidPct),
			row.OutlierCount,
			formatPct(row.OutlierPct),
		})
	}

	switch format {
	case "csv":
		t.RenderCSV()
	case "md", "markdown":
		t.RenderMarkdown()
	default:
		t.Render()
	}

	s := result.Scores
	_, _ = fmt.Fprintf(w, "\nScores: total %s (completeness %s, validity %s, uniqueness %s, consistency %s, outliers %s)\n",
		formatScore(s.Total), formatScore(s.Completeness), formatScore(s.Validity),
		formatScore(s.Uniqueness), formatScore(s.Consistency), formatScore(s.Outliers))
	_, _ = fmt.Fprintf(w, "Issues found: %d\n", len(result.Issues))
	return nil
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
