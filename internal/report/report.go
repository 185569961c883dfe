// Package report renders a profiling result as a standalone HTML page.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/probelens-labs/probelens/pkg/profile"
)

// FileName is the report file written under the output dir.
const FileName = "report.html"

// maxIssueRows bounds the issue table in the report.
const maxIssueRows = 20

const pageStyle = `
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 960px; color: #1a1a2e; }
h1 { font-size: 1.6rem; }
h2 { font-size: 1.1rem; margin-top: 2rem; border-bottom: 1px solid #ddd; padding-bottom: 0.3rem; }
table { border-collapse: collapse; width: 100%; margin-top: 0.8rem; }
th, td { border: 1px solid #ddd; padding: 0.4rem 0.6rem; text-align: left; font-size: 0.9rem; }
th { background: #f4f4f8; }
.scores { display: flex; gap: 1rem; margin-top: 1rem; flex-wrap: wrap; }
.score-card { border: 1px solid #ddd; border-radius: 6px; padding: 0.8rem 1.2rem; min-width: 8rem; }
.score-card .value { font-size: 1.5rem; font-weight: 600; }
.score-card.total { background: #f4f4f8; }
.meta { color: #555; font-size: 0.9rem; }
`

// Write renders the result and writes report.html into dir, returning
// the written path.
func Write(result *profile.Result, dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	file, err := os.Create(path) //nolint:gosec // path is under the configured output dir
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := page(result).Render(file); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return path, file.Close()
}

func page(result *profile.Result) Node {
	return Doctype(HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			TitleEl(Text("Data Quality Report")),
			StyleEl(Raw(pageStyle)),
		),
		Body(
			H1(Text("Data Quality Report")),
			metadataLine(result),
			scoreCards(result),
			typesSection(result),
			completenessSection(result),
			issuesSection(result),
		),
	))
}

func metadataLine(result *profile.Result) Node {
	meta := result.Metadata
	line := fmt.Sprintf("%d rows, %d columns, generated %s (run %s)",
		meta.RowCount, meta.ColumnCount,
		meta.GeneratedAt.Format("2006-01-02 15:04:05 MST"), meta.RunID)
	if meta.RulesPath != "" {
		line += ", rules: " + meta.RulesPath
	}
	return P(Class("meta"), Text(line))
}

func scoreCards(result *profile.Result) Node {
	s := result.Scores
	card := func(label string, value float64, total bool) Node {
		class := "score-card"
		if total {
			class += " total"
		}
		return Div(Class(class),
			Div(Class("value"), Text(formatScore(value))),
			Div(Text(label)),
		)
	}
	return Div(Class("scores"),
		card("Total", s.Total, true),
		card("Completeness", s.Completeness, false),
		card("Validity", s.Validity, false),
		card("Uniqueness", s.Uniqueness, false),
		card("Consistency", s.Consistency, false),
		card("Outliers", s.Outliers, false),
	)
}

func typesSection(result *profile.Result) Node {
	names := make([]string, 0, len(result.InferredTypes))
	for name := range result.InferredTypes {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]Node, 0, len(names))
	for _, name := range names {
		rows = append(rows, Tr(
			Td(Text(name)),
			Td(Text(string(result.InferredTypes[name]))),
		))
	}
	return Group([]Node{
		H2(Text("Inferred Types")),
		Table(
			THead(Tr(Th(Text("Column")), Th(Text("Type")))),
			TBody(Group(rows)),
		),
	})
}

func completenessSection(result *profile.Result) Node {
	rows := make([]Node, 0, len(result.Summary))
	for _, row := range result.Summary {
		if row.Column == profile.GlobalRow {
			continue
		}
		rows = append(rows, Tr(
			Td(Text(row.Column)),
			Td(Text(strconv.Itoa(row.MissingCount))),
			Td(Text(formatPct(row.MissingPct))),
		))
	}
	return Group([]Node{
		H2(Text("Completeness")),
		Table(
			THead(Tr(Th(Text("Column")), Th(Text("Missing")), Th(Text("Missing %")))),
			TBody(Group(rows)),
		),
	})
}

func issuesSection(result *profile.Result) Node {
	issues := result.Issues
	if len(issues) > maxIssueRows {
		issues = issues[:maxIssueRows]
	}

	rows := make([]Node, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, Tr(
			Td(Text(string(issue.Kind))),
			Td(Text(strings.Join(issue.Columns, ", "))),
			Td(Text(strconv.Itoa(issue.Count))),
			Td(Text(strings.Join(issue.Examples, ", "))),
		))
	}
	return Group([]Node{
		H2(Text(fmt.Sprintf("Top Issues (%d of %d)", len(issues), len(result.Issues)))),
		Table(
			THead(Tr(Th(Text("Type")), Th(Text("Columns")), Th(Text("Count")), Th(Text("Examples")))),
			TBody(Group(rows)),
		),
	})
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}
