package checks

import "github.com/probelens-labs/probelens/pkg/dataset"

// CompletenessMetrics reports null cells globally and per column. The
// global percentage is over rows x columns; per-column percentages are
// over the row count.
type CompletenessMetrics struct {
	Global  CountPct            `json:"global"`
	Columns map[string]CountPct `json:"columns"`
}

// Completeness counts null cells. Every column with at least one null
// contributes a missing_values issue carrying up to three example row
// indices.
func Completeness(ds *dataset.Dataset) (CompletenessMetrics, []Issue) {
	var issues []Issue
	metrics := CompletenessMetrics{Columns: make(map[string]CountPct, ds.NumCols())}

	rows := ds.NumRows()
	totalCells := rows * ds.NumCols()
	missingTotal := 0

	for _, name := range ds.ColumnNames() {
		cells, _ := ds.Cells(name)

		var missingRows []int
		for row, cell := range cells {
			if cell.IsNull() {
				missingRows = append(missingRows, row)
			}
		}

		count := len(missingRows)
		missingTotal += count
		metrics.Columns[name] = CountPct{Count: count, Pct: ratio(count, rows)}

		if count > 0 {
			issues = append(issues, Issue{
				Kind:     IssueMissingValues,
				Columns:  []string{name},
				Count:    count,
				Examples: rowExamples(missingRows),
			})
		}
	}

	metrics.Global = CountPct{Count: missingTotal, Pct: ratio(missingTotal, totalCells)}
	return metrics, issues
}
