package checks

import (
	"time"

	"github.com/probelens-labs/probelens/pkg/dataset"
	"github.com/probelens-labs/probelens/pkg/rules"
)

// ColumnValidity is the per-column validity breakdown.
type ColumnValidity struct {
	Invalid      CountPct           `json:"invalid"`
	InferredType dataset.ColumnType `json:"inferred_type"`
}

// ValidityMetrics reports rule violations per cell. The global
// percentage is invalid cells over rows x columns.
type ValidityMetrics struct {
	Global  CountPct                  `json:"global"`
	Columns map[string]ColumnValidity `json:"columns"`
}

// Validity evaluates column rules cell by cell: required-but-null, type
// mismatch, below-min, above-max, regex mismatch, value outside the
// allowed set, and future dates where forbidden.
//
// A cell may violate several rule kinds at once. The column's invalid
// total is the union of the violation masks, while each rule kind still
// emits its own issue with its own count, so summed issue counts may
// exceed the column total. That asymmetry is intentional and consumers
// must not "fix" it by summing issues.
func Validity(ds *dataset.Dataset, rs *rules.Set, inferred map[string]dataset.ColumnType) (ValidityMetrics, []Issue) {
	var issues []Issue
	metrics := ValidityMetrics{Columns: make(map[string]ColumnValidity, ds.NumCols())}

	rows := ds.NumRows()
	totalCells := rows * ds.NumCols()
	invalidTotal := 0
	now := time.Now()

	for _, name := range ds.ColumnNames() {
		cells, _ := ds.Cells(name)
		invalidMask := make([]bool, rows)
		rule, hasRule := rs.ColumnRule(name)

		emit := func(kind IssueKind, violation []int, examples []string) {
			for _, row := range violation {
				invalidMask[row] = true
			}
			issues = append(issues, Issue{
				Kind:     kind,
				Columns:  []string{name},
				Count:    len(violation),
				Examples: examples,
			})
		}

		if hasRule {
			if rule.Required {
				if bad := nullRows(cells); len(bad) > 0 {
					emit(IssueRequiredMissing, bad, rowExamples(bad))
				}
			}
			if rule.Type != "" {
				if bad := typeMismatches(cells, rule.Type); len(bad) > 0 {
					emit(IssueTypeMismatch, bad, cellExamples(cells, bad))
				}
			}
			if rule.Min != nil {
				if bad := numericViolations(cells, func(n float64) bool { return n < *rule.Min }); len(bad) > 0 {
					emit(IssueBelowMin, bad, cellExamples(cells, bad))
				}
			}
			if rule.Max != nil {
				if bad := numericViolations(cells, func(n float64) bool { return n > *rule.Max }); len(bad) > 0 {
					emit(IssueAboveMax, bad, cellExamples(cells, bad))
				}
			}
			if rule.Pattern != nil {
				var bad []int
				for row, cell := range cells {
					if cell.IsNull() {
						continue
					}
					if !rule.Pattern.MatchString(cell.String()) {
						bad = append(bad, row)
					}
				}
				if len(bad) > 0 {
					emit(IssueRegexMismatch, bad, cellExamples(cells, bad))
				}
			}
			if len(rule.Allowed) > 0 {
				var bad []int
				for row, cell := range cells {
					if cell.IsNull() {
						continue
					}
					if !rule.AllowedContains(cell) {
						bad = append(bad, row)
					}
				}
				if len(bad) > 0 {
					emit(IssueNotAllowed, bad, cellExamples(cells, bad))
				}
			}
			if rule.NotFuture {
				var bad []int
				for row, cell := range cells {
					if t, ok := cell.AsTime(); ok && t.After(now) {
						bad = append(bad, row)
					}
				}
				if len(bad) > 0 {
					emit(IssueDateInFuture, bad, cellExamples(cells, bad))
				}
			}
		}

		invalidCount := 0
		for _, bad := range invalidMask {
			if bad {
				invalidCount++
			}
		}
		invalidTotal += invalidCount
		metrics.Columns[name] = ColumnValidity{
			Invalid:      CountPct{Count: invalidCount, Pct: ratio(invalidCount, rows)},
			InferredType: inferredType(inferred, name),
		}
	}

	metrics.Global = CountPct{Count: invalidTotal, Pct: ratio(invalidTotal, totalCells)}
	return metrics, issues
}

func inferredType(inferred map[string]dataset.ColumnType, name string) dataset.ColumnType {
	if t, ok := inferred[name]; ok {
		return t
	}
	return dataset.TypeString
}

func nullRows(cells []dataset.Value) []int {
	var out []int
	for row, cell := range cells {
		if cell.IsNull() {
			out = append(out, row)
		}
	}
	return out
}

// typeMismatches returns the rows whose non-null cell has no reading in
// the declared type. An unknown declared type constrains nothing.
func typeMismatches(cells []dataset.Value, declared string) []int {
	var out []int
	for row, cell := range cells {
		if cell.IsNull() {
			continue
		}
		var ok bool
		switch declared {
		case "int":
			var n float64
			n, ok = cell.AsNumber()
			ok = ok && dataset.Number(n).IsIntegral()
		case "float":
			_, ok = cell.AsNumber()
		case "bool":
			_, ok = cell.AsBool()
		case "date":
			_, ok = cell.AsTime()
		default:
			ok = true
		}
		if !ok {
			out = append(out, row)
		}
	}
	return out
}

// numericViolations applies a numeric predicate to cells that have a
// numeric reading; cells without one are not counted here (type checks
// cover them).
func numericViolations(cells []dataset.Value, violates func(float64) bool) []int {
	var out []int
	for row, cell := range cells {
		if n, ok := cell.AsNumber(); ok && violates(n) {
			out = append(out, row)
		}
	}
	return out
}

// cellExamples renders the offending cell values for the given rows.
func cellExamples(cells []dataset.Value, badRows []int) []string {
	return takeExamples(badRows, func(row int) string {
		return cells[row].String()
	})
}
