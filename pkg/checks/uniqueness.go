package checks

import (
	"strconv"

	"github.com/probelens-labs/probelens/pkg/dataset"
)

// KeyMetrics reports duplicates for one declared key group.
type KeyMetrics struct {
	Count   int      `json:"count"`
	Pct     float64  `json:"pct"`
	Columns []string `json:"columns"`
}

// UniquenessMetrics reports whole-row duplicates plus duplicates per
// declared key group, each evaluated independently.
type UniquenessMetrics struct {
	DuplicateRows   CountPct              `json:"duplicate_rows"`
	DuplicatesOnKey map[string]KeyMetrics `json:"duplicates_on_key"`
}

// KeyLabelID is the metrics label for the id-column key group.
const KeyLabelID = "id_cols"

// Uniqueness detects duplicate rows. A row is a duplicate iff an
// identical row occurred earlier; the first occurrence is never counted.
// idCols, when non-empty, forms an additional key group labeled id_cols;
// each ruleset unique-key group is labeled unique_key_N in declaration
// order. A key group referencing absent columns yields a missing_columns
// issue instead of failing.
func Uniqueness(ds *dataset.Dataset, idCols []string, uniqueKeys [][]string) (UniquenessMetrics, []Issue) {
	var issues []Issue
	metrics := UniquenessMetrics{DuplicatesOnKey: map[string]KeyMetrics{}}

	rows := ds.NumRows()
	allCols := ds.ColumnNames()

	dupRows := duplicateRows(ds, allCols)
	metrics.DuplicateRows = CountPct{Count: len(dupRows), Pct: ratio(len(dupRows), rows)}
	if len(dupRows) > 0 {
		issues = append(issues, Issue{
			Kind:     IssueDuplicateRows,
			Count:    len(dupRows),
			Examples: rowExamples(dupRows),
		})
	}

	handleKey := func(keyCols []string, label string) {
		var missing []string
		for _, col := range keyCols {
			if !ds.HasColumn(col) {
				missing = append(missing, col)
			}
		}
		if len(missing) > 0 {
			issues = append(issues, Issue{
				Kind:    IssueMissingColumns,
				Columns: missing,
				Count:   len(missing),
			})
			return
		}

		dups := duplicateRows(ds, keyCols)
		metrics.DuplicatesOnKey[label] = KeyMetrics{
			Count:   len(dups),
			Pct:     ratio(len(dups), rows),
			Columns: keyCols,
		}
		if len(dups) > 0 {
			issues = append(issues, Issue{
				Kind:     IssueDuplicateKey,
				Columns:  keyCols,
				Count:    len(dups),
				Examples: rowExamples(dups),
			})
		}
	}

	if len(idCols) > 0 {
		handleKey(idCols, KeyLabelID)
	}
	for i, cols := range uniqueKeys {
		handleKey(cols, keyLabel(i+1))
	}

	return metrics, issues
}

func keyLabel(n int) string {
	return "unique_key_" + strconv.Itoa(n)
}

// duplicateRows returns the indices of rows whose key over the given
// columns was already seen on an earlier row.
func duplicateRows(ds *dataset.Dataset, columns []string) []int {
	seen := make(map[string]struct{}, ds.NumRows())
	var dups []int
	for row := 0; row < ds.NumRows(); row++ {
		key := ds.RowKey(row, columns)
		if _, ok := seen[key]; ok {
			dups = append(dups, row)
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
