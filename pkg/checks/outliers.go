package checks

import (
	"sort"

	"github.com/probelens-labs/probelens/pkg/dataset"
)

// OutlierMetrics reports Tukey-fence outliers per numeric column. The
// global percentage is over all parsable numeric cells of qualifying
// columns; columns with zero parsable values are excluded from both
// numerator and denominator.
type OutlierMetrics struct {
	Global  CountPct            `json:"global"`
	Columns map[string]CountPct `json:"columns"`
}

// Outliers applies the IQR fence per column whose inferred type is int
// or float:
// fence = [Q1 - 1.5*IQR, Q3 + 1.5*IQR] over the column's non-null
// numeric readings. A value strictly outside the fence is an outlier; a
// value exactly on a fence is not.
func Outliers(ds *dataset.Dataset, inferred map[string]dataset.ColumnType) (OutlierMetrics, []Issue) {
	var issues []Issue
	metrics := OutlierMetrics{Columns: map[string]CountPct{}}

	totalNumeric := 0
	totalOutliers := 0

	for _, name := range ds.ColumnNames() {
		switch inferredType(inferred, name) {
		case dataset.TypeInt, dataset.TypeFloat:
		default:
			continue
		}
		cells, _ := ds.Cells(name)

		var nums []float64
		for _, cell := range cells {
			if cell.IsNull() {
				continue
			}
			if n, ok := cell.AsNumber(); ok {
				nums = append(nums, n)
			}
		}
		if len(nums) == 0 {
			continue
		}

		lower, upper := tukeyFence(nums)
		var outliers []float64
		for _, n := range nums {
			if n < lower || n > upper {
				outliers = append(outliers, n)
			}
		}

		totalNumeric += len(nums)
		totalOutliers += len(outliers)
		metrics.Columns[name] = CountPct{Count: len(outliers), Pct: ratio(len(outliers), len(nums))}

		if len(outliers) > 0 {
			issues = append(issues, Issue{
				Kind:    IssueOutliers,
				Columns: []string{name},
				Count:   len(outliers),
				Examples: takeExamples(outliers, func(n float64) string {
					return dataset.Number(n).String()
				}),
			})
		}
	}

	metrics.Global = CountPct{Count: totalOutliers, Pct: ratio(totalOutliers, totalNumeric)}
	return metrics, issues
}

// tukeyFence computes the [Q1-1.5*IQR, Q3+1.5*IQR] fence.
func tukeyFence(values []float64) (lower, upper float64) {
	q1 := quantile(values, 0.25)
	q3 := quantile(values, 0.75)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

// quantile computes the q-th quantile with linear interpolation between
// the two nearest order statistics.
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
