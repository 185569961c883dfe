// Package checks implements the five data-quality checks: completeness,
// uniqueness, validity, outliers, and consistency. Each check is a pure
// function from (dataset, ruleset) to (metrics, issues): no shared
// mutable state, safe to run in any order or concurrently over the same
// immutable inputs.
package checks

import "strconv"

// IssueKind tags the class of a detected data-quality problem.
type IssueKind string

const (
	IssueMissingValues     IssueKind = "missing_values"
	IssueDuplicateRows     IssueKind = "duplicate_rows"
	IssueDuplicateKey      IssueKind = "duplicate_key"
	IssueMissingColumns    IssueKind = "missing_columns"
	IssueRequiredMissing   IssueKind = "required_missing"
	IssueTypeMismatch      IssueKind = "type_mismatch"
	IssueBelowMin          IssueKind = "below_min"
	IssueAboveMax          IssueKind = "above_max"
	IssueRegexMismatch     IssueKind = "regex_mismatch"
	IssueNotAllowed        IssueKind = "not_allowed"
	IssueDateInFuture      IssueKind = "date_in_future"
	IssueOutliers          IssueKind = "outliers"
	IssueRowRuleViolation  IssueKind = "row_rule_violation"
	IssueRowRuleError      IssueKind = "row_rule_error"
	IssueMissingRuleColumn IssueKind = "missing_rule_column"
)

// Issue is one detected problem class: its kind, the implicated columns,
// how many cells or rows are affected, and up to three example values.
type Issue struct {
	Kind     IssueKind `json:"type"`
	Columns  []string  `json:"columns"`
	Count    int       `json:"count"`
	Examples []string  `json:"examples"`
}

// CountPct pairs an absolute count with its share of some denominator.
// Percentages are rates in [0, 1].
type CountPct struct {
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// maxExamples bounds the example values attached to an issue.
const maxExamples = 3

// takeExamples stringifies at most maxExamples values.
func takeExamples[T any](values []T, render func(T) string) []string {
	n := len(values)
	if n > maxExamples {
		n = maxExamples
	}
	out := make([]string, 0, n)
	for _, v := range values[:n] {
		out = append(out, render(v))
	}
	return out
}

// rowExamples renders row indices as example identifiers.
func rowExamples(rows []int) []string {
	return takeExamples(rows, strconv.Itoa)
}

// ratio divides count by total, guarding the empty denominator.
func ratio(count, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(count) / float64(total)
}
