package checks

import (
	"github.com/probelens-labs/probelens/pkg/dataset"
	"github.com/probelens-labs/probelens/pkg/expr"
	"github.com/probelens-labs/probelens/pkg/rules"
)

// RuleMetrics is the per-row-rule breakdown.
type RuleMetrics struct {
	Invalid CountPct `json:"invalid"`
	Expr    string   `json:"expr"`
}

// ConsistencyMetrics reports row-rule violations. The global count sums
// violations across rules; its percentage is over the row count.
type ConsistencyMetrics struct {
	Global CountPct               `json:"global"`
	Rules  map[string]RuleMetrics `json:"rules"`
}

// Consistency evaluates each row rule through the expression engine. A
// row passes only when the predicate is true; a null result counts as
// failing, so ambiguous rows are never silently accepted. A rule whose
// expression fails to parse or evaluate becomes a row_rule_error issue
// with a zeroed metric, and the remaining rules still run.
func Consistency(ds *dataset.Dataset, rs *rules.Set) (ConsistencyMetrics, []Issue) {
	metrics := ConsistencyMetrics{Rules: map[string]RuleMetrics{}}
	if rs == nil || len(rs.RowRules) == 0 {
		return metrics, nil
	}

	var issues []Issue
	rows := ds.NumRows()
	totalInvalid := 0

	for _, rule := range rs.RowRules {
		result, err := expr.EvalRule(rule.Expr, ds)
		if err != nil {
			issues = append(issues, Issue{
				Kind:     IssueRowRuleError,
				Count:    0,
				Examples: []string{err.Error()},
			})
			metrics.Rules[rule.Name] = RuleMetrics{Expr: rule.Expr}
			continue
		}

		var invalidRows []int
		for row, tri := range result {
			if tri != expr.TriTrue {
				invalidRows = append(invalidRows, row)
			}
		}

		count := len(invalidRows)
		totalInvalid += count
		metrics.Rules[rule.Name] = RuleMetrics{
			Invalid: CountPct{Count: count, Pct: ratio(count, rows)},
			Expr:    rule.Expr,
		}
		if count > 0 {
			issues = append(issues, Issue{
				Kind:     IssueRowRuleViolation,
				Count:    count,
				Examples: rowExamples(invalidRows),
			})
		}
	}

	metrics.Global = CountPct{Count: totalInvalid, Pct: ratio(totalInvalid, rows)}
	return metrics, issues
}
