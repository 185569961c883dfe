package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelens-labs/probelens/pkg/dataset"
)

func TestConsistencyRowRules(t *testing.T) {
	ds := mustDataset(t, []dataset.Column{
		{Name: "age", Cells: []dataset.Value{
			dataset.Number(25), dataset.Number(-1), dataset.Number(130),
		}},
	})
	rs := ruleSet(t, "row_rules:\n  - name: age_range\n    expr: \"age >= 0 and age <= 120\"\n")

	metrics, issues := Consistency(ds, rs)

	rule := metrics.Rules["age_range"]
	assert.Equal(t, 2, rule.Invalid.Count)
	assert.InDelta(t, 2.0/3.0, rule.Invalid.Pct, 1e-9)
	assert.Equal(t, "age >= 0 and age <= 120", rule.Expr)
	assert.Equal(t, 2, metrics.Global.Count)

	require.Len(t, issues, 1)
	assert.Equal(t, IssueRowRuleViolation, issues[0].Kind)
	assert.Equal(t, []string{"1", "2"}, issues[0].Examples)
}

func TestConsistencyNullCountsAsFailing(t *testing.T) {
	ds := mustDataset(t, []dataset.Column{
		{Name: "age", Cells: []dataset.Value{dataset.Number(25), dataset.Null()}},
	})
	rs := ruleSet(t, "row_rules:\n  - name: age_range\n    expr: \"age >= 0 and age <= 120\"\n")

	metrics, issues := Consistency(ds, rs)

	assert.Equal(t, 1, metrics.Rules["age_range"].Invalid.Count)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueRowRuleViolation, issues[0].Kind)
}

func TestConsistencyBadRuleDoesNotBlockOthers(t *testing.T) {
	ds := mustDataset(t, []dataset.Column{
		{Name: "age", Cells: []dataset.Value{dataset.Number(25), dataset.Number(-1)}},
	})
	rs := ruleSet(t, `
row_rules:
  - name: broken
    expr: "zz > 0"
  - name: unparsable
    expr: "age >"
  - name: ok
    expr: "age >= 0"
`)

	metrics, issues := Consistency(ds, rs)

	// Failed rules keep a zeroed metric and the run continues.
	assert.Equal(t, 0, metrics.Rules["broken"].Invalid.Count)
	assert.Equal(t, 0, metrics.Rules["unparsable"].Invalid.Count)
	assert.Equal(t, 1, metrics.Rules["ok"].Invalid.Count)
	assert.Equal(t, 1, metrics.Global.Count)

	errorCount := 0
	for _, issue := range issues {
		if issue.Kind == IssueRowRuleError {
			errorCount++
			assert.Zero(t, issue.Count)
			require.Len(t, issue.Examples, 1)
		}
	}
	assert.Equal(t, 2, errorCount)
}

func TestConsistencyNoRules(t *testing.T) {
	ds := mustDataset(t, []dataset.Column{
		{Name: "a", Cells: []dataset.Value{dataset.Number(1)}},
	})

	metrics, issues := Consistency(ds, nil)
	assert.Empty(t, issues)
	assert.Equal(t, 0, metrics.Global.Count)
}
