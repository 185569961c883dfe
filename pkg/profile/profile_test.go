package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelens-labs/probelens/internal/testutil"
	"github.com/probelens-labs/probelens/pkg/checks"
	"github.com/probelens-labs/probelens/pkg/dataset"
	"github.com/probelens-labs/probelens/pkg/rules"
)

func mustDataset(t *testing.T, cols []dataset.Column) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(cols)
	require.NoError(t, err)
	return ds
}

func mustRules(t *testing.T, doc string) *rules.Set {
	t.Helper()
	set, err := rules.Parse([]byte(doc))
	require.NoError(t, err)
	return set
}

func sampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	return mustDataset(t, []dataset.Column{
		{Name: "id", Cells: []dataset.Value{
			dataset.Number(1), dataset.Number(2), dataset.Number(2), dataset.Number(4),
		}},
		{Name: "age", Cells: []dataset.Value{
			dataset.Number(30), dataset.Null(), dataset.Number(200), dataset.Number(25),
		}},
		{Name: "name", Cells: []dataset.Value{
			dataset.Text("alice"), dataset.Text("bob"), dataset.Text("carol"), dataset.Null(),
		}},
	})
}

const sampleRulesDoc = `
columns:
  age:
    type: int
    min: 0
    max: 120
unique_keys:
  - [id]
row_rules:
  - name: adult
    expr: age >= 18
`

func TestRunSummaryAndMetrics(t *testing.T) {
	ds := sampleDataset(t)
	rs := mustRules(t, sampleRulesDoc)

	result, err := Run(context.Background(), ds, rs, Options{
		IDColumns: []string{"id"},
		RulesPath: "rules.yaml",
		Logger:    testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	require.Len(t, result.Summary, 4)
	byColumn := map[string]SummaryRow{}
	for _, row := range result.Summary {
		byColumn[row.Column] = row
	}

	age := byColumn["age"]
	assert.Equal(t, dataset.TypeInt, age.InferredType)
	assert.Equal(t, 1, age.MissingCount)
	assert.Equal(t, 1, age.InvalidCount)

	global, ok := byColumn[GlobalRow]
	require.True(t, ok)
	assert.Equal(t, 2, global.MissingCount)
	require.NotNil(t, global.ScoreTotal)
	assert.Equal(t, result.Scores.Total, *global.ScoreTotal)
	// the last summary row is always __global__
	assert.Equal(t, GlobalRow, result.Summary[len(result.Summary)-1].Column)

	assert.Equal(t, result.Metadata.RowCount, 4)
	assert.Equal(t, result.Metadata.ColumnCount, 3)
	assert.NotEmpty(t, result.Metadata.RunID)
	assert.Equal(t, "rules.yaml", result.Metadata.RulesPath)
	assert.Equal(t, []string{"id"}, result.Metadata.IDColumns)

	// id 2 repeats, so both id_cols and unique_key_1 report one duplicate
	assert.Equal(t, 1, result.Metrics.Uniqueness.DuplicatesOnKey[checks.KeyLabelID].Count)
	assert.Equal(t, 1, result.Metrics.Uniqueness.DuplicatesOnKey["unique_key_1"].Count)
	// the null age fails adult, and so does nothing else besides it
	assert.Equal(t, 1, result.Metrics.Consistency.Rules["adult"].Invalid.Count)
}

func TestRunIssuesSortedByCount(t *testing.T) {
	ds := sampleDataset(t)
	rs := mustRules(t, sampleRulesDoc)

	result, err := Run(context.Background(), ds, rs, Options{IDColumns: []string{"id"}})
	require.NoError(t, err)

	require.NotEmpty(t, result.Issues)
	for i := 1; i < len(result.Issues); i++ {
		assert.GreaterOrEqual(t, result.Issues[i-1].Count, result.Issues[i].Count)
	}
}

func TestRunMissingRuleColumn(t *testing.T) {
	ds := mustDataset(t, []dataset.Column{
		{Name: "a", Cells: []dataset.Value{dataset.Number(1)}},
	})
	rs := mustRules(t, "columns:\n  ghost:\n    required: true\n")

	result, err := Run(context.Background(), ds, rs, Options{})
	require.NoError(t, err)

	var found bool
	for _, issue := range result.Issues {
		if issue.Kind == checks.IssueMissingRuleColumn {
			found = true
			assert.Equal(t, []string{"ghost"}, issue.Columns)
			assert.Equal(t, 1, issue.Count)
		}
	}
	assert.True(t, found)
}

func TestRunBadRowRuleSurfacesAsIssue(t *testing.T) {
	ds := mustDataset(t, []dataset.Column{
		{Name: "a", Cells: []dataset.Value{dataset.Number(1)}},
	})
	rs := mustRules(t, "row_rules:\n  - name: broken\n    expr: \"a >\"\n")

	result, err := Run(context.Background(), ds, rs, Options{})
	require.NoError(t, err)

	var kinds []checks.IssueKind
	for _, issue := range result.Issues {
		kinds = append(kinds, issue.Kind)
	}
	assert.Contains(t, kinds, checks.IssueRowRuleError)
}

func TestRunWithoutRules(t *testing.T) {
	ds := sampleDataset(t)

	result, err := Run(context.Background(), ds, nil, Options{})
	require.NoError(t, err)

	assert.Empty(t, result.Metrics.Uniqueness.DuplicatesOnKey)
	assert.Equal(t, 0, result.Metrics.Validity.Global.Count)
	require.Len(t, result.Summary, 4)
}

func TestRunDeterministicApartFromRunMetadata(t *testing.T) {
	ds := sampleDataset(t)
	rs := mustRules(t, sampleRulesDoc)
	opts := Options{IDColumns: []string{"id"}}

	first, err := Run(context.Background(), ds, rs, opts)
	require.NoError(t, err)
	second, err := Run(context.Background(), ds, rs, opts)
	require.NoError(t, err)

	assert.NotEqual(t, first.Metadata.RunID, second.Metadata.RunID)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Issues, second.Issues)
	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.Metrics, second.Metrics)
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, sampleDataset(t), nil, Options{})
	require.ErrorIs(t, err, context.Canceled)
}
