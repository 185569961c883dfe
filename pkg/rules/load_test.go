package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelens-labs/probelens/pkg/dataset"
)

const sampleRules = `
columns:
  age:
    type: int
    required: true
    min: 0
    max: 120
  email:
    regex: '[^@]+@[^@]+'
  status:
    allowed: [active, closed, 7]
  signup_date:
    type: date
    not_future: true
unique_keys:
  - [customer_id]
  - [email, signup_date]
  - order_id
row_rules:
  - name: age_range
    expr: "age >= 0 and age <= 120"
`

func TestParseRules(t *testing.T) {
	set, err := Parse([]byte(sampleRules))
	require.NoError(t, err)

	age, ok := set.ColumnRule("age")
	require.True(t, ok)
	assert.Equal(t, "int", age.Type)
	assert.True(t, age.Required)
	require.NotNil(t, age.Min)
	assert.Equal(t, 0.0, *age.Min)
	require.NotNil(t, age.Max)
	assert.Equal(t, 120.0, *age.Max)

	email, ok := set.ColumnRule("email")
	require.True(t, ok)
	require.NotNil(t, email.Pattern)
	assert.True(t, email.Pattern.MatchString("a@b.com"))
	assert.False(t, email.Pattern.MatchString("nope"))

	status, ok := set.ColumnRule("status")
	require.True(t, ok)
	assert.True(t, status.AllowedContains(dataset.Text("active")))
	assert.True(t, status.AllowedContains(dataset.Number(7)))
	assert.True(t, status.AllowedContains(dataset.Text("7")))
	assert.False(t, status.AllowedContains(dataset.Text("other")))

	date, ok := set.ColumnRule("signup_date")
	require.True(t, ok)
	assert.True(t, date.NotFuture)

	require.Len(t, set.UniqueKeys, 3)
	assert.Equal(t, []string{"customer_id"}, set.UniqueKeys[0])
	assert.Equal(t, []string{"email", "signup_date"}, set.UniqueKeys[1])
	assert.Equal(t, []string{"order_id"}, set.UniqueKeys[2])

	require.Len(t, set.RowRules, 1)
	assert.Equal(t, "age_range", set.RowRules[0].Name)

	assert.Equal(t, []string{"age", "email", "status", "signup_date"}, set.ColumnNames())
}

func TestParseRulesEmpty(t *testing.T) {
	set, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, set.Columns)
	assert.Empty(t, set.UniqueKeys)
	assert.Empty(t, set.RowRules)
}

func TestParseRulesStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "non-mapping root", yaml: "- 1\n- 2\n", want: "mapping at root"},
		{name: "columns not mapping", yaml: "columns:\n  - a\n", want: "columns must be a mapping"},
		{name: "column entry not mapping", yaml: "columns:\n  age: 7\n", want: "must be a mapping"},
		{name: "unique_keys not list", yaml: "unique_keys: 5\n", want: "unique_keys must be a list"},
		{name: "row_rules not list", yaml: "row_rules: nope\n", want: "row_rules must be a list"},
		{name: "row_rule missing expr", yaml: "row_rules:\n  - name: r1\n", want: "name and expr"},
		{name: "row_rule missing name", yaml: "row_rules:\n  - expr: a > 1\n", want: "name and expr"},
		{name: "row_rule scalar", yaml: "row_rules:\n  - just_a_name\n", want: "name and expr"},
		{name: "bad regex", yaml: "columns:\n  a:\n    regex: '['\n", want: "invalid regex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMissingColumns(t *testing.T) {
	set, err := Parse([]byte("columns:\n  a: {required: true}\n  zz: {required: true}\n"))
	require.NoError(t, err)

	ds, err := dataset.New([]dataset.Column{
		{Name: "a", Cells: []dataset.Value{dataset.Number(1)}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"zz"}, set.MissingColumns(ds))
}
