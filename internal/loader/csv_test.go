package loader

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelens-labs/probelens/internal/testutil"
	"github.com/probelens-labs/probelens/pkg/checks"
	"github.com/probelens-labs/probelens/pkg/dataset"
	"github.com/probelens-labs/probelens/pkg/profile"
)

var defaultNulls = []string{"", "NA", "NaN", "null", "N/A"}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "input.csv", "id,age,name\n1,30,alice\n2,NA,bob\n3,25.5,\n")

	ds, err := ReadCSV(path, ReadOptions{NullMarkers: defaultNulls, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.NumRows())
	assert.Equal(t, []string{"id", "age", "name"}, ds.ColumnNames())

	age, ok := ds.Cells("age")
	require.True(t, ok)
	assert.Equal(t, dataset.Number(30), age[0])
	assert.Equal(t, dataset.Null(), age[1])
	assert.Equal(t, dataset.Number(25.5), age[2])

	name, ok := ds.Cells("name")
	require.True(t, ok)
	assert.Equal(t, dataset.Text("alice"), name[0])
	assert.Equal(t, dataset.Null(), name[2])
}

func TestReadCSVCustomDelimiter(t *testing.T) {
	path := writeFile(t, "input.csv", "a;b\n1;x\n")

	ds, err := ReadCSV(path, ReadOptions{Delimiter: ';', NullMarkers: defaultNulls})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, ds.ColumnNames())
	assert.Equal(t, 1, ds.NumRows())
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), ReadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestReadCSVRaggedRecord(t *testing.T) {
	path := writeFile(t, "input.csv", "a,b\n1,2\n3\n")

	_, err := ReadCSV(path, ReadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse CSV")
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteSummaryCSV(t *testing.T) {
	dir := t.TempDir()
	total := 87.5
	summary := []profile.SummaryRow{
		{Column: "age", InferredType: dataset.TypeInt, MissingCount: 1, MissingPct: 0.25},
		{Column: profile.GlobalRow, MissingCount: 1, DuplicateRowsCount: 2, ScoreTotal: &total},
	}

	path, err := WriteSummaryCSV(summary, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary.csv"), path)

	records := readAll(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, "column", records[0][0])
	assert.Equal(t, []string{"age", "int", "1", "0.25", "0", "0", "0", "0", "", "", "", "", ""}, records[1])
	assert.Equal(t, "__global__", records[2][0])
	assert.Equal(t, "2", records[2][8])
	assert.Equal(t, "87.5", records[2][12])
}

func TestWriteIssuesCSV(t *testing.T) {
	dir := t.TempDir()
	issues := []checks.Issue{
		{Kind: checks.IssueMissingValues, Columns: []string{"age"}, Count: 3, Examples: []string{"0", "2"}},
		{Kind: checks.IssueDuplicateRows, Count: 1},
	}

	path, err := WriteIssuesCSV(issues, dir)
	require.NoError(t, err)

	records := readAll(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"type", "columns", "count", "examples"}, records[0])
	assert.Equal(t, []string{"missing_values", "age", "3", "0;2"}, records[1])
	assert.Equal(t, []string{"duplicate_rows", "", "1", ""}, records[2])
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, EnsureOutputDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
