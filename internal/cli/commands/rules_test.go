package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesValidate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.yaml", sampleRules)

	out, err := execute(newTestRoot(), "rules", "validate", path)
	require.NoError(t, err)

	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "column rules: 1")
	assert.Contains(t, out, "unique keys:  1")
	assert.Contains(t, out, "row rules:    1")
	assert.Contains(t, out, "key: id")
}

func TestRulesValidateMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rules.yaml", "columns:\n  age: just a string\n")

	_, err := execute(newTestRoot(), "rules", "validate", path)
	require.Error(t, err)

	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestRulesValidateMissingFile(t *testing.T) {
	_, err := execute(newTestRoot(), "rules", "validate", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
