package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

const passingResults = `{
	"stdout_visibility": "visible",
	"tests": [{"name": "t1", "status": "passed", "output": "ok"}]
}`

const failingResults = `{
	"stdout_visibility": "visible",
	"tests": [{"name": "t1", "status": "failed", "output": "boom"}]
}`

func TestCompare_PassingExitsZero(t *testing.T) {
	dir := t.TempDir()
	actual := writeFile(t, dir, "actual.json", passingResults)
	expected := writeFile(t, dir, "expected.json", passingResults)

	out, err := execute(t, "compare", actual, expected)
	require.NoError(t, err)
	assert.Contains(t, out, "Matched: 1 / 1 tests")
}

func TestCompare_FailingExitsOne(t *testing.T) {
	dir := t.TempDir()
	actual := writeFile(t, dir, "actual.json", failingResults)
	expected := writeFile(t, dir, "expected.json", passingResults)

	out, err := execute(t, "compare", actual, expected)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL (result)")
}

func TestCompare_UnreadableInputExitsTwo(t *testing.T) {
	dir := t.TempDir()
	expected := writeFile(t, dir, "expected.json", passingResults)

	_, err := execute(t, "compare", filepath.Join(dir, "absent.json"), expected)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCompare_UnknownFormatFlagExitsTwo(t *testing.T) {
	dir := t.TempDir()
	actual := writeFile(t, dir, "actual.json", passingResults)
	expected := writeFile(t, dir, "expected.json", passingResults)

	_, err := execute(t, "compare", actual, expected, "--actual-format", "junit")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCompare_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	actual := writeFile(t, dir, "actual.json", passingResults)
	expected := writeFile(t, dir, "expected.json", passingResults)

	out, err := execute(t, "compare", actual, expected, "--format", "json", "--suite", "ci")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Suite  string `json:"suite"`
			Status string `json:"status"`
			Tests  int    `json:"tests"`
			Passed int    `json:"passed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ci", resp.Data.Suite)
	assert.Equal(t, "passed", resp.Data.Status)
	assert.Equal(t, 1, resp.Data.Tests)
	assert.Equal(t, 1, resp.Data.Passed)
}

func TestCompare_WritesComparisonDocument(t *testing.T) {
	dir := t.TempDir()
	actual := writeFile(t, dir, "actual.json", passingResults)
	expected := writeFile(t, dir, "expected.json", passingResults)
	outPath := filepath.Join(dir, "comparison.json")

	_, err := execute(t, "compare", actual, expected, "--out", outPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "CTRF", doc["reportFormat"])
}

func TestCompare_SavesRunToDatabase(t *testing.T) {
	dir := t.TempDir()
	actual := writeFile(t, dir, "actual.json", passingResults)
	expected := writeFile(t, dir, "expected.json", passingResults)
	dbPath := filepath.Join(dir, "runs.db")

	out, err := execute(t, "compare", actual, expected, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved run ")
	assert.FileExists(t, dbPath)
}

func TestCompare_ExplicitFormatBypassesDetection(t *testing.T) {
	dir := t.TempDir()
	// No legacy discriminator; auto-detection would reject this document.
	bare := writeFile(t, dir, "bare.json", `{"tests": [{"name": "t1", "status": "passed"}]}`)
	expected := writeFile(t, dir, "expected.json", passingResults)

	_, err := execute(t, "compare", bare, expected)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "compare", bare, expected, "--actual-format", "native")
	require.NoError(t, err)
}
