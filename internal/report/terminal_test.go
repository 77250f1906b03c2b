package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/verdict/internal/compare"
	"github.com/roach88/verdict/internal/result"
)

func mixedComparison(t *testing.T) *compare.Result {
	t.Helper()
	pass := result.NewTest("good", result.StatusPassed)
	pass.Output = "fine"
	flip := result.NewTest("flip", result.StatusFailed)
	flip.Output = "boom"
	actual := result.NewSet(0, []*result.Test{pass, flip})

	expGood := result.NewTest("good", result.StatusPassed)
	expFlip := result.NewTest("flip", result.StatusPassed)
	expected := result.NewSet(0, []*result.Test{expGood, expFlip})

	r, err := compare.Build(actual, expected, "")
	require.NoError(t, err)
	return r
}

func TestPrintComparison_FailingLinesAndFooter(t *testing.T) {
	var buf strings.Builder
	ok := PrintComparison(&buf, mixedComparison(t), DefaultPrintOptions())
	out := buf.String()

	assert.False(t, ok)
	assert.Contains(t, out, "flip")
	assert.Contains(t, out, "FAIL (result)")
	// Passing tests are omitted by default.
	assert.NotContains(t, out, "good")
	assert.Contains(t, out, "=== Check expected results ===")
	assert.Contains(t, out, "Matched: 1 / 2 tests (1 failed)")
	// Failure output rides along, indented.
	assert.Contains(t, out, "\tExpected test status 'passed' but was 'failed'")
}

func TestPrintComparison_PrintPassing(t *testing.T) {
	opts := DefaultPrintOptions()
	opts.PrintPassing = true

	var buf strings.Builder
	PrintComparison(&buf, mixedComparison(t), opts)
	out := buf.String()
	assert.Contains(t, out, "good")
	assert.Contains(t, out, "PASS")
}

func TestPrintComparison_SummaryOnly(t *testing.T) {
	opts := DefaultPrintOptions()
	opts.SummaryOnly = true

	var buf strings.Builder
	ok := PrintComparison(&buf, mixedComparison(t), opts)
	out := buf.String()
	assert.False(t, ok)
	assert.NotContains(t, out, "flip")
	assert.Contains(t, out, "Matched: 1 / 2 tests")
}

func TestPrintComparison_Empty(t *testing.T) {
	r, err := compare.Build(result.NewSet(0, nil), result.NewSet(0, nil), "")
	require.NoError(t, err)

	var buf strings.Builder
	PrintComparison(&buf, r, DefaultPrintOptions())
	assert.Contains(t, buf.String(), "No tests found")
}

func TestPrintSet_ScoreAndNotes(t *testing.T) {
	t1 := result.NewTest("t1", result.StatusPassed)
	t1.AddExtra(map[string]any{"score": 5.0, "max_score": 5.0})
	s := result.NewSet(0, []*result.Test{t1})
	s.SetScoreTotals(5, 5)
	s.AddRubric(map[string]result.GradeEntry{"q1": {Title: "Q1", Max: 5}})
	s.AddNotes(map[string]any{"autogrades": map[string]any{"q1": 4.0}})

	var buf strings.Builder
	PrintSet(&buf, s, true, DefaultPrintOptions())
	out := buf.String()

	assert.Contains(t, out, "5/5")
	assert.Contains(t, out, "=== Tests ===")
	assert.Contains(t, out, "Passed: 1 / 1 tests")
	assert.Contains(t, out, "Score: 5/5")
	assert.Contains(t, out, "=== Grading notes ===")
	assert.Contains(t, out, "q1:  4 / 5")
}

func TestPrintSet_NoTests(t *testing.T) {
	var buf strings.Builder
	PrintSet(&buf, result.NewSet(0, nil), true, DefaultPrintOptions())
	assert.Contains(t, buf.String(), "No per-test results found")
}

func TestFormatStatusBool(t *testing.T) {
	assert.Contains(t, FormatStatusBool(true), "[PASS]")
	assert.Contains(t, FormatStatusBool(false), "[FAIL]")
}
