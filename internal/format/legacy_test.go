package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/verdict/internal/result"
)

func TestLegacyParse_StatusWinsOverScore(t *testing.T) {
	doc := parseJSON(t, `{
		"stdout_visibility": "hidden",
		"tests": [
			{"name": "t1", "status": "failed", "score": 5, "max_score": 5}
		]
	}`)

	set, err := (&LegacyAdapter{}).Parse(doc)
	require.NoError(t, err)
	t1, err := set.GetTest("t1", false)
	require.NoError(t, err)
	// Explicit status wins even when the score says otherwise.
	assert.Equal(t, result.StatusFailed, t1.Status)
}

func TestLegacyParse_ScoreDerivesStatus(t *testing.T) {
	testCases := []struct {
		name     string
		test     string
		expected result.Status
	}{
		{"full score passes", `{"name": "t1", "score": 5, "max_score": 5}`, result.StatusPassed},
		{"partial score fails", `{"name": "t1", "score": 3, "max_score": 5}`, result.StatusFailed},
		{"zero of zero passes", `{"name": "t1", "score": 0, "max_score": 0}`, result.StatusPassed},
		{"no fields at all passes", `{"name": "t1"}`, result.StatusPassed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parseJSON(t, `{"stdout_visibility": "x", "tests": [`+tc.test+`]}`)
			set, err := (&LegacyAdapter{}).Parse(doc)
			require.NoError(t, err)
			t1, err := set.GetTest("t1", false)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, t1.Status)
		})
	}
}

func TestLegacyParse_ScoreFieldsPreservedInExtra(t *testing.T) {
	doc := parseJSON(t, `{
		"autograder_output": "ran 2 tests",
		"tests": [
			{"name": "t1", "output": "ok", "score": 5, "max_score": 5,
			 "output_format": "text", "visibility": "visible"}
		]
	}`)

	set, err := (&LegacyAdapter{}).Parse(doc)
	require.NoError(t, err)

	t1, err := set.GetTest("t1", false)
	require.NoError(t, err)
	assert.Equal(t, 5.0, t1.Extra()["score"])
	assert.Equal(t, 5.0, t1.Extra()["max_score"])
	assert.Equal(t, "visible", t1.Extra()["visibility"])
	// The legacy discriminators ride along on the set.
	assert.Equal(t, "ran 2 tests", set.Extra["autograder_output"])
}

func TestLegacyParse_ScoreTotals(t *testing.T) {
	doc := parseJSON(t, `{
		"stdout_visibility": "x",
		"execution_time": 3,
		"tests": [
			{"name": "t1", "score": 5, "max_score": 5},
			{"name": "t2", "score": 1, "max_score": 3},
			{"name": "t3", "status": "passed"}
		]
	}`)

	set, err := (&LegacyAdapter{}).Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, 6.0, set.Score())
	assert.Equal(t, 8.0, set.MaxScore())
	assert.Equal(t, 3.0, set.ExecutionTime)
}

func TestLegacyParse_MissingTests(t *testing.T) {
	_, err := (&LegacyAdapter{}).Parse(map[string]any{"stdout_visibility": "x"})
	require.Error(t, err)
	assert.True(t, result.IsMissingField(err))
}

func TestLegacySerialize_RoundTrip(t *testing.T) {
	doc := parseJSON(t, `{
		"stdout_visibility": "hidden",
		"execution_time": 1,
		"tests": [
			{"name": "t1", "output": "boom", "score": 1, "max_score": 5, "visibility": "visible"}
		]
	}`)

	a := &LegacyAdapter{}
	set, err := a.Parse(doc)
	require.NoError(t, err)

	out, err := a.Serialize(set)
	require.NoError(t, err)
	// The discriminator survives, so the emitted document re-detects as legacy.
	detected, err := Detect(out)
	require.NoError(t, err)
	assert.Equal(t, FormatLegacy, detected.Name())

	reparsed, err := a.Parse(parseJSONBytes(t, out))
	require.NoError(t, err)
	t1, err := reparsed.GetTest("t1", false)
	require.NoError(t, err)
	assert.Equal(t, result.StatusFailed, t1.Status)
	assert.Equal(t, "boom", t1.Output)
	assert.Equal(t, 1.0, t1.Extra()["score"])
	assert.Equal(t, 5.0, t1.Extra()["max_score"])
	assert.Equal(t, "visible", t1.Extra()["visibility"])
}
