package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/verdict/internal/compare"
	"github.com/roach88/verdict/internal/result"
)

func TestRenderHTML_MixedComparison(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, RenderHTML(&buf, mixedComparison(t), "run-42"))
	out := buf.String()

	assert.Contains(t, out, "<title>Results for run run-42</title>")
	assert.Contains(t, out, "Matched: 1 / 2 tests")
	assert.Contains(t, out, `class="fail"`)
	assert.Contains(t, out, "bar-red")
	assert.Contains(t, out, "width: 50%")
	assert.Contains(t, out, "<td>flip</td>")
	assert.Contains(t, out, "<td>result</td>")
}

func TestRenderHTML_AllPassing(t *testing.T) {
	actual := result.NewSet(0, []*result.Test{result.NewTest("t1", result.StatusPassed)})
	expected := result.NewSet(0, []*result.Test{result.NewTest("t1", result.StatusPassed)})
	r, err := compare.Build(actual, expected, "")
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, RenderHTML(&buf, r, "ok"))
	out := buf.String()
	assert.Contains(t, out, "bar-green")
	assert.Contains(t, out, "width: 100%")
}

func TestRenderHTML_EscapesOutput(t *testing.T) {
	bad := result.NewTest("t1", result.StatusFailed)
	bad.Output = "<script>alert(1)</script>"
	actual := result.NewSet(0, []*result.Test{bad})
	expected := result.NewSet(0, []*result.Test{result.NewTest("t1", result.StatusPassed)})
	r, err := compare.Build(actual, expected, "")
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, RenderHTML(&buf, r, "x"))
	out := buf.String()
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderHTML_NormalizesNames(t *testing.T) {
	// NFD e + combining acute renders as its precomposed NFC form.
	decomposed := "cafe\u0301"
	tr := result.NewTest(decomposed, result.StatusPassed)
	actual := result.NewSet(0, []*result.Test{tr})
	expected := result.NewSet(0, []*result.Test{result.NewTest(decomposed, result.StatusPassed)})
	r, err := compare.Build(actual, expected, "")
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, RenderHTML(&buf, r, "x"))
	assert.Contains(t, buf.String(), "caf\u00e9")
}
