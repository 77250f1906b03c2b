package format

import (
	"github.com/roach88/verdict/internal/result"
)

// legacyKnownKeys are the per-test fields the legacy format maps onto the
// canonical schema directly. score and max_score are deliberately not here:
// they are adapter-specific and live in the extra bag.
var legacyKnownKeys = map[string]bool{
	"name":   true,
	"output": true,
	"status": true,
	"tags":   true,
}

// legacyTopLevelKeys are the legacy document fields consumed during
// parsing. Remaining top-level keys (autograder_output, stdout_visibility,
// ...) are preserved in the set's extra bag.
var legacyTopLevelKeys = map[string]bool{
	"execution_time": true,
	"tests":          true,
}

// LegacyAdapter handles the older third-party result format. A test's
// verdict derives from its status field when set, otherwise from
// score == max_score.
type LegacyAdapter struct{}

func (a *LegacyAdapter) Name() string { return FormatLegacy }

// Match selects this adapter when either legacy discriminator is present at
// the top level.
func (a *LegacyAdapter) Match(doc map[string]any) bool {
	_, hasOutput := doc["autograder_output"]
	_, hasVisibility := doc["stdout_visibility"]
	return hasOutput || hasVisibility
}

// Parse normalizes a legacy document. Point totals accumulate over tests
// that carry a nonzero max_score and are recorded on the set.
func (a *LegacyAdapter) Parse(doc map[string]any) (*result.Set, error) {
	rawTests, err := result.RequireSlice(doc, "tests")
	if err != nil {
		return nil, err
	}

	var score, maxScore float64
	tests := make([]*result.Test, 0, len(rawTests))
	for _, v := range rawTests {
		td, ok := v.(map[string]any)
		if !ok {
			return nil, &result.MissingFieldError{Field: "tests", Fragment: result.Fragment(v)}
		}
		t, err := decodeLegacyTest(td)
		if err != nil {
			return nil, err
		}
		if max := result.OptionalFloat(td, "max_score", 0); max != 0 {
			score += result.OptionalFloat(td, "score", 0)
			maxScore += max
		}
		tests = append(tests, t)
	}

	s := result.NewSet(result.OptionalFloat(doc, "execution_time", 0), tests)
	s.SetScoreTotals(score, maxScore)
	for k, v := range doc {
		if !legacyTopLevelKeys[k] {
			s.AddExtraItem(k, v)
		}
	}
	return s, nil
}

func decodeLegacyTest(doc map[string]any) (*result.Test, error) {
	name, err := result.RequireString(doc, "name")
	if err != nil {
		return nil, err
	}
	t := result.NewTest(name, legacyStatus(doc))
	t.Output = result.OptionalString(doc, "output", "")
	t.Tags = result.OptionalStrings(doc, "tags")
	for k, v := range doc {
		if !legacyKnownKeys[k] {
			t.AddExtraItem(k, v)
		}
	}
	return t, nil
}

// legacyStatus resolves the canonical status: an explicit status field wins;
// otherwise the test passes iff score equals max_score.
func legacyStatus(doc map[string]any) result.Status {
	if s := result.OptionalString(doc, "status", ""); s != "" {
		return result.Status(s)
	}
	score := result.OptionalFloat(doc, "score", 0)
	maxScore := result.OptionalFloat(doc, "max_score", 0)
	if score == maxScore {
		return result.StatusPassed
	}
	return result.StatusFailed
}

// Serialize re-emits the legacy shape. Adapter-specific fields (score,
// max_score, visibility, ...) come back out of the extra bags.
func (a *LegacyAdapter) Serialize(s *result.Set) (map[string]any, error) {
	tests := make([]any, 0, len(s.Tests()))
	for _, t := range s.Tests() {
		d := map[string]any{
			"name":   t.Name,
			"output": t.Output,
			"status": string(t.Status),
		}
		if len(t.Tags) > 0 {
			d["tags"] = t.Tags
		}
		for k, v := range t.Extra() {
			d[k] = v
		}
		tests = append(tests, d)
	}
	doc := map[string]any{
		"execution_time": s.ExecutionTime,
		"tests":          tests,
	}
	for k, v := range s.Extra {
		doc[k] = v
	}
	return doc, nil
}
