package compare

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/roach88/verdict/internal/result"
)

// Result is the outcome of reconciling an actual result set against an
// expected one: one entry per test name in the combined universe, plus an
// aggregate status.
//
// Aggregate policy: a comparison passes iff it has at least one entry and
// every entry passes. An empty universe indicates a broken run and fails,
// on the freshly-built and the deserialized path alike.
type Result struct {
	ReportFormat string
	Version      string
	Tool         result.Tool
	Suite        string

	entries []*Entry
	status  result.Status
}

// Build reconciles actual against expected. Both sets are required; the
// classification itself is a pure function of the two inputs and produces
// either a complete result or an error, never a partial one.
func Build(actual, expected *result.Set, suite string) (*Result, error) {
	if actual == nil || expected == nil {
		return nil, fmt.Errorf("comparison requires both actual and expected result sets")
	}

	// Expected tests are the reference frame; actual-only names follow in
	// actual's order.
	names := expected.TestNames()
	inExpected := make(map[string]bool, len(names))
	for _, n := range names {
		inExpected[n] = true
	}
	for _, n := range actual.TestNames() {
		if !inExpected[n] {
			names = append(names, n)
		}
	}

	entries := make([]*Entry, 0, len(names))
	for _, name := range names {
		tActual, err := actual.GetTest(name, true)
		if err != nil {
			return nil, err
		}
		tExpected, err := expected.GetTest(name, true)
		if err != nil {
			return nil, err
		}
		entry, err := newEntry(tActual, tExpected, suite)
		if err != nil {
			return nil, fmt.Errorf("classify %q: %w", name, err)
		}
		entries = append(entries, entry)
	}

	return &Result{
		ReportFormat: result.ReportFormatCTRF,
		Version:      result.SchemaVersion,
		Tool:         result.DefaultTool(),
		Suite:        suite,
		entries:      entries,
		status:       aggregateStatus(entries),
	}, nil
}

func aggregateStatus(entries []*Entry) result.Status {
	if len(entries) == 0 {
		return result.StatusFailed
	}
	for _, e := range entries {
		if !e.IsPassing() {
			return result.StatusFailed
		}
	}
	return result.StatusPassed
}

// Entries returns the comparison entries in universe order.
func (r *Result) Entries() []*Entry {
	return r.entries
}

// IsPassing reports the aggregate verdict.
func (r *Result) IsPassing() bool {
	return r.status == result.StatusPassed
}

// Status returns the aggregate status.
func (r *Result) Status() result.Status {
	return r.status
}

// Score is always zero for comparisons.
func (r *Result) Score() float64 { return 0 }

// MaxScore is always zero for comparisons.
func (r *Result) MaxScore() float64 { return 0 }

// Summarize derives the wire summary counters from the entries. Pure O(n),
// recomputed on demand.
func (r *Result) Summarize() result.Summary {
	sum := result.Summary{Suites: 1}
	for _, e := range r.entries {
		if e.IsPassing() {
			sum.Passed++
		} else {
			sum.Failed++
		}
		sum.Tests++
	}
	return sum
}

// Encode serializes the comparison through the canonical wire format, so a
// comparison can be stored and later re-loaded or chained.
func (r *Result) Encode() map[string]any {
	tests := make([]any, len(r.entries))
	for i, e := range r.entries {
		tests[i] = e.encode()
	}
	return map[string]any{
		"reportFormat": r.ReportFormat,
		"version":      r.Version,
		"results": map[string]any{
			"tool":    r.Tool.ToDoc(),
			"tests":   tests,
			"summary": r.Summarize().ToDoc(),
		},
	}
}

// Decode reverses Encode. The aggregate status is recomputed from the
// decoded entries under the same empty-fails policy as Build.
func Decode(doc map[string]any) (*Result, error) {
	results, err := result.RequireMap(doc, "results")
	if err != nil {
		return nil, err
	}
	rawTests, err := result.RequireSlice(results, "tests")
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(rawTests))
	suite := ""
	for _, v := range rawTests {
		td, ok := v.(map[string]any)
		if !ok {
			return nil, &result.MissingFieldError{Field: "tests", Fragment: result.Fragment(v)}
		}
		e, err := decodeEntry(td)
		if err != nil {
			return nil, err
		}
		if e.Suite != "" {
			suite = e.Suite
		}
		entries = append(entries, e)
	}

	return &Result{
		ReportFormat: result.OptionalString(doc, "reportFormat", result.ReportFormatCTRF),
		Version:      result.OptionalString(doc, "version", result.SchemaVersion),
		Tool:         result.ToolFromDoc(result.OptionalMap(results, "tool")),
		Suite:        suite,
		entries:      entries,
		status:       aggregateStatus(entries),
	}, nil
}

// WriteJSON writes the canonical comparison document to path.
func (r *Result) WriteJSON(path string) error {
	b, err := json.MarshalIndent(r.Encode(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// LoadFile reads a previously written comparison document.
func LoadFile(path string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &result.ParseError{Path: path, Err: err}
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &result.ParseError{Path: path, Err: err}
	}
	return Decode(doc)
}

// CanonicalJSON renders the comparison in RFC 8785 canonical form.
func (r *Result) CanonicalJSON() ([]byte, error) {
	return result.CanonicalJSON(r.Encode())
}

// Fingerprint returns the sha256 hex digest of the canonical form.
func (r *Result) Fingerprint() (string, error) {
	return result.Digest(r.Encode())
}
