package compare

import (
	"fmt"
	"strings"

	"github.com/roach88/verdict/internal/result"
)

// Reason classifies one paired test. Exactly one reason holds per entry and
// the reason fully determines the entry's status.
type Reason string

const (
	ReasonOK             Reason = "ok"
	ReasonResultMismatch Reason = "result"
	ReasonOutputMismatch Reason = "output" // modeled but never produced
	ReasonMissing        Reason = "missing"
	ReasonExtra          Reason = "extra"
)

// ReasonFromString validates a wire reason code.
func ReasonFromString(s string) (Reason, error) {
	switch r := Reason(s); r {
	case ReasonOK, ReasonResultMismatch, ReasonOutputMismatch, ReasonMissing, ReasonExtra:
		return r, nil
	}
	return "", fmt.Errorf("unknown comparison reason %q", s)
}

// Entry is the comparison record for one test name. At most one of Actual
// and Expected is nil, never both.
type Entry struct {
	Name     string
	Status   result.Status
	Reason   Reason
	Output   string
	Suite    string
	Actual   *result.Test
	Expected *result.Test

	extra map[string]any
}

// IsPassing reports whether the entry's reason was OK.
func (e *Entry) IsPassing() bool {
	return e.Status == result.StatusPassed
}

// newEntry classifies one (actual, expected) pair. Both nil violates the
// engine's invariant and is reported as an error, never classified.
func newEntry(tActual, tExpected *result.Test, suite string) (*Entry, error) {
	if tActual == nil && tExpected == nil {
		return nil, fmt.Errorf("comparison entry requires at least one of actual and expected")
	}

	var (
		name   string
		reason Reason
		output string
	)
	switch {
	case tActual == nil:
		name = tExpected.Name
		reason = ReasonMissing
		output = quoteBlock("Expected test not found in actual results.  Expected output:", tExpected.Output)
	case tExpected == nil:
		name = tActual.Name
		reason = ReasonExtra
		output = quoteBlock("Extra test found not in expected results.  Output:", tActual.Output)
	case tActual.Status != tExpected.Status:
		name = tActual.Name
		reason = ReasonResultMismatch
		output = fmt.Sprintf("Expected test status '%s' but was '%s'\n%s",
			tExpected.Status, tActual.Status, contrastOutputs(tActual.Output, tExpected.Output))
	default:
		// Statuses match. Output differences never downgrade the verdict;
		// the actual output is carried through unconditionally.
		name = tActual.Name
		reason = ReasonOK
		output = tActual.Output
	}

	status := result.StatusFailed
	if reason == ReasonOK {
		status = result.StatusPassed
	}
	return &Entry{
		Name:     name,
		Status:   status,
		Reason:   reason,
		Output:   output,
		Suite:    suite,
		Actual:   tActual,
		Expected: tExpected,
		extra:    map[string]any{},
	}, nil
}

func quoteBlock(prefix, output string) string {
	return fmt.Sprintf("%s\n```\n%s\n```", prefix, output)
}

// contrastOutputs builds the content block of a result-mismatch message:
// nothing when both outputs are empty, a shared block when byte-identical,
// labeled Expected/Got blocks otherwise.
func contrastOutputs(actual, expected string) string {
	switch {
	case actual == "" && expected == "":
		return ""
	case actual == expected:
		return fmt.Sprintf("Outputs from test are identical\n```%s\n```", expected)
	default:
		return fmt.Sprintf("Expected:\n```%s\n```\n\nGot:\n```%s\n```", expected, actual)
	}
}

// encode emits the entry's canonical test object. Beyond the canonical
// fields it carries the reason code as message and the full canonical
// serialization of each paired record (or null) under extra.
func (e *Entry) encode() map[string]any {
	extra := make(map[string]any, len(e.extra)+2)
	for k, v := range e.extra {
		extra[k] = v
	}
	if e.Actual != nil {
		extra["result_actual"] = result.EncodeTest(e.Actual)
	} else {
		extra["result_actual"] = nil
	}
	if e.Expected != nil {
		extra["result_expected"] = result.EncodeTest(e.Expected)
	} else {
		extra["result_expected"] = nil
	}

	d := map[string]any{
		"name":     e.Name,
		"status":   string(e.Status),
		"duration": int64(0),
		"tags":     []string{},
		"message":  string(e.Reason),
		"stdout":   strings.Split(e.Output, "\n"),
		"extra":    extra,
	}
	if e.Suite != "" {
		d["suite"] = e.Suite
	}
	return d
}

// decodeEntry reverses encode. name, status, stdout, and message are
// required; the paired records are rebuilt from the extra bag when present.
func decodeEntry(doc map[string]any) (*Entry, error) {
	name, err := result.RequireString(doc, "name")
	if err != nil {
		return nil, err
	}
	status, err := result.RequireString(doc, "status")
	if err != nil {
		return nil, err
	}
	stdout, err := result.RequireSlice(doc, "stdout")
	if err != nil {
		return nil, err
	}
	message, err := result.RequireString(doc, "message")
	if err != nil {
		return nil, err
	}
	reason, err := ReasonFromString(message)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(stdout))
	for _, v := range stdout {
		if s, ok := v.(string); ok {
			lines = append(lines, s)
		}
	}

	e := &Entry{
		Name:   name,
		Status: result.Status(status),
		Reason: reason,
		Output: strings.Join(lines, "\n"),
		Suite:  result.OptionalString(doc, "suite", ""),
		extra:  map[string]any{},
	}
	extra := result.OptionalMap(doc, "extra")
	for k, v := range extra {
		switch k {
		case "result_actual", "result_expected":
			// rebuilt below
		default:
			e.extra[k] = v
		}
	}
	if e.Actual, err = decodePaired(extra, "result_actual"); err != nil {
		return nil, err
	}
	if e.Expected, err = decodePaired(extra, "result_expected"); err != nil {
		return nil, err
	}
	return e, nil
}

func decodePaired(extra map[string]any, key string) (*result.Test, error) {
	td, ok := extra[key].(map[string]any)
	if !ok {
		return nil, nil
	}
	return result.DecodeTest(td)
}
