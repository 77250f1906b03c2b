package result

import "strings"

// Status is a test outcome in the canonical schema. Producers may emit
// values outside the known set; only StatusPassed counts as success.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusPending Status = "pending"
	StatusOther   Status = "other"
)

// Test is the canonical record for one test outcome. A Test is immutable
// after construction except for controlled Extra merges.
type Test struct {
	Name     string
	Status   Status
	Duration int64
	Suite    string
	Tags     []string
	Output   string

	extra map[string]any
}

// NewTest constructs a canonical test record. Tags and extra may be nil.
func NewTest(name string, status Status) *Test {
	return &Test{
		Name:   name,
		Status: status,
		Tags:   []string{},
		extra:  map[string]any{},
	}
}

// IsPassing reports whether the test succeeded. Only StatusPassed counts.
func (t *Test) IsPassing() bool {
	return t.Status == StatusPassed
}

// Extra returns the open extension bag holding producer fields outside the
// canonical schema. Callers must not mutate the returned map directly; use
// AddExtra or AddExtraItem.
func (t *Test) Extra() map[string]any {
	return t.extra
}

// AddExtra merges the given fields into the extension bag.
func (t *Test) AddExtra(d map[string]any) {
	if t.extra == nil {
		t.extra = map[string]any{}
	}
	for k, v := range d {
		t.extra[k] = v
	}
}

// AddExtraItem sets a single extension field.
func (t *Test) AddExtraItem(k string, v any) {
	if t.extra == nil {
		t.extra = map[string]any{}
	}
	t.extra[k] = v
}

// ExtraString returns the named extension field as a string, or def when
// absent or not a string.
func (t *Test) ExtraString(k, def string) string {
	if s, ok := t.extra[k].(string); ok {
		return s
	}
	return def
}

// OutputLines splits the captured output into lines for the canonical
// stdout field. An empty output still yields one empty line so that
// join(split(s)) == s holds.
func (t *Test) OutputLines() []string {
	return strings.Split(t.Output, "\n")
}
