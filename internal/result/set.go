package result

// Default wire metadata for canonical documents.
const (
	ReportFormatCTRF = "CTRF"
	SchemaVersion    = "0.0.0"
)

// Tool identifies the producer of a result set. Informational only.
type Tool struct {
	Name    string
	Version string
	Extra   map[string]any
}

// DefaultTool is the producer identity stamped on documents this module
// emits itself.
func DefaultTool() Tool {
	return Tool{Name: "verdict", Version: "0.1", Extra: map[string]any{}}
}

// ToDoc serializes the tool identity.
func (t Tool) ToDoc() map[string]any {
	extra := t.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	return map[string]any{
		"name":    t.Name,
		"version": t.Version,
		"extra":   extra,
	}
}

// ToolFromDoc decodes a tool identity; all fields are optional.
func ToolFromDoc(doc map[string]any) Tool {
	t := DefaultTool()
	if doc == nil {
		return t
	}
	t.Name = OptionalString(doc, "name", t.Name)
	t.Version = OptionalString(doc, "version", t.Version)
	if m := OptionalMap(doc, "extra"); m != nil {
		t.Extra = m
	}
	return t
}

// Summary holds the derived per-set counters of the canonical wire format.
type Summary struct {
	Tests   int
	Passed  int
	Failed  int
	Pending int
	Skipped int
	Other   int
	Suites  int
	Start   int64
	End     int64
}

// ToDoc serializes the summary block.
func (s Summary) ToDoc() map[string]any {
	return map[string]any{
		"tests":   s.Tests,
		"passed":  s.Passed,
		"failed":  s.Failed,
		"pending": s.Pending,
		"skipped": s.Skipped,
		"other":   s.Other,
		"suites":  s.Suites,
		"start":   s.Start,
		"end":     s.End,
	}
}

// Set is an ordered, name-keyed collection of canonical test records plus
// run metadata. Constructed once, read-only afterwards except for the
// controlled AddRubric/AddNotes/SetScoreTotals mutations adapters apply
// while building.
type Set struct {
	ReportFormat  string
	Version       string
	Tool          Tool
	ExecutionTime float64
	Extra         map[string]any

	tests  []*Test
	byName map[string]*Test
	grades map[string]GradeEntry
	notes  map[string]any

	score    float64
	maxScore float64
}

// NewSet builds a result set from an ordered test slice. The name index is
// built once here; duplicate names resolve last-write-wins while the name
// order keeps the first occurrence's position.
func NewSet(executionTime float64, tests []*Test) *Set {
	s := &Set{
		ReportFormat:  ReportFormatCTRF,
		Version:       SchemaVersion,
		Tool:          DefaultTool(),
		ExecutionTime: executionTime,
		Extra:         map[string]any{},
		tests:         tests,
		byName:        make(map[string]*Test, len(tests)),
	}
	for _, t := range tests {
		s.byName[t.Name] = t
	}
	return s
}

// Tests returns the records in producer order. Callers must not mutate the
// returned slice.
func (s *Set) Tests() []*Test {
	return s.tests
}

// TestNames returns names in producer order. Duplicates appear once, at
// their first position.
func (s *Set) TestNames() []string {
	names := make([]string, 0, len(s.tests))
	seen := make(map[string]bool, len(s.tests))
	for _, t := range s.tests {
		if seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		names = append(names, t.Name)
	}
	return names
}

// HasTest reports whether a test with the given name exists.
func (s *Set) HasTest(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// GetTest looks up a test by name. With missingOK the absent case returns
// (nil, nil); otherwise it is a LookupError.
func (s *Set) GetTest(name string, missingOK bool) (*Test, error) {
	t, ok := s.byName[name]
	if !ok {
		if missingOK {
			return nil, nil
		}
		return nil, &LookupError{Kind: "test", Name: name}
	}
	return t, nil
}

// PassedTest reports whether the named test passed. Absent tests are a
// LookupError.
func (s *Set) PassedTest(name string) (bool, error) {
	t, err := s.GetTest(name, false)
	if err != nil {
		return false, err
	}
	return t.IsPassing(), nil
}

// IsPassing reports whether every test in the set passed.
func (s *Set) IsPassing() bool {
	for _, t := range s.tests {
		if !t.IsPassing() {
			return false
		}
	}
	return true
}

// Summarize derives the wire summary counters. This is a pure O(n) pass
// over the current test slice; it is recomputed on every call rather than
// cached so it can never disagree with the tests.
func (s *Set) Summarize() Summary {
	return summarize(s.tests)
}

func summarize(tests []*Test) Summary {
	sum := Summary{Suites: 1}
	for _, t := range tests {
		if t.IsPassing() {
			sum.Passed++
		} else {
			sum.Failed++
		}
		sum.Tests++
	}
	return sum
}

// TotalTests returns the number of tests in the set.
func (s *Set) TotalTests() int {
	return len(s.tests)
}

// TotalPassed returns the number of passing tests.
func (s *Set) TotalPassed() int {
	return s.Summarize().Passed
}

// TotalFailed returns the number of non-passing tests.
func (s *Set) TotalFailed() int {
	return s.Summarize().Failed
}

// Score returns the earned points total, zero unless a point-bearing
// adapter populated it.
func (s *Set) Score() float64 {
	return s.score
}

// MaxScore returns the possible points total, zero unless a point-bearing
// adapter populated it.
func (s *Set) MaxScore() float64 {
	return s.maxScore
}

// SetScoreTotals records point totals. Called by adapters whose format
// carries per-test scores.
func (s *Set) SetScoreTotals(score, maxScore float64) {
	s.score = score
	s.maxScore = maxScore
}

// AddRubric attaches the grading rubric.
func (s *Set) AddRubric(grades map[string]GradeEntry) {
	s.grades = grades
}

// Grades returns the rubric, nil when none was attached.
func (s *Set) Grades() map[string]GradeEntry {
	return s.grades
}

// GradeEntryFor looks up a rubric item by name.
func (s *Set) GradeEntryFor(name string) (GradeEntry, error) {
	g, ok := s.grades[name]
	if !ok {
		return GradeEntry{}, &LookupError{Kind: "grade entry", Name: name}
	}
	return g, nil
}

// AddNotes attaches the external grading notes document.
func (s *Set) AddNotes(notes map[string]any) {
	s.notes = notes
}

// HasNotes reports whether a notes document is attached.
func (s *Set) HasNotes() bool {
	return s.notes != nil
}

// Notes returns the raw notes document, nil when none was attached.
func (s *Set) Notes() map[string]any {
	return s.notes
}

// Note returns the grading note recorded for the named item. A notes
// document without the autogrades sub-key is malformed; an absent item is a
// LookupError.
func (s *Set) Note(name string) (any, error) {
	autogrades, err := s.autogrades()
	if err != nil {
		return nil, err
	}
	v, ok := autogrades[name]
	if !ok {
		return nil, &LookupError{Kind: "grade note", Name: name}
	}
	return v, nil
}

// GradedItems lists the item names present in the notes document, in no
// particular order. Empty when no notes are attached.
func (s *Set) GradedItems() ([]string, error) {
	if !s.HasNotes() {
		return []string{}, nil
	}
	autogrades, err := s.autogrades()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(autogrades))
	for k := range autogrades {
		names = append(names, k)
	}
	return names, nil
}

// GradeSpecFor pairs the rubric entry and grading note for one item.
func (s *Set) GradeSpecFor(name string) (GradeSpec, error) {
	entry, err := s.GradeEntryFor(name)
	if err != nil {
		return GradeSpec{}, err
	}
	note, err := s.Note(name)
	if err != nil {
		return GradeSpec{}, err
	}
	return GradeSpec{Name: name, Rubric: entry, Value: note}, nil
}

// GradedSpecs returns the specs for every graded item.
func (s *Set) GradedSpecs() ([]GradeSpec, error) {
	names, err := s.GradedItems()
	if err != nil {
		return nil, err
	}
	specs := make([]GradeSpec, 0, len(names))
	for _, n := range names {
		spec, err := s.GradeSpecFor(n)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (s *Set) autogrades() (map[string]any, error) {
	return RequireMap(s.notes, "autogrades")
}

// AddExtraItem sets a single set-level extension field.
func (s *Set) AddExtraItem(k string, v any) {
	if s.Extra == nil {
		s.Extra = map[string]any{}
	}
	s.Extra[k] = v
}
