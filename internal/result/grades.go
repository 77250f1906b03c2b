package result

import "fmt"

// GradeEntry is an informational point-value descriptor for a named rubric
// item. It is orthogonal to pass/fail. All boolean flags default false and
// are omitted from serialized output when false.
type GradeEntry struct {
	Title      string `yaml:"title"`
	Max        int    `yaml:"max"`
	Hidden     bool   `yaml:"hidden"`
	NoTotal    bool   `yaml:"no_total"`
	MaxVisible bool   `yaml:"max_visible"`
	IsExtra    bool   `yaml:"is_extra"`
	Concealed  bool   `yaml:"concealed"`
}

// ToDoc serializes the entry sparsely: title and max always, boolean flags
// only when true.
func (g GradeEntry) ToDoc() map[string]any {
	d := map[string]any{
		"title": g.Title,
		"max":   g.Max,
	}
	if g.Hidden {
		d["hidden"] = true
	}
	if g.NoTotal {
		d["no_total"] = true
	}
	if g.MaxVisible {
		d["max_visible"] = true
	}
	if g.IsExtra {
		d["is_extra"] = true
	}
	if g.Concealed {
		d["concealed"] = true
	}
	return d
}

// GradeEntryFromDoc decodes a grade entry from its JSON object form.
// Unknown keys are ignored; absent booleans default false.
func GradeEntryFromDoc(doc map[string]any) (GradeEntry, error) {
	title, err := RequireString(doc, "title")
	if err != nil {
		return GradeEntry{}, err
	}
	maxVal, err := RequireInt(doc, "max")
	if err != nil {
		return GradeEntry{}, err
	}
	return GradeEntry{
		Title:      title,
		Max:        int(maxVal),
		Hidden:     OptionalBool(doc, "hidden"),
		NoTotal:    OptionalBool(doc, "no_total"),
		MaxVisible: OptionalBool(doc, "max_visible"),
		IsExtra:    OptionalBool(doc, "is_extra"),
		Concealed:  OptionalBool(doc, "concealed"),
	}, nil
}

// GradeSpec pairs a rubric item with the grading note recorded for it.
type GradeSpec struct {
	Name   string
	Rubric GradeEntry
	Value  any
}

// FormatResult renders the graded item as "value / max".
func (s GradeSpec) FormatResult() string {
	return fmt.Sprintf("%v / %d", s.Value, s.Rubric.Max)
}
