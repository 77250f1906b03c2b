package format

import (
	"github.com/roach88/verdict/internal/result"
)

// nativeKnownKeys are the per-test fields the native format defines in the
// canonical schema proper. Everything else a producer emits (output_format,
// visibility, ...) is preserved in the record's extra bag.
var nativeKnownKeys = map[string]bool{
	"name":     true,
	"output":   true,
	"status":   true,
	"duration": true,
	"tags":     true,
}

// NativeAdapter handles this system's own result format. Producer input is
// the flat runner shape {execution_time, tests, grades?, notes?}; documents
// already wrapped in the canonical CTRF wire format are accepted as well.
type NativeAdapter struct{}

func (a *NativeAdapter) Name() string { return FormatNative }

// Match selects this adapter for documents carrying the canonical marker.
func (a *NativeAdapter) Match(doc map[string]any) bool {
	return isCTRF(doc)
}

// Parse normalizes a native document.
func (a *NativeAdapter) Parse(doc map[string]any) (*result.Set, error) {
	if isCTRF(doc) {
		return result.DecodeSet(doc)
	}
	return a.parseFlat(doc)
}

func (a *NativeAdapter) parseFlat(doc map[string]any) (*result.Set, error) {
	rawTests, err := result.RequireSlice(doc, "tests")
	if err != nil {
		return nil, err
	}

	tests := make([]*result.Test, 0, len(rawTests))
	for _, v := range rawTests {
		td, ok := v.(map[string]any)
		if !ok {
			return nil, &result.MissingFieldError{Field: "tests", Fragment: result.Fragment(v)}
		}
		t, err := decodeNativeTest(td)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}

	s := result.NewSet(result.OptionalFloat(doc, "execution_time", 0), tests)

	if rawGrades := result.OptionalMap(doc, "grades"); rawGrades != nil {
		grades := make(map[string]result.GradeEntry, len(rawGrades))
		for name, gv := range rawGrades {
			gd, ok := gv.(map[string]any)
			if !ok {
				return nil, &result.MissingFieldError{Field: "grades", Fragment: result.Fragment(gv)}
			}
			g, err := result.GradeEntryFromDoc(gd)
			if err != nil {
				return nil, err
			}
			grades[name] = g
		}
		s.AddRubric(grades)
	}

	if notes := result.OptionalMap(doc, "notes"); notes != nil {
		s.AddNotes(notes)
	}
	return s, nil
}

func decodeNativeTest(doc map[string]any) (*result.Test, error) {
	name, err := result.RequireString(doc, "name")
	if err != nil {
		return nil, err
	}
	t := result.NewTest(name, result.Status(result.OptionalString(doc, "status", "")))
	t.Output = result.OptionalString(doc, "output", "")
	t.Duration = result.OptionalInt(doc, "duration", 0)
	t.Tags = result.OptionalStrings(doc, "tags")
	for k, v := range doc {
		if !nativeKnownKeys[k] {
			t.AddExtraItem(k, v)
		}
	}
	return t, nil
}

// Serialize re-emits the flat native shape, pulling adapter-specific fields
// back out of each record's extra bag.
func (a *NativeAdapter) Serialize(s *result.Set) (map[string]any, error) {
	tests := make([]any, 0, len(s.Tests()))
	for _, t := range s.Tests() {
		tests = append(tests, encodeFlatTest(t))
	}
	doc := map[string]any{
		"format":         FormatNative,
		"version":        1,
		"execution_time": s.ExecutionTime,
		"tests":          tests,
	}
	if grades := s.Grades(); grades != nil {
		gd := make(map[string]any, len(grades))
		for name, g := range grades {
			gd[name] = g.ToDoc()
		}
		doc["grades"] = gd
	}
	if s.HasNotes() {
		doc["notes"] = s.Notes()
	}
	return doc, nil
}

// encodeFlatTest emits one producer-shape test object, merging the extra
// bag back to the top level so the round trip is lossless.
func encodeFlatTest(t *result.Test) map[string]any {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	d := map[string]any{
		"name":   t.Name,
		"output": t.Output,
		"status": string(t.Status),
		"tags":   tags,
	}
	if t.Duration != 0 {
		d["duration"] = t.Duration
	}
	for k, v := range t.Extra() {
		d[k] = v
	}
	return d
}
