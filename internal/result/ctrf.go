package result

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gowebpki/jcs"
)

// EncodeTest serializes a record into its canonical test object:
// {name, status, duration, tags, extra, stdout, suite?}. The extension bag
// is copied so later merges do not alias the emitted document.
func EncodeTest(t *Test) map[string]any {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	extra := make(map[string]any, len(t.extra))
	for k, v := range t.extra {
		extra[k] = v
	}
	d := map[string]any{
		"name":     t.Name,
		"status":   string(t.Status),
		"duration": t.Duration,
		"tags":     tags,
		"extra":    extra,
		"stdout":   t.OutputLines(),
	}
	if t.Suite != "" {
		d["suite"] = t.Suite
	}
	return d
}

// DecodeTest reverses EncodeTest. Known top-level fields are extracted by
// exact key; name, status, and stdout are required, duration defaults to
// zero, and the extra bag rides along opaquely. Together with EncodeTest
// this is the lossless round-trip contract: DecodeTest(EncodeTest(t))
// reproduces every observable field of t.
func DecodeTest(doc map[string]any) (*Test, error) {
	name, err := RequireString(doc, "name")
	if err != nil {
		return nil, err
	}
	status, err := RequireString(doc, "status")
	if err != nil {
		return nil, err
	}
	stdout, err := RequireSlice(doc, "stdout")
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(stdout))
	for _, v := range stdout {
		if s, ok := v.(string); ok {
			lines = append(lines, s)
		}
	}

	t := NewTest(name, Status(status))
	t.Duration = OptionalInt(doc, "duration", 0)
	t.Suite = OptionalString(doc, "suite", "")
	t.Tags = OptionalStrings(doc, "tags")
	t.Output = strings.Join(lines, "\n")
	if extra := OptionalMap(doc, "extra"); extra != nil {
		t.AddExtra(extra)
	}
	return t, nil
}

// EncodeSet serializes a set into the canonical wire document.
func EncodeSet(s *Set) map[string]any {
	tests := make([]any, len(s.tests))
	for i, t := range s.tests {
		tests[i] = EncodeTest(t)
	}
	return map[string]any{
		"reportFormat": s.ReportFormat,
		"version":      s.Version,
		"results": map[string]any{
			"tool":    s.Tool.ToDoc(),
			"tests":   tests,
			"summary": s.Summarize().ToDoc(),
		},
	}
}

// DecodeSet reverses EncodeSet for plain canonical documents. The summary
// block is derived data and is recomputed rather than trusted.
func DecodeSet(doc map[string]any) (*Set, error) {
	results, err := RequireMap(doc, "results")
	if err != nil {
		return nil, err
	}
	rawTests, err := RequireSlice(results, "tests")
	if err != nil {
		return nil, err
	}

	tests := make([]*Test, 0, len(rawTests))
	for _, v := range rawTests {
		td, ok := v.(map[string]any)
		if !ok {
			return nil, &MissingFieldError{Field: "tests", Fragment: Fragment(v)}
		}
		t, err := DecodeTest(td)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}

	s := NewSet(0, tests)
	s.ReportFormat = OptionalString(doc, "reportFormat", ReportFormatCTRF)
	s.Version = OptionalString(doc, "version", SchemaVersion)
	s.Tool = ToolFromDoc(OptionalMap(results, "tool"))
	return s, nil
}

// CanonicalJSON renders a document in RFC 8785 canonical form. Used
// wherever two serializations must be byte-comparable (fingerprints,
// golden files).
func CanonicalJSON(doc any) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(b)
}

// Digest returns the sha256 hex digest of a document's canonical form.
func Digest(doc any) (string, error) {
	canonical, err := CanonicalJSON(doc)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
