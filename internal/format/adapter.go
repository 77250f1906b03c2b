package format

import (
	"encoding/json"
	"os"

	"github.com/roach88/verdict/internal/result"
)

// Adapter names accepted on the command line and in run configuration.
const (
	FormatAuto   = "auto"
	FormatNative = "native"
	FormatLegacy = "legacy"
)

// Adapter translates between one producer's JSON shape and the canonical
// model.
type Adapter interface {
	// Name is the adapter's registry key.
	Name() string
	// Match reports whether a raw document carries this format's
	// discriminator. Used only by auto-detection.
	Match(doc map[string]any) bool
	// Parse normalizes a raw document into a canonical set.
	Parse(doc map[string]any) (*result.Set, error)
	// Serialize re-emits a canonical set in this format's shape.
	Serialize(s *result.Set) (map[string]any, error)
}

// registry holds the adapters in detection priority order. The native
// (CTRF-marked) predicate is checked before the legacy discriminators.
var registry = []Adapter{
	&NativeAdapter{},
	&LegacyAdapter{},
}

// Detect inspects a raw document and selects the adapter to use.
func Detect(doc map[string]any) (Adapter, error) {
	for _, a := range registry {
		if a.Match(doc) {
			return a, nil
		}
	}
	return nil, &result.UnknownFormatError{Fragment: result.Fragment(doc)}
}

// ByName returns the adapter registered under the given name. A named but
// unavailable adapter is a configuration error, distinct from detection
// failure.
func ByName(name string) (Adapter, error) {
	for _, a := range registry {
		if a.Name() == name {
			return a, nil
		}
	}
	return nil, &result.LookupError{Kind: "format", Name: name}
}

// Options controls document loading.
type Options struct {
	// Format selects an adapter explicitly; FormatAuto enables detection.
	Format string
	// Strict validates CTRF-marked documents against the embedded JSON
	// Schema before decoding.
	Strict bool
}

// Parse decodes a raw document, selecting the adapter per opts.
func Parse(doc map[string]any, opts Options) (*result.Set, error) {
	var (
		adapter Adapter
		err     error
	)
	if opts.Format == "" || opts.Format == FormatAuto {
		adapter, err = Detect(doc)
	} else {
		adapter, err = ByName(opts.Format)
	}
	if err != nil {
		return nil, err
	}
	return adapter.Parse(doc)
}

// LoadFile reads, parses, and normalizes a result document from disk.
// Malformed JSON is a ParseError naming the file.
func LoadFile(path string, opts Options) (*result.Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &result.ParseError{Path: path, Err: err}
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &result.ParseError{Path: path, Err: err}
	}
	if opts.Strict && isCTRF(doc) {
		if err := ValidateCTRF(raw); err != nil {
			return nil, &result.ParseError{Path: path, Err: err}
		}
	}
	return Parse(doc, opts)
}

// isCTRF reports whether the document carries the canonical wire marker.
func isCTRF(doc map[string]any) bool {
	return result.OptionalString(doc, "reportFormat", "") == result.ReportFormatCTRF
}
