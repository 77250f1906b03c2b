package result

import (
	"encoding/json"
	"errors"
	"fmt"
)

// fragmentLimit caps how much of an offending document is echoed in errors.
const fragmentLimit = 120

// ParseError indicates a result document could not be parsed as JSON.
// Fatal for the invocation that raised it.
type ParseError struct {
	Path string // source file, empty for in-memory documents
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse results: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnknownFormatError indicates auto-detection found neither the canonical
// CTRF marker nor a legacy discriminator. Detection never guesses beyond
// those two, so this is fatal.
type UnknownFormatError struct {
	Fragment string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("could not auto-detect result format: %s", e.Fragment)
}

// MissingFieldError indicates a required field was absent during decoding.
// Required fields are never silently defaulted.
type MissingFieldError struct {
	Field    string
	Fragment string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in %s", e.Field, e.Fragment)
}

// LookupError indicates a named test, grade entry, grade note, or format
// adapter was requested without a missing-ok escape and does not exist.
type LookupError struct {
	Kind string // "test", "grade entry", "grade note", "format"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s named %q", e.Kind, e.Name)
}

// IsMissingField reports whether err is (or wraps) a MissingFieldError.
func IsMissingField(err error) bool {
	var me *MissingFieldError
	return errors.As(err, &me)
}

// IsUnknownFormat reports whether err is (or wraps) an UnknownFormatError.
func IsUnknownFormat(err error) bool {
	var ue *UnknownFormatError
	return errors.As(err, &ue)
}

// IsLookup reports whether err is (or wraps) a LookupError.
func IsLookup(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// Fragment renders a truncated JSON view of a document for error messages.
func Fragment(doc any) string {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Sprintf("%v", doc)
	}
	if len(b) > fragmentLimit {
		return string(b[:fragmentLimit]) + "..."
	}
	return string(b)
}
