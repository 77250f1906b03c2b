package result

// Helpers for pulling typed fields out of parsed JSON documents
// (map[string]any as produced by encoding/json). Required fields raise
// MissingFieldError naming the field and the enclosing fragment; optional
// fields take an explicit default.

// RequireString extracts a required string field.
func RequireString(doc map[string]any, field string) (string, error) {
	v, ok := doc[field]
	if !ok {
		return "", &MissingFieldError{Field: field, Fragment: Fragment(doc)}
	}
	s, ok := v.(string)
	if !ok {
		return "", &MissingFieldError{Field: field, Fragment: Fragment(doc)}
	}
	return s, nil
}

// RequireInt extracts a required integer field. JSON numbers arrive as
// float64; values are truncated toward zero.
func RequireInt(doc map[string]any, field string) (int64, error) {
	v, ok := doc[field]
	if !ok {
		return 0, &MissingFieldError{Field: field, Fragment: Fragment(doc)}
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, &MissingFieldError{Field: field, Fragment: Fragment(doc)}
	}
	return n, nil
}

// RequireSlice extracts a required array field.
func RequireSlice(doc map[string]any, field string) ([]any, error) {
	v, ok := doc[field]
	if !ok {
		return nil, &MissingFieldError{Field: field, Fragment: Fragment(doc)}
	}
	s, ok := v.([]any)
	if !ok {
		return nil, &MissingFieldError{Field: field, Fragment: Fragment(doc)}
	}
	return s, nil
}

// RequireMap extracts a required object field.
func RequireMap(doc map[string]any, field string) (map[string]any, error) {
	v, ok := doc[field]
	if !ok {
		return nil, &MissingFieldError{Field: field, Fragment: Fragment(doc)}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &MissingFieldError{Field: field, Fragment: Fragment(doc)}
	}
	return m, nil
}

// OptionalString extracts a string field, returning def when absent.
func OptionalString(doc map[string]any, field, def string) string {
	if s, ok := doc[field].(string); ok {
		return s
	}
	return def
}

// OptionalInt extracts an integer field, returning def when absent.
func OptionalInt(doc map[string]any, field string, def int64) int64 {
	if n, ok := asInt64(doc[field]); ok {
		return n
	}
	return def
}

// OptionalFloat extracts a numeric field, returning def when absent.
func OptionalFloat(doc map[string]any, field string, def float64) float64 {
	switch n := doc[field].(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return def
}

// OptionalBool extracts a boolean field, returning false when absent.
func OptionalBool(doc map[string]any, field string) bool {
	b, _ := doc[field].(bool)
	return b
}

// OptionalMap extracts an object field, returning nil when absent.
func OptionalMap(doc map[string]any, field string) map[string]any {
	m, _ := doc[field].(map[string]any)
	return m
}

// OptionalStrings extracts an array-of-strings field, returning an empty
// slice when absent. Non-string elements are skipped.
func OptionalStrings(doc map[string]any, field string) []string {
	raw, ok := doc[field].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
