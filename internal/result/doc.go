// Package result defines the canonical test-result model.
//
// Every heterogeneous producer format is normalized into one record type,
// Test, and one collection type, Set. Producer fields the canonical schema
// does not define survive in each record's Extra bag so that a document can
// be decoded, re-encoded, and byte-compared without losing data.
//
// The canonical wire format is CTRF-shaped:
//
//	{ "reportFormat": "CTRF", "version": "<semver>",
//	  "results": { "tool": {...}, "tests": [...], "summary": {...} } }
//
// Sets are constructed once from a parsed document (or programmatically)
// and are read-only afterwards, except for the controlled mutations
// AddRubric, AddNotes, and the Extra merge helpers. Derived summaries are
// recomputed on demand as a pure O(n) pass over the test slice, so they can
// never go stale.
package result
