// Package compare reconciles an actual result set against an expected
// (reference) result set.
//
// Build pairs tests by name and classifies every pair into exactly one
// reason: ok, result mismatch, missing, or extra. The name universe is the
// expected set's names in their original order followed by actual-only
// names in actual order, so the reference frame always reads first.
//
// Classification is driven by status equality alone. Two tests with the
// same status but different output text are OK: output-only divergence is
// informational, never a failure signal. The output-mismatch reason exists
// in the model but is never produced.
//
// A comparison is a purely functional transform of its two inputs: no I/O
// during classification, no shared mutable state, all-or-nothing on error.
// Independent comparisons are therefore safe to run in parallel. The
// resulting Result is itself a canonical result set, so comparisons can be
// written out, stored, re-loaded, and chained.
package compare
