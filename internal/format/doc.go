// Package format maps producer-specific result documents onto the
// canonical model and back.
//
// Each adapter implements one capability interface: Parse a raw parsed JSON
// document into a *result.Set, and Serialize a set back into the producer's
// shape. Adapter selection is a registry of (predicate, adapter) pairs
// evaluated in a fixed priority order:
//
//  1. reportFormat == "CTRF"               -> native adapter
//  2. autograder_output or stdout_visibility at top level -> legacy adapter
//  3. otherwise                            -> UnknownFormatError
//
// Detection is not probabilistic; it never guesses beyond these two
// discriminators. An explicitly requested format bypasses detection
// entirely.
package format
