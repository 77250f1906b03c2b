// Package store persists comparison runs in SQLite so verdicts can be
// listed, re-loaded, and chained across invocations.
//
// Each saved run carries a UUIDv7 identifier, the aggregate verdict and
// counters, the full canonical comparison document, and a sha256
// fingerprint of its RFC 8785 form. The document column is the source of
// truth; counters are denormalized for cheap listing.
package store
