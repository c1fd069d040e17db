// Package seen persists which record identifiers previous scans ingested.
//
// The store backs the incremental behavior of the local filesystem adapter:
// files marked in an earlier run are skipped in later ones. It is an
// explicit dependency passed to callers, never global state.
package seen
