// Package engine reconciles meeting records observed independently from
// the calendar, the cloud recordings listing, the local filesystem, and
// the tracking spreadsheet into de-duplicated meeting instances, and
// computes which artifacts (calendar entry, recording, transcript,
// scored analysis) each instance is still missing.
//
// The engine is a pure library: it performs no I/O, holds no state
// between invocations, and never logs. Source adapters feed it RawRecord
// lists; the reporting layer consumes the resolved MeetingInstance set
// and the GapReport. Malformed text never fails a run: records whose
// subject or filename cannot be parsed land in the unresolved bucket
// with full provenance instead of being dropped. Errors are reserved for
// structural caller mistakes such as undefined enum values.
//
// Resolution is deterministic: records are sorted by a fixed key before
// the single-pass merge, and instance IDs are SHA1 UUIDs derived from
// the first-seen canonical key, so re-running on the same inputs always
// reproduces the same IDs.
package engine
