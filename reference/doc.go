// Package reference loads the static and per-case reference data the
// chunking pipeline joins against: justice tenure tables, case metadata,
// the SCDB docket table, justice ideologies, the first-name gender table
// and the backchannel cue list.
//
// All tables are read-only once loaded. Lookups never fail hard; a miss
// yields an "unknown" value and, where useful, an error wrapping
// transcript.ErrLookupMiss for the caller to log.
package reference
