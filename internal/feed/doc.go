// Package feed wraps the LiveScore API and converts its JSON payloads into
// validated match snapshots.
//
// All missing-field ambiguity is resolved here, at the boundary: the
// detector and tracker only ever see strongly typed Snapshot values with
// explicit optional fields. A poll failure surfaces as a single error from
// FetchMatches; per-match enrichment failures (incidents, statistics)
// degrade to the bare snapshot instead of failing the cycle.
package feed
