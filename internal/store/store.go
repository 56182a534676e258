// Package store keeps the in-memory per-match tracking state: the last
// observed snapshot and the set of event fingerprints already dispatched.
//
// The store is exclusively owned by the tracker's scheduling loop. All
// operations are synchronous map mutations with no locking; correctness
// relies on the single-writer discipline, not on synchronization.
package store

import (
	"time"

	"github.com/golazo-bot/golazo/internal/match"
)

// TrackedMatch is the store's record for one fixture.
type TrackedMatch struct {
	LastSnapshot *match.Snapshot
	Reported     map[string]struct{}
	LastPolledAt time.Time
}

// Store maps match ids to their tracking state.
type Store struct {
	matches map[string]*TrackedMatch
}

// New creates an empty store.
func New() *Store {
	return &Store{matches: make(map[string]*TrackedMatch)}
}

// Get returns the tracked state for a match, or nil if it has never been
// seen (or was evicted).
func (s *Store) Get(matchID string) *TrackedMatch {
	return s.matches[matchID]
}

// Upsert records the latest snapshot for a match, creating the entry on
// first sighting and preserving reported fingerprints on update.
func (s *Store) Upsert(matchID string, snap match.Snapshot, polledAt time.Time) {
	tm := s.matches[matchID]
	if tm == nil {
		tm = &TrackedMatch{Reported: make(map[string]struct{})}
		s.matches[matchID] = tm
	}
	tm.LastSnapshot = &snap
	tm.LastPolledAt = polledAt
}

// MarkReported records that an event fingerprint has been handed to the
// dispatcher. The mark is permanent for the lifetime of the entry, even if
// delivery later fails: at-most-once beats a retry storm.
func (s *Store) MarkReported(matchID, fingerprint string) {
	tm := s.matches[matchID]
	if tm == nil {
		tm = &TrackedMatch{Reported: make(map[string]struct{})}
		s.matches[matchID] = tm
	}
	tm.Reported[fingerprint] = struct{}{}
}

// IsReported reports whether the fingerprint was already dispatched for
// this match.
func (s *Store) IsReported(matchID, fingerprint string) bool {
	tm := s.matches[matchID]
	if tm == nil {
		return false
	}
	_, ok := tm.Reported[fingerprint]
	return ok
}

// Reset clears a match's state so the next detection treats it as a fresh
// first sighting. Used after an anomalous status transition.
func (s *Store) Reset(matchID string) {
	delete(s.matches, matchID)
}

// Drop removes a match entry entirely. Used when an entry is found in an
// inconsistent state: the next snapshot rebuilds it from scratch.
func (s *Store) Drop(matchID string) {
	delete(s.matches, matchID)
}

// Len returns the number of tracked matches.
func (s *Store) Len() int {
	return len(s.matches)
}

// EvictStale removes entries whose match reached a terminal status and
// whose last poll is older than the retention window, bounding memory over
// a long-running season. Live and scheduled matches are never evicted.
func (s *Store) EvictStale(now time.Time, retention time.Duration) int {
	evicted := 0
	for id, tm := range s.matches {
		if tm.LastSnapshot == nil || !tm.LastSnapshot.Status.Terminal() {
			continue
		}
		if now.Sub(tm.LastPolledAt) > retention {
			delete(s.matches, id)
			evicted++
		}
	}
	return evicted
}
