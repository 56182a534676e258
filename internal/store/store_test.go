package store

import (
	"testing"
	"time"

	"github.com/golazo-bot/golazo/internal/match"
)

var baseTime = time.Date(2026, time.March, 14, 19, 0, 0, 0, time.UTC)

func liveSnapshot(id string) match.Snapshot {
	return match.Snapshot{
		MatchID: id,
		Status:  match.StatusInPlay,
		Home:    match.Team{Name: "Toluca", Score: 0},
		Away:    match.Team{Name: "Pachuca", Score: 0},
	}
}

func finishedSnapshot(id string) match.Snapshot {
	snap := liveSnapshot(id)
	snap.Status = match.StatusFinished
	return snap
}

func TestUpsertPreservesReportedFingerprints(t *testing.T) {
	s := New()

	s.Upsert("m-1", liveSnapshot("m-1"), baseTime)
	s.MarkReported("m-1", "fp-kickoff")

	s.Upsert("m-1", finishedSnapshot("m-1"), baseTime.Add(time.Minute))

	if !s.IsReported("m-1", "fp-kickoff") {
		t.Error("upsert must preserve reported fingerprints")
	}
	tm := s.Get("m-1")
	if tm == nil || tm.LastSnapshot.Status != match.StatusFinished {
		t.Error("upsert must replace the last snapshot")
	}
	if !tm.LastPolledAt.Equal(baseTime.Add(time.Minute)) {
		t.Error("upsert must advance LastPolledAt")
	}
}

func TestIsReportedUnknownMatch(t *testing.T) {
	s := New()
	if s.IsReported("nope", "fp") {
		t.Error("unknown match must not report fingerprints")
	}
}

func TestResetClearsFingerprints(t *testing.T) {
	s := New()
	s.Upsert("m-1", liveSnapshot("m-1"), baseTime)
	s.MarkReported("m-1", "fp")

	s.Reset("m-1")

	if s.Get("m-1") != nil {
		t.Error("reset must drop the entry")
	}
	if s.IsReported("m-1", "fp") {
		t.Error("reset must clear reported fingerprints")
	}
}

func TestEvictStale(t *testing.T) {
	retention := 2 * time.Hour
	s := New()

	s.Upsert("live", liveSnapshot("live"), baseTime)
	s.Upsert("done-recent", finishedSnapshot("done-recent"), baseTime)
	s.Upsert("done-old", finishedSnapshot("done-old"), baseTime)

	t.Run("nothing evicted inside the window", func(t *testing.T) {
		if n := s.EvictStale(baseTime.Add(time.Hour), retention); n != 0 {
			t.Errorf("expected no evictions, got %d", n)
		}
		if s.Len() != 3 {
			t.Errorf("expected 3 entries, got %d", s.Len())
		}
	})

	t.Run("finished match evicted only after retention elapses", func(t *testing.T) {
		// Keep done-recent fresh by re-polling it, let done-old age out.
		s.Upsert("done-recent", finishedSnapshot("done-recent"), baseTime.Add(2*time.Hour))

		if n := s.EvictStale(baseTime.Add(3*time.Hour), retention); n != 1 {
			t.Fatalf("expected 1 eviction, got %d", n)
		}
		if s.Get("done-old") != nil {
			t.Error("done-old should have been evicted")
		}
		if s.Get("done-recent") == nil {
			t.Error("done-recent is inside the window and must survive")
		}
	})

	t.Run("live matches are never evicted", func(t *testing.T) {
		if n := s.EvictStale(baseTime.Add(1000*time.Hour), retention); n != 1 {
			t.Fatalf("expected only done-recent to age out, got %d evictions", n)
		}
		if s.Get("live") == nil {
			t.Error("live match must never be evicted")
		}
	})
}

func TestMarkReportedBeforeUpsert(t *testing.T) {
	// The tracker marks fingerprints before upserting the snapshot; the
	// store must tolerate that order.
	s := New()
	s.MarkReported("m-1", "fp")
	if !s.IsReported("m-1", "fp") {
		t.Error("mark before upsert must still register")
	}
	s.Upsert("m-1", liveSnapshot("m-1"), baseTime)
	if !s.IsReported("m-1", "fp") {
		t.Error("upsert must not clear marks")
	}
}
