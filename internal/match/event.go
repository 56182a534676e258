package match

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// Kind classifies a detected, reportable event.
type Kind string

const (
	KindPreMatch        Kind = "pre_match"
	KindKickOff         Kind = "kick_off"
	KindGoal            Kind = "goal"
	KindYellowCard      Kind = "yellow_card"
	KindRedCard         Kind = "red_card"
	KindSubstitution    Kind = "substitution"
	KindHalfTime        Kind = "half_time"
	KindFullTime        Kind = "full_time"
	KindScoreCorrection Kind = "score_correction"
	KindStatusChange    Kind = "status_change"
)

// Event is a detected occurrence ready for dispatch. Events are immutable
// once created; the Snapshot field carries the match context the formatter
// needs (team names, score, competition).
type Event struct {
	MatchID     string    `json:"match_id"`
	Kind        Kind      `json:"kind"`
	Minute      string    `json:"minute,omitempty"`
	Side        Side      `json:"side,omitempty"`
	Player      string    `json:"player,omitempty"`
	PlayerIn    string    `json:"player_in,omitempty"`
	NewStatus   Status    `json:"new_status,omitempty"` // status_change only
	Snapshot    Snapshot  `json:"snapshot"`
	Fingerprint string    `json:"fingerprint"`
	DetectedAt  time.Time `json:"detected_at"`
}

// fingerprint derives the deterministic dedup key for an event. Same scheme
// as the snapshot ids: SHA1 over the stable, disambiguating fields.
//
// Goal fingerprints deliberately exclude scorer and minute: the key is the
// resulting scoreline, so a goal first reported without incident detail and
// later backfilled with a scorer still maps to the same fingerprint.
func fingerprint(parts ...string) string {
	h := sha1.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{'|'})
		}
		h.Write([]byte(p))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func newEvent(kind Kind, snap Snapshot, now time.Time) Event {
	return Event{
		MatchID:    snap.MatchID,
		Kind:       kind,
		Minute:     snap.Minute,
		Snapshot:   snap,
		DetectedAt: now,
	}
}

// PreMatchEvent builds the one-hour-to-kickoff reminder for a fixture.
// It is produced by the tracker, not the detector, because it depends on
// wall-clock proximity rather than a snapshot transition.
func PreMatchEvent(snap Snapshot, now time.Time) Event {
	ev := newEvent(KindPreMatch, snap, now)
	ev.Minute = ""
	ev.Fingerprint = fingerprint(snap.MatchID, string(KindPreMatch))
	return ev
}

func kickOffEvent(snap Snapshot, now time.Time) Event {
	ev := newEvent(KindKickOff, snap, now)
	ev.Fingerprint = fingerprint(snap.MatchID, string(KindKickOff))
	return ev
}

func halfTimeEvent(snap Snapshot, now time.Time) Event {
	ev := newEvent(KindHalfTime, snap, now)
	ev.Fingerprint = fingerprint(snap.MatchID, string(KindHalfTime))
	return ev
}

func fullTimeEvent(snap Snapshot, now time.Time) Event {
	ev := newEvent(KindFullTime, snap, now)
	ev.Fingerprint = fingerprint(snap.MatchID, string(KindFullTime))
	return ev
}

func statusChangeEvent(snap Snapshot, now time.Time) Event {
	ev := newEvent(KindStatusChange, snap, now)
	ev.NewStatus = snap.Status
	ev.Fingerprint = fingerprint(snap.MatchID, string(KindStatusChange), string(snap.Status))
	return ev
}

// goalEvent builds a goal for the given side at the given resulting score.
// inc may be nil when the feed reported the score change without incident
// detail; the notification is still sent, just unattributed.
func goalEvent(snap Snapshot, side Side, homeScore, awayScore int, inc *Incident, now time.Time) Event {
	ev := newEvent(KindGoal, snap, now)
	ev.Side = side
	if inc != nil {
		ev.Minute = inc.Minute
		ev.Player = inc.Player
	}
	// Scoreline context for the formatter: the score as of this goal, which
	// may be earlier than the snapshot's final score when two goals arrive
	// in one poll.
	ev.Snapshot.Home.Score = homeScore
	ev.Snapshot.Away.Score = awayScore
	ev.Fingerprint = fingerprint(snap.MatchID, string(KindGoal), string(side),
		fmt.Sprintf("%d-%d", homeScore, awayScore))
	return ev
}

func cardEvent(kind Kind, snap Snapshot, inc Incident, now time.Time) Event {
	ev := newEvent(kind, snap, now)
	ev.Minute = inc.Minute
	ev.Side = inc.Side
	ev.Player = inc.Player
	ev.Fingerprint = fingerprint(snap.MatchID, string(kind), inc.Identity())
	return ev
}

func substitutionEvent(snap Snapshot, inc Incident, now time.Time) Event {
	ev := newEvent(KindSubstitution, snap, now)
	ev.Minute = inc.Minute
	ev.Side = inc.Side
	ev.Player = inc.Player
	ev.PlayerIn = inc.PlayerIn
	ev.Fingerprint = fingerprint(snap.MatchID, string(KindSubstitution), inc.Identity())
	return ev
}

func scoreCorrectionEvent(snap Snapshot, now time.Time) Event {
	ev := newEvent(KindScoreCorrection, snap, now)
	ev.Fingerprint = fingerprint(snap.MatchID, string(KindScoreCorrection),
		fmt.Sprintf("%d-%d", snap.Home.Score, snap.Away.Score))
	return ev
}
