package match

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a match as reported by the feed.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusInPlay    Status = "IN_PLAY"
	StatusHalfTime  Status = "HALF_TIME"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusCancelled Status = "CANCELLED"
)

// Terminal reports whether no further legal transition exists out of s.
func (s Status) Terminal() bool {
	switch s {
	case StatusFinished, StatusPostponed, StatusCancelled:
		return true
	}
	return false
}

// Side identifies which team an incident belongs to.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// IncidentKind is the feed's classification of a raw match incident.
type IncidentKind string

const (
	IncidentGoal         IncidentKind = "goal"
	IncidentYellowCard   IncidentKind = "yellowcard"
	IncidentRedCard      IncidentKind = "redcard"
	IncidentSubstitution IncidentKind = "substitution"
)

// Incident is a single feed-reported occurrence inside a match.
type Incident struct {
	// ID is the feed-assigned identity token, empty if the feed omits it.
	ID       string       `json:"id,omitempty"`
	Kind     IncidentKind `json:"kind"`
	Minute   string       `json:"minute,omitempty"`
	Side     Side         `json:"side"`
	Player   string       `json:"player,omitempty"`
	PlayerIn string       `json:"player_in,omitempty"` // substitutions only
}

// Identity returns a stable key for matching incidents across polls.
// The feed token wins when present; otherwise minute+kind+side+player is
// used so reordered or backfilled incident lists still match up.
func (i Incident) Identity() string {
	if i.ID != "" {
		return "id:" + i.ID
	}
	return fmt.Sprintf("%s|%s|%s|%s", i.Minute, i.Kind, i.Side, i.Player)
}

// Team is one side of a match with its current score.
type Team struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// StatPair holds one statistic for both teams, as reported by the feed.
type StatPair struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// Statistics are the optional in-match statistics used in half-time and
// full-time summaries.
type Statistics struct {
	Possession    StatPair `json:"possession"`
	ShotsOnTarget StatPair `json:"shots_on_target"`
	Corners       StatPair `json:"corners"`
}

// Snapshot is one match's observable state at a poll instant. Snapshots are
// immutable values: the tracker stores them and the detector compares them,
// nobody mutates them after creation.
type Snapshot struct {
	MatchID     string      `json:"match_id"`
	Competition string      `json:"competition,omitempty"`
	Round       string      `json:"round,omitempty"`
	Venue       string      `json:"venue,omitempty"`
	Kickoff     time.Time   `json:"kickoff,omitempty"` // zero when the feed omits it
	Status      Status      `json:"status"`
	Minute      string      `json:"minute,omitempty"`
	Home        Team        `json:"home"`
	Away        Team        `json:"away"`
	Incidents   []Incident  `json:"incidents,omitempty"`
	Stats       *Statistics `json:"stats,omitempty"`
}

// Score renders the current score as the feed-style "H - A" string.
func (s Snapshot) Score() string {
	return fmt.Sprintf("%d - %d", s.Home.Score, s.Away.Score)
}

// TeamName returns the name of the given side.
func (s Snapshot) TeamName(side Side) string {
	if side == SideAway {
		return s.Away.Name
	}
	return s.Home.Name
}

// incidentIndex builds a lookup of incident identities for diffing.
func incidentIndex(incidents []Incident) map[string]struct{} {
	idx := make(map[string]struct{}, len(incidents))
	for _, inc := range incidents {
		idx[inc.Identity()] = struct{}{}
	}
	return idx
}
