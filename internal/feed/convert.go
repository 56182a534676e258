package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golazo-bot/golazo/internal/match"
)

// statusFromFeed maps the LiveScore status codes onto the snapshot enum.
// The feed is not consistent between endpoints, so several spellings map to
// the same state. BREAK and ADDED TIME are still in-play for our purposes.
func statusFromFeed(code string) (match.Status, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "", "NS", "NOT STARTED", "SCHEDULED":
		return match.StatusScheduled, nil
	case "IN PLAY", "IN_PLAY", "LIVE", "ADDED TIME", "ADDED_TIME", "BREAK":
		return match.StatusInPlay, nil
	case "HT", "HALF TIME", "HALF_TIME", "HALF TIME BREAK":
		return match.StatusHalfTime, nil
	case "FT", "FULL TIME", "FULL_TIME", "FINISHED", "ENDED", "AET", "AFTER PEN":
		return match.StatusFinished, nil
	case "POSTP", "POSTPONED":
		return match.StatusPostponed, nil
	case "CANC", "CANCELED", "CANCELLED":
		return match.StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown match status %q", code)
}

// parseScore splits a feed scoreline like "2 - 1" into its two sides.
// Unparseable scores ("? - ?" before kickoff) come back as 0-0.
func parseScore(score string) (home, away int) {
	parts := strings.SplitN(score, "-", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	a, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return h, a
}

// parseKickoff combines the feed's date and time fields in the given
// location. The time field sometimes carries seconds; only HH:MM counts.
func parseKickoff(date, clock string, loc *time.Location) time.Time {
	if date == "" || clock == "" {
		return time.Time{}
	}
	if parts := strings.Split(clock, ":"); len(parts) > 2 {
		clock = parts[0] + ":" + parts[1]
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// convertMatch validates a raw feed match and builds a snapshot from it.
func convertMatch(raw rawMatch, loc *time.Location) (match.Snapshot, error) {
	id := raw.ID.String()
	if id == "" || id == "0" {
		return match.Snapshot{}, fmt.Errorf("match without id (%s vs %s)", raw.HomeName, raw.AwayName)
	}
	if raw.HomeName == "" || raw.AwayName == "" {
		return match.Snapshot{}, fmt.Errorf("match %s missing team names", id)
	}

	status, err := statusFromFeed(raw.Status)
	if err != nil {
		return match.Snapshot{}, fmt.Errorf("match %s: %w", id, err)
	}

	homeScore, awayScore := parseScore(raw.Score)

	venue := raw.Venue.Name
	if venue == "" {
		venue = raw.Location
	}

	return match.Snapshot{
		MatchID:     id,
		Competition: raw.Competition.Name,
		Round:       raw.Round.Name,
		Venue:       venue,
		Kickoff:     parseKickoff(raw.Date, raw.Time, loc),
		Status:      status,
		Minute:      strings.TrimSuffix(raw.Minute, "'"),
		Home:        match.Team{Name: raw.HomeName, Score: homeScore},
		Away:        match.Team{Name: raw.AwayName, Score: awayScore},
	}, nil
}

// convertIncident maps a raw feed event onto an incident. Unknown types
// (var decisions, penalties missed, ...) are dropped here so the detector
// never sees them.
func convertIncident(raw rawEvent) (match.Incident, bool) {
	var kind match.IncidentKind
	switch strings.ToLower(raw.Type) {
	case "goal", "goal penalty", "own goal":
		kind = match.IncidentGoal
	case "yellowcard", "yellow card":
		kind = match.IncidentYellowCard
	case "redcard", "red card", "yellowred card":
		kind = match.IncidentRedCard
	case "substitution":
		kind = match.IncidentSubstitution
	default:
		return match.Incident{}, false
	}

	side := match.SideHome
	if strings.EqualFold(raw.HomeAway, "a") {
		side = match.SideAway
	}

	return match.Incident{
		ID:       raw.ID.String(),
		Kind:     kind,
		Minute:   strings.TrimSuffix(raw.Minute, "'"),
		Side:     side,
		Player:   raw.Player,
		PlayerIn: raw.PlayerIn,
	}, true
}

func convertStatistics(raw rawStatistics) *match.Statistics {
	stats := &match.Statistics{
		Possession:    match.StatPair{Home: raw.Possession.Home, Away: raw.Possession.Away},
		ShotsOnTarget: match.StatPair{Home: raw.ShotsOnTarget.Home, Away: raw.ShotsOnTarget.Away},
		Corners:       match.StatPair{Home: raw.Corners.Home, Away: raw.Corners.Away},
	}
	if *stats == (match.Statistics{}) {
		return nil
	}
	return stats
}
