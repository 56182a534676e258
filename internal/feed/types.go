package feed

import "encoding/json"

// envelope is the outer shape of every LiveScore API response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// rawName is a nested {"name": ...} object; the API uses it for
// competition, round and venue on match detail payloads.
type rawName struct {
	Name string `json:"name"`
}

// rawMatch is a match as the live scores and fixtures endpoints report it.
// Fixtures omit score/status/minute; live matches omit location.
type rawMatch struct {
	ID          json.Number `json:"id"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	HomeName    string      `json:"home_name"`
	AwayName    string      `json:"away_name"`
	Score       string      `json:"score"`
	Status      string      `json:"status"`
	Minute      string      `json:"minute"`
	Location    string      `json:"location"`
	Competition rawName     `json:"competition"`
	Round       rawName     `json:"round"`
	Venue       rawName     `json:"venue"`
}

type liveData struct {
	Match []rawMatch `json:"match"`
}

type fixturesData struct {
	Fixtures []rawMatch `json:"fixtures"`
}

// rawEvent is one incident from scores/events.json. home_away is "h"/"a".
type rawEvent struct {
	ID       json.Number `json:"id"`
	Type     string      `json:"type"`
	Minute   string      `json:"minute"`
	Player   string      `json:"player"`
	PlayerIn string      `json:"player_in"`
	HomeAway string      `json:"home_away"`
}

type eventsData struct {
	Event []rawEvent `json:"event"`
}

type rawStatPair struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

type rawStatistics struct {
	Possession    rawStatPair `json:"possession"`
	ShotsOnTarget rawStatPair `json:"shots_on_target"`
	Corners       rawStatPair `json:"corners"`
}

// TableRow is one team's standing in the league table.
type TableRow struct {
	Name         string `json:"name"`
	Played       int    `json:"matches_total"`
	Won          int    `json:"matches_won"`
	Drawn        int    `json:"matches_drawn"`
	Lost         int    `json:"matches_lost"`
	GoalsFor     int    `json:"goals_scored"`
	GoalsAgainst int    `json:"goals_conceded"`
	Points       int    `json:"points"`
}

type tableData struct {
	Table []TableRow `json:"table"`
}

// TeamRef names a team inside standings and scorer payloads.
type TeamRef struct {
	Name string `json:"name"`
}

// TopScorer is one entry from the competition top scorers endpoint.
type TopScorer struct {
	Name  string      `json:"name"`
	Team  TeamRef     `json:"team"`
	Goals json.Number `json:"goals"`
}

type topScorersData struct {
	TopScorers []TopScorer `json:"topscorers"`
}
