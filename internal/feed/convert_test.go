package feed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golazo-bot/golazo/internal/match"
)

func TestStatusFromFeed(t *testing.T) {
	cases := []struct {
		code string
		want match.Status
	}{
		{"NS", match.StatusScheduled},
		{"", match.StatusScheduled},
		{"IN PLAY", match.StatusInPlay},
		{"ADDED TIME", match.StatusInPlay},
		{"BREAK", match.StatusInPlay},
		{"HT", match.StatusHalfTime},
		{"ht", match.StatusHalfTime},
		{"FT", match.StatusFinished},
		{"AET", match.StatusFinished},
		{"POSTP", match.StatusPostponed},
		{"CANC", match.StatusCancelled},
	}
	for _, tc := range cases {
		got, err := statusFromFeed(tc.code)
		if err != nil {
			t.Errorf("statusFromFeed(%q): unexpected error %v", tc.code, err)
			continue
		}
		if got != tc.want {
			t.Errorf("statusFromFeed(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}

	if _, err := statusFromFeed("MYSTERY"); err == nil {
		t.Error("unknown status must return an error")
	}
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		in         string
		home, away int
	}{
		{"2 - 1", 2, 1},
		{"0 - 0", 0, 0},
		{"? - ?", 0, 0},
		{"", 0, 0},
		{"3-2", 3, 2},
	}
	for _, tc := range cases {
		h, a := parseScore(tc.in)
		if h != tc.home || a != tc.away {
			t.Errorf("parseScore(%q) = %d, %d, want %d, %d", tc.in, h, a, tc.home, tc.away)
		}
	}
}

func TestParseKickoff(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}

	got := parseKickoff("2026-03-14", "19:00", loc)
	want := time.Date(2026, time.March, 14, 19, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("parseKickoff = %v, want %v", got, want)
	}

	// Seconds in the time field are ignored.
	got = parseKickoff("2026-03-14", "19:00:00", loc)
	if !got.Equal(want) {
		t.Errorf("parseKickoff with seconds = %v, want %v", got, want)
	}

	if !parseKickoff("", "19:00", loc).IsZero() {
		t.Error("missing date must yield the zero time")
	}
	if !parseKickoff("garbage", "19:00", loc).IsZero() {
		t.Error("unparseable date must yield the zero time")
	}
}

func TestConvertMatch(t *testing.T) {
	raw := rawMatch{
		ID:          json.Number("118574"),
		Date:        "2026-03-14",
		Time:        "19:00:00",
		HomeName:    "Club América",
		AwayName:    "Cruz Azul",
		Score:       "1 - 0",
		Status:      "IN PLAY",
		Minute:      "55'",
		Location:    "Estadio Azteca",
		Competition: rawName{Name: "Liga MX"},
		Round:       rawName{Name: "Jornada 11"},
	}

	snap, err := convertMatch(raw, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.MatchID != "118574" {
		t.Errorf("MatchID = %q", snap.MatchID)
	}
	if snap.Status != match.StatusInPlay {
		t.Errorf("Status = %q", snap.Status)
	}
	if snap.Minute != "55" {
		t.Errorf("Minute = %q, want minute without apostrophe", snap.Minute)
	}
	if snap.Home.Score != 1 || snap.Away.Score != 0 {
		t.Errorf("score = %d-%d", snap.Home.Score, snap.Away.Score)
	}
	if snap.Venue != "Estadio Azteca" {
		t.Errorf("Venue = %q, want location fallback", snap.Venue)
	}
	if snap.Kickoff.IsZero() {
		t.Error("expected a parsed kickoff time")
	}
}

func TestConvertMatchRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		raw  rawMatch
	}{
		{"missing id", rawMatch{HomeName: "A", AwayName: "B", Status: "NS"}},
		{"zero id", rawMatch{ID: json.Number("0"), HomeName: "A", AwayName: "B", Status: "NS"}},
		{"missing teams", rawMatch{ID: json.Number("5"), Status: "NS"}},
		{"unknown status", rawMatch{ID: json.Number("5"), HomeName: "A", AwayName: "B", Status: "WAT"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := convertMatch(tc.raw, time.UTC); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestConvertIncident(t *testing.T) {
	cases := []struct {
		name     string
		raw      rawEvent
		wantKind match.IncidentKind
		wantSide match.Side
		ok       bool
	}{
		{"goal", rawEvent{ID: json.Number("1"), Type: "GOAL", HomeAway: "h", Player: "H. Losano"}, match.IncidentGoal, match.SideHome, true},
		{"own goal", rawEvent{ID: json.Number("2"), Type: "own goal", HomeAway: "a"}, match.IncidentGoal, match.SideAway, true},
		{"yellow", rawEvent{ID: json.Number("3"), Type: "YELLOW_CARD", HomeAway: "h"}, "", "", false},
		{"yellow spelled", rawEvent{ID: json.Number("3"), Type: "yellowcard", HomeAway: "h"}, match.IncidentYellowCard, match.SideHome, true},
		{"second yellow", rawEvent{ID: json.Number("4"), Type: "yellowred card", HomeAway: "a"}, match.IncidentRedCard, match.SideAway, true},
		{"substitution", rawEvent{ID: json.Number("5"), Type: "substitution", HomeAway: "h", Player: "Out", PlayerIn: "In"}, match.IncidentSubstitution, match.SideHome, true},
		{"var review dropped", rawEvent{ID: json.Number("6"), Type: "var", HomeAway: "h"}, "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inc, ok := convertIncident(tc.raw)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if inc.Kind != tc.wantKind {
				t.Errorf("Kind = %q, want %q", inc.Kind, tc.wantKind)
			}
			if inc.Side != tc.wantSide {
				t.Errorf("Side = %q, want %q", inc.Side, tc.wantSide)
			}
		})
	}
}

func TestConvertStatistics(t *testing.T) {
	full := rawStatistics{
		Possession:    rawStatPair{Home: "60", Away: "40"},
		ShotsOnTarget: rawStatPair{Home: "5", Away: "1"},
		Corners:       rawStatPair{Home: "7", Away: "2"},
	}
	stats := convertStatistics(full)
	if stats == nil {
		t.Fatal("expected statistics")
	}
	if stats.Possession.Home != "60" || stats.Corners.Away != "2" {
		t.Errorf("unexpected conversion: %+v", stats)
	}

	if convertStatistics(rawStatistics{}) != nil {
		t.Error("empty statistics must convert to nil")
	}
}
