package feed

import (
	"fmt"
	"time"
)

// Scope selects which fixtures a poll cycle covers. Live matches are always
// polled; the date window (or round) additionally pulls upcoming fixtures
// so pre-match reminders can fire.
type Scope struct {
	From  time.Time
	To    time.Time
	Round string
}

// LiveOnly reports whether the scope carries no fixture window at all.
func (s Scope) LiveOnly() bool {
	return s.From.IsZero() && s.To.IsZero() && s.Round == ""
}

// Scope modes accepted by ResolveScope.
const (
	ScopeLive    = "live"
	ScopeToday   = "today"
	ScopeWeek    = "week"
	ScopeWeekend = "weekend"
	ScopeRound   = "round"
)

// ResolveScope translates an operator-facing scope mode into a concrete
// fixture window relative to now.
//
//	live    - in-play matches only
//	today   - today and tomorrow (the original bot's window)
//	week    - the next seven days
//	weekend - the upcoming Saturday and Sunday
//	round   - the given round identifier, dates left to the feed
func ResolveScope(mode, round string, now time.Time) (Scope, error) {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}

	switch mode {
	case ScopeLive:
		return Scope{}, nil
	case ScopeToday:
		return Scope{From: day(now), To: day(now.AddDate(0, 0, 1))}, nil
	case ScopeWeek:
		return Scope{From: day(now), To: day(now.AddDate(0, 0, 7))}, nil
	case ScopeWeekend:
		sat := now
		for sat.Weekday() != time.Saturday && sat.Weekday() != time.Sunday {
			sat = sat.AddDate(0, 0, 1)
		}
		from := day(sat)
		to := from
		for to.Weekday() != time.Sunday {
			to = to.AddDate(0, 0, 1)
		}
		return Scope{From: from, To: to}, nil
	case ScopeRound:
		if round == "" {
			return Scope{}, fmt.Errorf("scope %q requires a round identifier", mode)
		}
		return Scope{Round: round}, nil
	}
	return Scope{}, fmt.Errorf("unknown tracking scope %q", mode)
}
