package match

import "time"

// Result is the outcome of diffing two consecutive snapshots.
type Result struct {
	// Events are the detected events, in dispatch order: status transitions
	// first, then goals, then cards and substitutions, then corrections.
	Events []Event

	// Anomaly is set when the status moved along an illegal path (a feed
	// re-opening a finished match, for example). The caller should log it,
	// reset the tracked state, and re-run detection with no previous
	// snapshot.
	Anomaly bool
}

// Detect compares the previous snapshot of a match (nil on first sighting)
// with the current one and returns the ordered events that happened between
// them. Detect is a pure function: it holds no memory of prior dispatch, so
// the same input always yields the same events with the same fingerprints.
// Deduplication is the tracker's job.
func Detect(prev *Snapshot, cur Snapshot, now time.Time) Result {
	var res Result

	if prev == nil {
		// First sighting. A match already in play gets a kickoff; a match
		// that has not started (or is already over) is not itself an event.
		if cur.Status == StatusInPlay {
			res.Events = append(res.Events, kickOffEvent(cur, now))
		}
		return res
	}

	if prev.Status != cur.Status {
		if illegalTransition(prev.Status, cur.Status) {
			res.Anomaly = true
			return res
		}
		res.Events = append(res.Events, statusEvents(*prev, cur, now)...)
	}

	res.Events = append(res.Events, goalEvents(*prev, cur, now)...)
	res.Events = append(res.Events, incidentEvents(*prev, cur, now)...)
	res.Events = append(res.Events, correctionEvents(*prev, cur, now)...)

	return res
}

// illegalTransition reports whether the status moved off the legal path
// Scheduled -> InPlay -> (HalfTime <-> InPlay)* -> Finished, with
// Postponed/Cancelled as terminal branches from Scheduled.
func illegalTransition(from, to Status) bool {
	if from.Terminal() {
		return true
	}
	switch {
	case to == StatusScheduled:
		// Nothing moves back to scheduled.
		return true
	case from == StatusHalfTime && (to == StatusPostponed || to == StatusCancelled):
		return true
	}
	return false
}

// statusEvents yields the notification events for a legal status change.
func statusEvents(prev, cur Snapshot, now time.Time) []Event {
	switch cur.Status {
	case StatusInPlay:
		if prev.Status == StatusHalfTime {
			// Second-half resumption: not independently notified.
			return nil
		}
		return []Event{kickOffEvent(cur, now)}
	case StatusHalfTime:
		return []Event{halfTimeEvent(cur, now)}
	case StatusFinished:
		return []Event{fullTimeEvent(cur, now)}
	case StatusPostponed, StatusCancelled:
		return []Event{statusChangeEvent(cur, now)}
	}
	return nil
}

// goalEvents emits one Goal per unit of score increase for each side,
// attributing scorer and minute from the goal incidents that are new in
// this snapshot. When the feed reports fewer new goal incidents than the
// score delta, the surplus goals go out unattributed: score truth takes
// precedence over incident detail.
func goalEvents(prev, cur Snapshot, now time.Time) []Event {
	homeDelta := cur.Home.Score - prev.Home.Score
	awayDelta := cur.Away.Score - prev.Away.Score
	if homeDelta <= 0 && awayDelta <= 0 {
		return nil
	}

	newGoals := newGoalIncidents(prev, cur)
	var events []Event

	emit := func(side Side, delta, fromHome, fromAway int) {
		queue := newGoals[side]
		for i := 1; i <= delta; i++ {
			var inc *Incident
			if len(queue) > 0 {
				inc = &queue[0]
				queue = queue[1:]
			}
			home, away := fromHome, fromAway
			if side == SideHome {
				home += i
			} else {
				away += i
			}
			events = append(events, goalEvent(cur, side, home, away, inc, now))
		}
		newGoals[side] = queue
	}

	if homeDelta > 0 {
		emit(SideHome, homeDelta, prev.Home.Score, cur.Away.Score)
	}
	if awayDelta > 0 {
		emit(SideAway, awayDelta, cur.Home.Score, prev.Away.Score)
	}
	return events
}

// newGoalIncidents collects goal incidents present in cur but not in prev,
// grouped by side, preserving feed order.
func newGoalIncidents(prev, cur Snapshot) map[Side][]Incident {
	seen := incidentIndex(prev.Incidents)
	out := map[Side][]Incident{}
	for _, inc := range cur.Incidents {
		if inc.Kind != IncidentGoal {
			continue
		}
		if _, ok := seen[inc.Identity()]; ok {
			continue
		}
		out[inc.Side] = append(out[inc.Side], inc)
	}
	return out
}

// incidentEvents diffs the card and substitution incidents by identity.
// Position in the list is meaningless: feeds reorder and backfill. Goal
// incidents are excluded here because the score delta already covers them;
// a backfilled goal incident with no score change must not re-notify.
func incidentEvents(prev, cur Snapshot, now time.Time) []Event {
	seen := incidentIndex(prev.Incidents)
	var events []Event
	for _, inc := range cur.Incidents {
		if _, ok := seen[inc.Identity()]; ok {
			continue
		}
		switch inc.Kind {
		case IncidentYellowCard:
			events = append(events, cardEvent(KindYellowCard, cur, inc, now))
		case IncidentRedCard:
			events = append(events, cardEvent(KindRedCard, cur, inc, now))
		case IncidentSubstitution:
			events = append(events, substitutionEvent(cur, inc, now))
		}
	}
	return events
}

// correctionEvents turns a score decrease into a single ScoreCorrection
// rather than a negative goal. Feeds occasionally correct a finished (or
// even live) scoreline downwards.
func correctionEvents(prev, cur Snapshot, now time.Time) []Event {
	if cur.Home.Score < prev.Home.Score || cur.Away.Score < prev.Away.Score {
		return []Event{scoreCorrectionEvent(cur, now)}
	}
	return nil
}
