package match

import (
	"testing"
	"time"
)

func TestFingerprintDeterminism(t *testing.T) {
	snap := snapshot(StatusInPlay, 1, 0)

	a := kickOffEvent(snap, testNow)
	b := kickOffEvent(snap, testNow.Add(time.Hour))
	if a.Fingerprint != b.Fingerprint {
		t.Error("fingerprint must not depend on detection time")
	}

	if a.Fingerprint == halfTimeEvent(snap, testNow).Fingerprint {
		t.Error("different kinds must produce different fingerprints")
	}

	other := snap
	other.MatchID = "m-2002"
	if a.Fingerprint == kickOffEvent(other, testNow).Fingerprint {
		t.Error("different matches must produce different fingerprints")
	}
}

func TestGoalFingerprintIgnoresAttribution(t *testing.T) {
	snap := snapshot(StatusInPlay, 1, 0)
	inc := Incident{ID: "55", Kind: IncidentGoal, Minute: "23", Side: SideHome, Player: "Henry Martín"}

	bare := goalEvent(snap, SideHome, 1, 0, nil, testNow)
	attributed := goalEvent(snap, SideHome, 1, 0, &inc, testNow)

	// A goal first seen without detail and later backfilled with a scorer
	// must keep the same fingerprint, or it would be notified twice.
	if bare.Fingerprint != attributed.Fingerprint {
		t.Error("attribution detail must not change a goal fingerprint")
	}

	second := goalEvent(snap, SideHome, 2, 0, nil, testNow)
	if bare.Fingerprint == second.Fingerprint {
		t.Error("goals at different scorelines must differ")
	}
}

func TestIncidentIdentity(t *testing.T) {
	withID := Incident{ID: "9", Kind: IncidentYellowCard, Minute: "30", Side: SideHome, Player: "A"}
	if withID.Identity() != "id:9" {
		t.Errorf("feed token should win, got %q", withID.Identity())
	}

	a := Incident{Kind: IncidentYellowCard, Minute: "30", Side: SideHome, Player: "A"}
	b := Incident{Kind: IncidentYellowCard, Minute: "30", Side: SideHome, Player: "B"}
	if a.Identity() == b.Identity() {
		t.Error("different players must have different identities")
	}

	c := a
	if a.Identity() != c.Identity() {
		t.Error("identity must be stable for equal incidents")
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusFinished, StatusPostponed, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusScheduled, StatusInPlay, StatusHalfTime} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
