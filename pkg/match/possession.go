package match

// distanceTolerance bounds what counts as an exact proximity tie. Ties are
// broken by the lowest track ID so replays are deterministic.
const distanceTolerance = 1e-9

// PossessionTracker decides which team is credited with ball control each
// frame. A candidate team must be closest to the ball for a configured number
// of consecutive frames before the confirmed team flips, which suppresses
// single-frame classifier noise and the ball briefly rolling past an opponent.
type PossessionTracker struct {
	proximity float64 // max foot-to-ball distance that still counts as control
	dwell     int     // consecutive frames required before a possession flip
	gapLimit  int     // consecutive ball-less frames before possession is lost, 0 = never

	current   TeamLabel
	closestID int
	candidate TeamLabel
	dwellRun  int
	gapRun    int
}

// NewPossessionTracker creates a tracker. initial may be TeamNone; when it is,
// the first team to control the ball takes possession without waiting out the
// dwell window, since there is no incumbent to protect.
func NewPossessionTracker(proximity float64, dwell, gapLimit int, initial TeamLabel) *PossessionTracker {
	return &PossessionTracker{
		proximity: proximity,
		dwell:     dwell,
		gapLimit:  gapLimit,
		current:   initial,
		closestID: -1,
	}
}

// Team returns the currently confirmed team.
func (t *PossessionTracker) Team() TeamLabel {
	return t.current
}

// Update advances the tracker by one frame. ball may be nil when the detector
// missed it. It returns the team credited with this frame and the track ID of
// the controlling player (-1 when nobody controls the ball yet).
//
// Degenerate frames (no ball, no players, everyone too far away) hold the
// previous state instead of raising errors.
func (t *PossessionTracker) Update(ball *Ball, players []Player) (TeamLabel, int) {
	if ball == nil || len(players) == 0 {
		t.gapRun++
		if t.gapLimit > 0 && t.gapRun >= t.gapLimit {
			t.current = TeamNone
			t.closestID = -1
			t.candidate = TeamNone
			t.dwellRun = 0
		}
		return t.current, t.closestID
	}
	t.gapRun = 0

	nearest, dist, ok := closestPlayer(*ball, players)
	if !ok || dist > t.proximity {
		// Ball in transit - nobody controls it, state holds.
		return t.current, t.closestID
	}

	if t.current == TeamNone {
		t.current = nearest.Team
		t.closestID = nearest.ID
		t.candidate = TeamNone
		t.dwellRun = 0
		return t.current, t.closestID
	}

	if nearest.Team == t.current {
		t.closestID = nearest.ID
		t.candidate = TeamNone
		t.dwellRun = 0
		return t.current, t.closestID
	}

	if nearest.Team == t.candidate {
		t.dwellRun++
	} else {
		t.candidate = nearest.Team
		t.dwellRun = 1
	}

	if t.dwellRun >= t.dwell {
		t.current = t.candidate
		t.closestID = nearest.ID
		t.candidate = TeamNone
		t.dwellRun = 0
	}

	return t.current, t.closestID
}

// closestPlayer returns the classified player nearest to the ball. Players
// without a team (referees, unclassified boxes) cannot hold possession and
// are skipped. Near-equal distances resolve to the lowest track ID.
func closestPlayer(ball Ball, players []Player) (Player, float64, bool) {
	var best Player
	bestDist := 0.0
	found := false

	for _, p := range players {
		if p.Team == TeamNone {
			continue
		}
		d := p.DistanceToBall(ball)
		switch {
		case !found:
			best, bestDist, found = p, d, true
		case d < bestDist-distanceTolerance:
			best, bestDist = p, d
		case d <= bestDist+distanceTolerance && p.ID < best.ID:
			best, bestDist = p, d
		}
	}

	return best, bestDist, found
}
