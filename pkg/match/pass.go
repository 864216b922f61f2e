package match

// Event is the outcome of feeding one confirmed possession frame to the
// PassDetector.
type Event int

const (
	// EventNone means nothing noteworthy happened this frame.
	EventNone Event = iota
	// EventPass means ball control moved between two different players of the
	// same team with no opposing possession in between.
	EventPass
	// EventTurnover means confirmed possession moved to the other team.
	EventTurnover
)

// PassDetector consumes the already debounced possession stream and credits
// completed passes. A pass is strictly: control moves from one player to a
// different player on the same team. A confirmed change of team closes the
// episode as a turnover and never credits a pass.
type PassDetector struct {
	team      TeamLabel
	toucherID int
}

// NewPassDetector starts with no possession episode; the first confirmed
// possession seeds an episode with no prior toucher, so no pass can be
// credited until a second distinct toucher shows up on that team.
func NewPassDetector() *PassDetector {
	return &PassDetector{toucherID: -1}
}

// Update consumes the confirmed team for this frame together with the
// controlling player's track ID and team. The controlling player can lag the
// confirmed team during dwell frames, so the toucher only updates when the
// player actually belongs to the confirmed team.
//
// The returned label names the team the event concerns: the crediting team
// for a pass, the team that lost the ball for a turnover.
func (d *PassDetector) Update(team TeamLabel, playerID int, playerTeam TeamLabel) (Event, TeamLabel) {
	if team == TeamNone {
		// Possession lost to a detection gap - close the episode quietly,
		// a gap is not a confirmed transfer to anyone.
		d.team = TeamNone
		d.toucherID = -1
		return EventNone, TeamNone
	}

	if d.team == TeamNone {
		d.team = team
		d.toucherID = -1
		if playerTeam == team {
			d.toucherID = playerID
		}
		return EventNone, TeamNone
	}

	if team != d.team {
		loser := d.team
		d.team = team
		d.toucherID = -1
		if playerTeam == team {
			d.toucherID = playerID
		}
		return EventTurnover, loser
	}

	if playerTeam != team || playerID < 0 || playerID == d.toucherID {
		return EventNone, TeamNone
	}

	first := d.toucherID < 0
	d.toucherID = playerID
	if first {
		return EventNone, TeamNone
	}
	return EventPass, team
}
