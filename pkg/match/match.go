// Package match implements the per-frame possession and passing state machine
// for a broadcast soccer video. It consumes classified player detections and
// the ball position frame by frame, and keeps running per-team possession
// time, completed pass and turnover counters. All geometry and detection
// happen outside; the package never touches video or model code.
package match

import "fmt"

// Config holds the startup parameters of the state machine. All values come
// from the application configuration and are validated once - invalid
// thresholds stop the pipeline before any frame is processed.
type Config struct {
	// BallDistanceThreshold is the maximum foot-to-ball distance (pixels)
	// that still counts as controlling the ball.
	BallDistanceThreshold float64
	// PossessionFrames is the dwell window: consecutive frames a new team
	// must be closest to the ball before possession officially flips.
	PossessionFrames int
	// GapLimit caps consecutive frames without a ball detection before
	// possession is considered lost. 0 disables the cap.
	GapLimit int
	// FPS of the source video, used for possession clock formatting.
	FPS int
	// Teams lists the competing sides, usually two. Order is preserved in
	// snapshots.
	Teams []TeamLabel
	// InitialPossession optionally seeds possession before the first frame.
	InitialPossession TeamLabel
}

// Match ties the possession tracker, the pass detector and the aggregator
// together behind a single per-frame call. State is owned here and carried
// forward between calls; processing is strictly frame-sequential.
type Match struct {
	possession *PossessionTracker
	passes     *PassDetector
	stats      *Aggregator
}

// New validates cfg and builds a fresh match state machine.
func New(cfg Config) (*Match, error) {
	if cfg.BallDistanceThreshold <= 0 {
		return nil, fmt.Errorf("match: ball distance threshold must be positive, got %v", cfg.BallDistanceThreshold)
	}
	if cfg.PossessionFrames < 1 {
		return nil, fmt.Errorf("match: possession frame threshold must be at least 1, got %d", cfg.PossessionFrames)
	}
	if cfg.GapLimit < 0 {
		return nil, fmt.Errorf("match: gap limit must not be negative, got %d", cfg.GapLimit)
	}
	if len(cfg.Teams) < 2 {
		return nil, fmt.Errorf("match: need at least 2 teams, got %d", len(cfg.Teams))
	}
	seen := make(map[TeamLabel]bool, len(cfg.Teams))
	for _, t := range cfg.Teams {
		if t == TeamNone {
			return nil, fmt.Errorf("match: empty team label")
		}
		if seen[t] {
			return nil, fmt.Errorf("match: duplicate team label '%s'", t)
		}
		seen[t] = true
	}
	if cfg.InitialPossession != TeamNone && !seen[cfg.InitialPossession] {
		return nil, fmt.Errorf("match: initial possession team '%s' is not a configured team", cfg.InitialPossession)
	}

	return &Match{
		possession: NewPossessionTracker(cfg.BallDistanceThreshold, cfg.PossessionFrames, cfg.GapLimit, cfg.InitialPossession),
		passes:     NewPassDetector(),
		stats:      NewAggregator(cfg.FPS, cfg.Teams...),
	}, nil
}

// Step advances the match by one frame. ball is nil when the detector missed
// it this frame. It returns a fresh statistics snapshot for the renderer.
func (m *Match) Step(ball *Ball, players []Player) Snapshot {
	team, closestID := m.possession.Update(ball, players)

	closestTeam := TeamNone
	for _, p := range players {
		if p.ID == closestID {
			closestTeam = p.Team
			break
		}
	}
	if closestID >= 0 && closestTeam == TeamNone {
		// Controlling player not re-detected this frame; it was on the
		// confirmed team when control was last established.
		closestTeam = team
	}

	event, subject := m.passes.Update(team, closestID, closestTeam)
	switch event {
	case EventPass:
		m.stats.RecordPass(subject)
	case EventTurnover:
		m.stats.RecordTurnover(subject)
	}

	// Gap frames (no ball or no players) bridge state without accounting:
	// replaying any number of them leaves every counter untouched.
	if ball != nil && len(players) > 0 {
		m.stats.RecordFrame(team)
	}
	return m.stats.Snapshot()
}

// TeamInPossession returns the currently confirmed team.
func (m *Match) TeamInPossession() TeamLabel {
	return m.possession.Team()
}

// Snapshot returns the current totals without advancing the match.
func (m *Match) Snapshot() Snapshot {
	return m.stats.Snapshot()
}
