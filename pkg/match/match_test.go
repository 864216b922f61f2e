package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		BallDistanceThreshold: 50,
		PossessionFrames:      3,
		FPS:                   30,
		Teams:                 []TeamLabel{teamHome, teamAway},
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero distance threshold", func(c *Config) { c.BallDistanceThreshold = 0 }},
		{"negative distance threshold", func(c *Config) { c.BallDistanceThreshold = -3 }},
		{"zero dwell threshold", func(c *Config) { c.PossessionFrames = 0 }},
		{"negative gap limit", func(c *Config) { c.GapLimit = -1 }},
		{"single team", func(c *Config) { c.Teams = c.Teams[:1] }},
		{"duplicate team", func(c *Config) { c.Teams = []TeamLabel{teamHome, teamHome} }},
		{"empty team label", func(c *Config) { c.Teams = []TeamLabel{teamHome, TeamNone} }},
		{"unknown initial possession", func(c *Config) { c.InitialPossession = "Arsenal" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.Error(t, err)
		})
	}
}

// TestMatchScenario walks the canonical 15 frame sequence: ten frames of home
// player P1 on the ball, a pass to P2, then three away frames that flip
// possession on the third.
func TestMatchScenario(t *testing.T) {
	m, err := New(testConfig())
	require.NoError(t, err)

	ball := ballAt(100, 100)
	p1 := playerAt(1, teamHome, 105, 100)
	p2 := playerAt(2, teamHome, 108, 100)
	p3 := playerAt(3, teamAway, 102, 100)

	var snap Snapshot

	// Frames 1-10: P1 closest.
	for i := 0; i < 10; i++ {
		snap = m.Step(ball, []Player{p1, playerAt(2, teamHome, 400, 100), playerAt(3, teamAway, 500, 100)})
	}
	home, _ := snap.Team(teamHome)
	assert.Equal(t, 10, home.PossessionFrames)
	assert.Equal(t, 0, home.Passes)
	assert.Equal(t, teamHome, m.TeamInPossession())

	// Frame 11: still P1.
	m.Step(ball, []Player{p1, playerAt(2, teamHome, 400, 100)})

	// Frame 12: P2 takes over - one completed home pass.
	snap = m.Step(ball, []Player{playerAt(1, teamHome, 400, 100), p2})
	home, _ = snap.Team(teamHome)
	assert.Equal(t, 1, home.Passes)
	assert.Equal(t, 12, home.PossessionFrames)

	// Frames 13-14: away P3 closest but still inside the dwell window.
	for i := 0; i < 2; i++ {
		snap = m.Step(ball, []Player{p3, playerAt(2, teamHome, 400, 100)})
		require.Equal(t, teamHome, m.TeamInPossession(), "no flip before the dwell threshold")
	}
	home, _ = snap.Team(teamHome)
	assert.Equal(t, 14, home.PossessionFrames, "dwell frames still belong to the confirmed team")

	// Frame 15: third consecutive away frame - possession flips, turnover.
	snap = m.Step(ball, []Player{p3, playerAt(2, teamHome, 400, 100)})
	assert.Equal(t, teamAway, m.TeamInPossession())

	home, _ = snap.Team(teamHome)
	away, _ := snap.Team(teamAway)
	assert.Equal(t, 14, home.PossessionFrames)
	assert.Equal(t, 1, away.PossessionFrames)
	assert.Equal(t, 1, home.Turnovers)
	assert.Equal(t, 0, away.Passes, "a turnover credits no pass")
	assert.Equal(t, snap.Frames, home.PossessionFrames+away.PossessionFrames)
	assert.Equal(t, 15, snap.Frames)
}

func TestMatchGapFixedPoint(t *testing.T) {
	m, err := New(testConfig())
	require.NoError(t, err)

	before := m.Step(ballAt(100, 100), []Player{playerAt(1, teamHome, 105, 100)})

	var after Snapshot
	for i := 0; i < 50; i++ {
		after = m.Step(nil, nil)
	}
	assert.Equal(t, before, after, "ball-less frames must not move any counter")
}

func TestMatchPossessionSumInvariant(t *testing.T) {
	m, err := New(testConfig())
	require.NoError(t, err)

	ball := ballAt(100, 100)
	frames := [][]Player{
		{playerAt(1, teamHome, 105, 100)},
		{playerAt(1, teamHome, 105, 100)},
		{playerAt(5, teamAway, 103, 100)},
		{playerAt(5, teamAway, 103, 100)},
		{playerAt(5, teamAway, 103, 100)},
		{playerAt(6, teamAway, 101, 100)},
		{playerAt(2, teamHome, 104, 100)},
		{playerAt(1, teamHome, 102, 100)},
	}

	var snap Snapshot
	for _, players := range frames {
		snap = m.Step(ball, players)
	}

	home, _ := snap.Team(teamHome)
	away, _ := snap.Team(teamAway)
	assert.Equal(t, len(frames), snap.Frames)
	assert.Equal(t, snap.Frames, home.PossessionFrames+away.PossessionFrames)
}
