package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
match:
  fps: 30
  ball_distance_threshold: 45
  possession_frames: 15
  gap_limit: 120
  initial_possession: "Man City"
  teams:
    - name: "Chelsea"
      abbreviation: "CHE"
      color: [255, 0, 0]
      lower_hsv: [112, 80, 0]
      upper_hsv: [126, 255, 255]
    - name: "Man City"
      abbreviation: "MCI"
      color: [240, 230, 188]
      lower_hsv: [95, 38, 0]
      upper_hsv: [111, 190, 255]
  referee:
    lower_hsv: [0, 0, 0]
    upper_hsv: [179, 255, 49]
`

func loadSample(t *testing.T) *MatchConfig {
	t.Helper()
	viper.Reset()

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	_, err = tmpfile.WriteString(sampleConfig)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	viper.SetConfigFile(tmpfile.Name())
	require.NoError(t, viper.ReadInConfig())

	cfg, err := LoadMatch()
	require.NoError(t, err)
	return cfg
}

func TestLoadMatch(t *testing.T) {
	cfg := loadSample(t)

	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, 45.0, cfg.BallDistanceThreshold)
	assert.Equal(t, 15, cfg.PossessionFrames)
	assert.Equal(t, 120, cfg.GapLimit)
	assert.Equal(t, "Man City", cfg.InitialPossession)
	require.Len(t, cfg.Teams, 2)
	assert.Equal(t, "CHE", cfg.Teams[0].Abbreviation)
	assert.True(t, cfg.HasHSVRanges())
}

func TestLoadMatchHelpers(t *testing.T) {
	cfg := loadSample(t)

	labels := cfg.Labels()
	require.Len(t, labels, 2)
	assert.Equal(t, "Chelsea", string(labels[0]))

	assert.Equal(t, "MCI", cfg.AbbreviationFor(labels[1]))
	assert.Equal(t, "---", cfg.AbbreviationFor("Arsenal"))

	// Config colors are BGR, overlay colors RGBA.
	c := cfg.ColorFor(labels[0])
	assert.Equal(t, uint8(0), c.R)
	assert.Equal(t, uint8(255), c.B)

	settings := cfg.MatchSettings(25)
	assert.Equal(t, 30, settings.FPS, "configured fps overrides the video's")
	assert.Equal(t, 15, settings.PossessionFrames)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MatchConfig)
	}{
		{"zero distance threshold", func(c *MatchConfig) { c.BallDistanceThreshold = 0 }},
		{"zero possession frames", func(c *MatchConfig) { c.PossessionFrames = 0 }},
		{"negative gap limit", func(c *MatchConfig) { c.GapLimit = -1 }},
		{"single team", func(c *MatchConfig) { c.Teams = c.Teams[:1] }},
		{"duplicate team", func(c *MatchConfig) { c.Teams[1].Name = c.Teams[0].Name }},
		{"lowercase abbreviation", func(c *MatchConfig) { c.Teams[0].Abbreviation = "che" }},
		{"long abbreviation", func(c *MatchConfig) { c.Teams[0].Abbreviation = "CHEL" }},
		{"missing color", func(c *MatchConfig) { c.Teams[0].Color = nil }},
		{"half hsv range", func(c *MatchConfig) { c.Teams[0].UpperHSV = nil }},
		{"inverted hsv range", func(c *MatchConfig) { c.Teams[0].LowerHSV = []int{200, 0, 0} }},
		{"unknown initial possession", func(c *MatchConfig) { c.InitialPossession = "Arsenal" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadSample(t)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
