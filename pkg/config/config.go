// Package config holds the typed match configuration. Directory layout, http
// port and the like are read straight from viper where they are used; the
// match section is unmarshalled and validated here once at startup because a
// bad threshold must stop the pipeline before the first frame.
package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/matchlens/soccer-analytics/pkg/match"
	"github.com/spf13/viper"
)

// TeamConfig describes one configured side.
type TeamConfig struct {
	Name         string `mapstructure:"name"`
	Abbreviation string `mapstructure:"abbreviation"`
	// Color is the BGR overlay color for this team's boxes and scoreboard.
	Color []int `mapstructure:"color"`
	// LowerHSV/UpperHSV bound the jersey color range for the HSV classifier.
	// Leave empty to fall back to the grayscale dark/light split.
	LowerHSV []int `mapstructure:"lower_hsv"`
	UpperHSV []int `mapstructure:"upper_hsv"`
}

// RefereeConfig optionally describes the referee jersey range so referees are
// excluded from possession instead of polluting a team.
type RefereeConfig struct {
	LowerHSV []int `mapstructure:"lower_hsv"`
	UpperHSV []int `mapstructure:"upper_hsv"`
}

// MatchConfig is the "match" section of config.yaml.
type MatchConfig struct {
	// FPS overrides the video's reported frame rate, 0 keeps the video's.
	FPS int `mapstructure:"fps"`
	// BallDistanceThreshold is the control proximity threshold in pixels.
	BallDistanceThreshold float64 `mapstructure:"ball_distance_threshold"`
	// PossessionFrames is the dwell window before a possession flip.
	PossessionFrames int `mapstructure:"possession_frames"`
	// GapLimit caps consecutive ball-less frames before possession is lost.
	GapLimit int `mapstructure:"gap_limit"`
	// InitialPossession optionally names the team kicking off.
	InitialPossession string        `mapstructure:"initial_possession"`
	Teams             []TeamConfig  `mapstructure:"teams"`
	Referee           RefereeConfig `mapstructure:"referee"`
}

// LoadMatch reads the match section from the already initialized global viper.
func LoadMatch() (*MatchConfig, error) {
	cfg := &MatchConfig{}
	setDefaults()
	if err := viper.UnmarshalKey("match", cfg); err != nil {
		return nil, fmt.Errorf("config: could not unmarshal match section: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("match.ball_distance_threshold", 60.0)
	viper.SetDefault("match.possession_frames", 10)
	viper.SetDefault("match.gap_limit", 0)
}

// Validate checks every value the per-frame computation depends on.
func (c *MatchConfig) Validate() error {
	if c.BallDistanceThreshold <= 0 {
		return fmt.Errorf("config: match.ball_distance_threshold must be positive, got %v", c.BallDistanceThreshold)
	}
	if c.PossessionFrames < 1 {
		return fmt.Errorf("config: match.possession_frames must be at least 1, got %d", c.PossessionFrames)
	}
	if c.GapLimit < 0 {
		return fmt.Errorf("config: match.gap_limit must not be negative, got %d", c.GapLimit)
	}
	if c.FPS < 0 {
		return fmt.Errorf("config: match.fps must not be negative, got %d", c.FPS)
	}
	if len(c.Teams) < 2 {
		return fmt.Errorf("config: match.teams needs at least 2 entries, got %d", len(c.Teams))
	}

	names := make(map[string]bool, len(c.Teams))
	for _, team := range c.Teams {
		if team.Name == "" {
			return fmt.Errorf("config: team with empty name")
		}
		if names[team.Name] {
			return fmt.Errorf("config: duplicate team '%s'", team.Name)
		}
		names[team.Name] = true
		if len(team.Abbreviation) != 3 || team.Abbreviation != strings.ToUpper(team.Abbreviation) {
			return fmt.Errorf("config: team '%s' abbreviation must be 3 uppercase letters, got '%s'", team.Name, team.Abbreviation)
		}
		if len(team.Color) != 3 {
			return fmt.Errorf("config: team '%s' color must be a BGR triplet", team.Name)
		}
		if err := validateHSVPair(team.LowerHSV, team.UpperHSV); err != nil {
			return fmt.Errorf("config: team '%s': %w", team.Name, err)
		}
	}

	if err := validateHSVPair(c.Referee.LowerHSV, c.Referee.UpperHSV); err != nil {
		return fmt.Errorf("config: referee: %w", err)
	}

	if c.InitialPossession != "" && !names[c.InitialPossession] {
		return fmt.Errorf("config: match.initial_possession '%s' is not a configured team", c.InitialPossession)
	}

	return nil
}

// validateHSVPair accepts either no range at all or two full HSV triplets.
func validateHSVPair(lower, upper []int) error {
	if len(lower) == 0 && len(upper) == 0 {
		return nil
	}
	if len(lower) != 3 || len(upper) != 3 {
		return fmt.Errorf("lower_hsv and upper_hsv must both be HSV triplets")
	}
	for i := 0; i < 3; i++ {
		if lower[i] > upper[i] {
			return fmt.Errorf("lower_hsv[%d]=%d exceeds upper_hsv[%d]=%d", i, lower[i], i, upper[i])
		}
	}
	return nil
}

// Labels returns the team labels in configured order.
func (c *MatchConfig) Labels() []match.TeamLabel {
	labels := make([]match.TeamLabel, 0, len(c.Teams))
	for _, team := range c.Teams {
		labels = append(labels, match.TeamLabel(team.Name))
	}
	return labels
}

// HasHSVRanges reports whether every team carries a jersey color range, which
// enables the HSV classifier.
func (c *MatchConfig) HasHSVRanges() bool {
	for _, team := range c.Teams {
		if len(team.LowerHSV) != 3 {
			return false
		}
	}
	return true
}

// ColorFor returns the overlay color of the named team.
func (c *MatchConfig) ColorFor(label match.TeamLabel) color.RGBA {
	for _, team := range c.Teams {
		if team.Name == string(label) {
			// Config stores BGR the way OpenCV does.
			return color.RGBA{R: uint8(team.Color[2]), G: uint8(team.Color[1]), B: uint8(team.Color[0]), A: 0}
		}
	}
	return color.RGBA{R: 0, G: 255, B: 0, A: 0}
}

// AbbreviationFor returns the scoreboard abbreviation of the named team.
func (c *MatchConfig) AbbreviationFor(label match.TeamLabel) string {
	for _, team := range c.Teams {
		if team.Name == string(label) {
			return team.Abbreviation
		}
	}
	return "---"
}

// MatchSettings converts the configuration into the core's Config.
func (c *MatchConfig) MatchSettings(fps int) match.Config {
	if c.FPS > 0 {
		fps = c.FPS
	}
	return match.Config{
		BallDistanceThreshold: c.BallDistanceThreshold,
		PossessionFrames:      c.PossessionFrames,
		GapLimit:              c.GapLimit,
		FPS:                   fps,
		Teams:                 c.Labels(),
		InitialPossession:     match.TeamLabel(c.InitialPossession),
	}
}
