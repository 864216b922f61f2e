package video

import (
	"testing"

	"github.com/matchlens/soccer-analytics/pkg/match"
	"github.com/stretchr/testify/assert"
)

func TestPickTeamByRatio(t *testing.T) {
	labels := []match.TeamLabel{"Chelsea", "Man City"}

	tests := []struct {
		name         string
		ratios       []float64
		refereeRatio float64
		want         match.TeamLabel
	}{
		{"clear home jersey", []float64{0.6, 0.05}, 0, "Chelsea"},
		{"clear away jersey", []float64{0.02, 0.4}, 0, "Man City"},
		{"nothing above floor", []float64{0.03, 0.05}, 0, match.TeamNone},
		{"referee beats both", []float64{0.2, 0.1}, 0.5, match.TeamNone},
		{"team beats referee", []float64{0.6, 0.1}, 0.3, "Chelsea"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickTeamByRatio(labels, tt.ratios, tt.refereeRatio))
		})
	}
}

func TestTorsoRect(t *testing.T) {
	bbox := &playerBoundingBox{ID: 1, Xmin: 90, Ymin: 0, Xmax: 120, Ymax: 90}

	rect := torsoRect(bbox, 1920, 1080)
	assert.Equal(t, 100, rect.Min.X)
	assert.Equal(t, 30, rect.Min.Y)
	assert.Equal(t, 110, rect.Max.X)
	assert.Equal(t, 60, rect.Max.Y)

	// A box hanging off the frame edge gets clamped instead of panicking
	// the Region call downstream.
	offFrame := &playerBoundingBox{ID: 2, Xmin: -30, Ymin: -30, Xmax: 30, Ymax: 60}
	rect = torsoRect(offFrame, 1920, 1080)
	assert.True(t, rect.Min.X >= 0 && rect.Min.Y >= 0)
}

func TestFixBbox(t *testing.T) {
	bbox := &playerBoundingBox{ID: 1, Xmin: -10, Ymin: 20, Xmax: 2000, Ymax: 1200}
	fixBbox(bbox, 1080, 1920)

	assert.Equal(t, 0, bbox.Xmin)
	assert.Equal(t, 20, bbox.Ymin)
	assert.Equal(t, 1920, bbox.Xmax)
	assert.Equal(t, 1080, bbox.Ymax)
}
