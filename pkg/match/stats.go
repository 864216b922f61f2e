package match

import (
	"fmt"
	"math"
)

// TeamSnapshot is the per-team slice of a statistics snapshot.
type TeamSnapshot struct {
	Label            TeamLabel `json:"team"`
	PossessionFrames int       `json:"possession_frames"`
	PossessionRatio  float64   `json:"possession_ratio"`
	PossessionClock  string    `json:"possession_clock"`
	Passes           int       `json:"passes"`
	Turnovers        int       `json:"turnovers"`
}

// Snapshot is an immutable per-frame export of the running statistics,
// consumable by the overlay renderer and the web API. Teams keep the order
// they were configured in.
type Snapshot struct {
	Frames int            `json:"frames"`
	Teams  []TeamSnapshot `json:"teams"`
}

// Team returns the snapshot entry for the given label.
func (s Snapshot) Team(label TeamLabel) (TeamSnapshot, bool) {
	for _, ts := range s.Teams {
		if ts.Label == label {
			return ts, true
		}
	}
	return TeamSnapshot{}, false
}

type teamCounters struct {
	possession int
	passes     int
	turnovers  int
}

// Aggregator keeps the monotonically non-decreasing per-team counters. It is
// pure bookkeeping: the possession tracker and pass detector decide what to
// count, the aggregator only counts it.
type Aggregator struct {
	fps    int
	frames int
	order  []TeamLabel
	teams  map[TeamLabel]*teamCounters
}

// NewAggregator creates an aggregator for the given teams. fps is used only
// to format possession time as a clock string in snapshots.
func NewAggregator(fps int, teams ...TeamLabel) *Aggregator {
	a := &Aggregator{
		fps:   fps,
		order: append([]TeamLabel(nil), teams...),
		teams: make(map[TeamLabel]*teamCounters, len(teams)),
	}
	for _, t := range teams {
		a.teams[t] = &teamCounters{}
	}
	return a
}

// RecordFrame counts one processed frame, credited to team. TeamNone frames
// (before the first confirmed possession) advance the frame count only.
func (a *Aggregator) RecordFrame(team TeamLabel) {
	a.frames++
	if c, ok := a.teams[team]; ok {
		c.possession++
	}
}

// RecordPass credits a completed pass to team.
func (a *Aggregator) RecordPass(team TeamLabel) {
	if c, ok := a.teams[team]; ok {
		c.passes++
	}
}

// RecordTurnover counts a lost possession against team.
func (a *Aggregator) RecordTurnover(team TeamLabel) {
	if c, ok := a.teams[team]; ok {
		c.turnovers++
	}
}

// Snapshot exports the current totals. The returned value shares no state
// with the aggregator and replaying it through any consumer changes nothing.
func (a *Aggregator) Snapshot() Snapshot {
	snap := Snapshot{
		Frames: a.frames,
		Teams:  make([]TeamSnapshot, 0, len(a.order)),
	}
	for _, label := range a.order {
		c := a.teams[label]
		snap.Teams = append(snap.Teams, TeamSnapshot{
			Label:            label,
			PossessionFrames: c.possession,
			PossessionRatio:  possessionRatio(c.possession, a.frames),
			PossessionClock:  possessionClock(c.possession, a.fps),
			Passes:           c.passes,
			Turnovers:        c.turnovers,
		})
	}
	return snap
}

func possessionRatio(possession, frames int) float64 {
	if frames == 0 {
		return 0
	}
	return math.Round(float64(possession)/float64(frames)*100) / 100
}

// possessionClock formats accrued possession frames as mm:ss.
func possessionClock(possession, fps int) string {
	if fps <= 0 {
		return "00:00"
	}
	seconds := int(math.Round(float64(possession) / float64(fps)))
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
