// Package store persists final per-team match statistics per analyzed video.
package store

import (
	"database/sql"
	"fmt"

	"github.com/matchlens/soccer-analytics/pkg/match"
	_ "modernc.org/sqlite"
)

// DB wraps the sqlite handle holding analysis results.
type DB struct {
	*sql.DB
}

// Open opens (and if needed creates) the results database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: could not open '%s': %w", path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS match_stats (
			job_id TEXT NOT NULL,
			video TEXT NOT NULL,
			team TEXT NOT NULL,
			possession_frames INTEGER NOT NULL,
			possession_ratio DOUBLE NOT NULL,
			possession_clock TEXT NOT NULL,
			passes INTEGER NOT NULL,
			turnovers INTEGER NOT NULL,
			total_frames INTEGER NOT NULL,
			finished_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_match_stats_video ON match_stats(video);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: could not create schema: %w", err)
	}

	return &DB{db}, nil
}

// TeamResult is one stored per-team row of an analysis run.
type TeamResult struct {
	JobID            string  `json:"job_id"`
	Video            string  `json:"video"`
	Team             string  `json:"team"`
	PossessionFrames int     `json:"possession_frames"`
	PossessionRatio  float64 `json:"possession_ratio"`
	PossessionClock  string  `json:"possession_clock"`
	Passes           int     `json:"passes"`
	Turnovers        int     `json:"turnovers"`
	TotalFrames      int     `json:"total_frames"`
}

// SaveResult writes the final snapshot of an analysis run, one row per team.
func (db *DB) SaveResult(jobID, video string, snap match.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("store: could not begin transaction: %w", err)
	}

	for _, team := range snap.Teams {
		_, err := tx.Exec(
			`INSERT INTO match_stats (job_id, video, team, possession_frames, possession_ratio, possession_clock, passes, turnovers, total_frames)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			jobID, video, string(team.Label), team.PossessionFrames, team.PossessionRatio,
			team.PossessionClock, team.Passes, team.Turnovers, snap.Frames,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("store: could not insert result for '%s': %w", team.Label, err)
		}
	}

	return tx.Commit()
}

// Results returns the stored rows for a video, newest run first.
func (db *DB) Results(video string) ([]TeamResult, error) {
	rows, err := db.Query(
		`SELECT job_id, video, team, possession_frames, possession_ratio, possession_clock, passes, turnovers, total_frames
		 FROM match_stats WHERE video = ? ORDER BY finished_at DESC, team`,
		video,
	)
	if err != nil {
		return nil, fmt.Errorf("store: could not query results for '%s': %w", video, err)
	}
	defer rows.Close()

	var results []TeamResult
	for rows.Next() {
		var r TeamResult
		if err := rows.Scan(&r.JobID, &r.Video, &r.Team, &r.PossessionFrames, &r.PossessionRatio,
			&r.PossessionClock, &r.Passes, &r.Turnovers, &r.TotalFrames); err != nil {
			return nil, fmt.Errorf("store: could not scan result row: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// AnalyzedVideos lists the distinct video names with stored results.
func (db *DB) AnalyzedVideos() ([]string, error) {
	rows, err := db.Query(`SELECT DISTINCT video FROM match_stats ORDER BY video`)
	if err != nil {
		return nil, fmt.Errorf("store: could not list analyzed videos: %w", err)
	}
	defer rows.Close()

	var videos []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("store: could not scan video name: %w", err)
		}
		videos = append(videos, v)
	}

	return videos, rows.Err()
}
