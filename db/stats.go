// ABOUTME: Aggregate queries backing the web dashboard
// ABOUTME: Counts players, game runs, and intake submissions
package db

import "database/sql"

// DashboardStats summarizes activity for the read-only dashboard.
type DashboardStats struct {
	Players     int
	Runs        int
	Submissions int
	HighScore   int
}

// GenerateDashboardStats computes the dashboard counters in one pass.
func GenerateDashboardStats(db *sql.DB) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := db.QueryRow(`
		SELECT COUNT(DISTINCT username), COUNT(*), COALESCE(MAX(score), 0)
		FROM leaderboard
	`).Scan(&stats.Players, &stats.Runs, &stats.HighScore)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM submissions`).Scan(&stats.Submissions)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
