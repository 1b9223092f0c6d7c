// ABOUTME: Leaderboard database operations for the arcade game
// ABOUTME: Score submission, top-N retrieval, and per-user best
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/prismfoil/intake/models"
)

// DefaultTopScores is the leaderboard page size.
const DefaultTopScores = 5

// SubmitScore records one game result. Every run is kept; ranking is a
// read-time concern.
func SubmitScore(db *sql.DB, username string, score int) (*models.LeaderboardEntry, error) {
	entry := &models.LeaderboardEntry{
		ID:        uuid.New(),
		Username:  username,
		Score:     score,
		CreatedAt: time.Now(),
	}

	_, err := db.Exec(`
		INSERT INTO leaderboard (id, username, score, created_at)
		VALUES (?, ?, ?, ?)
	`, entry.ID.String(), entry.Username, entry.Score, entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// TopScores returns the highest scores, best first.
func TopScores(db *sql.DB, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultTopScores
	}

	rows, err := db.Query(`
		SELECT id, username, score, created_at
		FROM leaderboard
		ORDER BY score DESC, created_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// UserBest returns the user's highest score, or nil when they have never
// played.
func UserBest(db *sql.DB, username string) (*models.LeaderboardEntry, error) {
	entry := &models.LeaderboardEntry{}
	var id string

	err := db.QueryRow(`
		SELECT id, username, score, created_at
		FROM leaderboard
		WHERE username = ?
		ORDER BY score DESC, created_at ASC
		LIMIT 1
	`, username).Scan(&id, &entry.Username, &entry.Score, &entry.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err == nil {
		entry.ID = parsed
	}
	return entry, nil
}

func scanEntries(rows *sql.Rows) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		var id string
		if err := rows.Scan(&id, &entry.Username, &entry.Score, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if parsed, err := uuid.Parse(id); err == nil {
			entry.ID = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
