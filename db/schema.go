// ABOUTME: SQLite schema for the leaderboard and submission log
// ABOUTME: Idempotent creation via CREATE TABLE IF NOT EXISTS
package db

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS leaderboard (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	score INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leaderboard_score ON leaderboard(score DESC);
CREATE INDEX IF NOT EXISTS idx_leaderboard_username ON leaderboard(username);

CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL,
	variant TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_email ON submissions(email);
`

// InitSchema creates all tables needed by the application. Safe to call
// repeatedly.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
