// ABOUTME: Tests for leaderboard CLI commands
// ABOUTME: Runs commands against a temp database and checks the rows
package cli

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/prismfoil/intake/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func TestSubmitScoreCommand(t *testing.T) {
	database := setupTestDB(t)

	err := SubmitScoreCommand(database, []string{"--username", "dana", "--score", "420"})
	if err != nil {
		t.Fatalf("SubmitScoreCommand failed: %v", err)
	}

	best, err := db.UserBest(database, "dana")
	if err != nil {
		t.Fatalf("UserBest: %v", err)
	}
	if best == nil || best.Score != 420 {
		t.Errorf("Expected recorded score 420, got %+v", best)
	}
}

func TestSubmitScoreCommandValidation(t *testing.T) {
	database := setupTestDB(t)

	if err := SubmitScoreCommand(database, []string{"--score", "10"}); err == nil {
		t.Error("Expected error for missing username")
	}
	if err := SubmitScoreCommand(database, []string{"--username", "dana"}); err == nil {
		t.Error("Expected error for missing score")
	}
}

func TestTopScoresCommandEmpty(t *testing.T) {
	database := setupTestDB(t)

	if err := TopScoresCommand(database, nil); err != nil {
		t.Fatalf("TopScoresCommand on empty table failed: %v", err)
	}
}

func TestUserBestCommandUnknownPlayer(t *testing.T) {
	database := setupTestDB(t)

	if err := UserBestCommand(database, []string{"--username", "ghost"}); err != nil {
		t.Fatalf("UserBestCommand for unknown player failed: %v", err)
	}
}
