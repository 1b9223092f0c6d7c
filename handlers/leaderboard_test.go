// ABOUTME: Tests for leaderboard MCP tool handlers
// ABOUTME: Validates tool input/output and error handling
package handlers

import (
	"context"
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

func TestSubmitScoreHandler(t *testing.T) {
	handler := NewLeaderboardHandlers(setupTestDB(t))

	_, out, err := handler.SubmitScore(context.Background(), nil, SubmitScoreInput{
		Username: "dana",
		Score:    420,
	})
	if err != nil {
		t.Fatalf("SubmitScore failed: %v", err)
	}
	if out.Username != "dana" || out.Score != 420 {
		t.Errorf("Output = %s/%d, want dana/420", out.Username, out.Score)
	}
	if out.ID == "" {
		t.Error("ID was not set")
	}
}

func TestSubmitScoreValidation(t *testing.T) {
	handler := NewLeaderboardHandlers(setupTestDB(t))

	if _, _, err := handler.SubmitScore(context.Background(), nil, SubmitScoreInput{Score: 10}); err == nil {
		t.Error("Expected error for missing username")
	}
	if _, _, err := handler.SubmitScore(context.Background(), nil, SubmitScoreInput{Username: "dana", Score: -1}); err == nil {
		t.Error("Expected error for negative score")
	}
}

func TestGetLeaderboardHandler(t *testing.T) {
	database := setupTestDB(t)
	handler := NewLeaderboardHandlers(database)

	for user, score := range map[string]int{"dana": 450, "mo": 300} {
		if _, err := db.SubmitScore(database, user, score); err != nil {
			t.Fatalf("SubmitScore: %v", err)
		}
	}

	_, out, err := handler.GetLeaderboard(context.Background(), nil, GetLeaderboardInput{})
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(out.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(out.Entries))
	}
	if out.Entries[0].Username != "dana" {
		t.Errorf("Expected dana first, got %s", out.Entries[0].Username)
	}
}

func TestGetUserBestHandler(t *testing.T) {
	database := setupTestDB(t)
	handler := NewLeaderboardHandlers(database)

	if _, err := db.SubmitScore(database, "dana", 200); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}

	_, out, err := handler.GetUserBest(context.Background(), nil, GetUserBestInput{Username: "dana"})
	if err != nil {
		t.Fatalf("GetUserBest failed: %v", err)
	}
	if !out.Found || out.Best == nil || out.Best.Score != 200 {
		t.Errorf("Expected found with score 200, got %+v", out)
	}

	_, none, err := handler.GetUserBest(context.Background(), nil, GetUserBestInput{Username: "ghost"})
	if err != nil {
		t.Fatalf("GetUserBest(ghost) failed: %v", err)
	}
	if none.Found || none.Best != nil {
		t.Errorf("Expected not found for unknown player, got %+v", none)
	}
}

func TestListSubmissionsHandler(t *testing.T) {
	database := setupTestDB(t)
	handler := NewLeaderboardHandlers(database)

	if _, err := db.RecordSubmission(database, "dana@example.com", "new"); err != nil {
		t.Fatalf("RecordSubmission: %v", err)
	}

	_, out, err := handler.ListSubmissions(context.Background(), nil, ListSubmissionsInput{})
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	if len(out.Submissions) != 1 || out.Submissions[0].Email != "dana@example.com" {
		t.Errorf("Unexpected submissions output: %+v", out)
	}
}
