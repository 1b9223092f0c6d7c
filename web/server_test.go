// ABOUTME: Tests for the dashboard web server
// ABOUTME: Renders handlers against a temp database without binding a port
package web

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prismfoil/intake/db"
)

func setupServer(t *testing.T) *Server {
	t.Helper()

	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	server, err := NewServer(database)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestDashboardRenders(t *testing.T) {
	server := setupServer(t)

	if _, err := db.SubmitScore(server.db, "dana", 420); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}
	if _, err := db.RecordSubmission(server.db, "dana@example.com", "new"); err != nil {
		t.Fatalf("RecordSubmission: %v", err)
	}

	rec := httptest.NewRecorder()
	server.handleDashboard(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "dana") {
		t.Error("Expected the top scorer on the dashboard")
	}
	if !strings.Contains(body, "High score") {
		t.Error("Expected the high score stat block")
	}
}

func TestLeaderboardPageRenders(t *testing.T) {
	server := setupServer(t)

	for i, user := range []string{"dana", "mo", "pixel"} {
		if _, err := db.SubmitScore(server.db, user, 100*(i+1)); err != nil {
			t.Fatalf("SubmitScore: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	server.handleLeaderboard(rec, httptest.NewRequest("GET", "/leaderboard", nil))

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "pixel") {
		t.Error("Expected every player on the leaderboard page")
	}
}

func TestSubmissionsPageRenders(t *testing.T) {
	server := setupServer(t)

	if _, err := db.RecordSubmission(server.db, "mo@example.com", "reservation"); err != nil {
		t.Fatalf("RecordSubmission: %v", err)
	}

	rec := httptest.NewRecorder()
	server.handleSubmissions(rec, httptest.NewRequest("GET", "/submissions", nil))

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mo@example.com") {
		t.Error("Expected the submission row to render")
	}
}
