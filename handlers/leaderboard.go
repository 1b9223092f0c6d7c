// ABOUTME: Leaderboard MCP tool handlers
// ABOUTME: Implements submit_score, get_leaderboard, get_user_best, and list_submissions tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/prismfoil/intake/db"
	"github.com/prismfoil/intake/models"
)

type LeaderboardHandlers struct {
	db *sql.DB
}

func NewLeaderboardHandlers(database *sql.DB) *LeaderboardHandlers {
	return &LeaderboardHandlers{db: database}
}

type SubmitScoreInput struct {
	Username string `json:"username" jsonschema:"Player name (required)"`
	Score    int    `json:"score" jsonschema:"Score for this game run (required, non-negative)"`
}

type LeaderboardEntryOutput struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Score     int    `json:"score"`
	CreatedAt string `json:"created_at"`
}

func entryOutput(entry models.LeaderboardEntry) LeaderboardEntryOutput {
	return LeaderboardEntryOutput{
		ID:        entry.ID.String(),
		Username:  entry.Username,
		Score:     entry.Score,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}

func (h *LeaderboardHandlers) SubmitScore(_ context.Context, request *mcp.CallToolRequest, input SubmitScoreInput) (*mcp.CallToolResult, LeaderboardEntryOutput, error) {
	if input.Username == "" {
		return nil, LeaderboardEntryOutput{}, fmt.Errorf("username is required")
	}
	if input.Score < 0 {
		return nil, LeaderboardEntryOutput{}, fmt.Errorf("score must be non-negative")
	}

	entry, err := db.SubmitScore(h.db, input.Username, input.Score)
	if err != nil {
		return nil, LeaderboardEntryOutput{}, fmt.Errorf("failed to submit score: %w", err)
	}

	return nil, entryOutput(*entry), nil
}

type GetLeaderboardInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum entries to return (default 5)"`
}

type LeaderboardOutput struct {
	Entries []LeaderboardEntryOutput `json:"entries"`
}

func (h *LeaderboardHandlers) GetLeaderboard(_ context.Context, request *mcp.CallToolRequest, input GetLeaderboardInput) (*mcp.CallToolResult, LeaderboardOutput, error) {
	entries, err := db.TopScores(h.db, input.Limit)
	if err != nil {
		return nil, LeaderboardOutput{}, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	out := LeaderboardOutput{Entries: []LeaderboardEntryOutput{}}
	for _, entry := range entries {
		out.Entries = append(out.Entries, entryOutput(entry))
	}
	return nil, out, nil
}

type GetUserBestInput struct {
	Username string `json:"username" jsonschema:"Player name (required)"`
}

type UserBestOutput struct {
	Found bool                    `json:"found"`
	Best  *LeaderboardEntryOutput `json:"best,omitempty"`
}

func (h *LeaderboardHandlers) GetUserBest(_ context.Context, request *mcp.CallToolRequest, input GetUserBestInput) (*mcp.CallToolResult, UserBestOutput, error) {
	if input.Username == "" {
		return nil, UserBestOutput{}, fmt.Errorf("username is required")
	}

	best, err := db.UserBest(h.db, input.Username)
	if err != nil {
		return nil, UserBestOutput{}, fmt.Errorf("failed to query user best: %w", err)
	}
	if best == nil {
		return nil, UserBestOutput{Found: false}, nil
	}

	out := entryOutput(*best)
	return nil, UserBestOutput{Found: true, Best: &out}, nil
}

type ListSubmissionsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum submissions to return (default 50)"`
}

type SubmissionOutput struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Variant   string `json:"variant"`
	CreatedAt string `json:"created_at"`
}

type SubmissionsOutput struct {
	Submissions []SubmissionOutput `json:"submissions"`
}

func (h *LeaderboardHandlers) ListSubmissions(_ context.Context, request *mcp.CallToolRequest, input ListSubmissionsInput) (*mcp.CallToolResult, SubmissionsOutput, error) {
	subs, err := db.ListSubmissions(h.db, input.Limit)
	if err != nil {
		return nil, SubmissionsOutput{}, fmt.Errorf("failed to query submissions: %w", err)
	}

	out := SubmissionsOutput{Submissions: []SubmissionOutput{}}
	for _, sub := range subs {
		out.Submissions = append(out.Submissions, SubmissionOutput{
			ID:        sub.ID,
			Email:     sub.Email,
			Variant:   sub.Variant,
			CreatedAt: sub.CreatedAt.Format(time.RFC3339),
		})
	}
	return nil, out, nil
}
