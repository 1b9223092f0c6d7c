// ABOUTME: MCP server subcommand
// ABOUTME: Exposes leaderboard, profile, and shared-state tools over stdio
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/prismfoil/intake/handlers"
	"github.com/prismfoil/intake/shared"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(database *sql.DB, storePath string) error {
	log.Println("Starting intake MCP server...")

	store, err := shared.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open shared store: %w", err)
	}
	defer func() { _ = store.Close() }()

	_, lookup := newGateway()

	leaderboardHandlers := handlers.NewLeaderboardHandlers(database)
	profileHandlers := handlers.NewProfileHandlers(lookup)
	sharedHandlers := handlers.NewSharedHandlers(store)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "intake",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "submit_score",
		Description: "Record a game run on the arcade leaderboard",
	}, leaderboardHandlers.SubmitScore)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_leaderboard",
		Description: "Get the top arcade scores, best first",
	}, leaderboardHandlers.GetLeaderboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_user_best",
		Description: "Get one player's highest score",
	}, leaderboardHandlers.GetUserBest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_submissions",
		Description: "List recent intake submissions from the audit log",
	}, leaderboardHandlers.ListSubmissions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup_profile",
		Description: "Check whether a CRM profile exists for an email address",
	}, profileHandlers.LookupProfile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_shared_data",
		Description: "Read the cross-wizard shared handoff data",
	}, sharedHandlers.GetSharedData)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_shared_data",
		Description: "Clear the cross-wizard shared handoff data",
	}, sharedHandlers.ClearSharedData)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
