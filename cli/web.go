// ABOUTME: Web dashboard CLI command
// ABOUTME: Serves the read-only leaderboard and submission dashboard
package cli

import (
	"database/sql"
	"flag"

	"github.com/prismfoil/intake/web"
)

// WebCommand starts the dashboard server and blocks.
func WebCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("web", flag.ExitOnError)
	port := fs.Int("port", 8080, "Port to listen on")
	_ = fs.Parse(args)

	server, err := web.NewServer(database)
	if err != nil {
		return err
	}
	return server.Start(*port)
}
