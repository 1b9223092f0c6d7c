// ABOUTME: Entry point for the collector intake toolkit
// ABOUTME: Routes to the wizard, leaderboard, web dashboard, or MCP server
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/prismfoil/intake/cli"
	"github.com/prismfoil/intake/db"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/intake/intake.db)")
	storePath := flag.String("store-path", "", "Shared store path (default: ~/.local/share/intake/shared)")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("intake version %s\n", version)
		os.Exit(0)
	}

	// KLAVIYO_API_KEY and KLAVIYO_LIST_ID may come from a local .env
	_ = godotenv.Load()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	finalDBPath := getDatabasePath(*dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	switch command {
	case "wizard":
		if err := cli.WizardCommand(database, getStorePath(*storePath), commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "leaderboard":
		if len(commandArgs) == 0 {
			fmt.Println("Error: leaderboard requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		sub := commandArgs[0]
		subArgs := commandArgs[1:]

		switch sub {
		case "submit":
			if err := cli.SubmitScoreCommand(database, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "top":
			if err := cli.TopScoresCommand(database, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "best":
			if err := cli.UserBestCommand(database, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "submissions":
			if err := cli.ListSubmissionsCommand(database, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown leaderboard command: %s\n\n", sub)
			printUsage()
			os.Exit(1)
		}

	case "web":
		if err := cli.WebCommand(database, commandArgs); err != nil {
			log.Fatalf("Web server failed: %v", err)
		}

	case "mcp":
		if err := cli.MCPCommand(database, getStorePath(*storePath)); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "intake", "intake.db")
}

func getStorePath(storePath string) string {
	if storePath != "" {
		return storePath
	}
	return filepath.Join(xdg.DataHome, "intake", "shared")
}

func printUsage() {
	fmt.Printf(`intake v%s - Collector intake toolkit

USAGE:
  intake [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/intake/intake.db)
  --store-path <path>    Shared store path (default: ~/.local/share/intake/shared)

COMMANDS:
  wizard                 Run an intake wizard
    --variant <name>       Flow to run: new, og, or reservation (default: new)

  leaderboard            Arcade leaderboard commands
    intake leaderboard submit --username <name> --score <n>
    intake leaderboard top [--limit <n>]
    intake leaderboard best --username <name>
    intake leaderboard submissions [--limit <n>]

  web                    Start the read-only dashboard
    --port <n>             Port to listen on (default: 8080)

  mcp                    Start the MCP server on stdio

ENVIRONMENT:
  KLAVIYO_API_KEY        CRM API key (omit to run the wizard offline)
  KLAVIYO_LIST_ID        Mailing list for reservation subscriptions
`, version)
}
