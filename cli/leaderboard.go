// ABOUTME: Leaderboard CLI commands
// ABOUTME: Human-friendly commands for scores and the submission log
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/prismfoil/intake/db"
)

// SubmitScoreCommand records a game run.
func SubmitScoreCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("submit-score", flag.ExitOnError)
	username := fs.String("username", "", "Player name (required)")
	score := fs.Int("score", -1, "Score for this run (required)")
	_ = fs.Parse(args)

	if *username == "" {
		return fmt.Errorf("--username is required")
	}
	if *score < 0 {
		return fmt.Errorf("--score is required and must be non-negative")
	}

	entry, err := db.SubmitScore(database, *username, *score)
	if err != nil {
		return fmt.Errorf("failed to submit score: %w", err)
	}

	fmt.Printf("Recorded %d for %s (%s)\n", entry.Score, entry.Username, entry.ID)
	return nil
}

// TopScoresCommand prints the leaderboard.
func TopScoresCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("top-scores", flag.ExitOnError)
	limit := fs.Int("limit", db.DefaultTopScores, "Max entries")
	_ = fs.Parse(args)

	entries, err := db.TopScores(database, *limit)
	if err != nil {
		return fmt.Errorf("failed to query leaderboard: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No scores yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPLAYER\tSCORE\tWHEN")
	for i, entry := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, entry.Username, entry.Score,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// UserBestCommand prints one player's highest score.
func UserBestCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("user-best", flag.ExitOnError)
	username := fs.String("username", "", "Player name (required)")
	_ = fs.Parse(args)

	if *username == "" {
		return fmt.Errorf("--username is required")
	}

	best, err := db.UserBest(database, *username)
	if err != nil {
		return fmt.Errorf("failed to query user best: %w", err)
	}
	if best == nil {
		fmt.Printf("%s has not played yet.\n", *username)
		return nil
	}

	fmt.Printf("%s's best: %d (%s)\n", best.Username, best.Score,
		best.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

// ListSubmissionsCommand prints the intake audit log.
func ListSubmissionsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-submissions", flag.ExitOnError)
	limit := fs.Int("limit", 50, "Max results")
	_ = fs.Parse(args)

	subs, err := db.ListSubmissions(database, *limit)
	if err != nil {
		return fmt.Errorf("failed to query submissions: %w", err)
	}

	if len(subs) == 0 {
		fmt.Println("No submissions yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tFLOW\tWHEN")
	for _, sub := range subs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", sub.Email, sub.Variant,
			sub.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
