// ABOUTME: Wizard CLI command
// ABOUTME: Runs the full-screen intake wizard and records the audit row
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prismfoil/intake/db"
	"github.com/prismfoil/intake/klaviyo"
	"github.com/prismfoil/intake/models"
	"github.com/prismfoil/intake/shared"
	"github.com/prismfoil/intake/tui"
	"github.com/prismfoil/intake/wizard"
)

// offlineGateway accepts submissions locally when no API key is
// configured. The audit row is still written so dev runs show up on the
// dashboard.
type offlineGateway struct{}

func (offlineGateway) UpsertProfile(ctx context.Context, form models.FormData) error {
	log.Printf("offline mode: profile for %s not sent to CRM", form.Email)
	return nil
}

func (offlineGateway) SubscribeProfile(ctx context.Context, form models.FormData) error {
	return nil
}

// newGateway builds the CRM client from the environment. Without
// KLAVIYO_API_KEY the wizard runs in offline mode.
func newGateway() (wizard.SubmissionGateway, wizard.ProfileLookup) {
	apiKey := os.Getenv("KLAVIYO_API_KEY")
	if apiKey == "" {
		log.Println("KLAVIYO_API_KEY not set, running in offline mode")
		return offlineGateway{}, nil
	}

	var opts []klaviyo.Option
	if listID := os.Getenv("KLAVIYO_LIST_ID"); listID != "" {
		opts = append(opts, klaviyo.WithListID(listID))
	}
	client := klaviyo.NewClient(apiKey, opts...)
	return client, client
}

// WizardCommand runs one intake wizard to completion.
func WizardCommand(database *sql.DB, storePath string, args []string) error {
	fs := flag.NewFlagSet("wizard", flag.ExitOnError)
	variantName := fs.String("variant", wizard.VariantNewCollector, "Intake flow: new, og, or reservation")
	_ = fs.Parse(args)

	variant, ok := wizard.ByName(*variantName)
	if !ok {
		return fmt.Errorf("unknown variant %q (expected new, og, or reservation)", *variantName)
	}

	store, err := shared.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open shared store: %w", err)
	}
	defer func() { _ = store.Close() }()

	engine := wizard.NewEngine(variant)
	if variant.SeedFromShared {
		if seed, ok := store.Get(shared.DefaultKey); ok {
			engine = wizard.NewEngineSeeded(variant, seed)
		}
	}

	gateway, lookup := newGateway()
	model := tui.NewModel(engine, gateway, lookup, store)

	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	finalModel, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	finalEngine := finalModel.Engine()
	if !finalEngine.IsComplete() {
		log.Println("Wizard exited without submitting")
		return nil
	}

	form := finalEngine.Form()
	if _, err := db.RecordSubmission(database, form.Email, finalEngine.Variant().Name); err != nil {
		log.Printf("warning: failed to record submission: %v", err)
	}
	fmt.Printf("Intake complete for %s (%s flow)\n", form.Email, finalEngine.Variant().Name)
	return nil
}
