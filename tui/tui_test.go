// ABOUTME: Tests for the wizard TUI model
// ABOUTME: Drives Update with key and result messages, no terminal needed
package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prismfoil/intake/models"
	"github.com/prismfoil/intake/wizard"
)

type stubGateway struct {
	upserts    int
	subscribes int
	err        error
}

func (g *stubGateway) UpsertProfile(ctx context.Context, form models.FormData) error {
	g.upserts++
	return g.err
}

func (g *stubGateway) SubscribeProfile(ctx context.Context, form models.FormData) error {
	g.subscribes++
	return g.err
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func press(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestRulesPhaseToggling(t *testing.T) {
	m := NewModel(wizard.NewEngine(wizard.NewCollector()), nil, nil, nil)

	if m.phaseID != "rules" {
		t.Fatalf("Expected rules phase, got %s", m.phaseID)
	}

	// Check every rule, moving the cursor as we go
	for i := 0; i < len(models.CollectionRules); i++ {
		m = press(m, key(tea.KeySpace))
		if i < len(models.CollectionRules)-1 {
			m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
		}
	}

	if !m.engine.Form().AllRulesAccepted() {
		t.Error("Expected all rules accepted after toggling each one")
	}
}

func TestEnterBlockedOnInvalidPhase(t *testing.T) {
	m := NewModel(wizard.NewEngine(wizard.NewCollector()), nil, nil, nil)

	m = press(m, key(tea.KeyEnter))

	if m.engine.Current() != 1 {
		t.Errorf("Expected to stay on phase 1, got %d", m.engine.Current())
	}
	if m.statusErr == "" {
		t.Error("Expected an inline error after blocked enter")
	}
}

func TestEnterAdvancesValidPhase(t *testing.T) {
	m := NewModel(wizard.NewEngine(wizard.NewCollector()), nil, nil, nil)

	rules := make([]bool, len(models.CollectionRules))
	for i := range rules {
		rules[i] = true
	}
	m.engine.Update(models.Partial{RulesAccepted: rules})

	m = press(m, key(tea.KeyEnter))

	if m.engine.Current() != 2 {
		t.Errorf("Expected phase 2, got %d", m.engine.Current())
	}
	if m.phaseID != "identity" {
		t.Errorf("Expected identity inputs mounted, got %s", m.phaseID)
	}
	if len(m.inputs) == 0 {
		t.Error("Expected textinputs on the identity phase")
	}
}

func TestSubmitLifecycle(t *testing.T) {
	gw := &stubGateway{}
	engine := wizard.NewEngine(wizard.Reservation())
	m := NewModel(engine, gw, nil, nil)

	first, last := "Dana", "Okafor"
	email := "dana@example.com"
	reason, interests := "childhood nostalgia", "vintage sports"
	engine.Update(models.Partial{
		FirstName: &first, LastName: &last, Email: &email,
		CollectionReason: &reason, Interests: &interests,
	})
	m.mountPhase()

	m = press(m, key(tea.KeyEnter))
	if !engine.OnFinalPhase() {
		t.Fatalf("Expected final phase, got %d", engine.Current())
	}

	// Enter on the final phase starts the submission
	next, cmd := m.Update(key(tea.KeyEnter))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Expected a submit command")
	}
	if !engine.IsSubmitting() {
		t.Error("Expected the busy flag while the command runs")
	}

	m = press(m, cmd())

	if !engine.IsComplete() {
		t.Error("Expected terminal state after a successful submission")
	}
	if gw.upserts != 1 || gw.subscribes != 1 {
		t.Errorf("Gateway calls = %d upserts, %d subscribes; want 1 and 1", gw.upserts, gw.subscribes)
	}
	if !strings.Contains(m.View(), "All Set") {
		t.Error("Expected the success view after completion")
	}
}

func TestSubmitFailureStaysRetryable(t *testing.T) {
	gw := &stubGateway{err: context.DeadlineExceeded}
	engine := wizard.NewEngine(wizard.Reservation())
	m := NewModel(engine, gw, nil, nil)

	first, last := "Dana", "Okafor"
	email := "dana@example.com"
	reason, interests := "nostalgia", "sports"
	engine.Update(models.Partial{
		FirstName: &first, LastName: &last, Email: &email,
		CollectionReason: &reason, Interests: &interests,
	})
	m.mountPhase()

	m = press(m, key(tea.KeyEnter))
	next, cmd := m.Update(key(tea.KeyEnter))
	m = next.(Model)
	m = press(m, cmd())

	if engine.IsComplete() {
		t.Error("Failed submission must not complete the wizard")
	}
	if m.statusErr == "" {
		t.Error("Expected an error message after a failed submission")
	}
	if !engine.OnFinalPhase() {
		t.Error("Expected to stay on the final phase for retry")
	}
}

type stubLookup struct {
	found bool
	err   error
}

func (l *stubLookup) ProfileExists(ctx context.Context, email string) (bool, error) {
	return l.found, l.err
}

func TestEmailGuardRunsBeforeNext(t *testing.T) {
	engine := wizard.NewEngine(wizard.OGCollector())
	m := NewModel(engine, nil, &stubLookup{found: true}, nil)

	first, last := "Dana", "Okafor"
	discord := "dana#1234"
	email := "dana@example.com"
	engine.Update(models.Partial{
		FirstName: &first, LastName: &last,
		DiscordUsername: &discord, Email: &email,
	})
	m.mountPhase()

	next, cmd := m.Update(key(tea.KeyEnter))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Expected a lookup command on enter from the guarded phase")
	}
	if !engine.IsValidatingEmail() {
		t.Error("Expected the lookup busy flag while the command runs")
	}

	m = press(m, cmd())

	if engine.Current() != 2 {
		t.Errorf("Expected a found profile to advance, got phase %d", engine.Current())
	}
	if m.phaseID != "pieces" {
		t.Errorf("Expected pieces inputs mounted, got %s", m.phaseID)
	}
}

func TestRedirectAcceptSwitchesToReservation(t *testing.T) {
	engine := wizard.NewEngine(wizard.OGCollector())
	m := NewModel(engine, nil, nil, nil)

	email := "dana@example.com"
	engine.Update(models.Partial{Email: &email})
	engine.FinishEmailCheck(false, nil)
	if !engine.RedirectPending() {
		t.Fatal("Expected the redirect prompt")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	if m.engine.Variant().Name != wizard.VariantReservation {
		t.Errorf("Expected reservation wizard after accepting, got %s", m.engine.Variant().Name)
	}
	if m.engine.Form().Email != email {
		t.Error("Expected the email to carry into the reservation wizard")
	}
}
