// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Full-screen wizard walking collectors through an intake flow
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prismfoil/intake/models"
	"github.com/prismfoil/intake/shared"
	"github.com/prismfoil/intake/validate"
	"github.com/prismfoil/intake/wizard"
)

// submitResultMsg resolves an in-flight profile submission.
type submitResultMsg struct {
	err error
}

// lookupResultMsg resolves the phase-one email existence check.
type lookupResultMsg struct {
	found bool
	err   error
}

// Model is the main bubbletea model. One Model drives one wizard run;
// the engine owns all form state and the Model owns only display state.
type Model struct {
	engine  *wizard.Engine
	gateway wizard.SubmissionGateway
	lookup  wizard.ProfileLookup
	store   *shared.Store

	// Phase-local input state, rebuilt on every phase change
	inputs     []inputField
	focusIndex int
	cursor     int
	phaseID    string

	email validate.FieldState
	phone validate.FieldState

	statusErr  string
	redirected bool
	width      int
	height     int
}

// NewModel creates a TUI model for the given wizard engine. The store
// may be nil when shared-state handoff is disabled.
func NewModel(engine *wizard.Engine, gateway wizard.SubmissionGateway, lookup wizard.ProfileLookup, store *shared.Store) Model {
	m := Model{
		engine:  engine,
		gateway: gateway,
		lookup:  lookup,
		store:   store,
		width:   80,
		height:  24,
	}
	m.mountPhase()
	return m
}

// Engine exposes the wizard state after the program exits. The redirect
// flow swaps engines mid-run, so callers must read it from the final
// model rather than keeping their own reference.
func (m Model) Engine() *wizard.Engine { return m.engine }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case lookupResultMsg:
		return m.handleLookupResult(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.engine.IsComplete() {
		return m.renderSuccessView()
	}
	if m.engine.RedirectPending() {
		return m.renderRedirectView()
	}
	return m.renderPhaseView()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.engine.IsComplete() {
		switch msg.String() {
		case "enter", "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.engine.RedirectPending() {
		return m.handleRedirectKeys(msg)
	}

	if m.engine.IsSubmitting() || m.engine.IsValidatingEmail() {
		return m, nil
	}

	return m.handlePhaseKeys(msg)
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.engine.FinishSubmit(msg.err)
	if msg.err != nil {
		m.statusErr = "Submission failed. Press enter to try again."
		return m, nil
	}
	m.statusErr = ""
	if m.engine.Variant().WriteBackShared && m.store != nil {
		m.store.Set(shared.DefaultKey, m.engine.Form())
	}
	return m, nil
}

func (m Model) handleLookupResult(msg lookupResultMsg) (tea.Model, tea.Cmd) {
	before := m.engine.Current()
	m.engine.FinishEmailCheck(msg.found, msg.err)
	if m.engine.Current() != before {
		m.mountPhase()
	}
	return m, nil
}

func (m Model) handleRedirectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		subset := m.engine.AcceptRedirect()
		if m.store != nil {
			m.store.Set(shared.DefaultKey, subset)
		}
		m.engine = wizard.NewEngineSeeded(wizard.Reservation(), subset)
		m.redirected = true
		m.statusErr = ""
		m.mountPhase()
		return m, nil
	case "n", "esc":
		m.engine.DismissRedirect()
		m.statusErr = "No profile found for that email. Fix it or try again."
		return m, nil
	}
	return m, nil
}

// advance runs Next or Submit, routing through the email guard when the
// variant requires it. Called on enter from any phase.
func (m Model) advance() (tea.Model, tea.Cmd) {
	m.commitFocused()

	if m.engine.OnFinalPhase() {
		if !m.engine.CanSubmit() {
			m.statusErr = "Please complete this step first."
			return m, nil
		}
		form, err := m.engine.BeginSubmit()
		if err != nil {
			return m, nil
		}
		m.statusErr = ""
		return m, m.submitCmd(form)
	}

	if m.engine.NeedsEmailGuard() {
		email, err := m.engine.BeginEmailCheck()
		if err != nil {
			m.statusErr = "Please complete this step first."
			return m, nil
		}
		m.statusErr = ""
		return m, m.lookupCmd(email)
	}

	if err := m.engine.Next(); err != nil {
		m.statusErr = "Please complete this step first."
		return m, nil
	}
	m.statusErr = ""
	m.mountPhase()
	return m, nil
}

func (m Model) goBack() (tea.Model, tea.Cmd) {
	m.commitFocused()
	if !m.engine.CanBack() {
		return m, tea.Quit
	}
	if err := m.engine.Back(); err != nil {
		return m, nil
	}
	m.statusErr = ""
	m.mountPhase()
	return m, nil
}

func (m Model) submitCmd(form models.FormData) tea.Cmd {
	gateway := m.gateway
	variant := m.engine.Variant()
	return func() tea.Msg {
		return submitResultMsg{err: wizard.Submit(context.Background(), gateway, variant, form)}
	}
}

func (m Model) lookupCmd(email string) tea.Cmd {
	lookup := m.lookup
	return func() tea.Msg {
		found, err := lookup.ProfileExists(context.Background(), email)
		return lookupResultMsg{found: found, err: err}
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	progressDoneStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170"))

	progressRestStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
