// ABOUTME: Phase input wiring for the wizard TUI
// ABOUTME: Builds textinputs per phase and routes keys to fields and toggles
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prismfoil/intake/models"
	"github.com/prismfoil/intake/validate"
	"github.com/prismfoil/intake/wizard"
)

// inputField pairs a textinput with the form field it writes to.
type inputField struct {
	id    string
	label string
	input textinput.Model
	write func(*wizard.Engine, string)
}

func newField(id, label, placeholder, value string, write func(*wizard.Engine, string)) inputField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.SetValue(value)
	return inputField{id: id, label: label, input: in, write: write}
}

func strPtr(s string) *string { return &s }

func writeField(set func(*models.Partial, string)) func(*wizard.Engine, string) {
	return func(e *wizard.Engine, value string) {
		var p models.Partial
		set(&p, value)
		e.Update(p)
	}
}

// mountPhase rebuilds the input set for the current phase from the form
// data held by the engine.
func (m *Model) mountPhase() {
	form := m.engine.Form()
	phase := m.engine.CurrentPhase()
	m.phaseID = phase.ID
	m.focusIndex = 0
	m.cursor = 0
	m.inputs = nil

	switch phase.ID {
	case "identity":
		m.inputs = append(m.inputs,
			newField("first", "First name", "First name", form.FirstName,
				writeField(func(p *models.Partial, v string) { p.FirstName = strPtr(v) })),
			newField("last", "Last name", "Last name", form.LastName,
				writeField(func(p *models.Partial, v string) { p.LastName = strPtr(v) })))
		if m.engine.Variant().Name == wizard.VariantOGCollector {
			m.inputs = append(m.inputs,
				newField("discord", "Discord", "Discord username", form.DiscordUsername,
					writeField(func(p *models.Partial, v string) { p.DiscordUsername = strPtr(v) })),
				newField("email", "Email", "you@example.com", form.Email,
					writeField(func(p *models.Partial, v string) { p.Email = strPtr(v) })))
			m.email = validate.NewFieldState(form.Email)
		} else {
			m.inputs = append(m.inputs,
				newField("instagram", "Instagram", "Instagram handle (optional)", form.InstagramHandle,
					writeField(func(p *models.Partial, v string) { p.InstagramHandle = strPtr(v) })))
		}
	case "reasons":
		m.inputs = append(m.inputs,
			newField("reason", "Why you collect", "What got you collecting?", form.CollectionReason,
				writeField(func(p *models.Partial, v string) { p.CollectionReason = strPtr(v) })),
			newField("interests", "Interests", "What are you into?", form.Interests,
				writeField(func(p *models.Partial, v string) { p.Interests = strPtr(v) })))
	case "consent":
		if m.engine.Variant().Name == wizard.VariantReservation {
			m.inputs = append(m.inputs,
				newField("first", "First name", "First name", form.FirstName,
					writeField(func(p *models.Partial, v string) { p.FirstName = strPtr(v) })),
				newField("last", "Last name", "Last name", form.LastName,
					writeField(func(p *models.Partial, v string) { p.LastName = strPtr(v) })))
		}
		m.inputs = append(m.inputs,
			newField("email", "Email", "you@example.com", form.Email,
				writeField(func(p *models.Partial, v string) { p.Email = strPtr(v) })),
			newField("phone", "Phone", "+1 312 555 0100 (optional)", form.PhoneNumber,
				writeField(func(p *models.Partial, v string) { p.PhoneNumber = strPtr(v) })))
		m.email = validate.NewFieldState(form.Email)
		m.phone = validate.NewFieldState(form.PhoneNumber)
	case "pieces":
		m.inputs = append(m.inputs,
			newField("pieces", "Piece count", "How many pieces? (e.g. 1-5, 6-20, 21+)", form.PieceCount,
				writeField(func(p *models.Partial, v string) { p.PieceCount = strPtr(v) })),
			newField("firstpiece", "First piece", "Your first piece (optional)", form.FirstPiece,
				writeField(func(p *models.Partial, v string) { p.FirstPiece = strPtr(v) })))
	case "experience":
		m.inputs = append(m.inputs,
			newField("experience", "Community experience", "How has the community treated you?", form.CommunityExperience,
				writeField(func(p *models.Partial, v string) { p.CommunityExperience = strPtr(v) })),
			newField("improvements", "Improvements", "What should we improve?", form.Improvements,
				writeField(func(p *models.Partial, v string) { p.Improvements = strPtr(v) })))
	}

	m.updateFormFocus()
}

// virtualSlots counts the non-textinput focus targets after the inputs:
// the consent phase exposes the preference selector and the consent
// checkbox, the pieces phase exposes the variation list.
func (m Model) virtualSlots() int {
	switch m.phaseID {
	case "consent":
		return 2
	case "pieces":
		return 1
	}
	return 0
}

func (m Model) focusTargets() int {
	return len(m.inputs) + m.virtualSlots()
}

func (m Model) onVirtualSlot() bool {
	return m.focusIndex >= len(m.inputs)
}

func (m *Model) updateFormFocus() {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].input.Focus()
		} else {
			m.inputs[i].input.Blur()
		}
	}
}

// commitFocused flushes the focused input into the engine. Navigation
// paths call this so no keystroke is lost crossing a phase boundary.
func (m *Model) commitFocused() {
	if m.onVirtualSlot() || len(m.inputs) == 0 {
		return
	}
	f := m.inputs[m.focusIndex]
	f.write(m.engine, f.input.Value())
}

// blurFocused runs the blur-time validation when focus leaves the email
// or phone field. Phone blur rewrites the committed value to E.164.
func (m *Model) blurFocused() {
	if m.onVirtualSlot() || len(m.inputs) == 0 {
		return
	}
	f := &m.inputs[m.focusIndex]
	switch f.id {
	case "email":
		m.email = m.email.WithValue(f.input.Value()).Blur(validate.Email)
	case "phone":
		m.phone = m.phone.WithValue(f.input.Value()).Blur(func(s string) validate.Result {
			return validate.Phone(s, models.DefaultRegion)
		})
		f.input.SetValue(m.phone.Value)
		f.write(m.engine, m.phone.Value)
	}
}

func (m Model) handlePhaseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.goBack()
	case "enter":
		m.blurFocused()
		return m.advance()
	case "tab":
		m.commitFocused()
		m.blurFocused()
		m.focusIndex = (m.focusIndex + 1) % max(m.focusTargets(), 1)
		m.updateFormFocus()
		return m, nil
	case "shift+tab":
		m.commitFocused()
		m.blurFocused()
		m.focusIndex = (m.focusIndex - 1 + max(m.focusTargets(), 1)) % max(m.focusTargets(), 1)
		m.updateFormFocus()
		return m, nil
	}

	switch m.phaseID {
	case "rules":
		return m.handleRulesKeys(msg)
	case "categories":
		return m.handleCategoryKeys(msg)
	}

	if m.onVirtualSlot() {
		return m.handleVirtualKeys(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex].input, cmd = m.inputs[m.focusIndex].input.Update(msg)

	f := &m.inputs[m.focusIndex]
	value := f.input.Value()
	switch f.id {
	case "phone":
		// Live reformat while typing; the raw digits round-trip through
		// the formatter so deletes still work.
		shown := validate.FormatPhoneAsYouType(value, models.DefaultRegion)
		if shown != value {
			f.input.SetValue(shown)
			f.input.CursorEnd()
			value = shown
		}
		m.phone = m.phone.WithValue(value)
	case "email":
		m.email = m.email.WithValue(value)
	}
	f.write(m.engine, value)

	return m, cmd
}

func (m Model) handleRulesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(models.CollectionRules)-1 {
			m.cursor++
		}
	case " ", "x":
		m.engine.SetForm(m.engine.Form().ToggleRule(m.cursor))
	}
	return m, nil
}

func (m Model) handleCategoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(models.CollectionCategories)-1 {
			m.cursor++
		}
	case " ", "x":
		name := models.CollectionCategories[m.cursor].Name
		maxPrefs := m.engine.Variant().MaxPreferences
		m.engine.SetForm(m.engine.Form().TogglePreference(name, maxPrefs))
	}
	return m, nil
}

// handleVirtualKeys drives the focus targets that are not textinputs.
func (m Model) handleVirtualKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	slot := m.focusIndex - len(m.inputs)

	switch m.phaseID {
	case "consent":
		if slot == 0 {
			switch msg.String() {
			case " ", "x", "right", "l":
				m.engine.Update(models.Partial{CommunicationPref: strPtr(nextPref(m.engine.Form().CommunicationPref))})
			case "left", "h":
				m.engine.Update(models.Partial{CommunicationPref: strPtr(prevPref(m.engine.Form().CommunicationPref))})
			}
			return m, nil
		}
		if msg.String() == " " || msg.String() == "x" {
			consent := !m.engine.Form().MarketingConsent
			m.engine.Update(models.Partial{MarketingConsent: &consent})
		}
	case "pieces":
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(models.CollectionVariations)-1 {
				m.cursor++
			}
		case " ", "x":
			m.engine.SetForm(m.engine.Form().ToggleVariation(models.CollectionVariations[m.cursor]))
		}
	}
	return m, nil
}

var prefCycle = []string{"", models.PrefEmail, models.PrefText, models.PrefBoth}

func nextPref(cur string) string {
	for i, p := range prefCycle {
		if p == cur {
			return prefCycle[(i+1)%len(prefCycle)]
		}
	}
	return models.PrefEmail
}

func prevPref(cur string) string {
	for i, p := range prefCycle {
		if p == cur {
			return prefCycle[(i-1+len(prefCycle))%len(prefCycle)]
		}
	}
	return ""
}
