// ABOUTME: View rendering for the wizard TUI
// ABOUTME: Per-phase bodies plus the progress header, redirect, and success screens
package tui

import (
	"fmt"
	"strings"

	"github.com/prismfoil/intake/models"
)

const progressBarWidth = 30

func (m Model) renderPhaseView() string {
	var s strings.Builder

	phase := m.engine.CurrentPhase()
	s.WriteString(titleStyle.Render(m.engine.Variant().Title + " Intake"))
	s.WriteString("\n")
	s.WriteString(m.renderProgress())
	s.WriteString("\n\n")
	s.WriteString(phaseStyle.Render(phase.Title))
	s.WriteString("\n\n")

	switch phase.ID {
	case "rules":
		s.WriteString(m.renderRulesBody())
	case "categories":
		s.WriteString(m.renderCategoriesBody())
	default:
		s.WriteString(m.renderInputsBody())
	}

	if m.engine.IsSubmitting() {
		s.WriteString("\n" + busyStyle.Render("Submitting..."))
	}
	if m.engine.IsValidatingEmail() {
		s.WriteString("\n" + busyStyle.Render("Checking your email..."))
	}
	if m.statusErr != "" {
		s.WriteString("\n" + errorStyle.Render(m.statusErr))
	}

	s.WriteString("\n")
	s.WriteString(m.renderHelp())
	return s.String()
}

func (m Model) renderProgress() string {
	filled := int(m.engine.Progress() * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := progressDoneStyle.Render(strings.Repeat("█", filled)) +
		progressRestStyle.Render(strings.Repeat("░", progressBarWidth-filled))
	return fmt.Sprintf("%s Step %d of %d", bar, m.engine.Current(), m.engine.TotalPhases())
}

func (m Model) renderRulesBody() string {
	var s strings.Builder
	form := m.engine.Form()
	for i, rule := range models.CollectionRules {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		box := "[ ]"
		if i < len(form.RulesAccepted) && form.RulesAccepted[i] {
			box = checkedStyle.Render("[x]")
		}
		s.WriteString(fmt.Sprintf("%s%s %s\n", cursor, box, rule))
	}
	return s.String()
}

func (m Model) renderCategoriesBody() string {
	var s strings.Builder
	form := m.engine.Form()
	maxPrefs := m.engine.Variant().MaxPreferences
	s.WriteString(fmt.Sprintf("Pick up to %d, in order of preference.\n\n", maxPrefs))
	for i, cat := range models.CollectionCategories {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		mark := "   "
		for rank, name := range form.CollectPreferences {
			if name == cat.Name {
				mark = checkedStyle.Render(fmt.Sprintf("#%d ", rank+1))
			}
		}
		line := fmt.Sprintf("%s%s%s", cursor, mark, cat.Name)
		if len(cat.Subcategories) > 0 {
			line += helpStyle.Render(" (" + strings.Join(cat.Subcategories, ", ") + ")")
		}
		s.WriteString(line + "\n")
	}
	return s.String()
}

func (m Model) renderInputsBody() string {
	var s strings.Builder

	for i, f := range m.inputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(f.label + ": " + f.input.View())
		s.WriteString("\n")
		switch f.id {
		case "email":
			if m.email.ShowError() {
				s.WriteString("    " + errorStyle.Render(m.email.Error) + "\n")
			}
		case "phone":
			if m.phone.ShowError() {
				s.WriteString("    " + errorStyle.Render(m.phone.Error) + "\n")
			}
		}
	}

	if m.phaseID == "consent" {
		s.WriteString(m.renderConsentToggles())
	}
	if m.phaseID == "pieces" {
		s.WriteString(m.renderVariationList())
	}
	return s.String()
}

func (m Model) renderConsentToggles() string {
	var s strings.Builder
	form := m.engine.Form()
	base := len(m.inputs)

	pref := form.CommunicationPref
	if pref == "" {
		pref = "none"
	}
	s.WriteString(focusMarker(m.focusIndex == base))
	s.WriteString(fmt.Sprintf("Preferred contact: %s\n", checkedStyle.Render(pref)))

	box := "[ ]"
	if form.MarketingConsent {
		box = checkedStyle.Render("[x]")
	}
	s.WriteString(focusMarker(m.focusIndex == base+1))
	s.WriteString(fmt.Sprintf("%s I'd like updates about drops and events\n", box))
	return s.String()
}

func (m Model) renderVariationList() string {
	var s strings.Builder
	form := m.engine.Form()
	onList := m.focusIndex == len(m.inputs)

	s.WriteString("\n  Favorite variations (up to 3, ranked):\n")
	for i, name := range models.CollectionVariations {
		cursor := "  "
		if onList && i == m.cursor {
			cursor = "> "
		}
		mark := "   "
		for rank, picked := range form.Variations() {
			if picked == name {
				mark = checkedStyle.Render(fmt.Sprintf("#%d ", rank+1))
			}
		}
		s.WriteString(fmt.Sprintf("  %s%s%s\n", cursor, mark, name))
	}
	return s.String()
}

func focusMarker(focused bool) string {
	if focused {
		return "> "
	}
	return "  "
}

func (m Model) renderRedirectView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("No Profile Found"))
	s.WriteString("\n\n")
	s.WriteString("We couldn't find a collector profile for ")
	s.WriteString(phaseStyle.Render(m.engine.Form().Email))
	s.WriteString(".\n\nWant to make a reservation instead? Your details carry over.\n")
	s.WriteString(helpStyle.Render("y: Make a reservation • n: Go back and fix my email"))
	return s.String()
}

func (m Model) renderSuccessView() string {
	var s strings.Builder
	form := m.engine.Form()
	s.WriteString(titleStyle.Render("You're All Set"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Thanks %s! Your %s intake is in.\n", form.FirstName, m.engine.Variant().Title))
	if len(form.CollectPreferences) > 0 {
		s.WriteString("Top categories: " + strings.Join(form.CollectPreferences, ", ") + "\n")
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Enter: Done"))
	return s.String()
}

func (m Model) renderHelp() string {
	var help []string
	switch m.phaseID {
	case "rules", "categories":
		help = append(help, "↑/↓: Move", "Space: Toggle")
	default:
		help = append(help, "Tab: Next field")
		if m.virtualSlots() > 0 {
			help = append(help, "Space: Toggle")
		}
	}
	if m.engine.OnFinalPhase() {
		help = append(help, "Enter: Submit")
	} else {
		help = append(help, "Enter: Continue")
	}
	if m.engine.CanBack() {
		help = append(help, "Esc: Back")
	} else {
		help = append(help, "Esc: Quit")
	}
	help = append(help, "Ctrl+C: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}
