package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/tui/tuimsg"
	"github.com/rgehrsitz/ptregime/internal/tui/tuistyles"
)

// ScenariosModel lists the scenarios of a scenario file
type ScenariosModel struct {
	scenarios     []domain.Scenario
	selectedIndex int
}

func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

func (m *ScenariosModel) SetScenarios(scenarios []domain.Scenario) {
	m.scenarios = scenarios
	if m.selectedIndex >= len(scenarios) {
		m.selectedIndex = 0
	}
}

// Selected returns the highlighted scenario
func (m *ScenariosModel) Selected() (domain.Scenario, bool) {
	if m.selectedIndex < len(m.scenarios) {
		return m.scenarios[m.selectedIndex], true
	}
	return domain.Scenario{}, false
}

func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, keyUp):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(k, keyDown):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(k, keyEnter):
		if s, ok := m.Selected(); ok {
			return m, func() tea.Msg { return tuimsg.ScenarioSelectedMsg{Scenario: s} }
		}
	}
	return m, nil
}

func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return tuistyles.BorderStyle.Render("No scenarios loaded.\n\nStart with --scenarios <file.yaml> to browse saved inputs.")
	}

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Scenarios"))
	b.WriteString("\n\n")
	for i, s := range m.scenarios {
		line := fmt.Sprintf("%-24s %-14s %s/day", s.Name, s.RegimeOrDefault().DisplayName(), tuistyles.FormatCurrency(s.Input.DailyRate))
		if i == m.selectedIndex {
			b.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + line))
		} else {
			b.WriteString(tuistyles.UnselectedItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if s, ok := m.Selected(); ok && s.Description != "" {
		b.WriteString("\n")
		b.WriteString(tuistyles.SubtitleStyle.Render(s.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render("enter load into simulator"))
	return b.String()
}
