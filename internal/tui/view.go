package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/ptregime/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		content := tuistyles.ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err))
		return m.renderApp(content)
	}

	var content string
	switch m.currentScene {
	case SceneCalculator:
		content = m.calculator.View()
	case SceneCompare:
		content = m.compare.View()
	case SceneBreakeven:
		content = m.breakeven.View()
	case SceneInsights:
		content = m.insights.View()
	case SceneScenarios:
		content = m.scenarios.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title and status bars
func (m Model) renderApp(content string) string {
	title := tuistyles.TitleStyle.Render(fmt.Sprintf("ptregime · fiscal year %d", m.engine.Rates.Metadata.FiscalYear))
	crumb := tuistyles.SubtitleStyle.Render(m.currentScene.String())

	body := lipgloss.NewStyle().Height(max(0, m.height-4)).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, title, crumb, body, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("s", "simulator"),
		formatShortcut("c", "compare"),
		formatShortcut("b", "breakeven"),
		formatShortcut("i", "insights"),
		formatShortcut("l", "scenarios"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	helpText := `Portuguese freelancer tax simulator

KEYBOARD SHORTCUTS:
  s        Simulator (edit inputs, live regime cards)
  c        Compare regimes
  b        Breakeven between Recibos Verdes and Unipessoal
  i        Thresholds, reserves and tax calendar
  l        Scenarios loaded with --scenarios
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

SIMULATOR:
  ↑/↓      Select an input
  ←/→ +/-  Adjust by one step
  PgUp/Dn  Adjust by ten steps
  Enter    Type an exact value (Esc cancels)

COMPARE:
  Tab      Change the base regime
`
	return tuistyles.BorderStyle.Render(helpText)
}
