package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ptregime/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculator.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case tuimsg.InputChangedMsg:
		m.input = msg.Input
		m.recalculate()
		return m, m.rerunBreakeven()

	case tuimsg.BaseRegimeChangedMsg:
		m.recalculate()
		return m, nil

	case tuimsg.ScenariosLoadedMsg:
		m.scenarios.SetScenarios(msg.File.Scenarios)
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		m.calculator.SetInput(msg.Scenario.Input, m.engine.Rates)
		m.previousScene = m.currentScene
		m.currentScene = SceneCalculator
		m.input = m.calculator.Input()
		m.recalculate()
		return m, m.rerunBreakeven()

	case tuimsg.BreakevenCompleteMsg:
		if msg.Seq == m.seq {
			m.breakeven.SetResult(msg.Result)
		}
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case TickMsg:
		if !m.breakeven.Running() {
			return m, nil
		}
		m.breakeven.Tick()
		return m, tick()
	}

	return m.updateCurrentScene(msg)
}

// rerunBreakeven restarts the search and the spinner unless it is already spinning
func (m *Model) rerunBreakeven() tea.Cmd {
	spinning := m.breakeven.Running()
	cmd := m.startBreakeven()
	if spinning {
		return cmd
	}
	return tea.Batch(cmd, tick())
}

var sceneKeys = map[string]Scene{
	"s": SceneCalculator,
	"c": SceneCompare,
	"b": SceneBreakeven,
	"i": SceneInsights,
	"l": SceneScenarios,
	"?": SceneHelp,
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		m.err = nil
		return m, nil
	}
	if m.currentScene == SceneCalculator && m.calculator.Editing() {
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.currentScene != SceneCalculator {
			back := m.previousScene
			if back == m.currentScene {
				back = SceneCalculator
			}
			return m, func() tea.Msg { return NavigateMsg{Scene: back} }
		}
		return m, nil
	}

	if scene, ok := sceneKeys[msg.String()]; ok {
		return m, func() tea.Msg { return NavigateMsg{Scene: scene} }
	}
	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneCalculator:
		m.calculator, cmd = m.calculator.Update(msg)
	case SceneCompare:
		m.compare, cmd = m.compare.Update(msg)
	case SceneScenarios:
		m.scenarios, cmd = m.scenarios.Update(msg)
	}
	return m, cmd
}
