package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneCompare
	SceneBreakeven
	SceneInsights
	SceneScenarios
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Simulator"
	case SceneCompare:
		return "Compare"
	case SceneBreakeven:
		return "Breakeven"
	case SceneInsights:
		return "Insights"
	case SceneScenarios:
		return "Scenarios"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// TickMsg animates the breakeven spinner
type TickMsg struct{}
