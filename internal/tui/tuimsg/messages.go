// Package tuimsg holds the messages scenes send to the root model
package tuimsg

import (
	"github.com/rgehrsitz/ptregime/internal/breakeven"
	"github.com/rgehrsitz/ptregime/internal/config"
	"github.com/rgehrsitz/ptregime/internal/domain"
)

// InputChangedMsg carries the edited simulator input
type InputChangedMsg struct {
	Input domain.CalculatorInput
}

// BaseRegimeChangedMsg selects the reference regime of the comparison
type BaseRegimeChangedMsg struct {
	Regime domain.Regime
}

// ScenariosLoadedMsg delivers a parsed scenario file
type ScenariosLoadedMsg struct {
	File *config.ScenarioFile
}

// ScenarioSelectedMsg loads a saved scenario into the simulator
type ScenarioSelectedMsg struct {
	Scenario domain.Scenario
}

// BreakevenCompleteMsg returns a background breakeven search. Seq identifies
// the input revision it was computed for.
type BreakevenCompleteMsg struct {
	Seq    int
	Result breakeven.Result
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
