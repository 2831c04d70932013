package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavedSimulation is a persisted simulation: the input exactly as entered plus
// a summary of the computed regimes at save time.
type SavedSimulation struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Title     string          `json:"title"`
	Regime    Regime          `json:"regime"`
	Input     CalculatorInput `json:"input"`
	Summary   []RegimeSummary `json:"summary"`
	CreatedAt time.Time       `json:"created_at"`
}

// RegimeSummary is the headline result of one regime
type RegimeSummary struct {
	Regime           Regime          `json:"regime"`
	GrossAnnual      decimal.Decimal `json:"gross_annual"`
	NetAnnual        decimal.Decimal `json:"net_annual"`
	EffectiveTaxRate decimal.Decimal `json:"effective_tax_rate"`
}

// Summarize reduces a breakdown to its headline figures
func Summarize(b TaxBreakdown) RegimeSummary {
	return RegimeSummary{
		Regime:           b.Regime,
		GrossAnnual:      b.GrossAnnual,
		NetAnnual:        b.NetAnnual,
		EffectiveTaxRate: b.EffectiveTaxRate,
	}
}

// Scenario is a named input, as read from a scenario file
type Scenario struct {
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Regime      Regime          `yaml:"regime,omitempty" json:"regime,omitempty"`
	Input       CalculatorInput `yaml:"input" json:"input"`
}

// RegimeOrDefault returns the scenario's regime, contractor when unset
func (s Scenario) RegimeOrDefault() Regime {
	if s.Regime == "" {
		return RegimeContractor
	}
	return s.Regime
}
