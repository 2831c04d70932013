package insights

import (
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// SafeToSpend splits a month's cash inflow into what is the worker's and what
// must be set aside for VAT, social security and tax
type SafeToSpend struct {
	Regime          domain.Regime   `json:"regime"`
	IncludesVAT     bool            `json:"includes_vat"`
	MonthlyCashflow decimal.Decimal `json:"monthly_cashflow"`
	MonthlyNet      decimal.Decimal `json:"monthly_net"`
	Reserved        decimal.Decimal `json:"reserved"`
}

// CalculateSafeToSpend derives the monthly split from a breakdown. Invoiced
// regimes collect VAT on top of revenue; employees do not.
func CalculateSafeToSpend(b domain.TaxBreakdown, rt *domain.RateTable) SafeToSpend {
	twelve := decimal.NewFromInt(12)
	includesVAT := b.Regime != domain.RegimeEmployee

	inflow := b.GrossAnnual
	if includesVAT {
		inflow = inflow.Mul(decimal.NewFromInt(1).Add(rt.Hardware.VATRate))
	}
	cash := inflow.Div(twelve)
	net := b.NetAnnual.Div(twelve)

	return SafeToSpend{
		Regime:          b.Regime,
		IncludesVAT:     includesVAT,
		MonthlyCashflow: cash,
		MonthlyNet:      net,
		Reserved:        cash.Sub(net),
	}
}

// OrganizedAccountingThreshold is the expense ratio (percent) above which
// declaring real expenses beats the simplified coefficient
var OrganizedAccountingThreshold = decimal.NewFromInt(25)

// ExpenseAdvice compares real expenses with the simplified regime's implicit deduction
type ExpenseAdvice struct {
	GrossAnnual             decimal.Decimal `json:"gross_annual"`
	Expenses                decimal.Decimal `json:"expenses"`
	ExpenseRatio            decimal.Decimal `json:"expense_ratio"` // percent
	ConsiderOrganizedRegime bool            `json:"consider_organized_regime"`
}

// AdviseExpenses returns the expense ratio and whether organized accounting
// deserves a look. Zero income gives a zero ratio.
func AdviseExpenses(expenses, grossAnnual decimal.Decimal) ExpenseAdvice {
	ratio := domain.SafeRatio(expenses, grossAnnual).Mul(hundred)
	return ExpenseAdvice{
		GrossAnnual:             grossAnnual,
		Expenses:                expenses,
		ExpenseRatio:            ratio,
		ConsiderOrganizedRegime: ratio.GreaterThan(OrganizedAccountingThreshold),
	}
}

// RateStats summarizes how a user's daily rate evolved across saved simulations
type RateStats struct {
	Count         int             `json:"count"`
	CurrentRate   decimal.Decimal `json:"current_rate"`
	PreviousRate  decimal.Decimal `json:"previous_rate"`
	HasPrevious   bool            `json:"has_previous"`
	PercentChange decimal.Decimal `json:"percent_change"`
	MaxRate       decimal.Decimal `json:"max_rate"`
}

// CalculateRateStats expects history in chronological order; the last entry
// is the current simulation
func CalculateRateStats(history []domain.SavedSimulation) RateStats {
	stats := RateStats{Count: len(history)}
	if len(history) == 0 {
		return stats
	}

	stats.CurrentRate = history[len(history)-1].Input.DailyRate
	if len(history) > 1 {
		stats.HasPrevious = true
		stats.PreviousRate = history[len(history)-2].Input.DailyRate
		diff := stats.CurrentRate.Sub(stats.PreviousRate)
		stats.PercentChange = domain.SafeRatio(diff, stats.PreviousRate).Mul(hundred).Round(1)
	}

	stats.MaxRate = history[0].Input.DailyRate
	for _, s := range history[1:] {
		stats.MaxRate = decimal.Max(stats.MaxRate, s.Input.DailyRate)
	}
	return stats
}

// Dashboard bundles every insight for the latest saved simulation
type Dashboard struct {
	Latest     *domain.SavedSimulation `json:"latest,omitempty"`
	Breakdown  *domain.TaxBreakdown    `json:"breakdown,omitempty"`
	SafeSpend  *SafeToSpend            `json:"safe_to_spend,omitempty"`
	Thresholds []ThresholdAlert        `json:"thresholds,omitempty"`
	Expenses   *ExpenseAdvice          `json:"expenses,omitempty"`
	Deductions *DeductionProgress      `json:"deductions,omitempty"`
	Rates      RateStats               `json:"rates"`
}

// BuildDashboard recomputes the latest simulation of history with calc and
// derives the dashboard widgets. An empty history yields an empty dashboard.
func BuildDashboard(history []domain.SavedSimulation, rt *domain.RateTable,
	calc func(domain.Regime, domain.CalculatorInput) domain.TaxBreakdown) Dashboard {
	dash := Dashboard{Rates: CalculateRateStats(history)}
	if len(history) == 0 {
		return dash
	}

	latest := history[len(history)-1]
	regime := latest.Regime
	if regime == "" {
		regime = domain.RegimeContractor
	}
	b := calc(regime, latest.Input)
	safe := CalculateSafeToSpend(b, rt)
	gross := latest.Input.Normalize(rt).GrossAnnual()
	advice := AdviseExpenses(latest.Input.BusinessExpenses, gross)
	progress := TrackDeductions(latest.Input.BusinessExpenses, DeductionTarget)

	dash.Latest = &latest
	dash.Breakdown = &b
	dash.SafeSpend = &safe
	dash.Thresholds = CheckThresholds(gross, rt)
	dash.Expenses = &advice
	dash.Deductions = &progress
	return dash
}
