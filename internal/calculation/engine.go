package calculation

import (
	"github.com/rgehrsitz/ptregime/internal/domain"
)

// Logger is a minimal logging interface for the calculation engine.
// *zap.SugaredLogger satisfies it; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// RegimeSet holds one breakdown per regime for the same input
type RegimeSet struct {
	Contractor domain.TaxBreakdown `json:"contractor"`
	Company    domain.TaxBreakdown `json:"company"`
	Employee   domain.TaxBreakdown `json:"employee"`
}

// Get returns the breakdown for a regime
func (s RegimeSet) Get(r domain.Regime) domain.TaxBreakdown {
	switch r {
	case domain.RegimeCompany:
		return s.Company
	case domain.RegimeEmployee:
		return s.Employee
	default:
		return s.Contractor
	}
}

// List returns the breakdowns in presentation order
func (s RegimeSet) List() []domain.TaxBreakdown {
	return []domain.TaxBreakdown{s.Contractor, s.Company, s.Employee}
}

// CalculationEngine binds the regime calculators to one rate table. It holds
// no mutable state besides the logger and is safe for concurrent use.
type CalculationEngine struct {
	Rates  *domain.RateTable
	Logger Logger
}

// NewCalculationEngine2025 creates an engine using the built-in 2025 table
func NewCalculationEngine2025() *CalculationEngine {
	return NewCalculationEngine(domain.Portugal2025())
}

// NewCalculationEngine creates an engine for the given rate table
func NewCalculationEngine(rates *domain.RateTable) *CalculationEngine {
	if rates == nil {
		rates = domain.Portugal2025()
	}
	return &CalculationEngine{
		Rates:  rates,
		Logger: NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Normalize resolves input defaults against the engine's rate table
func (ce *CalculationEngine) Normalize(in domain.CalculatorInput) domain.NormalizedInput {
	return in.Normalize(ce.Rates)
}

// Contractor runs the contractor calculator
func (ce *CalculationEngine) Contractor(in domain.CalculatorInput) domain.TaxBreakdown {
	b := CalculateContractor(ce.Normalize(in), ce.Rates)
	ce.logBreakdown(b)
	return b
}

// Company runs the single-member company calculator
func (ce *CalculationEngine) Company(in domain.CalculatorInput) domain.TaxBreakdown {
	b := CalculateCompany(ce.Normalize(in), ce.Rates)
	ce.logBreakdown(b)
	return b
}

// Employee runs the employee calculator
func (ce *CalculationEngine) Employee(in domain.CalculatorInput) domain.TaxBreakdown {
	b := CalculateEmployee(ce.Normalize(in), ce.Rates)
	ce.logBreakdown(b)
	return b
}

// Calculate runs a single regime
func (ce *CalculationEngine) Calculate(r domain.Regime, in domain.CalculatorInput) domain.TaxBreakdown {
	switch r {
	case domain.RegimeCompany:
		return ce.Company(in)
	case domain.RegimeEmployee:
		return ce.Employee(in)
	default:
		return ce.Contractor(in)
	}
}

// All runs every regime against the same normalized input
func (ce *CalculationEngine) All(in domain.CalculatorInput) RegimeSet {
	n := ce.Normalize(in)
	set := RegimeSet{
		Contractor: CalculateContractor(n, ce.Rates),
		Company:    CalculateCompany(n, ce.Rates),
		Employee:   CalculateEmployee(n, ce.Rates),
	}
	for _, b := range set.List() {
		ce.logBreakdown(b)
	}
	return set
}

// Liquidate runs the annual IRS settlement
func (ce *CalculationEngine) Liquidate(in domain.LiquidationInput) domain.LiquidationResult {
	res := CalculateAnnualLiquidation(in, ce.Rates)
	ce.Logger.Debugf("liquidation: type=%s status=%s taxable=%s coleta=%s balance=%s",
		in.IncomeType, in.MaritalStatus, res.TaxableIncome.StringFixed(2),
		res.GrossTax.StringFixed(2), res.Balance.StringFixed(2))
	return res
}

func (ce *CalculationEngine) logBreakdown(b domain.TaxBreakdown) {
	ce.Logger.Debugf("%s: gross=%s ss=%s irs=%s net=%s rate=%s",
		b.Regime, b.GrossAnnual.StringFixed(2), b.SS.StringFixed(2), b.IRS.StringFixed(2),
		b.NetAnnual.StringFixed(2), b.EffectiveTaxRate.StringFixed(4))
	if err := b.Verify(); err != nil {
		ce.Logger.Errorf("%v", err)
	}
}
