package breakeven

import (
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// SweepPoint is one sampled expense level
type SweepPoint struct {
	Expense       decimal.Decimal `json:"expense"`
	ContractorNet decimal.Decimal `json:"contractor_net"`
	CompanyNet    decimal.Decimal `json:"company_net"`
	Difference    decimal.Decimal `json:"difference"` // company - contractor
}

// Result of a breakeven search.
//
// When Found is false, Expense is zero and means "no switch point in range",
// which is different from a switch at zero expenses (Found true, Expense zero).
type Result struct {
	GrossIncome         decimal.Decimal `json:"gross_income"`
	Expense             decimal.Decimal `json:"expense"`
	Found               bool            `json:"found"`
	CompanyBetterAtZero bool            `json:"company_better_at_zero"`
	MaxExpense          decimal.Decimal `json:"max_expense"`
	Step                decimal.Decimal `json:"step"`
	Points              []SweepPoint    `json:"points,omitempty"`
}

// Winner returns the regime with the higher net income at the given expense
// level, judged from the sweep samples. Ties go to the contractor.
func (r Result) Winner(expense decimal.Decimal) domain.Regime {
	var best *SweepPoint
	for i := range r.Points {
		if r.Points[i].Expense.GreaterThan(expense) {
			break
		}
		best = &r.Points[i]
	}
	if best != nil && best.Difference.IsPositive() {
		return domain.RegimeCompany
	}
	return domain.RegimeContractor
}

// CurvePoint is the breakeven found for one daily rate
type CurvePoint struct {
	DailyRate decimal.Decimal `json:"daily_rate"`
	Result    Result          `json:"result"`
}

// MaxSweepSamples bounds the number of expense levels a caller outside the
// process may request in a single sweep
const MaxSweepSamples = 10_000

// SolverOptions configures the expense sweep
type SolverOptions struct {
	Step            decimal.Decimal // expense increment
	MaxExpenseRatio decimal.Decimal // upper bound of the sweep as a fraction of gross
	KeepPoints      bool            // record every sample in the result
}

// DefaultSolverOptions returns the sweep settings from a rate table
func DefaultSolverOptions(rt *domain.RateTable) SolverOptions {
	return SolverOptions{
		Step:            rt.Breakeven.Step,
		MaxExpenseRatio: rt.Breakeven.MaxExpenseRatio,
		KeepPoints:      true,
	}
}

// Validate checks the options describe a finite sweep
func (o SolverOptions) Validate() error {
	if !o.Step.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "step must be positive",
		}
	}
	if o.MaxExpenseRatio.IsNegative() || o.MaxExpenseRatio.GreaterThan(decimal.NewFromInt(1)) {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "max expense ratio must be between 0 and 1",
		}
	}
	return nil
}

// Samples returns how many expense levels Find evaluates for grossIncome
func (o SolverOptions) Samples(grossIncome decimal.Decimal) int64 {
	if !grossIncome.IsPositive() || !o.Step.IsPositive() || o.MaxExpenseRatio.IsNegative() {
		return 0
	}
	return grossIncome.Mul(o.MaxExpenseRatio).Div(o.Step).IntPart() + 1
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
