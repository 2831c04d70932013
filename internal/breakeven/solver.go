package breakeven

import (
	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the expense level at which the company regime overtakes the
// contractor regime (or the reverse)
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with the engine's rate table settings
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions(calcEngine.Rates))
}

// FindBreakeven returns the breakeven expense level for the given gross income
// using the table's default sweep. Zero is returned when there is no crossing.
func FindBreakeven(grossIncome decimal.Decimal, base domain.CalculatorInput, rt *domain.RateTable) decimal.Decimal {
	return NewDefaultSolver(calculation.NewCalculationEngine(rt)).Find(grossIncome, base).Expense
}

// Find sweeps business expenses from zero to MaxExpenseRatio*grossIncome in
// Step increments, recomputing both regimes at each sample from base.
//
// The breakeven is the lower expense of the first interval where the sign of
// company-contractor net income flips. A sample where the difference is
// exactly zero, following a non-zero sample, is itself the breakeven. Only
// the first crossing is reported.
func (s *Solver) Find(grossIncome decimal.Decimal, base domain.CalculatorInput) Result {
	opts := s.Options
	result := Result{
		GrossIncome: grossIncome,
		Step:        opts.Step,
	}
	if !grossIncome.IsPositive() || opts.Validate() != nil {
		return result
	}

	maxExpense := grossIncome.Mul(opts.MaxExpenseRatio)
	result.MaxExpense = maxExpense

	rt := s.CalcEngine.Rates
	n := base.Normalize(rt)

	var prev *SweepPoint
	for expense := decimal.Zero; expense.LessThanOrEqual(maxExpense); expense = expense.Add(opts.Step) {
		point := s.sample(n.WithExpenses(expense), rt)
		if opts.KeepPoints {
			result.Points = append(result.Points, point)
		}

		if prev == nil {
			result.CompanyBetterAtZero = point.Difference.IsPositive()
			if point.Difference.IsZero() {
				result.Found = true
				break
			}
		} else if crossed(prev.Difference, point.Difference) {
			result.Found = true
			if point.Difference.IsZero() {
				result.Expense = point.Expense
			} else {
				result.Expense = prev.Expense
			}
			break
		}
		p := point
		prev = &p
	}

	s.CalcEngine.Logger.Debugf("breakeven: gross=%s max=%s found=%t expense=%s",
		grossIncome.StringFixed(2), maxExpense.StringFixed(2), result.Found, result.Expense.StringFixed(2))
	return result
}

func (s *Solver) sample(n domain.NormalizedInput, rt *domain.RateTable) SweepPoint {
	contractor := calculation.CalculateContractor(n, rt).NetAnnual
	company := calculation.CalculateCompany(n, rt).NetAnnual
	return SweepPoint{
		Expense:       n.BusinessExpenses,
		ContractorNet: contractor,
		CompanyNet:    company,
		Difference:    company.Sub(contractor),
	}
}

// crossed reports a sign change from a non-zero difference
func crossed(prev, cur decimal.Decimal) bool {
	if prev.IsZero() {
		return false
	}
	return prev.Sign() != cur.Sign()
}
