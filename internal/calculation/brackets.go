package calculation

import (
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// BracketResult is the outcome of resolving an amount against a progressive schedule
type BracketResult struct {
	Tax          decimal.Decimal
	MarginalRate decimal.Decimal
	Index        int
}

// ResolveBrackets finds the first bracket whose limit covers amount and applies
// amount*rate - deduction, floored at zero. Brackets must be sorted by limit.
// If no bracket covers the amount the last one is used; an empty schedule
// yields zero tax.
func ResolveBrackets(amount decimal.Decimal, brackets []domain.Bracket) BracketResult {
	if len(brackets) == 0 {
		return BracketResult{Index: -1}
	}

	idx := len(brackets) - 1
	for i, b := range brackets {
		if b.Limit == nil || amount.LessThanOrEqual(*b.Limit) {
			idx = i
			break
		}
	}

	b := brackets[idx]
	tax := amount.Mul(b.Rate).Sub(b.Deduction)
	if tax.IsNegative() {
		tax = decimal.Zero
	}

	return BracketResult{Tax: tax, MarginalRate: b.Rate, Index: idx}
}

// floorZero returns v or zero, whichever is larger
func floorZero(v decimal.Decimal) decimal.Decimal {
	return decimal.Max(v, decimal.Zero)
}
