package insights

import (
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// ThresholdStatus classifies how close income is to a ceiling
type ThresholdStatus string

const (
	StatusSafe     ThresholdStatus = "safe"
	StatusWarning  ThresholdStatus = "warning"
	StatusExceeded ThresholdStatus = "exceeded"
)

// Threshold names
const (
	ThresholdVATExemption     = "vat_exemption"
	ThresholdSimplifiedRegime = "simplified_regime"
)

// ThresholdAlert reports income usage of one fiscal ceiling
type ThresholdAlert struct {
	Name   string          `json:"name"`
	Limit  decimal.Decimal `json:"limit"`
	Income decimal.Decimal `json:"income"`
	Usage  decimal.Decimal `json:"usage"` // percent of Limit
	Status ThresholdStatus `json:"status"`
}

// Remaining is the revenue left before the ceiling, never negative
func (a ThresholdAlert) Remaining() decimal.Decimal {
	return decimal.Max(decimal.Zero, a.Limit.Sub(a.Income))
}

// CheckThresholds compares annual income with the VAT exemption and
// simplified regime ceilings. Usage at or above 100% is exceeded, at or above
// the warning ratio is a warning.
func CheckThresholds(annualIncome decimal.Decimal, rt *domain.RateTable) []ThresholdAlert {
	limits := rt.FiscalLimits
	return []ThresholdAlert{
		checkThreshold(ThresholdVATExemption, annualIncome, limits.VATExemption, limits.WarningRatio),
		checkThreshold(ThresholdSimplifiedRegime, annualIncome, limits.SimplifiedRegime, limits.WarningRatio),
	}
}

// AllSafe reports whether no alert needs attention
func AllSafe(alerts []ThresholdAlert) bool {
	for _, a := range alerts {
		if a.Status != StatusSafe {
			return false
		}
	}
	return true
}

func checkThreshold(name string, income, limit, warningRatio decimal.Decimal) ThresholdAlert {
	usage := domain.SafeRatio(income, limit).Mul(hundred)
	return ThresholdAlert{
		Name:   name,
		Limit:  limit,
		Income: income,
		Usage:  usage,
		Status: classify(usage, warningRatio.Mul(hundred)),
	}
}

func classify(usage, warningAt decimal.Decimal) ThresholdStatus {
	switch {
	case usage.GreaterThanOrEqual(hundred):
		return StatusExceeded
	case usage.GreaterThanOrEqual(warningAt):
		return StatusWarning
	default:
		return StatusSafe
	}
}
