package insights

import (
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// HardwareComparison contrasts buying equipment through the company with
// buying it personally
type HardwareComparison struct {
	PriceIncVAT     decimal.Decimal `json:"price_inc_vat"`
	NetPrice        decimal.Decimal `json:"net_price"`
	VATRecovered    decimal.Decimal `json:"vat_recovered"`
	IRCSavings      decimal.Decimal `json:"irc_savings"`
	CompanyRealCost decimal.Decimal `json:"company_real_cost"`
	IndividualCost  decimal.Decimal `json:"individual_cost"`
	TotalSavings    decimal.Decimal `json:"total_savings"`
}

// CompareHardwarePurchase splits VAT out of the price, applies the corporate
// tax saving from depreciating the net cost and reports the difference with
// paying the full price as a private individual.
func CompareHardwarePurchase(priceIncVAT decimal.Decimal, rt *domain.RateTable) HardwareComparison {
	rules := rt.Hardware
	divisor := decimal.NewFromInt(1).Add(rules.VATRate)

	net := domain.SafeRatio(priceIncVAT, divisor)
	vat := priceIncVAT.Sub(net)
	ircSavings := net.Mul(rules.DepreciationIRCRate)
	companyCost := net.Sub(ircSavings)

	return HardwareComparison{
		PriceIncVAT:     priceIncVAT,
		NetPrice:        net,
		VATRecovered:    vat,
		IRCSavings:      ircSavings,
		CompanyRealCost: companyCost,
		IndividualCost:  priceIncVAT,
		TotalSavings:    priceIncVAT.Sub(companyCost),
	}
}

// DeductionProgress tracks expenses against a target deduction amount
type DeductionProgress struct {
	Target    decimal.Decimal `json:"target"`
	Current   decimal.Decimal `json:"current"`
	Remaining decimal.Decimal `json:"remaining"`
	Percent   decimal.Decimal `json:"percent"`
}

// DeductionTarget is the yearly expense goal shown on the dashboard
var DeductionTarget = decimal.NewFromInt(2000)

// TrackDeductions reports how much of target the declared expenses cover,
// capped at 100%
func TrackDeductions(expenses, target decimal.Decimal) DeductionProgress {
	pct := domain.SafeRatio(expenses, target).Mul(hundred)
	return DeductionProgress{
		Target:    target,
		Current:   expenses,
		Remaining: decimal.Max(decimal.Zero, target.Sub(expenses)),
		Percent:   decimal.Min(pct, hundred),
	}
}
