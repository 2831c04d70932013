package calculation

import (
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// CalculateContractor computes the simplified-regime ("Recibos Verdes") breakdown.
//
// Taxable income is 75% of revenue. Social security is charged on 70% of
// revenue, optionally moved up or down by the contributor's tier adjustment.
// NHR residents pay a flat rate without the personal deduction.
func CalculateContractor(in domain.NormalizedInput, rt *domain.RateTable) domain.TaxBreakdown {
	rules := rt.Contractor
	gross := in.GrossAnnual()

	taxable := gross.Mul(rules.ServiceCoefficient)

	ssBase := gross.Mul(rules.SSBaseFraction)
	if !in.SSAdjustment.IsZero() {
		ssBase = ssBase.Mul(decimal.NewFromInt(1).Add(in.SSAdjustment))
	}
	ss := ssBase.Mul(rules.SSRate)

	var grossTax, marginal, deduction decimal.Decimal
	if in.IsNHR {
		grossTax = taxable.Mul(rules.NHRFlatRate)
		marginal = rules.NHRFlatRate
	} else {
		res := ResolveBrackets(taxable, rt.IRS.Brackets)
		grossTax = res.Tax
		marginal = res.MarginalRate
		deduction = rules.PersonalDeduction
	}

	var municipal decimal.Decimal
	if in.MunicipalityBenefit.IsPositive() {
		municipal = in.MunicipalityBenefit.Div(oneHundred).Mul(floorZero(grossTax.Sub(deduction)))
	}

	netTax := floorZero(grossTax.Sub(deduction).Sub(municipal))

	b := domain.TaxBreakdown{
		Regime:      domain.RegimeContractor,
		GrossAnnual: gross,
		SS:          ss,
		IRS:         netTax,
		Contractor: &domain.ContractorDetail{
			TaxableIncome:      taxable,
			SSBase:             ssBase,
			GrossTax:           grossTax,
			PersonalDeduction:  deduction,
			MunicipalReduction: municipal,
			MarginalRate:       marginal,
		},
	}
	b.Finalize()
	return b
}
