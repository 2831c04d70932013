package calculation

import (
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateAnnualLiquidation settles a household's IRS for the year.
//
// Category A income is reduced by the specific deduction (never below zero);
// Category B income is scaled by the service coefficient. Married couples are
// taxed on half the income and the result doubled. Dependents and itemized
// expenses are deducted from the gross tax, and withholding already paid is
// netted off the final balance.
func CalculateAnnualLiquidation(in domain.LiquidationInput, rt *domain.RateTable) domain.LiquidationResult {
	gross := in.AnnualGrossIncome

	var taxable decimal.Decimal
	switch in.IncomeType {
	case domain.IncomeCategoryB:
		taxable = gross.Mul(rt.Contractor.ServiceCoefficient)
	default:
		specific := decimal.Min(gross, rt.Employee.SpecificDeduction)
		taxable = floorZero(gross.Sub(specific))
	}

	divisor := in.MaritalStatus.Divisor()
	perPerson := ResolveBrackets(taxable.Div(divisor), rt.IRS.Brackets)
	grossTax := perPerson.Tax.Mul(divisor)

	deductions := rt.IRS.DependentDeduction.Mul(decimal.NewFromInt(int64(in.Dependents))).Add(in.Expenses)
	netTax := floorZero(grossTax.Sub(deductions))

	return domain.LiquidationResult{
		TaxableIncome: taxable,
		GrossTax:      grossTax,
		Deductions:    deductions,
		NetTax:        netTax,
		EffectiveRate: domain.SafeRatio(netTax, gross),
		Balance:       netTax.Sub(in.WithholdingTax),
	}
}
