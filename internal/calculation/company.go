package calculation

import (
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateCompany computes the single-member company ("Unipessoal") breakdown.
//
// The owner draws a salary (IAS by default) paid 14 times a year and takes the
// remaining profit as dividends after corporate tax. Meal allowance and perks
// are company costs that reach the owner untaxed.
func CalculateCompany(in domain.NormalizedInput, rt *domain.RateTable) domain.TaxBreakdown {
	rules := rt.Company
	twelve := decimal.NewFromInt(12)
	payments := decimal.NewFromInt(int64(rt.Reference.SalaryPayments))

	gross := in.GrossAnnual()

	salary := in.OwnerSalary.Mul(payments)
	tsuCompany := salary.Mul(rules.TSUCompany)
	tsuWorker := salary.Mul(rules.TSUWorker)
	salaryTax := categoryATax(salary, tsuWorker, rt)

	var meal decimal.Decimal
	if in.IncludeMealAllowance {
		meal = in.AnnualWorkDays().Mul(rules.MealAllowanceDailyCap)
	}

	perks := companyPerks(in, rt)
	accountant := in.AccountantMonthly.Mul(twelve)
	insurance := rules.InsuranceAnnual

	totalCosts := salary.
		Add(tsuCompany).
		Add(accountant).
		Add(in.BusinessExpenses).
		Add(insurance).
		Add(meal).
		Add(perks)

	profit := floorZero(gross.Sub(totalCosts))
	// costs the revenue could not cover; the clamp on profit absorbs them
	shortfall := floorZero(totalCosts.Sub(gross))

	irc := corporateTax(profit, rules)
	derrama := profit.Mul(rules.DerramaRate)
	netProfit := profit.Sub(irc).Sub(derrama)
	dividendTax := netProfit.Mul(rules.DividendTaxRate)
	netDividend := netProfit.Sub(dividendTax)

	netSalary := salary.Sub(tsuWorker).Sub(salaryTax.NetTax)

	b := domain.TaxBreakdown{
		Regime:            domain.RegimeCompany,
		GrossAnnual:       gross,
		SS:                tsuCompany.Add(tsuWorker),
		IRS:               irc.Add(derrama).Add(dividendTax).Add(salaryTax.NetTax),
		OperatingCosts:    accountant.Add(in.BusinessExpenses).Add(insurance).Sub(shortfall),
		UntaxedAllowances: decimal.Zero,
		Company: &domain.CompanyDetail{
			OwnerSalary:      salary,
			TSUCompany:       tsuCompany,
			TSUWorker:        tsuWorker,
			SalaryIRS:        salaryTax.NetTax,
			NetSalary:        netSalary,
			MealAllowance:    meal,
			Perks:            perks,
			AccountantCost:   accountant,
			Insurance:        insurance,
			BusinessExpenses: in.BusinessExpenses,
			TotalCosts:       totalCosts,
			Profit:           profit,
			CostShortfall:    shortfall,
			IRC:              irc,
			Derrama:          derrama,
			NetProfit:        netProfit,
			DividendTax:      dividendTax,
			NetDividend:      netDividend,
		},
	}
	b.Finalize()
	return b
}

// corporateTax applies the reduced rate to the first tier of profit and the
// normal rate to the excess
func corporateTax(profit decimal.Decimal, rules domain.CompanyRules) decimal.Decimal {
	if profit.LessThanOrEqual(rules.IRCThreshold) {
		return profit.Mul(rules.IRCReducedRate)
	}
	first := rules.IRCThreshold.Mul(rules.IRCReducedRate)
	excess := profit.Sub(rules.IRCThreshold).Mul(rules.IRCNormalRate)
	return first.Add(excess)
}

// companyPerks sums the annual value of tax-free owner perks
func companyPerks(in domain.NormalizedInput, rt *domain.RateTable) decimal.Decimal {
	p := in.Perks
	km := p.KmPerMonth.Mul(rt.Company.KmAllowanceRate).Mul(in.MonthsPerYear)
	monthly := p.HealthInsuranceMonthly.Add(p.EducationMonthly).Mul(decimal.NewFromInt(12))
	return km.Add(monthly).Add(p.RetirementContribution)
}
