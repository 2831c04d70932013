package calculation

import (
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// salaryTax is the IRS due on Category A salary
type salaryTax struct {
	SpecificDeduction decimal.Decimal
	Taxable           decimal.Decimal
	Bracket           BracketResult
	NetTax            decimal.Decimal
}

// categoryATax applies the specific deduction (the larger of the fixed amount
// and the social security withheld), the bracket schedule and the personal
// deduction to an annual salary.
func categoryATax(salary, workerSS decimal.Decimal, rt *domain.RateTable) salaryTax {
	specific := decimal.Max(rt.Employee.SpecificDeduction, workerSS)
	taxable := floorZero(salary.Sub(specific))
	res := ResolveBrackets(taxable, rt.IRS.Brackets)

	return salaryTax{
		SpecificDeduction: specific,
		Taxable:           taxable,
		Bracket:           res,
		NetTax:            floorZero(res.Tax.Sub(rt.Contractor.PersonalDeduction)),
	}
}

// CalculateEmployee computes the breakdown for a salaried employee paid in
// 14 instalments. The meal allowance is paid on top of salary, tax-free.
func CalculateEmployee(in domain.NormalizedInput, rt *domain.RateTable) domain.TaxBreakdown {
	payments := decimal.NewFromInt(int64(rt.Reference.SalaryPayments))
	gross := in.EmployeeGrossSalary.Mul(payments)

	ss := gross.Mul(rt.Company.TSUWorker)
	tax := categoryATax(gross, ss, rt)
	meal := in.EmployeeMealAllowance.Mul(in.AnnualWorkDays())

	b := domain.TaxBreakdown{
		Regime:            domain.RegimeEmployee,
		GrossAnnual:       gross,
		SS:                ss,
		IRS:               tax.NetTax,
		UntaxedAllowances: meal,
	}
	b.Finalize()

	b.Employee = &domain.EmployeeDetail{
		SpecificDeduction: tax.SpecificDeduction,
		TaxableIncome:     tax.Taxable,
		GrossTax:          tax.Bracket.Tax,
		MealAllowance:     meal,
		NetPerPayment:     domain.SafeRatio(b.NetAnnual, payments),
		MarginalRate:      tax.Bracket.MarginalRate,
	}
	return b
}
