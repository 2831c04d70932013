package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Regime identifies a way of working
type Regime string

const (
	RegimeContractor Regime = "contractor"
	RegimeCompany    Regime = "company"
	RegimeEmployee   Regime = "employee"
)

// AllRegimes lists the regimes in presentation order
var AllRegimes = []Regime{RegimeContractor, RegimeCompany, RegimeEmployee}

// DisplayName returns the name used in reports
func (r Regime) DisplayName() string {
	switch r {
	case RegimeContractor:
		return "Recibos Verdes"
	case RegimeCompany:
		return "Unipessoal"
	case RegimeEmployee:
		return "Employee"
	default:
		return string(r)
	}
}

// ParseRegime converts user input into a Regime
func ParseRegime(s string) (Regime, error) {
	switch Regime(s) {
	case RegimeContractor, RegimeCompany, RegimeEmployee:
		return Regime(s), nil
	}
	return "", fmt.Errorf("unknown regime %q (want contractor, company or employee)", s)
}

// TaxBreakdown is the result of one regime calculation.
//
// NetAnnual is always assembled as
//
//	GrossAnnual - SS - IRS - OperatingCosts + UntaxedAllowances
//
// OperatingCosts are non-tax company costs borne by the owner and
// UntaxedAllowances are tax-free payments on top of salary. Both are zero for
// the contractor regime, where net + ss + irs equals gross exactly.
type TaxBreakdown struct {
	Regime            Regime          `json:"regime"`
	GrossAnnual       decimal.Decimal `json:"gross_annual"`
	SS                decimal.Decimal `json:"ss"`
	IRS               decimal.Decimal `json:"irs"`
	OperatingCosts    decimal.Decimal `json:"operating_costs"`
	UntaxedAllowances decimal.Decimal `json:"untaxed_allowances"`
	NetAnnual         decimal.Decimal `json:"net_annual"`
	NetMonthly        decimal.Decimal `json:"net_monthly"`
	EffectiveTaxRate  decimal.Decimal `json:"effective_tax_rate"`

	Contractor *ContractorDetail `json:"contractor,omitempty"`
	Company    *CompanyDetail    `json:"company,omitempty"`
	Employee   *EmployeeDetail   `json:"employee,omitempty"`
}

// ContractorDetail exposes intermediate contractor values
type ContractorDetail struct {
	TaxableIncome      decimal.Decimal `json:"taxable_income"`
	SSBase             decimal.Decimal `json:"ss_base"`
	GrossTax           decimal.Decimal `json:"gross_tax"`
	PersonalDeduction  decimal.Decimal `json:"personal_deduction"`
	MunicipalReduction decimal.Decimal `json:"municipal_reduction"`
	MarginalRate       decimal.Decimal `json:"marginal_rate"`
}

// CompanyDetail exposes intermediate company values
type CompanyDetail struct {
	OwnerSalary      decimal.Decimal `json:"owner_salary"`
	TSUCompany       decimal.Decimal `json:"tsu_company"`
	TSUWorker        decimal.Decimal `json:"tsu_worker"`
	SalaryIRS        decimal.Decimal `json:"salary_irs"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	MealAllowance    decimal.Decimal `json:"meal_allowance"`
	Perks            decimal.Decimal `json:"perks"`
	AccountantCost   decimal.Decimal `json:"accountant_cost"`
	Insurance        decimal.Decimal `json:"insurance"`
	BusinessExpenses decimal.Decimal `json:"business_expenses"`
	TotalCosts       decimal.Decimal `json:"total_costs"`
	Profit           decimal.Decimal `json:"profit"`
	CostShortfall    decimal.Decimal `json:"cost_shortfall"`
	IRC              decimal.Decimal `json:"irc"`
	Derrama          decimal.Decimal `json:"derrama"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	DividendTax      decimal.Decimal `json:"dividend_tax"`
	NetDividend      decimal.Decimal `json:"net_dividend"`
}

// EmployeeDetail exposes intermediate employee values
type EmployeeDetail struct {
	SpecificDeduction decimal.Decimal `json:"specific_deduction"`
	TaxableIncome     decimal.Decimal `json:"taxable_income"`
	GrossTax          decimal.Decimal `json:"gross_tax"`
	MealAllowance     decimal.Decimal `json:"meal_allowance"`
	NetPerPayment     decimal.Decimal `json:"net_per_payment"`
	MarginalRate      decimal.Decimal `json:"marginal_rate"`
}

var monthsInYear = decimal.NewFromInt(12)

// Finalize fills NetAnnual, NetMonthly and EffectiveTaxRate from the additive
// components. Calculators call it last.
func (b *TaxBreakdown) Finalize() {
	b.NetAnnual = b.GrossAnnual.Sub(b.SS).Sub(b.IRS).Sub(b.OperatingCosts).Add(b.UntaxedAllowances)
	b.NetMonthly = b.NetAnnual.Div(monthsInYear)
	b.EffectiveTaxRate = SafeRatio(b.TotalLevies(), b.GrossAnnual)
}

// TotalLevies is social security plus every tax
func (b TaxBreakdown) TotalLevies() decimal.Decimal {
	return b.SS.Add(b.IRS)
}

// Verify checks the additive decomposition holds within a cent
func (b TaxBreakdown) Verify() error {
	expected := b.GrossAnnual.Sub(b.SS).Sub(b.IRS).Sub(b.OperatingCosts).Add(b.UntaxedAllowances)
	if expected.Sub(b.NetAnnual).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
		return fmt.Errorf("%s breakdown does not add up: net %s, expected %s",
			b.Regime, b.NetAnnual.StringFixed(2), expected.StringFixed(2))
	}
	return nil
}

// SafeRatio divides num by den, returning zero when den is not positive
func SafeRatio(num, den decimal.Decimal) decimal.Decimal {
	if den.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return num.Div(den)
}
