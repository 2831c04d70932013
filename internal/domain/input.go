package domain

import (
	"github.com/shopspring/decimal"
)

// CalculatorInput is the raw set of fields a user enters for one simulation.
// Optional values are pointers or zero values; Normalize resolves them.
type CalculatorInput struct {
	DailyRate        decimal.Decimal `yaml:"daily_rate" json:"daily_rate"`
	WorkDaysPerMonth decimal.Decimal `yaml:"work_days_per_month" json:"work_days_per_month"`
	MonthsPerYear    decimal.Decimal `yaml:"months_per_year" json:"months_per_year"`
	BusinessExpenses decimal.Decimal `yaml:"business_expenses" json:"business_expenses"`

	// Contractor options
	IsNHR               bool            `yaml:"is_nhr" json:"is_nhr"`
	MunicipalityBenefit decimal.Decimal `yaml:"municipality_benefit" json:"municipality_benefit"` // percent, 0-5
	SSAdjustment        decimal.Decimal `yaml:"ss_adjustment" json:"ss_adjustment"`               // fraction, -0.25..0.25

	// Company options
	IncludeMealAllowance bool             `yaml:"include_meal_allowance" json:"include_meal_allowance"`
	AccountantMonthly    *decimal.Decimal `yaml:"accountant_monthly,omitempty" json:"accountant_monthly,omitempty"`
	OwnerSalary          *decimal.Decimal `yaml:"owner_salary,omitempty" json:"owner_salary,omitempty"` // monthly
	Perks                *Perks           `yaml:"perks,omitempty" json:"perks,omitempty"`

	// Employee scenario
	EmployeeGrossSalary   decimal.Decimal `yaml:"employee_gross_salary" json:"employee_gross_salary"`     // monthly
	EmployeeMealAllowance decimal.Decimal `yaml:"employee_meal_allowance" json:"employee_meal_allowance"` // daily
}

// Perks are tax-free benefits a company can pay its owner
type Perks struct {
	KmPerMonth             decimal.Decimal `yaml:"km_per_month" json:"km_per_month"`
	HealthInsuranceMonthly decimal.Decimal `yaml:"health_insurance_monthly" json:"health_insurance_monthly"`
	EducationMonthly       decimal.Decimal `yaml:"education_monthly" json:"education_monthly"`
	RetirementContribution decimal.Decimal `yaml:"retirement_contribution" json:"retirement_contribution"` // annual, one-off
}

// NormalizedInput is a CalculatorInput with every optional field resolved
// against a rate table. Calculators only accept this form.
type NormalizedInput struct {
	DailyRate        decimal.Decimal
	WorkDaysPerMonth decimal.Decimal
	MonthsPerYear    decimal.Decimal
	BusinessExpenses decimal.Decimal

	IsNHR               bool
	MunicipalityBenefit decimal.Decimal
	SSAdjustment        decimal.Decimal

	IncludeMealAllowance bool
	AccountantMonthly    decimal.Decimal
	OwnerSalary          decimal.Decimal
	Perks                Perks

	EmployeeGrossSalary   decimal.Decimal
	EmployeeMealAllowance decimal.Decimal
}

var maxMunicipalityBenefit = decimal.NewFromInt(5)

// Normalize applies defaults from the rate table in one place: owner salary
// falls back to IAS, accountant cost to the table default, missing perks to
// zero. Municipality benefit is clamped to [0,5] and the SS adjustment to the
// table bounds. Numeric fields are otherwise passed through untouched.
func (in CalculatorInput) Normalize(rt *RateTable) NormalizedInput {
	n := NormalizedInput{
		DailyRate:             in.DailyRate,
		WorkDaysPerMonth:      in.WorkDaysPerMonth,
		MonthsPerYear:         in.MonthsPerYear,
		BusinessExpenses:      in.BusinessExpenses,
		IsNHR:                 in.IsNHR,
		IncludeMealAllowance:  in.IncludeMealAllowance,
		EmployeeGrossSalary:   in.EmployeeGrossSalary,
		EmployeeMealAllowance: in.EmployeeMealAllowance,
		OwnerSalary:           rt.Reference.IAS,
		AccountantMonthly:     rt.Company.AccountantMonthly,
	}

	if in.OwnerSalary != nil {
		n.OwnerSalary = *in.OwnerSalary
	}
	if in.AccountantMonthly != nil {
		n.AccountantMonthly = *in.AccountantMonthly
	}
	if in.Perks != nil {
		n.Perks = *in.Perks
	}

	n.MunicipalityBenefit = clamp(in.MunicipalityBenefit, decimal.Zero, maxMunicipalityBenefit)
	n.SSAdjustment = clamp(in.SSAdjustment, rt.Contractor.SSAdjustmentMin, rt.Contractor.SSAdjustmentMax)

	return n
}

// AnnualWorkDays is days per month times months per year
func (n NormalizedInput) AnnualWorkDays() decimal.Decimal {
	return n.WorkDaysPerMonth.Mul(n.MonthsPerYear)
}

// GrossAnnual is the invoiced revenue for the year
func (n NormalizedInput) GrossAnnual() decimal.Decimal {
	return n.DailyRate.Mul(n.AnnualWorkDays())
}

// WithExpenses returns a copy with a different annual business expense level
func (n NormalizedInput) WithExpenses(expenses decimal.Decimal) NormalizedInput {
	n.BusinessExpenses = expenses
	return n
}

// DefaultInput returns a simulation input seeded from the table defaults
func DefaultInput(rt *RateTable) CalculatorInput {
	return CalculatorInput{
		DailyRate:        rt.Defaults.DailyRate,
		WorkDaysPerMonth: rt.Defaults.WorkDaysPerMonth,
		MonthsPerYear:    rt.Defaults.MonthsPerYear,
	}
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
