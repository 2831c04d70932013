package domain

import (
	"github.com/shopspring/decimal"
)

// RateTable contains every fiscal constant used by the calculators for one year.
// A table is built once (Portugal2025 or a YAML file) and treated as read-only.
type RateTable struct {
	Metadata     RateMetadata     `yaml:"metadata" json:"metadata"`
	Contractor   ContractorRules  `yaml:"contractor" json:"contractor"`
	Reference    ReferenceValues  `yaml:"reference" json:"reference"`
	Company      CompanyRules     `yaml:"company" json:"company"`
	Employee     EmployeeRules    `yaml:"employee" json:"employee"`
	IRS          IRSRules         `yaml:"irs" json:"irs"`
	FiscalLimits FiscalLimits     `yaml:"fiscal_limits" json:"fiscal_limits"`
	Hardware     HardwareRules    `yaml:"hardware" json:"hardware"`
	Breakeven    BreakevenRules   `yaml:"breakeven" json:"breakeven"`
	Defaults     SimulationValues `yaml:"defaults" json:"defaults"`
}

// RateMetadata describes the origin of a rate table
type RateMetadata struct {
	FiscalYear  int    `yaml:"fiscal_year" json:"fiscal_year"`
	Description string `yaml:"description" json:"description"`
	Source      string `yaml:"source" json:"source"`
}

// ContractorRules holds the simplified-regime coefficients for independent workers
type ContractorRules struct {
	ServiceCoefficient decimal.Decimal `yaml:"service_coefficient" json:"service_coefficient"`
	SSBaseFraction     decimal.Decimal `yaml:"ss_base_fraction" json:"ss_base_fraction"`
	SSRate             decimal.Decimal `yaml:"ss_rate" json:"ss_rate"`
	SSAdjustmentMin    decimal.Decimal `yaml:"ss_adjustment_min" json:"ss_adjustment_min"`
	SSAdjustmentMax    decimal.Decimal `yaml:"ss_adjustment_max" json:"ss_adjustment_max"`
	NHRFlatRate        decimal.Decimal `yaml:"nhr_flat_rate" json:"nhr_flat_rate"`
	PersonalDeduction  decimal.Decimal `yaml:"personal_deduction" json:"personal_deduction"`
}

// ReferenceValues are national reference amounts (IAS, withholding, minimum existence)
type ReferenceValues struct {
	IAS              decimal.Decimal `yaml:"ias" json:"ias"`
	RetentionRate    decimal.Decimal `yaml:"retention_rate" json:"retention_rate"`
	MinimumExistence decimal.Decimal `yaml:"minimum_existence" json:"minimum_existence"`
	SalaryPayments   int             `yaml:"salary_payments" json:"salary_payments"`
}

// CompanyRules holds single-member company contribution, corporate and dividend rates
type CompanyRules struct {
	TSUWorker             decimal.Decimal `yaml:"tsu_worker" json:"tsu_worker"`
	TSUCompany            decimal.Decimal `yaml:"tsu_company" json:"tsu_company"`
	IRCReducedRate        decimal.Decimal `yaml:"irc_reduced_rate" json:"irc_reduced_rate"`
	IRCNormalRate         decimal.Decimal `yaml:"irc_normal_rate" json:"irc_normal_rate"`
	IRCThreshold          decimal.Decimal `yaml:"irc_threshold" json:"irc_threshold"`
	DerramaRate           decimal.Decimal `yaml:"derrama_rate" json:"derrama_rate"`
	DividendTaxRate       decimal.Decimal `yaml:"dividend_tax_rate" json:"dividend_tax_rate"`
	AccountantMonthly     decimal.Decimal `yaml:"accountant_monthly" json:"accountant_monthly"`
	InsuranceAnnual       decimal.Decimal `yaml:"insurance_annual" json:"insurance_annual"`
	MealAllowanceDailyCap decimal.Decimal `yaml:"meal_allowance_daily_cap" json:"meal_allowance_daily_cap"`
	KmAllowanceRate       decimal.Decimal `yaml:"km_allowance_rate" json:"km_allowance_rate"`
}

// EmployeeRules holds Category A (dependent work) deductions
type EmployeeRules struct {
	SpecificDeduction decimal.Decimal `yaml:"specific_deduction" json:"specific_deduction"`
}

// IRSRules contains the progressive personal income tax schedule
type IRSRules struct {
	Brackets           []Bracket       `yaml:"brackets" json:"brackets"`
	DependentDeduction decimal.Decimal `yaml:"dependent_deduction" json:"dependent_deduction"`
}

// Bracket is one step of a progressive schedule. A nil Limit marks the open-ended
// top bracket. Tax inside the bracket is amount*Rate - Deduction.
type Bracket struct {
	Limit     *decimal.Decimal `yaml:"limit" json:"limit"`
	Rate      decimal.Decimal  `yaml:"rate" json:"rate"`
	Deduction decimal.Decimal  `yaml:"deduction" json:"deduction"`
}

// IsUnbounded reports whether the bracket has no upper limit
func (b Bracket) IsUnbounded() bool {
	return b.Limit == nil
}

// FiscalLimits are the revenue ceilings that trigger a change of tax treatment
type FiscalLimits struct {
	VATExemption     decimal.Decimal `yaml:"vat_exemption" json:"vat_exemption"`
	SimplifiedRegime decimal.Decimal `yaml:"simplified_regime" json:"simplified_regime"`
	WarningRatio     decimal.Decimal `yaml:"warning_ratio" json:"warning_ratio"`
}

// HardwareRules drive the equipment purchase comparison
type HardwareRules struct {
	VATRate             decimal.Decimal `yaml:"vat_rate" json:"vat_rate"`
	DepreciationIRCRate decimal.Decimal `yaml:"depreciation_irc_rate" json:"depreciation_irc_rate"`
}

// BreakevenRules configure the expense sweep
type BreakevenRules struct {
	Step            decimal.Decimal `yaml:"step" json:"step"`
	MaxExpenseRatio decimal.Decimal `yaml:"max_expense_ratio" json:"max_expense_ratio"`
}

// SimulationValues are the suggested starting inputs for a new simulation
type SimulationValues struct {
	DailyRate        decimal.Decimal `yaml:"daily_rate" json:"daily_rate"`
	WorkDaysPerMonth decimal.Decimal `yaml:"work_days_per_month" json:"work_days_per_month"`
	MonthsPerYear    decimal.Decimal `yaml:"months_per_year" json:"months_per_year"`
}

// DeriveDeductions returns a copy of brackets whose fixed deductions make the
// schedule continuous at every boundary. The first bracket keeps its deduction.
func DeriveDeductions(brackets []Bracket) []Bracket {
	out := make([]Bracket, len(brackets))
	copy(out, brackets)
	for i := 1; i < len(out); i++ {
		prev := out[i-1]
		if prev.Limit == nil {
			break
		}
		step := out[i].Rate.Sub(prev.Rate)
		out[i].Deduction = prev.Deduction.Add(prev.Limit.Mul(step))
	}
	return out
}

// BoundaryGap returns the tax difference at the upper limit of bracket i when
// computed with bracket i+1 instead of bracket i. Zero means continuous.
func BoundaryGap(brackets []Bracket, i int) decimal.Decimal {
	if i < 0 || i+1 >= len(brackets) || brackets[i].Limit == nil {
		return decimal.Zero
	}
	limit := *brackets[i].Limit
	below := limit.Mul(brackets[i].Rate).Sub(brackets[i].Deduction)
	above := limit.Mul(brackets[i+1].Rate).Sub(brackets[i+1].Deduction)
	return above.Sub(below)
}
