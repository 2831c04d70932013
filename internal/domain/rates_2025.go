package domain

import (
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func limit(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// Portugal2025 returns the built-in rate table for the 2025 fiscal year.
// Every call returns a fresh value so callers can never share mutations.
//
// Bracket deductions are the exact continuity values for the published limits
// and rates (see DeriveDeductions); the official table rounds a few of them.
func Portugal2025() *RateTable {
	return &RateTable{
		Metadata: RateMetadata{
			FiscalYear:  2025,
			Description: "Portugal 2025 (Orçamento do Estado 2025)",
			Source:      "built-in",
		},
		Contractor: ContractorRules{
			ServiceCoefficient: dec("0.75"),
			SSBaseFraction:     dec("0.70"),
			SSRate:             dec("0.214"),
			SSAdjustmentMin:    dec("-0.25"),
			SSAdjustmentMax:    dec("0.25"),
			NHRFlatRate:        dec("0.20"),
			PersonalDeduction:  dec("1300"),
		},
		Reference: ReferenceValues{
			IAS:              dec("522.50"),
			RetentionRate:    dec("0.23"),
			MinimumExistence: dec("12180"),
			SalaryPayments:   14,
		},
		Company: CompanyRules{
			TSUWorker:             dec("0.11"),
			TSUCompany:            dec("0.2375"),
			IRCReducedRate:        dec("0.16"),
			IRCNormalRate:         dec("0.20"),
			IRCThreshold:          dec("50000"),
			DerramaRate:           dec("0.015"),
			DividendTaxRate:       dec("0.28"),
			AccountantMonthly:     dec("150"),
			InsuranceAnnual:       dec("200"),
			MealAllowanceDailyCap: dec("9.60"),
			KmAllowanceRate:       dec("0.40"),
		},
		Employee: EmployeeRules{
			SpecificDeduction: dec("4462.15"),
		},
		IRS: IRSRules{
			Brackets: []Bracket{
				{Limit: limit("8059"), Rate: dec("0.125"), Deduction: dec("0")},
				{Limit: limit("12160"), Rate: dec("0.16"), Deduction: dec("282.065")},
				{Limit: limit("17233"), Rate: dec("0.22"), Deduction: dec("1011.665")},
				{Limit: limit("22306"), Rate: dec("0.25"), Deduction: dec("1528.655")},
				{Limit: limit("28400"), Rate: dec("0.32"), Deduction: dec("3090.075")},
				{Limit: limit("41629"), Rate: dec("0.355"), Deduction: dec("4084.075")},
				{Limit: limit("44987"), Rate: dec("0.435"), Deduction: dec("7414.395")},
				{Limit: limit("83696"), Rate: dec("0.45"), Deduction: dec("8089.2")},
				{Limit: nil, Rate: dec("0.48"), Deduction: dec("10600.08")},
			},
			DependentDeduction: dec("600"),
		},
		FiscalLimits: FiscalLimits{
			VATExemption:     dec("15000"),
			SimplifiedRegime: dec("200000"),
			WarningRatio:     dec("0.90"),
		},
		Hardware: HardwareRules{
			VATRate:             dec("0.23"),
			DepreciationIRCRate: dec("0.17"),
		},
		Breakeven: BreakevenRules{
			Step:            dec("2500"),
			MaxExpenseRatio: dec("0.60"),
		},
		Defaults: SimulationValues{
			DailyRate:        dec("350"),
			WorkDaysPerMonth: dec("21"),
			MonthsPerYear:    dec("11"),
		},
	}
}
