package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IncomeType is the IRS income category
type IncomeType string

const (
	IncomeCategoryA IncomeType = "A" // dependent work
	IncomeCategoryB IncomeType = "B" // independent work
)

// MaritalStatus selects the household splitting divisor
type MaritalStatus string

const (
	Single  MaritalStatus = "single"
	Married MaritalStatus = "married"
)

// Divisor returns the income splitting quotient for the status
func (m MaritalStatus) Divisor() decimal.Decimal {
	if m == Married {
		return decimal.NewFromInt(2)
	}
	return decimal.NewFromInt(1)
}

// LiquidationInput describes one household's year-end IRS settlement
type LiquidationInput struct {
	AnnualGrossIncome decimal.Decimal `yaml:"annual_gross_income" json:"annual_gross_income"`
	IncomeType        IncomeType      `yaml:"income_type" json:"income_type"`
	MaritalStatus     MaritalStatus   `yaml:"marital_status" json:"marital_status"`
	Dependents        int             `yaml:"dependents" json:"dependents"`
	Expenses          decimal.Decimal `yaml:"expenses" json:"expenses"`
	WithholdingTax    decimal.Decimal `yaml:"withholding_tax" json:"withholding_tax"`
}

// Validate checks the enumerated fields
func (in LiquidationInput) Validate() error {
	switch in.IncomeType {
	case IncomeCategoryA, IncomeCategoryB:
	default:
		return fmt.Errorf("income type must be A or B, got %q", in.IncomeType)
	}
	switch in.MaritalStatus {
	case Single, Married:
	default:
		return fmt.Errorf("marital status must be single or married, got %q", in.MaritalStatus)
	}
	if in.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative")
	}
	return nil
}

// LiquidationResult is the computed year-end settlement. A negative Balance is
// a refund due to the taxpayer.
type LiquidationResult struct {
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	GrossTax      decimal.Decimal `json:"gross_tax"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetTax        decimal.Decimal `json:"net_tax"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	Balance       decimal.Decimal `json:"balance"`
}

// IsRefund reports whether the taxpayer gets money back
func (r LiquidationResult) IsRefund() bool {
	return r.Balance.IsNegative()
}
