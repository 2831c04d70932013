package calculation

import (
	"testing"

	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculateAnnualLiquidation(t *testing.T) {
	rt := domain.Portugal2025()

	tests := []struct {
		name       string
		input      domain.LiquidationInput
		taxable    string
		grossTax   string
		deductions string
		netTax     string
		balance    string
		refund     bool
	}{
		{
			name: "single category A owes balance",
			input: domain.LiquidationInput{
				AnnualGrossIncome: d("30000"),
				IncomeType:        domain.IncomeCategoryA,
				MaritalStatus:     domain.Single,
				WithholdingTax:    d("5000"),
			},
			taxable:    "25537.85",
			grossTax:   "5082.037",
			deductions: "0",
			netTax:     "5082.037",
			balance:    "82.037",
		},
		{
			name: "married category B with dependents gets refund",
			input: domain.LiquidationInput{
				AnnualGrossIncome: d("60000"),
				IncomeType:        domain.IncomeCategoryB,
				MaritalStatus:     domain.Married,
				Dependents:        2,
				Expenses:          d("500"),
				WithholdingTax:    d("10000"),
			},
			taxable:    "45000",
			grossTax:   "8219.85",
			deductions: "1700",
			netTax:     "6519.85",
			balance:    "-3480.15",
			refund:     true,
		},
		{
			name: "income below specific deduction",
			input: domain.LiquidationInput{
				AnnualGrossIncome: d("3000"),
				IncomeType:        domain.IncomeCategoryA,
				MaritalStatus:     domain.Single,
				WithholdingTax:    d("100"),
			},
			taxable:    "0",
			grossTax:   "0",
			deductions: "0",
			netTax:     "0",
			balance:    "-100",
			refund:     true,
		},
		{
			name: "deductions exceed coleta",
			input: domain.LiquidationInput{
				AnnualGrossIncome: d("12000"),
				IncomeType:        domain.IncomeCategoryB,
				MaritalStatus:     domain.Single,
				Dependents:        3,
			},
			taxable:    "9000",
			grossTax:   "1157.935",
			deductions: "1800",
			netTax:     "0",
			balance:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateAnnualLiquidation(tt.input, rt)

			assertDecimal(t, tt.taxable, res.TaxableIncome, "taxable")
			assertDecimal(t, tt.grossTax, res.GrossTax, "gross tax")
			assertDecimal(t, tt.deductions, res.Deductions, "deductions")
			assertDecimal(t, tt.netTax, res.NetTax, "net tax")
			assertDecimal(t, tt.balance, res.Balance, "balance")
			assert.Equal(t, tt.refund, res.IsRefund())
		})
	}
}

func TestCalculateAnnualLiquidation_ZeroIncome(t *testing.T) {
	res := CalculateAnnualLiquidation(domain.LiquidationInput{
		IncomeType:    domain.IncomeCategoryA,
		MaritalStatus: domain.Single,
	}, domain.Portugal2025())

	assert.True(t, res.EffectiveRate.IsZero())
	assert.True(t, res.NetTax.IsZero())
	assert.True(t, res.Balance.IsZero())
}

func TestCalculateAnnualLiquidation_MarriedSplitLowersTax(t *testing.T) {
	rt := domain.Portugal2025()
	in := domain.LiquidationInput{
		AnnualGrossIncome: d("80000"),
		IncomeType:        domain.IncomeCategoryA,
		MaritalStatus:     domain.Single,
	}
	single := CalculateAnnualLiquidation(in, rt)
	in.MaritalStatus = domain.Married
	married := CalculateAnnualLiquidation(in, rt)

	assert.True(t, married.NetTax.LessThan(single.NetTax))
	assert.True(t, married.TaxableIncome.Equal(single.TaxableIncome))
}
