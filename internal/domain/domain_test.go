package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortugal2025_BracketsAreContinuous(t *testing.T) {
	rt := Portugal2025()
	brackets := rt.IRS.Brackets

	require.Len(t, brackets, 9)
	assert.True(t, brackets[len(brackets)-1].IsUnbounded(), "last bracket must be open-ended")

	for i := 0; i < len(brackets)-1; i++ {
		gap := BoundaryGap(brackets, i)
		assert.True(t, gap.IsZero(), "bracket %d boundary gap should be zero, got %s", i, gap)
		if i > 0 {
			assert.True(t, brackets[i].Limit.GreaterThan(*brackets[i-1].Limit), "limits must increase")
		}
	}
}

func TestDeriveDeductions_ReproducesBuiltInTable(t *testing.T) {
	rt := Portugal2025()
	stripped := make([]Bracket, len(rt.IRS.Brackets))
	for i, b := range rt.IRS.Brackets {
		stripped[i] = Bracket{Limit: b.Limit, Rate: b.Rate}
	}

	derived := DeriveDeductions(stripped)

	for i := range derived {
		assert.True(t, derived[i].Deduction.Equal(rt.IRS.Brackets[i].Deduction),
			"bracket %d: derived %s, table %s", i, derived[i].Deduction, rt.IRS.Brackets[i].Deduction)
	}
	// input untouched
	assert.True(t, stripped[1].Deduction.IsZero())
}

func TestPortugal2025_ReturnsIndependentCopies(t *testing.T) {
	a := Portugal2025()
	b := Portugal2025()

	a.Contractor.SSRate = decimal.NewFromFloat(0.5)
	*a.IRS.Brackets[0].Limit = decimal.NewFromInt(1)

	assert.Equal(t, "0.214", b.Contractor.SSRate.String())
	assert.Equal(t, "8059", b.IRS.Brackets[0].Limit.String())
}

func TestCalculatorInput_Normalize(t *testing.T) {
	rt := Portugal2025()

	t.Run("defaults", func(t *testing.T) {
		n := CalculatorInput{DailyRate: decimal.NewFromInt(350)}.Normalize(rt)

		assert.True(t, n.OwnerSalary.Equal(rt.Reference.IAS), "owner salary defaults to IAS")
		assert.True(t, n.AccountantMonthly.Equal(decimal.NewFromInt(150)))
		assert.True(t, n.Perks.KmPerMonth.IsZero())
		assert.True(t, n.MunicipalityBenefit.IsZero())
	})

	t.Run("overrides", func(t *testing.T) {
		salary := decimal.NewFromInt(1000)
		accountant := decimal.NewFromInt(90)
		n := CalculatorInput{
			OwnerSalary:       &salary,
			AccountantMonthly: &accountant,
			Perks:             &Perks{KmPerMonth: decimal.NewFromInt(500)},
		}.Normalize(rt)

		assert.True(t, n.OwnerSalary.Equal(salary))
		assert.True(t, n.AccountantMonthly.Equal(accountant))
		assert.True(t, n.Perks.KmPerMonth.Equal(decimal.NewFromInt(500)))
	})

	t.Run("clamps", func(t *testing.T) {
		n := CalculatorInput{
			MunicipalityBenefit: decimal.NewFromInt(9),
			SSAdjustment:        decimal.NewFromFloat(-0.9),
		}.Normalize(rt)

		assert.True(t, n.MunicipalityBenefit.Equal(decimal.NewFromInt(5)))
		assert.True(t, n.SSAdjustment.Equal(decimal.NewFromFloat(-0.25)))
	})
}

func TestNormalizedInput_GrossAnnual(t *testing.T) {
	n := DefaultInput(Portugal2025()).Normalize(Portugal2025())

	assert.Equal(t, "80850", n.GrossAnnual().String())
	assert.Equal(t, "231", n.AnnualWorkDays().String())

	withExp := n.WithExpenses(decimal.NewFromInt(5000))
	assert.True(t, withExp.BusinessExpenses.Equal(decimal.NewFromInt(5000)))
	assert.True(t, n.BusinessExpenses.IsZero(), "original unchanged")
}

func TestTaxBreakdown_FinalizeAndVerify(t *testing.T) {
	b := TaxBreakdown{
		Regime:            RegimeCompany,
		GrossAnnual:       decimal.NewFromInt(1000),
		SS:                decimal.NewFromInt(100),
		IRS:               decimal.NewFromInt(200),
		OperatingCosts:    decimal.NewFromInt(50),
		UntaxedAllowances: decimal.NewFromInt(20),
	}
	b.Finalize()

	assert.Equal(t, "670", b.NetAnnual.String())
	assert.Equal(t, "0.3", b.EffectiveTaxRate.String())
	assert.NoError(t, b.Verify())

	b.NetAnnual = decimal.NewFromInt(700)
	assert.Error(t, b.Verify())
}

func TestTaxBreakdown_ZeroGross(t *testing.T) {
	b := TaxBreakdown{Regime: RegimeContractor}
	b.Finalize()

	assert.True(t, b.EffectiveTaxRate.IsZero())
	assert.True(t, b.NetMonthly.IsZero())
}

func TestParseRegime(t *testing.T) {
	r, err := ParseRegime("company")
	require.NoError(t, err)
	assert.Equal(t, RegimeCompany, r)
	assert.Equal(t, "Unipessoal", r.DisplayName())

	_, err = ParseRegime("freelancer")
	assert.Error(t, err)
}

func TestLiquidationInput_Validate(t *testing.T) {
	valid := LiquidationInput{IncomeType: IncomeCategoryB, MaritalStatus: Married}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "2", Married.Divisor().String())
	assert.Equal(t, "1", Single.Divisor().String())

	assert.Error(t, LiquidationInput{IncomeType: "C", MaritalStatus: Single}.Validate())
	assert.Error(t, LiquidationInput{IncomeType: IncomeCategoryA, MaritalStatus: "widowed"}.Validate())
	assert.Error(t, LiquidationInput{IncomeType: IncomeCategoryA, MaritalStatus: Single, Dependents: -1}.Validate())
}
