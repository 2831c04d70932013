package config

import (
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParser_LoadFromFile(t *testing.T) {
	parser := NewInputParser()
	file, err := parser.LoadFromFile(filepath.Join("testdata", "scenarios.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2025, file.FiscalYear)
	require.Len(t, file.Scenarios, 3)

	current, ok := file.Find("current")
	require.True(t, ok)
	assert.Equal(t, domain.RegimeContractor, current.RegimeOrDefault())
	assert.True(t, current.Input.DailyRate.Equal(decimal.NewFromInt(350)))

	company, ok := file.Find("company")
	require.True(t, ok)
	assert.Equal(t, domain.RegimeCompany, company.Regime)
	require.NotNil(t, company.Input.OwnerSalary)
	assert.True(t, company.Input.OwnerSalary.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, company.Input.Perks)
	assert.True(t, company.Input.Perks.KmPerMonth.Equal(decimal.NewFromInt(500)))
	assert.Nil(t, company.Input.AccountantMonthly)

	_, ok = file.Find("nope")
	assert.False(t, ok)
}

func TestInputParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{"empty", "scenarios: []", "no scenarios"},
		{"missing name", "scenarios:\n  - input: {daily_rate: \"100\"}", "name is required"},
		{"duplicate", "scenarios:\n  - name: a\n  - name: a", "duplicate name"},
		{"bad regime", "scenarios:\n  - name: a\n    regime: freelance", "unknown regime"},
		{"negative rate", "scenarios:\n  - name: a\n    input: {daily_rate: \"-1\"}", "daily rate"},
		{"too many months", "scenarios:\n  - name: a\n    input: {months_per_year: \"13\"}", "months per year"},
		{"negative perks", "scenarios:\n  - name: a\n    input: {perks: {km_per_month: \"-5\"}}", "perks"},
		{"malformed", "scenarios: {", "failed to parse YAML"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestInputParser_ValidateInput(t *testing.T) {
	parser := NewInputParser()
	in := domain.DefaultInput(domain.Portugal2025())
	assert.NoError(t, parser.ValidateInput(&in))

	in.MunicipalityBenefit = decimal.NewFromInt(6)
	assert.ErrorContains(t, parser.ValidateInput(&in), "municipality")

	in = domain.DefaultInput(domain.Portugal2025())
	neg := decimal.NewFromInt(-10)
	in.AccountantMonthly = &neg
	assert.ErrorContains(t, parser.ValidateInput(&in), "accountant")
}
