package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func scenarioInput() domain.CalculatorInput {
	in := domain.DefaultInput(domain.Portugal2025())
	in.EmployeeGrossSalary = d("2500")
	return in
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{Name: "base", NetAnnual: d("50000"), TotalLevies: d("30000")}
	alt := ComparisonResult{Name: "alt", NetAnnual: d("45000"), TotalLevies: d("31000")}

	got := calc.CalculateComparison(alt, base)

	if !got.NetDiffFromBase.Equal(d("-5000")) {
		t.Errorf("Expected net diff -5000, got %s", got.NetDiffFromBase)
	}
	if !got.NetPctFromBase.Equal(d("-10")) {
		t.Errorf("Expected -10%%, got %s", got.NetPctFromBase)
	}
	if !got.LeviesDiffFromBase.Equal(d("1000")) {
		t.Errorf("Expected levies diff 1000, got %s", got.LeviesDiffFromBase)
	}

	zeroBase := ComparisonResult{NetAnnual: decimal.Zero}
	if got := calc.CalculateComparison(alt, zeroBase); !got.NetPctFromBase.IsZero() {
		t.Errorf("Expected zero percentage against a zero base, got %s", got.NetPctFromBase)
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine2025())

	set, err := ce.Compare(context.Background(), scenarioInput(), CompareOptions{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if set.BaseResult.Regime != domain.RegimeContractor {
		t.Errorf("Expected contractor base, got %s", set.BaseResult.Regime)
	}
	if len(set.AlternativeResults) != 2 {
		t.Fatalf("Expected 2 alternatives, got %d", len(set.AlternativeResults))
	}
	if set.Winner != "Recibos Verdes" {
		t.Errorf("Expected Recibos Verdes to win, got %s", set.Winner)
	}

	company := set.AlternativeResults[0]
	if company.Regime != domain.RegimeCompany {
		t.Fatalf("Expected company first among alternatives, got %s", company.Regime)
	}
	if !company.NetDiffFromBase.Equal(d("-3440.992025")) {
		t.Errorf("Expected company net diff -3440.992025, got %s", company.NetDiffFromBase)
	}

	ranks := map[domain.Regime]int{}
	for _, r := range set.All() {
		ranks[r.Regime] = r.Rank
	}
	if ranks[domain.RegimeContractor] != 1 || ranks[domain.RegimeCompany] != 2 || ranks[domain.RegimeEmployee] != 3 {
		t.Errorf("Unexpected ranks: %v", ranks)
	}

	wantRecs := []string{
		"Best Income: Recibos Verdes remains the highest net option",
		"Lowest Taxes: Employee pays €20702 less in social security and IRS",
	}
	if len(set.Recommendations) != len(wantRecs) {
		t.Fatalf("Expected %d recommendations, got %v", len(wantRecs), set.Recommendations)
	}
	for i, want := range wantRecs {
		if set.Recommendations[i] != want {
			t.Errorf("Recommendation %d: expected %q, got %q", i, want, set.Recommendations[i])
		}
	}
}

func TestCompareEngine_Compare_CompanyBase(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine2025())

	set, err := ce.Compare(context.Background(), scenarioInput(), CompareOptions{BaseRegime: domain.RegimeCompany})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if set.BaseName != "Unipessoal" {
		t.Errorf("Expected Unipessoal base, got %s", set.BaseName)
	}
	if !strings.HasPrefix(set.Recommendations[0], "Best Income: Recibos Verdes leaves €3441 more") {
		t.Errorf("Unexpected first recommendation %q", set.Recommendations[0])
	}
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine2025())

	if _, err := ce.Compare(context.Background(), scenarioInput(), CompareOptions{BaseRegime: "freelance"}); err == nil {
		t.Error("Expected error for unknown base regime")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ce.Compare(ctx, scenarioInput(), CompareOptions{}); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	ce := NewCompareEngine(calculation.NewCalculationEngine2025())

	low := scenarioInput()
	high := scenarioInput()
	high.DailyRate = d("450")

	scenarios := []domain.Scenario{
		{Name: "current", Input: low},
		{Name: "raise", Description: "Rate up to 450", Input: high},
		{Name: "hired", Regime: domain.RegimeEmployee, Input: low},
	}

	set, err := ce.CompareScenarios(context.Background(), scenarios, "current", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(set.AlternativeResults) != 2 {
		t.Fatalf("Expected every other scenario as an alternative, got %d", len(set.AlternativeResults))
	}
	if set.Winner != "raise" {
		t.Errorf("Expected raise to win, got %s", set.Winner)
	}
	if set.AlternativeResults[0].Description != "Rate up to 450" {
		t.Errorf("Expected description carried over, got %q", set.AlternativeResults[0].Description)
	}
	if set.AlternativeResults[1].Regime != domain.RegimeEmployee {
		t.Errorf("Expected scenario regime honoured, got %s", set.AlternativeResults[1].Regime)
	}
	if !set.AlternativeResults[0].NetDiffFromBase.IsPositive() {
		t.Error("Expected a higher rate to raise net income")
	}

	if _, err := ce.CompareScenarios(context.Background(), scenarios, "missing", nil); err == nil {
		t.Error("Expected error for missing base scenario")
	}
	if _, err := ce.CompareScenarios(context.Background(), scenarios, "current", []string{"nope"}); err == nil {
		t.Error("Expected error for missing alternative scenario")
	}
}

func TestGenerateRecommendations_CostlyCompany(t *testing.T) {
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{Name: "Recibos Verdes", Regime: domain.RegimeContractor,
			NetAnnual: d("30000"), TotalLevies: d("10000")},
		AlternativeResults: []ComparisonResult{{
			Name:        "Unipessoal",
			Regime:      domain.RegimeCompany,
			NetAnnual:   d("29000"),
			TotalLevies: d("8000"),
			Breakdown: domain.TaxBreakdown{
				OperatingCosts: d("3000"),
				Company:        &domain.CompanyDetail{},
			},
		}},
	}

	recs := GenerateRecommendations(compSet)
	if len(recs) != 3 {
		t.Fatalf("Expected 3 recommendations, got %v", recs)
	}
	if !strings.Contains(recs[2], "€3000 of running costs") {
		t.Errorf("Expected operating cost warning, got %q", recs[2])
	}

	if got := GenerateRecommendations(&ComparisonSet{}); len(got) != 0 {
		t.Errorf("Expected no recommendations for an empty set, got %v", got)
	}
}
