package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/domain"
)

// CompareEngine orchestrates regime and scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures regime comparison
type CompareOptions struct {
	BaseRegime domain.Regime // defaults to contractor
	Source     string        // free-form label shown by formatters
}

// Compare runs every regime on the same input and measures the others
// against the base regime
func (ce *CompareEngine) Compare(
	ctx context.Context,
	in domain.CalculatorInput,
	options CompareOptions,
) (*ComparisonSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseRegime := options.BaseRegime
	if baseRegime == "" {
		baseRegime = domain.RegimeContractor
	}
	if _, err := domain.ParseRegime(string(baseRegime)); err != nil {
		return nil, fmt.Errorf("base regime: %w", err)
	}

	set := ce.CalcEngine.All(in)
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseRegime.DisplayName(), set.Get(baseRegime))

	alternatives := []ComparisonResult{}
	for _, r := range domain.AllRegimes {
		if r == baseRegime {
			continue
		}
		alt := ce.MetricsCalculator.CalculateMetrics(r.DisplayName(), set.Get(r))
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	return finish(&ComparisonSet{
		BaseName:           baseResult.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		Source:             options.Source,
	}), nil
}

// CompareScenarios compares named scenarios, each under its own regime,
// against the scenario called baseName
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	scenarios []domain.Scenario,
	baseName string,
	alternativeNames []string,
) (*ComparisonSet, error) {
	byName := make(map[string]domain.Scenario, len(scenarios))
	for _, s := range scenarios {
		byName[s.Name] = s
	}

	base, ok := byName[baseName]
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found", baseName)
	}
	baseResult := ce.run(base)

	if len(alternativeNames) == 0 {
		for _, s := range scenarios {
			if s.Name != baseName {
				alternativeNames = append(alternativeNames, s.Name)
			}
		}
	}

	alternatives := []ComparisonResult{}
	for _, name := range alternativeNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s not found", name)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(ce.run(s), baseResult))
	}

	return finish(&ComparisonSet{
		BaseName:           baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}), nil
}

func (ce *CompareEngine) run(s domain.Scenario) ComparisonResult {
	b := ce.CalcEngine.Calculate(s.RegimeOrDefault(), s.Input)
	result := ce.MetricsCalculator.CalculateMetrics(s.Name, b)
	result.Description = s.Description
	return result
}

func finish(compSet *ComparisonSet) *ComparisonSet {
	compSet.Winner = assignRanks(compSet)
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}
