package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one regime or scenario with its headline metrics
type ComparisonResult struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Regime      domain.Regime       `json:"regime"`
	Breakdown   domain.TaxBreakdown `json:"breakdown"`

	// Key Metrics
	GrossAnnual      decimal.Decimal `json:"gross_annual"`
	NetAnnual        decimal.Decimal `json:"net_annual"`
	NetMonthly       decimal.Decimal `json:"net_monthly"`
	TotalLevies      decimal.Decimal `json:"total_levies"` // SS + IRS
	EffectiveTaxRate decimal.Decimal `json:"effective_tax_rate"`
	Rank             int             `json:"rank"`

	// Comparison to Base
	NetDiffFromBase    decimal.Decimal `json:"net_diff_from_base"`
	NetPctFromBase     decimal.Decimal `json:"net_pct_from_base"`
	LeviesDiffFromBase decimal.Decimal `json:"levies_diff_from_base"`
}

// ComparisonSet is a base result plus the alternatives measured against it
type ComparisonSet struct {
	BaseName           string             `json:"base_name"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Winner             string             `json:"winner"`
	Recommendations    []string           `json:"recommendations"`
	Source             string             `json:"source,omitempty"`
}

// All returns the base followed by the alternatives
func (cs *ComparisonSet) All() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// Ranked returns every result ordered by rank
func (cs *ComparisonSet) Ranked() []ComparisonResult {
	all := cs.All()
	sort.SliceStable(all, func(i, j int) bool { return all[i].Rank < all[j].Rank })
	return all
}

// MetricsCalculator extracts comparison metrics from breakdowns
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the headline metrics of a breakdown
func (mc *MetricsCalculator) CalculateMetrics(name string, b domain.TaxBreakdown) ComparisonResult {
	return ComparisonResult{
		Name:             name,
		Regime:           b.Regime,
		Breakdown:        b,
		GrossAnnual:      b.GrossAnnual,
		NetAnnual:        b.NetAnnual,
		NetMonthly:       b.NetMonthly,
		TotalLevies:      b.TotalLevies(),
		EffectiveTaxRate: b.EffectiveTaxRate,
	}
}

// CalculateComparison fills the deltas of result against base
func (mc *MetricsCalculator) CalculateComparison(result, base ComparisonResult) ComparisonResult {
	result.NetDiffFromBase = result.NetAnnual.Sub(base.NetAnnual)
	result.NetPctFromBase = domain.SafeRatio(result.NetDiffFromBase, base.NetAnnual.Abs()).
		Mul(decimal.NewFromInt(100))
	result.LeviesDiffFromBase = result.TotalLevies.Sub(base.TotalLevies)
	return result
}

// assignRanks numbers results by net annual, highest first. Ties keep the
// order in which results were given. Returns the name of the winner.
func assignRanks(cs *ComparisonSet) string {
	type ref struct {
		name string
		net  decimal.Decimal
		rank *int
	}
	refs := make([]ref, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		refs = append(refs, ref{cs.BaseResult.Name, cs.BaseResult.NetAnnual, &cs.BaseResult.Rank})
	}
	for i := range cs.AlternativeResults {
		alt := &cs.AlternativeResults[i]
		refs = append(refs, ref{alt.Name, alt.NetAnnual, &alt.Rank})
	}
	if len(refs) == 0 {
		return ""
	}
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].net.GreaterThan(refs[j].net) })
	for i, r := range refs {
		*r.rank = i + 1
	}
	return refs[0].name
}

// GenerateRecommendations creates recommendations from a ranked comparison set
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Best net income
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.NetAnnual.GreaterThan(best.NetAnnual) {
			best = alt
		}
	}
	if best != base {
		diff := best.NetAnnual.Sub(base.NetAnnual)
		recommendations = append(recommendations,
			"Best Income: "+best.Name+" leaves €"+diff.StringFixed(0)+
				" more per year than "+base.Name)
	} else {
		recommendations = append(recommendations,
			"Best Income: "+base.Name+" remains the highest net option")
	}

	// Lowest tax burden
	lowest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalLevies.LessThan(lowest.TotalLevies) {
			lowest = alt
		}
	}
	if lowest != base {
		savings := base.TotalLevies.Sub(lowest.TotalLevies)
		recommendations = append(recommendations,
			"Lowest Taxes: "+lowest.Name+" pays €"+savings.StringFixed(0)+
				" less in social security and IRS")
	}

	// Company costs can outweigh its tax advantage
	for _, alt := range compSet.AlternativeResults {
		if alt.Regime != domain.RegimeCompany || alt.Breakdown.Company == nil {
			continue
		}
		if alt.TotalLevies.LessThan(base.TotalLevies) && alt.NetAnnual.LessThan(base.NetAnnual) {
			recommendations = append(recommendations,
				fmt.Sprintf("Operating Costs: %s pays less tax but its €%s of running costs leave it behind %s",
					alt.Name, alt.Breakdown.OperatingCosts.StringFixed(0), base.Name))
		}
	}

	return recommendations
}
