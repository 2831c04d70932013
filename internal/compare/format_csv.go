package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Name",
		"Type",
		"Regime",
		"Rank",
		"Gross Annual",
		"Social Security",
		"IRS",
		"Net Annual",
		"Net Monthly",
		"Effective Rate",
		"Net Diff from Base",
		"Net % Change",
		"Levies Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		result.Name,
		kind,
		string(result.Regime),
		strconv.Itoa(result.Rank),
		result.GrossAnnual.StringFixed(2),
		result.Breakdown.SS.StringFixed(2),
		result.Breakdown.IRS.StringFixed(2),
		result.NetAnnual.StringFixed(2),
		result.NetMonthly.StringFixed(2),
		result.EffectiveTaxRate.StringFixed(4),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
		result.LeviesDiffFromBase.StringFixed(2),
	}
}
