package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing regimes or scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s\n", compSet.BaseName))
	if compSet.Source != "" {
		sb.WriteString(fmt.Sprintf("Source: %s\n", compSet.Source))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-4s %-*s %*s %*s %*s %*s\n",
		"#",
		nameWidth, "Name",
		numWidth, "Gross",
		numWidth, "SS + IRS",
		numWidth, "Net / Year",
		numWidth, "Net / Month"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, r := range compSet.Ranked() {
		sb.WriteString(tf.formatRow(&r, r.Name == compSet.BaseName, nameWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Name))
			sb.WriteString(fmt.Sprintf("  Net Income:   %s€%s (%s%%)\n",
				tf.deltaSymbol(alt.NetDiffFromBase),
				tf.formatDecimal(alt.NetDiffFromBase.Abs()),
				alt.NetPctFromBase.StringFixed(1)))

			if !alt.LeviesDiffFromBase.IsZero() {
				// lower levies are better
				sb.WriteString(fmt.Sprintf("  Tax Impact:   %s€%s\n",
					tf.deltaSymbol(alt.LeviesDiffFromBase.Neg()),
					tf.formatDecimal(alt.LeviesDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if compSet.Winner != "" {
		sb.WriteString(fmt.Sprintf("Winner: %s\n", compSet.Winner))
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, isBase bool, nameWidth, numWidth int) string {
	name := result.Name
	if isBase {
		name += " (base)"
	}
	return fmt.Sprintf("%-4d %-*s %*s %*s %*s %*s\n",
		result.Rank,
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "€"+result.GrossAnnual.StringFixed(2),
		numWidth, "€"+result.TotalLevies.StringFixed(2),
		numWidth, "€"+result.NetAnnual.StringFixed(2),
		numWidth, "€"+result.NetMonthly.StringFixed(2))
}

// formatDecimal abbreviates large amounts (K, M)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of the comparison
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.NetDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+€%s", tf.formatDecimal(alt.NetDiffFromBase))
		} else if alt.NetDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-€%s", tf.formatDecimal(alt.NetDiffFromBase.Abs()))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name, change))
	}

	return sb.String()
}
