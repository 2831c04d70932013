package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter prints a compact one-line-per-regime summary
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "REGIME SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "Daily Rate: %s  Fiscal Year: %d\n", FormatCurrency(r.Input.DailyRate), r.FiscalYear)

	if len(r.Results) == 0 {
		fmt.Fprintln(&buf, "No results.")
		return buf.Bytes(), nil
	}
	for _, b := range r.Results {
		fmt.Fprintf(&buf, "%-16s net %s/yr  %s/mo  rate %s\n",
			b.Regime.DisplayName(),
			FormatCurrency(b.NetAnnual),
			FormatCurrency(b.NetMonthly),
			FormatPercentage(b.EffectiveTaxRate.Mul(hundred)))
	}

	best, _ := r.Best()
	fmt.Fprintf(&buf, "Recommended: %s", best.Regime.DisplayName())
	for _, b := range r.Results {
		if b.Regime == best.Regime {
			continue
		}
		fmt.Fprintf(&buf, " (Δ %s vs %s)", FormatCurrency(best.NetAnnual.Sub(b.NetAnnual)), b.Regime.DisplayName())
	}
	fmt.Fprintln(&buf)
	return buf.Bytes(), nil
}
