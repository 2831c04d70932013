package output

import (
	"bytes"
	"encoding/csv"
)

// CSVSummarizer writes one row per regime
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "GrossAnnual", "SocialSecurity", "IRS", "OperatingCosts", "UntaxedAllowances", "NetAnnual", "NetMonthly", "EffectiveTaxRate"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, b := range r.Results {
		row := []string{
			string(b.Regime),
			b.GrossAnnual.StringFixed(2),
			b.SS.StringFixed(2),
			b.IRS.StringFixed(2),
			b.OperatingCosts.StringFixed(2),
			b.UntaxedAllowances.StringFixed(2),
			b.NetAnnual.StringFixed(2),
			b.NetMonthly.StringFixed(2),
			b.EffectiveTaxRate.StringFixed(4),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
