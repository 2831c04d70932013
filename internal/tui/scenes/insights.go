package scenes

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ptregime/internal/calendar"
	"github.com/rgehrsitz/ptregime/internal/insights"
	"github.com/rgehrsitz/ptregime/internal/tui/components"
	"github.com/rgehrsitz/ptregime/internal/tui/tuistyles"
)

// InsightsData is everything the insights scene shows for one input
type InsightsData struct {
	Thresholds []insights.ThresholdAlert
	SafeSpend  []insights.SafeToSpend
	Expenses   insights.ExpenseAdvice
	Events     []calendar.Event
}

// InsightsModel shows fiscal thresholds, monthly reserves and due dates
type InsightsModel struct {
	data *InsightsData
}

func NewInsightsModel() *InsightsModel {
	return &InsightsModel{}
}

func (m *InsightsModel) SetData(d InsightsData) {
	m.data = &d
}

var thresholdLabels = map[string]string{
	insights.ThresholdVATExemption:     "VAT exemption",
	insights.ThresholdSimplifiedRegime: "Simplified regime",
}

func (m *InsightsModel) View() string {
	if m.data == nil {
		return tuistyles.BorderStyle.Render("No data yet")
	}
	d := m.data

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Fiscal thresholds"))
	b.WriteString("\n")
	for _, a := range d.Thresholds {
		label := thresholdLabels[a.Name]
		if label == "" {
			label = a.Name
		}
		bar := components.NewUsageBar(label, a.Usage.InexactFloat64(), string(a.Status)).
			WithDetail(fmt.Sprintf("limit %s, %s left", tuistyles.FormatCurrency(a.Limit), tuistyles.FormatCurrency(a.Remaining())))
		b.WriteString(bar.Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tuistyles.TitleStyle.Render("Safe to spend each month"))
	b.WriteString("\n")
	for _, s := range d.SafeSpend {
		vat := ""
		if s.IncludesVAT {
			vat = " (incl. VAT)"
		}
		fmt.Fprintf(&b, "  %-16s in %s%s, yours %s, set aside %s\n",
			s.Regime.DisplayName(),
			tuistyles.FormatCurrency(s.MonthlyCashflow), vat,
			tuistyles.FormatCurrency(s.MonthlyNet),
			tuistyles.FormatCurrency(s.Reserved))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  Expenses are %s%% of revenue.", d.Expenses.ExpenseRatio.StringFixed(1))
	if d.Expenses.ConsiderOrganizedRegime {
		b.WriteString(" " + tuistyles.InfoStyle.Render("Organized accounting may beat the simplified regime."))
	}
	b.WriteString("\n")

	if len(d.Events) > 0 {
		b.WriteString("\n")
		b.WriteString(tuistyles.TitleStyle.Render("This month"))
		b.WriteString("\n")
		for _, e := range d.Events {
			fmt.Fprintf(&b, "  %s  %-28s %s\n", e.Date.Format("Jan 02"), e.Title, components.StatusText(string(e.Status)))
		}
	}
	return b.String()
}
