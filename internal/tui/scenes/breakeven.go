package scenes

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ptregime/internal/breakeven"
	"github.com/rgehrsitz/ptregime/internal/tui/components"
	"github.com/rgehrsitz/ptregime/internal/tui/tuistyles"
)

// BreakevenModel shows where the company starts to pay off
type BreakevenModel struct {
	result  *breakeven.Result
	running bool
	spinner *components.Spinner
}

func NewBreakevenModel() *BreakevenModel {
	return &BreakevenModel{spinner: components.NewSpinner("Sweeping business expenses...")}
}

func (m *BreakevenModel) SetRunning() {
	m.running = true
}

func (m *BreakevenModel) Running() bool { return m.running }

func (m *BreakevenModel) SetResult(r breakeven.Result) {
	m.result = &r
	m.running = false
}

// Tick advances the spinner
func (m *BreakevenModel) Tick() {
	m.spinner.Next()
}

func (m *BreakevenModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Breakeven: Recibos Verdes vs Unipessoal"))
	b.WriteString("\n\n")

	if m.running {
		b.WriteString(m.spinner.Render())
		b.WriteString("\n")
	}
	if m.result == nil {
		return b.String()
	}

	r := m.result
	fmt.Fprintf(&b, "Gross income:   %s\n", tuistyles.FormatCurrency(r.GrossIncome))
	fmt.Fprintf(&b, "Expenses swept: €0 to %s in steps of %s\n",
		tuistyles.FormatCurrency(r.MaxExpense), tuistyles.FormatCurrency(r.Step))
	b.WriteString("\n")
	b.WriteString(Summary(*r))
	b.WriteString("\n\n")

	if len(r.Points) > 1 {
		contractor := make([]float64, len(r.Points))
		company := make([]float64, len(r.Points))
		for i, p := range r.Points {
			contractor[i] = p.ContractorNet.InexactFloat64()
			company[i] = p.CompanyNet.InexactFloat64()
		}
		chart := components.NewASCIIChart("Net income by annual expenses").
			AddSeries("Recibos Verdes", contractor, tuistyles.ColorSecondary).
			AddSeries("Unipessoal", company, tuistyles.ColorPrimary).
			WithXLabel("€0 → " + tuistyles.FormatCurrency(r.Points[len(r.Points)-1].Expense))
		b.WriteString(chart.Render())
	}
	return b.String()
}

// Summary describes a breakeven result in one sentence
func Summary(r breakeven.Result) string {
	switch {
	case !r.GrossIncome.IsPositive():
		return tuistyles.InfoStyle.Render("No income to analyse.")
	case r.Found && r.CompanyBetterAtZero:
		return tuistyles.MetricNegativeStyle.Render(fmt.Sprintf(
			"Unipessoal wins until expenses reach %s, then Recibos Verdes is better.", tuistyles.FormatCurrency(r.Expense)))
	case r.Found:
		return tuistyles.MetricPositiveStyle.Render(fmt.Sprintf(
			"Unipessoal becomes better once expenses pass %s per year.", tuistyles.FormatCurrency(r.Expense)))
	case r.CompanyBetterAtZero:
		return tuistyles.MetricPositiveStyle.Render("Unipessoal is better at every expense level in range.")
	default:
		return tuistyles.MetricNegativeStyle.Render("Recibos Verdes is better at every expense level in range.")
	}
}
