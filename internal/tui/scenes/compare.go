package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ptregime/internal/compare"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/tui/tuimsg"
	"github.com/rgehrsitz/ptregime/internal/tui/tuistyles"
)

var keyNextBase = key.NewBinding(key.WithKeys("tab"))

// CompareModel ranks the regimes against a chosen base
type CompareModel struct {
	set  *compare.ComparisonSet
	base int
}

func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
}

// BaseRegime is the regime the others are measured against
func (m *CompareModel) BaseRegime() domain.Regime {
	return domain.AllRegimes[m.base]
}

func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keyNextBase) {
		m.base = (m.base + 1) % len(domain.AllRegimes)
		r := m.BaseRegime()
		return m, func() tea.Msg { return tuimsg.BaseRegimeChangedMsg{Regime: r} }
	}
	return m, nil
}

func (m *CompareModel) View() string {
	if m.set == nil {
		return tuistyles.BorderStyle.Render("No comparison yet")
	}

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Regime comparison"))
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render("Base: " + m.set.BaseName))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-4s %-16s %12s %10s %12s %8s %14s", "#", "Regime", "Net / yr", "Net / mo", "Levies", "Rate", "vs base")
	b.WriteString(tuistyles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, r := range m.set.Ranked() {
		diff := "—"
		if r.Name != m.set.BaseName {
			diff = signedCurrency(r.NetDiffFromBase)
		}
		row := fmt.Sprintf("%-4d %-16s %12s %10s %12s %7s%% %14s",
			r.Rank, r.Name,
			tuistyles.FormatCurrency(r.NetAnnual),
			tuistyles.FormatCurrency(r.NetMonthly),
			tuistyles.FormatCurrency(r.TotalLevies),
			r.EffectiveTaxRate.Mul(decimal.NewFromInt(100)).StringFixed(1),
			diff)
		if r.Name == m.set.Winner {
			row = tuistyles.TableHighlightStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if len(m.set.Recommendations) > 0 {
		b.WriteString("\n")
		for _, rec := range m.set.Recommendations {
			b.WriteString("• " + rec + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render("tab change base regime"))
	return b.String()
}

func signedCurrency(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + tuistyles.FormatCurrency(d)
	}
	return tuistyles.FormatCurrency(d)
}
