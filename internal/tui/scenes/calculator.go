package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/tui/components"
	"github.com/rgehrsitz/ptregime/internal/tui/tuimsg"
	"github.com/rgehrsitz/ptregime/internal/tui/tuistyles"
)

// Slider positions in the calculator
const (
	SliderDailyRate = iota
	SliderWorkDays
	SliderMonths
	SliderExpenses
	SliderOwnerSalary
	SliderEmployeeSalary
)

var (
	keyUp    = key.NewBinding(key.WithKeys("up", "k"))
	keyDown  = key.NewBinding(key.WithKeys("down", "j"))
	keyInc   = key.NewBinding(key.WithKeys("right", "+", "="))
	keyDec   = key.NewBinding(key.WithKeys("left", "-"))
	keyBigUp = key.NewBinding(key.WithKeys("pgup", "shift+right"))
	keyBigDn = key.NewBinding(key.WithKeys("pgdown", "shift+left"))
	keyEnter = key.NewBinding(key.WithKeys("enter"))
	keyEsc   = key.NewBinding(key.WithKeys("esc"))
)

// CalculatorModel edits the simulator input and shows the three regime cards
type CalculatorModel struct {
	base    domain.CalculatorInput
	sliders []*components.ParameterSlider
	focused int

	editing bool
	entry   textinput.Model
	err     string

	results    calculation.RegimeSet
	hasResults bool
	width      int
}

// NewCalculatorModel creates the scene with sliders set from in. Omitted
// owner salary falls back to the rate table's IAS.
func NewCalculatorModel(in domain.CalculatorInput, rt *domain.RateTable) *CalculatorModel {
	ti := textinput.New()
	ti.CharLimit = 10
	ti.Width = 14

	m := &CalculatorModel{
		entry: ti,
		sliders: []*components.ParameterSlider{
			components.NewParameterSlider("Daily rate", 0, 50, 2000, 10).WithUnit(" €").
				WithDescription("Amount invoiced per working day"),
			components.NewParameterSlider("Days per month", 0, 1, 23, 1).WithUnit(" d"),
			components.NewParameterSlider("Months per year", 0, 1, 12, 1).WithUnit(" mo"),
			components.NewParameterSlider("Business expenses", 0, 0, 100000, 500).WithUnit(" €").
				WithDescription("Annual expenses charged to the company"),
			components.NewParameterSlider("Owner salary", 0, 0, 6000, 50).WithUnit(" €").
				WithDescription("Monthly gross salary the company pays its owner"),
			components.NewParameterSlider("Employee salary", 0, 0, 10000, 50).WithUnit(" €").
				WithDescription("Monthly gross salary of the employment offer"),
		},
	}
	m.SetInput(in, rt)
	return m
}

// SetInput moves the sliders to in
func (m *CalculatorModel) SetInput(in domain.CalculatorInput, rt *domain.RateTable) {
	m.base = in
	owner := rt.Reference.IAS
	if in.OwnerSalary != nil {
		owner = *in.OwnerSalary
	}
	m.sliders[SliderDailyRate].SetValue(in.DailyRate.InexactFloat64())
	m.sliders[SliderWorkDays].SetValue(in.WorkDaysPerMonth.InexactFloat64())
	m.sliders[SliderMonths].SetValue(in.MonthsPerYear.InexactFloat64())
	m.sliders[SliderExpenses].SetValue(in.BusinessExpenses.InexactFloat64())
	m.sliders[SliderOwnerSalary].SetValue(owner.InexactFloat64())
	m.sliders[SliderEmployeeSalary].SetValue(in.EmployeeGrossSalary.InexactFloat64())
	m.updateFocus()
}

// Input builds the calculator input from the slider values, keeping every
// field the sliders do not cover
func (m *CalculatorModel) Input() domain.CalculatorInput {
	in := m.base
	in.DailyRate = decimal.NewFromFloat(m.sliders[SliderDailyRate].Value)
	in.WorkDaysPerMonth = decimal.NewFromFloat(m.sliders[SliderWorkDays].Value)
	in.MonthsPerYear = decimal.NewFromFloat(m.sliders[SliderMonths].Value)
	in.BusinessExpenses = decimal.NewFromFloat(m.sliders[SliderExpenses].Value)
	owner := decimal.NewFromFloat(m.sliders[SliderOwnerSalary].Value)
	in.OwnerSalary = &owner
	in.EmployeeGrossSalary = decimal.NewFromFloat(m.sliders[SliderEmployeeSalary].Value)
	return in
}

// Focused returns the index of the focused slider
func (m *CalculatorModel) Focused() int { return m.focused }

// Editing reports whether a value is being typed; global shortcuts are off
func (m *CalculatorModel) Editing() bool { return m.editing }

func (m *CalculatorModel) SetResults(set calculation.RegimeSet) {
	m.results = set
	m.hasResults = true
}

func (m *CalculatorModel) SetSize(width, _ int) {
	m.width = width
}

func (m *CalculatorModel) Update(msg tea.Msg) (*CalculatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.entry, cmd = m.entry.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.editing {
		return m.updateEntry(keyMsg)
	}

	slider := m.sliders[m.focused]
	switch {
	case key.Matches(keyMsg, keyUp):
		if m.focused > 0 {
			m.focused--
		}
		m.updateFocus()
		return m, nil
	case key.Matches(keyMsg, keyDown):
		if m.focused < len(m.sliders)-1 {
			m.focused++
		}
		m.updateFocus()
		return m, nil
	case key.Matches(keyMsg, keyInc):
		slider.Increment()
	case key.Matches(keyMsg, keyDec):
		slider.Decrement()
	case key.Matches(keyMsg, keyBigUp):
		slider.SetValue(slider.Value + 10*slider.Step)
	case key.Matches(keyMsg, keyBigDn):
		slider.SetValue(slider.Value - 10*slider.Step)
	case key.Matches(keyMsg, keyEnter):
		m.editing = true
		m.err = ""
		m.entry.SetValue(strconv.FormatFloat(slider.Value, 'f', -1, 64))
		m.entry.CursorEnd()
		return m, m.entry.Focus()
	default:
		return m, nil
	}
	return m, m.changed()
}

func (m *CalculatorModel) updateEntry(msg tea.KeyMsg) (*CalculatorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keyEsc):
		m.stopEditing()
		return m, nil
	case key.Matches(msg, keyEnter):
		v, err := strconv.ParseFloat(strings.TrimSpace(m.entry.Value()), 64)
		if err != nil {
			m.err = "not a number"
			return m, nil
		}
		m.sliders[m.focused].SetValue(v)
		m.stopEditing()
		return m, m.changed()
	}
	var cmd tea.Cmd
	m.entry, cmd = m.entry.Update(msg)
	return m, cmd
}

func (m *CalculatorModel) stopEditing() {
	m.editing = false
	m.err = ""
	m.entry.Blur()
}

func (m *CalculatorModel) changed() tea.Cmd {
	in := m.Input()
	return func() tea.Msg { return tuimsg.InputChangedMsg{Input: in} }
}

func (m *CalculatorModel) updateFocus() {
	for i, s := range m.sliders {
		s.SetFocused(i == m.focused)
	}
}

func (m *CalculatorModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Simulator"))
	b.WriteString("\n\n")
	for _, s := range m.sliders {
		b.WriteString(s.RenderCompact())
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString("\n  " + m.sliders[m.focused].Label + ": " + m.entry.View())
		if m.err != "" {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(tuistyles.ColorDanger).Render(m.err))
		}
		b.WriteString("\n")
	}

	if m.hasResults {
		b.WriteString("\n")
		b.WriteString(components.MetricGrid(RegimeCards(m.results.List()), 3))
	}
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render("↑↓ select • ←→ adjust • pgup/pgdn ×10 • enter type a value"))
	return b.String()
}

// RegimeCards builds one card per breakdown and highlights the highest net
func RegimeCards(results []domain.TaxBreakdown) []*components.MetricCard {
	if len(results) == 0 {
		return nil
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.NetAnnual.GreaterThan(best.NetAnnual) {
			best = r
		}
	}

	cards := make([]*components.MetricCard, 0, len(results))
	for _, r := range results {
		card := components.NewMetricCard(r.Regime.DisplayName(), tuistyles.FormatCurrency(r.NetAnnual)+" / yr").
			AddLine("Monthly", tuistyles.FormatCurrency(r.NetMonthly)).
			AddLine("Social sec.", tuistyles.FormatCurrency(r.SS)).
			AddLine("Taxes", tuistyles.FormatCurrency(r.IRS))
		if !r.OperatingCosts.IsZero() {
			card.AddLine("Costs", tuistyles.FormatCurrency(r.OperatingCosts))
		}
		card.AddLine("Eff. rate", fmt.Sprintf("%s%%", r.EffectiveTaxRate.Mul(decimal.NewFromInt(100)).StringFixed(1)))

		if r.Regime == best.Regime {
			card.SetHighlighted(true).WithTrend(true, "best option")
		} else {
			card.WithTrend(false, tuistyles.FormatCurrency(best.NetAnnual.Sub(r.NetAnnual))+" less")
		}
		cards = append(cards, card)
	}
	return cards
}
