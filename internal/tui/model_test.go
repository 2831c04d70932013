package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/ptregime/internal/breakeven"
	"github.com/rgehrsitz/ptregime/internal/config"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/tui/tuimsg"
)

func newTestModel() Model {
	return NewModel(Options{
		Now: func() time.Time { return time.Date(2025, time.August, 22, 9, 0, 0, 0, time.UTC) },
	})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and feeds any resulting message back once
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	if follow := cmd(); follow != nil {
		if _, batch := follow.(tea.BatchMsg); !batch {
			next, _ = m.Update(follow)
			m = next.(Model)
		}
	}
	return m
}

func TestNewModel_Defaults(t *testing.T) {
	m := newTestModel()

	assert.Equal(t, SceneCalculator, m.CurrentScene())
	assert.True(t, m.Input().DailyRate.Equal(decimal.NewFromInt(350)))
	assert.True(t, m.Input().OwnerSalary.Equal(domain.Portugal2025().Reference.IAS), "owner salary starts at the IAS")

	view := m.View()
	assert.Contains(t, view, "Simulator")
	assert.Contains(t, view, "Recibos Verdes")
	assert.Contains(t, view, "€50,841 / yr")
}

func TestAdjustSliderRecalculates(t *testing.T) {
	m := newTestModel()
	m = send(t, m, key("right"))

	assert.True(t, m.Input().DailyRate.Equal(decimal.NewFromInt(360)), "got %s", m.Input().DailyRate)
	assert.Contains(t, m.View(), "360 €")
	assert.Equal(t, 2, m.seq, "a new breakeven search starts")
}

func TestTypedValue(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(key("enter"))
	m = next.(Model)
	require.True(t, m.calculator.Editing())

	next, _ = m.Update(key("q"))
	m = next.(Model)
	assert.True(t, m.calculator.Editing(), "q is text while editing")
	assert.Equal(t, SceneCalculator, m.CurrentScene())

	next, _ = m.Update(key("esc"))
	m = next.(Model)
	assert.False(t, m.calculator.Editing())
	assert.True(t, m.Input().DailyRate.Equal(decimal.NewFromInt(350)), "esc discards the typed value")
}

func TestNavigation(t *testing.T) {
	m := newTestModel()

	m = send(t, m, key("c"))
	assert.Equal(t, SceneCompare, m.CurrentScene())
	assert.Contains(t, m.View(), "Base: Recibos Verdes")

	m = send(t, m, key("tab"))
	assert.Contains(t, m.View(), "Base: Unipessoal")

	m = send(t, m, key("i"))
	assert.Equal(t, SceneInsights, m.CurrentScene())
	view := m.View()
	assert.Contains(t, view, "VAT exemption")
	assert.Contains(t, view, "exceeded")

	m = send(t, m, key("esc"))
	assert.Equal(t, SceneCompare, m.CurrentScene())

	next, cmd := m.Update(key("q"))
	_ = next
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBreakevenResults(t *testing.T) {
	m := newTestModel()
	assert.True(t, m.breakeven.Running())

	stale := tuimsg.BreakevenCompleteMsg{Seq: m.seq - 1, Result: breakeven.Result{Found: true}}
	m = send(t, m, stale)
	assert.True(t, m.breakeven.Running(), "results for an old input are dropped")

	msg := breakevenCmd(m.engine, m.Input(), m.seq)()
	m = send(t, m, msg)
	assert.False(t, m.breakeven.Running())

	m = send(t, m, key("b"))
	assert.Contains(t, m.View(), "Recibos Verdes is better at every expense level in range.")
}

func TestScenarioSelection(t *testing.T) {
	m := newTestModel()
	in := domain.CalculatorInput{
		DailyRate:        decimal.NewFromInt(700),
		WorkDaysPerMonth: decimal.NewFromInt(21),
		MonthsPerYear:    decimal.NewFromInt(11),
	}
	file := &config.ScenarioFile{Scenarios: []domain.Scenario{{Name: "senior", Input: in}}}
	m = send(t, m, tuimsg.ScenariosLoadedMsg{File: file})
	m = send(t, m, key("l"))
	assert.Contains(t, m.View(), "senior")

	m = send(t, m, key("enter"))
	assert.Equal(t, SceneCalculator, m.CurrentScene())
	assert.True(t, m.Input().DailyRate.Equal(decimal.NewFromInt(700)))
}

func TestErrorIsDismissed(t *testing.T) {
	m := newTestModel()
	m = send(t, m, tuimsg.ErrorMsg{Err: assert.AnError})
	assert.Contains(t, m.View(), "Error:")

	m = send(t, m, key("x"))
	assert.NotContains(t, m.View(), "Error:")
}
