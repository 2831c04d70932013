package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ptregime/internal/tui/tuistyles"
)

// MetricCard shows a headline value with supporting lines, used for the
// per-regime result cards
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Lines       []string
	Highlighted bool
	Width       int
}

// Trend is a change relative to a reference
type Trend struct {
	IsPositive bool
	Change     string
}

// NewMetricCard creates a card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 28}
}

func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{IsPositive: isPositive, Change: change}
	return m
}

// AddLine appends a "label value" detail row
func (m *MetricCard) AddLine(label, value string) *MetricCard {
	m.Lines = append(m.Lines, fmt.Sprintf("%-12s %s", label, value))
	return m
}

func (m *MetricCard) SetHighlighted(h bool) *MetricCard {
	m.Highlighted = h
	return m
}

func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) Render() string {
	var b strings.Builder
	b.WriteString(tuistyles.MetricLabelStyle.Render(m.Label))
	b.WriteString("\n")
	b.WriteString(tuistyles.MetricValueStyle.Render(m.Value))
	if m.Trend != nil {
		style := tuistyles.MetricTrendStyle(m.Trend.IsPositive)
		b.WriteString("\n")
		b.WriteString(style.Render(tuistyles.TrendIndicator(m.Trend.IsPositive) + " " + m.Trend.Change))
	}
	for _, l := range m.Lines {
		b.WriteString("\n")
		b.WriteString(tuistyles.MetricLabelStyle.Render(l))
	}

	border := tuistyles.ColorBorder
	if m.Highlighted {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width).
		Render(b.String())
}

// MetricGrid lays cards out in rows of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns < 1 {
		return ""
	}
	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
