package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ptregime/internal/tui/tuistyles"
)

// ParameterSlider displays an adjustable simulator input
type ParameterSlider struct {
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Unit        string // suffix, e.g. "€" or " days"
	Format      string
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider starting at value
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	p := &ParameterSlider{
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.0f",
		Width:  24,
	}
	p.SetValue(value)
	return p
}

func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

func (p *ParameterSlider) WithFormat(format string) *ParameterSlider {
	p.Format = format
	return p
}

func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment raises the value by one step, stopping at Max
func (p *ParameterSlider) Increment() {
	p.SetValue(p.Value + p.Step)
}

// Decrement lowers the value by one step, stopping at Min
func (p *ParameterSlider) Decrement() {
	p.SetValue(p.Value - p.Step)
}

// SetValue sets the value, clamped to [Min, Max]
func (p *ParameterSlider) SetValue(value float64) {
	p.Value = math.Max(p.Min, math.Min(p.Max, value))
}

// Percentage returns the position of the value within the range
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// FormattedValue is the value with its unit
func (p *ParameterSlider) FormattedValue() string {
	return fmt.Sprintf(p.Format, p.Value) + p.Unit
}

// RenderCompact renders the slider on a single line
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle.Width(22)
	valueStyle := tuistyles.ParameterValueStyle.Width(12).Align(lipgloss.Right)
	marker := "  "
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		marker = "▸ "
	}

	line := marker + labelStyle.Render(p.Label) + valueStyle.Render(p.FormattedValue()) + " " + p.renderBar()
	if p.IsFocused && p.Description != "" {
		desc := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)
		line += "\n    " + desc.Render(p.Description)
	}
	return line
}

func (p *ParameterSlider) renderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	if filled < 1 {
		filled = 1
	}
	if filled > p.Width {
		filled = p.Width
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1) + "●"))
	bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", p.Width-filled)))
	bar.WriteString("]")
	return bar.String()
}
