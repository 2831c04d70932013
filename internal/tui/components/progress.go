package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ptregime/internal/tui/tuistyles"
)

// UsageBar shows how much of a limit is used. Percent may exceed 100.
type UsageBar struct {
	Label   string
	Percent float64
	Status  string // safe, warning or exceeded
	Detail  string
	Width   int
}

func NewUsageBar(label string, percent float64, status string) *UsageBar {
	return &UsageBar{Label: label, Percent: percent, Status: status, Width: 30}
}

func (u *UsageBar) WithDetail(detail string) *UsageBar {
	u.Detail = detail
	return u
}

func (u *UsageBar) Render() string {
	ratio := math.Max(0, math.Min(1, u.Percent/100))
	filled := int(math.Round(ratio * float64(u.Width)))

	style := statusStyle(u.Status)
	bar := style.Render(strings.Repeat("█", filled)) +
		tuistyles.SliderTrackStyle.Render(strings.Repeat("░", u.Width-filled))

	line := fmt.Sprintf("%-20s %s %s", u.Label, bar, style.Render(fmt.Sprintf("%5.1f%% %s", u.Percent, u.Status)))
	if u.Detail != "" {
		line += "\n" + strings.Repeat(" ", 21) + tuistyles.MetricLabelStyle.Render(u.Detail)
	}
	return line
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "exceeded", "urgent":
		return lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
	case "warning", "upcoming":
		return lipgloss.NewStyle().Foreground(tuistyles.ColorWarning)
	case "done":
		return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	default:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	}
}

// StatusText colors a status word the same way usage bars are colored
func StatusText(status string) string {
	return statusStyle(status).Render(status)
}

// Spinner is a frame-based loading indicator advanced by tick messages
type Spinner struct {
	frames  []string
	current int
	Message string
}

func NewSpinner(message string) *Spinner {
	return &Spinner{
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		Message: message,
	}
}

func (s *Spinner) Next() {
	s.current = (s.current + 1) % len(s.frames)
}

func (s *Spinner) Render() string {
	return tuistyles.InfoStyle.Render(s.frames[s.current]) + " " + s.Message
}
