package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ptregime/internal/tui/tuistyles"
)

// DataSeries is one line of a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws line series on a character grid. The breakeven scene plots
// contractor and company net income against expenses with it.
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	XLabel     string
	Width      int
	Height     int
	MarkColumn int // -1 for none
}

func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{Title: title, Width: 60, Height: 12, MarkColumn: -1}
}

func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width, c.Height = width, height
	return c
}

func (c *ASCIIChart) WithXLabel(label string) *ASCIIChart {
	c.XLabel = label
	return c
}

// MarkFraction draws a vertical marker at a fraction of the x range
func (c *ASCIIChart) MarkFraction(f float64) *ASCIIChart {
	if f >= 0 && f <= 1 {
		c.MarkColumn = int(math.Round(f * float64(c.plotWidth()-1)))
	}
	return c
}

const yAxisWidth = 10

func (c *ASCIIChart) plotWidth() int {
	return max(2, c.Width-yAxisWidth-3)
}

func (c *ASCIIChart) Render() string {
	lo, hi, ok := c.bounds()
	if !ok {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	if hi == lo {
		hi = lo + 1
	}

	w, h := c.plotWidth(), max(2, c.Height)
	grid := make([][]rune, h)
	owner := make([][]int, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", w))
		owner[y] = make([]int, w)
		if c.MarkColumn >= 0 && c.MarkColumn < w {
			grid[y][c.MarkColumn] = '┊'
			owner[y][c.MarkColumn] = -1
		}
	}

	scaleY := func(v float64) int {
		return h - 1 - int(math.Round((v-lo)/(hi-lo)*float64(h-1)))
	}
	for si, s := range c.Series {
		n := len(s.Points)
		for i := range s.Points {
			x := 0
			if n > 1 {
				x = int(math.Round(float64(i) / float64(n-1) * float64(w-1)))
			}
			y := scaleY(s.Points[i])
			if i > 0 {
				px := int(math.Round(float64(i-1) / float64(n-1) * float64(w-1)))
				drawLine(grid, owner, px, scaleY(s.Points[i-1]), x, y, si)
			} else {
				plot(grid, owner, x, y, si)
			}
		}
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		out.WriteString("\n")
	}
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for y, row := range grid {
		label := ""
		if y == 0 || y == h-1 || y == h/2 {
			label = tuistyles.FormatCurrencyFloat(hi - float64(y)/float64(h-1)*(hi-lo))
		}
		out.WriteString(axis.Render(label))
		out.WriteString(" │")
		for x, r := range row {
			o := owner[y][x]
			if o > 0 {
				out.WriteString(lipgloss.NewStyle().Foreground(c.Series[o-1].Color).Render(string(r)))
			} else {
				out.WriteRune(r)
			}
		}
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth) + " └" + strings.Repeat("─", w) + "\n")
	if c.XLabel != "" {
		out.WriteString(strings.Repeat(" ", yAxisWidth+2) + tuistyles.MetricLabelStyle.Render(c.XLabel) + "\n")
	}
	var legend []string
	for i, s := range c.Series {
		legend = append(legend, lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i))+" "+s.Name))
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth+2) + strings.Join(legend, "   "))
	return out.String()
}

func (c *ASCIIChart) bounds() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
			ok = true
		}
	}
	return lo, hi, ok
}

func seriesChar(i int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[i%len(chars)]
}

// owner holds series index + 1 for plotted cells
func plot(grid [][]rune, owner [][]int, x, y, series int) {
	if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
		grid[y][x] = seriesChar(series)
		owner[y][x] = series + 1
	}
}

// drawLine connects two cells with Bresenham's algorithm
func drawLine(grid [][]rune, owner [][]int, x0, y0, x1, y1, series int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		plot(grid, owner, x0, y0, series)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
