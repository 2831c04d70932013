package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/insights"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var hundred = decimal.NewFromInt(100)

// Report is everything the formatters render for one simulation
type Report struct {
	FiscalYear  int                       `json:"fiscal_year"`
	Source      string                    `json:"source"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Input       domain.CalculatorInput    `json:"input"`
	Results     []domain.TaxBreakdown     `json:"results"`
	Thresholds  []insights.ThresholdAlert `json:"thresholds"`
	Assumptions []string                  `json:"assumptions"`
}

// BuildReport runs every regime for in and collects the threshold checks
func BuildReport(engine *calculation.CalculationEngine, in domain.CalculatorInput) *Report {
	rt := engine.Rates
	gross := engine.Normalize(in).GrossAnnual()
	return &Report{
		FiscalYear:  rt.Metadata.FiscalYear,
		Source:      rt.Metadata.Source,
		GeneratedAt: time.Now(),
		Input:       in,
		Results:     engine.All(in).List(),
		Thresholds:  insights.CheckThresholds(gross, rt),
		Assumptions: AssumptionsFor(rt),
	}
}

// Best returns the breakdown with the highest net income. The first regime
// wins ties.
func (r *Report) Best() (domain.TaxBreakdown, bool) {
	if len(r.Results) == 0 {
		return domain.TaxBreakdown{}, false
	}
	best := r.Results[0]
	for _, b := range r.Results[1:] {
		if b.NetAnnual.GreaterThan(best.NetAnnual) {
			best = b
		}
	}
	return best, true
}

// Formatter renders a report
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(r *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(r *Report) ([]byte, error) { return f.F(r) }

var formatters = map[string]Formatter{}

func register(f Formatter) { formatters[f.Name()] = f }

func init() {
	register(ConsoleFormatter{})
	register(ConsoleVerboseFormatter{})
	register(CSVSummarizer{})
	register(JSONFormatter{})
	register(HTMLFormatter{})
}

// Get looks up a formatter by name
func Get(name string) (Formatter, error) {
	f, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", name)
	}
	return f, nil
}

// Names lists the registered formatter names in order
func Names() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders r with f into a timestamped file in the working
// directory and returns its name
func WriteFormatted(f Formatter, r *Report, ext string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", fmt.Errorf("format %s report: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("ptregime_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return filename, nil
}

// SaveRateTable writes a rate table as YAML
func SaveRateTable(rt *domain.RateTable, filename string) error {
	data, err := yaml.Marshal(rt)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency formats a decimal as euros
func FormatCurrency(amount decimal.Decimal) string {
	return "€" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
