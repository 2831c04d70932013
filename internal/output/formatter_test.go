package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildTestReport(t *testing.T) *Report {
	t.Helper()
	engine := calculation.NewCalculationEngine2025()
	in := domain.DefaultInput(engine.Rates)
	in.EmployeeGrossSalary = decimal.NewFromInt(2500)
	return BuildReport(engine, in)
}

func TestBuildReport(t *testing.T) {
	r := buildTestReport(t)

	assert.Equal(t, 2025, r.FiscalYear)
	require.Len(t, r.Results, 3, "Should run every regime")
	require.Len(t, r.Thresholds, 2)
	assert.NotEmpty(t, r.Assumptions)

	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, domain.RegimeContractor, best.Regime, "Contractor nets most at the default rate")

	_, ok = (&Report{}).Best()
	assert.False(t, ok, "Empty report has no best regime")
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(r *Report) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}

	out, err := f.Format(&Report{})
	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", f.Name())
}

func TestWriteFormatted(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	f := FormatterFunc{ID: "txt", F: func(*Report) ([]byte, error) { return []byte("content"), nil }}
	filename, err := WriteFormatted(f, &Report{}, "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "ptregime_report_"), "Should have correct prefix")
	assert.Equal(t, ".txt", filepath.Ext(filename))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	failing := FormatterFunc{ID: "bad", F: func(*Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") }}
	filename, err = WriteFormatted(failing, &Report{}, "txt")
	assert.Error(t, err)
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error")
}

func TestGet(t *testing.T) {
	for _, name := range []string{"console", "console-lite", "csv", "json", "html"} {
		f, err := Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.Name())
	}
	assert.Equal(t, []string{"console", "console-lite", "csv", "html", "json"}, Names())

	_, err := Get("pdf")
	assert.EqualError(t, err, "unsupported format: pdf")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "REGIME SUMMARY")
	assert.Contains(t, content, "net €50841.00/yr")
	assert.Contains(t, content, "Recommended: Recibos Verdes")
	assert.Contains(t, content, "(Δ €3440.99 vs Unipessoal)")
	assert.Contains(t, content, "(Δ €25147.86 vs Employee)")

	empty, err := ConsoleFormatter{}.Format(&Report{})
	require.NoError(t, err)
	assert.Contains(t, string(empty), "No results.")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "PORTUGUESE TAX REGIME ANALYSIS")
	assert.Contains(t, content, "KEY ASSUMPTIONS:")
	assert.Contains(t, content, "REGIME 1: Recibos Verdes")
	assert.Contains(t, content, "REGIME 2: Unipessoal")
	assert.Contains(t, content, "Operating Costs:       €2000.00", "Company shows its running costs")
	assert.Contains(t, content, "Social Security:       €12111.33")
	assert.Contains(t, content, "FISCAL THRESHOLDS")
	assert.Contains(t, content, "RECOMMENDATION: Recibos Verdes (€50841.00 net per year)")
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4, "Header plus one row per regime")
	assert.True(t, strings.HasPrefix(lines[0], "Regime,GrossAnnual,SocialSecurity,IRS"))
	assert.True(t, strings.HasPrefix(lines[1], "contractor,80850.00,12111.33,17897.68,0.00,0.00,50841.00"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "company,"))
	assert.True(t, strings.HasPrefix(lines[3], "employee,"))
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded struct {
		FiscalYear int `json:"fiscal_year"`
		Results    []domain.TaxBreakdown
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 2025, decoded.FiscalYear)
	require.Len(t, decoded.Results, 3)
	assert.True(t, decoded.Results[0].NetAnnual.Equal(decimal.RequireFromString("50840.995")))

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &keys))
	assert.Contains(t, keys, "generated_at")
	assert.NotContains(t, keys, "fiscalYear")
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "<html")
	assert.Contains(t, content, "Fiscal year 2025")
	assert.Contains(t, content, `<tr class="best">`)
	assert.Contains(t, content, "<td>€50841.00</td>")
	assert.Contains(t, content, "Recommended: Recibos Verdes")
	assert.Contains(t, content, `class="exceeded"`, "80850 of revenue is above the VAT exemption")
}

func TestSaveRateTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, SaveRateTable(domain.Portugal2025(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back domain.RateTable
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, 2025, back.Metadata.FiscalYear)
	assert.True(t, back.Reference.IAS.Equal(domain.Portugal2025().Reference.IAS))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "€1234.50", FormatCurrency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "23.00%", FormatPercentage(decimal.NewFromInt(23)))
}
