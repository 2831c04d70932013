package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/ptregime/internal/breakeven"
	"github.com/rgehrsitz/ptregime/internal/compare"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/output"
	"github.com/shopspring/decimal"
)

var (
	scenarioFixture    = filepath.Join("..", "..", "internal", "config", "testdata", "scenarios.yaml")
	ratesFixture       = filepath.Join("..", "..", "internal", "config", "testdata", "rates", "rates-2026.yaml")
	discontinuousRates = filepath.Join("..", "..", "internal", "config", "testdata", "rates", "rates-discontinuous.yaml")
)

// run executes a fresh command tree and returns stdout and the error
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("ptregime %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "ptregime" {
		t.Errorf("Expected root command use to be 'ptregime', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestRootCommand_Execute(t *testing.T) {
	out := mustRun(t)
	if !strings.Contains(out, "Usage:") {
		t.Errorf("Expected root command to show usage, got %q", out)
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"simulate",
		"compare",
		"breakeven",
		"thresholds",
		"hardware",
		"irs",
		"calendar",
		"rates",
		"serve",
		"version",
	}

	registered := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expectedCommands {
		if !registered[name] {
			t.Errorf("Expected command %s to be registered", name)
		}
	}
}

func TestSimulate_JSON(t *testing.T) {
	out := mustRun(t, "simulate", "--format", "json")

	var report output.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.FiscalYear != 2025 {
		t.Errorf("Expected fiscal year 2025, got %d", report.FiscalYear)
	}
	if len(report.Results) != 3 {
		t.Fatalf("Expected 3 regimes, got %d", len(report.Results))
	}
	contractor := report.Results[0]
	if contractor.Regime != domain.RegimeContractor {
		t.Errorf("Expected contractor first, got %s", contractor.Regime)
	}
	if !contractor.NetAnnual.Equal(d("50840.995")) {
		t.Errorf("Expected contractor net 50840.995, got %s", contractor.NetAnnual)
	}
}

func TestSimulate_Console(t *testing.T) {
	out := mustRun(t, "simulate")
	for _, want := range []string{"PORTUGUESE TAX REGIME ANALYSIS", "RECOMMENDATION:", "FISCAL THRESHOLDS"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected console report to contain %q", want)
		}
	}
}

func TestSimulate_ScenarioWithOverrides(t *testing.T) {
	out := mustRun(t, "simulate",
		"--scenarios", scenarioFixture,
		"--scenario", "company",
		"--rate", "700",
		"--regime", "company",
		"--format", "json")

	var report output.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Results) != 1 || report.Results[0].Regime != domain.RegimeCompany {
		t.Fatalf("Expected only the company regime, got %+v", report.Results)
	}
	if !report.Input.DailyRate.Equal(d("700")) {
		t.Errorf("Expected --rate to override the scenario, got %s", report.Input.DailyRate)
	}
	if !report.Input.BusinessExpenses.Equal(d("3000")) {
		t.Errorf("Expected scenario expenses to be kept, got %s", report.Input.BusinessExpenses)
	}
	if report.Input.OwnerSalary == nil || !report.Input.OwnerSalary.Equal(d("1000")) {
		t.Errorf("Expected scenario owner salary 1000, got %v", report.Input.OwnerSalary)
	}
}

func TestSimulate_Save(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out := mustRun(t, "simulate", "--format", "csv", "--save")
	if !strings.HasPrefix(out, "Report written to ptregime_report_") {
		t.Fatalf("unexpected output %q", out)
	}
	filename := strings.TrimSpace(strings.TrimPrefix(out, "Report written to "))
	if filepath.Ext(filename) != ".csv" {
		t.Errorf("Expected a .csv file, got %s", filename)
	}
	if _, err := os.Stat(filename); err != nil {
		t.Errorf("Expected report file to exist: %v", err)
	}
}

func TestSimulate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"simulate", "--format", "xml"}, "unsupported format: xml"},
		{"months out of range", []string{"simulate", "--months", "13"}, "invalid input"},
		{"unknown regime", []string{"simulate", "--regime", "freelance"}, "unknown regime"},
		{"unknown year", []string{"simulate", "--year", "2030"}, "no rate table for fiscal year 2030"},
		{"unknown scenario", []string{"simulate", "--scenarios", scenarioFixture, "--scenario", "nope"}, `scenario "nope" not found`},
		{"missing scenario file", []string{"simulate", "--scenarios", "missing.yaml"}, "failed to read file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCompare_Table(t *testing.T) {
	out := mustRun(t, "compare", "--base", "company")
	if !strings.Contains(out, "REGIME COMPARISON") {
		t.Errorf("Expected comparison table header, got %q", out)
	}
	if !strings.Contains(out, "Base: Unipessoal") {
		t.Errorf("Expected company base, got %q", out)
	}
}

func TestCompare_Scenarios(t *testing.T) {
	out := mustRun(t, "compare",
		"--scenarios", scenarioFixture,
		"--base-scenario", "current",
		"--against", "hired",
		"--format", "json")

	var set compare.ComparisonSet
	if err := json.Unmarshal([]byte(out), &set); err != nil {
		t.Fatalf("decode comparison: %v", err)
	}
	if set.BaseName != "current" {
		t.Errorf("Expected base current, got %s", set.BaseName)
	}
	if len(set.AlternativeResults) != 1 || set.AlternativeResults[0].Name != "hired" {
		t.Errorf("Expected only the hired alternative, got %+v", set.AlternativeResults)
	}
	if set.Winner != "current" {
		t.Errorf("Expected recibos verdes at 350/day to beat a 2500 salary, got %s", set.Winner)
	}

	if _, err := run(t, "compare", "--base-scenario", "current"); err == nil {
		t.Error("Expected --base-scenario without --scenarios to fail")
	}
}

func TestBreakeven(t *testing.T) {
	out := mustRun(t, "breakeven", "--rate", "700", "--format", "json")

	var result breakeven.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode breakeven: %v", err)
	}
	if !result.Found || !result.Expense.Equal(d("2500")) {
		t.Errorf("Expected breakeven at 2500, got found=%v expense=%s", result.Found, result.Expense)
	}
	if !result.GrossIncome.Equal(d("161700")) {
		t.Errorf("Expected gross 161700, got %s", result.GrossIncome)
	}

	out = mustRun(t, "breakeven", "--format", "json")
	var none breakeven.Result
	if err := json.Unmarshal([]byte(out), &none); err != nil {
		t.Fatalf("decode breakeven: %v", err)
	}
	if none.Found {
		t.Errorf("Expected no crossing at 350/day, got %s", none.Expense)
	}

	if _, err := run(t, "breakeven", "--step", "-5"); err == nil {
		t.Error("Expected a negative step to fail")
	}
}

func TestBreakeven_Curve(t *testing.T) {
	out := mustRun(t, "breakeven", "--min-rate", "300", "--max-rate", "400", "--rate-step", "50", "--format", "json")

	var points []breakeven.CurvePoint
	if err := json.Unmarshal([]byte(out), &points); err != nil {
		t.Fatalf("decode curve: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("Expected 3 rates, got %d", len(points))
	}
	if !points[2].DailyRate.Equal(d("400")) {
		t.Errorf("Expected last rate 400, got %s", points[2].DailyRate)
	}

	table := mustRun(t, "breakeven", "--min-rate", "300", "--max-rate", "400", "--rate-step", "50")
	if !strings.Contains(table, "BREAKEVEN BY DAILY RATE") {
		t.Errorf("Expected curve table, got %q", table)
	}

	if _, err := run(t, "breakeven", "--min-rate", "500", "--max-rate", "400"); err == nil {
		t.Error("Expected an empty rate range to fail")
	}
}

func TestThresholds(t *testing.T) {
	out := mustRun(t, "thresholds", "14000")
	if !strings.Contains(out, "WARNING") {
		t.Errorf("Expected VAT warning at 14000, got %q", out)
	}
	if !strings.Contains(out, "SAFE") {
		t.Errorf("Expected simplified regime to be safe, got %q", out)
	}

	if _, err := run(t, "thresholds", "lots"); err == nil {
		t.Error("Expected a non-numeric income to fail")
	}
}

func TestHardware(t *testing.T) {
	out := mustRun(t, "hardware", "1230")
	if !strings.Contains(out, "€400.00") {
		t.Errorf("Expected savings of €400.00, got %q", out)
	}
	if _, err := run(t, "hardware", "-10"); err == nil {
		t.Error("Expected a negative price to fail")
	}
}

func TestIRS(t *testing.T) {
	out := mustRun(t, "irs", "20000", "--withholding", "5000")
	if !strings.Contains(out, "Refund") || !strings.Contains(out, "€2711.67") {
		t.Errorf("Expected a refund of €2711.67, got %q", out)
	}
	if !strings.Contains(out, "€15000.00") {
		t.Errorf("Expected taxable income €15000.00, got %q", out)
	}

	if _, err := run(t, "irs", "20000", "--type", "C"); err == nil {
		t.Error("Expected an unknown income type to fail")
	}
	if _, err := run(t, "irs", "20000", "--marital", "widowed"); err == nil {
		t.Error("Expected an unknown marital status to fail")
	}
}

func TestCalendar(t *testing.T) {
	out := mustRun(t, "calendar", "--year", "2025", "--month", "5")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 obligations in May, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[3], "2025-05-25") {
		t.Errorf("Expected VAT payment last, got %q", lines[3])
	}

	year := mustRun(t, "calendar", "--year", "2025")
	if n := len(strings.Split(strings.TrimSpace(year), "\n")); n != 32 {
		t.Errorf("Expected 32 obligations in a year, got %d", n)
	}

	if _, err := run(t, "calendar", "--month", "13"); err == nil {
		t.Error("Expected month 13 to fail")
	}
}

func TestRates(t *testing.T) {
	out := mustRun(t, "rates", "validate", ratesFixture)
	if !strings.Contains(out, "Rate table for 2026 is valid") {
		t.Errorf("unexpected validate output %q", out)
	}

	show := mustRun(t, "rates", "show")
	if !strings.Contains(show, "fiscal_year: 2025") {
		t.Errorf("Expected YAML rate table, got %q", show)
	}

	if _, err := run(t, "rates", "validate", discontinuousRates); err == nil {
		t.Error("Expected a discontinuous schedule to fail validation")
	}

	target := filepath.Join(t.TempDir(), "fixed.yaml")
	derived := mustRun(t, "rates", "derive", discontinuousRates, "--out", target)
	if !strings.Contains(derived, "deduction 2000.00") {
		t.Errorf("Expected derived deduction 2000.00, got %q", derived)
	}
	if out := mustRun(t, "rates", "validate", target); !strings.Contains(out, "Rate table for 2030 is valid") {
		t.Errorf("Expected the derived table to validate, got %q", out)
	}
}

func TestVersion(t *testing.T) {
	out := mustRun(t, "version")
	if !strings.HasPrefix(out, "ptregime dev") {
		t.Errorf("unexpected version output %q", out)
	}
}
