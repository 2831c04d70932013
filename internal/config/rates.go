package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// continuityTolerance is the largest bracket boundary jump accepted as rounding
var continuityTolerance = decimal.RequireFromString("0.01")

// RateTableParser reads rate tables from YAML. Fields missing from a file keep
// their built-in 2025 values, so a file only needs to list what changed.
// metadata.fiscal_year is the exception and must always be given.
type RateTableParser struct {
	// DeriveDeductions replaces bracket deductions with the exact values that
	// make the schedule continuous before validation.
	DeriveDeductions bool
}

// NewRateTableParser creates a new rate table parser
func NewRateTableParser() *RateTableParser {
	return &RateTableParser{}
}

// LoadFromFile loads and validates a rate table from a YAML file
func (p *RateTableParser) LoadFromFile(filename string) (*domain.RateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	rt, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if rt.Metadata.Source == "" || rt.Metadata.Source == "built-in" {
		rt.Metadata.Source = filename
	}
	return rt, nil
}

// Parse decodes and validates a rate table
func (p *RateTableParser) Parse(data []byte) (*domain.RateTable, error) {
	rt := domain.Portugal2025()
	rt.Metadata.FiscalYear = 0
	if err := yaml.Unmarshal(data, rt); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if rt.Metadata.FiscalYear == 0 {
		return nil, errors.New("metadata.fiscal_year is required")
	}

	if p.DeriveDeductions {
		rt.IRS.Brackets = domain.DeriveDeductions(rt.IRS.Brackets)
	}

	if err := ValidateRateTable(rt); err != nil {
		return nil, fmt.Errorf("rate table validation failed: %w", err)
	}
	return rt, nil
}

// ValidateRateTable checks the structural rules every calculator relies on
func ValidateRateTable(rt *domain.RateTable) error {
	if rt == nil {
		return errors.New("rate table is nil")
	}
	if rt.Metadata.FiscalYear <= 0 {
		return fmt.Errorf("metadata.fiscal_year must be positive")
	}
	if err := validateBrackets(rt.IRS.Brackets); err != nil {
		return fmt.Errorf("irs.brackets: %w", err)
	}

	fractions := map[string]decimal.Decimal{
		"contractor.service_coefficient": rt.Contractor.ServiceCoefficient,
		"contractor.ss_base_fraction":    rt.Contractor.SSBaseFraction,
		"contractor.ss_rate":             rt.Contractor.SSRate,
		"contractor.nhr_flat_rate":       rt.Contractor.NHRFlatRate,
		"reference.retention_rate":       rt.Reference.RetentionRate,
		"company.tsu_worker":             rt.Company.TSUWorker,
		"company.tsu_company":            rt.Company.TSUCompany,
		"company.irc_reduced_rate":       rt.Company.IRCReducedRate,
		"company.irc_normal_rate":        rt.Company.IRCNormalRate,
		"company.derrama_rate":           rt.Company.DerramaRate,
		"company.dividend_tax_rate":      rt.Company.DividendTaxRate,
		"fiscal_limits.warning_ratio":    rt.FiscalLimits.WarningRatio,
		"hardware.vat_rate":              rt.Hardware.VATRate,
		"hardware.depreciation_irc_rate": rt.Hardware.DepreciationIRCRate,
		"breakeven.max_expense_ratio":    rt.Breakeven.MaxExpenseRatio,
	}
	keys := make([]string, 0, len(fractions))
	for k := range fractions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := validateFraction(k, fractions[k]); err != nil {
			return err
		}
	}

	if rt.Contractor.SSAdjustmentMin.GreaterThan(decimal.Zero) ||
		rt.Contractor.SSAdjustmentMax.LessThan(decimal.Zero) {
		return fmt.Errorf("contractor ss adjustment bounds must include zero")
	}
	if rt.Reference.IAS.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("reference.ias must be positive")
	}
	if rt.Reference.SalaryPayments <= 0 {
		return fmt.Errorf("reference.salary_payments must be positive")
	}
	if rt.FiscalLimits.VATExemption.IsNegative() || rt.FiscalLimits.SimplifiedRegime.IsNegative() {
		return fmt.Errorf("fiscal limits cannot be negative")
	}
	if rt.Breakeven.Step.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("breakeven.step must be positive")
	}

	return nil
}

func validateFraction(name string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", name, v)
	}
	return nil
}

// validateBrackets requires ascending limits, only the last bracket open-ended,
// non-decreasing rates and no jump at any boundary beyond one cent
func validateBrackets(brackets []domain.Bracket) error {
	if len(brackets) == 0 {
		return errors.New("at least one bracket is required")
	}
	if !brackets[len(brackets)-1].IsUnbounded() {
		return errors.New("the last bracket must have no limit")
	}

	for i, b := range brackets {
		if err := validateFraction(fmt.Sprintf("bracket %d rate", i), b.Rate); err != nil {
			return err
		}
		if i == len(brackets)-1 {
			break
		}
		if b.IsUnbounded() {
			return fmt.Errorf("bracket %d has no limit but is not the last", i)
		}
		if !b.Limit.IsPositive() {
			return fmt.Errorf("bracket %d limit must be positive", i)
		}
		next := brackets[i+1]
		if next.Limit != nil && !next.Limit.GreaterThan(*b.Limit) {
			return fmt.Errorf("bracket %d limit %s must exceed %s", i+1, next.Limit, b.Limit)
		}
		if next.Rate.LessThan(b.Rate) {
			return fmt.Errorf("bracket %d rate decreases", i+1)
		}
		if gap := domain.BoundaryGap(brackets, i); gap.Abs().GreaterThan(continuityTolerance) {
			return fmt.Errorf("tax jumps by %s at %s (bracket %d deduction should be %s)",
				gap.StringFixed(4), b.Limit, i+1,
				domain.DeriveDeductions(brackets)[i+1].Deduction)
		}
	}
	return nil
}

// ErrUnknownYear is returned when no rate table is registered for a fiscal year
var ErrUnknownYear = errors.New("no rate table for fiscal year")

// RateRegistry holds one validated rate table per fiscal year
type RateRegistry struct {
	mu     sync.RWMutex
	tables map[int]*domain.RateTable
}

// NewRateRegistry creates a registry seeded with the built-in 2025 table
func NewRateRegistry() *RateRegistry {
	r := &RateRegistry{tables: make(map[int]*domain.RateTable)}
	builtin := domain.Portugal2025()
	r.tables[builtin.Metadata.FiscalYear] = builtin
	return r
}

// Register validates rt and stores it under its fiscal year, replacing any
// previous table for that year
func (r *RateRegistry) Register(rt *domain.RateTable) error {
	if err := ValidateRateTable(rt); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[rt.Metadata.FiscalYear] = rt
	return nil
}

// Get returns the table for a fiscal year
func (r *RateRegistry) Get(year int) (*domain.RateTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.tables[year]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownYear, year)
	}
	return rt, nil
}

// Years lists the registered fiscal years in ascending order
func (r *RateRegistry) Years() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	years := make([]int, 0, len(r.tables))
	for y := range r.tables {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// LoadDir registers every *.yaml and *.yml file in dir
func (r *RateRegistry) LoadDir(dir string, parser *RateTableParser) error {
	if parser == nil {
		parser = NewRateTableParser()
	}
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	for _, f := range files {
		rt, err := parser.LoadFromFile(f)
		if err != nil {
			return err
		}
		if err := r.Register(rt); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	return nil
}
