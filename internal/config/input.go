package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ScenarioFile is the on-disk form of a set of named simulations
type ScenarioFile struct {
	FiscalYear int               `yaml:"fiscal_year,omitempty" json:"fiscal_year,omitempty"`
	Scenarios  []domain.Scenario `yaml:"scenarios" json:"scenarios"`
}

// Find returns the scenario with the given name
func (f *ScenarioFile) Find(name string) (domain.Scenario, bool) {
	for _, s := range f.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return domain.Scenario{}, false
}

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads scenarios from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario file
func (ip *InputParser) Parse(data []byte) (*ScenarioFile, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenarioFile(&file); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &file, nil
}

// ValidateScenarioFile validates every scenario and name uniqueness
func (ip *InputParser) ValidateScenarioFile(file *ScenarioFile) error {
	if len(file.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(file.Scenarios))
	for i, s := range file.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true

		if s.Regime != "" {
			if _, err := domain.ParseRegime(string(s.Regime)); err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}
		}
		if err := ip.ValidateInput(&s.Input); err != nil {
			return fmt.Errorf("scenario %q input validation failed: %w", s.Name, err)
		}
	}
	return nil
}

// ValidateInput checks the ranges a user can reasonably enter. Calculators
// accept any value; this is only applied to files and requests.
func (ip *InputParser) ValidateInput(in *domain.CalculatorInput) error {
	if in.DailyRate.IsNegative() {
		return fmt.Errorf("daily rate cannot be negative")
	}
	if in.WorkDaysPerMonth.IsNegative() || in.WorkDaysPerMonth.GreaterThan(decimal.NewFromInt(31)) {
		return fmt.Errorf("work days per month must be between 0 and 31")
	}
	if in.MonthsPerYear.IsNegative() || in.MonthsPerYear.GreaterThan(decimal.NewFromInt(12)) {
		return fmt.Errorf("months per year must be between 0 and 12")
	}
	if in.BusinessExpenses.IsNegative() {
		return fmt.Errorf("business expenses cannot be negative")
	}
	if in.MunicipalityBenefit.IsNegative() || in.MunicipalityBenefit.GreaterThan(decimal.NewFromInt(5)) {
		return fmt.Errorf("municipality benefit must be between 0 and 5 percent")
	}
	if in.EmployeeGrossSalary.IsNegative() || in.EmployeeMealAllowance.IsNegative() {
		return fmt.Errorf("employee amounts cannot be negative")
	}
	if in.OwnerSalary != nil && in.OwnerSalary.IsNegative() {
		return fmt.Errorf("owner salary cannot be negative")
	}
	if in.AccountantMonthly != nil && in.AccountantMonthly.IsNegative() {
		return fmt.Errorf("accountant cost cannot be negative")
	}
	if p := in.Perks; p != nil {
		if p.KmPerMonth.IsNegative() || p.HealthInsuranceMonthly.IsNegative() ||
			p.EducationMonthly.IsNegative() || p.RetirementContribution.IsNegative() {
			return fmt.Errorf("perks cannot be negative")
		}
	}
	return nil
}
