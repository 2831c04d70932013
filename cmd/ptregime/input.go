package main

import (
	"fmt"

	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/config"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// inputFlags selects a simulation input: an optional scenario from a file,
// overridden by any input flag set on the command line
type inputFlags struct {
	scenarioFile string
	scenario     string
}

func addInputFlags(cmd *cobra.Command, f *inputFlags) {
	cmd.Flags().StringVar(&f.scenarioFile, "scenarios", "", "YAML file of named scenarios")
	cmd.Flags().StringVar(&f.scenario, "scenario", "", "Scenario name in --scenarios (default: first)")

	cmd.Flags().Float64("rate", 0, "Daily rate in euros")
	cmd.Flags().Float64("days", 0, "Work days per month")
	cmd.Flags().Float64("months", 0, "Billable months per year")
	cmd.Flags().Float64("expenses", 0, "Annual business expenses")
	cmd.Flags().Bool("nhr", false, "Apply the non-habitual resident flat rate")
	cmd.Flags().Float64("municipality", 0, "Municipal IRS benefit in percent (0-5)")
	cmd.Flags().Float64("ss-adjustment", 0, "Social security base adjustment as a fraction (-0.25 to 0.25)")
	cmd.Flags().Bool("meal-allowance", false, "Company pays the owner a meal allowance")
	cmd.Flags().Float64("owner-salary", 0, "Company owner's monthly salary (default IAS)")
	cmd.Flags().Float64("accountant", 0, "Monthly accountant cost of the company")
	cmd.Flags().Float64("km", 0, "Company mileage allowance in km per month")
	cmd.Flags().Float64("employee-salary", 0, "Monthly gross salary for the employee regime")
	cmd.Flags().Float64("employee-meal", 0, "Daily meal allowance for the employee regime")
}

// resolve builds the engine for the scenario file's fiscal year (or --year)
// and the input to simulate. Without a scenario file the rate table defaults
// are the starting point.
func (f *inputFlags) resolve(cmd *cobra.Command, opts *globalOptions) (*calculation.CalculationEngine, domain.CalculatorInput, error) {
	var in domain.CalculatorInput
	var file *config.ScenarioFile

	if f.scenarioFile != "" {
		var err error
		file, err = loadScenarios(f.scenarioFile)
		if err != nil {
			return nil, in, err
		}
		s, err := pickScenario(file, f.scenario)
		if err != nil {
			return nil, in, err
		}
		in = s.Input
	}

	year := 0
	if file != nil && !cmd.Flags().Changed("year") {
		year = file.FiscalYear
	}
	engine, err := opts.engine(year, cmd.ErrOrStderr())
	if err != nil {
		return nil, in, err
	}
	if file == nil {
		in = domain.DefaultInput(engine.Rates)
	}

	flags := cmd.Flags()
	setDecimal := func(name string, dst *decimal.Decimal) {
		if flags.Changed(name) {
			v, _ := flags.GetFloat64(name)
			*dst = decimal.NewFromFloat(v)
		}
	}
	setPointer := func(name string, dst **decimal.Decimal) {
		if flags.Changed(name) {
			v, _ := flags.GetFloat64(name)
			d := decimal.NewFromFloat(v)
			*dst = &d
		}
	}

	setDecimal("rate", &in.DailyRate)
	setDecimal("days", &in.WorkDaysPerMonth)
	setDecimal("months", &in.MonthsPerYear)
	setDecimal("expenses", &in.BusinessExpenses)
	setDecimal("municipality", &in.MunicipalityBenefit)
	setDecimal("ss-adjustment", &in.SSAdjustment)
	setDecimal("employee-salary", &in.EmployeeGrossSalary)
	setDecimal("employee-meal", &in.EmployeeMealAllowance)
	setPointer("owner-salary", &in.OwnerSalary)
	setPointer("accountant", &in.AccountantMonthly)
	if flags.Changed("nhr") {
		in.IsNHR, _ = flags.GetBool("nhr")
	}
	if flags.Changed("meal-allowance") {
		in.IncludeMealAllowance, _ = flags.GetBool("meal-allowance")
	}
	if flags.Changed("km") {
		v, _ := flags.GetFloat64("km")
		if in.Perks == nil {
			in.Perks = &domain.Perks{}
		}
		in.Perks.KmPerMonth = decimal.NewFromFloat(v)
	}

	if err := config.NewInputParser().ValidateInput(&in); err != nil {
		return nil, in, fmt.Errorf("invalid input: %w", err)
	}
	return engine, in, nil
}

func pickScenario(file *config.ScenarioFile, name string) (domain.Scenario, error) {
	if name == "" {
		return file.Scenarios[0], nil
	}
	s, ok := file.Find(name)
	if !ok {
		return domain.Scenario{}, fmt.Errorf("scenario %q not found", name)
	}
	return s, nil
}

func loadScenarios(path string) (*config.ScenarioFile, error) {
	return config.NewInputParser().LoadFromFile(path)
}
