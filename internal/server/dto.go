package server

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/shopspring/decimal"
)

// Request bodies carry plain JSON numbers. They are range-checked here and
// converted to decimals before reaching the calculators.

// PerksRequest mirrors domain.Perks
type PerksRequest struct {
	KmPerMonth             float64 `json:"km_per_month" validate:"gte=0"`
	HealthInsuranceMonthly float64 `json:"health_insurance_monthly" validate:"gte=0"`
	EducationMonthly       float64 `json:"education_monthly" validate:"gte=0"`
	RetirementContribution float64 `json:"retirement_contribution" validate:"gte=0"`
}

// InputRequest mirrors domain.CalculatorInput. Omitted work days and months
// fall back to the rate table defaults.
type InputRequest struct {
	DailyRate        float64  `json:"daily_rate" validate:"gt=0"`
	WorkDaysPerMonth *float64 `json:"work_days_per_month" validate:"omitempty,gte=0,lte=31"`
	MonthsPerYear    *float64 `json:"months_per_year" validate:"omitempty,gte=0,lte=12"`
	BusinessExpenses float64  `json:"business_expenses" validate:"gte=0"`

	IsNHR               bool    `json:"is_nhr"`
	MunicipalityBenefit float64 `json:"municipality_benefit" validate:"gte=0,lte=5"`
	SSAdjustment        float64 `json:"ss_adjustment" validate:"gte=-0.25,lte=0.25"`

	IncludeMealAllowance bool          `json:"include_meal_allowance"`
	AccountantMonthly    *float64      `json:"accountant_monthly" validate:"omitempty,gte=0"`
	OwnerSalary          *float64      `json:"owner_salary" validate:"omitempty,gte=0"`
	Perks                *PerksRequest `json:"perks"`

	EmployeeGrossSalary   float64 `json:"employee_gross_salary" validate:"gte=0"`
	EmployeeMealAllowance float64 `json:"employee_meal_allowance" validate:"gte=0"`
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func decPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := dec(*f)
	return &d
}

// ToInput converts the request into a calculator input
func (r InputRequest) ToInput(rt *domain.RateTable) domain.CalculatorInput {
	in := domain.CalculatorInput{
		DailyRate:             dec(r.DailyRate),
		WorkDaysPerMonth:      rt.Defaults.WorkDaysPerMonth,
		MonthsPerYear:         rt.Defaults.MonthsPerYear,
		BusinessExpenses:      dec(r.BusinessExpenses),
		IsNHR:                 r.IsNHR,
		MunicipalityBenefit:   dec(r.MunicipalityBenefit),
		SSAdjustment:          dec(r.SSAdjustment),
		IncludeMealAllowance:  r.IncludeMealAllowance,
		AccountantMonthly:     decPtr(r.AccountantMonthly),
		OwnerSalary:           decPtr(r.OwnerSalary),
		EmployeeGrossSalary:   dec(r.EmployeeGrossSalary),
		EmployeeMealAllowance: dec(r.EmployeeMealAllowance),
	}
	if r.WorkDaysPerMonth != nil {
		in.WorkDaysPerMonth = dec(*r.WorkDaysPerMonth)
	}
	if r.MonthsPerYear != nil {
		in.MonthsPerYear = dec(*r.MonthsPerYear)
	}
	if p := r.Perks; p != nil {
		in.Perks = &domain.Perks{
			KmPerMonth:             dec(p.KmPerMonth),
			HealthInsuranceMonthly: dec(p.HealthInsuranceMonthly),
			EducationMonthly:       dec(p.EducationMonthly),
			RetirementContribution: dec(p.RetirementContribution),
		}
	}
	return in
}

// SimulateRequest runs one regime, or all three when Regime is empty
type SimulateRequest struct {
	FiscalYear int          `json:"fiscal_year" validate:"omitempty,gte=2000,lte=2100"`
	Regime     string       `json:"regime" validate:"omitempty,oneof=contractor company employee"`
	Input      InputRequest `json:"input"`
}

// CompareRequest ranks the regimes against BaseRegime
type CompareRequest struct {
	FiscalYear int          `json:"fiscal_year" validate:"omitempty,gte=2000,lte=2100"`
	BaseRegime string       `json:"base_regime" validate:"omitempty,oneof=contractor company employee"`
	Input      InputRequest `json:"input"`
}

// BreakevenRequest searches the expense crossing. GrossIncome defaults to the
// gross implied by the input. The sweep length is also capped by the handler.
type BreakevenRequest struct {
	FiscalYear  int          `json:"fiscal_year" validate:"omitempty,gte=2000,lte=2100"`
	GrossIncome *float64     `json:"gross_income" validate:"omitempty,gte=0,lte=10000000"`
	Step        *float64     `json:"step" validate:"omitempty,gte=1"`
	KeepPoints  bool         `json:"keep_points"`
	Input       InputRequest `json:"input"`
}

// LiquidationRequest mirrors domain.LiquidationInput
type LiquidationRequest struct {
	FiscalYear        int     `json:"fiscal_year" validate:"omitempty,gte=2000,lte=2100"`
	AnnualGrossIncome float64 `json:"annual_gross_income" validate:"gte=0"`
	IncomeType        string  `json:"income_type" validate:"required,oneof=A B"`
	MaritalStatus     string  `json:"marital_status" validate:"omitempty,oneof=single married"`
	Dependents        int     `json:"dependents" validate:"gte=0,lte=20"`
	Expenses          float64 `json:"expenses" validate:"gte=0"`
	WithholdingTax    float64 `json:"withholding_tax" validate:"gte=0"`
}

// ToInput converts the request; marital status defaults to single
func (r LiquidationRequest) ToInput() domain.LiquidationInput {
	status := domain.MaritalStatus(r.MaritalStatus)
	if status == "" {
		status = domain.Single
	}
	return domain.LiquidationInput{
		AnnualGrossIncome: dec(r.AnnualGrossIncome),
		IncomeType:        domain.IncomeType(r.IncomeType),
		MaritalStatus:     status,
		Dependents:        r.Dependents,
		Expenses:          dec(r.Expenses),
		WithholdingTax:    dec(r.WithholdingTax),
	}
}

// SaveRequest persists a simulation for a user
type SaveRequest struct {
	FiscalYear int          `json:"fiscal_year" validate:"omitempty,gte=2000,lte=2100"`
	UserID     string       `json:"user_id" validate:"required,max=128"`
	Title      string       `json:"title" validate:"max=200"`
	Regime     string       `json:"regime" validate:"omitempty,oneof=contractor company employee"`
	Input      InputRequest `json:"input"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
