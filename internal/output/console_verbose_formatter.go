package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/insights"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders every line item of every regime
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, "PORTUGUESE TAX REGIME ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range r.Assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	in := r.Input
	fmt.Fprintln(&buf, "INPUT")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Daily Rate:          %s\n", FormatCurrency(in.DailyRate))
	fmt.Fprintf(&buf, "  Days per Month:      %s\n", in.WorkDaysPerMonth.String())
	fmt.Fprintf(&buf, "  Months per Year:     %s\n", in.MonthsPerYear.String())
	fmt.Fprintf(&buf, "  Business Expenses:   %s\n", FormatCurrency(in.BusinessExpenses))
	fmt.Fprintln(&buf)

	for i, b := range r.Results {
		fmt.Fprintf(&buf, "REGIME %d: %s\n", i+1, b.Regime.DisplayName())
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeLine(&buf, "Gross Annual", b.GrossAnnual)
		writeLine(&buf, "Social Security", b.SS)
		writeLine(&buf, "IRS / Taxes", b.IRS)
		if !b.OperatingCosts.IsZero() {
			writeLine(&buf, "Operating Costs", b.OperatingCosts)
		}
		if !b.UntaxedAllowances.IsZero() {
			writeLine(&buf, "Untaxed Allowances", b.UntaxedAllowances)
		}
		writeLine(&buf, "NET ANNUAL", b.NetAnnual)
		writeLine(&buf, "Net Monthly", b.NetMonthly)
		fmt.Fprintf(&buf, "  %-22s %s\n", "Effective Rate:", FormatPercentage(b.EffectiveTaxRate.Mul(hundred)))
		writeDetail(&buf, b)
		fmt.Fprintln(&buf)
	}

	if len(r.Thresholds) > 0 {
		fmt.Fprintln(&buf, "FISCAL THRESHOLDS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, a := range r.Thresholds {
			fmt.Fprintf(&buf, "  %-18s %s of %s (%s)\n", a.Name, FormatPercentage(a.Usage), FormatCurrency(a.Limit), a.Status)
		}
		if !insights.AllSafe(r.Thresholds) {
			fmt.Fprintln(&buf, "  ⚠ income is close to or above a fiscal ceiling")
		}
		fmt.Fprintln(&buf)
	}

	if best, ok := r.Best(); ok {
		fmt.Fprintf(&buf, "RECOMMENDATION: %s (%s net per year)\n", best.Regime.DisplayName(), FormatCurrency(best.NetAnnual))
	}
	return buf.Bytes(), nil
}

func writeLine(buf *bytes.Buffer, label string, v decimal.Decimal) {
	fmt.Fprintf(buf, "  %-22s %s\n", label+":", FormatCurrency(v))
}

func writeDetail(buf *bytes.Buffer, b domain.TaxBreakdown) {
	switch {
	case b.Contractor != nil:
		c := b.Contractor
		fmt.Fprintln(buf, "  Detail:")
		writeLine(buf, "  Taxable Income", c.TaxableIncome)
		writeLine(buf, "  SS Base", c.SSBase)
		writeLine(buf, "  Gross Tax", c.GrossTax)
		writeLine(buf, "  Personal Deduction", c.PersonalDeduction)
		if !c.MunicipalReduction.IsZero() {
			writeLine(buf, "  Municipal Reduction", c.MunicipalReduction)
		}
	case b.Company != nil:
		c := b.Company
		fmt.Fprintln(buf, "  Detail:")
		writeLine(buf, "  Owner Salary", c.OwnerSalary)
		writeLine(buf, "  TSU Company", c.TSUCompany)
		writeLine(buf, "  TSU Worker", c.TSUWorker)
		writeLine(buf, "  Salary IRS", c.SalaryIRS)
		writeLine(buf, "  Total Costs", c.TotalCosts)
		writeLine(buf, "  Profit", c.Profit)
		writeLine(buf, "  IRC", c.IRC)
		writeLine(buf, "  Derrama", c.Derrama)
		writeLine(buf, "  Dividend Tax", c.DividendTax)
		writeLine(buf, "  Net Dividend", c.NetDividend)
	case b.Employee != nil:
		e := b.Employee
		fmt.Fprintln(buf, "  Detail:")
		writeLine(buf, "  Specific Deduction", e.SpecificDeduction)
		writeLine(buf, "  Taxable Income", e.TaxableIncome)
		writeLine(buf, "  Net per Payment", e.NetPerPayment)
	}
}
