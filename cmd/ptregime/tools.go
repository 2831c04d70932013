package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/calendar"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/insights"
	"github.com/rgehrsitz/ptregime/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func thresholdsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "thresholds <annual-income>",
		Short: "Check annual income against the VAT exemption and simplified regime limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid annual income %q: %w", args[0], err)
			}
			if income.IsNegative() {
				return fmt.Errorf("annual income cannot be negative")
			}
			engine, err := opts.engine(0, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "FISCAL THRESHOLDS (%d)\n", engine.Rates.Metadata.FiscalYear)
			fmt.Fprintln(out, strings.Repeat("=", 80))
			fmt.Fprintf(out, "Annual income: %s\n\n", output.FormatCurrency(income))
			for _, a := range insights.CheckThresholds(income, engine.Rates) {
				fmt.Fprintf(out, "%-20s %-9s %7s of %s (remaining %s)\n",
					a.Name, strings.ToUpper(string(a.Status)),
					a.Usage.StringFixed(1)+"%",
					output.FormatCurrency(a.Limit),
					output.FormatCurrency(a.Remaining()))
			}
			return nil
		},
	}
}

func hardwareCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hardware <price-inc-vat>",
		Short: "Compare buying equipment through the company with buying it personally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[0], err)
			}
			if price.IsNegative() {
				return fmt.Errorf("price cannot be negative")
			}
			engine, err := opts.engine(0, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			c := insights.CompareHardwarePurchase(price, engine.Rates)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "HARDWARE PURCHASE")
			fmt.Fprintln(out, strings.Repeat("=", 80))
			fmt.Fprintf(out, "  %-24s %12s\n", "Price (VAT included)", output.FormatCurrency(c.PriceIncVAT))
			fmt.Fprintf(out, "  %-24s %12s\n", "Net price", output.FormatCurrency(c.NetPrice))
			fmt.Fprintf(out, "  %-24s %12s\n", "VAT recovered", output.FormatCurrency(c.VATRecovered))
			fmt.Fprintf(out, "  %-24s %12s\n", "IRC savings", output.FormatCurrency(c.IRCSavings))
			fmt.Fprintf(out, "  %-24s %12s\n", "Real cost via company", output.FormatCurrency(c.CompanyRealCost))
			fmt.Fprintf(out, "  %-24s %12s\n", "Cost as an individual", output.FormatCurrency(c.IndividualCost))
			fmt.Fprintf(out, "  %-24s %12s\n", "Savings", output.FormatCurrency(c.TotalSavings))
			return nil
		},
	}
}

func irsCmd(opts *globalOptions) *cobra.Command {
	var incomeType, marital string
	var dependents int
	var expenses, withholding float64

	cmd := &cobra.Command{
		Use:   "irs <annual-gross-income>",
		Short: "Estimate the year-end IRS settlement",
		Long: "Estimate the annual IRS liquidation for category A (employment) or B (self-employment) " +
			"income, including household splitting, dependent deductions and withholding already paid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gross, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid income %q: %w", args[0], err)
			}
			in := domain.LiquidationInput{
				AnnualGrossIncome: gross,
				IncomeType:        domain.IncomeType(strings.ToUpper(incomeType)),
				MaritalStatus:     domain.MaritalStatus(marital),
				Dependents:        dependents,
				Expenses:          decimal.NewFromFloat(expenses),
				WithholdingTax:    decimal.NewFromFloat(withholding),
			}
			if err := in.Validate(); err != nil {
				return err
			}
			engine, err := opts.engine(0, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			r := calculation.CalculateAnnualLiquidation(in, engine.Rates)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "IRS SETTLEMENT (%d)\n", engine.Rates.Metadata.FiscalYear)
			fmt.Fprintln(out, strings.Repeat("=", 80))
			fmt.Fprintf(out, "  %-20s %12s\n", "Taxable income", output.FormatCurrency(r.TaxableIncome))
			fmt.Fprintf(out, "  %-20s %12s\n", "Gross tax", output.FormatCurrency(r.GrossTax))
			fmt.Fprintf(out, "  %-20s %12s\n", "Deductions", output.FormatCurrency(r.Deductions))
			fmt.Fprintf(out, "  %-20s %12s\n", "Net tax", output.FormatCurrency(r.NetTax))
			fmt.Fprintf(out, "  %-20s %12s\n", "Effective rate", output.FormatPercentage(r.EffectiveRate.Mul(decimal.NewFromInt(100))))
			if r.IsRefund() {
				fmt.Fprintf(out, "  %-20s %12s\n", "Refund", output.FormatCurrency(r.Balance.Neg()))
			} else {
				fmt.Fprintf(out, "  %-20s %12s\n", "To pay", output.FormatCurrency(r.Balance))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&incomeType, "type", "B", "Income category: A or B")
	cmd.Flags().StringVar(&marital, "marital", string(domain.Single), "Marital status: single or married")
	cmd.Flags().IntVar(&dependents, "dependents", 0, "Number of dependents")
	cmd.Flags().Float64Var(&expenses, "expenses", 0, "Deductible personal expenses")
	cmd.Flags().Float64Var(&withholding, "withholding", 0, "IRS already withheld during the year")
	return cmd
}

func calendarCmd(opts *globalOptions) *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List tax obligation deadlines",
		Long: "List the social security, IRS withholding and quarterly VAT deadlines for a year " +
			"(--year, default current) or for one month with --month.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 0 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12")
			}
			now := time.Now()
			year := now.Year()
			if cmd.Flags().Changed("year") {
				year = opts.year
			}

			var events []calendar.Event
			if month == 0 {
				events = calendar.Year(year, time.Local)
			} else {
				events = calendar.Month(year, time.Month(month), time.Local)
				if year == now.Year() && time.Month(month) == now.Month() {
					events = calendar.Upcoming(now)
				}
			}

			out := cmd.OutOrStdout()
			for _, e := range events {
				status := ""
				if e.Status != "" {
					status = " [" + string(e.Status) + "]"
				}
				fmt.Fprintf(out, "%s  %-4s %s%s\n", e.Date.Format("2006-01-02"), strings.ToUpper(string(e.Type)), e.Title, status)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Only list this month (1-12)")
	return cmd
}
