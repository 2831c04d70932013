package main

import (
	"fmt"

	"github.com/rgehrsitz/ptregime/internal/config"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func ratesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Inspect and validate fiscal rate tables",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the rate table for --year as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			rt, err := reg.Get(opts.year)
			if err != nil {
				return fmt.Errorf("%w (available: %v)", err, reg.Years())
			}
			data, err := yaml.Marshal(rt)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <rates-file>",
		Short: "Validate a rate table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := config.NewRateTableParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rate table for %d is valid (%d IRS brackets)\n",
				rt.Metadata.FiscalYear, len(rt.IRS.Brackets))
			return nil
		},
	}

	var outFile string
	deriveCmd := &cobra.Command{
		Use:   "derive <rates-file>",
		Short: "Recompute IRS bracket deductions so the schedule is continuous",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := &config.RateTableParser{DeriveDeductions: true}
			rt, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, b := range rt.IRS.Brackets {
				fmt.Fprintf(out, "  up to %-12s rate %-8s deduction %s\n", bracketLimit(b), b.Rate.String(), b.Deduction.StringFixed(2))
			}
			if outFile == "" {
				return nil
			}
			if err := output.SaveRateTable(rt, outFile); err != nil {
				return fmt.Errorf("save rate table: %w", err)
			}
			fmt.Fprintf(out, "Rate table written to %s\n", outFile)
			return nil
		},
	}
	deriveCmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the corrected table to this file")

	cmd.AddCommand(showCmd, validateCmd, deriveCmd)
	return cmd
}

func bracketLimit(b domain.Bracket) string {
	if b.IsUnbounded() {
		return "-"
	}
	return b.Limit.StringFixed(2)
}
