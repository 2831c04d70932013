package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ptregime/internal/breakeven"
	"github.com/rgehrsitz/ptregime/internal/compare"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var reportExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"json":         "json",
	"html":         "html",
}

func simulateCmd(opts *globalOptions) *cobra.Command {
	var in inputFlags
	var format, regime string
	var save bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Calculate net income under each tax regime",
		Long: "Simulate a year of work under every regime (or one with --regime) and print the " +
			"tax breakdown, fiscal threshold checks and a recommendation.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, input, err := in.resolve(cmd, opts)
			if err != nil {
				return err
			}

			formatter, err := output.Get(format)
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(output.Names(), ", "))
			}

			report := output.BuildReport(engine, input)
			if regime != "" {
				r, err := domain.ParseRegime(regime)
				if err != nil {
					return err
				}
				report.Results = []domain.TaxBreakdown{engine.Calculate(r, input)}
			}

			if save {
				filename, err := output.WriteFormatted(formatter, report, reportExtensions[format])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := formatter.Format(report)
			if err != nil {
				return fmt.Errorf("format %s report: %w", format, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, console-lite, csv, json, html")
	cmd.Flags().StringVar(&regime, "regime", "", "Only calculate one regime: contractor, company or employee")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func compareCmd(opts *globalOptions) *cobra.Command {
	var in inputFlags
	var format, base, baseScenario string
	var against []string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare regimes or scenarios against a base",
		Long: "Compare every regime on the same input against a base regime. With --base-scenario, " +
			"compare the named scenarios of --scenarios instead, each under its own regime.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, input, err := in.resolve(cmd, opts)
			if err != nil {
				return err
			}
			compareEngine := compare.NewCompareEngine(engine)

			var set *compare.ComparisonSet
			if baseScenario != "" {
				if in.scenarioFile == "" {
					return fmt.Errorf("--base-scenario requires --scenarios")
				}
				file, err := loadScenarios(in.scenarioFile)
				if err != nil {
					return err
				}
				set, err = compareEngine.CompareScenarios(contextOf(cmd), file.Scenarios, baseScenario, against)
				if err != nil {
					return err
				}
				set.Source = in.scenarioFile
			} else {
				set, err = compareEngine.Compare(contextOf(cmd), input, compare.CompareOptions{
					BaseRegime: domain.Regime(base),
					Source:     in.scenarioFile,
				})
				if err != nil {
					return err
				}
			}

			return writeComparison(cmd, set, format)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, compact, csv, json")
	cmd.Flags().StringVar(&base, "base", string(domain.RegimeContractor), "Base regime: contractor, company or employee")
	cmd.Flags().StringVar(&baseScenario, "base-scenario", "", "Compare scenarios from --scenarios against this one")
	cmd.Flags().StringSliceVar(&against, "against", nil, "Scenario names to compare (default: all others)")
	return cmd
}

func writeComparison(cmd *cobra.Command, set *compare.ComparisonSet, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "table":
		tf := &compare.TableFormatter{}
		fmt.Fprint(out, tf.Format(set))
	case "compact":
		tf := &compare.TableFormatter{}
		fmt.Fprint(out, tf.FormatCompact(set))
	case "csv":
		cf := &compare.CSVFormatter{}
		data, err := cf.Format(set)
		if err != nil {
			return err
		}
		fmt.Fprint(out, data)
	case "json":
		jf := &compare.JSONFormatter{Pretty: true}
		data, err := jf.Format(set)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, data)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

func breakevenCmd(opts *globalOptions) *cobra.Command {
	var in inputFlags
	var format string
	var step, minRate, maxRate, rateStep float64
	var showPoints bool

	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the expense level where the company regime overtakes recibos verdes",
		Long: "Sweep business expenses from zero up to the rate table's ratio of gross income and " +
			"report the first level at which the better regime changes. With --min-rate and --max-rate, " +
			"repeat the search for a range of daily rates.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, input, err := in.resolve(cmd, opts)
			if err != nil {
				return err
			}

			options := breakeven.DefaultSolverOptions(engine.Rates)
			if cmd.Flags().Changed("step") {
				options.Step = decimal.NewFromFloat(step)
			}
			if err := options.Validate(); err != nil {
				return err
			}
			solver := breakeven.NewSolver(engine, options)
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("min-rate") || cmd.Flags().Changed("max-rate") {
				rates := breakeven.RateRange(decimal.NewFromFloat(minRate), decimal.NewFromFloat(maxRate), decimal.NewFromFloat(rateStep))
				points, err := solver.Curve(contextOf(cmd), input, rates)
				if err != nil {
					return err
				}
				switch format {
				case "table":
					tf := &breakeven.TableFormatter{}
					fmt.Fprint(out, tf.FormatCurve(points))
				case "json":
					jf := &breakeven.JSONFormatter{Pretty: true}
					data, err := jf.FormatCurve(points)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, data)
				default:
					return fmt.Errorf("unsupported format for a rate curve: %s", format)
				}
				return nil
			}

			gross := engine.Normalize(input).GrossAnnual()
			result := solver.Find(gross, input)
			switch format {
			case "table":
				tf := &breakeven.TableFormatter{ShowPoints: showPoints}
				fmt.Fprint(out, tf.Format(&result))
			case "json":
				jf := &breakeven.JSONFormatter{Pretty: true}
				data, err := jf.Format(&result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
			case "csv":
				data, err := breakeven.CSVFormatter{}.Format(&result)
				if err != nil {
					return err
				}
				fmt.Fprint(out, data)
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
			return nil
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json, csv")
	cmd.Flags().Float64Var(&step, "step", 0, "Expense sweep increment (default from the rate table)")
	cmd.Flags().BoolVar(&showPoints, "points", false, "Print every sampled expense level")
	cmd.Flags().Float64Var(&minRate, "min-rate", 200, "Lowest daily rate of a breakeven curve")
	cmd.Flags().Float64Var(&maxRate, "max-rate", 800, "Highest daily rate of a breakeven curve")
	cmd.Flags().Float64Var(&rateStep, "rate-step", 50, "Daily rate increment of a breakeven curve")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
