package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/config"
	"github.com/rgehrsitz/ptregime/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ptregime %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	year     int
	ratesDir string
	debug    bool
}

// registry returns the built-in rate tables plus any found in --rates-dir
func (o *globalOptions) registry() (*config.RateRegistry, error) {
	reg := config.NewRateRegistry()
	if o.ratesDir != "" {
		if err := reg.LoadDir(o.ratesDir, nil); err != nil {
			return nil, fmt.Errorf("load rate tables: %w", err)
		}
	}
	return reg, nil
}

// engine builds a calculation engine for year. Zero falls back to --year.
func (o *globalOptions) engine(year int, stderr io.Writer) (*calculation.CalculationEngine, error) {
	if year == 0 {
		year = o.year
	}
	reg, err := o.registry()
	if err != nil {
		return nil, err
	}
	rt, err := reg.Get(year)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngine(rt)
	if o.debug {
		logger, err := logging.New("debug", "console")
		if err != nil {
			fmt.Fprintf(stderr, "Warning: debug logging unavailable: %v\n", err)
		} else {
			engine.SetLogger(logging.Sugared(logger))
		}
	}
	return engine, nil
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "ptregime",
		Short: "Portuguese freelancer tax regime simulator",
		Long: "Compare the net income of a Portuguese freelancer working as a simplified-regime " +
			"contractor (recibos verdes), through a single-member company (unipessoal) or as an employee.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().IntVar(&opts.year, "year", 2025, "Fiscal year of the rate table")
	rootCmd.PersistentFlags().StringVar(&opts.ratesDir, "rates-dir", "", "Directory of additional rate table YAML files")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable detailed debug output for calculations")

	rootCmd.AddCommand(simulateCmd(opts))
	rootCmd.AddCommand(compareCmd(opts))
	rootCmd.AddCommand(breakevenCmd(opts))
	rootCmd.AddCommand(thresholdsCmd(opts))
	rootCmd.AddCommand(hardwareCmd(opts))
	rootCmd.AddCommand(irsCmd(opts))
	rootCmd.AddCommand(calendarCmd(opts))
	rootCmd.AddCommand(ratesCmd(opts))
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
