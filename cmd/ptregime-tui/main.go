package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/ptregime/internal/config"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/tui"
)

func main() {
	var scenarioPath, ratesFile string
	var rate float64

	rootCmd := &cobra.Command{
		Use:   "ptregime-tui",
		Short: "Interactive Portuguese tax regime simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check if scenario file exists
			if scenarioPath != "" {
				if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
					return fmt.Errorf("scenario file not found: %s", scenarioPath)
				}
			}

			opts := tui.Options{ScenarioPath: scenarioPath}
			if ratesFile != "" {
				rt, err := config.NewRateTableParser().LoadFromFile(ratesFile)
				if err != nil {
					return err
				}
				opts.Rates = rt
			}
			if rate > 0 {
				rt := opts.Rates
				if rt == nil {
					rt = domain.Portugal2025()
				}
				in := domain.DefaultInput(rt)
				in.DailyRate = decimal.NewFromFloat(rate)
				opts.Input = &in
			}

			p := tea.NewProgram(
				tui.NewModel(opts),
				tea.WithAltScreen(),       // Use alternate screen buffer
				tea.WithMouseCellMotion(), // Enable mouse support
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}
	rootCmd.Flags().StringVar(&scenarioPath, "scenarios", "", "YAML file of named scenarios to browse")
	rootCmd.Flags().StringVar(&ratesFile, "rates", "", "Rate table file (default: built-in 2025 table)")
	rootCmd.Flags().Float64Var(&rate, "rate", 0, "Starting daily rate in euros")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
