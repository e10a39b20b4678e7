package main

import (
	"fmt"

	"github.com/fincalc/projection-engine/internal/config"
	"github.com/fincalc/projection-engine/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) runCmd() *cobra.Command {
	var configPath, format, outDir string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every calculator in a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(configPath)
			if err != nil {
				return err
			}
			if !a.currencySet {
				a.currency = cfg.Currency.Symbol
			}
			if outDir == "" {
				return a.render(cmd, cfg.CalculatorInputs, format)
			}

			report, err := a.engine().Preview(cmd.Context(), cfg.CalculatorInputs)
			if err != nil {
				return err
			}
			report.Currency = a.currency
			report.Assumptions = cfg.GenerateAssumptions()

			paths, err := output.GenerateReport(report, format, outDir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				a.logger.Info("report written", zap.String("path", p))
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file (defaults to the example inputs)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format, or \"all\" with --out")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write the report to this directory instead of stdout")
	return cmd
}

func (a *app) exampleConfigCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example-config",
		Short: "Write an example configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "example_config.yaml", "destination file")
	return cmd
}
