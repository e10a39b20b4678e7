package main

import (
	"fmt"

	calc "github.com/fincalc/projection-engine/internal/calculation"
	"github.com/fincalc/projection-engine/internal/config"
	"github.com/fincalc/projection-engine/internal/domain"
	money "github.com/fincalc/projection-engine/pkg/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries state shared by every subcommand
type app struct {
	logLevel    string
	currency    string
	currencySet bool
	logger      *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "fincalc",
		Short:        "Personal finance projections and spending reports",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			a.currencySet = cmd.Flags().Changed("currency")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.currency, "currency", money.DefaultSymbol, "currency symbol used in reports")

	root.AddCommand(
		a.compoundCmd(),
		a.loanCmd(),
		a.retirementCmd(),
		a.sipCmd(),
		a.affordCmd(),
		a.runCmd(),
		a.exampleConfigCmd(),
		a.transactionsCmd(),
		a.serveCmd(),
	)
	return root
}

// newLogger builds a console zap logger writing to stderr
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func (a *app) engine() *calc.Engine {
	e := calc.NewEngine()
	e.SetLogger(calc.NewZapLogger(a.logger))
	return e
}

// loadConfig reads a configuration file, or the built-in example when path is empty
func (a *app) loadConfig(path string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	if path == "" {
		return parser.CreateExampleConfiguration(), nil
	}
	cfg, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("configuration loaded", zap.String("path", path))
	return cfg, nil
}
