package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fincalc/projection-engine/internal/api"
	"github.com/fincalc/projection-engine/internal/ledger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) serveCmd() *cobra.Command {
	var configPath, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators and transactions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if !cmd.Flags().Changed("log-level") {
				logger, err := newLogger(cfg.Server.LogLevel)
				if err != nil {
					return err
				}
				a.logger = logger
			}
			if a.currencySet {
				cfg.Currency.Symbol = a.currency
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			book := ledger.NewBook(cfg.Transactions)
			srv := api.NewServer(a.engine(), book, api.Settings{Server: cfg.Server, Currency: cfg.Currency}, a.logger, nil)
			a.logger.Info("starting server",
				zap.String("addr", cfg.Server.Addr),
				zap.Int("transactions", book.Len()),
			)
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file (defaults to the example inputs)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the configuration")
	return cmd
}
