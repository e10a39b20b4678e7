package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fincalc/projection-engine/internal/ledger"
	"github.com/fincalc/projection-engine/internal/output"
	money "github.com/fincalc/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// book loads transactions from the configuration file, falling back to the samples
func (a *app) book(configPath string) (*ledger.Book, error) {
	if configPath == "" {
		return ledger.NewBook(nil), nil
	}
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if !a.currencySet {
		a.currency = cfg.Currency.Symbol
	}
	return ledger.NewBook(cfg.Transactions), nil
}

func (a *app) transactionsCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Browse and export recorded transactions",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file with transactions (defaults to the sample set)")

	cmd.AddCommand(
		a.txListCmd(&configPath),
		a.txMonthsCmd(&configPath),
		a.txSpendingCmd(&configPath),
		a.txStatementCmd(&configPath),
		a.txInsightsCmd(),
	)
	return cmd
}

// filterFlags registers the listing filters shared by list and spending
func filterFlags(cmd *cobra.Command, category, rng, minAmt, maxAmt *string) {
	cmd.Flags().StringVar(category, "category", ledger.AllCategories, "category to include")
	cmd.Flags().StringVar(rng, "range", string(ledger.AllTime), "date range: all, this-week, this-month, last-3-months")
	cmd.Flags().StringVar(minAmt, "min", "", "minimum amount, inclusive")
	cmd.Flags().StringVar(maxAmt, "max", "", "maximum amount, inclusive")
}

func buildFilter(category, rng, minAmt, maxAmt string) (ledger.Filter, error) {
	r, err := ledger.ParseDateRange(rng)
	if err != nil {
		return ledger.Filter{}, err
	}
	f := ledger.Filter{Category: category, Range: r}
	for _, b := range []struct {
		raw string
		dst **decimal.Decimal
	}{{minAmt, &f.MinAmount}, {maxAmt, &f.MaxAmount}} {
		if b.raw == "" {
			continue
		}
		m, err := money.NewMoneyFromString(b.raw)
		if err != nil {
			return ledger.Filter{}, fmt.Errorf("invalid amount %q: %w", b.raw, err)
		}
		*b.dst = &m.Decimal
	}
	return f, nil
}

func (a *app) txListCmd(configPath *string) *cobra.Command {
	var category, rng, minAmt, maxAmt string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.book(*configPath)
			if err != nil {
				return err
			}
			f, err := buildFilter(category, rng, minAmt, maxAmt)
			if err != nil {
				return err
			}
			txs, err := b.List(f)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tTITLE\tCATEGORY\tAMOUNT")
			for _, tx := range txs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", tx.ID, tx.Date.Format("Jan 2, 2006"), tx.Title, tx.Category, output.FormatCurrency(tx.Amount, a.currency))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d transaction(s)\n", len(txs))
			return nil
		},
	}
	filterFlags(cmd, &category, &rng, &minAmt, &maxAmt)
	return cmd
}

func (a *app) txMonthsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the months that have transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.book(*configPath)
			if err != nil {
				return err
			}
			for _, m := range b.AvailableMonths() {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
}

func (a *app) txSpendingCmd(configPath *string) *cobra.Command {
	var category, rng, minAmt, maxAmt string
	cmd := &cobra.Command{
		Use:   "spending",
		Short: "Total the matching transactions per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.book(*configPath)
			if err != nil {
				return err
			}
			f, err := buildFilter(category, rng, minAmt, maxAmt)
			if err != nil {
				return err
			}
			totals, err := b.SpendingByCategory(f)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE")
			for _, s := range totals {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Category, output.FormatCurrency(s.Amount, a.currency), output.FormatPercentage(s.Percentage))
			}
			return tw.Flush()
		},
	}
	filterFlags(cmd, &category, &rng, &minAmt, &maxAmt)
	return cmd
}

func (a *app) txStatementCmd(configPath *string) *cobra.Command {
	var month, format, outDir string
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Export one month of transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.book(*configPath)
			if err != nil {
				return err
			}
			if month == "" {
				months := b.AvailableMonths()
				if len(months) == 0 {
					return ledger.ErrNoTransactions
				}
				month = months[0]
			}
			st, err := b.MonthlyStatement(month)
			if err != nil {
				return err
			}
			exporter := output.StatementExporter{Symbol: a.currency}
			data, err := exporter.Export(st, format)
			if err != nil {
				return err
			}
			if outDir == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			path := filepath.Join(outDir, exporter.Filename(st, format))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write statement: %w", err)
			}
			a.logger.Info("statement written", zap.String("path", path), zap.Int("transactions", st.Count))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (defaults to the latest month)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", fmt.Sprintf("export format: %v", output.StatementFormats()))
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write the statement into this directory instead of stdout")
	return cmd
}

func (a *app) txInsightsCmd() *cobra.Command {
	var timeframe string
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show baseline spending per category for a timeframe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spend, err := ledger.Insights(timeframe)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE")
			for _, s := range spend {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Category, output.FormatCurrency(s.Amount, a.currency), output.FormatPercentage(s.Percentage))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", string(ledger.Daily), "Daily, Weekly or Monthly")
	return cmd
}
