package main

import (
	"fmt"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/fincalc/projection-engine/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// decimalValue lets a decimal.Decimal be set from a command-line flag
type decimalValue struct{ d *decimal.Decimal }

func newDecimalValue(def string, p *decimal.Decimal) *decimalValue {
	*p = decimal.RequireFromString(def)
	return &decimalValue{d: p}
}

func (v *decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v *decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*v.d = d
	return nil
}

func (v *decimalValue) Type() string { return "decimal" }

// render previews in and writes the report in format to the command's output
func (a *app) render(cmd *cobra.Command, in domain.CalculatorInputs, format string) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %v", output.ErrUnsupportedFormat, format, output.AvailableFormatterNames())
	}
	report, err := a.engine().Preview(cmd.Context(), in)
	if err != nil {
		return err
	}
	report.Currency = a.currency
	report.Assumptions = in.GenerateAssumptions()

	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", f.Name(), err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func formatFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVarP(p, "format", "f", "console", "output format: "+fmt.Sprint(output.AvailableFormatterNames()))
}

func (a *app) compoundCmd() *cobra.Command {
	var p domain.CompoundParams
	var format string
	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Grow a lump sum under periodic compounding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, domain.CalculatorInputs{CompoundInterest: &p}, format)
		},
	}
	cmd.Flags().Var(newDecimalValue("100000", &p.Principal), "principal", "amount invested")
	cmd.Flags().Var(newDecimalValue("10", &p.AnnualRatePct), "rate", "annual interest rate in percent")
	cmd.Flags().IntVar(&p.Years, "years", 5, "investment horizon in years")
	cmd.Flags().IntVar(&p.CompoundingsPerYear, "frequency", 12, "compoundings per year (1, 2, 4, 12, 365)")
	formatFlag(cmd, &format)
	return cmd
}

func (a *app) loanCmd() *cobra.Command {
	var p domain.LoanParams
	var format string
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Amortize a fixed-rate loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, domain.CalculatorInputs{Loan: &p}, format)
		},
	}
	cmd.Flags().Var(newDecimalValue("1000000", &p.Principal), "principal", "amount borrowed")
	cmd.Flags().Var(newDecimalValue("8.5", &p.AnnualRatePct), "rate", "annual interest rate in percent")
	cmd.Flags().IntVar(&p.TermYears, "term", 20, "loan term in years")
	formatFlag(cmd, &format)
	return cmd
}

func (a *app) retirementCmd() *cobra.Command {
	var p domain.RetirementParams
	var format string
	cmd := &cobra.Command{
		Use:   "retirement",
		Short: "Project savings until retirement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, domain.CalculatorInputs{Retirement: &p}, format)
		},
	}
	cmd.Flags().IntVar(&p.CurrentAge, "current-age", 30, "current age")
	cmd.Flags().IntVar(&p.RetirementAge, "retirement-age", 60, "age at retirement")
	cmd.Flags().Var(newDecimalValue("10000", &p.MonthlyContribution), "monthly", "monthly contribution")
	cmd.Flags().Var(newDecimalValue("100000", &p.CurrentSavings), "savings", "current savings")
	cmd.Flags().Var(newDecimalValue("8", &p.ExpectedReturnPct), "return", "expected annual return in percent")
	cmd.Flags().Var(newDecimalValue("3", &p.InflationPct), "inflation", "annual inflation in percent, reported only")
	formatFlag(cmd, &format)
	return cmd
}

func (a *app) sipCmd() *cobra.Command {
	var p domain.SipParams
	var format string
	cmd := &cobra.Command{
		Use:   "sip",
		Short: "Project a systematic monthly investment plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, domain.CalculatorInputs{SIP: &p}, format)
		},
	}
	cmd.Flags().Var(newDecimalValue("5000", &p.MonthlyInvestment), "monthly", "monthly investment")
	cmd.Flags().IntVar(&p.Years, "years", 10, "investment horizon in years")
	cmd.Flags().Var(newDecimalValue("12", &p.AnnualReturnPct), "return", "expected annual return in percent")
	formatFlag(cmd, &format)
	return cmd
}

func (a *app) affordCmd() *cobra.Command {
	var p domain.AffordabilityParams
	var format string
	cmd := &cobra.Command{
		Use:     "afford",
		Aliases: []string{"affordability"},
		Short:   "Estimate the most expensive home within the 28/36 ratios",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, domain.CalculatorInputs{HomeAffordability: &p}, format)
		},
	}
	cmd.Flags().Var(newDecimalValue("1200000", &p.AnnualIncome), "income", "gross annual income")
	cmd.Flags().Var(newDecimalValue("20000", &p.MonthlyDebts), "debts", "existing monthly debt payments")
	cmd.Flags().Var(newDecimalValue("2000000", &p.DownPayment), "down-payment", "cash available as down payment")
	cmd.Flags().Var(newDecimalValue("8.5", &p.AnnualRatePct), "rate", "mortgage rate in percent")
	cmd.Flags().IntVar(&p.TermYears, "term", 20, "mortgage term in years")
	formatFlag(cmd, &format)
	return cmd
}
