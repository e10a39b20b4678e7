package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fincalc/projection-engine/internal/domain"
)

// ConsoleFormatter renders the detailed console report with yearly tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	sym := symbolOf(r)

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "FINANCIAL PROJECTION REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsOf(r) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if ci := r.CompoundInterest; ci != nil {
		section(&buf, "COMPOUND INTEREST")
		fmt.Fprintf(&buf, "Principal:          %s\n", FormatCurrency(ci.Params.Principal, sym))
		fmt.Fprintf(&buf, "Annual Rate:        %s\n", FormatPercentage(ci.Params.AnnualRatePct))
		fmt.Fprintf(&buf, "Compounding:        %s (%d periods)\n", ci.FrequencyLabel, ci.TimesCompounded)
		fmt.Fprintf(&buf, "Final Amount:       %s\n", FormatCurrency(ci.FinalAmount, sym))
		fmt.Fprintf(&buf, "Total Interest:     %s\n", FormatCurrency(ci.TotalInterest, sym))
		writeSeries(&buf, ci.YearlySeries, sym)
	}

	if l := r.Loan; l != nil {
		section(&buf, "LOAN AMORTIZATION")
		fmt.Fprintf(&buf, "Principal:          %s\n", FormatCurrency(l.Params.Principal, sym))
		fmt.Fprintf(&buf, "Annual Rate:        %s over %d years\n", FormatPercentage(l.Params.AnnualRatePct), l.Params.TermYears)
		fmt.Fprintf(&buf, "Monthly Payment:    %s\n", FormatCurrency(l.MonthlyPayment, sym))
		fmt.Fprintf(&buf, "Total Payment:      %s\n", FormatCurrency(l.TotalPayment, sym))
		fmt.Fprintf(&buf, "Total Interest:     %s\n", FormatCurrency(l.TotalInterest, sym))
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%-6s %20s %20s %20s\n", "Year", "Principal Paid", "Interest Paid", "Balance")
		for _, p := range l.YearlySeries {
			fmt.Fprintf(&buf, "%-6d %20s %20s %20s\n", p.Year,
				FormatCurrency(p.CumulativePrincipal, sym), FormatCurrency(p.CumulativeInterest, sym), FormatCurrency(p.Balance, sym))
		}
		fmt.Fprintln(&buf)
	}

	if rt := r.Retirement; rt != nil {
		section(&buf, "RETIREMENT PROJECTION")
		fmt.Fprintf(&buf, "Ages:               %d to %d (%d years)\n", rt.Params.CurrentAge, rt.Params.RetirementAge, rt.Years)
		fmt.Fprintf(&buf, "Expected Return:    %s\n", FormatPercentage(rt.Params.ExpectedReturnPct))
		fmt.Fprintf(&buf, "Corpus at Retirement: %s\n", FormatCurrency(rt.FinalValue, sym))
		fmt.Fprintf(&buf, "Total Investment:   %s\n", FormatCurrency(rt.TotalInvestment, sym))
		fmt.Fprintf(&buf, "Total Returns:      %s\n", FormatCurrency(rt.TotalReturns, sym))
		fmt.Fprintf(&buf, "In Today's Money:   %s (at %s inflation)\n", FormatCurrency(rt.InflationAdjustedValue, sym), FormatPercentage(rt.Params.InflationPct))
		writeSeries(&buf, rt.YearlySeries, sym)
	}

	if s := r.SIP; s != nil {
		section(&buf, "SIP PROJECTION")
		fmt.Fprintf(&buf, "Monthly Investment: %s for %d months\n", FormatCurrency(s.Params.MonthlyInvestment, sym), s.Months)
		fmt.Fprintf(&buf, "Expected Return:    %s\n", FormatPercentage(s.Params.AnnualReturnPct))
		fmt.Fprintf(&buf, "Future Value:       %s\n", FormatCurrency(s.FutureValue, sym))
		fmt.Fprintf(&buf, "Total Investment:   %s\n", FormatCurrency(s.TotalInvestment, sym))
		fmt.Fprintf(&buf, "Total Returns:      %s\n", FormatCurrency(s.TotalReturns, sym))
		writeSeries(&buf, s.YearlySeries, sym)
	}

	if a := r.HomeAffordability; a != nil {
		section(&buf, "HOME AFFORDABILITY")
		fmt.Fprintf(&buf, "Monthly Income:      %s\n", FormatCurrency(a.MonthlyIncome, sym))
		fmt.Fprintf(&buf, "Max Monthly Payment: %s\n", FormatCurrency(a.MaxMonthlyPayment, sym))
		fmt.Fprintf(&buf, "Max Loan Amount:     %s\n", FormatCurrency(a.MaxLoanAmount, sym))
		fmt.Fprintf(&buf, "Max House Price:     %s\n", FormatCurrency(a.MaxHousePrice, sym))
		for _, sl := range a.Breakdown {
			fmt.Fprintf(&buf, "  %-18s %s\n", sl.Label+":", FormatCurrency(sl.Value, sym))
		}
		fmt.Fprintln(&buf)
	}

	if hs := AnalyzeReport(r); len(hs) > 0 {
		fmt.Fprintln(&buf, "HIGHLIGHTS:")
		for _, h := range hs {
			fmt.Fprintf(&buf, "• %s: %s\n", h.Calculator, h.Summary)
		}
	}
	return buf.Bytes(), nil
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

func writeSeries(w io.Writer, series []domain.YearlyPoint, sym string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-10s %22s\n", "Period", "Value")
	for _, p := range series {
		fmt.Fprintf(w, "%-10s %22s\n", p.Label, FormatCurrency(p.Value, sym))
	}
	fmt.Fprintln(w)
}

// ConsoleSummaryFormatter provides a concise one-line-per-calculator summary.
type ConsoleSummaryFormatter struct{}

func (c ConsoleSummaryFormatter) Name() string { return "console-lite" }

func (c ConsoleSummaryFormatter) Format(r *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	sym := symbolOf(r)
	fmt.Fprintln(&buf, "PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if ci := r.CompoundInterest; ci != nil {
		fmt.Fprintf(&buf, "Compound Interest: Final=%s Interest=%s\n", FormatWhole(ci.FinalAmount, sym), FormatWhole(ci.TotalInterest, sym))
	}
	if l := r.Loan; l != nil {
		fmt.Fprintf(&buf, "Loan: Payment=%s TotalInterest=%s TotalPayment=%s\n",
			FormatWhole(l.MonthlyPayment, sym), FormatWhole(l.TotalInterest, sym), FormatWhole(l.TotalPayment, sym))
	}
	if rt := r.Retirement; rt != nil {
		fmt.Fprintf(&buf, "Retirement: Corpus=%s Invested=%s Returns=%s\n",
			FormatWhole(rt.FinalValue, sym), FormatWhole(rt.TotalInvestment, sym), FormatWhole(rt.TotalReturns, sym))
	}
	if s := r.SIP; s != nil {
		fmt.Fprintf(&buf, "SIP: FutureValue=%s Invested=%s Returns=%s\n",
			FormatWhole(s.FutureValue, sym), FormatWhole(s.TotalInvestment, sym), FormatWhole(s.TotalReturns, sym))
	}
	if a := r.HomeAffordability; a != nil {
		fmt.Fprintf(&buf, "Home Affordability: MaxPrice=%s MaxLoan=%s MaxPayment=%s\n",
			FormatWhole(a.MaxHousePrice, sym), FormatWhole(a.MaxLoanAmount, sym), FormatWhole(a.MaxMonthlyPayment, sym))
	}
	return buf.Bytes(), nil
}
