package calculation

import (
	"context"
	"fmt"

	"github.com/fincalc/projection-engine/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Engine runs the projection calculators and logs each computation.
// It holds no state between calls and is safe for concurrent use.
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) CompoundInterest(p domain.CompoundParams) (*domain.CompoundResult, error) {
	res, err := CompoundInterest(p)
	if err != nil {
		e.Logger.Warnf("compound interest rejected: %v", err)
		return nil, err
	}
	e.Logger.Debugf("compound interest: principal=%s rate=%s%% years=%d n=%d final=%s",
		p.Principal, p.AnnualRatePct, p.Years, p.CompoundingsPerYear, res.FinalAmount.StringFixed(2))
	return res, nil
}

func (e *Engine) LoanAmortization(p domain.LoanParams) (*domain.LoanResult, error) {
	res, err := LoanAmortization(p)
	if err != nil {
		e.Logger.Warnf("loan amortization rejected: %v", err)
		return nil, err
	}
	e.Logger.Debugf("loan amortization: principal=%s rate=%s%% term=%dy payment=%s",
		p.Principal, p.AnnualRatePct, p.TermYears, res.MonthlyPayment.StringFixed(2))
	return res, nil
}

func (e *Engine) RetirementProjection(p domain.RetirementParams) (*domain.RetirementResult, error) {
	res, err := RetirementProjection(p)
	if err != nil {
		e.Logger.Warnf("retirement projection rejected: %v", err)
		return nil, err
	}
	e.Logger.Debugf("retirement projection: ages %d-%d return=%s%% final=%s",
		p.CurrentAge, p.RetirementAge, p.ExpectedReturnPct, res.FinalValue.StringFixed(2))
	return res, nil
}

func (e *Engine) SipProjection(p domain.SipParams) (*domain.SipResult, error) {
	res, err := SipProjection(p)
	if err != nil {
		e.Logger.Warnf("sip projection rejected: %v", err)
		return nil, err
	}
	e.Logger.Debugf("sip projection: monthly=%s years=%d return=%s%% future=%s",
		p.MonthlyInvestment, p.Years, p.AnnualReturnPct, res.FutureValue.StringFixed(2))
	return res, nil
}

func (e *Engine) HomeAffordability(p domain.AffordabilityParams) (*domain.AffordabilityResult, error) {
	res, err := HomeAffordability(p)
	if err != nil {
		e.Logger.Warnf("home affordability rejected: %v", err)
		return nil, err
	}
	e.Logger.Debugf("home affordability: income=%s debts=%s max_payment=%s max_price=%s",
		p.AnnualIncome, p.MonthlyDebts, res.MaxMonthlyPayment.StringFixed(2), res.MaxHousePrice.StringFixed(2))
	return res, nil
}

// Preview runs every calculator present in inputs concurrently and
// gathers the results into one report. The first failure cancels the rest.
func (e *Engine) Preview(ctx context.Context, in domain.CalculatorInputs) (*domain.ProjectionReport, error) {
	if in.IsEmpty() {
		return nil, fmt.Errorf("%w: no calculator inputs provided", domain.ErrInvalidParameter)
	}

	report := &domain.ProjectionReport{GeneratedAt: nowFunc()}
	g, ctx := errgroup.WithContext(ctx)

	// each goroutine writes a distinct field of report
	if in.CompoundInterest != nil {
		p := *in.CompoundInterest
		g.Go(func() error {
			return run(ctx, "compound interest", func() (err error) {
				report.CompoundInterest, err = e.CompoundInterest(p)
				return err
			})
		})
	}
	if in.Loan != nil {
		p := *in.Loan
		g.Go(func() error {
			return run(ctx, "loan", func() (err error) {
				report.Loan, err = e.LoanAmortization(p)
				return err
			})
		})
	}
	if in.Retirement != nil {
		p := *in.Retirement
		g.Go(func() error {
			return run(ctx, "retirement", func() (err error) {
				report.Retirement, err = e.RetirementProjection(p)
				return err
			})
		})
	}
	if in.SIP != nil {
		p := *in.SIP
		g.Go(func() error {
			return run(ctx, "sip", func() (err error) {
				report.SIP, err = e.SipProjection(p)
				return err
			})
		})
	}
	if in.HomeAffordability != nil {
		p := *in.HomeAffordability
		g.Go(func() error {
			return run(ctx, "home affordability", func() (err error) {
				report.HomeAffordability, err = e.HomeAffordability(p)
				return err
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.Logger.Infof("preview complete: %d calculators", countResults(report))
	return report, nil
}

// run calls fn unless ctx is already done. A panic in fn is returned as an
// error so one calculator cannot take down the process.
func run(ctx context.Context, name string, fn func() error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: calculation failed: %v", name, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func countResults(r *domain.ProjectionReport) int {
	n := 0
	if r.CompoundInterest != nil {
		n++
	}
	if r.Loan != nil {
		n++
	}
	if r.Retirement != nil {
		n++
	}
	if r.SIP != nil {
		n++
	}
	if r.HomeAffordability != nil {
		n++
	}
	return n
}
