package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fullInputs() domain.CalculatorInputs {
	compound := domain.CompoundParams{
		Principal:           decimal.NewFromInt(100000),
		AnnualRatePct:       decimal.NewFromInt(10),
		Years:               5,
		CompoundingsPerYear: 12,
	}
	loan := defaultLoan()
	retirement := defaultRetirement()
	sip := domain.SipParams{MonthlyInvestment: decimal.NewFromInt(5000), Years: 10, AnnualReturnPct: decimal.NewFromInt(12)}
	afford := defaultAffordability()
	return domain.CalculatorInputs{
		CompoundInterest:  &compound,
		Loan:              &loan,
		Retirement:        &retirement,
		SIP:               &sip,
		HomeAffordability: &afford,
	}
}

func TestEngine_PreviewRunsEveryCalculator(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	defer SetNowFunc(time.Now)

	report, err := NewEngine().Preview(context.Background(), fullInputs())
	require.NoError(t, err)

	assert.Equal(t, fixed, report.GeneratedAt)
	require.NotNil(t, report.CompoundInterest)
	require.NotNil(t, report.Loan)
	require.NotNil(t, report.Retirement)
	require.NotNil(t, report.SIP)
	require.NotNil(t, report.HomeAffordability)
	assertNear(t, "164530.893478", report.CompoundInterest.FinalAmount, "0.000001")
	assertNear(t, "8678.232334", report.Loan.MonthlyPayment, "0.000001")
	assertNear(t, "1161695.381760", report.SIP.FutureValue, "0.0001")
	assert.Equal(t, 5, countResults(report))
}

func TestEngine_PreviewMatchesDirectCalls(t *testing.T) {
	in := fullInputs()
	report, err := NewEngine().Preview(context.Background(), in)
	require.NoError(t, err)

	direct, err := RetirementProjection(*in.Retirement)
	require.NoError(t, err)
	assert.Equal(t, direct, report.Retirement)
}

func TestEngine_PreviewPartialInputs(t *testing.T) {
	sip := domain.SipParams{MonthlyInvestment: decimal.NewFromInt(1000), Years: 1, AnnualReturnPct: decimal.NewFromInt(12)}
	report, err := NewEngine().Preview(context.Background(), domain.CalculatorInputs{SIP: &sip})
	require.NoError(t, err)

	assert.NotNil(t, report.SIP)
	assert.Nil(t, report.CompoundInterest)
	assert.Nil(t, report.Loan)
	assert.Nil(t, report.Retirement)
	assert.Nil(t, report.HomeAffordability)
	assert.Equal(t, 1, countResults(report))
}

func TestEngine_PreviewRejectsEmptyInputs(t *testing.T) {
	_, err := NewEngine().Preview(context.Background(), domain.CalculatorInputs{})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestEngine_PreviewWrapsCalculatorErrors(t *testing.T) {
	in := fullInputs()
	in.Loan.TermYears = 0

	_, err := NewEngine().Preview(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "loan: term_years must be greater than 0")
}

func TestEngine_PreviewHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Preview(ctx, fullInputs())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RecoversPanic(t *testing.T) {
	var err error
	require.NotPanics(t, func() {
		err = run(context.Background(), "retirement", func() error {
			decimal.NewFromInt(1).Div(decimal.Zero)
			return nil
		})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retirement: calculation failed")
	assert.NotErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestEngine_PreviewDeflationScenario(t *testing.T) {
	in := fullInputs()
	in.Retirement.RetirementAge = 100
	in.Retirement.InflationPct = decimal.NewFromInt(-50)

	report, err := NewEngine().Preview(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, report.Retirement)
	assert.True(t, report.Retirement.InflationAdjustedValue.GreaterThan(report.Retirement.FinalValue))
}

func TestEngine_LogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewEngine()
	e.SetLogger(NewZapLogger(zap.New(core)))

	_, err := e.CompoundInterest(domain.CompoundParams{Principal: decimal.NewFromInt(1000), AnnualRatePct: decimal.NewFromInt(5), Years: 2, CompoundingsPerYear: 1})
	require.NoError(t, err)
	_, err = e.SipProjection(domain.SipParams{MonthlyInvestment: decimal.NewFromInt(100)})
	require.Error(t, err)

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "calculation", entries[0].LoggerName)
	assert.Contains(t, entries[0].Message, "final=1102.50")
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Contains(t, entries[1].Message, "sip projection rejected")
}

func TestEngine_SetLoggerNilFallsBackToNop(t *testing.T) {
	e := NewEngine()
	e.SetLogger(nil)
	assert.IsType(t, NopLogger{}, e.Logger)

	z := NewZapLogger(nil)
	assert.NotPanics(t, func() { z.Infof("quiet %d", 1) })
}
