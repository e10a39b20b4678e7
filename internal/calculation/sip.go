package calculation

import (
	"fmt"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// sipFutureValue is the annuity-due value of months contributions of
// amount at monthly rate m. A zero rate is plain summation.
func sipFutureValue(amount, m decimal.Decimal, months int) decimal.Decimal {
	if m.IsZero() {
		return amount.Mul(decimal.NewFromInt(int64(months)))
	}
	growth := one.Add(m)
	accumulated := powInt(growth, int64(months)).Sub(one).DivRound(m, calcScale)
	return amount.Mul(accumulated).Mul(growth).Round(calcScale)
}

// SipProjection values a systematic monthly investment plan
func SipProjection(p domain.SipParams) (*domain.SipResult, error) {
	if err := domain.Validate(p); err != nil {
		return nil, err
	}

	m := monthlyRate(p.AnnualReturnPct)
	months := p.Months()

	series := make([]domain.YearlyPoint, 0, p.Years+1)
	for year := 0; year <= p.Years; year++ {
		series = append(series, domain.YearlyPoint{
			Year:  year,
			Label: fmt.Sprintf("Yr %d", year),
			Value: sipFutureValue(p.MonthlyInvestment, m, year*12),
		})
	}

	future := series[len(series)-1].Value
	invested := p.MonthlyInvestment.Mul(decimal.NewFromInt(int64(months)))

	return &domain.SipResult{
		Params:          p,
		Months:          months,
		FutureValue:     future,
		TotalInvestment: invested,
		TotalReturns:    future.Sub(invested),
		YearlySeries:    series,
	}, nil
}
