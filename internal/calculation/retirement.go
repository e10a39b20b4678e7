package calculation

import (
	"fmt"

	"github.com/fincalc/projection-engine/internal/domain"
	money "github.com/fincalc/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// RetirementProjection grows current savings year by year at the nominal
// expected return and adds twelve monthly contributions at each year end.
//
// InflationPct does not enter the growth step. It is only used to derive
// InflationAdjustedValue, which restates the final corpus in today's money.
// The discount is built from the reciprocal of the inflation factor so a
// factor below one compounded over many years never collapses to zero.
func RetirementProjection(p domain.RetirementParams) (*domain.RetirementResult, error) {
	if err := domain.Validate(p); err != nil {
		return nil, err
	}

	years := p.Years()
	growth := one.Add(pctToRate(p.ExpectedReturnPct))
	annualContribution := money.NewMoneyFromDecimal(p.MonthlyContribution).Annual().Decimal

	value := p.CurrentSavings
	series := make([]domain.YearlyPoint, 0, years+1)
	series = append(series, agePoint(0, p.CurrentAge, value))
	for year := 1; year <= years; year++ {
		value = value.Mul(growth).Round(calcScale).Add(annualContribution)
		series = append(series, agePoint(year, p.CurrentAge+year, value))
	}

	invested := p.CurrentSavings.Add(annualContribution.Mul(decimal.NewFromInt(int64(years))))
	discount := powInt(one.DivRound(one.Add(pctToRate(p.InflationPct)), calcScale), int64(years))

	return &domain.RetirementResult{
		Params:                 p,
		Years:                  years,
		FinalValue:             value,
		TotalInvestment:        invested,
		TotalReturns:           value.Sub(invested),
		InflationAdjustedValue: value.Mul(discount).Round(calcScale),
		YearlySeries:           series,
	}, nil
}

func agePoint(year, age int, value decimal.Decimal) domain.YearlyPoint {
	return domain.YearlyPoint{Year: year, Label: fmt.Sprintf("Age %d", age), Value: value}
}
