package calculation

import (
	"fmt"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

var frequencyLabels = map[int]string{
	1:   "Annually",
	2:   "Semi-Annually",
	4:   "Quarterly",
	12:  "Monthly",
	365: "Daily",
}

// CompoundingFrequencyLabel names a compounding frequency, e.g. 12 -> "Monthly"
func CompoundingFrequencyLabel(n int) string {
	if label, ok := frequencyLabels[n]; ok {
		return label
	}
	return fmt.Sprintf("%d times a year", n)
}

// CompoundInterest projects P·(1+r/n)^(n·t) and its year-by-year growth.
func CompoundInterest(p domain.CompoundParams) (*domain.CompoundResult, error) {
	if err := domain.Validate(p); err != nil {
		return nil, err
	}

	n := int64(p.CompoundingsPerYear)
	periodRate := pctToRate(p.AnnualRatePct).DivRound(decimal.NewFromInt(n), calcScale)
	growth := one.Add(periodRate)

	series := make([]domain.YearlyPoint, 0, p.Years+1)
	for year := 0; year <= p.Years; year++ {
		series = append(series, domain.YearlyPoint{
			Year:  year,
			Label: fmt.Sprintf("Year %d", year),
			Value: p.Principal.Mul(powInt(growth, n*int64(year))),
		})
	}

	// n·t = 0 leaves the principal untouched
	final := series[len(series)-1].Value

	return &domain.CompoundResult{
		Params:          p,
		FinalAmount:     final,
		TotalInterest:   final.Sub(p.Principal),
		TimesCompounded: p.CompoundingsPerYear * p.Years,
		FrequencyLabel:  CompoundingFrequencyLabel(p.CompoundingsPerYear),
		YearlySeries:    series,
	}, nil
}
