package calculation

import (
	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthlyPayment returns the level payment that retires principal over
// months payments at the given monthly rate. A zero rate degrades to
// straight-line repayment.
func MonthlyPayment(principal, rate decimal.Decimal, months int) decimal.Decimal {
	n := decimal.NewFromInt(int64(months))
	if rate.IsZero() {
		return principal.DivRound(n, calcScale)
	}
	factor := powInt(one.Add(rate), int64(months))
	return principal.Mul(rate).Mul(factor).DivRound(factor.Sub(one), calcScale)
}

// LoanAmortization computes the level monthly payment for a loan and
// walks the schedule month by month, sampling cumulative principal,
// cumulative interest and remaining balance every 12 months and at the
// final month.
func LoanAmortization(p domain.LoanParams) (*domain.LoanResult, error) {
	if err := domain.Validate(p); err != nil {
		return nil, err
	}

	months := p.TermYears * 12
	rate := monthlyRate(p.AnnualRatePct)
	payment := MonthlyPayment(p.Principal, rate, months)
	total := payment.Mul(decimal.NewFromInt(int64(months)))

	series := make([]domain.AmortizationPoint, 0, (months+11)/12)
	cumPrincipal, cumInterest := decimal.Zero, decimal.Zero
	walkSchedule(p.Principal, rate, payment, months, func(row domain.AmortizationRow) {
		cumPrincipal = cumPrincipal.Add(row.Principal)
		cumInterest = cumInterest.Add(row.Interest)
		if row.Month%12 == 0 || row.Month == months {
			series = append(series, domain.AmortizationPoint{
				Year:                (row.Month + 11) / 12,
				CumulativePrincipal: cumPrincipal,
				CumulativeInterest:  cumInterest,
				Balance:             row.Balance,
			})
		}
	})

	return &domain.LoanResult{
		Params:         p,
		MonthlyPayment: payment,
		TotalPayment:   total,
		TotalInterest:  total.Sub(p.Principal),
		YearlySeries:   series,
	}, nil
}

// AmortizationSchedule returns every monthly row of the loan schedule
func AmortizationSchedule(p domain.LoanParams) ([]domain.AmortizationRow, error) {
	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	months := p.TermYears * 12
	rate := monthlyRate(p.AnnualRatePct)
	payment := MonthlyPayment(p.Principal, rate, months)

	rows := make([]domain.AmortizationRow, 0, months)
	walkSchedule(p.Principal, rate, payment, months, func(row domain.AmortizationRow) {
		rows = append(rows, row)
	})
	return rows, nil
}

// walkSchedule splits each payment into interest on the remaining balance
// and principal repaid, calling visit once per month.
func walkSchedule(principal, rate, payment decimal.Decimal, months int, visit func(domain.AmortizationRow)) {
	balance := principal
	for month := 1; month <= months; month++ {
		interest := balance.Mul(rate).Round(calcScale)
		repaid := payment.Sub(interest)
		balance = balance.Sub(repaid)
		visit(domain.AmortizationRow{
			Month:     month,
			Payment:   payment,
			Interest:  interest,
			Principal: repaid,
			Balance:   balance,
		})
	}
}
