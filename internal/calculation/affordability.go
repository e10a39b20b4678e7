package calculation

import (
	"github.com/fincalc/projection-engine/internal/domain"
	money "github.com/fincalc/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	// FrontEndRatio caps the housing payment at 28% of gross monthly income.
	FrontEndRatio = decimal.NewFromFloat(0.28)
	// BackEndRatio caps all debt payments at 36% of gross monthly income.
	BackEndRatio = decimal.NewFromFloat(0.36)
)

// PresentValueOfAnnuity returns the loan amount a level payment can carry
// for months periods at the given monthly rate.
func PresentValueOfAnnuity(payment, rate decimal.Decimal, months int) decimal.Decimal {
	if rate.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(months)))
	}
	discount := one.Sub(powInt(one.Add(rate), -int64(months)))
	return payment.Mul(discount).DivRound(rate, calcScale)
}

// HomeAffordability applies the 28%/36% rule to find the largest monthly
// payment a household can carry and the house price that payment buys.
func HomeAffordability(p domain.AffordabilityParams) (*domain.AffordabilityResult, error) {
	if err := domain.Validate(p); err != nil {
		return nil, err
	}

	monthlyIncome := money.NewMoneyFromDecimal(p.AnnualIncome).Monthly().Decimal
	housingCap := money.NewMoneyFromDecimal(monthlyIncome.Mul(FrontEndRatio))
	debtCap := money.NewMoneyFromDecimal(monthlyIncome.Mul(BackEndRatio).Sub(p.MonthlyDebts))

	payment := money.Max(money.Min(housingCap, debtCap), money.Zero()).Decimal
	loan := decimal.Zero
	if payment.IsPositive() {
		loan = PresentValueOfAnnuity(payment, monthlyRate(p.AnnualRatePct), p.TermYears*12)
	}

	return &domain.AffordabilityResult{
		Params:            p,
		MonthlyIncome:     monthlyIncome,
		MaxMonthlyPayment: payment,
		MaxLoanAmount:     loan,
		MaxHousePrice:     loan.Add(p.DownPayment),
		Breakdown: []domain.Slice{
			{Label: "Down Payment", Value: p.DownPayment},
			{Label: "Loan Amount", Value: loan},
		},
	}, nil
}
