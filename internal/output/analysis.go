package output

import (
	"fmt"

	calc "github.com/fincalc/projection-engine/internal/calculation"
	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlight is a one-line takeaway for a calculator result, with the ratio behind it.
type Highlight struct {
	Calculator string
	Summary    string
	Ratio      decimal.Decimal
}

var decimalHundred = decimal.NewFromInt(100)

// percentOf returns part/whole as a percentage, or zero when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(decimalHundred).DivRound(whole, 2)
}

// AnalyzeReport derives the highlights shown under each result.
// Calculators absent from the report contribute nothing.
func AnalyzeReport(r *domain.ProjectionReport) []Highlight {
	var out []Highlight
	if c := r.CompoundInterest; c != nil && c.Params.Principal.IsPositive() {
		multiple := c.FinalAmount.DivRound(c.Params.Principal, 2)
		out = append(out, Highlight{
			Calculator: "Compound Interest",
			Summary:    fmt.Sprintf("Principal grows %sx over %d years", multiple.StringFixed(2), c.Params.Years),
			Ratio:      multiple,
		})
	}
	if l := r.Loan; l != nil {
		share := percentOf(l.TotalInterest, l.Params.Principal)
		out = append(out, Highlight{
			Calculator: "Loan",
			Summary:    fmt.Sprintf("Interest adds %s to the amount borrowed", FormatPercentage(share)),
			Ratio:      share,
		})
	}
	if rt := r.Retirement; rt != nil {
		share := percentOf(rt.TotalReturns, rt.FinalValue)
		out = append(out, Highlight{
			Calculator: "Retirement",
			Summary:    fmt.Sprintf("Returns make up %s of the corpus at retirement", FormatPercentage(share)),
			Ratio:      share,
		})
	}
	if s := r.SIP; s != nil {
		gain := percentOf(s.TotalReturns, s.TotalInvestment)
		out = append(out, Highlight{
			Calculator: "SIP",
			Summary:    fmt.Sprintf("Gains of %s on the amount invested", FormatPercentage(gain)),
			Ratio:      gain,
		})
	}
	if a := r.HomeAffordability; a != nil {
		out = append(out, Highlight{
			Calculator: "Home Affordability",
			Summary:    affordabilityConstraint(a),
			Ratio:      percentOf(a.MaxMonthlyPayment, a.MonthlyIncome),
		})
	}
	return out
}

// affordabilityConstraint names which of the two ratio caps set the payment.
func affordabilityConstraint(a *domain.AffordabilityResult) string {
	if !a.MaxMonthlyPayment.IsPositive() {
		return "Existing debts use up the 36% total-debt limit"
	}
	housingCap := a.MonthlyIncome.Mul(calc.FrontEndRatio)
	debtCap := a.MonthlyIncome.Mul(calc.BackEndRatio).Sub(a.Params.MonthlyDebts)
	if debtCap.LessThan(housingCap) {
		return "Payment limited by the 36% total-debt ratio"
	}
	return "Payment limited by the 28% housing ratio"
}
