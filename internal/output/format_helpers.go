package output

import (
	"strconv"

	"github.com/fincalc/projection-engine/internal/domain"
	money "github.com/fincalc/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal with the symbol, digit grouping and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal, symbol string) string {
	return money.NewMoneyFromDecimal(amount).FormatWith(symbol)
}

// FormatWhole formats a decimal rounded to whole currency units.
func FormatWhole(amount decimal.Decimal, symbol string) string {
	return money.NewMoneyFromDecimal(amount).FormatWhole(symbol)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func symbolOf(r *domain.ProjectionReport) string {
	if r == nil || r.Currency == "" {
		return money.DefaultSymbol
	}
	return r.Currency
}

func intToString(i int) string { return strconv.Itoa(i) }
