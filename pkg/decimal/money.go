package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is the currency symbol used when none is configured.
const DefaultSymbol = "₹"

// monthlyScale keeps enough digits that twelve monthly amounts sum back to the annual figure.
const monthlyScale = 20

var groupPrinter = message.NewPrinter(language.English)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// RoundToUnit rounds to the nearest whole currency unit.
func (m Money) RoundToUnit() Money {
	return Money{m.Decimal.Round(0)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.DivRound(decimal.NewFromInt(12), monthlyScale)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// GreaterThan checks if this amount is greater than another
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// LessThan checks if this amount is less than another
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Min returns the minimum of two Money amounts
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the maximum of two Money amounts
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// FormatWith renders the amount with the given symbol, digit grouping and cents.
func (m Money) FormatWith(symbol string) string {
	fixed := m.Decimal.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign(m.Decimal) + symbol + groupDigits(whole) + "." + frac
}

// FormatWhole renders the amount rounded to whole units, as the dashboard
// tiles and chart tooltips show it.
func (m Money) FormatWhole(symbol string) string {
	rounded := m.RoundToUnit().Decimal
	return sign(rounded) + symbol + groupDigits(rounded.Abs().StringFixed(0))
}

func sign(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-"
	}
	return ""
}

// groupDigits inserts thousands separators into a string of digits.
func groupDigits(digits string) string {
	d, err := decimal.NewFromString(digits)
	if err != nil || !d.IsInteger() || d.GreaterThan(maxGroupable) {
		return digits
	}
	return groupPrinter.Sprintf("%d", d.IntPart())
}

var maxGroupable = decimal.NewFromInt(1 << 62)
