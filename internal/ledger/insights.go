package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fincalc/projection-engine/internal/domain"
	money "github.com/fincalc/projection-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Timeframe scales daily category spending to a longer period
type Timeframe string

const (
	Daily   Timeframe = "Daily"
	Weekly  Timeframe = "Weekly"
	Monthly Timeframe = "Monthly"
)

// Timeframes lists the supported timeframes in display order
var Timeframes = []Timeframe{Daily, Weekly, Monthly}

// Days returns the number of days a timeframe covers
func (tf Timeframe) Days() int {
	switch tf {
	case Weekly:
		return 7
	case Monthly:
		return 30
	default:
		return 1
	}
}

// ParseTimeframe matches a timeframe name case-insensitively. Empty means Daily.
func ParseTimeframe(s string) (Timeframe, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Daily, nil
	}
	for _, tf := range Timeframes {
		if strings.EqualFold(string(tf), s) {
			return tf, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeframe, s)
}

// DefaultSpending is the baseline daily spend per category with its share of the whole
var DefaultSpending = []domain.CategorySpend{
	{Category: "Food", Amount: decimal.NewFromInt(25), Percentage: decimal.NewFromInt(30)},
	{Category: "Rent", Amount: decimal.NewFromInt(15), Percentage: decimal.NewFromInt(18)},
	{Category: "Clothing", Amount: decimal.NewFromInt(10), Percentage: decimal.NewFromInt(12)},
	{Category: "Education", Amount: decimal.NewFromInt(8), Percentage: decimal.NewFromInt(10)},
	{Category: "Miscellaneous", Amount: decimal.NewFromInt(20), Percentage: decimal.NewFromInt(24)},
	{Category: "Other", Amount: decimal.NewFromInt(5), Percentage: decimal.NewFromInt(6)},
}

// Insights scales the baseline daily spending to the given timeframe.
// Shares are unchanged by scaling.
func Insights(timeframe string) ([]domain.CategorySpend, error) {
	tf, err := ParseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}
	factor := decimal.NewFromInt(int64(tf.Days()))
	out := make([]domain.CategorySpend, len(DefaultSpending))
	for i, s := range DefaultSpending {
		out[i] = domain.CategorySpend{Category: s.Category, Amount: s.Amount.Mul(factor), Percentage: s.Percentage}
	}
	return out, nil
}

var hundred = decimal.NewFromInt(100)

// SpendingByCategory totals the transactions matching f per category, largest
// first, with each category's share of the filtered total rounded to 2 places
func (b *Book) SpendingByCategory(f Filter) ([]domain.CategorySpend, error) {
	txs, err := b.List(f)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	var order []string
	grand := money.Zero()
	for _, tx := range txs {
		if _, ok := totals[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
		grand = grand.Add(money.NewMoneyFromDecimal(tx.Amount))
	}

	out := make([]domain.CategorySpend, 0, len(order))
	for _, c := range order {
		share := decimal.Zero
		if grand.IsPositive() {
			share = totals[c].Mul(hundred).DivRound(grand.Decimal, 2)
		}
		out = append(out, domain.CategorySpend{Category: c, Amount: totals[c], Percentage: share})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out, nil
}
