package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/fincalc/projection-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// DateRange selects transactions relative to the current time
type DateRange string

const (
	AllTime         DateRange = "All Time"
	ThisWeek        DateRange = "This Week"
	ThisMonth       DateRange = "This Month"
	LastThreeMonths DateRange = "Last 3 Months"
)

// DateRanges lists the supported ranges in display order
var DateRanges = []DateRange{AllTime, ThisWeek, ThisMonth, LastThreeMonths}

var rangeAliases = map[string]DateRange{
	"":              AllTime,
	"all":           AllTime,
	"all-time":      AllTime,
	"week":          ThisWeek,
	"this-week":     ThisWeek,
	"month":         ThisMonth,
	"this-month":    ThisMonth,
	"3m":            LastThreeMonths,
	"last-3-months": LastThreeMonths,
}

// ParseDateRange accepts a display name such as "Last 3 Months" or a
// slug such as "last-3-months", case-insensitively
func ParseDateRange(s string) (DateRange, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, r := range DateRanges {
		if strings.ToLower(string(r)) == key {
			return r, nil
		}
	}
	if r, ok := rangeAliases[key]; ok {
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRange, s)
}

// Filter narrows a transaction listing. Zero values match everything.
// Amount bounds are inclusive.
type Filter struct {
	Category  string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Range     DateRange
}

// DefaultFilter mirrors the reset state of the transactions view:
// every category, amounts 0 to 1000, all time.
func DefaultFilter() Filter {
	lo, hi := decimal.Zero, decimal.NewFromInt(1000)
	return Filter{Category: AllCategories, MinAmount: &lo, MaxAmount: &hi, Range: AllTime}
}

func (f Filter) matcher(now time.Time) (func(domain.Transaction) bool, error) {
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return nil, domain.NewValidationError("min_amount", "must not exceed max_amount %s", f.MaxAmount.String())
	}
	inRange, err := rangePredicate(f.Range, now)
	if err != nil {
		return nil, err
	}
	return func(tx domain.Transaction) bool {
		if f.Category != "" && f.Category != AllCategories && tx.Category != f.Category {
			return false
		}
		if f.MinAmount != nil && tx.Amount.LessThan(*f.MinAmount) {
			return false
		}
		if f.MaxAmount != nil && tx.Amount.GreaterThan(*f.MaxAmount) {
			return false
		}
		return inRange(tx.Date)
	}, nil
}

func rangePredicate(r DateRange, now time.Time) (func(time.Time) bool, error) {
	switch r {
	case "", AllTime:
		return func(time.Time) bool { return true }, nil
	case ThisWeek:
		cutoff := dateutil.DaysAgo(now, 7)
		return func(t time.Time) bool { return !t.Before(cutoff) }, nil
	case ThisMonth:
		return func(t time.Time) bool { return dateutil.SameMonth(t, now) }, nil
	case LastThreeMonths:
		cutoff := dateutil.MonthsAgo(now, 3)
		return func(t time.Time) bool { return !t.Before(cutoff) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRange, string(r))
	}
}
