package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// MonthKeyLayout is the layout of month keys such as "2023-03".
const MonthKeyLayout = "2006-01"

// transactionLayouts are accepted in order when parsing transaction dates.
var transactionLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// ParseTransactionDate parses the date formats used by transaction records
func ParseTransactionDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range transactionLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// MonthKey returns the "YYYY-MM" key of the month containing t
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// ParseMonthKey parses a "YYYY-MM" key into the first day of that month (UTC)
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(MonthKeyLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: want YYYY-MM", key)
	}
	return t, nil
}

// MonthLabel formats a month as "March 2023"
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// SameMonth reports whether a and b fall in the same calendar month
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// StartOfMonth returns midnight on the first day of t's month, in t's location
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysAgo returns the instant n*24h before now
func DaysAgo(now time.Time, n int) time.Time {
	return now.Add(-time.Duration(n) * 24 * time.Hour)
}

// MonthsAgo returns the same wall-clock instant n calendar months before now
func MonthsAgo(now time.Time, n int) time.Time {
	return now.AddDate(0, -n, 0)
}
