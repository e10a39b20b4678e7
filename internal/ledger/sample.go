package ledger

import (
	"time"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SampleTransactions returns the demo transactions shown before any are configured
func SampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		{ID: 1, Title: "Grocery Shopping", Date: day(2023, time.March, 1), Amount: decimal.RequireFromString("85.75"), Category: "Food"},
		{ID: 2, Title: "Netflix Subscription", Date: day(2023, time.March, 2), Amount: decimal.RequireFromString("14.99"), Category: "Entertainment"},
		{ID: 3, Title: "Gas Station", Date: day(2023, time.March, 5), Amount: decimal.RequireFromString("45.50"), Category: "Transportation"},
		{ID: 4, Title: "Restaurant Dinner", Date: day(2023, time.March, 10), Amount: decimal.RequireFromString("78.25"), Category: "Food"},
		{ID: 5, Title: "Electric Bill", Date: day(2023, time.March, 15), Amount: decimal.RequireFromString("120.00"), Category: "Utilities"},
	}
}
