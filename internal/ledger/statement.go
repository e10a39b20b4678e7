package ledger

import (
	"fmt"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/fincalc/projection-engine/pkg/dateutil"
	money "github.com/fincalc/projection-engine/pkg/decimal"
	"github.com/google/uuid"
)

// MonthlyStatement collects the transactions of one "YYYY-MM" month with
// their count and total. A month with no transactions yields ErrNoTransactions.
func (b *Book) MonthlyStatement(month string) (*domain.Statement, error) {
	start, err := dateutil.ParseMonthKey(month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMonth, err)
	}

	var txs []domain.Transaction
	total := money.Zero()
	for _, tx := range b.transactions {
		if dateutil.SameMonth(tx.Date, start) {
			txs = append(txs, tx)
			total = total.Add(money.NewMoneyFromDecimal(tx.Amount))
		}
	}
	if len(txs) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoTransactions, dateutil.MonthKey(start))
	}

	return &domain.Statement{
		ID:           uuid.New(),
		Month:        dateutil.MonthKey(start),
		Title:        "Transaction Report - " + dateutil.MonthLabel(start),
		GeneratedAt:  b.now(),
		Transactions: txs,
		Count:        len(txs),
		Total:        total.Decimal,
	}, nil
}
