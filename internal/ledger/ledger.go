// Package ledger holds spending transactions and derives the filtered
// listings, monthly statements and category insights shown to users.
package ledger

import (
	"errors"
	"sort"
	"time"

	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/fincalc/projection-engine/pkg/dateutil"
)

var (
	ErrInvalidMonth     = errors.New("invalid month")
	ErrNoTransactions   = errors.New("no transactions for month")
	ErrUnknownRange     = errors.New("unknown date range")
	ErrUnknownTimeframe = errors.New("unknown timeframe")
)

// AllCategories is the category filter value that matches every transaction
const AllCategories = "All Categories"

// Book is an in-memory, read-only set of transactions. It is safe for
// concurrent use because nothing mutates it after NewBook returns.
type Book struct {
	transactions []domain.Transaction
	now          func() time.Time
}

// Option configures a Book
type Option func(*Book)

// WithClock sets the time source used for relative date ranges and statement timestamps
func WithClock(now func() time.Time) Option {
	return func(b *Book) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBook creates a book over a copy of txs, keeping their order.
// A nil slice yields the sample transactions.
func NewBook(txs []domain.Transaction, opts ...Option) *Book {
	if txs == nil {
		txs = SampleTransactions()
	}
	b := &Book{
		transactions: append([]domain.Transaction(nil), txs...),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// All returns every transaction in insertion order
func (b *Book) All() []domain.Transaction {
	return append([]domain.Transaction(nil), b.transactions...)
}

// Len returns the number of transactions
func (b *Book) Len() int { return len(b.transactions) }

// List returns the transactions matching f, in insertion order
func (b *Book) List(f Filter) ([]domain.Transaction, error) {
	match, err := f.matcher(b.now())
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, 0, len(b.transactions))
	for _, tx := range b.transactions {
		if match(tx) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Categories returns AllCategories followed by each distinct category in first-seen order
func (b *Book) Categories() []string {
	seen := make(map[string]bool)
	out := []string{AllCategories}
	for _, tx := range b.transactions {
		if !seen[tx.Category] {
			seen[tx.Category] = true
			out = append(out, tx.Category)
		}
	}
	return out
}

// AvailableMonths returns the distinct "YYYY-MM" keys of all transactions, newest first
func (b *Book) AvailableMonths() []string {
	seen := make(map[string]bool)
	var months []string
	for _, tx := range b.transactions {
		key := dateutil.MonthKey(tx.Date)
		if !seen[key] {
			seen[key] = true
			months = append(months, key)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}
