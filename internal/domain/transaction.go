package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a single spending record
type Transaction struct {
	ID       int             `yaml:"id" json:"id"`
	Title    string          `yaml:"title" json:"title"`
	Date     time.Time       `yaml:"date" json:"date"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	Category string          `yaml:"category" json:"category"`
}

// Statement is the monthly export of transactions with its total
type Statement struct {
	ID           uuid.UUID       `json:"id"`
	Month        string          `json:"month"`
	Title        string          `json:"title"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Transactions []Transaction   `json:"transactions"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
}

// CategorySpend is the amount spent in a category and its share of the total
type CategorySpend struct {
	Category   string          `yaml:"category" json:"category"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	Percentage decimal.Decimal `yaml:"percentage" json:"percentage"`
}
