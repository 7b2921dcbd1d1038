package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is money the business spent. It only affects profit reporting.
type Expense struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}
