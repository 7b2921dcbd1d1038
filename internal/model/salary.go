package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryRecord captures one payout and the accruals it folded into the yearly total.
type SalaryRecord struct {
	ID           string          `json:"id"`
	StaffID      string          `json:"staffId"`
	StaffName    string          `json:"staffName"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	MovedDaily   decimal.Decimal `json:"movedDaily"`
	MovedMonthly decimal.Decimal `json:"movedMonthly"`
	MovedTotal   decimal.Decimal `json:"movedTotal"`
	Timestamp    time.Time       `json:"timestamp"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
}
