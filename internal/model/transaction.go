package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleKind distinguishes retail sales from services.
type SaleKind string

const (
	SaleProduct SaleKind = "product"
	SaleService SaleKind = "service"
)

// Transaction is one recorded sale. It is never modified after creation.
type Transaction struct {
	ID                string          `json:"id"`
	Kind              SaleKind        `json:"kind"`
	ProductID         string          `json:"productId"` // empty for services
	ProductName       string          `json:"productName"`
	Section           Section         `json:"section,omitempty"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Total             decimal.Decimal `json:"total"`
	StaffID           string          `json:"staffId"`
	StaffName         string          `json:"staffName"`
	StaffEarn         decimal.Decimal `json:"staffEarn"`
	SalonEarn         decimal.Decimal `json:"salonEarn"`
	CommissionPercent decimal.Decimal `json:"commissionPercent"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod"`
	Timestamp         time.Time       `json:"timestamp"`
}

// IsService reports whether the transaction records a service rather than a product.
func (t Transaction) IsService() bool {
	return t.ProductID == ""
}
