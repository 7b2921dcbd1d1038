package model

import "github.com/shopspring/decimal"

// Staff is a person who can be credited with commission.
// Daily, Monthly and Yearly are running totals maintained by the ledger.
type Staff struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Sections SectionSet `json:"sections"`
	// CommissionPercent overrides the default product commission when set.
	CommissionPercent *decimal.Decimal `json:"commissionPercent,omitempty"`
	Daily             decimal.Decimal  `json:"daily"`
	Monthly           decimal.Decimal  `json:"monthly"`
	Yearly            decimal.Decimal  `json:"yearly"`
}

// Accrue adds an earned amount to all three running totals.
func (s *Staff) Accrue(amount decimal.Decimal) {
	s.Daily = s.Daily.Add(amount)
	s.Monthly = s.Monthly.Add(amount)
	s.Yearly = s.Yearly.Add(amount)
}
