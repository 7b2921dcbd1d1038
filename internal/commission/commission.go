// Package commission decides how much of a sale a staff member earns.
package commission

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/harmonic-pos/salonledger/internal/model"
	"github.com/harmonic-pos/salonledger/internal/money"
)

// Default percentages.
var (
	DefaultProductPercent = decimal.NewFromInt(5)
	DefaultServicePercent = decimal.NewFromInt(40)
)

var maxPercent = decimal.NewFromInt(100)

// Policy holds the configured commission percentages.
type Policy struct {
	// ProductPercent applies to product sales for staff without an override.
	ProductPercent decimal.Decimal
	// ServicePercent applies to every service sale. Staff overrides are ignored.
	ServicePercent decimal.Decimal
}

// DefaultPolicy returns 5% on products and 40% on services.
func DefaultPolicy() Policy {
	return Policy{ProductPercent: DefaultProductPercent, ServicePercent: DefaultServicePercent}
}

// Validate checks both percentages are within [0, 100].
func (p Policy) Validate() error {
	if err := ValidatePercent(p.ProductPercent); err != nil {
		return fmt.Errorf("product percent: %w", err)
	}
	if err := ValidatePercent(p.ServicePercent); err != nil {
		return fmt.Errorf("service percent: %w", err)
	}
	return nil
}

// ValidatePercent rejects values outside [0, 100].
func ValidatePercent(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(maxPercent) {
		return fmt.Errorf("percent %s out of range [0, 100]", pct)
	}
	return nil
}

// Split is the outcome of applying a percentage to a sale total.
type Split struct {
	Percent   decimal.Decimal
	StaffEarn decimal.Decimal
	SalonEarn decimal.Decimal
}

// ProductPercentFor returns the staff member's override when present,
// otherwise the policy default. A nil staff earns nothing.
func (p Policy) ProductPercentFor(staff *model.Staff) decimal.Decimal {
	if staff == nil {
		return decimal.Zero
	}
	if staff.CommissionPercent != nil {
		return *staff.CommissionPercent
	}
	return p.ProductPercent
}

// ServicePercentFor returns the fixed service percent, or zero without staff.
func (p Policy) ServicePercentFor(staff *model.Staff) decimal.Decimal {
	if staff == nil {
		return decimal.Zero
	}
	return p.ServicePercent
}

// ProductSplit splits a product sale total.
func (p Policy) ProductSplit(total decimal.Decimal, staff *model.Staff) Split {
	return apply(total, p.ProductPercentFor(staff))
}

// ServiceSplit splits a service sale total.
func (p Policy) ServiceSplit(total decimal.Decimal, staff *model.Staff) Split {
	return apply(total, p.ServicePercentFor(staff))
}

func apply(total, pct decimal.Decimal) Split {
	staffEarn, salonEarn := money.Split(total, pct)
	return Split{Percent: pct, StaffEarn: staffEarn, SalonEarn: salonEarn}
}
