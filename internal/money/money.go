// Package money rounds, splits and formats decimal currency amounts.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits every persisted amount carries.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Round2 rounds d to two fractional digits (half away from zero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// PercentOf returns round2(amount * percent / 100).
// percent=40 -> 40% of amount; percent=0.5 -> 0.5% of amount.
func PercentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(percent).Div(hundred))
}

// Split divides total into a staff share at percent and the remainder.
// The two parts always sum to total exactly.
func Split(total, percent decimal.Decimal) (staff, business decimal.Decimal) {
	staff = PercentOf(total, percent)
	return staff, total.Sub(staff)
}

// Parse reads a user-supplied amount such as "12.50" and rounds it to two places.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return Round2(d), nil
}

// Format renders an amount with exactly two fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Sum adds amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// HasAtMostTwoPlaces reports whether d carries no more than two fractional digits.
func HasAtMostTwoPlaces(d decimal.Decimal) bool {
	scaled := d.Mul(hundred)
	return scaled.Equal(scaled.Floor())
}
