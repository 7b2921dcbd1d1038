package model

import "strings"

// PaymentMethod records how a sale or expense was settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Cash"
	PaymentCard     PaymentMethod = "Card"
	PaymentTransfer PaymentMethod = "Transfer"
)

// DefaultPaymentMethods is the allowed set when the config does not list one.
var DefaultPaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer}

// MatchPaymentMethod finds s in allowed, case-insensitively. Empty input means cash.
func MatchPaymentMethod(s string, allowed []PaymentMethod) (PaymentMethod, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = string(PaymentCash)
	}
	for _, pm := range allowed {
		if strings.EqualFold(string(pm), s) {
			return pm, true
		}
	}
	return "", false
}
