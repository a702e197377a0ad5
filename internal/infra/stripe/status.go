package stripe

import "strings"

// NormalizePaymentStatus lowercases a checkout session payment_status and
// treats an empty value as unpaid.
func NormalizePaymentStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "unpaid"
	}
	return s
}
