package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Stripe rejects single charges above 999,999.99 in two-decimal currencies.
const maxAmountMinor = 99_999_999

// ToMinorUnits converts a major-unit fee ("250", "12.50") to minor units.
// Fractions of a minor unit and negative values are rejected.
func ToMinorUnits(fee Amount) (int64, error) {
	s := strings.TrimSpace(string(fee))
	if s == "" {
		return 0, fmt.Errorf("%w: membershipFee is required", ErrInvalidRequest)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: membershipFee %q is not a number", ErrInvalidRequest, s)
	}

	minor := d.Shift(2)
	if minor.IsNegative() || !minor.IsInteger() {
		return 0, fmt.Errorf("%w: membershipFee %q must be a non-negative amount with at most two decimals", ErrInvalidRequest, s)
	}
	if minor.GreaterThan(decimal.NewFromInt(maxAmountMinor)) {
		return 0, fmt.Errorf("%w: membershipFee %q exceeds the maximum charge", ErrInvalidRequest, s)
	}
	return minor.IntPart(), nil
}

func ToMajorUnits(minor int64) float64 {
	return decimal.New(minor, -2).InexactFloat64()
}
