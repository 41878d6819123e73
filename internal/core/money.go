// Package core provides money parsing and handling utilities.
//
// Amounts are kept as integer cents so that sums computed by the store are
// exact. Conversion from and to text goes through shopspring/decimal.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount accepted anywhere: one billion minus a
// cent. Keeping single amounts this small leaves the store's integer sums
// far from int64 overflow.
var MaxAmount = Money{Cents: 100_000_000_000 - 1}

var hundred = decimal.NewFromInt(100)

type Money struct {
	Cents int64
}

// NewMoney converts a decimal amount to cents, rounding half-up on the third
// fractional digit.
func NewMoney(d decimal.Decimal) Money {
	return Money{Cents: d.Mul(hundred).Round(0).IntPart()}
}

// ParseAmount parses a non-negative decimal string no larger than MaxAmount
// into Money.
//
// Both dot (12.34) and comma (12,34) separators are accepted.
//
// Examples:
//
//	ParseAmount("12.5")   -> 1250 cents
//	ParseAmount("12,345") -> 1235 cents
//	ParseAmount("0")      -> 0 cents
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() || d.GreaterThan(MaxAmount.Decimal()) {
		return Money{}, ErrInvalidAmount
	}
	return NewMoney(d), nil
}

// ValidateAmount checks that m lies in [0, MaxAmount].
func ValidateAmount(m Money) error {
	if m.Cents < 0 || m.GreaterThan(MaxAmount) {
		return ErrInvalidAmount
	}
	return nil
}

// Decimal returns the amount as a decimal with two fractional digits.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats integral amounts with a single trailing zero ("110.0") and
// everything else without trailing zeros ("12.5", "25.55").
func (m Money) String() string {
	d := m.Decimal()
	if d.IsInteger() {
		return d.StringFixed(1)
	}
	return d.String()
}

// GreaterThan reports whether m is strictly larger than other.
func (m Money) GreaterThan(other Money) bool {
	return m.Cents > other.Cents
}
