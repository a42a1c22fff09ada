// Package core holds the expense domain model and money handling.
//
// Monetary amounts are exact decimals, never binary floats: totals must
// equal the arithmetic sum of displayed per-record amounts to the penny
// across any sequence of add/delete cycles.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount of currency. The zero value is 0.
//
// It serializes to JSON as a quoted decimal string ("4.50"), which keeps
// the snapshot round-trip lossless.
type Money struct {
	decimal.Decimal
}

// ParseAmount converts a decimal string into Money. It accepts both dot
// (12.34) and comma (12,34) separators and rejects empty or non-numeric
// input with ErrInvalidAmount.
//
// Zero and negative values parse fine; whether an amount is acceptable
// for a given use is Validate's concern, not the parser's.
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
	return Money{d}, nil
}

func (m Money) Validate() error {
	if !m.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m + o exactly.
func (m Money) Add(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

// Equal reports exact numeric equality (4.5 == 4.50).
func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

// Display renders the amount with currency precision, two fractional digits.
func (m Money) Display() string {
	return m.StringFixed(2)
}
