// Package core provides money parsing and handling utilities.
//
// Amounts are kept as arbitrary-precision decimals so that sums over
// many ledger rows never drift the way float64 totals do.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a non-negative monetary value as stored in the valor columns.
type Money struct {
	Amount decimal.Decimal
}

// Zero is the additive identity used as the seed of every sum.
var Zero = Money{Amount: decimal.Zero}

// NewMoney wraps a decimal amount.
func NewMoney(d decimal.Decimal) Money {
	return Money{Amount: d}
}

// MustMoney parses s and panics on failure. Intended for tests and fixtures.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney converts a decimal string to Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Unlike user input validation elsewhere, zero is a valid stored amount.
//
// Examples:
//
//	ParseMoney("12.34") -> 12.34, nil
//	ParseMoney("12,34") -> 12.34, nil
//	ParseMoney("-1")    -> ErrInvalidAmount
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{Amount: d}, nil
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount)}
}

// Cmp compares m and o like decimal.Decimal.Cmp.
func (m Money) Cmp(o Money) int {
	return m.Amount.Cmp(o.Amount)
}

// Equal reports whether m and o hold the same value, ignoring scale.
func (m Money) Equal(o Money) bool {
	return m.Amount.Equal(o.Amount)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// String renders the value with exactly two decimal places ("150.00").
func (m Money) String() string {
	return m.Amount.StringFixed(2)
}

// Float64 returns the value as float64 for chart payloads only.
// Use Money for any arithmetic.
func (m Money) Float64() float64 {
	return m.Amount.InexactFloat64()
}

// Sum folds a list of amounts starting from Zero.
func Sum(amounts ...Money) Money {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
