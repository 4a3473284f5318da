package domain

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Money is a monetary value paired with its 3-letter currency code.
// Amounts are rounded to 2 decimal places on construction.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney builds a Money value. The amount must not be negative and the
// currency must be a 3-letter code (case-insensitive).
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	code := strings.ToUpper(strings.TrimSpace(currency))
	if len(code) != 3 {
		return Money{}, ErrInvalidCurrencyCode
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return Money{}, ErrInvalidCurrencyCode
		}
	}
	return Money{Amount: amount.Round(2), Currency: code}, nil
}

// Add returns the sum of two Money values with the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns the difference of two Money values with the same currency.
// The result must not be negative.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	if m.Amount.LessThan(other.Amount) {
		return Money{}, ErrNegativeAmount
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// GreaterThan reports whether m exceeds other. Currencies must match.
func (m Money) GreaterThan(other Money) (bool, error) {
	if m.Currency != other.Currency {
		return false, ErrCurrencyMismatch
	}
	return m.Amount.GreaterThan(other.Amount), nil
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return m.Currency + " " + m.Amount.StringFixed(2)
}
