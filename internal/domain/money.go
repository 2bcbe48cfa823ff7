package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in a single currency.
// Amounts are kept at two decimal places.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney builds a Money value, normalising the currency code and rounding the amount.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	code, err := NormalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s", ErrNegativeAmount, amount.String())
	}
	return Money{Amount: amount.Round(2), Currency: code}, nil
}

// MustMoney is NewMoney for literals known to be valid.
func MustMoney(amount string, currency string) Money {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	m, err := NewMoney(d, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns 0 in the given currency (DefaultCurrency when empty).
func ZeroMoney(currency string) Money {
	code, err := NormalizeCurrency(currency)
	if err != nil {
		code = DefaultCurrency
	}
	return Money{Amount: decimal.Zero, Currency: code}
}

// NormalizeCurrency upper-cases a currency code and checks it is three letters.
// An empty code resolves to DefaultCurrency.
func NormalizeCurrency(currency string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return DefaultCurrency, nil
	}
	if len(code) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
		}
	}
	return code, nil
}

// Add returns m + o. Both values must share a currency.
func (m Money) Add(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{Amount: m.Amount.Add(o.Amount).Round(2), Currency: m.Currency}, nil
}

// Sub returns m - o. The result must not be negative.
func (m Money) Sub(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	diff := m.Amount.Sub(o.Amount)
	if diff.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrNegativeAmount, m, o)
	}
	return Money{Amount: diff.Round(2), Currency: m.Currency}, nil
}

// Mul scales the amount by a non-negative factor.
func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, fmt.Errorf("%w: factor %s", ErrNegativeAmount, factor.String())
	}
	return Money{Amount: m.Amount.Mul(factor).Round(2), Currency: m.Currency}, nil
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(o Money) bool {
	return m.Currency == o.Currency && m.Amount.Equal(o.Amount)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

// Float returns the amount as float64 for storage formats that only know floats.
func (m Money) Float() float64 {
	f, _ := m.Amount.Float64()
	return f
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency
}
