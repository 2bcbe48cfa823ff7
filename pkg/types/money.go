package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money денежная сумма в JSON: сумма строкой с двумя знаками, чтобы не терять точность
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// NewMoney форматирует сумму и валюту
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount.StringFixed(2), Currency: currency}
}

// ParseAmount разбирает сумму из запроса ("150", "150.5", "1,500.00")
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q: %w", s, err)
	}
	return d, nil
}
