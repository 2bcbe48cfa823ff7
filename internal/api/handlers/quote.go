package handlers

import (
	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/types"
)

// QuoteResponse расчёт стоимости аренды или продления
type QuoteResponse struct {
	Base  types.Money `json:"base"`
	Taxes types.Money `json:"taxes"`
	Total types.Money `json:"total"`
	Units int         `json:"units"`
	Type  string      `json:"bookingType"`
}

// FromQuote конвертирует доменный расчёт в DTO
func FromQuote(q domain.Quote, typ string, units int) QuoteResponse {
	return QuoteResponse{
		Base:  types.NewMoney(q.Base.Amount, q.Base.Currency),
		Taxes: types.NewMoney(q.Taxes.Amount, q.Taxes.Currency),
		Total: types.NewMoney(q.Total.Amount, q.Total.Currency),
		Units: units,
		Type:  typ,
	}
}
