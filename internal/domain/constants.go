package domain

import "github.com/shopspring/decimal"

// Defaults applied when stored documents leave values out
const (
	DefaultCurrency = "SAR"
	DefaultPageSize = 20
)

// Business validation constants
const (
	MinCarYear  = 1900
	MinSeats    = 1
	MaxSeats    = 50
	MaxPageSize = 100

	DaysPerWeek  = 7
	DaysPerMonth = 30
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// MinDailyRate is the smallest daily rate a car can be rented for
var MinDailyRate = decimal.NewFromInt(1)

// TaxRate is the VAT applied to rental and extension prices
var TaxRate = decimal.RequireFromString("0.15")

// LiveContractStatuses are the statuses that keep a car booked for their period
var LiveContractStatuses = []ContractStatus{
	ContractStatusDraft,
	ContractStatusActive,
}
