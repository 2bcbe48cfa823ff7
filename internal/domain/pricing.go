package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quote is the price breakdown of a rental or an extension
type Quote struct {
	Base  Money
	Taxes Money
	Total Money
}

// RateFor returns the price of one billing unit.
// Weekly and monthly prices fall back to the daily rate times the unit length.
func (c *Car) RateFor(typ BookingType) (Money, error) {
	switch typ {
	case BookingDay:
		return c.DailyRate, nil
	case BookingWeek:
		if c.WeeklyRate != nil && c.WeeklyRate.IsPositive() {
			return *c.WeeklyRate, nil
		}
		return c.DailyRate.Mul(decimal.NewFromInt(DaysPerWeek))
	case BookingMonth:
		if c.MonthlyRate != nil && c.MonthlyRate.IsPositive() {
			return *c.MonthlyRate, nil
		}
		return c.DailyRate.Mul(decimal.NewFromInt(DaysPerMonth))
	default:
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidBookingType, typ)
	}
}

// QuoteRental prices count units of the given booking type, VAT included
func QuoteRental(car *Car, typ BookingType, count int) (Quote, error) {
	if count <= 0 {
		return Quote{}, fmt.Errorf("%w: count must be positive", ErrInvalidBookingType)
	}
	rate, err := car.RateFor(typ)
	if err != nil {
		return Quote{}, err
	}
	base, err := rate.Mul(decimal.NewFromInt(int64(count)))
	if err != nil {
		return Quote{}, err
	}
	return withTax(base)
}

// QuoteDays prices a number of days using the cheapest mix of months, weeks and days
func QuoteDays(car *Car, days int) (Quote, error) {
	if days <= 0 {
		return Quote{}, fmt.Errorf("%w: days must be positive", ErrInvalidExtension)
	}
	base := ZeroMoney(car.DailyRate.Currency)
	parts := []struct {
		typ   BookingType
		count int
	}{
		{BookingMonth, days / DaysPerMonth},
		{BookingWeek, (days % DaysPerMonth) / DaysPerWeek},
		{BookingDay, (days % DaysPerMonth) % DaysPerWeek},
	}
	for _, p := range parts {
		if p.count == 0 {
			continue
		}
		rate, err := car.RateFor(p.typ)
		if err != nil {
			return Quote{}, err
		}
		cost, err := rate.Mul(decimal.NewFromInt(int64(p.count)))
		if err != nil {
			return Quote{}, err
		}
		if base, err = base.Add(cost); err != nil {
			return Quote{}, err
		}
	}
	return withTax(base)
}

func withTax(base Money) (Quote, error) {
	taxes, err := base.Mul(TaxRate)
	if err != nil {
		return Quote{}, err
	}
	total, err := base.Add(taxes)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Base: base, Taxes: taxes, Total: total}, nil
}
