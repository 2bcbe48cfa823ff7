package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCar_RateFor(t *testing.T) {
	weekly := MustMoney("600", "SAR")
	car := &Car{DailyRate: MustMoney("100", "SAR"), WeeklyRate: &weekly}

	rate, err := car.RateFor(BookingWeek)
	require.NoError(t, err)
	assert.True(t, rate.Equal(weekly))

	rate, err = car.RateFor(BookingMonth)
	require.NoError(t, err)
	assert.True(t, rate.Equal(MustMoney("3000", "SAR")))

	_, err = car.RateFor("Year")
	assert.ErrorIs(t, err, ErrInvalidBookingType)
}

func TestQuoteRental(t *testing.T) {
	car := &Car{DailyRate: MustMoney("100", "SAR")}

	q, err := QuoteRental(car, BookingDay, 3)
	require.NoError(t, err)
	assert.True(t, q.Base.Equal(MustMoney("300", "SAR")))
	assert.True(t, q.Taxes.Equal(MustMoney("45", "SAR")))
	assert.True(t, q.Total.Equal(MustMoney("345", "SAR")))

	_, err = QuoteRental(car, BookingDay, 0)
	assert.Error(t, err)
}

func TestQuoteDays(t *testing.T) {
	weekly := MustMoney("600", "SAR")
	monthly := MustMoney("2000", "SAR")
	car := &Car{DailyRate: MustMoney("100", "SAR"), WeeklyRate: &weekly, MonthlyRate: &monthly}

	// 40 days = 1 month + 1 week + 3 days
	q, err := QuoteDays(car, 40)
	require.NoError(t, err)
	assert.True(t, q.Base.Equal(MustMoney("2900", "SAR")))
	assert.True(t, q.Total.Equal(MustMoney("3335", "SAR")))
}
