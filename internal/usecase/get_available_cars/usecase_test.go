package get_available_cars

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/memory"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func day(d int) time.Time {
	return time.Date(2025, 3, d, 10, 0, 0, 0, time.UTC)
}

func newUseCase(t *testing.T, maxAdvanceDays int) *UseCase {
	t.Helper()
	ctx := context.Background()
	cars := memory.NewCarRepository()
	contracts := memory.NewContractRepository()

	for _, c := range []*domain.Car{
		{ID: "car-1", Make: "Toyota", LicensePlate: "TOY-1", DailyRate: domain.MustMoney("100", "SAR"),
			Status: domain.CarStatusAvailable, Transmission: domain.TransmissionAutomatic, Seats: 5},
		{ID: "car-2", Make: "Kia", LicensePlate: "KIA-2", DailyRate: domain.MustMoney("80", "SAR"),
			Status: domain.CarStatusAvailable, Transmission: domain.TransmissionManual, Seats: 4},
		{ID: "car-3", Make: "Toyota", LicensePlate: "TOY-3", DailyRate: domain.MustMoney("90", "SAR"),
			Status: domain.CarStatusMaintenance, Transmission: domain.TransmissionAutomatic},
		{ID: "car-4", Make: "Nissan", LicensePlate: "NIS-4", DailyRate: domain.MustMoney("70", "SAR"),
			Status: domain.CarStatusAvailable, Transmission: domain.TransmissionAutomatic, Seats: 7},
	} {
		_, err := cars.Save(ctx, c)
		require.NoError(t, err)
	}

	// car-4 забронирована на 3-6 марта, car-2 была, но контракт отменён
	booked, err := domain.NewContract(domain.NewContractParams{ID: "k1", UserID: "u-1", CarID: "car-4",
		Period: domain.DateRange{Start: day(3), End: day(6)}})
	require.NoError(t, err)
	_, err = contracts.Save(ctx, booked)
	require.NoError(t, err)

	cancelled, err := domain.NewContract(domain.NewContractParams{ID: "k2", UserID: "u-1", CarID: "car-2",
		Period: domain.DateRange{Start: day(3), End: day(6)}})
	require.NoError(t, err)
	require.NoError(t, cancelled.Cancel("changed plans", day(1)))
	_, err = contracts.Save(ctx, cancelled)
	require.NoError(t, err)

	uc := NewUseCase(cars, contracts, maxAdvanceDays, logger.NewNop())
	uc.timeProvider = fixedClock{now: day(1)}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	uc := newUseCase(t, 0)

	resp, err := uc.Execute(context.Background(), &Request{StartDate: day(2), EndDate: day(4)})
	require.NoError(t, err)

	require.Len(t, resp.Cars, 2)
	// дешевле первой
	assert.Equal(t, "car-2", resp.Cars[0].Car.ID)
	assert.True(t, resp.Cars[0].Quote.Total.Equal(domain.MustMoney("184", "SAR")))
	assert.Equal(t, 2, resp.Cars[0].Units)
	assert.Equal(t, "car-1", resp.Cars[1].Car.ID)
	assert.True(t, resp.Cars[1].Quote.Total.Equal(domain.MustMoney("230", "SAR")))
	assert.Zero(t, resp.Skipped)
}

func TestUseCase_FreeAfterBooking(t *testing.T) {
	uc := newUseCase(t, 0)

	resp, err := uc.Execute(context.Background(), &Request{StartDate: day(7), EndDate: day(9), MinSeats: ptr.Ptr(5)})
	require.NoError(t, err)

	ids := make([]string, 0, len(resp.Cars))
	for _, c := range resp.Cars {
		ids = append(ids, c.Car.ID)
	}
	assert.Equal(t, []string{"car-4", "car-1"}, ids)
}

func TestUseCase_Filters(t *testing.T) {
	uc := newUseCase(t, 0)

	resp, err := uc.Execute(context.Background(), &Request{
		StartDate: day(2), EndDate: day(9), BookingType: "Week",
		Make: ptr.Ptr("toyota"), Transmission: ptr.Ptr("automatic"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Cars, 1)
	assert.Equal(t, "car-1", resp.Cars[0].Car.ID)
	assert.Equal(t, 1, resp.Cars[0].Units)
	assert.True(t, resp.Cars[0].Quote.Base.Equal(domain.MustMoney("700", "SAR")))
}

func TestUseCase_Rejections(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"missing dates", Request{StartDate: day(2)}, ErrInvalidInput},
		{"unknown booking type", Request{StartDate: day(2), EndDate: day(3), BookingType: "Year"}, ErrInvalidInput},
		{"unknown transmission", Request{StartDate: day(2), EndDate: day(3), Transmission: ptr.Ptr("hover")}, ErrInvalidInput},
		{"end before start", Request{StartDate: day(4), EndDate: day(3)}, ErrInvalidPeriod},
		{"start in the past", Request{StartDate: day(1).AddDate(0, 0, -2), EndDate: day(3)}, ErrInvalidPeriod},
		{"too far ahead", Request{StartDate: day(20), EndDate: day(22)}, ErrDateTooFarInFuture},
	}

	uc := newUseCase(t, 14)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
