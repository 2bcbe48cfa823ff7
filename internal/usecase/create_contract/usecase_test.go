package create_contract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/memory"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedIDs struct{ id string }

func (g fixedIDs) NewID() string { return g.id }

// failingCars отказывает в записи машины
type failingCars struct {
	*memory.CarRepository
}

func (failingCars) Save(context.Context, *domain.Car) (*domain.Car, error) {
	return nil, errors.New("store unavailable")
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 10, 0, 0, 0, time.UTC)
}

type fixture struct {
	contracts *memory.ContractRepository
	cars      *memory.CarRepository
	users     *memory.UserRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	f := fixture{
		contracts: memory.NewContractRepository(),
		cars:      memory.NewCarRepository(),
		users:     memory.NewUserRepository(),
	}

	weekly := domain.MustMoney("600", "SAR")
	_, err := f.cars.Save(ctx, &domain.Car{
		ID: "car-1", Make: "Toyota", LicensePlate: "TOY-1",
		DailyRate: domain.MustMoney("100", "SAR"), WeeklyRate: &weekly,
		Status: domain.CarStatusAvailable, Transmission: domain.TransmissionAutomatic,
	})
	require.NoError(t, err)

	_, err = f.users.Save(ctx, &domain.User{ID: "u-1", FirstName: "Sara", Status: domain.UserStatusActive,
		WalletBalance: domain.ZeroMoney("SAR")})
	require.NoError(t, err)
	_, err = f.users.Save(ctx, &domain.User{ID: "u-2", Status: domain.UserStatusInactive,
		WalletBalance: domain.ZeroMoney("SAR")})
	require.NoError(t, err)
	return f
}

func (f fixture) useCase(cars CarRepository) *UseCase {
	uc := NewUseCase(f.contracts, cars, f.users, logger.NewNop())
	uc.timeProvider = fixedClock{now: day(1)}
	uc.ids = fixedIDs{id: "0123456789abcdef"}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.useCase(f.cars).Execute(ctx, &Request{
		UserID:    "u-1",
		CarID:     "car-1",
		StartDate: day(2),
		EndDate:   day(5),
		BookingDetails: map[string]any{
			"isPickup":     true,
			"PicupBranche": map[string]any{"id": "b1", "name": "Olaya"},
		},
	})
	require.NoError(t, err)

	// 3 дня по 100 плюс 15% НДС
	assert.True(t, resp.Quote.Total.Equal(domain.MustMoney("345", "SAR")))
	assert.Equal(t, 3, resp.Units)
	assert.Equal(t, domain.ContractStatusActive, resp.Contract.Status)
	assert.Equal(t, "ORDER_01234567", resp.Contract.OrderID)
	assert.Equal(t, "Olaya", resp.Contract.Locations.Pickup.Name)

	stored, err := f.contracts.Get(ctx, "0123456789abcdef")
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(resp.Quote.Total))

	car, err := f.cars.Get(ctx, "car-1")
	require.NoError(t, err)
	assert.Equal(t, domain.CarStatusRented, car.Status)
}

func TestUseCase_WeeklyBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase(f.cars).Execute(context.Background(), &Request{
		UserID: "u-1", CarID: "car-1", StartDate: day(2), EndDate: day(12), BookingType: "Week",
	})
	require.NoError(t, err)

	// 10 дней = 2 недели по 600 плюс НДС
	assert.Equal(t, 2, resp.Units)
	assert.True(t, resp.Quote.Base.Equal(domain.MustMoney("1200", "SAR")))
	assert.Equal(t, domain.BookingWeek, resp.Contract.BookingType)
}

func TestUseCase_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		prepare func(t *testing.T, f fixture)
		wantErr error
	}{
		{
			name:    "missing user id",
			req:     Request{CarID: "car-1", StartDate: day(2), EndDate: day(3)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown booking type",
			req:     Request{UserID: "u-1", CarID: "car-1", StartDate: day(2), EndDate: day(3), BookingType: "Year"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "end before start",
			req:     Request{UserID: "u-1", CarID: "car-1", StartDate: day(4), EndDate: day(3)},
			wantErr: ErrInvalidPeriod,
		},
		{
			name:    "start in the past",
			req:     Request{UserID: "u-1", CarID: "car-1", StartDate: day(1).AddDate(0, 0, -2), EndDate: day(3)},
			wantErr: ErrInvalidPeriod,
		},
		{
			name:    "unknown user",
			req:     Request{UserID: "ghost", CarID: "car-1", StartDate: day(2), EndDate: day(3)},
			wantErr: ErrUserNotFound,
		},
		{
			name:    "inactive user",
			req:     Request{UserID: "u-2", CarID: "car-1", StartDate: day(2), EndDate: day(3)},
			wantErr: ErrUserInactive,
		},
		{
			name:    "unknown car",
			req:     Request{UserID: "u-1", CarID: "car-9", StartDate: day(2), EndDate: day(3)},
			wantErr: ErrCarNotFound,
		},
		{
			name: "car in maintenance",
			req:  Request{UserID: "u-1", CarID: "car-1", StartDate: day(2), EndDate: day(3)},
			prepare: func(t *testing.T, f fixture) {
				car, err := f.cars.Get(context.Background(), "car-1")
				require.NoError(t, err)
				require.NoError(t, car.SendToMaintenance())
				_, err = f.cars.Save(context.Background(), car)
				require.NoError(t, err)
			},
			wantErr: ErrCarNotAvailable,
		},
		{
			name: "overlapping contract",
			req:  Request{UserID: "u-1", CarID: "car-1", StartDate: day(3), EndDate: day(6)},
			prepare: func(t *testing.T, f fixture) {
				c, err := domain.NewContract(domain.NewContractParams{
					ID: "other", UserID: "u-3", CarID: "car-1",
					Period: domain.DateRange{Start: day(5), End: day(8)},
				})
				require.NoError(t, err)
				_, err = f.contracts.Save(context.Background(), c)
				require.NoError(t, err)
			},
			wantErr: ErrCarAlreadyBooked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.prepare != nil {
				tt.prepare(t, f)
			}
			req := tt.req
			_, err := f.useCase(f.cars).Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_CompensatesWhenCarSaveFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.useCase(failingCars{f.cars}).Execute(ctx, &Request{
		UserID: "u-1", CarID: "car-1", StartDate: day(2), EndDate: day(4),
	})
	assert.ErrorIs(t, err, ErrInternal)

	stored, err := f.contracts.Get(ctx, "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusCancelled, stored.Status)
	assert.Equal(t, compensationReason, stored.CancellationReason())

	car, err := f.cars.Get(ctx, "car-1")
	require.NoError(t, err)
	assert.Equal(t, domain.CarStatusAvailable, car.Status)
}

func TestUseCase_OverlapBeyondFirstPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	later := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < domain.MaxPageSize; i++ {
		start := later.AddDate(0, 0, 2*i)
		c, err := domain.NewContract(domain.NewContractParams{
			ID: fmt.Sprintf("a%03d", i), UserID: "u-9", CarID: "car-1",
			Period: domain.DateRange{Start: start, End: start.AddDate(0, 0, 1)},
		})
		require.NoError(t, err)
		_, err = f.contracts.Save(ctx, c)
		require.NoError(t, err)
	}
	// пересекающийся контракт попадает только на вторую страницу
	c, err := domain.NewContract(domain.NewContractParams{
		ID: "zz", UserID: "u-3", CarID: "car-1",
		Period: domain.DateRange{Start: day(5), End: day(8)},
	})
	require.NoError(t, err)
	_, err = f.contracts.Save(ctx, c)
	require.NoError(t, err)

	_, err = f.useCase(f.cars).Execute(ctx, &Request{
		UserID: "u-1", CarID: "car-1", StartDate: day(3), EndDate: day(6),
	})
	assert.ErrorIs(t, err, ErrCarAlreadyBooked)
}
