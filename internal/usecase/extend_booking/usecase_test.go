package extend_booking

import (
	"context"
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

func day(d int) time.Time {
	return time.Date(2025, 3, d, 10, 0, 0, 0, time.UTC)
}

func setup(t *testing.T, status domain.ContractStatus) (*UseCase, *memory.ContractRepository) {
	t.Helper()
	ctx := context.Background()
	contracts := memory.NewContractRepository()
	cars := memory.NewCarRepository()

	_, err := cars.Save(ctx, &domain.Car{
		ID: "car-1", Make: "Toyota", LicensePlate: "TOY-1",
		DailyRate: domain.MustMoney("100", "SAR"), Status: domain.CarStatusRented,
		Transmission: domain.TransmissionAutomatic,
	})
	require.NoError(t, err)

	c, err := domain.NewContract(domain.NewContractParams{
		ID: "k1", UserID: "u-1", CarID: "car-1",
		Period:      domain.DateRange{Start: day(1), End: day(4)},
		TotalAmount: domain.MustMoney("345", "SAR"),
		BookingType: domain.BookingDay,
	})
	require.NoError(t, err)
	c.Status = status
	_, err = contracts.Save(ctx, c)
	require.NoError(t, err)

	uc := NewUseCase(contracts, cars, logger.NewNop())
	uc.timeProvider = fixedClock{now: day(3)}
	return uc, contracts
}

func TestUseCase_Execute(t *testing.T) {
	uc, contracts := setup(t, domain.ContractStatusActive)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{ContractID: "k1", NewEndDate: day(6)})
	require.NoError(t, err)

	// 2 дня по 100 плюс НДС
	assert.True(t, resp.Quote.Total.Equal(domain.MustMoney("230", "SAR")))
	assert.Equal(t, 2, resp.Units)
	assert.True(t, resp.PreviousEnd.Equal(day(4)))

	stored, err := contracts.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, stored.Period.End.Equal(day(6)))
	assert.True(t, stored.TotalAmount.Equal(domain.MustMoney("575", "SAR")))
	assert.True(t, stored.Extended)
	require.Len(t, stored.Extensions, 1)
	assert.Equal(t, domain.BookingDay, stored.Extensions[0].Type)
	assert.True(t, stored.Extensions[0].ExtendedAt.Equal(day(3)))
}

func TestUseCase_WeeklyExtensionRoundsUp(t *testing.T) {
	uc, _ := setup(t, domain.ContractStatusActive)

	resp, err := uc.Execute(context.Background(), &Request{ContractID: "k1", NewEndDate: day(13), BookingType: "Week"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Units)
	// недельная цена не задана: 7 * 100 за неделю
	assert.True(t, resp.Quote.Base.Equal(domain.MustMoney("1400", "SAR")))
}

func TestUseCase_Rejections(t *testing.T) {
	t.Run("not active", func(t *testing.T) {
		uc, _ := setup(t, domain.ContractStatusCompleted)
		_, err := uc.Execute(context.Background(), &Request{ContractID: "k1", NewEndDate: day(6)})
		assert.ErrorIs(t, err, ErrContractNotActive)
	})

	t.Run("end not after current end", func(t *testing.T) {
		uc, _ := setup(t, domain.ContractStatusActive)
		_, err := uc.Execute(context.Background(), &Request{ContractID: "k1", NewEndDate: day(4)})
		assert.ErrorIs(t, err, ErrInvalidEndDate)
	})

	t.Run("unknown contract", func(t *testing.T) {
		uc, _ := setup(t, domain.ContractStatusActive)
		_, err := uc.Execute(context.Background(), &Request{ContractID: "k9", NewEndDate: day(6)})
		assert.ErrorIs(t, err, ErrContractNotFound)
	})

	t.Run("missing end date", func(t *testing.T) {
		uc, _ := setup(t, domain.ContractStatusActive)
		_, err := uc.Execute(context.Background(), &Request{ContractID: "k1"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("conflicts with next booking", func(t *testing.T) {
		uc, contracts := setup(t, domain.ContractStatusActive)
		next, err := domain.NewContract(domain.NewContractParams{
			ID: "k2", UserID: "u-2", CarID: "car-1",
			Period: domain.DateRange{Start: day(5), End: day(7)},
		})
		require.NoError(t, err)
		_, err = contracts.Save(context.Background(), next)
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), &Request{ContractID: "k1", NewEndDate: day(6)})
		assert.ErrorIs(t, err, ErrCarAlreadyBooked)

		stored, err := contracts.Get(context.Background(), "k1")
		require.NoError(t, err)
		assert.True(t, stored.Period.End.Equal(day(4)))
	})
}

func TestUseCase_ConflictBeyondFirstPage(t *testing.T) {
	uc, contracts := setup(t, domain.ContractStatusActive)
	ctx := context.Background()

	// полная первая страница контрактов машины, которые не мешают продлению
	later := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < domain.MaxPageSize; i++ {
		start := later.AddDate(0, 0, 2*i)
		c, err := domain.NewContract(domain.NewContractParams{
			ID: fmt.Sprintf("a%03d", i), UserID: "u-9", CarID: "car-1",
			Period: domain.DateRange{Start: start, End: start.AddDate(0, 0, 1)},
		})
		require.NoError(t, err)
		_, err = contracts.Save(ctx, c)
		require.NoError(t, err)
	}
	next, err := domain.NewContract(domain.NewContractParams{
		ID: "zz", UserID: "u-2", CarID: "car-1",
		Period: domain.DateRange{Start: day(5), End: day(7)},
	})
	require.NoError(t, err)
	_, err = contracts.Save(ctx, next)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, &Request{ContractID: "k1", NewEndDate: day(6)})
	assert.ErrorIs(t, err, ErrCarAlreadyBooked)
}
