package get_available_cars

import (
	"context"
	"fmt"
	"sort"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
)

// UseCase use case для поиска свободных машин на период
type UseCase struct {
	carRepo        CarRepository
	contractRepo   ContractRepository
	timeProvider   TimeProvider
	maxAdvanceDays int
	logger         Logger
}

// NewUseCase создает новый экземпляр use case, maxAdvanceDays = 0 снимает ограничение
func NewUseCase(carRepo CarRepository, contractRepo ContractRepository, maxAdvanceDays int, logger Logger) *UseCase {
	return &UseCase{
		carRepo:        carRepo,
		contractRepo:   contractRepo,
		timeProvider:   &RealTimeProvider{},
		maxAdvanceDays: maxAdvanceDays,
		logger:         logger,
	}
}

// Execute выполняет use case поиска свободных машин
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableCars: %s - %s, type=%q",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.BookingType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableCars: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация периода
	period, err := validatePeriod(req, uc.timeProvider.Now(), uc.maxAdvanceDays)
	if err != nil {
		uc.logger.Warn("GetAvailableCars: period rejected: %v", err)
		return nil, err
	}

	// 3. Все машины в статусе available, по всем страницам
	cars, skippedCars, err := mapping.CollectPages(ctx, func(ctx context.Context, page domain.Page) ([]*domain.Car, error) {
		return uc.carRepo.List(ctx, toFilter(req), page)
	})
	if err != nil {
		uc.logger.Error("GetAvailableCars: failed to list cars: %v", err)
		return nil, fmt.Errorf("%w: failed to list cars: %w", ErrInternal, err)
	}

	// 4. Действующие контракты, чтобы исключить занятые машины
	contracts, skippedContracts, err := mapping.CollectPages(ctx, func(ctx context.Context, page domain.Page) ([]*domain.Contract, error) {
		return uc.contractRepo.List(ctx, domain.ContractFilter{LiveOnly: true}, page)
	})
	if err != nil {
		uc.logger.Error("GetAvailableCars: failed to list contracts: %v", err)
		return nil, fmt.Errorf("%w: failed to list contracts: %w", ErrInternal, err)
	}
	if skippedCars+skippedContracts > 0 {
		uc.logger.Warn("GetAvailableCars: skipped %d car and %d contract documents", skippedCars, skippedContracts)
	}
	busy := busyCars(contracts, period)

	// 5. Считаем стоимость для каждой свободной машины
	typ := domain.BookingType(req.BookingType)
	result := make([]AvailableCar, 0, len(cars))
	for _, car := range cars {
		if busy[car.ID] {
			continue
		}
		item, err := quote(car, typ, period.Days())
		if err != nil {
			uc.logger.Warn("GetAvailableCars: car id=%s cannot be priced: %v", car.ID, err)
			continue
		}
		result = append(result, item)
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Quote.Total, result[j].Quote.Total
		if a.Currency == b.Currency && !a.Amount.Equal(b.Amount) {
			return a.Amount.LessThan(b.Amount)
		}
		return result[i].Car.ID < result[j].Car.ID
	})

	uc.logger.Info("GetAvailableCars: %d of %d cars free for %s", len(result), len(cars), period)

	return &Response{
		Period:  period,
		Cars:    result,
		Skipped: skippedCars + skippedContracts,
	}, nil
}

func quote(car *domain.Car, typ domain.BookingType, days int) (AvailableCar, error) {
	if typ == "" {
		q, err := domain.QuoteDays(car, days)
		return AvailableCar{Car: car, Quote: q, Units: days}, err
	}
	units := unitsFor(typ, days)
	q, err := domain.QuoteRental(car, typ, units)
	return AvailableCar{Car: car, Quote: q, Units: units}, err
}
