package create_contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/ptr"
)

// compensationReason записывается в отменённый контракт, если машину не удалось зарезервировать
const compensationReason = "car reservation failed"

// UseCase use case для создания контракта аренды
type UseCase struct {
	contractRepo ContractRepository
	carRepo      CarRepository
	userRepo     UserRepository
	timeProvider TimeProvider
	ids          IDGenerator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	contractRepo ContractRepository,
	carRepo CarRepository,
	userRepo UserRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		contractRepo: contractRepo,
		carRepo:      carRepo,
		userRepo:     userRepo,
		timeProvider: &RealTimeProvider{},
		ids:          UUIDGenerator{},
		logger:       logger,
	}
}

// Execute выполняет use case создания контракта.
// Хранилище не поддерживает транзакции, поэтому при неудачной записи машины
// уже сохранённый контракт отменяется компенсирующей записью.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateContract: user=%s, car=%s, period=%s..%s, type=%s",
		req.UserID, req.CarID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.BookingType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateContract: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Валидация периода
	period, err := validatePeriod(req, now)
	if err != nil {
		uc.logger.Warn("CreateContract: period validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем пользователя, он должен быть активен
	user, err := uc.userRepo.Get(ctx, req.UserID)
	if err != nil {
		return nil, uc.loadError("user", req.UserID, ErrUserNotFound, err)
	}
	if !user.IsActive() {
		uc.logger.Warn("CreateContract: user id=%s is %s", user.ID, user.Status)
		return nil, ErrUserInactive
	}

	// 4. Получаем машину, она должна быть свободна
	car, err := uc.carRepo.Get(ctx, req.CarID)
	if err != nil {
		return nil, uc.loadError("car", req.CarID, ErrCarNotFound, err)
	}
	if !car.IsAvailable() {
		uc.logger.Warn("CreateContract: car id=%s is %s", car.ID, car.Status)
		return nil, ErrCarNotAvailable
	}

	// 5. Проверяем пересечение с действующими контрактами машины
	filter := domain.ContractFilter{CarID: ptr.Ptr(car.ID), LiveOnly: true}
	contracts, skipped, err := mapping.CollectPages(ctx, func(ctx context.Context, page domain.Page) ([]*domain.Contract, error) {
		return uc.contractRepo.List(ctx, filter, page)
	})
	if err != nil {
		uc.logger.Error("CreateContract: failed to list contracts of car id=%s: %v", car.ID, err)
		return nil, fmt.Errorf("%w: failed to list contracts: %w", ErrInternal, err)
	}
	if skipped > 0 {
		uc.logger.Warn("CreateContract: %d contracts of car id=%s are unreadable", skipped, car.ID)
	}
	if other := findOverlap(contracts, period); other != nil {
		uc.logger.Warn("CreateContract: car id=%s is booked by contract id=%s for %s", car.ID, other.ID, other.Period)
		return nil, ErrCarAlreadyBooked
	}

	// 6. Считаем стоимость
	typ := domain.BookingType(req.BookingType)
	var quote domain.Quote
	units := period.Days()
	if typ == "" {
		typ = domain.BookingDay
		quote, err = domain.QuoteDays(car, units)
	} else {
		units = unitsFor(typ, period.Days())
		quote, err = domain.QuoteRental(car, typ, units)
	}
	if err != nil {
		uc.logger.Error("CreateContract: failed to price car id=%s: %v", car.ID, err)
		return nil, fmt.Errorf("%w: failed to price rental: %w", ErrInternal, err)
	}

	// 7. Создаём и сохраняем активный контракт
	contract, err := domain.NewContract(domain.NewContractParams{
		ID:             uc.ids.NewID(),
		UserID:         user.ID,
		CarID:          car.ID,
		Period:         period,
		TotalAmount:    quote.Total,
		BookingType:    typ,
		BookingDetails: req.BookingDetails,
	})
	if err != nil {
		uc.logger.Warn("CreateContract: contract validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := contract.Activate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if _, err := uc.contractRepo.Save(ctx, contract); err != nil {
		uc.logger.Error("CreateContract: failed to save contract: %v", err)
		return nil, fmt.Errorf("%w: failed to save contract: %w", ErrInternal, err)
	}

	// 8. Резервируем машину, при ошибке отменяем контракт
	if err := car.MarkRented(); err != nil {
		uc.compensate(ctx, contract, err)
		return nil, ErrCarNotAvailable
	}
	if _, err := uc.carRepo.Save(ctx, car); err != nil {
		uc.logger.Error("CreateContract: failed to mark car id=%s rented: %v", car.ID, err)
		uc.compensate(ctx, contract, err)
		return nil, fmt.Errorf("%w: failed to reserve car: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateContract: contract id=%s created, order=%s, total=%s",
		contract.ID, contract.OrderID, contract.TotalAmount)

	return &Response{
		Contract: contract,
		Car:      car,
		Quote:    quote,
		Units:    units,
	}, nil
}

// compensate отменяет уже сохранённый контракт.
// Ошибка компенсации только логируется: контракт останется активным без машины и будет виден в логах.
func (uc *UseCase) compensate(ctx context.Context, contract *domain.Contract, cause error) {
	if err := contract.Cancel(compensationReason, uc.timeProvider.Now()); err != nil {
		uc.logger.Error("CreateContract: cannot cancel contract id=%s after %v: %v", contract.ID, cause, err)
		return
	}
	if _, err := uc.contractRepo.Save(context.WithoutCancel(ctx), contract); err != nil {
		uc.logger.Error("CreateContract: contract id=%s left active after %v: %v", contract.ID, cause, err)
		return
	}
	uc.logger.Warn("CreateContract: contract id=%s cancelled after %v", contract.ID, cause)
}

func (uc *UseCase) loadError(entity, id string, notFound, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("CreateContract: %s id=%s not found", entity, id)
		return notFound
	case errors.Is(err, mapping.ErrMapping):
		uc.logger.Error("CreateContract: %s id=%s cannot be mapped: %v", entity, id, err)
		return fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}
	uc.logger.Error("CreateContract: failed to get %s id=%s: %v", entity, id, err)
	return fmt.Errorf("%w: failed to get %s: %w", ErrInternal, entity, err)
}
