package extend_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/ptr"
)

// UseCase use case для продления аренды
type UseCase struct {
	contractRepo ContractRepository
	carRepo      CarRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(contractRepo ContractRepository, carRepo CarRepository, logger Logger) *UseCase {
	return &UseCase{
		contractRepo: contractRepo,
		carRepo:      carRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case продления аренды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExtendBooking: contract=%s, newEnd=%s", req.ContractID, req.NewEndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExtendBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем контракт, он должен быть активен
	contract, err := uc.contractRepo.Get(ctx, req.ContractID)
	if err != nil {
		return nil, uc.loadError("contract", req.ContractID, ErrContractNotFound, err)
	}
	if !contract.IsActive() {
		uc.logger.Warn("ExtendBooking: contract id=%s is %s", contract.ID, contract.Status)
		return nil, ErrContractNotActive
	}

	// 3. Новая дата окончания должна быть позже текущей
	previousEnd := contract.Period.End
	if !req.NewEndDate.After(previousEnd) {
		uc.logger.Warn("ExtendBooking: contract id=%s ends %s, requested %s",
			contract.ID, previousEnd.Format(domain.DateFormat), req.NewEndDate.Format(domain.DateFormat))
		return nil, ErrInvalidEndDate
	}
	extension := domain.DateRange{Start: previousEnd, End: req.NewEndDate.UTC()}

	// 4. Проверяем, что машина свободна на период продления
	filter := domain.ContractFilter{CarID: ptr.Ptr(contract.CarID), LiveOnly: true}
	others, skipped, err := mapping.CollectPages(ctx, func(ctx context.Context, page domain.Page) ([]*domain.Contract, error) {
		return uc.contractRepo.List(ctx, filter, page)
	})
	if err != nil {
		uc.logger.Error("ExtendBooking: failed to list contracts of car id=%s: %v", contract.CarID, err)
		return nil, fmt.Errorf("%w: failed to list contracts: %w", ErrInternal, err)
	}
	if skipped > 0 {
		uc.logger.Warn("ExtendBooking: %d contracts of car id=%s are unreadable", skipped, contract.CarID)
	}
	if other := findConflict(others, contract.ID, extension); other != nil {
		uc.logger.Warn("ExtendBooking: car id=%s is booked by contract id=%s for %s", contract.CarID, other.ID, other.Period)
		return nil, ErrCarAlreadyBooked
	}

	// 5. Считаем стоимость продления по ценам машины
	car, err := uc.carRepo.Get(ctx, contract.CarID)
	if err != nil {
		return nil, uc.loadError("car", contract.CarID, ErrCarNotFound, err)
	}

	typ := extensionType(req, contract)
	units := unitsFor(typ, extension.Days())
	quote, err := domain.QuoteRental(car, typ, units)
	if err != nil {
		uc.logger.Error("ExtendBooking: failed to price extension: %v", err)
		return nil, fmt.Errorf("%w: failed to price extension: %w", ErrInternal, err)
	}

	// 6. Продлеваем и сохраняем
	if err := contract.Extend(extension.End, quote.Total, typ, units, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("ExtendBooking: contract id=%s rejected extension: %v", contract.ID, err)
		if errors.Is(err, domain.ErrCurrencyMismatch) {
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := uc.contractRepo.Save(ctx, contract); err != nil {
		uc.logger.Error("ExtendBooking: failed to save contract id=%s: %v", contract.ID, err)
		return nil, fmt.Errorf("%w: failed to save contract: %w", ErrInternal, err)
	}

	uc.logger.Info("ExtendBooking: contract id=%s extended to %s, cost=%s, total=%s",
		contract.ID, contract.Period.End.Format(domain.DateFormat), quote.Total, contract.TotalAmount)

	return &Response{
		Contract:    contract,
		PreviousEnd: previousEnd,
		Quote:       quote,
		Units:       units,
	}, nil
}

func (uc *UseCase) loadError(entity, id string, notFound, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("ExtendBooking: %s id=%s not found", entity, id)
		return notFound
	case errors.Is(err, mapping.ErrMapping):
		uc.logger.Error("ExtendBooking: %s id=%s cannot be mapped: %v", entity, id, err)
		return fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}
	uc.logger.Error("ExtendBooking: failed to get %s id=%s: %v", entity, id, err)
	return fmt.Errorf("%w: failed to get %s: %w", ErrInternal, entity, err)
}
