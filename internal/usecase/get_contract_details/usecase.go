package get_contract_details

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
)

// UseCase use case для получения деталей контракта
type UseCase struct {
	contractRepo ContractRepository
	userRepo     UserRepository
	carRepo      CarRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(contractRepo ContractRepository, userRepo UserRepository, carRepo CarRepository, logger Logger) *UseCase {
	return &UseCase{
		contractRepo: contractRepo,
		userRepo:     userRepo,
		carRepo:      carRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute загружает контракт, затем параллельно его арендатора и машину
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.ContractID) == "" {
		return nil, fmt.Errorf("%w: contract id is required", ErrInvalidInput)
	}

	// 1. Контракт
	contract, err := uc.contractRepo.Get(ctx, req.ContractID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			uc.logger.Warn("GetContractDetails: contract id=%s not found", req.ContractID)
			return nil, ErrContractNotFound
		case errors.Is(err, mapping.ErrMapping):
			uc.logger.Error("GetContractDetails: contract id=%s cannot be mapped: %v", req.ContractID, err)
			return nil, fmt.Errorf("%w: %w", ErrCorruptDocument, err)
		}
		uc.logger.Error("GetContractDetails: failed to get contract id=%s: %v", req.ContractID, err)
		return nil, fmt.Errorf("%w: failed to get contract: %w", ErrInternal, err)
	}

	// 2. Пользователь и машина параллельно, каждый занимает свой слот пула
	var (
		user *domain.User
		car  *domain.Car
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := uc.userRepo.Get(gctx, contract.UserID)
		if err != nil {
			return uc.relatedError("user", contract.UserID, err)
		}
		user = u
		return nil
	})
	g.Go(func() error {
		c, err := uc.carRepo.Get(gctx, contract.CarID)
		if err != nil {
			return uc.relatedError("car", contract.CarID, err)
		}
		car = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	return &Response{
		Contract:      contract,
		User:          user,
		Car:           car,
		RemainingDays: contract.RemainingDays(now),
		Overdue:       contract.IsOverdue(now),
		Reconciled:    contract.IsReconciled(),
	}, nil
}

// relatedError пропускает удалённые связанные документы, остальные ошибки возвращает
func (uc *UseCase) relatedError(entity, id string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("GetContractDetails: %s id=%s referenced by contract is missing", entity, id)
		return nil
	case errors.Is(err, mapping.ErrMapping):
		uc.logger.Error("GetContractDetails: %s id=%s cannot be mapped: %v", entity, id, err)
		return fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}
	uc.logger.Error("GetContractDetails: failed to get %s id=%s: %v", entity, id, err)
	return fmt.Errorf("%w: failed to get %s: %w", ErrInternal, entity, err)
}
