package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/contracts/models"
)

// Service сервис для работы с контрактами
type Service struct {
	contractRepo ContractRepository
	carRepo      CarRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса контрактов
func NewService(contractRepo ContractRepository, carRepo CarRepository, logger Logger) *Service {
	return &Service{
		contractRepo: contractRepo,
		carRepo:      carRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает контракт по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ContractResponse, error) {
	s.logger.Info("GetByID: fetching contract id=%s", id)

	contract, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainContract(contract), nil
}

// List получает список контрактов
func (s *Service) List(ctx context.Context, req *models.ListContractsRequest) (*models.ContractListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	contracts, err := s.contractRepo.List(ctx, filter, domain.Page{Number: req.Page, Size: req.PageSize})
	skipped := 0
	if err != nil {
		if !errors.Is(err, mapping.ErrMapping) {
			s.logger.Error("List: repository error: %v", err)
			return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
		}
		skipped = mapping.CountErrors(err)
		s.logger.Warn("List: skipped %d unreadable contract documents: %v", skipped, err)
	}

	s.logger.Info("List: fetched %d contracts", len(contracts))
	return models.FromDomainContractList(contracts, skipped), nil
}

// Cancel отменяет контракт и возвращает машину в парк
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelContractRequest) (*models.ContractResponse, error) {
	s.logger.Info("Cancel: contract id=%s", id)

	contract, err := s.load(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if err := contract.Cancel(req.Reason, s.timeProvider.Now()); err != nil {
		if errors.Is(err, domain.ErrCancelReasonRequired) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Warn("Cancel: contract id=%s cannot be cancelled, status=%s", id, contract.Status)
		return nil, ErrCannotCancel
	}

	return s.closeContract(ctx, "Cancel", contract)
}

// Complete завершает активный контракт и возвращает машину в парк
func (s *Service) Complete(ctx context.Context, id string) (*models.ContractResponse, error) {
	s.logger.Info("Complete: contract id=%s", id)

	contract, err := s.load(ctx, "Complete", id)
	if err != nil {
		return nil, err
	}

	if err := contract.Complete(); err != nil {
		s.logger.Warn("Complete: contract id=%s is %s", id, contract.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	return s.closeContract(ctx, "Complete", contract)
}

// closeContract сохраняет закрытый контракт и освобождает машину.
// Ошибка освобождения машины не отменяет закрытие контракта, она только логируется.
func (s *Service) closeContract(ctx context.Context, op string, contract *domain.Contract) (*models.ContractResponse, error) {
	saved, err := s.contractRepo.Save(ctx, contract)
	if err != nil {
		s.logger.Error("%s: failed to save contract id=%s: %v", op, contract.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	car, err := s.carRepo.Get(ctx, contract.CarID)
	switch {
	case err != nil:
		s.logger.Warn("%s: car id=%s of contract id=%s not released: %v", op, contract.CarID, contract.ID, err)
	case car.Status == domain.CarStatusRented:
		car.MarkAvailable()
		if _, err := s.carRepo.Save(ctx, car); err != nil {
			s.logger.Warn("%s: failed to release car id=%s: %v", op, car.ID, err)
		}
	}

	s.logger.Info("%s: contract id=%s is %s", op, saved.ID, saved.Status)
	return models.FromDomainContract(saved), nil
}

func (s *Service) load(ctx context.Context, op, id string) (*domain.Contract, error) {
	contract, err := s.contractRepo.Get(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("%s: contract id=%s not found", op, id)
			return nil, ErrContractNotFound
		case errors.Is(err, mapping.ErrMapping):
			s.logger.Error("%s: contract id=%s cannot be mapped: %v", op, id, err)
			return nil, fmt.Errorf("%w: %w", ErrCorruptDocument, err)
		}
		s.logger.Error("%s: repository error for contract id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return contract, nil
}
