package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users/models"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/types"
)

// Service сервис для работы с пользователями
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.UserResponse, error) {
	s.logger.Info("GetByID: fetching user id=%s", id)

	user, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainUser(user), nil
}

// List получает список пользователей
func (s *Service) List(ctx context.Context, req *models.ListUsersRequest) (*models.UserListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	users, err := s.userRepo.List(ctx, filter, domain.Page{Number: req.Page, Size: req.PageSize})
	skipped := 0
	if err != nil {
		if !errors.Is(err, mapping.ErrMapping) {
			s.logger.Error("List: repository error: %v", err)
			return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
		}
		skipped = mapping.CountErrors(err)
		s.logger.Warn("List: skipped %d unreadable user documents: %v", skipped, err)
	}

	s.logger.Info("List: fetched %d users", len(users))
	return models.FromDomainUserList(users, skipped), nil
}

// UpdateStatus активирует или блокирует пользователя
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateStatus: user id=%s, status=%s", id, req.Status)

	status, err := models.ToDomainUserStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.load(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if status == domain.UserStatusActive {
		user.Activate()
	} else {
		user.Deactivate()
	}
	return s.save(ctx, "UpdateStatus", user)
}

// AdjustWallet пополняет кошелёк или списывает с него в валюте кошелька
func (s *Service) AdjustWallet(ctx context.Context, id string, req *models.WalletRequest) (*models.UserResponse, error) {
	s.logger.Info("AdjustWallet: user id=%s, %s %s", id, req.Operation, req.Amount)

	amount, err := types.ParseAmount(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.load(ctx, "AdjustWallet", id)
	if err != nil {
		return nil, err
	}

	money, err := domain.NewMoney(amount, user.WalletBalance.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	switch req.Operation {
	case models.WalletCredit:
		err = user.Credit(money)
	case models.WalletDebit:
		err = user.Debit(money)
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, models.ErrInvalidOperation)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			s.logger.Warn("AdjustWallet: user id=%s has %s, requested %s", id, user.WalletBalance, money)
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.save(ctx, "AdjustWallet", user)
}

// Delete удаляет пользователя
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: user id=%s", id)

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("Delete: repository error for user id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, op, id string) (*domain.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("%s: user id=%s not found", op, id)
			return nil, ErrUserNotFound
		case errors.Is(err, mapping.ErrMapping):
			s.logger.Error("%s: user id=%s cannot be mapped: %v", op, id, err)
			return nil, fmt.Errorf("%w: %w", ErrCorruptDocument, err)
		}
		s.logger.Error("%s: repository error for user id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return user, nil
}

func (s *Service) save(ctx context.Context, op string, user *domain.User) (*models.UserResponse, error) {
	saved, err := s.userRepo.Save(ctx, user)
	if err != nil {
		s.logger.Error("%s: failed to save user id=%s: %v", op, user.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return models.FromDomainUser(saved), nil
}
