package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/memory"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users/models"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
)

func newTestService(t *testing.T, users ...*domain.User) *Service {
	t.Helper()
	repo := memory.NewUserRepository()
	for _, u := range users {
		_, err := repo.Save(context.Background(), u)
		require.NoError(t, err)
	}
	return NewService(repo, logger.NewNop())
}

func sara() *domain.User {
	return &domain.User{
		ID:            "u1",
		FirstName:     "Sara",
		LastName:      "Ali",
		WalletBalance: domain.MustMoney("50", "SAR"),
		Status:        domain.UserStatusActive,
	}
}

func TestService_UpdateStatus(t *testing.T) {
	svc := newTestService(t, sara())
	ctx := context.Background()

	resp, err := svc.UpdateStatus(ctx, "u1", &models.UpdateStatusRequest{Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)

	inactive := "inactive"
	list, err := svc.List(ctx, &models.ListUsersRequest{Status: &inactive})
	require.NoError(t, err)
	require.Len(t, list.Users, 1)
	assert.Equal(t, "Sara Ali", list.Users[0].FullName)

	_, err = svc.UpdateStatus(ctx, "u1", &models.UpdateStatusRequest{Status: "banned"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_AdjustWallet(t *testing.T) {
	svc := newTestService(t, sara())
	ctx := context.Background()

	resp, err := svc.AdjustWallet(ctx, "u1", &models.WalletRequest{Operation: models.WalletCredit, Amount: "25.5"})
	require.NoError(t, err)
	assert.Equal(t, "75.50", resp.WalletBalance.Amount)

	_, err = svc.AdjustWallet(ctx, "u1", &models.WalletRequest{Operation: models.WalletDebit, Amount: "100"})
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	resp, err = svc.AdjustWallet(ctx, "u1", &models.WalletRequest{Operation: models.WalletDebit, Amount: "75.5"})
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.WalletBalance.Amount)

	_, err = svc.AdjustWallet(ctx, "u1", &models.WalletRequest{Operation: "refund", Amount: "1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_NotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "ghost"), ErrUserNotFound)
}
