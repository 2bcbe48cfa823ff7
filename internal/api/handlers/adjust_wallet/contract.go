package adjust_wallet

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users/models"
)

type UserService interface {
	AdjustWallet(ctx context.Context, id string, req *models.WalletRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
