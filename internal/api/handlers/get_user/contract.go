package get_user

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users/models"
)

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
