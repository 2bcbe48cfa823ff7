package update_user_status

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/service/users/models"
)

type UserService interface {
	UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
