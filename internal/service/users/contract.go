package users

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
