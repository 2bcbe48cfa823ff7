package cars

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// CarRepository интерфейс репозитория машин
type CarRepository interface {
	Get(ctx context.Context, id string) (*domain.Car, error)
	List(ctx context.Context, filter domain.CarFilter, page domain.Page) ([]*domain.Car, error)
	Save(ctx context.Context, car *domain.Car) (*domain.Car, error)
	Delete(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
