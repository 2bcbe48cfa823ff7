package get_available_cars

import (
	"context"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// CarRepository интерфейс репозитория машин
type CarRepository interface {
	List(ctx context.Context, filter domain.CarFilter, page domain.Page) ([]*domain.Car, error)
}

// ContractRepository интерфейс репозитория контрактов
type ContractRepository interface {
	List(ctx context.Context, filter domain.ContractFilter, page domain.Page) ([]*domain.Contract, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
