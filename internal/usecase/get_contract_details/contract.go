package get_contract_details

import (
	"context"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// ContractRepository интерфейс репозитория контрактов
type ContractRepository interface {
	Get(ctx context.Context, id string) (*domain.Contract, error)
}

// CarRepository интерфейс репозитория машин
type CarRepository interface {
	Get(ctx context.Context, id string) (*domain.Car, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.User, error)
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
