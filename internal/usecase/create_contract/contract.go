package create_contract

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// ContractRepository интерфейс репозитория контрактов
type ContractRepository interface {
	List(ctx context.Context, filter domain.ContractFilter, page domain.Page) ([]*domain.Contract, error)
	Save(ctx context.Context, contract *domain.Contract) (*domain.Contract, error)
}

// CarRepository интерфейс репозитория машин
type CarRepository interface {
	Get(ctx context.Context, id string) (*domain.Car, error)
	Save(ctx context.Context, car *domain.Car) (*domain.Car, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// IDGenerator интерфейс генератора ID новых контрактов
type IDGenerator interface {
	NewID() string
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

// UUIDGenerator генерирует ID контрактов через google/uuid
type UUIDGenerator struct{}

// NewID возвращает новый UUID без дефисов, первые символы идут в номер заказа
func (UUIDGenerator) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
