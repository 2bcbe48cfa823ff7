package overdue

import (
	"context"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// ContractRepository интерфейс репозитория контрактов
type ContractRepository interface {
	List(ctx context.Context, filter domain.ContractFilter, page domain.Page) ([]*domain.Contract, error)
}

// Metrics принимает число просроченных контрактов
type Metrics interface {
	SetOverdueContracts(n int)
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

type noopMetrics struct{}

func (noopMetrics) SetOverdueContracts(int) {}
