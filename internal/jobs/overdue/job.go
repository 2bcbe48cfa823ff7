// Package overdue periodically reports active contracts whose end date has passed.
package overdue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
)

// Report итог одного прохода
type Report struct {
	Checked int
	Overdue []*domain.Contract
	Skipped int
}

// Job проверка просроченных контрактов
type Job struct {
	contractRepo ContractRepository
	metrics      Metrics
	timeProvider TimeProvider
	timeout      time.Duration
	logger       Logger
}

// NewJob создает задачу; metrics может быть nil, timeout <= 0 снимает ограничение
func NewJob(contractRepo ContractRepository, metrics Metrics, timeout time.Duration, logger Logger) *Job {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Job{
		contractRepo: contractRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		timeout:      timeout,
		logger:       logger,
	}
}

// Run вызывается планировщиком
func (j *Job) Run() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	if _, err := j.Sweep(ctx); err != nil {
		j.logger.Error("OverdueSweep: failed: %v", err)
	}
}

// Sweep проходит по всем активным контрактам и считает просроченные
func (j *Job) Sweep(ctx context.Context) (*Report, error) {
	now := j.timeProvider.Now()
	status := domain.ContractStatusActive
	filter := domain.ContractFilter{Status: &status}

	report := &Report{}
	for number := 1; ; number++ {
		contracts, err := j.contractRepo.List(ctx, filter, domain.Page{Number: number, Size: domain.MaxPageSize})
		if err != nil {
			if !errors.Is(err, mapping.ErrMapping) {
				return nil, fmt.Errorf("list active contracts: %w", err)
			}
			// ошибка чтения относится ко всей коллекции, считаем её один раз
			if number == 1 {
				report.Skipped = mapping.CountErrors(err)
			}
		}

		report.Checked += len(contracts)
		for _, c := range contracts {
			if c.IsOverdue(now) {
				report.Overdue = append(report.Overdue, c)
				j.logger.Warn("OverdueSweep: contract id=%s (%s) car id=%s ended %s",
					c.ID, c.ContractNumber, c.CarID, c.Period.End.Format(domain.DateFormat))
			}
		}

		if len(contracts) < domain.MaxPageSize {
			break
		}
	}

	j.metrics.SetOverdueContracts(len(report.Overdue))
	j.logger.Info("OverdueSweep: checked=%d, overdue=%d, skipped=%d",
		report.Checked, len(report.Overdue), report.Skipped)
	return report, nil
}
