package overdue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/memory"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type gauge struct{ value int }

func (g *gauge) SetOverdueContracts(n int) { g.value = n }

type contractsFunc func(ctx context.Context, filter domain.ContractFilter, page domain.Page) ([]*domain.Contract, error)

func (f contractsFunc) List(ctx context.Context, filter domain.ContractFilter, page domain.Page) ([]*domain.Contract, error) {
	return f(ctx, filter, page)
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 10, 0, 0, 0, time.UTC)
}

func contract(t *testing.T, id string, end int, activate bool) *domain.Contract {
	t.Helper()
	c, err := domain.NewContract(domain.NewContractParams{
		ID: id, UserID: "u-1", CarID: "car-" + id,
		Period: domain.DateRange{Start: day(1), End: day(end)},
	})
	require.NoError(t, err)
	if activate {
		require.NoError(t, c.Activate())
	}
	return c
}

func TestJob_Sweep(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewContractRepository()
	for _, c := range []*domain.Contract{
		contract(t, "k1", 3, true),  // просрочен
		contract(t, "k2", 9, true),  // ещё идёт
		contract(t, "k3", 2, false), // черновик не считается
	} {
		_, err := repo.Save(ctx, c)
		require.NoError(t, err)
	}

	g := &gauge{}
	job := NewJob(repo, g, time.Second, logger.NewNop())
	job.timeProvider = fixedClock{now: day(5)}

	report, err := job.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	require.Len(t, report.Overdue, 1)
	assert.Equal(t, "k1", report.Overdue[0].ID)
	assert.Equal(t, 1, g.value)
}

func TestJob_SweepSkipsUnreadable(t *testing.T) {
	broken := errors.Join(&mapping.MappingError{DocumentID: "x", Kind: mapping.KindInvariantViolated})
	overdue := contract(t, "k1", 2, true)

	job := NewJob(contractsFunc(func(context.Context, domain.ContractFilter, domain.Page) ([]*domain.Contract, error) {
		return []*domain.Contract{overdue}, broken
	}), nil, 0, logger.NewNop())
	job.timeProvider = fixedClock{now: day(4)}

	report, err := job.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, report.Overdue, 1)
}

func TestJob_SweepStoreFailure(t *testing.T) {
	g := &gauge{value: 7}
	job := NewJob(contractsFunc(func(context.Context, domain.ContractFilter, domain.Page) ([]*domain.Contract, error) {
		return nil, errors.New("store unavailable")
	}), g, 0, logger.NewNop())

	_, err := job.Sweep(context.Background())
	assert.Error(t, err)
	// неудачный проход не сбрасывает последнее значение
	assert.Equal(t, 7, g.value)
}

func TestNewScheduler(t *testing.T) {
	job := NewJob(memory.NewContractRepository(), nil, 0, logger.NewNop())

	s, err := NewScheduler("0 */15 * * * *", job, logger.NewNop())
	require.NoError(t, err)
	s.Start()
	s.Stop()

	_, err = NewScheduler("every quarter hour", job, logger.NewNop())
	assert.Error(t, err)
}
