package documents

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore/memory"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/workerpool"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
)

// flakyStore отвечает ErrUnavailable первые failures вызовов
type flakyStore struct {
	docstore.Store
	failures atomic.Int32
	calls    atomic.Int32
}

func (s *flakyStore) fail() error {
	s.calls.Add(1)
	if s.failures.Add(-1) >= 0 {
		return fmt.Errorf("%w: connection reset", docstore.ErrUnavailable)
	}
	return nil
}

func (s *flakyStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, collection, id)
}

func (s *flakyStore) Set(ctx context.Context, collection, id string, doc docstore.Document) error {
	if err := s.fail(); err != nil {
		return err
	}
	return s.Store.Set(ctx, collection, id, doc)
}

type countingMetrics struct {
	mu      sync.Mutex
	ops     map[string]int
	retries int
}

func (m *countingMetrics) IncStoreOperation(collection, operation, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ops == nil {
		m.ops = map[string]int{}
	}
	m.ops[collection+"/"+operation+"/"+result]++
}

func (m *countingMetrics) IncStoreRetry(string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retries++
}

func (m *countingMetrics) ObserveStoreCall(string, string, time.Duration) {}

func newTestGateway(t *testing.T, store docstore.Store, attempts uint) (*Gateway, *countingMetrics) {
	t.Helper()
	pool := workerpool.New(workerpool.Config{Workers: 2, QueueDepth: 4})
	t.Cleanup(pool.Close)

	metrics := &countingMetrics{}
	retry := RetryConfig{MaxAttempts: attempts, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
	return NewGateway(store, pool, retry, logger.NewNop(), WithMetrics(metrics)), metrics
}

func TestGateway_GetRetriesUnavailable(t *testing.T) {
	mem := memory.NewStore()
	require.NoError(t, mem.Set(context.Background(), docstore.CollectionCars, "c1", docstore.Document{"make": "Kia"}))

	store := &flakyStore{Store: mem}
	store.failures.Store(2)
	g, metrics := newTestGateway(t, store, 3)

	doc, err := g.Get(context.Background(), docstore.CollectionCars, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Kia", doc["make"])
	assert.Equal(t, int32(3), store.calls.Load())
	assert.Equal(t, 2, metrics.retries)
	assert.Equal(t, 1, metrics.ops["Cars/get/ok"])
}

func TestGateway_GetGivesUp(t *testing.T) {
	store := &flakyStore{Store: memory.NewStore()}
	store.failures.Store(10)
	g, metrics := newTestGateway(t, store, 3)

	_, err := g.Get(context.Background(), docstore.CollectionCars, "c1")
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.ErrorIs(t, err, docstore.ErrUnavailable)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, int32(3), store.calls.Load())
	assert.Equal(t, 1, metrics.ops["Cars/get/unavailable"])
}

func TestGateway_NotFoundIsNotRetried(t *testing.T) {
	store := &flakyStore{Store: memory.NewStore()}
	g, _ := newTestGateway(t, store, 3)

	_, err := g.Get(context.Background(), docstore.CollectionCars, "missing")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, int32(1), store.calls.Load())
}

func TestGateway_WritesAreNotRetried(t *testing.T) {
	store := &flakyStore{Store: memory.NewStore()}
	store.failures.Store(1)
	g, metrics := newTestGateway(t, store, 3)

	err := g.Set(context.Background(), docstore.CollectionCars, "c1", docstore.Document{"make": "Kia"})
	assert.ErrorIs(t, err, docstore.ErrUnavailable)
	assert.Equal(t, int32(1), store.calls.Load())
	assert.Equal(t, 0, metrics.retries)
}

// blockingStore держит вызовы, пока не закрыт release
type blockingStore struct {
	docstore.Store
	release chan struct{}
}

func (s *blockingStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	<-s.release
	return docstore.Document{}, nil
}

func TestGateway_BackpressureIsNotRetried(t *testing.T) {
	store := &blockingStore{Store: memory.NewStore(), release: make(chan struct{})}
	pool := workerpool.New(workerpool.Config{Workers: 1, QueueDepth: 1})
	defer pool.Close()
	g := NewGateway(store, pool, RetryConfig{MaxAttempts: 5, InitialInterval: time.Millisecond}, logger.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = g.Get(context.Background(), docstore.CollectionCars, "c")
		}()
	}
	require.Eventually(t, func() bool { return pool.InFlight() == 1 && pool.Queued() == 1 }, time.Second, time.Millisecond)

	_, err := g.Get(context.Background(), docstore.CollectionCars, "c")
	assert.True(t, errors.Is(err, workerpool.ErrBackpressure), "got %v", err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	close(store.release)
	wg.Wait()
}
