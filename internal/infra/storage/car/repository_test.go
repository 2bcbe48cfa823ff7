package car

import (
	"context"
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
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/documents"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/workerpool"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/logger"
)

func newTestRepository(t *testing.T) (*Repository, *memory.Store, *mapping.Recorder) {
	t.Helper()
	store := memory.NewStore()
	pool := workerpool.New(workerpool.Config{Workers: 2, QueueDepth: 8})
	t.Cleanup(pool.Close)

	gw := documents.NewGateway(store, pool, documents.RetryConfig{MaxAttempts: 1, InitialInterval: time.Millisecond}, logger.NewNop())
	rec := &mapping.Recorder{}
	return NewRepository(gw, mapping.NewMapper(rec)), store, rec
}

func TestRepository_GetLegacyDocument(t *testing.T) {
	repo, store, rec := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, docstore.CollectionCars, "abcd1234", docstore.Document{
		"make":           "Toyota",
		"rental_price":   0,
		"Seats":          4,
		"trans_type":     "AT",
		"isOutOfService": false,
	}))

	car, err := repo.Get(ctx, "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "TOY-abcd", car.LicensePlate)
	assert.Equal(t, domain.CarStatusAvailable, car.Status)
	assert.Len(t, rec.OfKind(mapping.EventClamp), 1)
}

func TestRepository_GetNotFound(t *testing.T) {
	repo, _, _ := newTestRepository(t)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCarNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_GetMappingError(t *testing.T) {
	repo, store, _ := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, docstore.CollectionCars, "c1", docstore.Document{"model": "Corolla"}))

	_, err := repo.Get(ctx, "c1")
	assert.ErrorIs(t, err, mapping.ErrMissingRequiredField)
}

func TestRepository_SavePreservesFieldNames(t *testing.T) {
	repo, store, _ := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, docstore.CollectionCars, "c1", docstore.Document{
		"Make":         "Kia",
		"rental_price": 150,
		"createdBy":    "admin",
	}))

	car, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.NoError(t, car.SetDailyRate(domain.MustMoney("175", "SAR")))

	_, err = repo.Save(ctx, car)
	require.NoError(t, err)

	doc, err := store.Get(ctx, docstore.CollectionCars, "c1")
	require.NoError(t, err)
	assert.Equal(t, 175.0, doc["rental_price"])
	assert.Equal(t, "Kia", doc["Make"])
	assert.Equal(t, "admin", doc["createdBy"])
	assert.NotContains(t, doc, "rental_price_day")
	assert.NotContains(t, doc, "license_plate")
}

func TestRepository_SaveNewCar(t *testing.T) {
	repo, store, _ := newTestRepository(t)
	ctx := context.Background()

	car, err := domain.NewCar(domain.NewCarParams{
		Make:         "Hyundai",
		Model:        "Elantra",
		LicensePlate: "XYZ-1",
		DailyRate:    domain.MustMoney("120", "SAR"),
	})
	require.NoError(t, err)

	saved, err := repo.Save(ctx, car)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	doc, err := store.Get(ctx, docstore.CollectionCars, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hyundai", doc["make"])
	assert.Equal(t, 120.0, doc["rental_price_day"])
	assert.Equal(t, "AT", doc["trans_type"])

	got, err := repo.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "XYZ-1", got.LicensePlate)
}

func TestRepository_SaveRejectsInvalid(t *testing.T) {
	repo, store, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.Car{ID: "c1", Status: domain.CarStatusAvailable})
	assert.ErrorIs(t, err, ErrInvalidCar)
	assert.ErrorIs(t, err, domain.ErrInvalidCar)

	_, err = store.Get(ctx, docstore.CollectionCars, "c1")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestRepository_ListFiltersAndReportsBrokenDocuments(t *testing.T) {
	repo, store, _ := newTestRepository(t)
	ctx := context.Background()

	docs := map[string]docstore.Document{
		"a": {"make": "Toyota", "rental_price_day": 100},
		"b": {"make": "toyota", "rental_price_day": 100, "isRented": true},
		"c": {"make": "Kia", "rental_price_day": 100},
		"d": {"rental_price_day": 100},
	}
	for id, doc := range docs {
		require.NoError(t, store.Set(ctx, docstore.CollectionCars, id, doc))
	}

	brand := "TOYOTA"
	cars, err := repo.List(ctx, domain.CarFilter{Make: &brand}, domain.Page{})
	require.Error(t, err)
	assert.ErrorIs(t, err, mapping.ErrMissingRequiredField)
	require.Len(t, cars, 2)
	assert.Equal(t, "a", cars[0].ID)
	assert.Equal(t, "b", cars[1].ID)

	available := domain.CarStatusAvailable
	cars, _ = repo.List(ctx, domain.CarFilter{Status: &available}, domain.Page{Number: 2, Size: 1})
	require.Len(t, cars, 1)
	assert.Equal(t, "c", cars[0].ID)
}

func TestRepository_Delete(t *testing.T) {
	repo, store, _ := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, docstore.CollectionCars, "c1", docstore.Document{"make": "Kia"}))

	require.NoError(t, repo.Delete(ctx, "c1"))
	assert.ErrorIs(t, repo.Delete(ctx, "c1"), domain.ErrCarNotFound)
}

// gatedStore держит каждый Get до открытия gate и считает одновременные вызовы
type gatedStore struct {
	*memory.Store
	gate     chan struct{}
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *gatedStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	<-s.gate
	return s.Store.Get(ctx, collection, id)
}

func TestRepository_ConcurrentGetsBoundedByPool(t *testing.T) {
	const (
		workers = 4
		callers = 9
	)
	store := &gatedStore{Store: memory.NewStore(), gate: make(chan struct{})}
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, docstore.CollectionCars, "abcd1234", docstore.Document{"make": "Toyota", "rental_price": 0}))

	pool := workerpool.New(workerpool.Config{Workers: workers, QueueDepth: callers})
	t.Cleanup(pool.Close)
	gw := documents.NewGateway(store, pool, documents.RetryConfig{MaxAttempts: 1, InitialInterval: time.Millisecond}, logger.NewNop())
	repo := NewRepository(gw, mapping.NewMapper(nil))

	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			car, err := repo.Get(ctx, "abcd1234")
			if err == nil && car.LicensePlate != "TOY-abcd" {
				err = fmt.Errorf("unexpected plate %s", car.LicensePlate)
			}
			errs <- err
		}()
	}

	// все воркеры заняты, остальные вызовы ждут в очереди
	require.Eventually(t, func() bool { return store.inFlight.Load() == workers }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, workers, store.inFlight.Load())

	close(store.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, store.peak.Load(), int32(workers))
	assert.EqualValues(t, 0, store.inFlight.Load())
}
