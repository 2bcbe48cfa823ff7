package contract

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
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

func utcDay(d int) time.Time {
	return time.Date(2025, 3, d, 10, 0, 0, 0, time.UTC)
}

func TestRepository_ExtendLegacyContract(t *testing.T) {
	repo, store, rec := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, docstore.CollectionContracts, "0123456789abcdef", docstore.Document{
		"User":           docstore.NewReference(docstore.CollectionUsers, "u-1"),
		"carId":          "car-1",
		"ContractStatus": "active",
		"start_date":     "2025-03-01T10:00:00Z",
		"end_date":       "2025-03-05T10:00:00Z",
		"totalCost":      400.0,
		"createdBy":      "admin",
	}))

	c, err := repo.Get(ctx, "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, "ORDER_01234567", c.OrderID)
	assert.NotEmpty(t, rec.OfKind(mapping.EventDerived))

	require.NoError(t, c.Extend(utcDay(7), domain.MustMoney("200", "SAR"), domain.BookingDay, 2, utcDay(3)))
	_, err = repo.Save(ctx, c)
	require.NoError(t, err)

	doc, err := store.Get(ctx, docstore.CollectionContracts, "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, 600.0, doc["totalCost"])
	assert.Equal(t, "admin", doc["createdBy"])
	assert.Contains(t, doc, "listExtendDetails")
	assert.NotContains(t, doc, "total_cost")

	again, err := repo.Get(ctx, "0123456789abcdef")
	require.NoError(t, err)
	assert.True(t, again.Period.End.Equal(utcDay(7)))
	assert.True(t, again.Extended)
	require.Len(t, again.Extensions, 1)
}

func TestRepository_ListByUser(t *testing.T) {
	repo, store, _ := newTestRepository(t)
	ctx := context.Background()
	for id, userID := range map[string]string{"k1": "u-1", "k2": "u-2", "k3": "u-1"} {
		require.NoError(t, store.Set(ctx, docstore.CollectionContracts, id, docstore.Document{
			"user_id":    userID,
			"car_id":     "car-1",
			"start_date": "2025-03-01",
			"end_date":   "2025-03-03",
			"total_cost": 200,
		}))
	}
	require.NoError(t, store.Set(ctx, docstore.CollectionContracts, "k4", docstore.Document{
		"user_id": "u-1", "car_id": "car-1", "start_date": "2025-03-05", "end_date": "2025-03-01", "total_cost": 1,
	}))

	userID := "u-1"
	contracts, err := repo.List(ctx, domain.ContractFilter{UserID: &userID}, domain.Page{})
	assert.ErrorIs(t, err, mapping.ErrInvariantViolated)
	require.Len(t, contracts, 2)
	assert.Equal(t, "k1", contracts[0].ID)
	assert.Equal(t, "k3", contracts[1].ID)
}

func TestRepository_SaveNewContract(t *testing.T) {
	repo, store, _ := newTestRepository(t)
	ctx := context.Background()

	c, err := domain.NewContract(domain.NewContractParams{
		ID:          "fedcba9876543210",
		UserID:      "u-1",
		CarID:       "car-1",
		Period:      domain.DateRange{Start: utcDay(1), End: utcDay(4)},
		TotalAmount: domain.MustMoney("300", "SAR"),
		BookingType: domain.BookingDay,
	})
	require.NoError(t, err)

	_, err = repo.Save(ctx, c)
	require.NoError(t, err)

	doc, err := store.Get(ctx, docstore.CollectionContracts, "fedcba9876543210")
	require.NoError(t, err)
	assert.Equal(t, "u-1", doc["user_id"])
	assert.Equal(t, 300.0, doc["total_cost"])
	assert.Equal(t, "ORDER_fedcba98", doc["OrderId"])
}

func TestRepository_SaveRejectsInvalid(t *testing.T) {
	repo, _, _ := newTestRepository(t)

	_, err := repo.Save(context.Background(), &domain.Contract{
		UserID: "u-1",
		Status: domain.ContractStatusActive,
		Period: domain.DateRange{Start: utcDay(1), End: utcDay(2)},
	})
	assert.ErrorIs(t, err, ErrInvalidContract)
}

func TestRepository_DeleteNotFound(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), domain.ErrContractNotFound)
}

func TestRepository_SaveTwiceIsIdempotent(t *testing.T) {
	repo, store, _ := newTestRepository(t)
	ctx := context.Background()
	const id = "c0a1b2c3d4e5f6a7"
	require.NoError(t, store.Set(ctx, docstore.CollectionContracts, id, docstore.Document{
		"User":           docstore.NewReference(docstore.CollectionUsers, "u-1"),
		"Car":            docstore.NewReference(docstore.CollectionCars, "car-1"),
		"ContractStatus": "active",
		"booking_type":   "week",
		"start_date":     map[string]any{"_seconds": utcDay(1).Unix(), "_nanoseconds": 0},
		"end_date":       "2025-03-08T10:00:00Z",
		"totalCost":      "300",
		"BookingDetails": map[string]any{
			"isPickup":     true,
			"PicupBranche": map[string]any{"id": "b1", "name": "Olaya"},
		},
		"installments": []any{
			map[string]any{"id": "i1", "paymentNr": 1, "amount": 150.0, "isPaid": true, "dueDate": "2025-03-01"},
			map[string]any{"id": "i2", "paymentNr": 2, "amount": 150.0, "isPaid": false},
		},
		"tansaction_info": map[string]any{"id": "tx-1", "type": "WALLET", "totalAmount": 300.0, "moysarFee": 2.5},
		"createdBy":       "admin",
	}))

	c, err := repo.Get(ctx, id)
	require.NoError(t, err)

	_, err = repo.Save(ctx, c)
	require.NoError(t, err)
	first, err := store.Get(ctx, docstore.CollectionContracts, id)
	require.NoError(t, err)

	_, err = repo.Save(ctx, c)
	require.NoError(t, err)
	second, err := store.Get(ctx, docstore.CollectionContracts, id)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second save changed the document (-first +second):\n%s", diff)
	}

	// перечитанный контракт сохраняется в тот же документ
	again, err := repo.Get(ctx, id)
	require.NoError(t, err)
	_, err = repo.Save(ctx, again)
	require.NoError(t, err)
	third, err := store.Get(ctx, docstore.CollectionContracts, id)
	require.NoError(t, err)
	if diff := cmp.Diff(first, third); diff != "" {
		t.Errorf("save after reload changed the document (-first +third):\n%s", diff)
	}
	assert.Equal(t, "admin", third["createdBy"])
}
