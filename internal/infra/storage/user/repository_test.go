package user

import (
	"context"
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

func newTestRepository(t *testing.T) (*Repository, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	pool := workerpool.New(workerpool.Config{Workers: 2, QueueDepth: 8})
	t.Cleanup(pool.Close)

	gw := documents.NewGateway(store, pool, documents.RetryConfig{MaxAttempts: 1, InitialInterval: time.Millisecond}, logger.NewNop())
	return NewRepository(gw, mapping.NewMapper(nil)), store
}

func TestRepository_DeactivateKeepsLegacyKeys(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, docstore.CollectionUsers, "u1", docstore.Document{
		"firstName":       "Omar",
		"isEmailVerified": true,
		"isPhoneVerified": true,
		"fcmToken":        "abc",
	}))

	user, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, user.IsActive())

	user.Deactivate()
	_, err = repo.Save(ctx, user)
	require.NoError(t, err)

	doc, err := store.Get(ctx, docstore.CollectionUsers, "u1")
	require.NoError(t, err)
	assert.Equal(t, false, doc["isActive"])
	assert.Equal(t, "Omar", doc["firstName"])
	assert.Equal(t, "abc", doc["fcmToken"])

	again, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, again.IsActive())
}

func TestRepository_ListByStatus(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	for id, doc := range map[string]docstore.Document{
		"u1": {"isActive": true},
		"u2": {"isBlocked": true, "isActive": true},
		"u3": {"status": "active"},
	} {
		require.NoError(t, store.Set(ctx, docstore.CollectionUsers, id, doc))
	}

	active := domain.UserStatusActive
	users, err := repo.List(ctx, domain.UserFilter{Status: &active}, domain.Page{})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "u3", users[1].ID)
}

func TestRepository_NotFound(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nobody"), domain.ErrUserNotFound)
}

func TestRepository_SaveRejectsUnknownStatus(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Save(context.Background(), &domain.User{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidUser)
}
