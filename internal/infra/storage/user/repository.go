package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/documents"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
)

// Repository репозиторий пользователей поверх коллекции Users
type Repository struct {
	docs   Documents
	mapper *mapping.Mapper
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(docs Documents, mapper *mapping.Mapper) *Repository {
	return &Repository{docs: docs, mapper: mapper}
}

var _ domain.UserRepository = (*Repository)(nil)

// Get получает пользователя по ID документа
func (r *Repository) Get(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.docs.Get(ctx, docstore.CollectionUsers, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("%w: Get - load document: %w", ErrLoad, err)
	}
	return r.mapper.User(id, doc)
}

// List получает пользователей по фильтру, упорядоченных по ID
func (r *Repository) List(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]*domain.User, error) {
	snaps, err := r.docs.List(ctx, docstore.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("%w: List - load documents: %w", ErrLoad, err)
	}

	users, mapErr := documents.Collect(snaps, r.mapper.User)

	matched := make([]*domain.User, 0, len(users))
	for _, user := range users {
		if filter.Match(user) {
			matched = append(matched, user)
		}
	}

	from, to := page.Bounds(len(matched))
	return matched[from:to], mapErr
}

// Save создает или заменяет документ пользователя
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: Save - validate: %w", ErrInvalidUser, err)
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if err := r.docs.Set(ctx, docstore.CollectionUsers, user.ID, r.mapper.UserDocument(user)); err != nil {
		return nil, fmt.Errorf("%w: Save - set document: %w", ErrSave, err)
	}
	return user, nil
}

// Delete удаляет документ пользователя
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.docs.Delete(ctx, docstore.CollectionUsers, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
		}
		return fmt.Errorf("%w: Delete - delete document: %w", ErrDelete, err)
	}
	return nil
}
