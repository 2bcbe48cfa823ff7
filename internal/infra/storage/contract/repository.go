package contract

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

// Repository репозиторий контрактов поверх коллекции Contracts
type Repository struct {
	docs   Documents
	mapper *mapping.Mapper
}

// NewRepository создает новый экземпляр репозитория контрактов
func NewRepository(docs Documents, mapper *mapping.Mapper) *Repository {
	return &Repository{docs: docs, mapper: mapper}
}

var _ domain.ContractRepository = (*Repository)(nil)

// Get получает контракт по ID документа
func (r *Repository) Get(ctx context.Context, id string) (*domain.Contract, error) {
	doc, err := r.docs.Get(ctx, docstore.CollectionContracts, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, id)
		}
		return nil, fmt.Errorf("%w: Get - load document: %w", ErrLoad, err)
	}
	return r.mapper.Contract(id, doc)
}

// List получает контракты по фильтру, упорядоченные по ID.
// Фильтрация выполняется на стороне клиента: хранилище не индексирует поля с разными именами.
func (r *Repository) List(ctx context.Context, filter domain.ContractFilter, page domain.Page) ([]*domain.Contract, error) {
	snaps, err := r.docs.List(ctx, docstore.CollectionContracts)
	if err != nil {
		return nil, fmt.Errorf("%w: List - load documents: %w", ErrLoad, err)
	}

	contracts, mapErr := documents.Collect(snaps, r.mapper.Contract)

	matched := make([]*domain.Contract, 0, len(contracts))
	for _, c := range contracts {
		if filter.Match(c) {
			matched = append(matched, c)
		}
	}

	from, to := page.Bounds(len(matched))
	return matched[from:to], mapErr
}

// Save создает или заменяет документ контракта
func (r *Repository) Save(ctx context.Context, c *domain.Contract) (*domain.Contract, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: Save - validate: %w", ErrInvalidContract, err)
	}

	if err := r.docs.Set(ctx, docstore.CollectionContracts, c.ID, r.mapper.ContractDocument(c)); err != nil {
		return nil, fmt.Errorf("%w: Save - set document: %w", ErrSave, err)
	}
	return c, nil
}

// Delete удаляет документ контракта
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.docs.Delete(ctx, docstore.CollectionContracts, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrContractNotFound, id)
		}
		return fmt.Errorf("%w: Delete - delete document: %w", ErrDelete, err)
	}
	return nil
}
