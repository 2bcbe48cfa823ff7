package car

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

// Repository репозиторий машин поверх коллекции Cars
type Repository struct {
	docs   Documents
	mapper *mapping.Mapper
}

// NewRepository создает новый экземпляр репозитория машин
func NewRepository(docs Documents, mapper *mapping.Mapper) *Repository {
	return &Repository{docs: docs, mapper: mapper}
}

var _ domain.CarRepository = (*Repository)(nil)

// Get получает машину по ID документа
func (r *Repository) Get(ctx context.Context, id string) (*domain.Car, error) {
	doc, err := r.docs.Get(ctx, docstore.CollectionCars, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCarNotFound, id)
		}
		return nil, fmt.Errorf("%w: Get - load document: %w", ErrLoad, err)
	}

	// ошибка маппинга возвращается как есть, вызывающий решает, что с ней делать
	return r.mapper.Car(id, doc)
}

// List получает машины по фильтру, упорядоченные по ID.
// Вместе с найденными машинами возвращается объединённая ошибка документов, которые не удалось прочитать.
func (r *Repository) List(ctx context.Context, filter domain.CarFilter, page domain.Page) ([]*domain.Car, error) {
	snaps, err := r.docs.List(ctx, docstore.CollectionCars)
	if err != nil {
		return nil, fmt.Errorf("%w: List - load documents: %w", ErrLoad, err)
	}

	cars, mapErr := documents.Collect(snaps, r.mapper.Car)

	matched := make([]*domain.Car, 0, len(cars))
	for _, car := range cars {
		if filter.Match(car) {
			matched = append(matched, car)
		}
	}

	from, to := page.Bounds(len(matched))
	return matched[from:to], mapErr
}

// Save создает или заменяет документ машины. Пустой ID заменяется новым UUID.
func (r *Repository) Save(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	if err := car.Validate(); err != nil {
		return nil, fmt.Errorf("%w: Save - validate: %w", ErrInvalidCar, err)
	}
	if car.ID == "" {
		car.ID = uuid.NewString()
	}

	doc := r.mapper.CarDocument(car)
	if err := r.docs.Set(ctx, docstore.CollectionCars, car.ID, doc); err != nil {
		return nil, fmt.Errorf("%w: Save - set document: %w", ErrSave, err)
	}
	return car, nil
}

// Delete удаляет документ машины
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.docs.Delete(ctx, docstore.CollectionCars, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrCarNotFound, id)
		}
		return fmt.Errorf("%w: Delete - delete document: %w", ErrDelete, err)
	}
	return nil
}
