// Package memory содержит репозитории, которые держат сущности в памяти процесса.
// Используются в тестах сервисов и сценариев, где маппинг документов не нужен.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// table хранит копии сущностей по ID
type table[T any] struct {
	mu       sync.RWMutex
	items    map[string]T
	clone    func(T) T
	id       func(T) string
	setID    func(T, string)
	notFound error
}

func newTable[T any](clone func(T) T, id func(T) string, setID func(T, string), notFound error) *table[T] {
	return &table[T]{
		items:    make(map[string]T),
		clone:    clone,
		id:       id,
		setID:    setID,
		notFound: notFound,
	}
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, ok := t.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", t.notFound, id)
	}
	return t.clone(item), nil
}

func (t *table[T]) list(match func(T) bool, page domain.Page) []T {
	t.mu.RLock()
	ids := make([]string, 0, len(t.items))
	for id := range t.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	matched := make([]T, 0, len(ids))
	for _, id := range ids {
		if item := t.items[id]; match(item) {
			matched = append(matched, t.clone(item))
		}
	}
	t.mu.RUnlock()

	from, to := page.Bounds(len(matched))
	return matched[from:to]
}

func (t *table[T]) save(item T) T {
	if t.id(item) == "" {
		t.setID(item, uuid.NewString())
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.items[t.id(item)] = t.clone(item)
	return item
}

func (t *table[T]) delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.items[id]; !ok {
		return fmt.Errorf("%w: %s", t.notFound, id)
	}
	delete(t.items, id)
	return nil
}
