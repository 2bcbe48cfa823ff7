package documents

import (
	"errors"

	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

// Collect переводит снимки коллекции в сущности.
// Документы, которые не удалось перевести, не теряются: их ошибки возвращаются вместе
// с успешно переведёнными сущностями через errors.Join.
func Collect[T any](snaps []docstore.Snapshot, mapFn func(id string, doc docstore.Document) (T, error)) ([]T, error) {
	out := make([]T, 0, len(snaps))
	var errs []error
	for _, snap := range snaps {
		v, err := mapFn(snap.ID, snap.Data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errors.Join(errs...)
}
