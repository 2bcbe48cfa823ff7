package mapping

import (
	"context"
	"errors"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// CollectPages walks list page by page until a short page and returns every item.
// A mapping error covers the whole collection and repeats on each page, so it is counted
// from page 1 only; any other error stops the walk.
func CollectPages[T any](ctx context.Context, list func(ctx context.Context, page domain.Page) ([]T, error)) ([]T, int, error) {
	var (
		all     []T
		skipped int
	)
	for number := 1; ; number++ {
		items, err := list(ctx, domain.Page{Number: number, Size: domain.MaxPageSize})
		if err != nil {
			if !errors.Is(err, ErrMapping) {
				return nil, 0, err
			}
			if number == 1 {
				skipped = CountErrors(err)
			}
		}
		all = append(all, items...)
		if len(items) < domain.MaxPageSize {
			return all, skipped, nil
		}
	}
}
