package car

import (
	"context"

	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

// Documents доступ к хранилищу документов, реализуется documents.Gateway
type Documents interface {
	Get(ctx context.Context, collection, id string) (docstore.Document, error)
	List(ctx context.Context, collection string) ([]docstore.Snapshot, error)
	Set(ctx context.Context, collection, id string, doc docstore.Document) error
	Delete(ctx context.Context, collection, id string) error
}
