// Package docstore is the boundary to the external document database.
// Documents are untyped field maps addressed by collection name and id.
// Every Store call blocks; callers run them on the worker pool.
package docstore

import "context"

// Collection names as the external system spells them
const (
	CollectionCars      = "Cars"
	CollectionUsers     = "Users"
	CollectionContracts = "Contracts"
)

// Document is a raw stored document
type Document map[string]any

// Snapshot is a document together with its id
type Snapshot struct {
	ID   string
	Data Document
}

// Reference is the store-neutral form of a pointer to another document
type Reference struct {
	Path string // "Collection/id"
	ID   string
}

// GeoPoint is the store-neutral form of a stored coordinate
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// Store is a blocking key-document-collection service.
// Set has create-or-replace semantics at document granularity.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string) ([]Snapshot, error)
	Set(ctx context.Context, collection, id string, doc Document) error
	Delete(ctx context.Context, collection, id string) error
}

// NewReference builds a reference to collection/id
func NewReference(collection, id string) Reference {
	return Reference{Path: collection + "/" + id, ID: id}
}

// ParseReference splits "Collection/id" (or a longer path) into a reference
func ParseReference(path string) Reference {
	id := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			id = path[i+1:]
			break
		}
	}
	return Reference{Path: path, ID: id}
}
