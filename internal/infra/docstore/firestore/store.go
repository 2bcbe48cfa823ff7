// Package firestore adapts the hosted document database client to docstore.Store.
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

// Store обёртка над клиентом Firestore. Клиент передаётся явно, глобального состояния нет.
type Store struct {
	client *firestore.Client
}

var _ docstore.Store = (*Store)(nil)

// NewStore создает хранилище поверх готового клиента
func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}

// Open создает клиента для проекта и оборачивает его в Store
func Open(ctx context.Context, projectID string, opts ...option.ClientOption) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", docstore.ErrUnavailable, err)
	}
	return NewStore(client), nil
}

// ClientOptions собирает опции авторизации: файл сервисного аккаунта или JSON с ключом.
// Пустые значения означают Application Default Credentials.
func ClientOptions(credentialsFile, credentialsJSON string) []option.ClientOption {
	var opts []option.ClientOption
	switch {
	case credentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	case credentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	return opts
}

// Close закрывает клиента
func (s *Store) Close() error {
	return s.client.Close()
}

// Get получает документ
func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, classify("Get", collection, id, err)
	}
	return fromNative(snap.Data()), nil
}

// List получает все документы коллекции в порядке id.
// Фильтрация и пагинация выполняются на стороне репозитория.
func (s *Store) List(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	iter := s.client.Collection(collection).OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var snapshots []docstore.Snapshot
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("List", collection, "", err)
		}
		snapshots = append(snapshots, docstore.Snapshot{ID: snap.Ref.ID, Data: fromNative(snap.Data())})
	}
	return snapshots, nil
}

// Set создает или заменяет документ целиком
func (s *Store) Set(ctx context.Context, collection, id string, doc docstore.Document) error {
	data, _ := s.toNative(map[string]any(doc)).(map[string]any)
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return classify("Set", collection, id, err)
	}
	return nil
}

// Delete удаляет документ. Отсутствующий документ возвращает docstore.ErrNotFound.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return classify("Delete", collection, id, err)
	}
	return nil
}

// classify переводит gRPC коды в ошибки docstore
func classify(op, collection, id string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return fmt.Errorf("%w: %s %s/%s: %v", docstore.ErrUnavailable, op, collection, id, err)
	default:
		return fmt.Errorf("%w: %s %s/%s: %v", docstore.ErrStore, op, collection, id, err)
	}
}
