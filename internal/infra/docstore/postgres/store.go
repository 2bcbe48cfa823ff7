// Package postgres stores documents as JSONB rows. It backs local and staging
// environments that do not talk to the hosted document database.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
	"github.com/d3coo/car-rental-fastapi-vite/pkg/psqlbuilder"
)

const table = "documents"

// Schema создаёт таблицу документов
const Schema = `CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, id)
)`

// Store хранилище документов поверх PostgreSQL
type Store struct {
	db DBExecutor
}

var _ docstore.Store = (*Store)(nil)

// NewStore создает новый экземпляр хранилища
func NewStore(db DBExecutor) *Store {
	return &Store{db: db}
}

// EnsureSchema создаёт таблицу, если её ещё нет
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return classify(ErrExecQuery, "EnsureSchema - create table", err)
	}
	return nil
}

// Get получает документ по коллекции и id
func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	query, args, err := psqlbuilder.Select("data").
		From(table).
		Where(squirrel.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w: Get - build select query: %v", docstore.ErrStore, ErrBuildQuery, err)
	}

	var data []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
	}
	if err != nil {
		return nil, classify(ErrScanRow, "Get - scan document", err)
	}

	return docstore.DecodeJSON(data)
}

// List получает все документы коллекции, упорядоченные по id
func (s *Store) List(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	query, args, err := psqlbuilder.Select("id", "data").
		From(table).
		Where(squirrel.Eq{"collection": collection}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w: List - build select query: %v", docstore.ErrStore, ErrBuildQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(ErrExecQuery, "List - execute select", err)
	}
	defer rows.Close()

	var snapshots []docstore.Snapshot
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, classify(ErrScanRow, "List - scan document", err)
		}
		doc, err := docstore.DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: List - document %s/%s", err, collection, id)
		}
		snapshots = append(snapshots, docstore.Snapshot{ID: id, Data: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, classify(ErrScanRow, "List - iterate rows", err)
	}

	return snapshots, nil
}

// Set создает или полностью заменяет документ
func (s *Store) Set(ctx context.Context, collection, id string, doc docstore.Document) error {
	data, err := docstore.EncodeJSON(doc)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("collection", "id", "data", "updated_at").
		Values(collection, id, string(data), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w: Set - build insert query: %v", docstore.ErrStore, ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return classify(ErrExecQuery, "Set - execute upsert", err)
	}
	return nil
}

// Delete удаляет документ
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w: Delete - build delete query: %v", docstore.ErrStore, ErrBuildQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(ErrExecQuery, "Delete - execute delete", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return classify(ErrExecQuery, "Delete - rows affected", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
	}
	return nil
}
