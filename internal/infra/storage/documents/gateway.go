// Package documents is the single place where repository operations reach the
// document store: every call is one worker pool submission, and reads that
// fail with a transport error are retried with exponential backoff.
package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/workerpool"
)

const (
	DefaultMaxAttempts     = 3
	DefaultInitialInterval = 100 * time.Millisecond
	DefaultMaxInterval     = 2 * time.Second
)

// Результаты операций для метрик
const (
	resultOK          = "ok"
	resultNotFound    = "not_found"
	resultUnavailable = "unavailable"
	resultRejected    = "rejected"
	resultError       = "error"
)

// RetryConfig настройки повтора чтений
type RetryConfig struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = DefaultInitialInterval
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = DefaultMaxInterval
	}
	return c
}

// Gateway обёртка над docstore.Store: пул воркеров, повтор чтений, метрики
type Gateway struct {
	store   docstore.Store
	pool    *workerpool.Pool
	retry   RetryConfig
	log     Logger
	metrics Metrics
}

// Option настраивает Gateway
type Option func(*Gateway)

// WithMetrics подключает метрики операций
func WithMetrics(m Metrics) Option {
	return func(g *Gateway) {
		if m != nil {
			g.metrics = m
		}
	}
}

// NewGateway создает шлюз к хранилищу документов
func NewGateway(store docstore.Store, pool *workerpool.Pool, retry RetryConfig, log Logger, opts ...Option) *Gateway {
	g := &Gateway{
		store:   store,
		pool:    pool,
		retry:   retry.withDefaults(),
		log:     log,
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ docstore.Store = (*Gateway)(nil)

// Get читает документ, недоступность хранилища повторяется
func (g *Gateway) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	return read(ctx, g, collection, "get", func(ctx context.Context) (docstore.Document, error) {
		return g.store.Get(ctx, collection, id)
	})
}

// List читает все документы коллекции, недоступность хранилища повторяется
func (g *Gateway) List(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	return read(ctx, g, collection, "list", func(ctx context.Context) ([]docstore.Snapshot, error) {
		return g.store.List(ctx, collection)
	})
}

// Set записывает документ. Запись не повторяется.
func (g *Gateway) Set(ctx context.Context, collection, id string, doc docstore.Document) error {
	return g.write(ctx, collection, "set", func(ctx context.Context) error {
		return g.store.Set(ctx, collection, id, doc)
	})
}

// Delete удаляет документ. Удаление не повторяется.
func (g *Gateway) Delete(ctx context.Context, collection, id string) error {
	return g.write(ctx, collection, "delete", func(ctx context.Context) error {
		return g.store.Delete(ctx, collection, id)
	})
}

func read[T any](ctx context.Context, g *Gateway, collection, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = g.retry.InitialInterval
	b.MaxInterval = g.retry.MaxInterval

	attempt := 0
	value, err := backoff.Retry(ctx, func() (T, error) {
		attempt++
		start := time.Now()
		v, err := workerpool.Do(ctx, g.pool, fn)
		g.metrics.ObserveStoreCall(collection, operation, time.Since(start))
		if err != nil && !errors.Is(err, docstore.ErrUnavailable) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(g.retry.MaxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			g.metrics.IncStoreRetry(collection, operation)
			g.log.Warn("Documents: %s %s attempt %d failed, retrying in %s: %v", operation, collection, attempt, next, err)
		}),
	)
	g.metrics.IncStoreOperation(collection, operation, resultOf(err))

	if err != nil && errors.Is(err, docstore.ErrUnavailable) {
		err = fmt.Errorf("%w: %s %s after %d attempts: %w", ErrRetriesExhausted, operation, collection, attempt, err)
	}
	return value, transient(err)
}

func (g *Gateway) write(ctx context.Context, collection, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()
	err := g.pool.Run(ctx, fn)
	g.metrics.ObserveStoreCall(collection, operation, time.Since(start))
	g.metrics.IncStoreOperation(collection, operation, resultOf(err))
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		g.log.Error("Documents: %s %s failed: %v", operation, collection, err)
	}
	return transient(err)
}

// transient помечает недоступность хранилища и переполнение пула как domain.ErrUnavailable
func transient(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, docstore.ErrUnavailable) || errors.Is(err, workerpool.ErrBackpressure) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return err
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, docstore.ErrNotFound):
		return resultNotFound
	case errors.Is(err, docstore.ErrUnavailable):
		return resultUnavailable
	case errors.Is(err, workerpool.ErrBackpressure):
		return resultRejected
	default:
		return resultError
	}
}
