// Package dbmetrics wraps *sql.DB to time queries and export connection pool stats.
package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// DefaultStatsInterval период сбора статистики пула соединений
const DefaultStatsInterval = 15 * time.Second

// Metrics принимает наблюдения о запросах и пуле соединений
type Metrics interface {
	ObserveDBQuery(operation string, d time.Duration)
	SetDBStats(stats sql.DBStats)
}

// DB обёртка над *sql.DB с замером запросов
type DB struct {
	db      *sql.DB
	metrics Metrics
}

// Wrap оборачивает db и раз в interval переносит db.Stats() в метрики, пока не закрыт stop
func Wrap(db *sql.DB, metrics Metrics, interval time.Duration, stop <-chan struct{}) *DB {
	w := &DB{db: db, metrics: metrics}
	go w.collectStats(interval, stop)
	return w
}

// WrapWithDefault то же, что Wrap, с DefaultStatsInterval
func WrapWithDefault(db *sql.DB, metrics Metrics, stop <-chan struct{}) *DB {
	return Wrap(db, metrics, DefaultStatsInterval, stop)
}

func (w *DB) collectStats(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.metrics.SetDBStats(w.db.Stats())
	for {
		select {
		case <-ticker.C:
			w.metrics.SetDBStats(w.db.Stats())
		case <-stop:
			return
		}
	}
}

func (w *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer w.observe(query, time.Now())
	return w.db.ExecContext(ctx, query, args...)
}

func (w *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer w.observe(query, time.Now())
	return w.db.QueryContext(ctx, query, args...)
}

func (w *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer w.observe(query, time.Now())
	return w.db.QueryRowContext(ctx, query, args...)
}

func (w *DB) PingContext(ctx context.Context) error {
	return w.db.PingContext(ctx)
}

// Unwrap возвращает исходный *sql.DB
func (w *DB) Unwrap() *sql.DB {
	return w.db
}

func (w *DB) observe(query string, started time.Time) {
	w.metrics.ObserveDBQuery(operation(query), time.Since(started))
}

// operation первое слово запроса в нижнем регистре: select, insert, delete...
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
