package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("docstore.postgres: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("docstore.postgres: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("docstore.postgres: failed to scan row")
)

// classify оборачивает ошибку драйвера: сетевые ошибки и ошибки класса 08 (connection exception)
// становятся docstore.ErrUnavailable, остальные docstore.ErrStore
func classify(sentinel error, step string, err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%w: %w: %s: %v", docstore.ErrUnavailable, sentinel, step, err)
	}
	return fmt.Errorf("%w: %w: %s: %v", docstore.ErrStore, sentinel, step, err)
}

func isConnectionError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08" || pqErr.Code.Class() == "57"
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
