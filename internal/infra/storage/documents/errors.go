package documents

import "errors"

var (
	// ErrRetriesExhausted возвращается, когда все попытки чтения закончились ошибкой недоступности
	ErrRetriesExhausted = errors.New("documents.gateway: retries exhausted")
)
