package documents

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics метрики операций с хранилищем
type Metrics interface {
	IncStoreOperation(collection, operation, result string)
	IncStoreRetry(collection, operation string)
	ObserveStoreCall(collection, operation string, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) IncStoreOperation(string, string, string)       {}
func (noopMetrics) IncStoreRetry(string, string)                   {}
func (noopMetrics) ObserveStoreCall(string, string, time.Duration) {}
