package mapping

// Logger интерфейс для логирования событий маппинга
type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// EventMetrics счётчик событий маппинга, реализуется pkg/metrics
type EventMetrics interface {
	IncMappingEvent(entity, kind, field string)
}
