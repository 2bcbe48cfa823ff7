// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics коллекторы сервиса в собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	poolInFlight     prometheus.Gauge
	poolQueued       prometheus.Gauge
	poolRejected     prometheus.Counter
	poolCallDuration prometheus.Histogram

	mappingEvents *prometheus.CounterVec
	storeOps      *prometheus.CounterVec
	storeRetries  *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec

	overdueContracts prometheus.Gauge

	dbOpenConnections  prometheus.Gauge
	dbInUseConnections prometheus.Gauge
	dbIdleConnections  prometheus.Gauge
	dbWaitCount        prometheus.Gauge
	dbQueryDuration    *prometheus.HistogramVec
}

// New создает и регистрирует все коллекторы
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by method, route and status code.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		poolInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "store_pool_in_flight",
			Help:        "Blocking store calls currently running.",
			ConstLabels: labels,
		}),
		poolQueued: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "store_pool_queued",
			Help:        "Blocking store calls waiting for a worker.",
			ConstLabels: labels,
		}),
		poolRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "store_pool_rejected_total",
			Help:        "Calls rejected because the queue was full.",
			ConstLabels: labels,
		}),
		poolCallDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "store_pool_call_duration_seconds",
			Help:        "Duration of blocking store calls.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),
		mappingEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "mapping_events_total",
			Help:        "Clamp, coercion, default, derived and reconciliation events raised while mapping documents.",
			ConstLabels: labels,
		}, []string{"entity", "kind", "field"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "store_operations_total",
			Help:        "Document store operations by collection, operation and result.",
			ConstLabels: labels,
		}, []string{"collection", "operation", "result"}),
		storeRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "store_read_retries_total",
			Help:        "Read retries after the store was unavailable.",
			ConstLabels: labels,
		}, []string{"collection", "operation"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "store_call_duration_seconds",
			Help:        "Document store call latency including the wait for a worker.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"collection", "operation"}),
		overdueContracts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "contracts_overdue",
			Help:        "Active contracts past their end date at the last sweep.",
			ConstLabels: labels,
		}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections.",
			ConstLabels: labels,
		}),
		dbInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use.",
			ConstLabels: labels,
		}),
		dbIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections.",
			ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total connections waited for.",
			ConstLabels: labels,
		}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency by operation.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.poolInFlight,
		m.poolQueued,
		m.poolRejected,
		m.poolCallDuration,
		m.mappingEvents,
		m.storeOps,
		m.storeRetries,
		m.storeDuration,
		m.overdueContracts,
		m.dbOpenConnections,
		m.dbInUseConnections,
		m.dbIdleConnections,
		m.dbWaitCount,
		m.dbQueryDuration,
	)
	return m
}

// Handler отдаёт метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry нужен тестам для проверки значений
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, d time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) SetPoolInFlight(n int) {
	m.poolInFlight.Set(float64(n))
}

func (m *Metrics) SetPoolQueued(n int) {
	m.poolQueued.Set(float64(n))
}

func (m *Metrics) IncPoolRejected() {
	m.poolRejected.Inc()
}

func (m *Metrics) ObservePoolCall(d time.Duration) {
	m.poolCallDuration.Observe(d.Seconds())
}

func (m *Metrics) IncMappingEvent(entity, kind, field string) {
	m.mappingEvents.WithLabelValues(entity, kind, field).Inc()
}

func (m *Metrics) IncStoreOperation(collection, operation, result string) {
	m.storeOps.WithLabelValues(collection, operation, result).Inc()
}

func (m *Metrics) IncStoreRetry(collection, operation string) {
	m.storeRetries.WithLabelValues(collection, operation).Inc()
}

func (m *Metrics) ObserveStoreCall(collection, operation string, d time.Duration) {
	m.storeDuration.WithLabelValues(collection, operation).Observe(d.Seconds())
}

func (m *Metrics) SetOverdueContracts(n int) {
	m.overdueContracts.Set(float64(n))
}

func (m *Metrics) ObserveDBQuery(operation string, d time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetDBStats переносит статистику пула соединений database/sql
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	m.dbOpenConnections.Set(float64(stats.OpenConnections))
	m.dbInUseConnections.Set(float64(stats.InUse))
	m.dbIdleConnections.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}
