package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-метрик сервиса.
// Все методы Record*/Observe* безопасны для nil-получателя: если метрики выключены,
// компоненты получают nil и вызовы ничего не делают.
type Metrics struct {
	registry *prometheus.Registry
	service  string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec

	CapacityAPIDuration *prometheus.HistogramVec
	GridAnomaliesTotal  *prometheus.CounterVec
	StaleFetchesTotal   *prometheus.CounterVec
	SubmissionsTotal    *prometheus.CounterVec
	CacheRequestsTotal  *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		service:  serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established database connections",
		}, []string{"service"}),

		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),

		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle database connections",
		}, []string{"service"}),

		CapacityAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "capacity_api_request_duration_seconds",
			Help:    "Duration of requests to the capacity backend",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation", "outcome"}),

		GridAnomaliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "capacity_grid_anomalies_total",
			Help: "Capacity records dropped or overwritten while resolving a week grid",
		}, []string{"service", "kind"}),

		StaleFetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "capacity_grid_stale_fetches_total",
			Help: "Grid fetches discarded because a newer fetch was started",
		}, []string{"service"}),

		SubmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Donation request submissions by outcome",
		}, []string{"service", "outcome"}),

		CacheRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "capacity_cache_requests_total",
			Help: "Capacity cache lookups by result",
		}, []string{"service", "result"}),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.CapacityAPIDuration,
		m.GridAnomaliesTotal,
		m.StaleFetchesTotal,
		m.SubmissionsTotal,
		m.CacheRequestsTotal,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

// Handler возвращает http.Handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.service, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.service, method, path).Observe(d.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.service, operation).Observe(d.Seconds())
}

// ObserveCapacityAPI фиксирует длительность запроса к capacity backend
func (m *Metrics) ObserveCapacityAPI(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.CapacityAPIDuration.WithLabelValues(m.service, operation, outcome).Observe(d.Seconds())
}

// RecordAnomaly увеличивает счетчик аномалий сетки указанного вида
func (m *Metrics) RecordAnomaly(kind string) {
	if m == nil {
		return
	}
	m.GridAnomaliesTotal.WithLabelValues(m.service, kind).Inc()
}

// RecordStaleFetch увеличивает счетчик отброшенных устаревших загрузок
func (m *Metrics) RecordStaleFetch() {
	if m == nil {
		return
	}
	m.StaleFetchesTotal.WithLabelValues(m.service).Inc()
}

// RecordSubmission фиксирует исход отправки заявки
func (m *Metrics) RecordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(m.service, outcome).Inc()
}

// RecordCacheResult фиксирует попадание или промах кэша
func (m *Metrics) RecordCacheResult(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequestsTotal.WithLabelValues(m.service, result).Inc()
}

// SetDBPoolStats обновляет метрики connection pool
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(m.service).Set(float64(stats.OpenConnections))
	m.DBInUse.WithLabelValues(m.service).Set(float64(stats.InUse))
	m.DBIdle.WithLabelValues(m.service).Set(float64(stats.Idle))
}
