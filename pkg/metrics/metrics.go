package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scheduling"

// Metrics набор prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках вызовы ничего не делают.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	appointmentsCreated *prometheus.CounterVec
	overlapRejections   *prometheus.CounterVec
	statusTransitions   *prometheus.CounterVec
	financialEntries    prometheus.Counter
	outboxPublished     *prometheus.CounterVec
	rateLimited         prometheus.Counter
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}),
		dbInUseConns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}),
		dbIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		}),
		dbWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		appointmentsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "appointments_created_total",
			Help:        "Appointments created",
			ConstLabels: labels,
		}, []string{"channel"}),
		overlapRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "appointment_overlap_rejections_total",
			Help:        "Appointment writes rejected because the window is taken",
			ConstLabels: labels,
		}, []string{"stage"}),
		statusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "appointment_status_transitions_total",
			Help:        "Appointment status transitions",
			ConstLabels: labels,
		}, []string{"status"}),
		financialEntries: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "financial_entries_total",
			Help:        "Financial entries emitted on completion",
			ConstLabels: labels,
		}),
		outboxPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "outbox_events_published_total",
			Help:        "Outbox events delivered to the broker",
			ConstLabels: labels,
		}, []string{"event_type"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "rate_limited_requests_total",
			Help:        "Public requests rejected by the rate limiter",
			ConstLabels: labels,
		}),
	}
}

// RecordHTTPRequest учитывает один HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDBQuery учитывает один запрос к БД
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики connection pool
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(stats.OpenConnections))
	m.dbInUseConns.Set(float64(stats.InUse))
	m.dbIdleConns.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

// IncAppointmentCreated channel: staff или public
func (m *Metrics) IncAppointmentCreated(channel string) {
	if m == nil {
		return
	}
	m.appointmentsCreated.WithLabelValues(channel).Inc()
}

// IncOverlapRejected stage: precheck (найдено при проверке) или constraint (отклонено БД)
func (m *Metrics) IncOverlapRejected(stage string) {
	if m == nil {
		return
	}
	m.overlapRejections.WithLabelValues(stage).Inc()
}

// IncStatusTransition учитывает переход в статус
func (m *Metrics) IncStatusTransition(status string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(status).Inc()
}

// IncFinancialEntry учитывает созданную финансовую запись
func (m *Metrics) IncFinancialEntry() {
	if m == nil {
		return
	}
	m.financialEntries.Inc()
}

// AddOutboxPublished учитывает отправленные события outbox
func (m *Metrics) AddOutboxPublished(eventType string, n int) {
	if m == nil {
		return
	}
	m.outboxPublished.WithLabelValues(eventType).Add(float64(n))
}

// IncRateLimited учитывает отклонённый лимитером запрос
func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
