package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration    *prometheus.HistogramVec
	dbOpenConnections  prometheus.Gauge
	dbInUseConnections prometheus.Gauge
	dbIdleConnections  prometheus.Gauge

	bookingsCreated    *prometheus.CounterVec
	bookingTransitions *prometheus.CounterVec
	scannerRuns        *prometheus.CounterVec
	notifications      *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в переданном registry
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}),
		dbInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}),
		dbIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "bookings",
			Name:        "created_total",
			Help:        "Booking creation attempts by result",
			ConstLabels: labels,
		}, []string{"result"}),
		bookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "bookings",
			Name:        "transitions_total",
			Help:        "Booking status transitions by action and result",
			ConstLabels: labels,
		}, []string{"action", "result"}),
		scannerRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "scanner",
			Name:        "runs_total",
			Help:        "Periodic scanner passes by task and result",
			ConstLabels: labels,
		}, []string{"task", "result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "notifications",
			Name:        "sent_total",
			Help:        "Notification deliveries by channel and result",
			ConstLabels: labels,
		}, []string{"channel", "result"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUseConnections,
		m.dbIdleConnections,
		m.bookingsCreated,
		m.bookingTransitions,
		m.scannerRuns,
		m.notifications,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(open))
	m.dbInUseConnections.Set(float64(inUse))
	m.dbIdleConnections.Set(float64(idle))
}

func (m *Metrics) ObserveBookingCreated(result string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveTransition(action, result string) {
	if m == nil {
		return
	}
	m.bookingTransitions.WithLabelValues(action, result).Inc()
}

func (m *Metrics) ObserveScannerRun(task, result string) {
	if m == nil {
		return
	}
	m.scannerRuns.WithLabelValues(task, result).Inc()
}

func (m *Metrics) ObserveNotification(channel, result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(channel, result).Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
