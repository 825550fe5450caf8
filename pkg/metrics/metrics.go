package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	AppointmentsCreated *prometheus.CounterVec
	Conflicts           *prometheus.CounterVec
	EligibilityDenied   *prometheus.CounterVec

	serviceName string
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		AppointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_created_total",
			Help: "Number of appointments created",
		}, []string{"service"}),
		Conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_conflicts_total",
			Help: "Number of rejected writes because a slot or a van was taken",
		}, []string{"service", "kind"}),
		EligibilityDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eligibility_denied_total",
			Help: "Number of edit or cancel attempts rejected by the 48h rule",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.AppointmentsCreated,
		m.Conflicts,
		m.EligibilityDenied,
	)

	return m
}

// ServiceName возвращает имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// RecordAppointmentCreated увеличивает счетчик созданных заявок.
// Безопасен для вызова на nil (метрики выключены).
func (m *Metrics) RecordAppointmentCreated() {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(m.serviceName).Inc()
}

// RecordConflict увеличивает счетчик конфликтов (kind: slot, van)
func (m *Metrics) RecordConflict(kind string) {
	if m == nil {
		return
	}
	m.Conflicts.WithLabelValues(m.serviceName, kind).Inc()
}

// RecordEligibilityDenied увеличивает счетчик отказов по правилу 48 часов
func (m *Metrics) RecordEligibilityDenied() {
	if m == nil {
		return
	}
	m.EligibilityDenied.WithLabelValues(m.serviceName).Inc()
}
