package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec

	ExtraServicesSaves        *prometheus.CounterVec
	ExtraServicesInconsistent *prometheus.CounterVec
}

// New регистрирует метрики в глобальном registry (его отдаёт promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation", "result"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		ExtraServicesSaves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "extra_services_saves_total",
			Help: "Extra services save attempts by record kind and result",
		}, []string{"service", "kind", "result"}),

		ExtraServicesInconsistent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "extra_services_inconsistent_total",
			Help: "Saves where the selection was written but the dependent price update failed",
		}, []string{"service", "kind"}),
	}
}

// ServiceName имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// RecordSave учитывает попытку сохранения доп. услуг.
// Безопасен для nil (метрики выключены).
func (m *Metrics) RecordSave(kind, result string) {
	if m == nil {
		return
	}
	m.ExtraServicesSaves.WithLabelValues(m.serviceName, kind, result).Inc()
}

// RecordInconsistency учитывает сохранение, после которого цена месячного клиента не обновилась
func (m *Metrics) RecordInconsistency(kind string) {
	if m == nil {
		return
	}
	m.ExtraServicesInconsistent.WithLabelValues(m.serviceName, kind).Inc()
}
