package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BackendRequestDuration *prometheus.HistogramVec
	BookingSubmissions     *prometheus.CounterVec
	OpenFlows              prometheus.Gauge

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
}

// New создает метрики и регистрирует их в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BackendRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "backend_request_duration_seconds",
			Help:        "Duration of calls to the Kelale backend API",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"endpoint", "status"}),

		BookingSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_submissions_total",
			Help:        "Booking submissions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		OpenFlows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "booking_flows_open",
			Help:        "Number of open booking flows",
			ConstLabels: constLabels,
		}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections:  newPoolGauge("db_open_connections", "Open connections", constLabels),
		DBInUseConnections: newPoolGauge("db_in_use_connections", "Connections in use", constLabels),
		DBIdleConnections:  newPoolGauge("db_idle_connections", "Idle connections", constLabels),
		DBWaitCount:        newPoolGauge("db_wait_count", "Total number of connections waited for", constLabels),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BackendRequestDuration,
		m.BookingSubmissions,
		m.OpenFlows,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
	)

	return m
}

func newPoolGauge(name, help string, constLabels prometheus.Labels) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:        name,
		Help:        help,
		ConstLabels: constLabels,
	}, []string{"db"})
}

// ObserveBackendRequest фиксирует длительность вызова backend API
func (m *Metrics) ObserveBackendRequest(endpoint string, statusCode int, d time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode/100) + "xx"
	}
	m.BackendRequestDuration.WithLabelValues(endpoint, status).Observe(d.Seconds())
}

// IncBookingSubmission увеличивает счетчик отправок бронирования
func (m *Metrics) IncBookingSubmission(outcome string) {
	m.BookingSubmissions.WithLabelValues(outcome).Inc()
}

// SetOpenFlows выставляет количество открытых flow
func (m *Metrics) SetOpenFlows(n int) {
	m.OpenFlows.Set(float64(n))
}
