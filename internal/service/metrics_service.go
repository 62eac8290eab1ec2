package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JayR61/congregation-connect/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry           *prometheus.Registry
	handler            http.Handler
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	storeDuration      *prometheus.HistogramVec
	storeErrors        *prometheus.CounterVec
	reminderTransition *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of key-value store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "key"})

	storeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operation_errors_total",
		Help: "Key-value store operations that failed and were absorbed",
	}, []string{"op", "key"})

	reminderTransition := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reminders_transitions_total",
		Help: "Reminders moved out of the scheduled state, by resulting status",
	}, []string{"status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeDuration, storeErrors, reminderTransition, goroutines)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		storeDuration:      storeDuration,
		storeErrors:        storeErrors,
		reminderTransition: reminderTransition,
	}
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveStoreOperation records backend timings for the JSON store adapter.
func (m *MetricsService) ObserveStoreOperation(op, key string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(op, key).Observe(duration.Seconds())
	if err != nil {
		m.storeErrors.WithLabelValues(op, key).Inc()
	}
}

// RecordReminderTransition counts reminders that reached status.
func (m *MetricsService) RecordReminderTransition(status models.ReminderStatus, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.reminderTransition.WithLabelValues(string(status)).Add(float64(count))
}
