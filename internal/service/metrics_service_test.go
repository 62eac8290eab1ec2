package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayR61/congregation-connect/internal/models"
)

func TestMetricsServiceCounters(t *testing.T) {
	metrics := NewMetricsService()

	metrics.RecordReminderTransition(models.ReminderSent, 2)
	metrics.RecordReminderTransition(models.ReminderFailed, 0)
	metrics.ObserveStoreOperation("write", "programme_reminders", time.Millisecond, errors.New("disk full"))
	metrics.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.reminderTransition.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.storeErrors.WithLabelValues("write", "programme_reminders")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requestTotal.WithLabelValues("GET", "/health", "200")))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reminders_transitions_total")
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var metrics *MetricsService
	metrics.RecordReminderTransition(models.ReminderSent, 1)
	metrics.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	metrics.ObserveStoreOperation("read", "k", time.Millisecond, nil)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
