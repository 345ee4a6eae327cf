package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestTrackerRecordsRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	tracker := NewRequestTracker("backend", reg)

	router := chi.NewRouter()
	router.Use(tracker.Middleware())
	router.Get("/api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	for _, path := range []string{"/api/items/1", "/api/items/2"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(tracker.requests.WithLabelValues(http.MethodGet, "/api/items/{id}", "418")))
	assert.Equal(t, 1.0, testutil.ToFloat64(tracker.requests.WithLabelValues(http.MethodGet, "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(tracker.duration))
}

func TestResponseWriterCapturesSize(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

	_, _ = rw.Write([]byte("hello"))
	_, _ = rw.Write([]byte(" world"))

	assert.Equal(t, 11, rw.size)
	assert.Equal(t, http.StatusOK, rw.statusCode)
}
