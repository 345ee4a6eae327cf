package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/savetree-1/maritime-weather-intelligence/internal/logging"
)

// RequestTracker logs every request and records request metrics.
type RequestTracker struct {
	service  string
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRequestTracker creates a request tracker whose metrics are registered on reg.
func NewRequestTracker(service string, reg prometheus.Registerer) *RequestTracker {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "http_requests_total",
		Help:        "HTTP requests by method, route and status code.",
		ConstLabels: prometheus.Labels{"service": service},
	}, []string{"method", "path", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "http_request_duration_seconds",
		Help:        "HTTP request latency by method and route.",
		ConstLabels: prometheus.Labels{"service": service},
		Buckets:     prometheus.DefBuckets,
	}, []string{"method", "path"})
	reg.MustRegister(requests, duration)

	return &RequestTracker{service: service, requests: requests, duration: duration}
}

// Middleware returns an HTTP middleware that tracks request metrics
func (rt *RequestTracker) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			elapsed := time.Since(start)
			path := routePattern(r)

			rt.requests.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
			rt.duration.WithLabelValues(r.Method, path).Observe(elapsed.Seconds())

			logging.WithComponentAndFields("http", log.Fields{
				"service":     rt.service,
				"request_id":  chimiddleware.GetReqID(r.Context()),
				"remote_ip":   r.RemoteAddr,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rw.statusCode,
				"bytes_out":   rw.size,
				"duration_ms": elapsed.Milliseconds(),
			}).Info("request handled")
		})
	}
}

// routePattern returns the matched chi route so that metric labels stay
// bounded; unmatched requests share one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}
