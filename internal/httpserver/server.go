package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/savetree-1/maritime-weather-intelligence/internal/config"
	"github.com/savetree-1/maritime-weather-intelligence/internal/handlers"
	"github.com/savetree-1/maritime-weather-intelligence/internal/logging"
	requesttracking "github.com/savetree-1/maritime-weather-intelligence/internal/middleware"
	"github.com/savetree-1/maritime-weather-intelligence/internal/store"
)

// Server wraps an http.Server with convenience helpers for startup/shutdown.
type Server struct {
	name       string
	httpServer *http.Server
}

// New constructs the backend server. pool is resolved before New is called
// and is shared by every request.
func New(cfg config.Config, pool *store.Pool) *Server {
	reg := newRegistry()
	if collector := pool.Collector(); collector != nil {
		reg.MustRegister(collector)
	}

	router := newRouter("backend", reg)
	router.Get("/api/status", handlers.Status(pool, handlers.NewStatusMetrics(reg)))
	router.Get("/api/test-db", handlers.DBProbe(pool))

	return newServer("backend", cfg.ServerAddress, router)
}

// NewML constructs the ML stub server.
func NewML(cfg config.Config) *Server {
	router := newRouter("mlservice", newRegistry())
	router.Get("/api/ml-status", handlers.MLStatus)

	return newServer("mlservice", cfg.MLServerAddress, router)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newRouter(service string, reg *prometheus.Registry) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requesttracking.NewRequestTracker(service, reg).Middleware())
	router.Use(middleware.Recoverer)
	router.Use(openCORS())

	router.NotFound(handlers.NotFound)
	router.Get("/healthz", handlers.Health(service))
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}))
	return router
}

// openCORS allows every origin, method and header, with credentials. The
// request origin is echoed back because browsers reject "*" on credentialed
// requests.
func openCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}

func newServer(name, addr string, handler http.Handler) *Server {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return &Server{name: name, httpServer: srv}
}

// Start begins serving HTTP traffic. It blocks until the server stops.
func (s *Server) Start() error {
	logging.WithComponent("httpserver").WithField("service", s.name).
		Infof("listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.WithComponent("httpserver").WithField("service", s.name).Info("shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the underlying http.Handler for testing.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
