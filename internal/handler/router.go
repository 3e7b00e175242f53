package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pawsitivewalks/pawsitivewalks/internal/metrics"
	"github.com/pawsitivewalks/pawsitivewalks/internal/middleware"
)

// RouterConfig wires handlers and middleware dependencies into the router.
type RouterConfig struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder

	Auth     *AuthHandler
	Requests *RequestHandler
	Walkers  *WalkerHandler
	Health   *HealthHandler

	Sessions      middleware.SessionReader
	AuthRateLimit middleware.RateLimitConfig
	Security      middleware.SecurityConfig

	// TrustProxy resolves the client address from proxy headers.
	TrustProxy bool

	CORSAllowedOrigins []string
	MaxRequestBodySize int64

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	// StaticDir serves the frontend from disk when set.
	StaticDir string
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) (*chi.Mux, error) {
	compress, err := middleware.Compress()
	if err != nil {
		return nil, err
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	r := chi.NewRouter()

	// Global middleware
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.Security(cfg.Security))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(compress)
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	}
	r.Use(middleware.LoadSession(cfg.Sessions, cfg.Logger))

	// Probes
	r.Get("/readyz", cfg.Health.Readyz)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", cfg.Health.Health)

		r.Route("/auth", func(r chi.Router) {
			limited := r.With(middleware.RateLimitIP(cfg.AuthRateLimit))
			limited.Post("/register", cfg.Auth.Register)
			limited.Post("/login", cfg.Auth.Login)
			r.Get("/logout", cfg.Auth.Logout)
			r.Get("/me", cfg.Auth.Me)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Get("/", cfg.Requests.List)
			r.Get("/{id}", cfg.Requests.Get)
			r.With(middleware.RequireAuth).Post("/", cfg.Requests.Create)
			r.With(middleware.RequireAuth).Put("/{id}", cfg.Requests.Update)
			r.With(middleware.RequireAuth).Delete("/{id}", cfg.Requests.Delete)
		})

		r.Route("/walkers", func(r chi.Router) {
			r.Get("/", cfg.Walkers.List)
			r.Get("/{id}", cfg.Walkers.Get)
			r.With(middleware.RequireAuth).Post("/", cfg.Walkers.Create)
			r.With(middleware.RequireAuth).Put("/{id}", cfg.Walkers.Update)
			r.With(middleware.RequireAuth).Delete("/{id}", cfg.Walkers.Delete)
		})

		r.NotFound(NotFound)
		r.MethodNotAllowed(MethodNotAllowed)
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		r.NotFound(NotFound)
	}
	r.MethodNotAllowed(MethodNotAllowed)

	return r, nil
}
