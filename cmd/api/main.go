// Package main is the entrypoint for the PawsitiveWalks API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/pawsitivewalks/pawsitivewalks/internal/cache"
	"github.com/pawsitivewalks/pawsitivewalks/internal/config"
	"github.com/pawsitivewalks/pawsitivewalks/internal/handler"
	"github.com/pawsitivewalks/pawsitivewalks/internal/metrics"
	"github.com/pawsitivewalks/pawsitivewalks/internal/middleware"
	"github.com/pawsitivewalks/pawsitivewalks/internal/repository"
	"github.com/pawsitivewalks/pawsitivewalks/internal/server"
	"github.com/pawsitivewalks/pawsitivewalks/internal/service"
	"github.com/pawsitivewalks/pawsitivewalks/internal/session"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	if cfg.SessionSecretGenerated {
		logger.Warn("SESSION_SECRET not set; using a generated secret, sessions will not survive restarts")
	}

	// Schema
	if cfg.RunMigrations {
		if err := repository.Migrate(cfg.DatabaseURL); err != nil {
			logger.Error("failed to run migrations",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		logger.Info("database migrations applied")
	}

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize session backend
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		repo.Close()
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	sessionStore := session.NewRedisStore(
		cacheClient.Client(),
		session.CookieOptions(session.Options{TTL: cfg.SessionTTL, Secure: cfg.IsProduction()}),
		[]byte(cfg.SessionSecret),
	)
	sessionManager := session.NewManager(sessionStore)

	// Initialize services
	recorder := metrics.NewPrometheus()
	authService := service.NewAuthService(repo, recorder)
	requestService := service.NewRequestService(repo, recorder)
	walkerService := service.NewWalkerService(repo, recorder)

	securityCfg := middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}
	if cfg.StaticDir != "" {
		securityCfg.ContentSecurityPolicy = middleware.FrontendContentSecurityPolicy
	}

	// Setup router
	r, err := handler.NewRouter(handler.RouterConfig{
		Logger:   logger,
		Recorder: recorder,
		Auth:     handler.NewAuthHandler(authService, sessionManager, logger),
		Requests: handler.NewRequestHandler(requestService, logger),
		Walkers:  handler.NewWalkerHandler(walkerService, logger),
		Health:   handler.NewHealthHandler(repo, cacheClient),
		Sessions: sessionManager,
		AuthRateLimit: middleware.RateLimitConfig{
			Logger:  logger,
			Limiter: cacheClient,
			Enabled: cfg.AuthRateLimitEnabled,
			Scope:   "auth",
			RPS:     cfg.AuthRateLimitRPS,
			Burst:   cfg.AuthRateLimitBurst,
		},
		Security:           securityCfg,
		TrustProxy:         cfg.TrustsProxy(),
		CORSAllowedOrigins: cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		MetricsHandler:     recorder.Handler(),
		StaticDir:          cfg.StaticDir,
	})
	if err != nil {
		logger.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	// Create and run server
	srv := server.New(r, server.Config{
		Port:            cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// Registered first so they close last.
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"static_dir", cfg.StaticDir,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "pawsitivewalks-api")
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
