// Package main is the entrypoint for the setup-wizard submission relay.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/setuprelay/setuprelay/internal/cache"
	"github.com/setuprelay/setuprelay/internal/config"
	"github.com/setuprelay/setuprelay/internal/handler"
	"github.com/setuprelay/setuprelay/internal/mailer"
	"github.com/setuprelay/setuprelay/internal/middleware"
	"github.com/setuprelay/setuprelay/internal/server"
	"github.com/setuprelay/setuprelay/internal/wizard"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize cache (optional; only used for rate limiting)
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("connected to Redis")
	} else if cfg.RateLimitEnabled {
		logger.Warn("REDIS_URL not configured; submission rate limiting is disabled")
	}

	// Initialize mail transport
	sender := mailer.New(mailer.Config{
		Service:     cfg.EmailService,
		User:        cfg.EmailUser,
		AppPassword: cfg.EmailAppPassword,
		SMTPHost:    cfg.SMTPHost,
		SMTPPort:    cfg.SMTPPort,
		SMTPSecure:  cfg.SMTPSecure,
		SMTPUser:    cfg.SMTPUser,
		SMTPPass:    cfg.SMTPPass,
		From:        cfg.EmailFrom,
	})
	if !cfg.TransportConfigured() {
		logger.Warn("mail transport not configured; submissions will fail until EMAIL_SERVICE or SMTP_HOST is set")
	}

	// Initialize submission service
	wizardService := wizard.NewService(sender, wizard.ServiceConfig{
		From:             cfg.EmailFrom,
		To:               cfg.EmailTo,
		SalesEmail:       cfg.SalesEmail,
		SendConfirmation: cfg.SendConfirmation,
	}, logger)

	// Initialize handlers
	h := handler.New()
	var healthChecker handler.HealthChecker
	if cacheClient != nil {
		healthChecker = cacheClient
	}
	healthHandler := handler.NewHealthHandler(healthChecker)
	wizardHandler := handler.NewWizardHandler(wizardService, logger)

	// Setup router
	r := setupRouter(h, healthHandler, wizardHandler, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.Port,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"send_confirmation", cfg.SendConfirmation,
	)

	if err := srv.Run(); err != nil {
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

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	wizardHandler *handler.WizardHandler,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment(),
	}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/readyz", healthHandler.Readyz)

	// Wizard front-end page
	r.Get("/", h.Index)

	// Submission endpoint, rate limited per client IP
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Enabled: cfg.RateLimitEnabled && cacheClient != nil,
		Max:     cfg.RateLimitMax,
		Window:  cfg.RateLimitWindow,
	}
	if cacheClient != nil {
		rateLimitCfg.Limiter = cacheClient
	}

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.RateLimitSubmit(rateLimitCfg)).Post("/submit-wizard", wizardHandler.Submit)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
