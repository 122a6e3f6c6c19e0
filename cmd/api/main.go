// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carterperez-dev/templates/lessons-backend/internal/admin"
	"github.com/carterperez-dev/templates/lessons-backend/internal/comment"
	"github.com/carterperez-dev/templates/lessons-backend/internal/config"
	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/favorite"
	"github.com/carterperez-dev/templates/lessons-backend/internal/health"
	"github.com/carterperez-dev/templates/lessons-backend/internal/identity"
	"github.com/carterperez-dev/templates/lessons-backend/internal/lesson"
	"github.com/carterperez-dev/templates/lessons-backend/internal/middleware"
	"github.com/carterperez-dev/templates/lessons-backend/internal/payment"
	"github.com/carterperez-dev/templates/lessons-backend/internal/report"
	"github.com/carterperez-dev/templates/lessons-backend/internal/server"
	"github.com/carterperez-dev/templates/lessons-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("schema applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis configured",
		"pool_size", cfg.Redis.PoolSize,
		"required", cfg.Redis.Required,
	)

	verifier, err := identity.New(ctx, cfg.Identity)
	if err != nil {
		return err
	}
	logger.Info("identity verifier initialized",
		"provider", cfg.Identity.Provider,
		"project_id", cfg.Identity.ProjectID,
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	paymentRepo := payment.NewRepository(db.DB)

	lessonSvc := lesson.NewService(
		lesson.NewRepository(db.DB),
		userSvc,
		paymentRepo,
	)
	lessonHandler := lesson.NewHandler(lessonSvc)

	paymentSvc := payment.NewService(payment.Deps{
		Provider:      payment.NewStripeProvider(cfg.Payment.StripeSecretKey),
		Repository:    paymentRepo,
		Lessons:       lessonSvc,
		Tx:            db,
		NewRepository: payment.NewRepository,
		NewEntitlements: func(tx core.DBTX) payment.EntitlementStore {
			return user.NewRepository(tx)
		},
		Settings: payment.SettingsFromConfig(cfg),
	})
	paymentHandler := payment.NewHandler(paymentSvc)

	commentHandler := comment.NewHandler(
		comment.NewService(comment.NewRepository(db.DB), lessonSvc),
	)
	favoriteHandler := favorite.NewHandler(
		favorite.NewService(favorite.NewRepository(db.DB), lessonSvc),
	)
	reportHandler := report.NewHandler(
		report.NewService(report.NewRepository(db.DB), lessonSvc),
	)

	healthHandler := health.NewHandler(db, redis, cfg.Redis.Required)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Repository: admin.NewRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	roleLimiter := middleware.RoleRateLimiter(
		redis.Client,
		middleware.DefaultRoleLimits,
	)
	verify := middleware.Authenticator(verifier, userSvc)
	authenticator := func(next http.Handler) http.Handler {
		return verify(roleLimiter(next))
	}
	optionalAuth := middleware.OptionalAuth(verifier, userSvc)

	paymentLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit:    middleware.PerMinute(10, 5),
			KeyFunc:  middleware.KeyByUserAndEndpoint,
			FailOpen: true,
		},
	).Handler

	userHandler.RegisterRoutes(router, authenticator)
	lessonHandler.RegisterRoutes(router, authenticator, optionalAuth)
	paymentHandler.RegisterRoutes(router, optionalAuth, paymentLimiter)
	commentHandler.RegisterRoutes(router, optionalAuth)
	favoriteHandler.RegisterRoutes(router, authenticator, optionalAuth)
	reportHandler.RegisterRoutes(router, authenticator, optionalAuth)
	adminHandler.RegisterRoutes(router, authenticator)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
