package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/services"
	"github.com/SscSPs/backoffice_ledger/internal/handlers"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
	"github.com/SscSPs/backoffice_ledger/internal/platform/lock"
	"github.com/SscSPs/backoffice_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/backoffice_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Backoffice Ledger API
// @version 1.0
// @description Double-entry ledger core: chart of accounts, journal engine, prepayments, credit checks and fiscal years.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	locker, closeLocker, err := newLocker(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize locker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeLocker()

	repos := pgsql.NewRepositoryProvider(dbPool)
	svc := services.NewServiceContainer(cfg, repos, locker)

	// System accounts are configuration; the service refuses to start without them.
	if cfg.SeedSystemAccounts {
		created, err := svc.Account.SeedSystemAccounts(ctx)
		if err != nil {
			logger.Error("Failed to seed system accounts", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("System accounts seeded", slog.Int("created", created))
	}
	if err := svc.Account.ValidateSystemAccounts(ctx); err != nil {
		logger.Error("System accounts are not usable", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(rateLimiter, "/health"))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, svc); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("posting_policy", string(cfg.PostingPolicy)))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLocker picks the Redis locker when REDIS_ADDR is set and the in-process one otherwise.
func newLocker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (lock.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, maintenance locks are process-local")
		return lock.NewLocalLocker(5*time.Second), func() {}, nil
	}

	client, err := lock.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Redis locker ready", slog.String("addr", cfg.RedisAddr))
	return lock.NewRedisLocker(client, cfg.LockTTL, 5*time.Second), func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing Redis client", slog.String("error", err.Error()))
		}
	}, nil
}
