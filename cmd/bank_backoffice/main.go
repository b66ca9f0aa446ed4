package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/bank_backoffice_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice_app/internal/core/services"
	"github.com/SscSPs/bank_backoffice_app/internal/handlers"
	"github.com/SscSPs/bank_backoffice_app/internal/middleware"
	"github.com/SscSPs/bank_backoffice_app/internal/platform/config"
	"github.com/SscSPs/bank_backoffice_app/internal/repositories/database/memory"
	"github.com/SscSPs/bank_backoffice_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bank_backoffice_app/pkg/database"
	"github.com/SscSPs/bank_backoffice_app/pkg/rabbitmq"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// @title Bank Back-office API
// @version 1.0
// @description Customers, bank accounts and an atomic deposit/withdraw/transfer ledger.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	level.Set(parseLogLevel(cfg.LogLevel))

	repos, closeStore := setupRepositories(cfg, logger)
	defer closeStore()

	publisher := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.LedgerEventsExchange, logger)
	defer publisher.Close()

	var lim *limiter.Limiter
	if cfg.RateLimit != "" {
		lim, err = middleware.NewLimiter(cfg.RateLimit, cfg.RedisURL, cfg.RedisRateLimitPrefix)
		if err != nil {
			logger.Error("Failed to set up rate limiter", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	serviceContainer := services.NewServiceContainer(repos, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, lim)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupRepositories builds the repository provider for the configured storage driver.
// The returned func releases the backing store.
func setupRepositories(cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func()) {
	if cfg.StorageDriver == config.DriverMemory {
		logger.Warn("Using in-memory storage")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
	if err != nil {
		database.ClosePgxPool(dbPool)
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
