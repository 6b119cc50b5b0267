package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/fxrates_backend/internal/adapters/alphavantage"
	fxkafka "github.com/SscSPs/fxrates_backend/internal/adapters/messaging/kafka"
	portssvc "github.com/SscSPs/fxrates_backend/internal/core/ports/services"
	"github.com/SscSPs/fxrates_backend/internal/core/services"
	"github.com/SscSPs/fxrates_backend/internal/handlers"
	"github.com/SscSPs/fxrates_backend/internal/middleware"
	"github.com/SscSPs/fxrates_backend/internal/platform/config"
	"github.com/SscSPs/fxrates_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/fxrates_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title FX Rates Backend API
// @version 1.0
// @description Resolves, stores and serves foreign exchange rates.

// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Database migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	provider := alphavantage.NewClient(cfg.AlphaVantageAPIURL, cfg.AlphaVantageAPIKey, cfg.ProviderTimeout, nil)

	var publisher portssvc.EventPublisher
	if cfg.KafkaEnabled {
		kafkaPublisher := fxkafka.NewPublisher(fxkafka.NewWriter(cfg.KafkaBrokers, logger), logger)
		defer func() {
			if cerr := kafkaPublisher.Close(); cerr != nil {
				logger.Error("Error closing Kafka publisher", slog.String("error", cerr.Error()))
			}
		}()
		publisher = kafkaPublisher
		logger.Info("Kafka publishing enabled", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaAddNewRateTopic))
	}

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewUnitOfWorkFactory(dbPool), provider, publisher)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors, rate limiting)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RateLimit(rateLimiter),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
