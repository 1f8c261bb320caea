package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tokoparts/backoffice/internal/inventory"
	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/order"
	orderdomain "github.com/tokoparts/backoffice/internal/order/domain"
	"github.com/tokoparts/backoffice/internal/replenishment"
	repldomain "github.com/tokoparts/backoffice/internal/replenishment/domain"
	"github.com/tokoparts/backoffice/internal/returns"
	returnsdomain "github.com/tokoparts/backoffice/internal/returns/domain"
	"github.com/tokoparts/backoffice/internal/returns/guard"
	"github.com/tokoparts/backoffice/kafka"
	"github.com/tokoparts/backoffice/pkg/database"
	"github.com/tokoparts/backoffice/pkg/httpmw"
	"github.com/tokoparts/backoffice/pkg/logger"
	"github.com/tokoparts/backoffice/pkg/tracing"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "backoffice-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting back office service")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracing, continuing without it")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Warn().Err(err).Msg("Failed to shut down tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "backofficedb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&invdomain.Item{},
		&invdomain.StockMovement{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&returnsdomain.ReturnRecord{},
		&repldomain.SupplierOrder{},
		&repldomain.SupplierOrderLine{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Redis-backed replay guard for returns. Optional: without Redis the
	// guard lets everything through.
	var redisClient *redis.Client
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Warn().Err(err).Str("addr", addr).Msg("Redis unreachable, replay guard disabled")
			redisClient = nil
		} else {
			logger.Logger.Info().Str("addr", addr).Msg("Redis connected")
		}
	}
	replayGuard := guard.New(redisClient, 10*time.Minute)

	// Kafka event publisher. Optional: without brokers events are skipped.
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unreachable, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
			logger.Logger.Info().Str("brokers", brokers).Msg("Kafka publisher initialized")
		}
	}

	// Initialize handlers with Wire DI
	inventoryHandler, err := inventory.InitializeHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory handler")
	}
	orderHandler, err := order.InitializeHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize order handler")
	}
	returnHandler, err := returns.InitializeHandler(db, replayGuard, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize return handler")
	}
	replenishmentHandler, err := replenishment.InitializeHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize replenishment handler")
	}

	// Setup router
	router := mux.NewRouter()
	httpmw.RegisterMiddlewares(router, 30*time.Second)

	admin := router.NewRoute().Subrouter()
	admin.Use(httpmw.AdminOnly)

	inventoryHandler.RegisterRoutes(router, admin)
	orderHandler.RegisterRoutes(router, admin)
	returnHandler.RegisterRoutes(admin)
	replenishmentHandler.RegisterRoutes(router, admin)

	// Health check endpoint
	inventoryHandler.RegisterHealthCheck(router, sqlDB)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: otelhttp.NewHandler(c.Handler(router), "backoffice-http"),
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shut down")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
