package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tokoparts/backoffice/kafka"
	"github.com/tokoparts/backoffice/pkg/logger"
)

// stockwatch tails order transition events and flags lines whose remaining
// stock dropped below the reorder threshold.
func main() {
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "stockwatch")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	threshold, err := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "5"))
	if err != nil || threshold < 0 {
		threshold = 5
	}

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "stockwatch")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicOrderTransitioned})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeOrderTransitioned, func(ctx context.Context, event kafka.OrderTransitionedEvent) error {
		for _, line := range event.Lines {
			if line.Remaining >= threshold {
				continue
			}

			logger.Warn(ctx).
				Uint("order_id", event.OrderID).
				Str("part_number", line.PartNumber).
				Int("remaining", line.Remaining).
				Int("threshold", threshold).
				Msg("Stock below reorder threshold")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	logger.Logger.Info().Int("threshold", threshold).Msg("Stock watch started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down stock watch")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
