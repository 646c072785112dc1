package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"groundbook/internal/notifications"
	"groundbook/pkg/config"
	"groundbook/pkg/kafka"
)

const (
	ServiceName     = "notifier"
	consumerGroupID = "groundbook-notifier"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)

	notifier := notifications.NewNotifier(cfg.Log)
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.BookingEventsTopic, consumerGroupID, notifier.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Notifier started",
		"topic", cfg.BookingEventsTopic,
		"group_id", consumerGroupID,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}

	cfg.Log.Info("Notifier stopped")
}
