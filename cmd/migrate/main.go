package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	migrations "groundbook/internal/migrations/mongo"
	"groundbook/pkg/config"
)

const ServiceName = "migrate"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := migrations.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	cfg.Log.Info("Migration completed", "database", cfg.MongoDatabaseName)
}
