package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	migrations "groundbook/internal/migrations/mongo"
	"groundbook/pkg/client"
	"groundbook/pkg/config"
	"groundbook/pkg/logger"
)

const (
	DefaultDatabaseName = "groundbook_test"
	ConnectionTimeout   = 10 * time.Second
	MigrationTimeout    = 60 * time.Second
)

// MongoHelper provides MongoDB test utilities for integration tests that
// need a real store. Tests using it are skipped unless TEST_MONGO_URI is
// set, so the unit suite stays runnable without infrastructure.
type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	DBName   string
}

func NewMongoHelper(t *testing.T) *MongoHelper {
	t.Helper()

	mongoURI := os.Getenv("TEST_MONGO_URI")
	if mongoURI == "" {
		t.Skip("TEST_MONGO_URI not set; skipping MongoDB integration test")
	}
	dbName := os.Getenv("TEST_DB_NAME")
	if dbName == "" {
		dbName = DefaultDatabaseName
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := mc.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   mc,
		Database: mc.Database(dbName),
		DBName:   dbName,
	}
}

// Migrate applies the collection validators and indexes, including the
// partial unique booking index that enforces one CONFIRMED row per
// (ground, date, slot).
func (m *MongoHelper) Migrate(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), MigrationTimeout)
	defer cancel()

	if err := migrations.RunMigration(ctx, m.Client, m.DBName); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
}

// TestConfig builds a config wired to the test database, suitable for
// constructing repositories directly.
func (m *MongoHelper) TestConfig() *config.Config {
	return &config.Config{
		MongoDatabaseName: m.DBName,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "integration-tests",
		}),
		Client: &client.Client{Mongo: m.Client},
	}
}

// CleanCollection removes all documents from a specific collection.
func (m *MongoHelper) CleanCollection(t *testing.T, collectionName string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := m.Database.Collection(collectionName).DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatalf("failed to clean collection %s: %v", collectionName, err)
	}
}

// CountDocuments returns the number of documents matching the filter.
func (m *MongoHelper) CountDocuments(t *testing.T, collectionName string, filter bson.M) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := m.Database.Collection(collectionName).CountDocuments(ctx, filter)
	if err != nil {
		t.Fatalf("failed to count documents in %s: %v", collectionName, err)
	}
	return count
}

// Close closes the MongoDB connection.
func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}
