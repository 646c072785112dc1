package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"groundbook/pkg/auth"
	"groundbook/pkg/config"
)

const (
	CollectionName = "admin_users"
)

// mongoAdminRoster backs the authorization policy with a dynamic roster of
// admin emails, editable without a redeploy. Implements auth.AdminRoster.
type mongoAdminRoster struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAdminRoster(cfg *config.Config) auth.AdminRoster {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAdminRoster{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAdminRoster) IsAdminEmail(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("failed to check admin roster: %w", err)
	}

	return count > 0, nil
}
