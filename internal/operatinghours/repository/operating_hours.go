package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	hourserrors "groundbook/internal/operatinghours/errors"
	"groundbook/pkg/config"
	"groundbook/pkg/model"
)

const (
	CollectionName = "ground_operating_hours"
)

type OperatingHoursRepository interface {
	FindByGround(ctx context.Context, groundID string) ([]*model.OperatingHoursRule, error)
	FindRule(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error)
	Upsert(ctx context.Context, rule *model.OperatingHoursRule) error
}

type mongoOperatingHoursRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoOperatingHoursRepository(cfg *config.Config) OperatingHoursRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOperatingHoursRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoOperatingHoursRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoOperatingHoursRepository) FindByGround(ctx context.Context, groundID string) ([]*model.OperatingHoursRule, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "day_of_week", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"ground_id": groundID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find operating hours: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []*model.OperatingHoursRule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode operating hours: %w", err)
	}

	return rules, nil
}

func (r *mongoOperatingHoursRepository) FindRule(ctx context.Context, groundID string, dayOfWeek int) (*model.OperatingHoursRule, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"ground_id": groundID, "day_of_week": dayOfWeek}

	var rule model.OperatingHoursRule
	err := r.collection.FindOne(ctx, filter).Decode(&rule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hourserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find operating hours rule: %w", err)
	}

	return &rule, nil
}

// Upsert replaces the rule for (ground, weekday) wholesale. The unique
// index on the pair makes concurrent upserts converge on a single document.
func (r *mongoOperatingHoursRepository) Upsert(ctx context.Context, rule *model.OperatingHoursRule) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	rule.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	filter := bson.M{"ground_id": rule.GroundID, "day_of_week": rule.DayOfWeek}
	update := bson.M{
		"$set": bson.M{
			"ground_id":             rule.GroundID,
			"day_of_week":           rule.DayOfWeek,
			"is_closed":             rule.IsClosed,
			"start_time":            rule.StartTime,
			"end_time":              rule.EndTime,
			"slot_duration_minutes": rule.SlotDurationMinutes,
			"updated_at":            rule.UpdatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert operating hours rule: %w", err)
	}

	return nil
}
