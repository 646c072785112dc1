package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	groundserrors "groundbook/internal/grounds/errors"
	"groundbook/pkg/config"
	mongotx "groundbook/pkg/db/mongo"
	"groundbook/pkg/model"
)

const (
	CollectionName = "grounds"
)

type GroundRepository interface {
	Create(ctx context.Context, ground *model.Ground) error
	FindByID(ctx context.Context, id string) (*model.Ground, error)
	FindAll(ctx context.Context, city string, limit int, offset int64) ([]*model.Ground, error)
	Count(ctx context.Context, city string) (int64, error)
	Update(ctx context.Context, id string, ground *model.Ground) (*mongo.UpdateResult, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoGroundRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoGroundRepository(cfg *config.Config) GroundRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoGroundRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout caps the operation deadline unless the call is already inside
// a transaction, where wrapping the SessionContext would break session
// semantics.
func (r *mongoGroundRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoGroundRepository) Create(ctx context.Context, ground *model.Ground) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	ground.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, ground)
	if err != nil {
		return fmt.Errorf("failed to create ground: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		ground.ID = oid.Hex()
	}
	return nil
}

func (r *mongoGroundRepository) FindByID(ctx context.Context, id string) (*model.Ground, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", groundserrors.ErrInvalidID, id)
	}

	var ground model.Ground
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&ground)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, groundserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ground: %w", err)
	}

	return &ground, nil
}

func (r *mongoGroundRepository) FindAll(ctx context.Context, city string, limit int, offset int64) ([]*model.Ground, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, r.buildListFilter(city), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find grounds: %w", err)
	}
	defer cursor.Close(ctx)

	var grounds []*model.Ground
	if err = cursor.All(ctx, &grounds); err != nil {
		return nil, fmt.Errorf("failed to decode grounds: %w", err)
	}

	return grounds, nil
}

func (r *mongoGroundRepository) Count(ctx context.Context, city string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, r.buildListFilter(city))
	if err != nil {
		return 0, fmt.Errorf("failed to count grounds: %w", err)
	}

	return count, nil
}

func (r *mongoGroundRepository) buildListFilter(city string) bson.M {
	filter := bson.M{}
	if city != "" {
		filter["city"] = city
	}
	return filter
}

func (r *mongoGroundRepository) Update(ctx context.Context, id string, ground *model.Ground) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", groundserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":           ground.Name,
			"city":           ground.City,
			"location":       ground.Location,
			"price_per_hour": ground.PricePerHour,
			"description":    ground.Description,
			"image_url":      ground.ImageURL,
			"surface_type":   ground.SurfaceType,
			"capacity":       ground.Capacity,
			"dimensions":     ground.Dimensions,
			"category":       ground.Category,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update ground: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, groundserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoGroundRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
