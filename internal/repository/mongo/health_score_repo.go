package mongo

import (
	"context"
	"errors"
	"time"

	"vitacare/health-app/internal/domain"
	"vitacare/health-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const healthScoreCollectionName = "user_health_scores"

// mongoHealthScoreRepository implements repository.HealthScoreRepository
type mongoHealthScoreRepository struct {
	collection *mongo.Collection
}

// NewMongoHealthScoreRepository creates a new HealthScore repository.
func NewMongoHealthScoreRepository(db *mongo.Database) repository.HealthScoreRepository {
	return &mongoHealthScoreRepository{
		collection: db.Collection(healthScoreCollectionName),
	}
}

// Create inserts a new health score record.
func (r *mongoHealthScoreRepository) Create(ctx context.Context, score *domain.HealthScore) (primitive.ObjectID, error) {
	if score.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("health score requires userId")
	}
	score.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	score.CreatedAt = now
	score.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, score)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted health score ID")
	}
	return insertedID, nil
}

// GetLatestByUserID retrieves the user's most recent health score.
// Returns ErrNotFound when the user has never been scored.
func (r *mongoHealthScoreRepository) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.HealthScore, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var score domain.HealthScore
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}, findOptions).Decode(&score)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &score, nil
}

// EnsureHealthScoreIndexes creates necessary indexes. Call during startup.
func EnsureHealthScoreIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
