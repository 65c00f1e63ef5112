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

const recommendationCollectionName = "user_ai_recommendations"

// mongoRecommendationRepository implements repository.RecommendationRepository
type mongoRecommendationRepository struct {
	collection *mongo.Collection
}

// NewMongoRecommendationRepository creates a new Recommendation repository.
func NewMongoRecommendationRepository(db *mongo.Database) repository.RecommendationRepository {
	return &mongoRecommendationRepository{
		collection: db.Collection(recommendationCollectionName),
	}
}

// Create inserts a new recommendation.
func (r *mongoRecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) (primitive.ObjectID, error) {
	if rec.UserID == primitive.NilObjectID || rec.Title == "" {
		return primitive.NilObjectID, errors.New("recommendation requires userId and title")
	}
	rec.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, rec)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted recommendation ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves a user's recommendations, newest first. The
// Undecided filter matches documents whose is_accepted field is null or
// absent; an explicit false (declined) does not count as undecided.
func (r *mongoRecommendationRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, filter repository.RecommendationFilter) ([]domain.Recommendation, error) {
	query := bson.M{"user_id": userID}
	if filter.RecommendationType != nil {
		query["recommendation_type"] = *filter.RecommendationType
	}
	if filter.Priority != nil {
		query["priority"] = *filter.Priority
	}
	if filter.Undecided {
		query["is_accepted"] = nil
	} else if filter.IsAccepted != nil {
		query["is_accepted"] = *filter.IsAccepted
	}
	if filter.IsImplemented != nil {
		query["is_implemented"] = *filter.IsImplemented
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []domain.Recommendation
	if err = cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// GetByCreatedRange retrieves recommendations created in the half-open
// window [start, end), newest first.
func (r *mongoRecommendationRepository) GetByCreatedRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Recommendation, error) {
	filter := bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": start, "$lt": end},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []domain.Recommendation
	if err = cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Accept marks a recommendation accepted and stamps the implementation
// date with the acceptance time.
func (r *mongoRecommendationRepository) Accept(ctx context.Context, id primitive.ObjectID, implementedAt time.Time) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"is_accepted":         true,
			"implementation_date": implementedAt,
			"updated_at":          time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRecommendationIndexes creates necessary indexes. Call during startup.
func EnsureRecommendationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "is_accepted", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
