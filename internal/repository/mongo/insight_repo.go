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

const insightCollectionName = "user_ai_insights"

// mongoInsightRepository implements repository.InsightRepository
type mongoInsightRepository struct {
	collection *mongo.Collection
}

// NewMongoInsightRepository creates a new Insight repository.
func NewMongoInsightRepository(db *mongo.Database) repository.InsightRepository {
	return &mongoInsightRepository{
		collection: db.Collection(insightCollectionName),
	}
}

// Create inserts a new insight.
func (r *mongoInsightRepository) Create(ctx context.Context, insight *domain.Insight) (primitive.ObjectID, error) {
	if insight.UserID == primitive.NilObjectID || insight.Title == "" {
		return primitive.NilObjectID, errors.New("insight requires userId and title")
	}
	insight.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	insight.CreatedAt = now
	insight.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, insight)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted insight ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves a user's insights, newest first.
func (r *mongoInsightRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, filter repository.InsightFilter) ([]domain.Insight, error) {
	query := bson.M{"user_id": userID}
	if filter.InsightType != nil {
		query["insight_type"] = *filter.InsightType
	}
	if filter.PriorityLevel != nil {
		query["priority_level"] = *filter.PriorityLevel
	}
	if filter.IsRead != nil {
		query["is_read"] = *filter.IsRead
	}
	if filter.IsAcknowledged != nil {
		query["is_acknowledged"] = *filter.IsAcknowledged
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var insights []domain.Insight
	if err = cursor.All(ctx, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// GetByCreatedRange retrieves insights created in the half-open window
// [start, end), newest first.
func (r *mongoInsightRepository) GetByCreatedRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Insight, error) {
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

	var insights []domain.Insight
	if err = cursor.All(ctx, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// MarkRead flags a single insight as read.
func (r *mongoInsightRepository) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_read": true, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureInsightIndexes creates necessary indexes. Call during startup.
func EnsureInsightIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "is_read", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
