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

const activityCollectionName = "user_ai_activities"

// mongoActivityRepository implements repository.ActivityRepository
type mongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new Activity repository.
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{
		collection: db.Collection(activityCollectionName),
	}
}

// Create inserts a new activity.
func (r *mongoActivityRepository) Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error) {
	if activity.UserID == primitive.NilObjectID || activity.ActivityName == "" {
		return primitive.NilObjectID, errors.New("activity requires userId and activityName")
	}
	activity.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	activity.CreatedAt = now
	activity.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted activity ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves a user's activities, sorted ascending by
// scheduled_time. The time is an HH:MM string, so the sort is
// lexicographic and documents without a time sort first.
func (r *mongoActivityRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, filter repository.ActivityFilter) ([]domain.Activity, error) {
	query := bson.M{"user_id": userID}
	if filter.PlanID != nil {
		query["plan_id"] = *filter.PlanID
	}
	if filter.ScheduleID != nil {
		query["schedule_id"] = *filter.ScheduleID
	}
	if filter.ActivityType != nil {
		query["activity_type"] = *filter.ActivityType
	}
	if filter.Date != nil {
		query["scheduled_date"] = *filter.Date
	}
	if filter.Completed != nil {
		query["is_completed"] = *filter.Completed
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduled_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []domain.Activity
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetByDateRange retrieves activities with scheduled_date in [startDate,
// endDate] inclusive, oldest first.
func (r *mongoActivityRepository) GetByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]domain.Activity, error) {
	filter := bson.M{
		"user_id":        userID,
		"scheduled_date": bson.M{"$gte": startDate, "$lte": endDate},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []domain.Activity
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// UpdateCompletion patches only the provided completion/feedback fields.
// Last write wins; there is no concurrency check.
func (r *mongoActivityRepository) UpdateCompletion(ctx context.Context, id primitive.ObjectID, patch repository.ActivityCompletionPatch) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.IsCompleted != nil {
		set["is_completed"] = *patch.IsCompleted
	}
	if patch.CompletionPercent != nil {
		set["completion_percentage"] = *patch.CompletionPercent
	}
	if patch.CompletedAt != nil {
		set["completed_at"] = *patch.CompletedAt
	}
	if patch.ActualDuration != nil {
		set["actual_duration"] = *patch.ActualDuration
	}
	if patch.DifficultyRating != nil {
		set["difficulty_rating"] = *patch.DifficultyRating
	}
	if patch.SatisfactionRating != nil {
		set["satisfaction_rating"] = *patch.SatisfactionRating
	}
	if patch.EnergyLevelBefore != nil {
		set["energy_level_before"] = *patch.EnergyLevelBefore
	}
	if patch.EnergyLevelAfter != nil {
		set["energy_level_after"] = *patch.EnergyLevelAfter
	}
	if patch.UserNotes != nil {
		set["user_notes"] = *patch.UserNotes
	}
	if patch.Metrics != nil {
		set["metrics"] = patch.Metrics
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureActivityIndexes creates necessary indexes. Call during startup.
func EnsureActivityIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "scheduled_date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "is_completed", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "plan_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
