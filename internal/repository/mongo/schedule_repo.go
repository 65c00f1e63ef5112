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

const scheduleCollectionName = "user_daily_schedules"

// mongoScheduleRepository implements repository.ScheduleRepository
type mongoScheduleRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduleRepository creates a new DailySchedule repository.
func NewMongoScheduleRepository(db *mongo.Database) repository.ScheduleRepository {
	return &mongoScheduleRepository{
		collection: db.Collection(scheduleCollectionName),
	}
}

// Create inserts a new daily schedule.
func (r *mongoScheduleRepository) Create(ctx context.Context, schedule *domain.DailySchedule) (primitive.ObjectID, error) {
	if schedule.UserID == primitive.NilObjectID || schedule.ScheduleDate == "" {
		return primitive.NilObjectID, errors.New("schedule requires userId and scheduleDate")
	}
	schedule.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, schedule)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted schedule ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves a user's schedules, newest date first. When date is
// non-nil only that calendar day is returned.
func (r *mongoScheduleRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, date *string) ([]domain.DailySchedule, error) {
	filter := bson.M{"user_id": userID}
	if date != nil {
		filter["schedule_date"] = *date
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "schedule_date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []domain.DailySchedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// GetByDateRange retrieves schedules with schedule_date in [startDate,
// endDate] inclusive, oldest first. Dates are YYYY-MM-DD strings so the
// comparison is lexicographic.
func (r *mongoScheduleRepository) GetByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]domain.DailySchedule, error) {
	filter := bson.M{
		"user_id":       userID,
		"schedule_date": bson.M{"$gte": startDate, "$lte": endDate},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "schedule_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []domain.DailySchedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// EnsureScheduleIndexes creates necessary indexes. Call during startup.
func EnsureScheduleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "schedule_date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "plan_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
