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

const planCollectionName = "user_saved_plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new saved plan. The store assigns the ID and timestamps;
// callers never supply them.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID || plan.PlanName == "" {
		return primitive.NilObjectID, errors.New("plan requires userId and planName")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByUserID retrieves all plans for a user, newest first.
func (r *mongoPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	var plans []domain.Plan
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	// Empty slice when no plans exist (not an error)
	return plans, nil
}

// GetActiveByUserID retrieves the user's active plan. The "one active plan"
// invariant is advisory only, so when several rows are active the most
// recently created one wins. Returns ErrNotFound when none is active.
func (r *mongoPlanRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  domain.PlanStatusActive,
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var plan domain.Plan
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetLatestByUserID retrieves the user's most recently created plan in any
// status. Returns ErrNotFound when the user has no plans at all.
func (r *mongoPlanRepository) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var plan domain.Plan
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}, findOptions).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// UpdateStatus patches a plan's status and, optionally, its overall
// progress percentage. Last write wins.
func (r *mongoPlanRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PlanStatus, progress *float64) error {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if progress != nil {
		set["overall_progress_percentage"] = *progress
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

// UpdateProgress patches only the provided progress fields.
func (r *mongoPlanRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, patch repository.PlanProgressPatch) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.CurrentWeek != nil {
		set["current_week"] = *patch.CurrentWeek
	}
	if patch.OverallProgress != nil {
		set["overall_progress_percentage"] = *patch.OverallProgress
	}
	if patch.WeeklyComplianceRate != nil {
		set["weekly_compliance_rate"] = *patch.WeeklyComplianceRate
	}
	if patch.MonthlyComplianceRate != nil {
		set["monthly_compliance_rate"] = *patch.MonthlyComplianceRate
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

// SetActive archives every other active plan the user has, then activates
// the chosen one. This is the explicit user-driven switch; the save path
// never calls it.
func (r *mongoPlanRepository) SetActive(ctx context.Context, userID, planID primitive.ObjectID) error {
	now := time.Now().UTC()

	deactivate := bson.M{
		"user_id": userID,
		"status":  domain.PlanStatusActive,
		"_id":     bson.M{"$ne": planID},
	}
	_, err := r.collection.UpdateMany(ctx, deactivate, bson.M{
		"$set": bson.M{"status": domain.PlanStatusPaused, "updated_at": now},
	})
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": planID, "user_id": userID},
		bson.M{"$set": bson.M{"status": domain.PlanStatusActive, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main lookup: active plan per user, newest first
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
