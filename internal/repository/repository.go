package repository

import (
	"context"
	"time"

	"vitacare/health-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer. Callers distinguish "row absent"
// (ErrNotFound, a sentinel meaning no match) from genuine store failures,
// which are returned as-is from the driver.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// PlanProgressPatch is a partial update of a plan's progress fields. Nil
// fields are left untouched; no optimistic concurrency check is made.
type PlanProgressPatch struct {
	CurrentWeek           *int
	OverallProgress       *float64
	WeeklyComplianceRate  *float64
	MonthlyComplianceRate *float64
}

// ActivityCompletionPatch is a partial update applied when the user reports
// on an activity. Nil fields are left untouched.
type ActivityCompletionPatch struct {
	IsCompleted        *bool
	CompletionPercent  *float64
	CompletedAt        *time.Time
	ActualDuration     *int
	DifficultyRating   *int
	SatisfactionRating *int
	EnergyLevelBefore  *int
	EnergyLevelAfter   *int
	UserNotes          *string
	Metrics            map[string]any
}

// ActivityFilter narrows activity reads. Nil fields apply no filter.
type ActivityFilter struct {
	PlanID       *primitive.ObjectID
	ScheduleID   *primitive.ObjectID
	ActivityType *string
	Date         *string // scheduled_date, YYYY-MM-DD
	Completed    *bool
}

// InsightFilter narrows insight reads. Nil fields apply no filter.
type InsightFilter struct {
	InsightType    *string
	PriorityLevel  *domain.InsightPriority
	IsRead         *bool
	IsAcknowledged *bool
}

// GoalFilter narrows goal reads. Nil fields apply no filter.
type GoalFilter struct {
	GoalType      *string
	Status        *domain.GoalStatus
	IsAIGenerated *bool
}

// RecommendationFilter narrows recommendation reads. Undecided selects rows
// whose is_accepted field is literally unset; an explicit false does not
// match. Undecided takes precedence over IsAccepted when both are set.
type RecommendationFilter struct {
	RecommendationType *string
	Priority           *domain.RecommendationPriority
	IsAccepted         *bool
	Undecided          bool
	IsImplemented      *bool
}

// SessionFilter narrows session reads. Nil fields apply no filter.
type SessionFilter struct {
	SessionType   *string
	Status        *domain.SessionStatus
	RelatedPlanID *primitive.ObjectID
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// PlanRepository defines the persistence contract for saved plans.
// GetActiveByUserID returns ErrNotFound when the user has no active plan;
// when the advisory "one active plan" invariant has been violated it
// returns the most recently created active row.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PlanStatus, progress *float64) error
	UpdateProgress(ctx context.Context, id primitive.ObjectID, patch PlanProgressPatch) error
	SetActive(ctx context.Context, userID, planID primitive.ObjectID) error
}

// ScheduleRepository defines the persistence contract for daily schedules.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.DailySchedule) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, date *string) ([]domain.DailySchedule, error)
	GetByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]domain.DailySchedule, error)
}

// ActivityRepository defines the persistence contract for activities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, filter ActivityFilter) ([]domain.Activity, error)
	GetByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]domain.Activity, error)
	UpdateCompletion(ctx context.Context, id primitive.ObjectID, patch ActivityCompletionPatch) error
}

// InsightRepository defines the persistence contract for insights.
type InsightRepository interface {
	Create(ctx context.Context, insight *domain.Insight) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, filter InsightFilter) ([]domain.Insight, error)
	GetByCreatedRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Insight, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
}

// GoalRepository defines the persistence contract for goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, filter GoalFilter) ([]domain.Goal, error)
}

// RecommendationRepository defines the persistence contract for
// recommendations. Accept marks the row accepted and stamps the
// implementation date in a single patch.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *domain.Recommendation) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, filter RecommendationFilter) ([]domain.Recommendation, error)
	GetByCreatedRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Recommendation, error)
	Accept(ctx context.Context, id primitive.ObjectID, implementedAt time.Time) error
}

// SessionRepository defines the persistence contract for AI sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, filter SessionFilter) ([]domain.Session, error)
}

// HealthScoreRepository defines the persistence contract for health scores.
type HealthScoreRepository interface {
	Create(ctx context.Context, score *domain.HealthScore) (primitive.ObjectID, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.HealthScore, error)
}
