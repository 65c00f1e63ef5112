package service

import (
	"context"
	"time"

	"vitacare/health-app/internal/domain"
	"vitacare/health-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. Each records what was created and returns
// canned data; setting the err field makes every method fail with it.

type fakePlanRepo struct {
	created    []*domain.Plan
	plans      []domain.Plan
	active     *domain.Plan
	latest     *domain.Plan
	byID       map[primitive.ObjectID]*domain.Plan
	statusSets []domain.PlanStatus
	progress   []repository.PlanProgressPatch
	activated  []primitive.ObjectID
	err        error
	activeErr  error
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	id := primitive.NewObjectID()
	plan.ID = id
	plan.CreatedAt = time.Now().UTC()
	plan.UpdatedAt = plan.CreatedAt
	f.created = append(f.created, plan)
	return id, nil
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePlanRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plans, nil
}

func (f *fakePlanRepo) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.active == nil {
		return nil, repository.ErrNotFound
	}
	return f.active, nil
}

func (f *fakePlanRepo) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.latest == nil {
		return nil, repository.ErrNotFound
	}
	return f.latest, nil
}

func (f *fakePlanRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PlanStatus, progress *float64) error {
	if f.err != nil {
		return f.err
	}
	f.statusSets = append(f.statusSets, status)
	return nil
}

func (f *fakePlanRepo) UpdateProgress(ctx context.Context, id primitive.ObjectID, patch repository.PlanProgressPatch) error {
	if f.err != nil {
		return f.err
	}
	f.progress = append(f.progress, patch)
	return nil
}

func (f *fakePlanRepo) SetActive(ctx context.Context, userID, planID primitive.ObjectID) error {
	if f.err != nil {
		return f.err
	}
	f.activated = append(f.activated, planID)
	return nil
}

type fakeScheduleRepo struct {
	created []*domain.DailySchedule
	list    []domain.DailySchedule
	inRange []domain.DailySchedule
	err     error
}

func (f *fakeScheduleRepo) Create(ctx context.Context, schedule *domain.DailySchedule) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	id := primitive.NewObjectID()
	schedule.ID = id
	f.created = append(f.created, schedule)
	return id, nil
}

func (f *fakeScheduleRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, date *string) ([]domain.DailySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	if date == nil {
		return f.list, nil
	}
	var out []domain.DailySchedule
	for _, s := range f.list {
		if s.ScheduleDate == *date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) GetByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]domain.DailySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.inRange, nil
}

type fakeActivityRepo struct {
	created     []*domain.Activity
	list        []domain.Activity
	inRange     []domain.Activity
	completions []repository.ActivityCompletionPatch
	lastFilter  repository.ActivityFilter
	err         error
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	id := primitive.NewObjectID()
	activity.ID = id
	f.created = append(f.created, activity)
	return id, nil
}

func (f *fakeActivityRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, filter repository.ActivityFilter) ([]domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastFilter = filter
	return f.list, nil
}

func (f *fakeActivityRepo) GetByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]domain.Activity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.inRange, nil
}

func (f *fakeActivityRepo) UpdateCompletion(ctx context.Context, id primitive.ObjectID, patch repository.ActivityCompletionPatch) error {
	if f.err != nil {
		return f.err
	}
	f.completions = append(f.completions, patch)
	return nil
}

type fakeInsightRepo struct {
	created    []*domain.Insight
	list       []domain.Insight
	inRange    []domain.Insight
	marked     []primitive.ObjectID
	lastFilter repository.InsightFilter
	err        error
}

func (f *fakeInsightRepo) Create(ctx context.Context, insight *domain.Insight) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	id := primitive.NewObjectID()
	insight.ID = id
	f.created = append(f.created, insight)
	return id, nil
}

func (f *fakeInsightRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, filter repository.InsightFilter) ([]domain.Insight, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastFilter = filter
	return f.list, nil
}

func (f *fakeInsightRepo) GetByCreatedRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Insight, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.inRange, nil
}

func (f *fakeInsightRepo) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	if f.err != nil {
		return f.err
	}
	f.marked = append(f.marked, id)
	return nil
}

type fakeGoalRepo struct {
	created []*domain.Goal
	list    []domain.Goal
	err     error
}

func (f *fakeGoalRepo) Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	id := primitive.NewObjectID()
	goal.ID = id
	f.created = append(f.created, goal)
	return id, nil
}

func (f *fakeGoalRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, filter repository.GoalFilter) ([]domain.Goal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

type fakeRecommendationRepo struct {
	created    []*domain.Recommendation
	list       []domain.Recommendation
	inRange    []domain.Recommendation
	accepted   []primitive.ObjectID
	acceptedAt []time.Time
	lastFilter repository.RecommendationFilter
	err        error
}

func (f *fakeRecommendationRepo) Create(ctx context.Context, rec *domain.Recommendation) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	id := primitive.NewObjectID()
	rec.ID = id
	f.created = append(f.created, rec)
	return id, nil
}

func (f *fakeRecommendationRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, filter repository.RecommendationFilter) ([]domain.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastFilter = filter
	return f.list, nil
}

func (f *fakeRecommendationRepo) GetByCreatedRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.inRange, nil
}

func (f *fakeRecommendationRepo) Accept(ctx context.Context, id primitive.ObjectID, implementedAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.accepted = append(f.accepted, id)
	f.acceptedAt = append(f.acceptedAt, implementedAt)
	return nil
}

type fakeSessionRepo struct {
	created []*domain.Session
	list    []domain.Session
	err     error
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	id := primitive.NewObjectID()
	session.ID = id
	f.created = append(f.created, session)
	return id, nil
}

func (f *fakeSessionRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, filter repository.SessionFilter) ([]domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

type fakeHealthScoreRepo struct {
	created []*domain.HealthScore
	latest  *domain.HealthScore
	err     error
}

func (f *fakeHealthScoreRepo) Create(ctx context.Context, score *domain.HealthScore) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	id := primitive.NewObjectID()
	score.ID = id
	f.created = append(f.created, score)
	return id, nil
}

func (f *fakeHealthScoreRepo) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.HealthScore, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.latest == nil {
		return nil, repository.ErrNotFound
	}
	return f.latest, nil
}

type fakeUserRepo struct {
	created []*domain.User
	byEmail map[string]*domain.User
	byID    map[primitive.ObjectID]*domain.User
	err     error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	id := primitive.NewObjectID()
	user.ID = id
	stored := *user
	f.created = append(f.created, &stored)
	if f.byEmail == nil {
		f.byEmail = map[string]*domain.User{}
	}
	f.byEmail[stored.Email] = &stored
	return id, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byEmail[email]; ok {
		out := *u
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, repository.ErrNotFound
}
