package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"vitacare/health-app/internal/domain"
	"vitacare/health-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service specific errors
var (
	ErrNoActivePlan = errors.New("no active plan found")
)

// Reason strings surfaced to the caller by CheckUserDataStatus. Clients
// branch on ShouldGenerateNew; the reason is explanatory.
const (
	reasonActivePlan      = "User has an active plan - using existing data"
	reasonRecentSchedules = "User has recent schedules - using existing data"
	reasonNoData          = "No existing data found - generating new content"
	reasonCheckError      = "Error checking existing data - generating new content"
)

// Caps on how much existing data a status check pulls back.
const (
	recentScheduleLimit      = 7
	incompleteActivityLimit  = 10
	unreadInsightLimit       = 5
	pendingRecLimit          = 5
	recentSessionLimit       = 10
	recentScheduleWindowDays = 7
)

// Dashboard slice caps.
const (
	todayInsightLimit = 3
	todayRecLimit     = 5
)

// DataSummary is the existing-content snapshot attached to a status check.
// RecentSchedules holds the newest schedules regardless of age; schedule
// recency for the decision itself is a separate date-window check.
type DataSummary struct {
	ActivePlan             *domain.Plan            `json:"active_plan,omitempty"`
	RecentSchedules        []domain.DailySchedule  `json:"recent_schedules"`
	IncompleteActivities   []domain.Activity       `json:"incomplete_activities"`
	UnreadInsights         []domain.Insight        `json:"unread_insights"`
	ActiveGoals            []domain.Goal           `json:"active_goals"`
	PendingRecommendations []domain.Recommendation `json:"pending_recommendations"`
	RecentSessions         []domain.Session        `json:"recent_sessions"`
}

// UserDataStatus is the generate-or-reuse decision for one user.
type UserDataStatus struct {
	HasActivePlan      bool        `json:"has_active_plan"`
	HasRecentSchedules bool        `json:"has_recent_schedules"`
	DataSummary        DataSummary `json:"data_summary"`
	ShouldGenerateNew  bool        `json:"should_generate_new"`
	Reason             string      `json:"reason"`
}

// UserSavedPlanData bundles everything persisted for a user across the
// record families.
type UserSavedPlanData struct {
	Plans           []domain.Plan           `json:"plans"`
	Schedules       []domain.DailySchedule  `json:"schedules"`
	Activities      []domain.Activity       `json:"activities"`
	Insights        []domain.Insight        `json:"insights"`
	Goals           []domain.Goal           `json:"goals"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Sessions        []domain.Session        `json:"sessions"`
}

// TodaySchedule is the dashboard view for the current date. Schedule is
// nil when no row exists for today.
type TodaySchedule struct {
	Date            string                  `json:"date"`
	Schedule        *domain.DailySchedule   `json:"schedule"`
	Activities      []domain.Activity       `json:"activities"`
	Insights        []domain.Insight        `json:"insights"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// ProgressData aggregates the user's trailing-week compliance and goal
// movement. PlanProgressPercent echoes the active plan's stored overall
// percentage and is 0 without an active plan.
type ProgressData struct {
	ActivePlan                 *domain.Plan `json:"active_plan,omitempty"`
	PlanProgressPercent        float64      `json:"plan_progress_percentage"`
	TotalActivities            int          `json:"total_activities"`
	CompletedActivities        int          `json:"completed_activities"`
	WeeklyCompletionRate       float64      `json:"weekly_completion_rate"`
	InsightCount               int          `json:"insight_count"`
	GoalCount                  int          `json:"goal_count"`
	AverageGoalProgress        float64      `json:"average_goal_progress"`
	ImplementedRecommendations int          `json:"implemented_recommendations"`
}

// DateRangeContent is everything generated for a user inside an inclusive
// YYYY-MM-DD date window.
type DateRangeContent struct {
	StartDate       string                  `json:"start_date"`
	EndDate         string                  `json:"end_date"`
	Schedules       []domain.DailySchedule  `json:"schedules"`
	Activities      []domain.Activity       `json:"activities"`
	Insights        []domain.Insight        `json:"insights"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// RetrievalService reads back persisted AI content and decides whether a
// fresh generation run is needed.
type RetrievalService interface {
	CheckUserDataStatus(ctx context.Context, userID primitive.ObjectID) (*UserDataStatus, error)
	GetExistingUserPlan(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error)
	GetUserSavedPlanData(ctx context.Context, userID primitive.ObjectID) (*UserSavedPlanData, error)
	GetTodaySchedule(ctx context.Context, userID primitive.ObjectID) (*TodaySchedule, error)
	GetUserProgressData(ctx context.Context, userID primitive.ObjectID) (*ProgressData, error)
	GetUserContentByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) (*DateRangeContent, error)
	UpdatePlanProgress(ctx context.Context, userID primitive.ObjectID, patch repository.PlanProgressPatch) error
	UpdatePlanStatus(ctx context.Context, planID primitive.ObjectID, status domain.PlanStatus, progress *float64) error
	ActivatePlan(ctx context.Context, userID, planID primitive.ObjectID) error
	UpdateActivityCompletion(ctx context.Context, activityID primitive.ObjectID, patch repository.ActivityCompletionPatch) error
	MarkInsightAsRead(ctx context.Context, insightID primitive.ObjectID) error
	AcceptRecommendation(ctx context.Context, recommendationID primitive.ObjectID) error
}

// retrievalService implements the RetrievalService interface.
type retrievalService struct {
	planRepo     repository.PlanRepository
	scheduleRepo repository.ScheduleRepository
	activityRepo repository.ActivityRepository
	insightRepo  repository.InsightRepository
	goalRepo     repository.GoalRepository
	recRepo      repository.RecommendationRepository
	sessionRepo  repository.SessionRepository
}

// NewRetrievalService creates a new instance of retrievalService.
func NewRetrievalService(
	planRepo repository.PlanRepository,
	scheduleRepo repository.ScheduleRepository,
	activityRepo repository.ActivityRepository,
	insightRepo repository.InsightRepository,
	goalRepo repository.GoalRepository,
	recRepo repository.RecommendationRepository,
	sessionRepo repository.SessionRepository,
) RetrievalService {
	return &retrievalService{
		planRepo:     planRepo,
		scheduleRepo: scheduleRepo,
		activityRepo: activityRepo,
		insightRepo:  insightRepo,
		goalRepo:     goalRepo,
		recRepo:      recRepo,
		sessionRepo:  sessionRepo,
	}
}

// CheckUserDataStatus inspects the user's stored content and decides
// whether the client should generate new content or reuse what exists.
// The check degrades rather than fails: any store error yields a
// generate-new decision with an empty summary and a nil error.
func (s *retrievalService) CheckUserDataStatus(ctx context.Context, userID primitive.ObjectID) (*UserDataStatus, error) {
	fail := func(err error) (*UserDataStatus, error) {
		log.Printf("WARN: data status check for user %s degraded: %v", userID.Hex(), err)
		return &UserDataStatus{
			ShouldGenerateNew: true,
			Reason:            reasonCheckError,
		}, nil
	}

	activePlan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fail(err)
	}

	schedules, err := s.scheduleRepo.GetByUserID(ctx, userID, nil)
	if err != nil {
		return fail(err)
	}
	now := time.Now().UTC()
	today := now.Format(dateLayout)
	windowStart := now.AddDate(0, 0, -recentScheduleWindowDays).Format(dateLayout)
	hasRecent := false
	for _, sch := range schedules {
		if sch.ScheduleDate >= windowStart && sch.ScheduleDate <= today {
			hasRecent = true
			break
		}
	}

	incomplete := false
	activities, err := s.activityRepo.GetByUserID(ctx, userID, repository.ActivityFilter{Completed: &incomplete})
	if err != nil {
		return fail(err)
	}

	unread := false
	insights, err := s.insightRepo.GetByUserID(ctx, userID, repository.InsightFilter{IsRead: &unread})
	if err != nil {
		return fail(err)
	}

	activeGoal := domain.GoalStatusActive
	goals, err := s.goalRepo.GetByUserID(ctx, userID, repository.GoalFilter{Status: &activeGoal})
	if err != nil {
		return fail(err)
	}

	recs, err := s.recRepo.GetByUserID(ctx, userID, repository.RecommendationFilter{Undecided: true})
	if err != nil {
		return fail(err)
	}

	sessions, err := s.sessionRepo.GetByUserID(ctx, userID, repository.SessionFilter{})
	if err != nil {
		return fail(err)
	}

	status := &UserDataStatus{
		HasActivePlan:      activePlan != nil,
		HasRecentSchedules: hasRecent,
		DataSummary: DataSummary{
			ActivePlan:             activePlan,
			RecentSchedules:        capSchedules(schedules, recentScheduleLimit),
			IncompleteActivities:   capActivities(activities, incompleteActivityLimit),
			UnreadInsights:         capInsights(insights, unreadInsightLimit),
			ActiveGoals:            goals,
			PendingRecommendations: capRecommendations(recs, pendingRecLimit),
			RecentSessions:         capSessions(sessions, recentSessionLimit),
		},
	}

	switch {
	case status.HasActivePlan:
		status.ShouldGenerateNew = false
		status.Reason = reasonActivePlan
	case status.HasRecentSchedules:
		status.ShouldGenerateNew = false
		status.Reason = reasonRecentSchedules
	default:
		status.ShouldGenerateNew = true
		status.Reason = reasonNoData
	}
	return status, nil
}

// GetExistingUserPlan returns the user's active plan, falling back to the
// most recently created plan of any status. ErrNotFound when the user has
// no plans at all.
func (s *retrievalService) GetExistingUserPlan(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get active plan: %w", err)
	}
	return s.planRepo.GetLatestByUserID(ctx, userID)
}

// GetUserSavedPlanData returns everything persisted for the user, one
// slice per record family.
func (s *retrievalService) GetUserSavedPlanData(ctx context.Context, userID primitive.ObjectID) (*UserSavedPlanData, error) {
	plans, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plans: %w", err)
	}
	schedules, err := s.scheduleRepo.GetByUserID(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}
	activities, err := s.activityRepo.GetByUserID(ctx, userID, repository.ActivityFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	insights, err := s.insightRepo.GetByUserID(ctx, userID, repository.InsightFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get insights: %w", err)
	}
	goals, err := s.goalRepo.GetByUserID(ctx, userID, repository.GoalFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	recs, err := s.recRepo.GetByUserID(ctx, userID, repository.RecommendationFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	sessions, err := s.sessionRepo.GetByUserID(ctx, userID, repository.SessionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	return &UserSavedPlanData{
		Plans:           plans,
		Schedules:       schedules,
		Activities:      activities,
		Insights:        insights,
		Goals:           goals,
		Recommendations: recs,
		Sessions:        sessions,
	}, nil
}

// GetTodaySchedule assembles the dashboard view for the current date:
// today's schedule row (if any) and activities plus a short head of
// unread insights and undecided recommendations. Activities are ordered
// by scheduled time with a missing time sorting as "00:00".
func (s *retrievalService) GetTodaySchedule(ctx context.Context, userID primitive.ObjectID) (*TodaySchedule, error) {
	today := time.Now().UTC().Format(dateLayout)

	schedules, err := s.scheduleRepo.GetByUserID(ctx, userID, &today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's schedule: %w", err)
	}
	var schedule *domain.DailySchedule
	if len(schedules) > 0 {
		schedule = &schedules[0]
	}
	activities, err := s.activityRepo.GetByUserID(ctx, userID, repository.ActivityFilter{Date: &today})
	if err != nil {
		return nil, fmt.Errorf("failed to get today's activities: %w", err)
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return timeOrEarliest(activities[i].ScheduledTime) < timeOrEarliest(activities[j].ScheduledTime)
	})

	unread := false
	insights, err := s.insightRepo.GetByUserID(ctx, userID, repository.InsightFilter{IsRead: &unread})
	if err != nil {
		return nil, fmt.Errorf("failed to get insights: %w", err)
	}
	recs, err := s.recRepo.GetByUserID(ctx, userID, repository.RecommendationFilter{Undecided: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	return &TodaySchedule{
		Date:            today,
		Schedule:        schedule,
		Activities:      activities,
		Insights:        capInsights(insights, todayInsightLimit),
		Recommendations: capRecommendations(recs, todayRecLimit),
	}, nil
}

// GetUserProgressData computes all-time activity counts, trailing-week
// activity compliance, mean goal progress, and the number of implemented
// recommendations.
func (s *retrievalService) GetUserProgressData(ctx context.Context, userID primitive.ObjectID) (*ProgressData, error) {
	activePlan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get active plan: %w", err)
	}

	activities, err := s.activityRepo.GetByUserID(ctx, userID, repository.ActivityFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	completed := 0
	for _, a := range activities {
		if a.IsCompleted {
			completed++
		}
	}

	// The weekly rate covers only activities scheduled in the trailing
	// seven days; the total counts above are all-time.
	now := time.Now().UTC()
	weekAgo := now.AddDate(0, 0, -7).Format(dateLayout)
	weekActivities, err := s.activityRepo.GetByDateRange(ctx, userID, weekAgo, now.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly activities: %w", err)
	}
	weekCompleted := 0
	for _, a := range weekActivities {
		if a.IsCompleted {
			weekCompleted++
		}
	}
	weeklyRate := 0.0
	if len(weekActivities) > 0 {
		weeklyRate = float64(weekCompleted) / float64(len(weekActivities)) * 100
	}

	insights, err := s.insightRepo.GetByUserID(ctx, userID, repository.InsightFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get insights: %w", err)
	}

	activeGoal := domain.GoalStatusActive
	goals, err := s.goalRepo.GetByUserID(ctx, userID, repository.GoalFilter{Status: &activeGoal})
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	goalProgress := 0.0
	if len(goals) > 0 {
		for _, g := range goals {
			goalProgress += g.ProgressPercent
		}
		goalProgress /= float64(len(goals))
	}

	implemented := true
	implementedRecs, err := s.recRepo.GetByUserID(ctx, userID, repository.RecommendationFilter{IsImplemented: &implemented})
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	planProgress := 0.0
	if activePlan != nil {
		planProgress = activePlan.OverallProgressPercent
	}

	return &ProgressData{
		ActivePlan:                 activePlan,
		PlanProgressPercent:        planProgress,
		TotalActivities:            len(activities),
		CompletedActivities:        completed,
		WeeklyCompletionRate:       weeklyRate,
		InsightCount:               len(insights),
		GoalCount:                  len(goals),
		AverageGoalProgress:        goalProgress,
		ImplementedRecommendations: len(implementedRecs),
	}, nil
}

// GetUserContentByDateRange returns schedules and activities whose date
// falls in the inclusive window, plus insights and recommendations
// created inside it.
func (s *retrievalService) GetUserContentByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) (*DateRangeContent, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	// Inclusive end date: range up to midnight of the following day.
	endExclusive := end.AddDate(0, 0, 1)

	schedules, err := s.scheduleRepo.GetByDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}
	activities, err := s.activityRepo.GetByDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	insights, err := s.insightRepo.GetByCreatedRange(ctx, userID, start, endExclusive)
	if err != nil {
		return nil, fmt.Errorf("failed to get insights: %w", err)
	}
	recs, err := s.recRepo.GetByCreatedRange(ctx, userID, start, endExclusive)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	return &DateRangeContent{
		StartDate:       startDate,
		EndDate:         endDate,
		Schedules:       schedules,
		Activities:      activities,
		Insights:        insights,
		Recommendations: recs,
	}, nil
}

// UpdatePlanProgress applies a progress patch to the user's active plan.
func (s *retrievalService) UpdatePlanProgress(ctx context.Context, userID primitive.ObjectID, patch repository.PlanProgressPatch) error {
	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoActivePlan
		}
		return fmt.Errorf("failed to get active plan: %w", err)
	}
	if err := s.planRepo.UpdateProgress(ctx, plan.ID, patch); err != nil {
		return fmt.Errorf("failed to update plan progress: %w", err)
	}
	return nil
}

// UpdatePlanStatus moves one plan through its lifecycle (pause, complete,
// archive). An optional progress value is stored alongside, which lets a
// completion set 100 percent in the same write.
func (s *retrievalService) UpdatePlanStatus(ctx context.Context, planID primitive.ObjectID, status domain.PlanStatus, progress *float64) error {
	return s.planRepo.UpdateStatus(ctx, planID, status, progress)
}

// ActivatePlan makes the given plan the user's single active one. Any
// other active plan the user has is paused first.
func (s *retrievalService) ActivatePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	return s.planRepo.SetActive(ctx, userID, planID)
}

// UpdateActivityCompletion records the user's completion report for one
// activity. When the patch marks the activity complete and carries no
// explicit timestamp, the completion time is stamped now.
func (s *retrievalService) UpdateActivityCompletion(ctx context.Context, activityID primitive.ObjectID, patch repository.ActivityCompletionPatch) error {
	if patch.IsCompleted != nil && *patch.IsCompleted && patch.CompletedAt == nil {
		now := time.Now().UTC()
		patch.CompletedAt = &now
	}
	return s.activityRepo.UpdateCompletion(ctx, activityID, patch)
}

// MarkInsightAsRead flags one insight as read.
func (s *retrievalService) MarkInsightAsRead(ctx context.Context, insightID primitive.ObjectID) error {
	return s.insightRepo.MarkRead(ctx, insightID)
}

// AcceptRecommendation marks one recommendation accepted and stamps the
// implementation date.
func (s *retrievalService) AcceptRecommendation(ctx context.Context, recommendationID primitive.ObjectID) error {
	return s.recRepo.Accept(ctx, recommendationID, time.Now().UTC())
}

// timeOrEarliest maps an absent HH:MM time to the start of day for
// ordering.
func timeOrEarliest(t string) string {
	if t == "" {
		return "00:00"
	}
	return t
}

func capSchedules(in []domain.DailySchedule, n int) []domain.DailySchedule {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func capActivities(in []domain.Activity, n int) []domain.Activity {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func capInsights(in []domain.Insight, n int) []domain.Insight {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func capRecommendations(in []domain.Recommendation, n int) []domain.Recommendation {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func capSessions(in []domain.Session, n int) []domain.Session {
	if len(in) > n {
		return in[:n]
	}
	return in
}
