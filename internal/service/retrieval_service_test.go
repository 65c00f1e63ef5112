package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"vitacare/health-app/internal/domain"
	"vitacare/health-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRetrievalFixture() (*retrievalService, *fakePlanRepo, *fakeScheduleRepo, *fakeActivityRepo, *fakeInsightRepo, *fakeGoalRepo, *fakeRecommendationRepo, *fakeSessionRepo) {
	planRepo := &fakePlanRepo{}
	scheduleRepo := &fakeScheduleRepo{}
	activityRepo := &fakeActivityRepo{}
	insightRepo := &fakeInsightRepo{}
	goalRepo := &fakeGoalRepo{}
	recRepo := &fakeRecommendationRepo{}
	sessionRepo := &fakeSessionRepo{}
	svc := NewRetrievalService(planRepo, scheduleRepo, activityRepo, insightRepo, goalRepo, recRepo, sessionRepo).(*retrievalService)
	return svc, planRepo, scheduleRepo, activityRepo, insightRepo, goalRepo, recRepo, sessionRepo
}

// daysAgo renders a schedule date n days before today.
func daysAgo(n int) string {
	return time.Now().UTC().AddDate(0, 0, -n).Format("2006-01-02")
}

func TestCheckUserDataStatus_ActivePlan(t *testing.T) {
	svc, planRepo, scheduleRepo, _, _, _, _, _ := newRetrievalFixture()
	planRepo.active = &domain.Plan{ID: primitive.NewObjectID(), Status: domain.PlanStatusActive}
	scheduleRepo.list = []domain.DailySchedule{{ScheduleDate: daysAgo(1)}}

	status, err := svc.CheckUserDataStatus(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("CheckUserDataStatus() error = %v", err)
	}
	if !status.HasActivePlan {
		t.Error("expected HasActivePlan")
	}
	if status.ShouldGenerateNew {
		t.Error("active plan must suppress generation")
	}
	if status.Reason != "User has an active plan - using existing data" {
		t.Errorf("Reason = %q", status.Reason)
	}
	if status.DataSummary.ActivePlan == nil {
		t.Error("summary must carry the active plan")
	}
}

func TestCheckUserDataStatus_RecentSchedulesOnly(t *testing.T) {
	svc, _, scheduleRepo, _, _, _, _, _ := newRetrievalFixture()
	scheduleRepo.list = []domain.DailySchedule{{ScheduleDate: daysAgo(2)}}

	status, err := svc.CheckUserDataStatus(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("CheckUserDataStatus() error = %v", err)
	}
	if status.HasActivePlan || !status.HasRecentSchedules {
		t.Errorf("flags = %v/%v", status.HasActivePlan, status.HasRecentSchedules)
	}
	if status.ShouldGenerateNew {
		t.Error("recent schedules must suppress generation")
	}
	if status.Reason != "User has recent schedules - using existing data" {
		t.Errorf("Reason = %q", status.Reason)
	}
}

func TestCheckUserDataStatus_OldSchedulesOnly(t *testing.T) {
	svc, _, scheduleRepo, _, _, _, _, _ := newRetrievalFixture()
	// Nine schedules, newest ten days old: all show up in the summary
	// head but none counts as recent for the decision.
	for i := 0; i < 9; i++ {
		scheduleRepo.list = append(scheduleRepo.list, domain.DailySchedule{ScheduleDate: daysAgo(10 + i)})
	}

	status, err := svc.CheckUserDataStatus(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("CheckUserDataStatus() error = %v", err)
	}
	if status.HasRecentSchedules {
		t.Error("ten-day-old schedules must not count as recent")
	}
	if !status.ShouldGenerateNew {
		t.Error("stale schedules alone must trigger generation")
	}
	if status.Reason != "No existing data found - generating new content" {
		t.Errorf("Reason = %q", status.Reason)
	}
	if len(status.DataSummary.RecentSchedules) != 7 {
		t.Errorf("RecentSchedules = %d, want 7 regardless of age", len(status.DataSummary.RecentSchedules))
	}
}

func TestCheckUserDataStatus_NoData(t *testing.T) {
	svc, _, _, _, _, _, _, _ := newRetrievalFixture()

	status, err := svc.CheckUserDataStatus(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("CheckUserDataStatus() error = %v", err)
	}
	if !status.ShouldGenerateNew {
		t.Error("empty store must trigger generation")
	}
	if status.Reason != "No existing data found - generating new content" {
		t.Errorf("Reason = %q", status.Reason)
	}
}

func TestCheckUserDataStatus_StoreErrorDegrades(t *testing.T) {
	svc, planRepo, scheduleRepo, _, _, _, _, _ := newRetrievalFixture()
	planRepo.active = &domain.Plan{ID: primitive.NewObjectID()}
	scheduleRepo.err = errors.New("store down")

	status, err := svc.CheckUserDataStatus(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("degraded check must not return an error, got %v", err)
	}
	if !status.ShouldGenerateNew {
		t.Error("degraded check must fail open to generation")
	}
	if status.Reason != "Error checking existing data - generating new content" {
		t.Errorf("Reason = %q", status.Reason)
	}
	if status.HasActivePlan || status.DataSummary.ActivePlan != nil {
		t.Error("degraded check must return an empty summary")
	}
}

func TestCheckUserDataStatus_SummaryCaps(t *testing.T) {
	svc, _, scheduleRepo, activityRepo, insightRepo, goalRepo, recRepo, sessionRepo := newRetrievalFixture()
	for i := 0; i < 20; i++ {
		scheduleRepo.list = append(scheduleRepo.list, domain.DailySchedule{ScheduleDate: daysAgo(1)})
		activityRepo.list = append(activityRepo.list, domain.Activity{})
		insightRepo.list = append(insightRepo.list, domain.Insight{})
		goalRepo.list = append(goalRepo.list, domain.Goal{})
		recRepo.list = append(recRepo.list, domain.Recommendation{})
		sessionRepo.list = append(sessionRepo.list, domain.Session{})
	}

	status, err := svc.CheckUserDataStatus(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("CheckUserDataStatus() error = %v", err)
	}
	sum := status.DataSummary
	if len(sum.RecentSchedules) != 7 {
		t.Errorf("RecentSchedules = %d, want 7", len(sum.RecentSchedules))
	}
	if len(sum.IncompleteActivities) != 10 {
		t.Errorf("IncompleteActivities = %d, want 10", len(sum.IncompleteActivities))
	}
	if len(sum.UnreadInsights) != 5 {
		t.Errorf("UnreadInsights = %d, want 5", len(sum.UnreadInsights))
	}
	// Active goals are not capped.
	if len(sum.ActiveGoals) != 20 {
		t.Errorf("ActiveGoals = %d, want 20", len(sum.ActiveGoals))
	}
	if len(sum.PendingRecommendations) != 5 {
		t.Errorf("PendingRecommendations = %d, want 5", len(sum.PendingRecommendations))
	}
	if len(sum.RecentSessions) != 10 {
		t.Errorf("RecentSessions = %d, want 10", len(sum.RecentSessions))
	}
	// The caps only trim the summary; the decision sees the full result.
	if !status.HasRecentSchedules {
		t.Error("expected HasRecentSchedules")
	}
	// Pending means undecided, not declined.
	if !recRepo.lastFilter.Undecided {
		t.Error("recommendation query must select undecided rows")
	}
	if activityRepo.lastFilter.Completed == nil || *activityRepo.lastFilter.Completed {
		t.Error("activity query must select incomplete rows")
	}
}

func TestGetExistingUserPlan_FallsBackToLatest(t *testing.T) {
	svc, planRepo, _, _, _, _, _, _ := newRetrievalFixture()
	latest := &domain.Plan{ID: primitive.NewObjectID(), Status: domain.PlanStatusCompleted}
	planRepo.latest = latest

	plan, err := svc.GetExistingUserPlan(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetExistingUserPlan() error = %v", err)
	}
	if plan.ID != latest.ID {
		t.Error("expected fallback to latest plan")
	}
}

func TestGetExistingUserPlan_NoPlans(t *testing.T) {
	svc, _, _, _, _, _, _, _ := newRetrievalFixture()

	_, err := svc.GetExistingUserPlan(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetTodaySchedule_SortsActivitiesByTime(t *testing.T) {
	svc, _, scheduleRepo, activityRepo, insightRepo, _, recRepo, _ := newRetrievalFixture()
	scheduleRepo.list = []domain.DailySchedule{
		{ScheduleDate: daysAgo(0), DayType: "workout"},
		{ScheduleDate: daysAgo(3)},
	}
	activityRepo.list = []domain.Activity{
		{ActivityName: "Lunch walk", ScheduledTime: "12:30"},
		{ActivityName: "Stretching"},
		{ActivityName: "Morning run", ScheduledTime: "06:45"},
	}
	for i := 0; i < 6; i++ {
		insightRepo.list = append(insightRepo.list, domain.Insight{})
		recRepo.list = append(recRepo.list, domain.Recommendation{})
	}

	today, err := svc.GetTodaySchedule(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetTodaySchedule() error = %v", err)
	}
	if today.Date != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("Date = %q", today.Date)
	}
	// A single schedule row for the day, not a list.
	if today.Schedule == nil || today.Schedule.ScheduleDate != today.Date {
		t.Errorf("Schedule = %+v, want today's row", today.Schedule)
	}
	// An activity with no time sorts as "00:00" and comes first.
	wantOrder := []string{"Stretching", "Morning run", "Lunch walk"}
	for i, want := range wantOrder {
		if today.Activities[i].ActivityName != want {
			t.Errorf("activity[%d] = %q, want %q", i, today.Activities[i].ActivityName, want)
		}
	}
	if len(today.Insights) != 3 {
		t.Errorf("Insights = %d, want 3", len(today.Insights))
	}
	if len(today.Recommendations) != 5 {
		t.Errorf("Recommendations = %d, want 5", len(today.Recommendations))
	}
}

func TestGetTodaySchedule_NoScheduleRow(t *testing.T) {
	svc, _, _, _, _, _, _, _ := newRetrievalFixture()

	today, err := svc.GetTodaySchedule(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetTodaySchedule() error = %v", err)
	}
	if today.Schedule != nil {
		t.Errorf("Schedule = %+v, want nil", today.Schedule)
	}
}

func TestGetUserProgressData(t *testing.T) {
	svc, planRepo, _, activityRepo, insightRepo, goalRepo, recRepo, _ := newRetrievalFixture()
	planRepo.active = &domain.Plan{ID: primitive.NewObjectID(), OverallProgressPercent: 35}
	insightRepo.list = []domain.Insight{{Title: "a"}, {Title: "b"}}
	activityRepo.list = []domain.Activity{
		{IsCompleted: true},
		{IsCompleted: true},
		{IsCompleted: true},
		{IsCompleted: false},
		{IsCompleted: false},
		{IsCompleted: false},
	}
	activityRepo.inRange = []domain.Activity{
		{IsCompleted: true},
		{IsCompleted: true},
		{IsCompleted: false},
		{IsCompleted: false},
	}
	goalRepo.list = []domain.Goal{
		{ProgressPercent: 40},
		{ProgressPercent: 80},
	}
	recRepo.list = []domain.Recommendation{{IsImplemented: true}, {IsImplemented: true}, {IsImplemented: true}}

	progress, err := svc.GetUserProgressData(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetUserProgressData() error = %v", err)
	}
	// Counts are all-time; the rate covers only the trailing week.
	if progress.TotalActivities != 6 || progress.CompletedActivities != 3 {
		t.Errorf("activities = %d/%d", progress.CompletedActivities, progress.TotalActivities)
	}
	if progress.WeeklyCompletionRate != 50 {
		t.Errorf("WeeklyCompletionRate = %v, want 50", progress.WeeklyCompletionRate)
	}
	if progress.AverageGoalProgress != 60 {
		t.Errorf("AverageGoalProgress = %v, want 60", progress.AverageGoalProgress)
	}
	if progress.ImplementedRecommendations != 3 {
		t.Errorf("ImplementedRecommendations = %d, want 3", progress.ImplementedRecommendations)
	}
	if progress.InsightCount != 2 {
		t.Errorf("InsightCount = %d, want 2", progress.InsightCount)
	}
	if progress.PlanProgressPercent != 35 {
		t.Errorf("PlanProgressPercent = %v, want 35", progress.PlanProgressPercent)
	}
	if progress.ActivePlan == nil {
		t.Error("expected active plan on progress data")
	}
}

func TestGetUserProgressData_CountsOutsideWindow(t *testing.T) {
	svc, _, _, activityRepo, _, _, _, _ := newRetrievalFixture()
	activityRepo.list = []domain.Activity{
		{IsCompleted: true},
		{IsCompleted: true},
		{IsCompleted: true},
		{IsCompleted: false},
		{IsCompleted: false},
	}
	activityRepo.inRange = []domain.Activity{{IsCompleted: false}}

	progress, err := svc.GetUserProgressData(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetUserProgressData() error = %v", err)
	}
	// A quiet week must not hide the all-time history.
	if progress.TotalActivities != 5 || progress.CompletedActivities != 3 {
		t.Errorf("activities = %d/%d, want 3/5", progress.CompletedActivities, progress.TotalActivities)
	}
	if progress.WeeklyCompletionRate != 0 {
		t.Errorf("WeeklyCompletionRate = %v, want 0", progress.WeeklyCompletionRate)
	}
}

func TestGetUserProgressData_EmptyWeek(t *testing.T) {
	svc, _, _, _, _, _, _, _ := newRetrievalFixture()

	progress, err := svc.GetUserProgressData(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetUserProgressData() error = %v", err)
	}
	if progress.WeeklyCompletionRate != 0 || progress.AverageGoalProgress != 0 {
		t.Error("empty week must yield zero rates, not NaN")
	}
	if progress.ActivePlan != nil {
		t.Error("no active plan expected")
	}
}

func TestGetUserContentByDateRange_RejectsBadDates(t *testing.T) {
	svc, _, _, _, _, _, _, _ := newRetrievalFixture()

	if _, err := svc.GetUserContentByDateRange(context.Background(), primitive.NewObjectID(), "06-01-2025", "2025-01-12"); err == nil {
		t.Fatal("expected error for malformed start date")
	}
	if _, err := svc.GetUserContentByDateRange(context.Background(), primitive.NewObjectID(), "2025-01-06", "someday"); err == nil {
		t.Fatal("expected error for malformed end date")
	}
}

func TestGetUserContentByDateRange(t *testing.T) {
	svc, _, scheduleRepo, activityRepo, insightRepo, _, recRepo, _ := newRetrievalFixture()
	scheduleRepo.inRange = []domain.DailySchedule{{ScheduleDate: "2025-01-07"}}
	activityRepo.inRange = []domain.Activity{{ScheduledDate: "2025-01-08"}}
	insightRepo.inRange = []domain.Insight{{Title: "a"}}
	recRepo.inRange = []domain.Recommendation{{Title: "b"}}

	content, err := svc.GetUserContentByDateRange(context.Background(), primitive.NewObjectID(), "2025-01-06", "2025-01-12")
	if err != nil {
		t.Fatalf("GetUserContentByDateRange() error = %v", err)
	}
	if content.StartDate != "2025-01-06" || content.EndDate != "2025-01-12" {
		t.Errorf("window = %q..%q", content.StartDate, content.EndDate)
	}
	if len(content.Schedules) != 1 || len(content.Activities) != 1 || len(content.Insights) != 1 || len(content.Recommendations) != 1 {
		t.Error("expected one record per family")
	}
}

func TestUpdatePlanProgress_NoActivePlan(t *testing.T) {
	svc, _, _, _, _, _, _, _ := newRetrievalFixture()

	week := 2
	err := svc.UpdatePlanProgress(context.Background(), primitive.NewObjectID(), repository.PlanProgressPatch{CurrentWeek: &week})
	if !errors.Is(err, ErrNoActivePlan) {
		t.Fatalf("want ErrNoActivePlan, got %v", err)
	}
}

func TestUpdatePlanProgress(t *testing.T) {
	svc, planRepo, _, _, _, _, _, _ := newRetrievalFixture()
	planRepo.active = &domain.Plan{ID: primitive.NewObjectID()}

	week := 3
	overall := 25.0
	err := svc.UpdatePlanProgress(context.Background(), primitive.NewObjectID(), repository.PlanProgressPatch{CurrentWeek: &week, OverallProgress: &overall})
	if err != nil {
		t.Fatalf("UpdatePlanProgress() error = %v", err)
	}
	if len(planRepo.progress) != 1 {
		t.Fatalf("progress patches = %d, want 1", len(planRepo.progress))
	}
	patch := planRepo.progress[0]
	if patch.CurrentWeek == nil || *patch.CurrentWeek != 3 {
		t.Error("CurrentWeek not forwarded")
	}
	if patch.OverallProgress == nil || *patch.OverallProgress != 25.0 {
		t.Error("OverallProgress not forwarded")
	}
}

func TestAcceptRecommendation_StampsImplementationDate(t *testing.T) {
	svc, _, _, _, _, _, recRepo, _ := newRetrievalFixture()
	recID := primitive.NewObjectID()

	before := time.Now().UTC()
	if err := svc.AcceptRecommendation(context.Background(), recID); err != nil {
		t.Fatalf("AcceptRecommendation() error = %v", err)
	}
	after := time.Now().UTC()

	if len(recRepo.accepted) != 1 || recRepo.accepted[0] != recID {
		t.Fatal("recommendation not accepted")
	}
	at := recRepo.acceptedAt[0]
	if at.Before(before) || at.After(after) {
		t.Errorf("implementation date %v outside call window", at)
	}
}

func TestUpdatePlanStatus(t *testing.T) {
	svc, planRepo, _, _, _, _, _, _ := newRetrievalFixture()

	done := 100.0
	if err := svc.UpdatePlanStatus(context.Background(), primitive.NewObjectID(), domain.PlanStatusCompleted, &done); err != nil {
		t.Fatalf("UpdatePlanStatus() error = %v", err)
	}
	if len(planRepo.statusSets) != 1 || planRepo.statusSets[0] != domain.PlanStatusCompleted {
		t.Error("status change not forwarded")
	}
}

func TestActivatePlan(t *testing.T) {
	svc, planRepo, _, _, _, _, _, _ := newRetrievalFixture()
	planID := primitive.NewObjectID()

	if err := svc.ActivatePlan(context.Background(), primitive.NewObjectID(), planID); err != nil {
		t.Fatalf("ActivatePlan() error = %v", err)
	}
	if len(planRepo.activated) != 1 || planRepo.activated[0] != planID {
		t.Error("plan not activated")
	}
}

func TestUpdateActivityCompletion_StampsCompletedAt(t *testing.T) {
	svc, _, _, activityRepo, _, _, _, _ := newRetrievalFixture()
	done := true

	err := svc.UpdateActivityCompletion(context.Background(), primitive.NewObjectID(), repository.ActivityCompletionPatch{IsCompleted: &done})
	if err != nil {
		t.Fatalf("UpdateActivityCompletion() error = %v", err)
	}
	if len(activityRepo.completions) != 1 {
		t.Fatalf("completions = %d, want 1", len(activityRepo.completions))
	}
	if activityRepo.completions[0].CompletedAt == nil {
		t.Error("completion timestamp must be stamped when marking complete")
	}
}

func TestUpdateActivityCompletion_PartialPatch(t *testing.T) {
	svc, _, _, activityRepo, _, _, _, _ := newRetrievalFixture()
	pct := 40.0

	err := svc.UpdateActivityCompletion(context.Background(), primitive.NewObjectID(), repository.ActivityCompletionPatch{CompletionPercent: &pct})
	if err != nil {
		t.Fatalf("UpdateActivityCompletion() error = %v", err)
	}
	patch := activityRepo.completions[0]
	if patch.CompletedAt != nil {
		t.Error("partial progress must not stamp a completion time")
	}
	if patch.CompletionPercent == nil || *patch.CompletionPercent != 40 {
		t.Error("completion percent not forwarded")
	}
}

func TestMarkInsightAsRead(t *testing.T) {
	svc, _, _, _, insightRepo, _, _, _ := newRetrievalFixture()
	id := primitive.NewObjectID()

	if err := svc.MarkInsightAsRead(context.Background(), id); err != nil {
		t.Fatalf("MarkInsightAsRead() error = %v", err)
	}
	if len(insightRepo.marked) != 1 || insightRepo.marked[0] != id {
		t.Error("insight not marked read")
	}
}
