package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"vitacare/health-app/internal/domain"
	"vitacare/health-app/internal/payload"
	"vitacare/health-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	dateLayout = "2006-01-02"

	// Model name recorded on derived insight/goal/recommendation records,
	// which are synthesized locally rather than by the upstream AI.
	derivationModel = "ai-integration-service"

	defaultPlanName     = "AI Generated Health Plan"
	defaultActivityName = "AI Generated Activity"
	defaultProfileAge   = 30
)

// IntegrationService persists a raw AI-generated plan payload and fans it
// out into the related record families. Only the plan save itself is
// strict; every derivative step is best-effort.
type IntegrationService interface {
	SaveGeneratedHealthPlan(ctx context.Context, userID primitive.ObjectID, planData payload.Plan, profile domain.UserProfile, aiModel, userInput string) (*domain.Plan, error)
	SaveAISession(ctx context.Context, userID primitive.ObjectID, sessionType, sessionPurpose, userInput, aiResponse string, generatedContent map[string]any, aiModel string, relatedPlanID *primitive.ObjectID) (*domain.Session, error)
}

// integrationService implements the IntegrationService interface.
type integrationService struct {
	planRepo     repository.PlanRepository
	scheduleRepo repository.ScheduleRepository
	activityRepo repository.ActivityRepository
	insightRepo  repository.InsightRepository
	goalRepo     repository.GoalRepository
	recRepo      repository.RecommendationRepository
	sessionRepo  repository.SessionRepository
}

// NewIntegrationService creates a new instance of integrationService.
func NewIntegrationService(
	planRepo repository.PlanRepository,
	scheduleRepo repository.ScheduleRepository,
	activityRepo repository.ActivityRepository,
	insightRepo repository.InsightRepository,
	goalRepo repository.GoalRepository,
	recRepo repository.RecommendationRepository,
	sessionRepo repository.SessionRepository,
) IntegrationService {
	return &integrationService{
		planRepo:     planRepo,
		scheduleRepo: scheduleRepo,
		activityRepo: activityRepo,
		insightRepo:  insightRepo,
		goalRepo:     goalRepo,
		recRepo:      recRepo,
		sessionRepo:  sessionRepo,
	}
}

// === Classification rules ===
//
// Each classifier is an ordered rule list evaluated top to bottom with a
// fixed fallback. The order is part of the contract: the first matching
// rule wins.

var planTypeRules = []struct {
	keywords []string
	result   domain.PlanType
}{
	{[]string{"diabetes", "blood sugar"}, domain.PlanTypeDiseaseManagement},
	{[]string{"weight", "lose"}, domain.PlanTypeWeightLoss},
	{[]string{"muscle", "strength"}, domain.PlanTypeMuscleGain},
	{[]string{"stress", "anxiety"}, domain.PlanTypeStressManagement},
	{[]string{"cardio", "fitness"}, domain.PlanTypeCardioFitness},
	{[]string{"flexibility", "yoga"}, domain.PlanTypeFlexibility},
	{[]string{"energy", "tired"}, domain.PlanTypeEnergyBoost},
}

var planCategoryRules = []struct {
	condition string
	result    string
}{
	{"diabetes", "diabetes_management"},
	{"hypertension", "cardiovascular_health"},
	{"obesity", "weight_management"},
}

// determinePlanType prefers an explicit plan_type on the payload and
// otherwise classifies the user's free-text input by substring match.
func determinePlanType(planData payload.Plan, userInput string) domain.PlanType {
	if t := planData.String("plan_type"); t != "" {
		return domain.PlanType(t)
	}
	input := strings.ToLower(userInput)
	for _, rule := range planTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(input, kw) {
				return rule.result
			}
		}
	}
	return domain.PlanTypeLifestyleChange
}

// determinePlanCategory prefers an explicit category on the payload and
// otherwise derives one from the user's chronic conditions.
func determinePlanCategory(planData payload.Plan, profile domain.UserProfile) string {
	if c := planData.String("category"); c != "" {
		return c
	}
	for _, rule := range planCategoryRules {
		for _, condition := range profile.ChronicConditions {
			if condition == rule.condition {
				return rule.result
			}
		}
	}
	return "general_health"
}

// determineDifficultyLevel prefers an explicit difficulty on the payload
// (lowercased) and otherwise derives one from age and condition count.
// An unparseable age counts as 30.
func determineDifficultyLevel(planData payload.Plan, profile domain.UserProfile) domain.Difficulty {
	if d := planData.String("difficulty"); d != "" {
		return domain.Difficulty(strings.ToLower(d))
	}

	age, err := strconv.Atoi(strings.TrimSpace(profile.Age))
	if err != nil {
		age = defaultProfileAge
	}
	conditions := len(profile.ChronicConditions)

	if age < 25 && conditions == 0 {
		return domain.DifficultyBeginner
	}
	if age > 50 || conditions > 2 {
		return domain.DifficultyAdvanced
	}
	return domain.DifficultyIntermediate
}

// dayOfWeekFromDate returns the lowercase English weekday for a
// YYYY-MM-DD date string, defaulting to monday when the date is missing
// or unparseable.
func dayOfWeekFromDate(dateString string) string {
	if dateString == "" {
		return "monday"
	}
	t, err := time.Parse(dateLayout, dateString)
	if err != nil {
		return "monday"
	}
	return strings.ToLower(t.Weekday().String())
}

// === Orchestration ===

// SaveGeneratedHealthPlan normalizes the raw payload into a Plan record,
// saves it, and then fans out the derivative records. The plan save is the
// only hard failure; each derivative step is attempted independently and a
// failure there is logged and skipped, never rolled back. The returned
// plan is the success signal regardless of derivative outcomes.
func (s *integrationService) SaveGeneratedHealthPlan(ctx context.Context, userID primitive.ObjectID, planData payload.Plan, profile domain.UserProfile, aiModel, userInput string) (*domain.Plan, error) {
	now := time.Now().UTC()

	planName := planData.String("title", "plan_name")
	if planName == "" {
		planName = defaultPlanName
	}

	plan := &domain.Plan{
		UserID:             userID,
		PlanName:           planName,
		PlanType:           determinePlanType(planData, userInput),
		PlanCategory:       determinePlanCategory(planData, profile),
		DifficultyLevel:    determineDifficultyLevel(planData, profile),
		PlanData:           planData,
		WeeklyStructure:    planData.Object("weekly_structure"),
		DailySchedules:     planData.ObjectList("daily_schedules"),
		NutritionPlan:      planData.Object("nutrition_plan", "nutrition_guidelines"),
		ExercisePlan:       planData.Object("exercise_plan"),
		WellnessActivities: planData.ObjectList("wellness_activities"),
		DurationWeeks:      planData.DurationWeeks(),
		EquipmentNeeded:    planData.StringList("equipment_needed", "equipment"),
		KeyBenefits:        planData.StringList("key_benefits", "benefits"),
		TargetAudience:     planData.String("target_audience"),
		Prerequisites:      planData.StringList("prerequisites"),
		Status:             domain.PlanStatusActive,
		CurrentWeek:        1,
		GeneratedAt:        now,
		GenerationModel:    aiModel,
		GenerationParameters: domain.GenerationParameters{
			UserProfile:         profile,
			UserInput:           userInput,
			GenerationTimestamp: now,
		},
		UserInputPrompt: userInput,
	}
	if calories, ok := planData.Int("estimated_calories_per_day", "daily_calories"); ok {
		plan.EstimatedCaloriesPerDay = &calories
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to save generated health plan: %w", err)
	}
	plan.ID = planID

	// Steps below are independent and best-effort. One malformed entry or
	// rejected write must never block the saved plan from being returned.
	s.saveSchedulesFromPlan(ctx, userID, planID, planData)
	s.saveActivitiesFromPlan(ctx, userID, planID, planData)
	s.generateAndSaveInsights(ctx, userID, planID, planData)
	s.generateAndSaveGoals(ctx, userID, planID, planData)
	s.generateAndSaveRecommendations(ctx, userID, planID, planData)

	return plan, nil
}

// saveSchedulesFromPlan persists one DailySchedule per daily_schedules
// entry, linked to the new plan.
func (s *integrationService) saveSchedulesFromPlan(ctx context.Context, userID, planID primitive.ObjectID, planData payload.Plan) {
	for i, entry := range planData.ObjectList("daily_schedules") {
		e := payload.Plan(entry)

		scheduleDate := e.String("date")
		if scheduleDate == "" {
			scheduleDate = time.Now().UTC().Format(dateLayout)
		}
		dayOfWeek := e.String("day_of_week")
		if dayOfWeek == "" {
			dayOfWeek = dayOfWeekFromDate(e.String("date"))
		}
		dayType := e.String("day_type")
		if dayType == "" {
			dayType = "workout"
		}

		schedule := &domain.DailySchedule{
			UserID:             userID,
			PlanID:             &planID,
			ScheduleDate:       scheduleDate,
			DayOfWeek:          dayOfWeek,
			DayType:            dayType,
			Theme:              e.String("theme"),
			Activities:         e.ObjectList("activities"),
			NutritionPlan:      e.Object("nutrition_plan"),
			HydrationPlan:      e.Object("hydration_plan"),
			RecoveryActivities: e.ObjectList("recovery_activities"),
			Status:             domain.ScheduleStatusPending,
		}

		if _, err := s.scheduleRepo.Create(ctx, schedule); err != nil {
			log.Printf("WARN: skipping daily schedule %d for plan %s: %v", i, planID.Hex(), err)
		}
	}
}

// saveActivitiesFromPlan persists one Activity per activities entry,
// linked to the new plan, with absent optional fields defaulted.
func (s *integrationService) saveActivitiesFromPlan(ctx context.Context, userID, planID primitive.ObjectID, planData payload.Plan) {
	for i, entry := range planData.ObjectList("activities") {
		e := payload.Plan(entry)

		name := e.String("title", "name")
		if name == "" {
			name = defaultActivityName
		}
		activityType := e.String("category", "type")
		if activityType == "" {
			activityType = "exercise"
		}
		intensity := e.String("intensity", "intensity_level")
		if intensity == "" {
			intensity = string(domain.IntensityMedium)
		}

		activity := &domain.Activity{
			UserID:           userID,
			PlanID:           &planID,
			ActivityName:     name,
			ActivityType:     activityType,
			ActivityCategory: e.String("category"),
			TemplateID:       e.String("template_id", "id"),
			Description:      e.String("description"),
			Instructions:     e.StringList("instructions"),
			Equipment:        e.StringList("equipment"),
			IntensityLevel:   domain.Intensity(intensity),
			ScheduledTime:    e.String("scheduled_time", "time_slot"),
			ScheduledDate:    e.String("scheduled_date"),
			ActivityData:     entry,
			Modifications:    e.Object("modifications"),
			Benefits:         e.StringList("benefits"),
			Prerequisites:    e.StringList("prerequisites"),
			Alternatives:     e.StringList("alternatives"),
			Metrics:          e.Object("metrics"),
			Tags:             e.StringList("tags"),
			IsCompleted:      false,
		}
		if minutes, ok := e.Int("duration_minutes", "duration"); ok {
			activity.DurationMinutes = &minutes
		}
		if week, ok := e.Int("week_number"); ok {
			activity.WeekNumber = &week
		}
		if day, ok := e.Int("day_of_week"); ok {
			activity.DayOfWeek = &day
		}

		if _, err := s.activityRepo.Create(ctx, activity); err != nil {
			log.Printf("WARN: skipping activity %d for plan %s: %v", i, planID.Hex(), err)
		}
	}
}

// generateAndSaveInsights produces the single plan-health-analysis insight
// every saved plan gets.
func (s *integrationService) generateAndSaveInsights(ctx context.Context, userID, planID primitive.ObjectID, planData payload.Plan) {
	focus := "general health"
	if areas := planData.StringList("focus_areas"); len(areas) > 0 {
		focus = strings.Join(areas, ", ")
	}
	difficulty := planData.String("difficulty")
	if difficulty == "" {
		difficulty = string(domain.DifficultyIntermediate)
	}

	insight := &domain.Insight{
		UserID:          userID,
		InsightType:     "health_analysis",
		InsightCategory: "plan_analysis",
		PriorityLevel:   domain.InsightPriorityMedium,
		Title:           "Plan Health Analysis",
		Description:     "Analysis of your health plan and its alignment with your goals",
		Analysis:        fmt.Sprintf("Your plan focuses on %s and is designed for %s level users.", focus, difficulty),
		Recommendations: []string{
			"Follow the plan consistently for best results",
			"Monitor your progress weekly",
			"Adjust intensity based on your response",
		},
		SupportingData: map[string]any{
			"plan_focus": planData.StringList("focus_areas"),
			"difficulty": planData.String("difficulty"),
		},
		RelatedPlanID:   &planID,
		GeneratedAt:     time.Now().UTC(),
		GenerationModel: derivationModel,
		ConfidenceScore: 0.8,
	}

	if _, err := s.insightRepo.Create(ctx, insight); err != nil {
		log.Printf("WARN: skipping generated insight for plan %s: %v", planID.Hex(), err)
	}
}

// generateAndSaveGoals creates one goal from the payload's primary_goal,
// when declared. Target date is now plus the plan duration.
func (s *integrationService) generateAndSaveGoals(ctx context.Context, userID, planID primitive.ObjectID, planData payload.Plan) {
	primaryGoal := planData.String("primary_goal")
	if primaryGoal == "" {
		return
	}

	now := time.Now().UTC()
	targetDate := now.AddDate(0, 0, planData.DurationWeeks()*7)

	goal := &domain.Goal{
		UserID:        userID,
		GoalName:      primaryGoal,
		GoalType:      "general",
		GoalCategory:  "health_improvement",
		PriorityLevel: domain.GoalPriorityHigh,
		Description:   fmt.Sprintf("Primary goal: %s", primaryGoal),
		StartDate:     now.Format(dateLayout),
		TargetDate:    targetDate.Format(dateLayout),
		Milestones:    []map[string]any{},
		IsAIGenerated: true,
		AIReasoning:   "Generated from your health plan",
		RelatedPlanID: &planID,
		Status:        domain.GoalStatusActive,
	}

	if _, err := s.goalRepo.Create(ctx, goal); err != nil {
		log.Printf("WARN: skipping generated goal for plan %s: %v", planID.Hex(), err)
	}
}

// generateAndSaveRecommendations creates the equipment-preparation
// recommendation when the payload lists needed equipment.
func (s *integrationService) generateAndSaveRecommendations(ctx context.Context, userID, planID primitive.ObjectID, planData payload.Plan) {
	equipment := planData.StringList("equipment_needed")
	if len(equipment) == 0 {
		return
	}

	rec := &domain.Recommendation{
		UserID:             userID,
		RecommendationType: "equipment",
		Category:           "preparation",
		Priority:           domain.RecommendationPriorityMedium,
		Title:              "Equipment Preparation",
		Description:        "Prepare the necessary equipment for your health plan",
		Reasoning:          "Having the right equipment will help you follow your plan effectively",
		ActionItems:        equipment,
		ExpectedBenefits:   []string{"Better plan adherence", "Improved results", "Enhanced safety"},
		RelatedPlanID:      &planID,
		GeneratedAt:        time.Now().UTC(),
		GenerationModel:    derivationModel,
		ConfidenceScore:    0.9,
	}

	if _, err := s.recRepo.Create(ctx, rec); err != nil {
		log.Printf("WARN: skipping generated recommendation for plan %s: %v", planID.Hex(), err)
	}
}

// SaveAISession persists one AI interaction record as completed, with an
// empty conversation history.
func (s *integrationService) SaveAISession(ctx context.Context, userID primitive.ObjectID, sessionType, sessionPurpose, userInput, aiResponse string, generatedContent map[string]any, aiModel string, relatedPlanID *primitive.ObjectID) (*domain.Session, error) {
	if generatedContent == nil {
		generatedContent = map[string]any{}
	}

	session := &domain.Session{
		UserID:              userID,
		SessionType:         sessionType,
		SessionPurpose:      sessionPurpose,
		UserInput:           userInput,
		AIResponse:          aiResponse,
		ConversationHistory: []map[string]any{},
		GeneratedContent:    generatedContent,
		RelatedPlanID:       relatedPlanID,
		AIModel:             aiModel,
		GenerationParams:    map[string]any{},
		Status:              domain.SessionStatusCompleted,
	}

	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to save AI session: %w", err)
	}
	session.ID = sessionID
	return session, nil
}
