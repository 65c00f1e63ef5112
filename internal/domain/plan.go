package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanType classifies what a generated plan is trying to achieve.
type PlanType string

const (
	PlanTypeDiseaseManagement PlanType = "disease_management"
	PlanTypeWeightLoss        PlanType = "weight_loss"
	PlanTypeMuscleGain        PlanType = "muscle_gain"
	PlanTypeStressManagement  PlanType = "stress_management"
	PlanTypeCardioFitness     PlanType = "cardio_fitness"
	PlanTypeFlexibility       PlanType = "flexibility"
	PlanTypeEnergyBoost       PlanType = "energy_boost"
	PlanTypeLifestyleChange   PlanType = "lifestyle_change"
)

// Difficulty is the plan's intended experience level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// PlanStatus is the lifecycle state of a saved plan. At most one plan per
// user is intended to be active at a time; this is advisory, not enforced
// at write time. Readers always take the most recently created active row.
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusActive    PlanStatus = "active"
	PlanStatusPaused    PlanStatus = "paused"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusCancelled PlanStatus = "cancelled"
	PlanStatusArchived  PlanStatus = "archived"
)

// GenerationParameters records the provenance of one generation call: the
// profile snapshot the classifier saw, the raw prompt, and when it ran.
type GenerationParameters struct {
	UserProfile         UserProfile `bson:"user_profile" json:"user_profile"`
	UserInput           string      `bson:"user_input,omitempty" json:"user_input,omitempty"`
	GenerationTimestamp time.Time   `bson:"generation_timestamp" json:"generation_timestamp"`
}

// Plan is the top-level AI-generated health program for a user. The raw
// payload is kept verbatim in PlanData; the structured substructures are
// extracted copies for direct querying by dashboards.
type Plan struct {
	ID                       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID                   primitive.ObjectID   `bson:"user_id" json:"user_id"`
	PlanName                 string               `bson:"plan_name" json:"plan_name"`
	PlanType                 PlanType             `bson:"plan_type" json:"plan_type"`
	PlanCategory             string               `bson:"plan_category" json:"plan_category"`
	DifficultyLevel          Difficulty           `bson:"difficulty_level" json:"difficulty_level"`
	PlanData                 map[string]any       `bson:"plan_data" json:"plan_data"`
	WeeklyStructure          map[string]any       `bson:"weekly_structure" json:"weekly_structure"`
	DailySchedules           []map[string]any     `bson:"daily_schedules" json:"daily_schedules"`
	NutritionPlan            map[string]any       `bson:"nutrition_plan" json:"nutrition_plan"`
	ExercisePlan             map[string]any       `bson:"exercise_plan" json:"exercise_plan"`
	WellnessActivities       []map[string]any     `bson:"wellness_activities" json:"wellness_activities"`
	DurationWeeks            int                  `bson:"duration_weeks" json:"duration_weeks"`
	EstimatedCaloriesPerDay  *int                 `bson:"estimated_calories_per_day,omitempty" json:"estimated_calories_per_day,omitempty"`
	EquipmentNeeded          []string             `bson:"equipment_needed" json:"equipment_needed"`
	KeyBenefits              []string             `bson:"key_benefits" json:"key_benefits"`
	TargetAudience           string               `bson:"target_audience,omitempty" json:"target_audience,omitempty"`
	Prerequisites            []string             `bson:"prerequisites" json:"prerequisites"`
	Status                   PlanStatus           `bson:"status" json:"status"`
	CurrentWeek              int                  `bson:"current_week" json:"current_week"`
	OverallProgressPercent   float64              `bson:"overall_progress_percentage" json:"overall_progress_percentage"`
	WeeklyComplianceRate     *float64             `bson:"weekly_compliance_rate,omitempty" json:"weekly_compliance_rate,omitempty"`
	MonthlyComplianceRate    *float64             `bson:"monthly_compliance_rate,omitempty" json:"monthly_compliance_rate,omitempty"`
	GeneratedAt              time.Time            `bson:"generated_at" json:"generated_at"`
	GenerationModel          string               `bson:"generation_model,omitempty" json:"generation_model,omitempty"`
	GenerationParameters     GenerationParameters `bson:"generation_parameters" json:"generation_parameters"`
	UserInputPrompt          string               `bson:"user_input_prompt,omitempty" json:"user_input_prompt,omitempty"`
	CreatedAt                time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt                time.Time            `bson:"updated_at" json:"updated_at"`
}
