package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleStatus is the lifecycle state of a single day's schedule.
type ScheduleStatus string

const (
	ScheduleStatusPending    ScheduleStatus = "pending"
	ScheduleStatusInProgress ScheduleStatus = "in_progress"
	ScheduleStatusCompleted  ScheduleStatus = "completed"
	ScheduleStatusSkipped    ScheduleStatus = "skipped"
	ScheduleStatusModified   ScheduleStatus = "modified"
)

// DailySchedule is one calendar day's structure for a user, optionally
// scoped to a plan. ScheduleDate is a plain YYYY-MM-DD string so that
// inclusive range filters stay lexicographic, matching how the dashboards
// query it. DayOfWeek is the lowercase English weekday name derived from
// the date.
type DailySchedule struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID  `bson:"user_id" json:"user_id"`
	PlanID             *primitive.ObjectID `bson:"plan_id,omitempty" json:"plan_id,omitempty"`
	ScheduleDate       string              `bson:"schedule_date" json:"schedule_date"`
	DayOfWeek          string              `bson:"day_of_week" json:"day_of_week"`
	DayType            string              `bson:"day_type" json:"day_type"`
	Theme              string              `bson:"theme,omitempty" json:"theme,omitempty"`
	Activities         []map[string]any    `bson:"activities" json:"activities"`
	NutritionPlan      map[string]any      `bson:"nutrition_plan" json:"nutrition_plan"`
	HydrationPlan      map[string]any      `bson:"hydration_plan" json:"hydration_plan"`
	RecoveryActivities []map[string]any    `bson:"recovery_activities" json:"recovery_activities"`
	Status             ScheduleStatus      `bson:"status" json:"status"`
	CompletionPercent  float64             `bson:"completion_percentage" json:"completion_percentage"`
	EnergyLevel        *int                `bson:"energy_level,omitempty" json:"energy_level,omitempty"`
	DifficultyRating   *int                `bson:"difficulty_rating,omitempty" json:"difficulty_rating,omitempty"`
	SatisfactionRating *int                `bson:"satisfaction_rating,omitempty" json:"satisfaction_rating,omitempty"`
	UserNotes          string              `bson:"user_notes,omitempty" json:"user_notes,omitempty"`
	CreatedAt          time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at" json:"updated_at"`
}
