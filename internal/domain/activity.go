package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Intensity is a coarse effort level for an activity.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Activity is a single schedulable unit of work (an exercise, a task).
// ScheduledDate is YYYY-MM-DD and ScheduledTime is HH:MM; both are plain
// strings so that ordering and range filters stay lexicographic. An
// activity with no scheduled time sorts as "00:00".
type Activity struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID  `bson:"user_id" json:"user_id"`
	PlanID            *primitive.ObjectID `bson:"plan_id,omitempty" json:"plan_id,omitempty"`
	ScheduleID        *primitive.ObjectID `bson:"schedule_id,omitempty" json:"schedule_id,omitempty"`
	ActivityName      string              `bson:"activity_name" json:"activity_name"`
	ActivityType      string              `bson:"activity_type" json:"activity_type"`
	ActivityCategory  string              `bson:"activity_category,omitempty" json:"activity_category,omitempty"`
	TemplateID        string              `bson:"template_id,omitempty" json:"template_id,omitempty"`
	Description       string              `bson:"description,omitempty" json:"description,omitempty"`
	Instructions      []string            `bson:"instructions" json:"instructions"`
	Equipment         []string            `bson:"equipment" json:"equipment"`
	DurationMinutes   *int                `bson:"duration_minutes,omitempty" json:"duration_minutes,omitempty"`
	IntensityLevel    Intensity           `bson:"intensity_level" json:"intensity_level"`
	ScheduledTime     string              `bson:"scheduled_time,omitempty" json:"scheduled_time,omitempty"`
	ScheduledDate     string              `bson:"scheduled_date,omitempty" json:"scheduled_date,omitempty"`
	WeekNumber        *int                `bson:"week_number,omitempty" json:"week_number,omitempty"`
	DayOfWeek         *int                `bson:"day_of_week,omitempty" json:"day_of_week,omitempty"`
	ActivityData      map[string]any      `bson:"activity_data" json:"activity_data"`
	Modifications     map[string]any      `bson:"modifications" json:"modifications"`
	Benefits          []string            `bson:"benefits" json:"benefits"`
	Prerequisites     []string            `bson:"prerequisites" json:"prerequisites"`
	Alternatives      []string            `bson:"alternatives" json:"alternatives"`
	IsCompleted       bool                `bson:"is_completed" json:"is_completed"`
	CompletionPercent float64             `bson:"completion_percentage" json:"completion_percentage"`
	CompletedAt       *time.Time          `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	ActualDuration    *int                `bson:"actual_duration,omitempty" json:"actual_duration,omitempty"`
	DifficultyRating  *int                `bson:"difficulty_rating,omitempty" json:"difficulty_rating,omitempty"`
	SatisfactionRate  *int                `bson:"satisfaction_rating,omitempty" json:"satisfaction_rating,omitempty"`
	EnergyLevelBefore *int                `bson:"energy_level_before,omitempty" json:"energy_level_before,omitempty"`
	EnergyLevelAfter  *int                `bson:"energy_level_after,omitempty" json:"energy_level_after,omitempty"`
	UserNotes         string              `bson:"user_notes,omitempty" json:"user_notes,omitempty"`
	Metrics           map[string]any      `bson:"metrics" json:"metrics"`
	Tags              []string            `bson:"tags" json:"tags"`
	CreatedAt         time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `bson:"updated_at" json:"updated_at"`
}
