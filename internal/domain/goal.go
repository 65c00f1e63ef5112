package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalPriority ranks a goal's importance.
type GoalPriority string

const (
	GoalPriorityLow    GoalPriority = "low"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityHigh   GoalPriority = "high"
)

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
	GoalStatusArchived  GoalStatus = "archived"
)

// Goal is a target derived from a plan. StartDate/TargetDate/AchievedDate
// are YYYY-MM-DD strings.
type Goal struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"user_id" json:"user_id"`
	GoalName        string              `bson:"goal_name" json:"goal_name"`
	GoalType        string              `bson:"goal_type" json:"goal_type"`
	GoalCategory    string              `bson:"goal_category" json:"goal_category"`
	PriorityLevel   GoalPriority        `bson:"priority_level" json:"priority_level"`
	Description     string              `bson:"description" json:"description"`
	TargetValue     *float64            `bson:"target_value,omitempty" json:"target_value,omitempty"`
	TargetUnit      string              `bson:"target_unit,omitempty" json:"target_unit,omitempty"`
	CurrentValue    *float64            `bson:"current_value,omitempty" json:"current_value,omitempty"`
	CurrentUnit     string              `bson:"current_unit,omitempty" json:"current_unit,omitempty"`
	StartDate       string              `bson:"start_date" json:"start_date"`
	TargetDate      string              `bson:"target_date" json:"target_date"`
	AchievedDate    string              `bson:"achieved_date,omitempty" json:"achieved_date,omitempty"`
	ProgressPercent float64             `bson:"progress_percentage" json:"progress_percentage"`
	Milestones      []map[string]any    `bson:"milestones" json:"milestones"`
	IsAIGenerated   bool                `bson:"is_ai_generated" json:"is_ai_generated"`
	AIReasoning     string              `bson:"ai_reasoning,omitempty" json:"ai_reasoning,omitempty"`
	RelatedPlanID   *primitive.ObjectID `bson:"related_plan_id,omitempty" json:"related_plan_id,omitempty"`
	Status          GoalStatus          `bson:"status" json:"status"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}
