package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsightPriority ranks how urgently an insight should be surfaced.
type InsightPriority string

const (
	InsightPriorityLow      InsightPriority = "low"
	InsightPriorityMedium   InsightPriority = "medium"
	InsightPriorityHigh     InsightPriority = "high"
	InsightPriorityCritical InsightPriority = "critical"
)

// Insight is a generated observation about the user's plan or behaviour,
// produced as a side effect of saving a plan.
type Insight struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"user_id" json:"user_id"`
	InsightType     string              `bson:"insight_type" json:"insight_type"`
	InsightCategory string              `bson:"insight_category" json:"insight_category"`
	PriorityLevel   InsightPriority     `bson:"priority_level" json:"priority_level"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description" json:"description"`
	Analysis        string              `bson:"analysis" json:"analysis"`
	Recommendations []string            `bson:"recommendations" json:"recommendations"`
	SupportingData  map[string]any      `bson:"supporting_data" json:"supporting_data"`
	RelatedPlanID   *primitive.ObjectID `bson:"related_plan_id,omitempty" json:"related_plan_id,omitempty"`
	IsRead          bool                `bson:"is_read" json:"is_read"`
	IsAcknowledged  bool                `bson:"is_acknowledged" json:"is_acknowledged"`
	UserFeedback    string              `bson:"user_feedback,omitempty" json:"user_feedback,omitempty"`
	ActionTaken     string              `bson:"action_taken,omitempty" json:"action_taken,omitempty"`
	GeneratedAt     time.Time           `bson:"generated_at" json:"generated_at"`
	GenerationModel string              `bson:"generation_model,omitempty" json:"generation_model,omitempty"`
	ConfidenceScore float64             `bson:"confidence_score" json:"confidence_score"` // 0..1
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}
