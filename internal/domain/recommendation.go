package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendationPriority ranks how urgently a recommendation should be acted on.
type RecommendationPriority string

const (
	RecommendationPriorityLow    RecommendationPriority = "low"
	RecommendationPriorityMedium RecommendationPriority = "medium"
	RecommendationPriorityHigh   RecommendationPriority = "high"
	RecommendationPriorityUrgent RecommendationPriority = "urgent"
)

// Recommendation is an actionable suggestion derived from a plan.
//
// IsAccepted is a tri-state: nil means the user has not decided yet, and
// only that literal unset state counts as "undecided"; an explicit false
// (declined) does not. The pointer with omitempty keeps the field absent
// in storage until a decision is made.
type Recommendation struct {
	ID                 primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID     `bson:"user_id" json:"user_id"`
	RecommendationType string                 `bson:"recommendation_type" json:"recommendation_type"`
	Category           string                 `bson:"category" json:"category"`
	Priority           RecommendationPriority `bson:"priority" json:"priority"`
	Title              string                 `bson:"title" json:"title"`
	Description        string                 `bson:"description" json:"description"`
	Reasoning          string                 `bson:"reasoning" json:"reasoning"`
	ActionItems        []string               `bson:"action_items" json:"action_items"`
	ExpectedBenefits   []string               `bson:"expected_benefits" json:"expected_benefits"`
	ValidFrom          *time.Time             `bson:"valid_from,omitempty" json:"valid_from,omitempty"`
	ValidUntil         *time.Time             `bson:"valid_until,omitempty" json:"valid_until,omitempty"`
	RelatedPlanID      *primitive.ObjectID    `bson:"related_plan_id,omitempty" json:"related_plan_id,omitempty"`
	RelatedGoalID      *primitive.ObjectID    `bson:"related_goal_id,omitempty" json:"related_goal_id,omitempty"`
	IsAccepted         *bool                  `bson:"is_accepted,omitempty" json:"is_accepted,omitempty"`
	IsImplemented      bool                   `bson:"is_implemented" json:"is_implemented"`
	ImplementationDate *time.Time             `bson:"implementation_date,omitempty" json:"implementation_date,omitempty"`
	UserFeedback       string                 `bson:"user_feedback,omitempty" json:"user_feedback,omitempty"`
	GeneratedAt        time.Time              `bson:"generated_at" json:"generated_at"`
	GenerationModel    string                 `bson:"generation_model,omitempty" json:"generation_model,omitempty"`
	ConfidenceScore    float64                `bson:"confidence_score" json:"confidence_score"` // 0..1
	CreatedAt          time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time              `bson:"updated_at" json:"updated_at"`
}
