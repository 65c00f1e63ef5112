package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus is the lifecycle state of one AI interaction record.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusFailed    SessionStatus = "failed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Session records a single AI interaction: what the user asked, what the
// model answered, and what content was generated from it.
type Session struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID              primitive.ObjectID  `bson:"user_id" json:"user_id"`
	SessionType         string              `bson:"session_type" json:"session_type"`
	SessionPurpose      string              `bson:"session_purpose" json:"session_purpose"`
	UserInput           string              `bson:"user_input" json:"user_input"`
	AIResponse          string              `bson:"ai_response" json:"ai_response"`
	ConversationHistory []map[string]any    `bson:"conversation_history" json:"conversation_history"`
	GeneratedContent    map[string]any      `bson:"generated_content" json:"generated_content"`
	RelatedPlanID       *primitive.ObjectID `bson:"related_plan_id,omitempty" json:"related_plan_id,omitempty"`
	RelatedGoalID       *primitive.ObjectID `bson:"related_goal_id,omitempty" json:"related_goal_id,omitempty"`
	AIModel             string              `bson:"ai_model" json:"ai_model"`
	GenerationParams    map[string]any      `bson:"generation_parameters" json:"generation_parameters"`
	ProcessingTimeMs    *int                `bson:"processing_time_ms,omitempty" json:"processing_time_ms,omitempty"`
	TokensUsed          *int                `bson:"tokens_used,omitempty" json:"tokens_used,omitempty"`
	Status              SessionStatus       `bson:"status" json:"status"`
	UserSatisfaction    *int                `bson:"user_satisfaction,omitempty" json:"user_satisfaction,omitempty"`
	CreatedAt           time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time           `bson:"updated_at" json:"updated_at"`
}
