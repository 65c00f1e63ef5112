package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HealthScore is an AI-produced assessment of the user's overall health,
// generated from free-text input and optionally uploaded documents (lab
// reports etc.). UploadedFiles holds the object-store keys of those
// documents, not the documents themselves.
type HealthScore struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              primitive.ObjectID `bson:"user_id" json:"user_id"`
	HealthScore         int                `bson:"health_score" json:"health_score"`
	Analysis            string             `bson:"analysis" json:"analysis"`
	Recommendations     []string           `bson:"recommendations" json:"recommendations"`
	UserInput           string             `bson:"user_input,omitempty" json:"user_input,omitempty"`
	UploadedFiles       []string           `bson:"uploaded_files" json:"uploaded_files"`
	VoiceTranscript     string             `bson:"voice_transcript,omitempty" json:"voice_transcript,omitempty"`
	AIProvider          string             `bson:"ai_provider" json:"ai_provider"`
	GenerationTimestamp time.Time          `bson:"generation_timestamp" json:"generation_timestamp"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}
