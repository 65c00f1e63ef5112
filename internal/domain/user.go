package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RolePatient   Role = "patient"
	RoleClinician Role = "clinician"
)

// User represents an account in the system. All generated health content
// (plans, schedules, activities, insights, goals, recommendations, sessions)
// is owned by exactly one user.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // Should be unique
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}

func (u *User) IsClinician() bool {
	return u.Role == RoleClinician
}
