package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a user in the system
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	Username     string        `bson:"username" json:"username" example:"ada"`
	Email        string        `bson:"email" json:"email" example:"ada@example.com"`
	AvatarURL    string        `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	PasswordHash string        `bson:"password_hash" json:"-" example:"$2a$12$1234567890"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt" example:"2025-06-01T23:00:26.005703677Z"`
}
