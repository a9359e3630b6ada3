package notes

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Note represents a persisted note owned by a single user.
// CreatedAt is set once at creation and never mutated.
type Note struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	UserID          bson.ObjectID `bson:"user_id" json:"userId" example:"683cdb8aa96ad71e8e075bd0"`
	Title           string        `bson:"title" json:"title" validate:"required" example:"Groceries"`
	Content         string        `bson:"content" json:"noteContent" validate:"required" example:"Milk, eggs, coffee"`
	IsFavorite      bool          `bson:"is_favorite" json:"isFavorite" example:"false"`
	IsVoiceRecorded bool          `bson:"is_voice_recorded" json:"noteIsRecorded" example:"false"`
	Images          []string      `bson:"images" json:"images"`
	CreatedAt       time.Time     `bson:"created_at" json:"creationDate" example:"2025-06-01T23:00:26.005703677Z"`
}

// NoteFields carries the editable fields of a note through create and update.
// Images entries are hosted URLs by the time they reach the repository.
type NoteFields struct {
	Title           string
	Content         string
	IsFavorite      bool
	IsVoiceRecorded bool
	Images          []string
}

// CreateNoteRequest represents a note creation request
type CreateNoteRequest struct {
	UserID          string   `json:"userId" validate:"required" example:"683cdb8aa96ad71e8e075bd0"`
	Title           string   `json:"title" validate:"required" example:"Groceries"`
	Content         string   `json:"noteContent" validate:"required" example:"Milk, eggs, coffee"`
	IsFavorite      bool     `json:"isFavorite" example:"false"`
	IsVoiceRecorded bool     `json:"noteIsRecorded" example:"false"`
	Images          []string `json:"images"`
}

// UpdateNoteRequest represents a full note update (PUT semantics).
// Images entries may be hosted URLs (kept as-is) or raw inline payloads
// (uploaded before persistence).
type UpdateNoteRequest struct {
	Title           string   `json:"title" validate:"required" example:"Groceries"`
	Content         string   `json:"noteContent" validate:"required" example:"Milk, eggs, oat milk"`
	IsFavorite      bool     `json:"isFavorite" example:"true"`
	IsVoiceRecorded bool     `json:"noteIsRecorded" example:"false"`
	Images          []string `json:"images"`
}
