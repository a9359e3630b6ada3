package notes

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines the interface for notes store operations
type Repository interface {
	Create(ctx context.Context, n *Note) error
	ListByOwner(ctx context.Context, userID bson.ObjectID, favoritesOnly bool) ([]*Note, error)
	Update(ctx context.Context, noteID bson.ObjectID, fields NoteFields) (*Note, error)
	Delete(ctx context.Context, noteID bson.ObjectID) error
}

// Uploader sends a raw inline image payload to the external asset host and
// returns a stable retrieval URL. Uploads are safely retryable; uploading the
// same payload twice is wasteful but not unsafe.
type Uploader interface {
	Upload(ctx context.Context, payload string) (string, error)
}
