package lifecycle

import "context"

// Repository is the boundary the controller talks to. It wraps the note
// store and the asset uploader behind the operations the lifecycle drives.
//
// Implementations translate their transport errors into the package
// taxonomy (ErrValidation, ErrNotFound, ErrUpload, ErrRepository); anything
// else is folded into ErrRepository by the controller.
type Repository interface {
	// ListForOwner returns all notes for the owner, restricted by scope.
	ListForOwner(ctx context.Context, ownerID string, scope Scope) ([]Note, error)
	// Create persists a new note and returns it with assigned ID and CreatedAt.
	Create(ctx context.Context, fields NoteFields) (*Note, error)
	// Update replaces a note's editable fields and returns the updated note.
	Update(ctx context.Context, id string, fields NoteFields) (*Note, error)
	// Delete removes a note.
	Delete(ctx context.Context, id string) error
	// UploadAsset uploads one raw inline payload and returns its hosted URL.
	// Safely retryable; no dedup guarantee.
	UploadAsset(ctx context.Context, payload string) (string, error)
}
