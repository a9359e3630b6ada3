package notes

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"note-scribe/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/sync/errgroup"
)

// Service handles notes business logic
type Service struct {
	repo     Repository
	uploader Uploader
	log      *slog.Logger
}

// NewService creates a new notes service
func NewService(repo Repository, uploader Uploader, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		log:      log,
	}
}

// validateText sanitizes and trim-validates title and content.
// Runs before any upload or repository call so a rejected save has no side effects.
func validateText(title, content string) (string, string, error) {
	cleanTitle := sanitize.Clean(title)
	cleanContent := sanitize.Clean(content)

	if strings.TrimSpace(cleanTitle) == "" {
		return "", "", ErrTitleRequired
	}
	if strings.TrimSpace(cleanContent) == "" {
		return "", "", ErrContentRequired
	}

	return cleanTitle, cleanContent, nil
}

// IsHostedURL reports whether an images entry is already an asset-host URL
// rather than a raw inline payload awaiting upload.
func IsHostedURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// resolveImages partitions images into already-hosted URLs (passed through
// unchanged, never re-uploaded) and raw payloads, uploads the raw ones
// concurrently, and returns the resolved list in the original order.
// If any upload fails the whole operation fails and no note may be persisted.
func (s *Service) resolveImages(ctx context.Context, images []string) ([]string, error) {
	if len(images) == 0 {
		return []string{}, nil
	}

	resolved := make([]string, len(images))
	g, ctx := errgroup.WithContext(ctx)

	for i, img := range images {
		if IsHostedURL(img) {
			resolved[i] = img
			continue
		}

		g.Go(func() error {
			url, err := s.uploader.Upload(ctx, img)
			if err != nil {
				return err
			}
			resolved[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error(ErrUploadFailed.Error(), "error", err)
		return nil, ErrUploadFailed
	}

	return resolved, nil
}

// Create validates the request, uploads any raw images, and persists a new note.
func (s *Service) Create(ctx context.Context, userID bson.ObjectID, req CreateNoteRequest) (*Note, error) {
	title, content, err := validateText(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	images, err := s.resolveImages(ctx, req.Images)
	if err != nil {
		return nil, err
	}

	note := &Note{
		ID:              bson.NewObjectID(),
		UserID:          userID,
		Title:           title,
		Content:         content,
		IsFavorite:      req.IsFavorite,
		IsVoiceRecorded: req.IsVoiceRecorded,
		Images:          images,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.log.Error(ErrCreateNote.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrCreateNote
	}

	return note, nil
}

// List retrieves all notes for a user, optionally restricted to favorites.
func (s *Service) List(ctx context.Context, userID bson.ObjectID, favoritesOnly bool) ([]*Note, error) {
	notesList, err := s.repo.ListByOwner(ctx, userID, favoritesOnly)
	if err != nil {
		s.log.Error(ErrListNotes.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrListNotes
	}

	if notesList == nil {
		notesList = []*Note{}
	}

	return notesList, nil
}

// Update validates the request, uploads any raw images, and replaces the
// note's editable fields. CreatedAt is never touched.
func (s *Service) Update(ctx context.Context, noteID bson.ObjectID, req UpdateNoteRequest) (*Note, error) {
	title, content, err := validateText(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	images, err := s.resolveImages(ctx, req.Images)
	if err != nil {
		return nil, err
	}

	fields := NoteFields{
		Title:           title,
		Content:         content,
		IsFavorite:      req.IsFavorite,
		IsVoiceRecorded: req.IsVoiceRecorded,
		Images:          images,
	}

	updated, err := s.repo.Update(ctx, noteID, fields)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			s.log.Info("note not found for update", "note_id", noteID.Hex())
			return nil, ErrNoteNotFound
		}
		s.log.Error(ErrUpdateNote.Error(), "error", err, "note_id", noteID.Hex())
		return nil, ErrUpdateNote
	}

	return updated, nil
}

// Delete removes a note from the store.
func (s *Service) Delete(ctx context.Context, noteID bson.ObjectID) error {
	if err := s.repo.Delete(ctx, noteID); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			s.log.Info("note not found for delete", "note_id", noteID.Hex())
			return ErrNoteNotFound
		}
		s.log.Error(ErrDeleteNote.Error(), "error", err, "note_id", noteID.Hex())
		return ErrDeleteNote
	}

	return nil
}
