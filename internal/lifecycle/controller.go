package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Controller owns the authoritative in-memory note collection for the
// signed-in owner, the currently open draft (at most one), and the
// parameters of the derived view. Every mutation goes through it.
//
// Repository calls complete asynchronously from the caller's point of view,
// so all state is guarded by a mutex and load responses are gated on a
// sequence number: a delayed response for a superseded load or a previous
// owner is discarded rather than overwriting newer state.
type Controller struct {
	mu   sync.Mutex
	repo Repository
	caps Capabilities
	log  *slog.Logger

	owner      string
	collection []Note
	draft      *Draft
	query      string
	sortDir    SortDirection
	scope      Scope

	loadSeq  uint64
	deleting map[string]struct{}
}

// NewController creates a controller with no owner loaded.
func NewController(repo Repository, caps Capabilities, log *slog.Logger) *Controller {
	return &Controller{
		repo:     repo,
		caps:     caps,
		log:      log,
		deleting: make(map[string]struct{}),
	}
}

// translate folds unknown errors into ErrRepository while letting the
// package taxonomy pass through untouched.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUpload),
		errors.Is(err, ErrRepository):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrRepository, err)
	}
}

// Load fetches all notes for ownerID under the current scope and replaces
// the collection. A response that arrives after a newer Load (or after the
// owner changed) is dropped.
func (c *Controller) Load(ctx context.Context, ownerID string) error {
	c.mu.Lock()
	if c.owner != ownerID {
		// A previous owner's unsaved draft must not survive into the
		// new session.
		c.draft = nil
	}
	c.owner = ownerID
	c.loadSeq++
	seq := c.loadSeq
	scope := c.scope
	c.mu.Unlock()

	fetched, err := c.repo.ListForOwner(ctx, ownerID, scope)
	if err != nil {
		c.log.Error("load notes", "error", err, "owner_id", ownerID)
		return translate(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.loadSeq || c.owner != ownerID {
		c.log.Debug("discarding stale load response", "owner_id", ownerID)
		return nil
	}

	c.collection = fetched
	return nil
}

// OpenDraft copies an existing note's editable fields into a fresh draft.
// Any draft already open is discarded.
func (c *Controller) OpenDraft(noteID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(noteID)
	if i < 0 {
		return ErrNotFound
	}

	n := c.collection[i]
	c.draft = &Draft{
		NoteID:          n.ID,
		Title:           n.Title,
		Body:            n.Body,
		IsFavorite:      n.IsFavorite,
		IsVoiceRecorded: n.IsVoiceRecorded,
		Images:          append([]string(nil), n.Images...),
	}
	return nil
}

// OpenNewDraft starts an empty draft for a new note, optionally seeded
// with a speech transcript. Any draft already open is discarded.
func (c *Controller) OpenNewDraft(transcript string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = &Draft{
		Body:            transcript,
		IsVoiceRecorded: transcript != "",
	}
}

// CloseDraft discards the open draft without saving.
func (c *Controller) CloseDraft() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = nil
}

// SetDraftTitle mutates the in-progress draft only; validation is deferred
// to save.
func (c *Controller) SetDraftTitle(title string) error {
	return c.editDraft(func(d *Draft) { d.Title = title })
}

// SetDraftBody mutates the in-progress draft only.
func (c *Controller) SetDraftBody(body string) error {
	return c.editDraft(func(d *Draft) { d.Body = body })
}

// ToggleDraftFavorite flips the draft's favorite flag. The collection is
// untouched until the draft is saved.
func (c *Controller) ToggleDraftFavorite() error {
	return c.editDraft(func(d *Draft) { d.IsFavorite = !d.IsFavorite })
}

// AttachImages appends raw inline payloads to the draft. Uploading is
// deferred to save time so abandoned drafts leave no orphaned assets.
func (c *Controller) AttachImages(payloads ...string) error {
	return c.editDraft(func(d *Draft) { d.Images = append(d.Images, payloads...) })
}

// RemoveImage removes the draft image at index i, whether it is a hosted
// URL or a pending raw payload.
func (c *Controller) RemoveImage(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return ErrNoDraft
	}
	if i < 0 || i >= len(c.draft.Images) {
		return ErrImageIndex
	}
	c.draft.Images = slices.Delete(c.draft.Images, i, i+1)
	return nil
}

func (c *Controller) editDraft(edit func(*Draft)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return ErrNoDraft
	}
	edit(c.draft)
	return nil
}

// SaveDraft validates the open draft, resolves its images, and persists it
// through the repository. On success the saved note replaces or is appended
// to the collection and the draft is cleared. On any failure the draft is
// preserved so the user's edits are not lost.
func (c *Controller) SaveDraft(ctx context.Context) (*Note, error) {
	c.mu.Lock()
	if c.draft == nil {
		c.mu.Unlock()
		return nil, ErrNoDraft
	}
	d := c.draft.clone()
	owner := c.owner
	c.mu.Unlock()

	title := strings.TrimSpace(d.Title)
	body := strings.TrimSpace(d.Body)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if body == "" {
		return nil, fmt.Errorf("%w: body must not be empty", ErrValidation)
	}

	images, err := c.resolveImages(ctx, d.Images)
	if err != nil {
		return nil, err
	}

	fields := NoteFields{
		OwnerID:         owner,
		Title:           title,
		Body:            body,
		IsFavorite:      d.IsFavorite,
		IsVoiceRecorded: d.IsVoiceRecorded,
		Images:          images,
	}

	var saved *Note
	if d.NoteID == "" {
		saved, err = c.repo.Create(ctx, fields)
	} else {
		saved, err = c.repo.Update(ctx, d.NoteID, fields)
	}
	if err != nil {
		c.log.Error("save draft", "error", err, "owner_id", owner)
		return nil, translate(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A save that lands after the owner changed must not leak into the
	// new session's collection.
	if c.owner != owner {
		return saved, nil
	}

	if i := c.indexOf(saved.ID); i >= 0 {
		c.collection[i] = *saved
	} else {
		c.collection = append(c.collection, *saved)
	}

	// Clear the draft unless a newer one replaced it mid-save.
	if c.draft != nil && c.draft.NoteID == d.NoteID {
		c.draft = nil
	}

	return saved, nil
}

// resolveImages passes hosted URLs through unchanged and uploads raw
// payloads concurrently, preserving the original order. The fan-in fails
// fast on the first upload failure; nothing is persisted in that case.
func (c *Controller) resolveImages(ctx context.Context, images []string) ([]string, error) {
	if len(images) == 0 {
		return []string{}, nil
	}

	resolved := make([]string, len(images))
	g, ctx := errgroup.WithContext(ctx)

	for i, img := range images {
		if isHostedURL(img) {
			resolved[i] = img
			continue
		}

		g.Go(func() error {
			url, err := c.repo.UploadAsset(ctx, img)
			if err != nil {
				return err
			}
			resolved[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.log.Error("image upload", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return resolved, nil
}

func isHostedURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// DeleteNote removes the note locally right away and reconciles with the
// repository. On repository failure the note is restored at its original
// position and the error surfaced. A second delete for the same id while
// the first is in flight is an idempotent no-op.
func (c *Controller) DeleteNote(ctx context.Context, id string) error {
	c.mu.Lock()
	if _, inFlight := c.deleting[id]; inFlight {
		c.mu.Unlock()
		return nil
	}
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	removed := c.collection[idx]
	c.deleting[id] = struct{}{}
	c.collection = slices.Delete(c.collection, idx, idx+1)
	c.mu.Unlock()

	err := c.repo.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.deleting, id)

	if err != nil && !errors.Is(err, ErrNotFound) {
		// Roll back the optimistic removal.
		if idx > len(c.collection) {
			idx = len(c.collection)
		}
		c.collection = slices.Insert(c.collection, idx, removed)
		c.log.Error("delete note", "error", err, "note_id", id)
		return translate(err)
	}

	// Already absent in the store: the local removal stands.
	return nil
}

// RenameNote applies an inline rename locally right away and persists it
// through the repository. On failure the previous title is restored.
func (c *Controller) RenameNote(ctx context.Context, id, newTitle string) error {
	title := strings.TrimSpace(newTitle)
	if title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	prev := c.collection[idx]
	c.collection[idx].Title = title

	fields := NoteFields{
		OwnerID:         prev.OwnerID,
		Title:           title,
		Body:            prev.Body,
		IsFavorite:      prev.IsFavorite,
		IsVoiceRecorded: prev.IsVoiceRecorded,
		Images:          append([]string(nil), prev.Images...),
	}
	c.mu.Unlock()

	updated, err := c.repo.Update(ctx, id, fields)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if i := c.indexOf(id); i >= 0 {
			c.collection[i].Title = prev.Title
		}
		c.log.Error("rename note", "error", err, "note_id", id)
		return translate(err)
	}

	if i := c.indexOf(id); i >= 0 {
		c.collection[i] = *updated
	}
	return nil
}

// SetQuery sets the substring filter for the derived view.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

// SetSortDirection sets the ordering of the derived view.
func (c *Controller) SetSortDirection(dir SortDirection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortDir = dir
}

// SetScope switches between all notes and favorites only. The caller is
// expected to Load again; the repository honors scope at fetch time.
func (c *Controller) SetScope(scope Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scope = scope
}

// View returns the collection filtered by the current query and ordered by
// the current sort direction. The result is freshly derived on every call.
func (c *Controller) View() []Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DeriveView(c.collection, c.query, c.sortDir)
}

// Draft returns a copy of the open draft, or nil when none is open.
func (c *Controller) Draft() *Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return nil
	}
	cp := c.draft.clone()
	return &cp
}

// Collection returns a copy of the authoritative collection.
func (c *Controller) Collection() []Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Note(nil), c.collection...)
}

// indexOf must be called with the mutex held.
func (c *Controller) indexOf(id string) int {
	return slices.IndexFunc(c.collection, func(n Note) bool { return n.ID == id })
}
