package notes

import (
	"context"

	"note-scribe/cmd/server/handlers/handlerutil"
	"note-scribe/internal/services/notes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service defines the interface for the notes service
type Service interface {
	Create(ctx context.Context, userID bson.ObjectID, req notes.CreateNoteRequest) (*notes.Note, error)
	List(ctx context.Context, userID bson.ObjectID, favoritesOnly bool) ([]*notes.Note, error)
	Update(ctx context.Context, noteID bson.ObjectID, req notes.UpdateNoteRequest) (*notes.Note, error)
	Delete(ctx context.Context, noteID bson.ObjectID) error
}

// Handlers contains the notes HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new notes handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// Create handles note creation. Raw image payloads in the request are
// uploaded to the asset host before the note is persisted.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req notes.CreateNoteRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Create"); err != nil {
		return err
	}

	userID, err := bson.ObjectIDFromHex(req.UserID)
	if err != nil {
		return handlerutil.ParseUserIDError(c, "Create", req.UserID, err)
	}

	note, err := h.service.Create(c.Context(), userID, req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Create", nil, notes.ErrNoteNotFound)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"note":    note,
	})
}

// List returns all notes for the user in the userId query parameter.
func (h *Handlers) List(c *fiber.Ctx) error {
	return h.list(c, false)
}

// ListFavorites returns only favorite notes.
func (h *Handlers) ListFavorites(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *Handlers) list(c *fiber.Ctx, favoritesOnly bool) error {
	userID, err := handlerutil.ParseUserIDQuery(c, "List")
	if err != nil {
		return err
	}

	notesList, err := h.service.List(c.Context(), userID, favoritesOnly)
	if err != nil {
		return handlerutil.HandleServiceError(err, "List", nil, notes.ErrNoteNotFound)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"notes":   notesList,
	})
}

// Update handles a full-field note update.
func (h *Handlers) Update(c *fiber.Ctx) error {
	noteID, err := handlerutil.ExtractNoteID(c, "Update", notes.ErrNoteNotFound)
	if err != nil {
		return err
	}

	var req notes.UpdateNoteRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Update"); err != nil {
		return err
	}

	note, err := h.service.Update(c.Context(), noteID, req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Update", &noteID, notes.ErrNoteNotFound)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"updatedNote": note,
	})
}

// Delete handles note deletion.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	noteID, err := handlerutil.ExtractNoteID(c, "Delete", notes.ErrNoteNotFound)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), noteID); err != nil {
		return handlerutil.HandleServiceError(err, "Delete", &noteID, notes.ErrNoteNotFound)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "note deleted",
	})
}
