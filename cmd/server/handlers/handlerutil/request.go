package handlerutil

import (
	"errors"

	"note-scribe/cmd/server/handlers/httperr"
	"note-scribe/internal/logger"
	"note-scribe/internal/services/notes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func NotFoundError(err error) error {
	return httperr.Fail(httperr.E{
		Status:  404,
		Message: err.Error(),
	})
}

// GetUserID extracts the authenticated user ID from the fiber context.
func GetUserID(c *fiber.Ctx) (bson.ObjectID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		logger.L().Error("user ID not found in context", "handler", "getUserID", "path", c.Path())
		return bson.ObjectID{}, httperr.Fail(httperr.ErrUnauthorized)
	}

	userID, err := bson.ObjectIDFromHex(userIDStr)
	if err != nil {
		logger.L().Error("invalid user ID", "handler", "getUserID", "userIDStr", userIDStr, "path", c.Path(), "error", err)
		return bson.ObjectID{}, httperr.Fail(httperr.ErrUnauthorized)
	}

	return userID, nil
}

// ParseAndValidateBody parses request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, validator *validator.Validate, handlerName string) error {
	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := validator.Struct(req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// ParseUserIDQuery extracts and validates the userId query parameter.
func ParseUserIDQuery(c *fiber.Ctx, handlerName string) (bson.ObjectID, error) {
	userIDStr := c.Query("userId")
	if userIDStr == "" {
		logger.L().Warn("missing userId query parameter", "handler", handlerName, "path", c.Path())
		return bson.ObjectID{}, httperr.Fail(httperr.ErrInvalidUserID)
	}

	userID, err := bson.ObjectIDFromHex(userIDStr)
	if err != nil {
		logger.L().Warn("invalid userId query parameter", "handler", handlerName, "userIDStr", userIDStr, "error", err)
		return bson.ObjectID{}, httperr.Fail(httperr.ErrInvalidUserID)
	}

	return userID, nil
}

// ParseUserIDError logs an invalid userId from a request body and returns
// the standard 400 response.
func ParseUserIDError(c *fiber.Ctx, handlerName, raw string, err error) error {
	logger.L().Warn("invalid userId in request body", "handler", handlerName, "userIDStr", raw, "path", c.Path(), "error", err)
	return httperr.Fail(httperr.ErrInvalidUserID)
}

// ExtractNoteID extracts and validates the noteId URL parameter.
func ExtractNoteID(c *fiber.Ctx, handlerName string, notFoundErr error) (bson.ObjectID, error) {
	noteIDStr := c.Params("noteId")
	if noteIDStr == "" {
		logger.L().Warn("missing note ID parameter", "handler", handlerName, "path", c.Path())
		return bson.ObjectID{}, NotFoundError(notFoundErr)
	}

	noteID, err := bson.ObjectIDFromHex(noteIDStr)
	if err != nil {
		logger.L().Warn("invalid note ID parameter", "handler", handlerName, "noteIDStr", noteIDStr, "error", err)
		return bson.ObjectID{}, NotFoundError(notFoundErr)
	}

	return noteID, nil
}

// HandleServiceError maps service errors to the standard HTTP responses.
func HandleServiceError(err error, handlerName string, noteID *bson.ObjectID, notFoundErr error) error {
	logFields := []any{"handler", handlerName, "error", err}
	if noteID != nil {
		logFields = append(logFields, "noteID", noteID.Hex())
	}

	switch {
	case errors.Is(err, notFoundErr):
		logger.L().Info("resource not found", logFields...)
		return NotFoundError(notFoundErr)
	case errors.Is(err, notes.ErrTitleRequired), errors.Is(err, notes.ErrContentRequired):
		logger.L().Info("validation rejected", logFields...)
		return httperr.Fail(httperr.E{Status: 400, Message: err.Error()})
	case errors.Is(err, notes.ErrUploadFailed):
		logger.L().Error("image upload failed", logFields...)
		return httperr.Fail(httperr.E{Status: 502, Message: err.Error()})
	}

	logger.L().Error("service operation failed", logFields...)
	return httperr.Fail(httperr.E{
		Status:  500,
		Message: err.Error(),
	})
}
