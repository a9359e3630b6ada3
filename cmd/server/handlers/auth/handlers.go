package auth

import (
	"context"
	"time"

	"note-scribe/cmd/server/handlers/handlerutil"
	"note-scribe/cmd/server/handlers/httperr"
	"note-scribe/internal/config"
	"note-scribe/internal/logger"
	"note-scribe/internal/services/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// SessionCookie is the cookie that carries the session JWT.
const SessionCookie = "token"

// Service defines the interface for the auth service
type Service interface {
	SignUp(ctx context.Context, req auth.SignUpRequest) (*auth.Session, error)
	LogIn(ctx context.Context, req auth.LogInRequest) (*auth.Session, error)
	FetchUser(ctx context.Context, userID bson.ObjectID) (*auth.User, error)
}

// Handlers contains the auth HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
	cfg       config.Config
}

// NewHandlers creates new auth handlers
func NewHandlers(service Service, validator *validator.Validate, cfg config.Config) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
		cfg:       cfg,
	}
}

func (h *Handlers) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.cfg.SessionTokenMinutes) * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SignUp registers a new account and opens a session.
func (h *Handlers) SignUp(c *fiber.Ctx) error {
	var req auth.SignUpRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "SignUp"); err != nil {
		return err
	}

	session, err := h.service.SignUp(c.Context(), req)
	if err != nil {
		logger.L().Warn("signup failed", "handler", "SignUp", "email", req.Email, "error", err)
		return httperr.Fail(httperr.E{
			Status:  400,
			Message: err.Error(),
		})
	}

	h.setSessionCookie(c, session.Token)
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"user":    session.User,
	})
}

// LogIn authenticates a user and sets the session cookie.
func (h *Handlers) LogIn(c *fiber.Ctx) error {
	var req auth.LogInRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "LogIn"); err != nil {
		return err
	}

	session, err := h.service.LogIn(c.Context(), req)
	if err != nil {
		logger.L().Warn("login failed", "handler", "LogIn", "email", req.Email, "error", err)
		return httperr.Fail(httperr.E{
			Status:  401,
			Message: auth.ErrInvalidCredentials.Error(),
		})
	}

	h.setSessionCookie(c, session.Token)
	return c.JSON(fiber.Map{
		"success": true,
		"user":    session.User,
		"message": "logged in",
	})
}

// LogOut drops the session cookie.
func (h *Handlers) LogOut(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "logged out",
	})
}

// FetchUser returns the account behind the current session.
func (h *Handlers) FetchUser(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.FetchUser(c.Context(), userID)
	if err != nil {
		logger.L().Warn("fetch user failed", "handler", "FetchUser", "userID", userID.Hex(), "error", err)
		return httperr.Fail(httperr.ErrUnauthorized)
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}
