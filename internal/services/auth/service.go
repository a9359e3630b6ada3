package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"note-scribe/internal/config"
	"note-scribe/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles authentication business logic
type Service struct {
	repo   UsersRepo
	config config.Config
	log    *slog.Logger
}

// NewService creates a new auth service
func NewService(repo UsersRepo, cfg config.Config, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
		log:    log,
	}
}

// SignUpRequest represents a user registration request
type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64" example:"ada"`
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required,password" example:"Password123"`
}

// LogInRequest represents a user login request
type LogInRequest struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required" example:"Password123"`
}

// Session is a signed-in user plus the cookie token that proves it
type Session struct {
	User  *User
	Token string
}

// SignUp registers a new user and opens a session
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, maskDuplicateError()
	}

	hashedPassword, err := crypto.HashPassword(req.Password, s.config.BcryptCost)
	if err != nil {
		return nil, errors.New("failed to process password")
	}

	user := &User{
		ID:           bson.NewObjectID(),
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, maskDuplicateError()
		}
		return nil, errors.New("failed to create user")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, ErrGenSessionToken
	}

	return &Session{User: user, Token: token}, nil
}

// LogIn authenticates a user and opens a session
func (s *Service) LogIn(ctx context.Context, req LogInRequest) (*Session, error) {
	email := normalizeEmail(req.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Info("log-in for unknown email", "error", err)
		return nil, ErrInvalidCredentials
	}

	if err := crypto.CheckPassword(req.Password, user.PasswordHash); err != nil {
		s.log.Info("log-in with wrong password", "user_id", user.ID.Hex())
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		s.log.Error(ErrGenSessionToken.Error(), "error", err)
		return nil, ErrGenSessionToken
	}

	return &Session{User: user, Token: token}, nil
}

// FetchUser resolves the user behind a verified session token
func (s *Service) FetchUser(ctx context.Context, userID bson.ObjectID) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		s.log.Info("session user no longer exists", "user_id", userID.Hex())
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) generateJWT(user *User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"exp":     now.Add(time.Duration(s.config.SessionTokenMinutes) * time.Minute).Unix(),
		"iat":     now.Unix(),
	}

	var method jwt.SigningMethod
	switch strings.ToUpper(s.config.JWTAlgorithm) {
	case "HS256":
		method = jwt.SigningMethodHS256
	default:
		return "", ErrUnsupportedJWTAlg
	}

	token := jwt.NewWithClaims(method, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// maskDuplicateError hides whether an email is taken
func maskDuplicateError() error {
	return errors.New("registration failed")
}
