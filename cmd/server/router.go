package main

import (
	"context"
	"strings"
	"time"

	"note-scribe/cmd/server/handlers"
	authHandlers "note-scribe/cmd/server/handlers/auth"
	"note-scribe/cmd/server/handlers/httperr"
	notesHandlers "note-scribe/cmd/server/handlers/notes"
	"note-scribe/cmd/server/middlewares"
	"note-scribe/internal/clients/cloudinary"
	"note-scribe/internal/clients/mongo"
	"note-scribe/internal/config"
	"note-scribe/internal/logger"
	authServices "note-scribe/internal/services/auth"
	notesServices "note-scribe/internal/services/notes"
	"note-scribe/internal/utils/crypto"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	RateLimitExpiration = 1 * time.Minute
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(ctx context.Context, cfg config.Config) *fiber.App {

	// Initialize validator and register password validation
	v := validator.New()
	if err := crypto.RegisterPasswordValidator(v); err != nil {
		logger.L().Error("failed to register password validator", "err", err)
		panic(err)
	}

	// Validate JWT algorithm at boot
	alg := strings.ToUpper(cfg.JWTAlgorithm)
	switch alg {
	case "HS256":
		// Valid algorithm
	default:
		logger.L().Error(authServices.ErrUnsupportedJWTAlg.Error(), "algorithm", cfg.JWTAlgorithm)
		panic(authServices.ErrUnsupportedJWTAlg.Error() + ": " + cfg.JWTAlgorithm)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Content-Type, Authorization",
		AllowCredentials: false,
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside the API surface to avoid logging
	app.Get("/healthz", handlers.Healthz)

	var root fiber.Router = app
	if cfg.RequestLoggingEnabled {
		root = app.Group("", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		logger.L().Info("request logging disabled")
	}

	sessionMW := middlewares.Session(cfg)
	loginLimiter := middlewares.BuildRateLimiter(cfg.LoginRatePerMin, RateLimitExpiration)

	usersRepo, newUsersRepoErr := mongo.NewUsersRepo(ctx, mongo.DB())
	if newUsersRepoErr != nil {
		logger.L().Error("failed to create users repository", "error", newUsersRepoErr)
		panic(newUsersRepoErr)
	}
	authSvc := authServices.NewService(usersRepo, cfg, logger.L())
	authH := authHandlers.NewHandlers(authSvc, v, cfg)

	root.Post("/sign-up", loginLimiter, authH.SignUp)
	root.Post("/log-in", loginLimiter, authH.LogIn)
	root.Post("/log-out", authH.LogOut)
	root.Get("/fetch-user", sessionMW, authH.FetchUser)

	// Notes routes
	notesRepo, err := mongo.NewNotesRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error(notesServices.ErrCreateNotesRepo.Error(), "error", err)
		panic(err)
	}
	uploader := cloudinary.New(cfg, logger.L())
	notesSvc := notesServices.NewService(notesRepo, uploader, logger.L())
	notesH := notesHandlers.NewHandlers(notesSvc, v)

	root.Get("/notes", sessionMW, notesH.List)
	root.Get("/favorite", sessionMW, notesH.ListFavorites)
	root.Post("/notes", sessionMW, notesH.Create)
	root.Put("/notes/:noteId", sessionMW, notesH.Update)
	root.Delete("/notes/:noteId", sessionMW, notesH.Delete)

	return app
}
