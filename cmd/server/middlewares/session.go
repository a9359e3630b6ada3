package middlewares

import (
	"note-scribe/cmd/server/handlers/auth"
	"note-scribe/cmd/server/handlers/httperr"
	"note-scribe/internal/config"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Session returns a configured Fiber middleware that:
//
//   - reads the session JWT from the "token" cookie
//   - validates the signature using cfg.JWTSecret
//   - makes sure the token carries "user_id" and "email" claims
//   - stores those values in ctx.Locals("userID") / ctx.Locals("userEmail")
//     so downstream handlers can trust them.
//
// On any problem it bubbles up a 401 via the global httperr handler.
func Session(cfg config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "cookie:" + auth.SessionCookie,
		SuccessHandler: func(c *fiber.Ctx) error {
			// Token already verified at this point.
			token := c.Locals("user").(*jwt.Token)
			claims, _ := token.Claims.(jwt.MapClaims)

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				return httperr.Fail(httperr.ErrUnauthorized)
			}

			userEmail, ok := claims["email"].(string)
			if !ok || userEmail == "" {
				return httperr.Fail(httperr.ErrUnauthorized)
			}

			c.Locals("userID", userID)
			c.Locals("userEmail", userEmail)
			return c.Next()
		},

		// Override the default "unauthorized" JSON to match the project style
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httperr.Fail(httperr.ErrUnauthorized)
		},
	})
}
