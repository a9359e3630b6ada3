package auth

import "errors"

// ErrInvalidCredentials is returned for any sign-in failure so callers cannot
// probe which emails exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserNotFound is returned when a session references a user that no longer exists.
var ErrUserNotFound = errors.New("user not found")

// ErrGenSessionToken is returned when we cannot create a session JWT.
var ErrGenSessionToken = errors.New("failed to generate session token")

// ErrUnsupportedJWTAlg is returned at boot when the configured algorithm is unknown.
var ErrUnsupportedJWTAlg = errors.New("unsupported JWT algorithm")
