package authservice

import (
	"errors"

	"github.com/Black-And-White-Club/party-bracket/pkg/events"
)

var (
	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrPlayerNotFound is returned when the session names an unknown player.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrIdentityMismatch is returned when the caller's identity does not own the player seat.
	ErrIdentityMismatch = errors.New("identity does not match player")

	// ErrGenerateToken is returned when token generation fails.
	ErrGenerateToken = errors.New("failed to generate token")

	// ErrGenerateUserJWT is returned when NATS user JWT generation fails.
	ErrGenerateUserJWT = errors.New("failed to generate user credentials")
)

// Auth reply codes.
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodePlayerNotFound = "PLAYER_NOT_FOUND"
)

// ErrorCode maps auth errors onto reply codes.
var ErrorCode = events.CodeTable(map[error]string{
	ErrMissingToken:     CodeUnauthorized,
	ErrInvalidToken:     CodeUnauthorized,
	ErrExpiredToken:     CodeUnauthorized,
	ErrIdentityMismatch: CodeUnauthorized,
	ErrPlayerNotFound:   CodePlayerNotFound,
})
