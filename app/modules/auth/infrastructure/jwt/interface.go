package authjwt

import (
	"time"

	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
)

// Provider defines the interface for session token operations.
type Provider interface {
	// GenerateToken signs claims into a session token valid for ttl.
	GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error)

	// ValidateToken validates a session token and returns the claims if valid.
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}
