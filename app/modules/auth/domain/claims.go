package authdomain

import (
	"time"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// Claims binds a device identity to one player seat.
type Claims struct {
	PlayerID     uuid.UUID
	TournamentID uuid.UUID
	Identity     tournamenttypes.Identity
	Role         tournamenttypes.Role
	ExpiresAt    time.Time
	IssuedAt     time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// CanCommand reports whether the seat may publish commands, not just read.
func (c *Claims) CanCommand() bool {
	return c.Role == tournamenttypes.RolePlayer || c.Role == tournamenttypes.RoleReferee
}

// GuestTTL bounds the credentials of a device that has not taken a seat yet.
const GuestTTL = time.Hour

// GuestClaims describes a device that connects without a session token.
func GuestClaims(now time.Time) *Claims {
	return &Claims{IssuedAt: now, ExpiresAt: now.Add(GuestTTL)}
}

// IsGuest reports whether the claims carry no seat.
func (c *Claims) IsGuest() bool {
	return c.PlayerID == uuid.Nil
}
