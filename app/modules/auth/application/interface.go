package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service defines the authentication service interface.
type Service interface {
	// IssueSession mints a session token for a player seat owned by identity.
	IssueSession(ctx context.Context, playerID uuid.UUID, identity tournamenttypes.Identity) (*SessionResponse, error)

	// ValidateToken validates a JWT token and returns the claims if valid.
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error)

	// HandleNATSAuthRequest processes a NATS auth callout request.
	HandleNATSAuthRequest(ctx context.Context, req *NATSAuthRequest) (*NATSAuthResponse, error)
}

// PlayerReader looks up player seats.
type PlayerReader interface {
	GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error)
}

// SessionResponse is the token handed to a device after it proves seat ownership.
type SessionResponse struct {
	Token        string               `json:"token"`
	ExpiresAt    time.Time            `json:"expires_at"`
	TournamentID uuid.UUID            `json:"tournament_id"`
	PlayerID     uuid.UUID            `json:"player_id"`
	Role         tournamenttypes.Role `json:"role"`
}

// NATSAuthRequest represents a NATS auth callout request.
type NATSAuthRequest struct {
	UserNkey        string         `json:"user_nkey"`
	ServerPublicKey string         `json:"server_public_key"`
	ConnectOpts     ConnectOptions `json:"connect_opts"`
	ClientInfo      ClientInfo     `json:"client_info"`
}

// ConnectOptions contains the connection options from the auth request.
type ConnectOptions struct {
	// Password carries the session token.
	Password string `json:"pass"`
	User     string `json:"user,omitempty"`
}

// ClientInfo contains client information from the auth request.
type ClientInfo struct {
	Host string `json:"host,omitempty"`
	ID   uint64 `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// NATSAuthResponse represents the response to a NATS auth callout.
type NATSAuthResponse struct {
	Jwt            string `json:"jwt,omitempty"`
	Error          string `json:"error,omitempty"`
	SignedResponse string `json:"signed_response,omitempty"`
}
