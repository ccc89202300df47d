package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/jwt"
	authnats "github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/nats"
	"github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/permissions"
	scoreboarddb "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTokenTTL is used when Config.DefaultTTL is zero.
const DefaultTokenTTL = 24 * time.Hour

// Config holds the configuration for the auth service.
type Config struct {
	DefaultTTL time.Duration
}

// service implements the Service interface.
type service struct {
	players           PlayerReader
	jwtProvider       authjwt.Provider
	userJWTBuilder    authnats.UserJWTBuilder
	permissionBuilder *permissions.Builder
	config            Config
	logger            *slog.Logger
	tracer            trace.Tracer
}

// NewService creates a new auth service. userJWTBuilder may be nil when the auth callout is disabled.
func NewService(
	jwtProvider authjwt.Provider,
	userJWTBuilder authnats.UserJWTBuilder,
	players PlayerReader,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	return &service{
		players:           players,
		jwtProvider:       jwtProvider,
		userJWTBuilder:    userJWTBuilder,
		permissionBuilder: permissions.NewBuilder(),
		config:            config,
		logger:            logger,
		tracer:            tracer,
	}
}

// IssueSession mints a session token for a player seat owned by identity.
func (s *service) IssueSession(ctx context.Context, playerID uuid.UUID, identity tournamenttypes.Identity) (*SessionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.IssueSession")
	defer span.End()

	if err := identity.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityMismatch, err)
	}

	player, err := s.players.GetPlayer(ctx, nil, playerID)
	if err != nil {
		if errors.Is(err, scoreboarddb.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("IssueSession: %w", err)
	}

	if player.Identity() != identity {
		s.logger.WarnContext(ctx, "Session requested for a seat owned by another identity",
			attr.UUID("player_id", playerID),
			attr.String("identity_kind", string(identity.Kind())),
		)
		return nil, ErrIdentityMismatch
	}

	ttl := s.config.DefaultTTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now()
	claims := &authdomain.Claims{
		PlayerID:     player.ID,
		TournamentID: player.TournamentID,
		Identity:     identity,
		Role:         player.Role,
		IssuedAt:     now,
		ExpiresAt:    now.Add(ttl),
	}

	token, err := s.jwtProvider.GenerateToken(claims, ttl)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token",
			attr.Error(err),
			attr.UUID("player_id", playerID),
		)
		return nil, fmt.Errorf("%w: %v", ErrGenerateToken, err)
	}

	s.logger.InfoContext(ctx, "Session issued",
		attr.UUID("player_id", player.ID),
		attr.UUID("tournament_id", player.TournamentID),
		attr.String("role", string(player.Role)),
	)

	return &SessionResponse{
		Token:        token,
		ExpiresAt:    claims.ExpiresAt,
		TournamentID: player.TournamentID,
		PlayerID:     player.ID,
		Role:         player.Role,
	}, nil
}

// ValidateToken validates a JWT token and returns the claims if valid.
func (s *service) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.ValidateToken")
	defer span.End()

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.jwtProvider.ValidateToken(tokenString)
	if err != nil {
		s.logger.WarnContext(ctx, "Token validation failed", attr.Error(err))
		if errors.Is(err, authjwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	s.logger.DebugContext(ctx, "Token validated successfully",
		attr.UUID("player_id", claims.PlayerID),
		attr.UUID("tournament_id", claims.TournamentID),
	)

	return claims, nil
}

// HandleNATSAuthRequest answers a NATS auth callout. Denials are reported in the response, not
// as errors, so the server always receives a signed answer.
func (s *service) HandleNATSAuthRequest(ctx context.Context, req *NATSAuthRequest) (*NATSAuthResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.HandleNATSAuthRequest")
	defer span.End()

	if s.userJWTBuilder == nil {
		s.logger.ErrorContext(ctx, "NATS JWT builder not configured")
		return nil, ErrGenerateUserJWT
	}

	s.logger.DebugContext(ctx, "Processing auth callout request",
		attr.String("client_host", req.ClientInfo.Host),
		attr.Any("client_id", req.ClientInfo.ID),
	)

	claims, err := s.ValidateToken(ctx, req.ConnectOpts.Password)
	switch {
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrExpiredToken):
		// Seatless and lapsed devices may still create, join or reconnect.
		claims = authdomain.GuestClaims(time.Now())
		s.logger.DebugContext(ctx, "Auth callout granted guest access",
			attr.String("client_host", req.ClientInfo.Host),
			attr.String("reason", err.Error()),
		)
	case err != nil:
		return s.deny(ctx, req, err.Error())
	}

	perms := s.permissionBuilder.ForClaims(claims)

	userJWT, err := s.userJWTBuilder.BuildUserJWT(req.UserNkey, claims, perms)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate user JWT",
			attr.Error(err),
			attr.UUID("player_id", claims.PlayerID),
		)
		return s.deny(ctx, req, ErrGenerateUserJWT.Error())
	}

	signed, err := s.userJWTBuilder.SignResponse(req.ServerPublicKey, req.UserNkey, userJWT, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateUserJWT, err)
	}

	return &NATSAuthResponse{
		Jwt:            userJWT,
		SignedResponse: signed,
	}, nil
}

func (s *service) deny(ctx context.Context, req *NATSAuthRequest, reason string) (*NATSAuthResponse, error) {
	s.logger.WarnContext(ctx, "Auth callout denied",
		attr.String("client_host", req.ClientInfo.Host),
		attr.String("reason", reason),
	)
	signed, err := s.userJWTBuilder.SignResponse(req.ServerPublicKey, req.UserNkey, "", reason)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateUserJWT, err)
	}
	return &NATSAuthResponse{
		Error:          reason,
		SignedResponse: signed,
	}, nil
}
