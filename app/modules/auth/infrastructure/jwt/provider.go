package authjwt

import (
	"errors"
	"fmt"
	"time"

	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionClaims represents the JWT claims structure. The subject is the player id.
type sessionClaims struct {
	jwt.RegisteredClaims
	TournamentID string                       `json:"tournament_id"`
	IdentityKind tournamenttypes.IdentityKind `json:"identity_kind"`
	Identity     string                       `json:"identity"`
	Role         string                       `json:"role"`
}

// provider implements the Provider interface.
type provider struct {
	secret   []byte
	issuer   string
	audience string
}

// NewProvider creates a new JWT provider. Empty issuer or audience are neither set nor checked.
func NewProvider(secret, issuer, audience string) Provider {
	return &provider{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

// GenerateToken creates a signed JWT token from the given claims.
func (p *provider) GenerateToken(domainClaims *authdomain.Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   domainClaims.PlayerID.String(),
			Issuer:    p.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TournamentID: domainClaims.TournamentID.String(),
		IdentityKind: domainClaims.Identity.Kind(),
		Identity:     domainClaims.Identity.Value(),
		Role:         string(domainClaims.Role),
	}
	if p.audience != "" {
		claims.Audience = jwt.ClaimStrings{p.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and returns the domain claims if valid.
func (p *provider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	var opts []jwt.ParserOption
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}
	if p.audience != "" {
		opts = append(opts, jwt.WithAudience(p.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return p.secret, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrMalformedToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, ErrMalformedToken
	}

	playerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrMissingSeat
	}
	tournamentID, err := uuid.Parse(claims.TournamentID)
	if err != nil {
		return nil, ErrMissingSeat
	}

	var identity tournamenttypes.Identity
	switch claims.IdentityKind {
	case tournamenttypes.IdentityAnonymous:
		identity = tournamenttypes.AnonymousIdentity(tournamenttypes.AnonymousSessionID(claims.Identity))
	case tournamenttypes.IdentityUser:
		identity = tournamenttypes.UserIdentity(tournamenttypes.UserID(claims.Identity))
	}
	if identity.Validate() != nil {
		return nil, ErrMissingSeat
	}

	domainClaims := &authdomain.Claims{
		PlayerID:     playerID,
		TournamentID: tournamentID,
		Identity:     identity,
		Role:         tournamenttypes.Role(claims.Role),
	}
	if claims.ExpiresAt != nil {
		domainClaims.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		domainClaims.IssuedAt = claims.IssuedAt.Time
	}

	return domainClaims, nil
}
