package authnats

import (
	"fmt"
	"time"

	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	"github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/permissions"
	"github.com/nats-io/nkeys"
)

// MaxUserJWTLifetime caps user JWTs even when the session token lives longer.
const MaxUserJWTLifetime = 24 * time.Hour

// userJWTBuilder implements the UserJWTBuilder interface.
type userJWTBuilder struct {
	signingKey nkeys.KeyPair
	account    string
}

// NewUserJWTBuilder creates a new UserJWTBuilder signing with signingKey for account.
func NewUserJWTBuilder(signingKey nkeys.KeyPair, account string) UserJWTBuilder {
	return &userJWTBuilder{
		signingKey: signingKey,
		account:    account,
	}
}

// BuildUserJWT creates a NATS user JWT with the specified permissions.
func (b *userJWTBuilder) BuildUserJWT(userNkey string, claims *authdomain.Claims, perms *permissions.Permissions) (string, error) {
	uc := NewUserClaims(userNkey)
	uc.Name = fmt.Sprintf("%s@%s", claims.PlayerID, claims.TournamentID)
	if claims.IsGuest() {
		uc.Name = "guest"
	}
	uc.Audience = b.account

	expires := time.Now().Add(MaxUserJWTLifetime)
	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(expires) {
		expires = claims.ExpiresAt
	}
	uc.Expires = expires.Unix()

	uc.Nats.Pub.Allow = perms.Publish.Allow
	uc.Nats.Pub.Deny = perms.Publish.Deny
	uc.Nats.Sub.Allow = perms.Subscribe.Allow
	uc.Nats.Sub.Deny = perms.Subscribe.Deny

	token, err := uc.Encode(b.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to encode user claims: %w", err)
	}

	return token, nil
}

func (b *userJWTBuilder) SignResponse(serverKey, userNkey, userJWT, errMsg string) (string, error) {
	rc := NewAuthorizationResponseClaims(serverKey, userNkey, b.account, userJWT, errMsg)
	token, err := rc.Encode(b.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to encode authorization response: %w", err)
	}
	return token, nil
}
