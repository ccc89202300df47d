package authnats

import (
	authdomain "github.com/Black-And-White-Club/party-bracket/app/modules/auth/domain"
	"github.com/Black-And-White-Club/party-bracket/app/modules/auth/infrastructure/permissions"
)

// UserJWTBuilder mints and signs the JWTs exchanged with the NATS auth callout.
type UserJWTBuilder interface {
	// BuildUserJWT creates a NATS user JWT for userNkey with the specified permissions.
	BuildUserJWT(userNkey string, claims *authdomain.Claims, perms *permissions.Permissions) (string, error)

	// SignResponse wraps userJWT (or errMsg) in a signed authorization response for serverKey.
	SignResponse(serverKey, userNkey, userJWT, errMsg string) (string, error)
}
