package authnats

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nkeys"
)

// UserClaims represents NATS user JWT claims.
type UserClaims struct {
	Subject  string          `json:"sub"`
	Audience string          `json:"aud,omitempty"`
	Expires  int64           `json:"exp,omitempty"`
	IssuedAt int64           `json:"iat"`
	Issuer   string          `json:"iss"`
	Name     string          `json:"name,omitempty"`
	Nats     UserPermissions `json:"nats"`
}

// UserPermissions carries type and version inside the nats object, as the NATS JWT format requires.
type UserPermissions struct {
	Pub     PermissionRules `json:"pub,omitempty"`
	Sub     PermissionRules `json:"sub,omitempty"`
	Resp    *RespPermission `json:"resp,omitempty"`
	Type    string          `json:"type"`
	Version int             `json:"version"`
}

// PermissionRules contains allow/deny patterns.
type PermissionRules struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// RespPermission allows request/reply patterns.
type RespPermission struct {
	Max int `json:"max,omitempty"`
	TTL int `json:"ttl,omitempty"`
}

// AuthorizationResponseClaims represents the claims in an auth callout response JWT.
type AuthorizationResponseClaims struct {
	Audience string                       `json:"aud,omitempty"`
	IssuedAt int64                        `json:"iat"`
	Issuer   string                       `json:"iss"`
	Subject  string                       `json:"sub"`
	Nats     AuthorizationResponsePayload `json:"nats"`
}

// AuthorizationResponsePayload contains the NATS-specific response data.
type AuthorizationResponsePayload struct {
	JWT     string `json:"jwt,omitempty"`
	Error   string `json:"error,omitempty"`
	Account string `json:"account,omitempty"`
	Type    string `json:"type"`
	Version int    `json:"version"`
}

// NewAuthorizationResponseClaims answers the server (audience) about one connecting user nkey (subject).
func NewAuthorizationResponseClaims(audience, subject, account, userJWT, errMsg string) *AuthorizationResponseClaims {
	return &AuthorizationResponseClaims{
		Audience: audience,
		IssuedAt: time.Now().Unix(),
		Subject:  subject,
		Nats: AuthorizationResponsePayload{
			JWT:     userJWT,
			Error:   errMsg,
			Account: account,
			Type:    "authorization_response",
			Version: 2,
		},
	}
}

// Encode signs the response with kp.
func (c *AuthorizationResponseClaims) Encode(kp nkeys.KeyPair) (string, error) {
	issuer, err := kp.PublicKey()
	if err != nil {
		return "", fmt.Errorf("failed to get issuer public key: %w", err)
	}
	c.Issuer = issuer
	return signNKeyJWT(kp, c)
}

// NewUserClaims creates user claims for the connecting nkey. Each request may receive one reply.
func NewUserClaims(userNkey string) *UserClaims {
	return &UserClaims{
		Subject:  userNkey,
		IssuedAt: time.Now().Unix(),
		Nats: UserPermissions{
			Resp: &RespPermission{
				Max: 1,
				TTL: int((5 * time.Second).Nanoseconds()),
			},
			Type:    "user",
			Version: 2,
		},
	}
}

// Encode signs the claims with kp.
func (c *UserClaims) Encode(kp nkeys.KeyPair) (string, error) {
	issuer, err := kp.PublicKey()
	if err != nil {
		return "", fmt.Errorf("failed to get issuer public key: %w", err)
	}
	c.Issuer = issuer
	return signNKeyJWT(kp, c)
}

// signNKeyJWT builds header.claims.signature with an ed25519 nkey signature.
func signNKeyJWT(kp nkeys.KeyPair, claims any) (string, error) {
	headerJSON, err := json.Marshal(map[string]string{
		"typ": "JWT",
		"alg": "ed25519-nkey",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) + "." +
		base64.RawURLEncoding.EncodeToString(claimsJSON)

	sig, err := kp.Sign([]byte(signingInput))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}
