package tournamenttypes

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AnonymousSessionID is the durable per-device identifier used by devices without an account.
type AnonymousSessionID string

// UserID is an account id issued by an external identity provider.
type UserID string

// IdentityKind discriminates the two identity variants.
type IdentityKind string

const (
	IdentityAnonymous IdentityKind = "anonymous"
	IdentityUser      IdentityKind = "user"
)

// ErrEmptyIdentity is returned when neither variant carries a value.
var ErrEmptyIdentity = errors.New("identity is empty")

// Identity is either an AnonymousSessionID or a UserID, never both.
type Identity struct {
	kind  IdentityKind
	value string
}

// AnonymousIdentity builds the device-id variant.
func AnonymousIdentity(id AnonymousSessionID) Identity {
	return Identity{kind: IdentityAnonymous, value: string(id)}
}

// UserIdentity builds the authenticated variant.
func UserIdentity(id UserID) Identity {
	return Identity{kind: IdentityUser, value: string(id)}
}

func (i Identity) Kind() IdentityKind { return i.kind }

func (i Identity) Value() string { return i.value }

// Anonymous returns the session id when i is the anonymous variant.
func (i Identity) Anonymous() (AnonymousSessionID, bool) {
	if i.kind != IdentityAnonymous {
		return "", false
	}
	return AnonymousSessionID(i.value), true
}

// User returns the user id when i is the authenticated variant.
func (i Identity) User() (UserID, bool) {
	if i.kind != IdentityUser {
		return "", false
	}
	return UserID(i.value), true
}

// IsZero reports whether i carries no identity.
func (i Identity) IsZero() bool {
	return i.kind == "" || i.value == ""
}

// Validate rejects empty or unknown identities.
func (i Identity) Validate() error {
	if i.IsZero() {
		return ErrEmptyIdentity
	}
	switch i.kind {
	case IdentityAnonymous, IdentityUser:
		return nil
	default:
		return fmt.Errorf("unknown identity kind %q", i.kind)
	}
}

// Column is the players column that stores this identity variant.
func (i Identity) Column() string {
	if i.kind == IdentityUser {
		return "user_id"
	}
	return "device_id"
}

func (i Identity) String() string {
	return fmt.Sprintf("%s:%s", i.kind, i.value)
}

type identityJSON struct {
	Kind IdentityKind `json:"kind"`
	ID   string       `json:"id"`
}

func (i Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(identityJSON{Kind: i.kind, ID: i.value})
}

func (i *Identity) UnmarshalJSON(data []byte) error {
	var raw identityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded := Identity{kind: raw.Kind, value: raw.ID}
	if err := decoded.Validate(); err != nil {
		return err
	}
	*i = decoded
	return nil
}
