package authjwt

import "errors"

// Session token failures. Only ErrExpiredToken is recoverable: the device reconnects as a
// guest and asks for a fresh token.
var (
	ErrMalformedToken   = errors.New("malformed session token")
	ErrExpiredToken     = errors.New("session token expired")
	ErrInvalidSignature = errors.New("session token not signed by this server")
	// ErrMissingSeat is a well-signed token that names no player seat or device identity.
	ErrMissingSeat = errors.New("session token names no seat")
)
