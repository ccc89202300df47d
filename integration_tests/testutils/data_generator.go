package testutils

import (
	"strings"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// RoomCode returns a random valid five-letter room code.
func RoomCode() string {
	return strings.ToUpper(gofakeit.LetterN(tournamenttypes.MaxRoomCodeLength))
}

// PlayerName returns a display name.
func PlayerName() string {
	return gofakeit.FirstName()
}

// TournamentName returns a plausible party name.
func TournamentName() string {
	return gofakeit.Adjective() + " " + gofakeit.Noun() + " Cup"
}

// DeviceIdentity returns a fresh anonymous identity.
func DeviceIdentity() tournamenttypes.Identity {
	return tournamenttypes.AnonymousIdentity(tournamenttypes.AnonymousSessionID(uuid.NewString()))
}
