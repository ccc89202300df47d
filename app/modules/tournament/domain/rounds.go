package tournamentdomain

import (
	"errors"
	"time"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// MaxTeams is the size of the bracket.
const MaxTeams = 2

var ErrTeamPairIncomplete = errors.New("tournament needs exactly two teams")

// TeamPair returns the two teams ordered by creation time.
func TeamPair(teams []*tournamenttypes.Team) ([2]uuid.UUID, error) {
	if len(teams) != MaxTeams {
		return [2]uuid.UUID{}, ErrTeamPairIncomplete
	}
	a, b := teams[0], teams[1]
	if b.CreatedAt.Before(a.CreatedAt) {
		a, b = b, a
	}
	return [2]uuid.UUID{a.ID, b.ID}, nil
}

// OtherTeam returns the team of the pair that is not current.
func OtherTeam(pair [2]uuid.UUID, current uuid.UUID) uuid.UUID {
	if pair[0] == current {
		return pair[1]
	}
	return pair[0]
}

// IsStaleLobby reports whether the sweep may delete t.
func IsStaleLobby(t *tournamenttypes.Tournament, playerCount int, now time.Time, window time.Duration) bool {
	if t.Status != tournamenttypes.StatusLobby {
		return false
	}
	if playerCount > 1 {
		return false
	}
	return now.Sub(t.CreatedAt) > window
}

// RoomCodeReclaimable reports whether a live holder of a room code is old enough to be
// replaced by a new tournament.
func RoomCodeReclaimable(t *tournamenttypes.Tournament, now time.Time, window time.Duration) bool {
	return t.Status == tournamenttypes.StatusLobby && now.Sub(t.CreatedAt) > window
}
