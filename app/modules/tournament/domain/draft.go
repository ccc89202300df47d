package tournamentdomain

import (
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// Side is a team's position in pick order: A is the earliest-created team.
type Side int

const (
	SideA Side = iota
	SideB
)

// SnakeSide returns which side owns draft pick n (1-based): A, B, B, A, A, B, B, ...
func SnakeSide(pick int) Side {
	if pick <= 1 {
		return SideA
	}
	if ((pick-2)/2)%2 == 1 {
		return SideA
	}
	return SideB
}

// DraftTurnFor maps pick n onto the ordered pair of team ids.
func DraftTurnFor(pick int, teams [2]uuid.UUID) uuid.UUID {
	return teams[SnakeSide(pick)]
}

// DraftEligible reports whether p can still be drafted.
func DraftEligible(p *tournamenttypes.Player) bool {
	return p.Role.CanJoinTeam() && !p.IsCaptain && p.TeamID == nil
}

// RemainingDraftPool returns the players that can still be drafted.
func RemainingDraftPool(players []*tournamenttypes.Player) []*tournamenttypes.Player {
	var out []*tournamenttypes.Player
	for _, p := range players {
		if DraftEligible(p) {
			out = append(out, p)
		}
	}
	return out
}

// AllPlayersOnTeams reports whether every team-eligible player has a team. Referees and
// spectators are ignored. A tournament with no eligible players is not ready.
func AllPlayersOnTeams(players []*tournamenttypes.Player) bool {
	eligible := 0
	for _, p := range players {
		if !p.Role.CanJoinTeam() {
			continue
		}
		eligible++
		if p.TeamID == nil {
			return false
		}
	}
	return eligible > 0
}
