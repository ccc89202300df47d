package tournamentdomain

import (
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// MajorityThreshold is the vote count needed to lead a team of the given size.
func MajorityThreshold(members int) int {
	return members/2 + 1
}

// TallyLeader returns the candidate holding a majority among members, if any. Votes cast by or
// for non-members are ignored.
func TallyLeader(votes []*tournamenttypes.LeaderVote, members []uuid.UUID) (uuid.UUID, bool) {
	if len(members) == 0 {
		return uuid.Nil, false
	}
	counts := make(map[uuid.UUID]int)
	for _, v := range votes {
		if !containsID(members, v.VoterID) || !containsID(members, v.CandidateID) {
			continue
		}
		counts[v.CandidateID]++
	}
	need := MajorityThreshold(len(members))
	for candidate, n := range counts {
		if n >= need {
			return candidate, true
		}
	}
	return uuid.Nil, false
}

// LeaderlessTeams picks a random member as leader for every team without one. Teams without
// members are skipped. intn must return a value in [0, n).
func LeaderlessTeams(teams []*tournamenttypes.Team, players []*tournamenttypes.Player, intn func(n int) int) map[uuid.UUID]uuid.UUID {
	out := make(map[uuid.UUID]uuid.UUID)
	for _, team := range teams {
		var members []*tournamenttypes.Player
		hasLeader := false
		for _, p := range players {
			if !p.IsOnTeam(team.ID) {
				continue
			}
			members = append(members, p)
			if p.IsLeader {
				hasLeader = true
			}
		}
		if hasLeader || len(members) == 0 {
			continue
		}
		out[team.ID] = members[intn(len(members))].ID
	}
	return out
}
