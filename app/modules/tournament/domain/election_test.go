package tournamentdomain

import (
	"testing"

	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMajorityThreshold(t *testing.T) {
	for members, want := range map[int]int{1: 1, 2: 2, 3: 2, 4: 3, 5: 3, 6: 4} {
		assert.Equal(t, want, MajorityThreshold(members), "members=%d", members)
	}
}

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func votesFor(candidate uuid.UUID, voters ...uuid.UUID) []*tournamenttypes.LeaderVote {
	out := make([]*tournamenttypes.LeaderVote, 0, len(voters))
	for _, v := range voters {
		out = append(out, &tournamenttypes.LeaderVote{VoterID: v, CandidateID: candidate})
	}
	return out
}

func TestTallyLeader(t *testing.T) {
	three := ids(3)
	four := ids(4)

	tests := []struct {
		name    string
		members []uuid.UUID
		votes   []*tournamenttypes.LeaderVote
		want    *uuid.UUID
	}{
		{
			name:    "three members need two votes",
			members: three,
			votes:   votesFor(three[0], three[1], three[2]),
			want:    &three[0],
		},
		{
			name:    "three members one vote is not enough",
			members: three,
			votes:   votesFor(three[0], three[1]),
		},
		{
			name:    "four members two votes is not enough",
			members: four,
			votes:   votesFor(four[0], four[1], four[2]),
		},
		{
			name:    "four members need three votes",
			members: four,
			votes:   votesFor(four[0], four[0], four[1], four[2]),
			want:    &four[0],
		},
		{
			name:    "votes from former members are ignored",
			members: three,
			votes:   votesFor(three[0], three[1], uuid.New()),
		},
		{
			name:    "empty team has no leader",
			members: nil,
			votes:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TallyLeader(tt.votes, tt.members)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, *tt.want, got)
		})
	}
}

func TestLeaderlessTeams(t *testing.T) {
	led, leaderless, empty := uuid.New(), uuid.New(), uuid.New()
	teams := []*tournamenttypes.Team{{ID: led}, {ID: leaderless}, {ID: empty}}
	p1 := &tournamenttypes.Player{ID: uuid.New(), TeamID: &led, IsLeader: true}
	p2 := &tournamenttypes.Player{ID: uuid.New(), TeamID: &leaderless}
	p3 := &tournamenttypes.Player{ID: uuid.New(), TeamID: &leaderless}

	got := LeaderlessTeams(teams, []*tournamenttypes.Player{p1, p2, p3}, func(n int) int { return n - 1 })
	assert.Equal(t, map[uuid.UUID]uuid.UUID{leaderless: p3.ID}, got)
}
