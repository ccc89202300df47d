package client

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	tournament *tournamenttypes.Tournament
	me         *tournamenttypes.Player
	other      *tournamenttypes.Player
	team       *tournamenttypes.Team
}

func newFixture() fixture {
	tid := uuid.New()
	return fixture{
		tournament: &tournamenttypes.Tournament{ID: tid, Name: "Friday", Status: tournamenttypes.StatusLobby, NumGames: 3},
		me:         &tournamenttypes.Player{ID: uuid.New(), TournamentID: tid, Name: "Ada", Role: tournamenttypes.RolePlayer},
		other:      &tournamenttypes.Player{ID: uuid.New(), TournamentID: tid, Name: "Bo", Role: tournamenttypes.RolePlayer},
		team:       &tournamenttypes.Team{ID: uuid.New(), TournamentID: tid, Name: "Red"},
	}
}

func (f fixture) snapshot() *scoreboardtypes.Snapshot {
	return &scoreboardtypes.Snapshot{
		Tournament: f.tournament,
		Players:    []*tournamenttypes.Player{f.me, f.other},
		Teams:      []*tournamenttypes.Team{f.team},
	}
}

func change(t *testing.T, tid uuid.UUID, table string, typ changefeed.EventType, row any) changefeed.Change {
	t.Helper()
	data, err := json.Marshal(row)
	require.NoError(t, err)
	c := changefeed.Change{Table: table, Type: typ, TournamentID: tid}
	if typ == changefeed.EventDelete {
		c.Old = data
	} else {
		c.New = data
	}
	return c
}

func TestStore_SnapshotLoaded(t *testing.T) {
	f := newFixture()
	s := NewStore(testLogger())
	s.Dispatch(ConnectionChanged{State: changefeed.StateConnected})
	s.Dispatch(SnapshotLoaded{Snapshot: f.snapshot(), PlayerID: f.me.ID})

	st := s.State()
	require.NotNil(t, st.Player)
	assert.Equal(t, f.me.ID, st.Player.ID)
	assert.Len(t, st.Players, 2)
	assert.Equal(t, changefeed.StateConnected, st.Connection)
	assert.True(t, st.HasLiveSession())
}

func TestStore_FeedEvent(t *testing.T) {
	f := newFixture()
	tid := f.tournament.ID

	tests := []struct {
		name   string
		change func(t *testing.T) changefeed.Change
		verify func(t *testing.T, st State)
	}{
		{
			name: "tournament update overwrites",
			change: func(t *testing.T) changefeed.Change {
				next := *f.tournament
				next.Status = tournamenttypes.StatusTeamSelect
				return change(t, tid, changefeed.TableTournaments, changefeed.EventUpdate, next)
			},
			verify: func(t *testing.T, st State) {
				assert.Equal(t, tournamenttypes.StatusTeamSelect, st.Tournament.Status)
			},
		},
		{
			name: "own player update refreshes seat",
			change: func(t *testing.T) changefeed.Change {
				next := *f.me
				next.TeamID = &f.team.ID
				return change(t, tid, changefeed.TablePlayers, changefeed.EventUpdate, next)
			},
			verify: func(t *testing.T, st State) {
				require.NotNil(t, st.Player)
				assert.True(t, st.Player.IsOnTeam(f.team.ID))
				assert.Len(t, st.Players, 2)
			},
		},
		{
			name: "new player inserted",
			change: func(t *testing.T) changefeed.Change {
				return change(t, tid, changefeed.TablePlayers, changefeed.EventInsert,
					tournamenttypes.Player{ID: uuid.New(), TournamentID: tid, Name: "Cy"})
			},
			verify: func(t *testing.T, st State) {
				assert.Len(t, st.Players, 3)
			},
		},
		{
			name: "own player deleted",
			change: func(t *testing.T) changefeed.Change {
				return change(t, tid, changefeed.TablePlayers, changefeed.EventDelete, f.me)
			},
			verify: func(t *testing.T, st State) {
				assert.Nil(t, st.Player)
				assert.Len(t, st.Players, 1)
				assert.False(t, st.HasLiveSession())
			},
		},
		{
			name: "tournament deleted clears state",
			change: func(t *testing.T) changefeed.Change {
				return change(t, tid, changefeed.TableTournaments, changefeed.EventDelete, f.tournament)
			},
			verify: func(t *testing.T, st State) {
				assert.Nil(t, st.Tournament)
				assert.Empty(t, st.Players)
			},
		},
		{
			name: "other tournament ignored",
			change: func(t *testing.T) changefeed.Change {
				return change(t, uuid.New(), changefeed.TableTeams, changefeed.EventInsert,
					tournamenttypes.Team{ID: uuid.New(), Name: "Blue"})
			},
			verify: func(t *testing.T, st State) {
				assert.Len(t, st.Teams, 1)
			},
		},
		{
			name: "game and title rows tracked",
			change: func(t *testing.T) changefeed.Change {
				return change(t, tid, changefeed.TableGames, changefeed.EventInsert,
					gametypes.Game{ID: uuid.New(), TournamentID: tid, Status: gametypes.StatusActive, GameOrder: 1})
			},
			verify: func(t *testing.T, st State) {
				require.Len(t, st.Games, 1)
				require.NotNil(t, st.CurrentGame())
				assert.Equal(t, 1, st.CurrentGame().GameOrder)
			},
		},
		{
			name: "undecodable row dropped",
			change: func(t *testing.T) changefeed.Change {
				return changefeed.Change{Table: changefeed.TableTeams, Type: changefeed.EventInsert, TournamentID: tid, New: json.RawMessage(`"x"`)}
			},
			verify: func(t *testing.T, st State) {
				assert.Len(t, st.Teams, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(testLogger())
			s.Dispatch(SnapshotLoaded{Snapshot: f.snapshot(), PlayerID: f.me.ID})
			s.Dispatch(FeedEvent{Change: tt.change(t)})
			tt.verify(t, s.State())
		})
	}
}

func TestStore_OperationSucceeded(t *testing.T) {
	f := newFixture()
	s := NewStore(testLogger())

	s.Dispatch(OperationSucceeded{Result: &tournamenttypes.Session{Tournament: f.tournament, Player: f.me}})
	st := s.State()
	require.NotNil(t, st.Player)
	assert.Equal(t, f.me.ID, st.Player.ID)
	assert.Len(t, st.Players, 1)

	vote := &tournamenttypes.LeaderVote{ID: uuid.New(), TeamID: f.team.ID, VoterID: f.me.ID, CandidateID: f.me.ID}
	s.Dispatch(OperationSucceeded{Result: f.team})
	s.Dispatch(OperationSucceeded{Result: &tournamenttypes.VoteOutcome{Vote: vote}})
	s.Dispatch(OperationSucceeded{Result: []*gametypes.Title{{ID: uuid.New(), PlayerID: f.me.ID, TitleName: "MVP"}}})

	st = s.State()
	assert.Len(t, st.Teams, 1)
	assert.Len(t, st.Votes, 1)
	assert.Len(t, st.Titles, 1)

	other := &tournamenttypes.Tournament{ID: uuid.New(), Status: tournamenttypes.StatusLobby}
	s.Dispatch(OperationSucceeded{Result: &tournamenttypes.Session{Tournament: other, Player: f.other}})
	st = s.State()
	assert.Equal(t, other.ID, st.Tournament.ID)
	assert.Empty(t, st.Teams, "switching tournaments drops old rows")
}

func TestStore_SubscribersGetCopies(t *testing.T) {
	f := newFixture()
	s := NewStore(testLogger())

	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })

	s.Dispatch(SnapshotLoaded{Snapshot: f.snapshot(), PlayerID: f.me.ID})
	s.Dispatch(FeedEvent{Change: change(t, f.tournament.ID, changefeed.TablePlayers, changefeed.EventDelete, f.other)})
	unsubscribe()
	s.Dispatch(Reset{})

	require.Len(t, seen, 2)
	assert.Len(t, seen[0].Players, 2, "earlier copy is unaffected by later dispatches")
	assert.Len(t, seen[1].Players, 1)
	assert.Nil(t, s.State().Tournament)
}
