package tournamentservice

import (
	"context"
	"sync"
	"time"

	tournamentdb "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Tournament Repo
// ------------------------

// FakeTournamentRepo provides a programmable stub for the tournamentdb.Repository interface.
type FakeTournamentRepo struct {
	trace []string

	CreateTournamentFunc         func(ctx context.Context, db bun.IDB, t *tournamenttypes.Tournament) error
	GetTournamentFunc            func(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error)
	LockTournamentFunc           func(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error)
	GetLiveByRoomCodeFunc        func(ctx context.Context, db bun.IDB, code string) (*tournamenttypes.Tournament, error)
	ListRefereeLobbiesFunc       func(ctx context.Context, db bun.IDB, identity tournamenttypes.Identity) ([]*tournamenttypes.Tournament, error)
	DeleteTournamentFunc         func(ctx context.Context, db bun.IDB, id uuid.UUID, expect tournamenttypes.Status) (*tournamenttypes.Tournament, error)
	SetRefereeFunc               func(ctx context.Context, db bun.IDB, tournamentID, playerID uuid.UUID) (*tournamenttypes.Tournament, error)
	TransitionStatusFunc         func(ctx context.Context, db bun.IDB, id uuid.UUID, from, to tournamenttypes.Status) (*tournamenttypes.Tournament, error)
	StartTournamentFunc          func(ctx context.Context, db bun.IDB, id, firstPickTeam uuid.UUID) (*tournamenttypes.Tournament, error)
	StartDraftFunc               func(ctx context.Context, db bun.IDB, id, firstTurn uuid.UUID) (*tournamenttypes.Tournament, error)
	AdvanceDraftFunc             func(ctx context.Context, db bun.IDB, id, expectTurn uuid.UUID, expectPick int, nextTurn *uuid.UUID, nextPick int) (*tournamenttypes.Tournament, error)
	SaveDiceRollDataFunc         func(ctx context.Context, db bun.IDB, id uuid.UUID, expectRound int, data *tournamenttypes.DiceRollData) (*tournamenttypes.Tournament, error)
	ConfirmDiceWinnerFunc        func(ctx context.Context, db bun.IDB, id, winner uuid.UUID) (*tournamenttypes.Tournament, error)
	ListLobbiesCreatedBeforeFunc func(ctx context.Context, db bun.IDB, cutoff time.Time) ([]tournamentdb.LobbyOccupancy, error)

	CreatePlayerFunc          func(ctx context.Context, db bun.IDB, p *tournamenttypes.Player) (bool, error)
	GetPlayerFunc             func(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error)
	GetPlayerByIdentityFunc   func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, identity tournamenttypes.Identity) (*tournamenttypes.Player, error)
	ListPlayersFunc           func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error)
	ListTeamMembersFunc       func(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.Player, error)
	RecentSessionsFunc        func(ctx context.Context, db bun.IDB, identity tournamenttypes.Identity, limit int) ([]tournamentdb.PlayerSession, error)
	AssignTeamFunc            func(ctx context.Context, db bun.IDB, playerID uuid.UUID, teamID *uuid.UUID) (*tournamenttypes.Player, error)
	DraftToTeamFunc           func(ctx context.Context, db bun.IDB, playerID, teamID uuid.UUID) (*tournamenttypes.Player, error)
	ClearTeamLeadersFunc      func(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.Player, error)
	SetLeaderFunc             func(ctx context.Context, db bun.IDB, playerID uuid.UUID) (*tournamenttypes.Player, error)
	MarkLeadersAsCaptainsFunc func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error)

	CreateTeamFunc     func(ctx context.Context, db bun.IDB, team *tournamenttypes.Team) error
	GetTeamFunc        func(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Team, error)
	ListTeamsFunc      func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error)
	UpdateTeamNameFunc func(ctx context.Context, db bun.IDB, teamID uuid.UUID, name string) (*tournamenttypes.Team, error)

	UpsertVoteFunc              func(ctx context.Context, db bun.IDB, vote *tournamenttypes.LeaderVote) error
	ListTeamVotesFunc           func(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.LeaderVote, error)
	ListTournamentVotesFunc     func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.LeaderVote, error)
	DeleteVotesByVoterFunc      func(ctx context.Context, db bun.IDB, teamID, voterID uuid.UUID) ([]*tournamenttypes.LeaderVote, error)
	DeleteVotesForCandidateFunc func(ctx context.Context, db bun.IDB, teamID, candidateID uuid.UUID) ([]*tournamenttypes.LeaderVote, error)
}

// NewFakeTournamentRepo initializes a new FakeTournamentRepo with an empty trace.
func NewFakeTournamentRepo() *FakeTournamentRepo {
	return &FakeTournamentRepo{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeTournamentRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTournamentRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Tournaments ---

func (f *FakeTournamentRepo) CreateTournament(ctx context.Context, db bun.IDB, t *tournamenttypes.Tournament) error {
	f.record("CreateTournament")
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, db, t)
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (f *FakeTournamentRepo) GetTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, db, id)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) LockTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("LockTournament")
	if f.LockTournamentFunc != nil {
		return f.LockTournamentFunc(ctx, db, id)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) GetLiveByRoomCode(ctx context.Context, db bun.IDB, code string) (*tournamenttypes.Tournament, error) {
	f.record("GetLiveByRoomCode")
	if f.GetLiveByRoomCodeFunc != nil {
		return f.GetLiveByRoomCodeFunc(ctx, db, code)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) ListRefereeLobbies(ctx context.Context, db bun.IDB, identity tournamenttypes.Identity) ([]*tournamenttypes.Tournament, error) {
	f.record("ListRefereeLobbies")
	if f.ListRefereeLobbiesFunc != nil {
		return f.ListRefereeLobbiesFunc(ctx, db, identity)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) DeleteTournament(ctx context.Context, db bun.IDB, id uuid.UUID, expect tournamenttypes.Status) (*tournamenttypes.Tournament, error) {
	f.record("DeleteTournament")
	if f.DeleteTournamentFunc != nil {
		return f.DeleteTournamentFunc(ctx, db, id, expect)
	}
	return &tournamenttypes.Tournament{ID: id, Status: expect}, nil
}

func (f *FakeTournamentRepo) SetReferee(ctx context.Context, db bun.IDB, tournamentID, playerID uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("SetReferee")
	if f.SetRefereeFunc != nil {
		return f.SetRefereeFunc(ctx, db, tournamentID, playerID)
	}
	return &tournamenttypes.Tournament{ID: tournamentID, Status: tournamenttypes.StatusLobby, RefereeID: &playerID}, nil
}

func (f *FakeTournamentRepo) TransitionStatus(ctx context.Context, db bun.IDB, id uuid.UUID, from, to tournamenttypes.Status) (*tournamenttypes.Tournament, error) {
	f.record("TransitionStatus")
	if f.TransitionStatusFunc != nil {
		return f.TransitionStatusFunc(ctx, db, id, from, to)
	}
	return &tournamenttypes.Tournament{ID: id, Status: to}, nil
}

func (f *FakeTournamentRepo) StartTournament(ctx context.Context, db bun.IDB, id, firstPickTeam uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("StartTournament")
	if f.StartTournamentFunc != nil {
		return f.StartTournamentFunc(ctx, db, id, firstPickTeam)
	}
	return &tournamenttypes.Tournament{ID: id, Status: tournamenttypes.StatusTeamSelect, CurrentPickTeam: &firstPickTeam}, nil
}

func (f *FakeTournamentRepo) StartDraft(ctx context.Context, db bun.IDB, id, firstTurn uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("StartDraft")
	if f.StartDraftFunc != nil {
		return f.StartDraftFunc(ctx, db, id, firstTurn)
	}
	return &tournamenttypes.Tournament{ID: id, Status: tournamenttypes.StatusTeamSelect, DraftTurn: &firstTurn, DraftPickNumber: 1}, nil
}

func (f *FakeTournamentRepo) AdvanceDraft(ctx context.Context, db bun.IDB, id, expectTurn uuid.UUID, expectPick int, nextTurn *uuid.UUID, nextPick int) (*tournamenttypes.Tournament, error) {
	f.record("AdvanceDraft")
	if f.AdvanceDraftFunc != nil {
		return f.AdvanceDraftFunc(ctx, db, id, expectTurn, expectPick, nextTurn, nextPick)
	}
	return &tournamenttypes.Tournament{ID: id, Status: tournamenttypes.StatusTeamSelect, DraftTurn: nextTurn, DraftPickNumber: nextPick}, nil
}

func (f *FakeTournamentRepo) SaveDiceRollData(ctx context.Context, db bun.IDB, id uuid.UUID, expectRound int, data *tournamenttypes.DiceRollData) (*tournamenttypes.Tournament, error) {
	f.record("SaveDiceRollData")
	if f.SaveDiceRollDataFunc != nil {
		return f.SaveDiceRollDataFunc(ctx, db, id, expectRound, data)
	}
	return &tournamenttypes.Tournament{ID: id, Status: tournamenttypes.StatusShuffling, DiceRollData: data}, nil
}

func (f *FakeTournamentRepo) ConfirmDiceWinner(ctx context.Context, db bun.IDB, id, winner uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("ConfirmDiceWinner")
	if f.ConfirmDiceWinnerFunc != nil {
		return f.ConfirmDiceWinnerFunc(ctx, db, id, winner)
	}
	return &tournamenttypes.Tournament{ID: id, Status: tournamenttypes.StatusShuffling, CurrentPickTeam: &winner}, nil
}

func (f *FakeTournamentRepo) ListLobbiesCreatedBefore(ctx context.Context, db bun.IDB, cutoff time.Time) ([]tournamentdb.LobbyOccupancy, error) {
	f.record("ListLobbiesCreatedBefore")
	if f.ListLobbiesCreatedBeforeFunc != nil {
		return f.ListLobbiesCreatedBeforeFunc(ctx, db, cutoff)
	}
	return nil, nil
}

// --- Players ---

func (f *FakeTournamentRepo) CreatePlayer(ctx context.Context, db bun.IDB, p *tournamenttypes.Player) (bool, error) {
	f.record("CreatePlayer")
	if f.CreatePlayerFunc != nil {
		return f.CreatePlayerFunc(ctx, db, p)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return true, nil
}

func (f *FakeTournamentRepo) GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, db, id)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) GetPlayerByIdentity(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, identity tournamenttypes.Identity) (*tournamenttypes.Player, error) {
	f.record("GetPlayerByIdentity")
	if f.GetPlayerByIdentityFunc != nil {
		return f.GetPlayerByIdentityFunc(ctx, db, tournamentID, identity)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) ListPlayers(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) ListTeamMembers(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.Player, error) {
	f.record("ListTeamMembers")
	if f.ListTeamMembersFunc != nil {
		return f.ListTeamMembersFunc(ctx, db, teamID)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) RecentSessions(ctx context.Context, db bun.IDB, identity tournamenttypes.Identity, limit int) ([]tournamentdb.PlayerSession, error) {
	f.record("RecentSessions")
	if f.RecentSessionsFunc != nil {
		return f.RecentSessionsFunc(ctx, db, identity, limit)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) AssignTeam(ctx context.Context, db bun.IDB, playerID uuid.UUID, teamID *uuid.UUID) (*tournamenttypes.Player, error) {
	f.record("AssignTeam")
	if f.AssignTeamFunc != nil {
		return f.AssignTeamFunc(ctx, db, playerID, teamID)
	}
	return &tournamenttypes.Player{ID: playerID, Role: tournamenttypes.RolePlayer, TeamID: teamID}, nil
}

func (f *FakeTournamentRepo) DraftToTeam(ctx context.Context, db bun.IDB, playerID, teamID uuid.UUID) (*tournamenttypes.Player, error) {
	f.record("DraftToTeam")
	if f.DraftToTeamFunc != nil {
		return f.DraftToTeamFunc(ctx, db, playerID, teamID)
	}
	return &tournamenttypes.Player{ID: playerID, Role: tournamenttypes.RolePlayer, TeamID: &teamID}, nil
}

func (f *FakeTournamentRepo) ClearTeamLeaders(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.Player, error) {
	f.record("ClearTeamLeaders")
	if f.ClearTeamLeadersFunc != nil {
		return f.ClearTeamLeadersFunc(ctx, db, teamID)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) SetLeader(ctx context.Context, db bun.IDB, playerID uuid.UUID) (*tournamenttypes.Player, error) {
	f.record("SetLeader")
	if f.SetLeaderFunc != nil {
		return f.SetLeaderFunc(ctx, db, playerID)
	}
	return &tournamenttypes.Player{ID: playerID, Role: tournamenttypes.RolePlayer, IsLeader: true}, nil
}

func (f *FakeTournamentRepo) MarkLeadersAsCaptains(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error) {
	f.record("MarkLeadersAsCaptains")
	if f.MarkLeadersAsCaptainsFunc != nil {
		return f.MarkLeadersAsCaptainsFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

// --- Teams ---

func (f *FakeTournamentRepo) CreateTeam(ctx context.Context, db bun.IDB, team *tournamenttypes.Team) error {
	f.record("CreateTeam")
	if f.CreateTeamFunc != nil {
		return f.CreateTeamFunc(ctx, db, team)
	}
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	return nil
}

func (f *FakeTournamentRepo) GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Team, error) {
	f.record("GetTeam")
	if f.GetTeamFunc != nil {
		return f.GetTeamFunc(ctx, db, id)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) ListTeams(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error) {
	f.record("ListTeams")
	if f.ListTeamsFunc != nil {
		return f.ListTeamsFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) UpdateTeamName(ctx context.Context, db bun.IDB, teamID uuid.UUID, name string) (*tournamenttypes.Team, error) {
	f.record("UpdateTeamName")
	if f.UpdateTeamNameFunc != nil {
		return f.UpdateTeamNameFunc(ctx, db, teamID, name)
	}
	return &tournamenttypes.Team{ID: teamID, Name: name}, nil
}

// --- Leader votes ---

func (f *FakeTournamentRepo) UpsertVote(ctx context.Context, db bun.IDB, vote *tournamenttypes.LeaderVote) error {
	f.record("UpsertVote")
	if f.UpsertVoteFunc != nil {
		return f.UpsertVoteFunc(ctx, db, vote)
	}
	return nil
}

func (f *FakeTournamentRepo) ListTeamVotes(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]*tournamenttypes.LeaderVote, error) {
	f.record("ListTeamVotes")
	if f.ListTeamVotesFunc != nil {
		return f.ListTeamVotesFunc(ctx, db, teamID)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) ListTournamentVotes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.LeaderVote, error) {
	f.record("ListTournamentVotes")
	if f.ListTournamentVotesFunc != nil {
		return f.ListTournamentVotesFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) DeleteVotesByVoter(ctx context.Context, db bun.IDB, teamID, voterID uuid.UUID) ([]*tournamenttypes.LeaderVote, error) {
	f.record("DeleteVotesByVoter")
	if f.DeleteVotesByVoterFunc != nil {
		return f.DeleteVotesByVoterFunc(ctx, db, teamID, voterID)
	}
	return nil, nil
}

func (f *FakeTournamentRepo) DeleteVotesForCandidate(ctx context.Context, db bun.IDB, teamID, candidateID uuid.UUID) ([]*tournamenttypes.LeaderVote, error) {
	f.record("DeleteVotesForCandidate")
	if f.DeleteVotesForCandidateFunc != nil {
		return f.DeleteVotesForCandidateFunc(ctx, db, teamID, candidateID)
	}
	return nil, nil
}

// Ensure the fake actually satisfies the interface
var _ tournamentdb.Repository = (*FakeTournamentRepo)(nil)

// ------------------------
// Fake change feed
// ------------------------

// FakeFeed records every published batch.
type FakeFeed struct {
	mu      sync.Mutex
	batches []*changefeed.Batch
	Err     error
}

func (f *FakeFeed) Publish(ctx context.Context, batch *changefeed.Batch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if batch == nil || batch.Len() == 0 {
		return nil
	}
	f.batches = append(f.batches, batch)
	return f.Err
}

// Changes flattens every published batch.
func (f *FakeFeed) Changes() []changefeed.Change {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []changefeed.Change
	for _, b := range f.batches {
		out = append(out, b.Changes()...)
	}
	return out
}

var _ changefeed.Publisher = (*FakeFeed)(nil)
