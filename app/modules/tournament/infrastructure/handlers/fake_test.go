package tournamenthandlers

import (
	"context"
	"time"

	tournamentservice "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/application"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// ------------------------
// Fake Tournament Service
// ------------------------

type FakeTournamentService struct {
	trace []string

	CreateTournamentFunc  func(ctx context.Context, name, roomCode string, numGames int, refereeName string, identity tournamenttypes.Identity) (*tournamenttypes.Session, error)
	JoinTournamentFunc    func(ctx context.Context, roomCode, name string, identity tournamenttypes.Identity, role tournamenttypes.Role) (*tournamenttypes.Session, error)
	ReconnectPlayerFunc   func(ctx context.Context, identity tournamenttypes.Identity) (*tournamenttypes.Session, error)
	CancelTournamentFunc  func(ctx context.Context, tournamentID, actorID uuid.UUID) error
	CreateTeamFunc        func(ctx context.Context, tournamentID uuid.UUID, name string) (*tournamenttypes.Team, error)
	UpdateTeamNameFunc    func(ctx context.Context, teamID uuid.UUID, name string) (*tournamenttypes.Team, error)
	JoinTeamFunc          func(ctx context.Context, playerID, teamID uuid.UUID) (*tournamenttypes.Player, error)
	LeaveTeamFunc         func(ctx context.Context, playerID uuid.UUID) (*tournamenttypes.Player, error)
	VoteForLeaderFunc     func(ctx context.Context, teamID, voterID, candidateID uuid.UUID) (*tournamenttypes.VoteOutcome, error)
	StartTournamentFunc   func(ctx context.Context, tournamentID, actorID uuid.UUID) (*tournamenttypes.Tournament, error)
	StartDraftFunc        func(ctx context.Context, tournamentID, actorID uuid.UUID) (*tournamenttypes.Tournament, error)
	DraftPlayerFunc       func(ctx context.Context, tournamentID, captainID, playerID uuid.UUID) (*tournamenttypes.Tournament, error)
	RevealLeadersFunc     func(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error)
	SubmitDicePickFunc    func(ctx context.Context, tournamentID, teamID uuid.UUID, value int) (*tournamenttypes.Tournament, error)
	ResetDiceRollFunc     func(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error)
	ConfirmDiceWinnerFunc func(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error)
	SweepStaleLobbiesFunc func(ctx context.Context, olderThan time.Duration) (int, error)
}

func NewFakeTournamentService() *FakeTournamentService {
	return &FakeTournamentService{
		trace: []string{},
	}
}

func (f *FakeTournamentService) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Service Interface Implementation ---

func (f *FakeTournamentService) CreateTournament(ctx context.Context, name, roomCode string, numGames int, refereeName string, identity tournamenttypes.Identity) (*tournamenttypes.Session, error) {
	f.record("CreateTournament")
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, name, roomCode, numGames, refereeName, identity)
	}
	return nil, nil
}

func (f *FakeTournamentService) JoinTournament(ctx context.Context, roomCode, name string, identity tournamenttypes.Identity, role tournamenttypes.Role) (*tournamenttypes.Session, error) {
	f.record("JoinTournament")
	if f.JoinTournamentFunc != nil {
		return f.JoinTournamentFunc(ctx, roomCode, name, identity, role)
	}
	return nil, nil
}

func (f *FakeTournamentService) ReconnectPlayer(ctx context.Context, identity tournamenttypes.Identity) (*tournamenttypes.Session, error) {
	f.record("ReconnectPlayer")
	if f.ReconnectPlayerFunc != nil {
		return f.ReconnectPlayerFunc(ctx, identity)
	}
	return nil, nil
}

func (f *FakeTournamentService) CancelTournament(ctx context.Context, tournamentID, actorID uuid.UUID) error {
	f.record("CancelTournament")
	if f.CancelTournamentFunc != nil {
		return f.CancelTournamentFunc(ctx, tournamentID, actorID)
	}
	return nil
}

func (f *FakeTournamentService) CreateTeam(ctx context.Context, tournamentID uuid.UUID, name string) (*tournamenttypes.Team, error) {
	f.record("CreateTeam")
	if f.CreateTeamFunc != nil {
		return f.CreateTeamFunc(ctx, tournamentID, name)
	}
	return nil, nil
}

func (f *FakeTournamentService) UpdateTeamName(ctx context.Context, teamID uuid.UUID, name string) (*tournamenttypes.Team, error) {
	f.record("UpdateTeamName")
	if f.UpdateTeamNameFunc != nil {
		return f.UpdateTeamNameFunc(ctx, teamID, name)
	}
	return nil, nil
}

func (f *FakeTournamentService) JoinTeam(ctx context.Context, playerID, teamID uuid.UUID) (*tournamenttypes.Player, error) {
	f.record("JoinTeam")
	if f.JoinTeamFunc != nil {
		return f.JoinTeamFunc(ctx, playerID, teamID)
	}
	return nil, nil
}

func (f *FakeTournamentService) LeaveTeam(ctx context.Context, playerID uuid.UUID) (*tournamenttypes.Player, error) {
	f.record("LeaveTeam")
	if f.LeaveTeamFunc != nil {
		return f.LeaveTeamFunc(ctx, playerID)
	}
	return nil, nil
}

func (f *FakeTournamentService) VoteForLeader(ctx context.Context, teamID, voterID, candidateID uuid.UUID) (*tournamenttypes.VoteOutcome, error) {
	f.record("VoteForLeader")
	if f.VoteForLeaderFunc != nil {
		return f.VoteForLeaderFunc(ctx, teamID, voterID, candidateID)
	}
	return nil, nil
}

func (f *FakeTournamentService) StartTournament(ctx context.Context, tournamentID, actorID uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("StartTournament")
	if f.StartTournamentFunc != nil {
		return f.StartTournamentFunc(ctx, tournamentID, actorID)
	}
	return nil, nil
}

func (f *FakeTournamentService) StartDraft(ctx context.Context, tournamentID, actorID uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("StartDraft")
	if f.StartDraftFunc != nil {
		return f.StartDraftFunc(ctx, tournamentID, actorID)
	}
	return nil, nil
}

func (f *FakeTournamentService) DraftPlayer(ctx context.Context, tournamentID, captainID, playerID uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("DraftPlayer")
	if f.DraftPlayerFunc != nil {
		return f.DraftPlayerFunc(ctx, tournamentID, captainID, playerID)
	}
	return nil, nil
}

func (f *FakeTournamentService) RevealLeaders(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("RevealLeaders")
	if f.RevealLeadersFunc != nil {
		return f.RevealLeadersFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeTournamentService) SubmitDicePick(ctx context.Context, tournamentID, teamID uuid.UUID, value int) (*tournamenttypes.Tournament, error) {
	f.record("SubmitDicePick")
	if f.SubmitDicePickFunc != nil {
		return f.SubmitDicePickFunc(ctx, tournamentID, teamID, value)
	}
	return nil, nil
}

func (f *FakeTournamentService) ResetDiceRoll(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("ResetDiceRoll")
	if f.ResetDiceRollFunc != nil {
		return f.ResetDiceRollFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeTournamentService) ConfirmDiceWinner(ctx context.Context, tournamentID uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("ConfirmDiceWinner")
	if f.ConfirmDiceWinnerFunc != nil {
		return f.ConfirmDiceWinnerFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeTournamentService) SweepStaleLobbies(ctx context.Context, olderThan time.Duration) (int, error) {
	f.record("SweepStaleLobbies")
	if f.SweepStaleLobbiesFunc != nil {
		return f.SweepStaleLobbiesFunc(ctx, olderThan)
	}
	return 0, nil
}

// --- Accessors for assertions ---

func (f *FakeTournamentService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ tournamentservice.Service = (*FakeTournamentService)(nil)
