package gamehandlers

import (
	"context"
	"encoding/json"

	gameservice "github.com/Black-And-White-Club/party-bracket/app/modules/game/application"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// ------------------------
// Fake Game Service
// ------------------------

type FakeGameService struct {
	trace []string

	ListGameTypesFunc         func(ctx context.Context, tournamentID uuid.UUID) ([]*gametypes.GameType, error)
	GetGameTypeFunc           func(ctx context.Context, gameTypeID uuid.UUID) (*gametypes.GameType, error)
	CreateGameTypeFunc        func(ctx context.Context, tournamentID uuid.UUID, gt *gametypes.GameType) (*gametypes.GameType, error)
	PickGameFunc              func(ctx context.Context, tournamentID, teamID, gameTypeID, playerID uuid.UUID) (*gametypes.Game, error)
	SubmitPlayerStatsFunc     func(ctx context.Context, gameID, playerID uuid.UUID, stats []gametypes.StatInput) ([]*gametypes.PlayerStat, error)
	SubmitGameResultFunc      func(ctx context.Context, gameID uuid.UUID, winningTeamID *uuid.UUID, resultData json.RawMessage) (*gametypes.GameResult, error)
	GetGameResultFunc         func(ctx context.Context, gameID uuid.UUID) (*gametypes.GameResult, error)
	EndGameFunc               func(ctx context.Context, gameID, actorID uuid.UUID) (*gametypes.Game, error)
	CalculateTitlesFunc       func(ctx context.Context, gameID uuid.UUID) ([]*gametypes.Title, error)
	AdvanceToNextRoundFunc    func(ctx context.Context, tournamentID, gameID uuid.UUID) (*tournamenttypes.Tournament, error)
	CalculateGlobalTitlesFunc func(ctx context.Context, tournamentID uuid.UUID) ([]*gametypes.Title, error)
}

func NewFakeGameService() *FakeGameService {
	return &FakeGameService{
		trace: []string{},
	}
}

func (f *FakeGameService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeGameService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// --- Service Interface Implementation ---

func (f *FakeGameService) ListGameTypes(ctx context.Context, tournamentID uuid.UUID) ([]*gametypes.GameType, error) {
	f.record("ListGameTypes")
	if f.ListGameTypesFunc != nil {
		return f.ListGameTypesFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeGameService) GetGameType(ctx context.Context, gameTypeID uuid.UUID) (*gametypes.GameType, error) {
	f.record("GetGameType")
	if f.GetGameTypeFunc != nil {
		return f.GetGameTypeFunc(ctx, gameTypeID)
	}
	return nil, nil
}

func (f *FakeGameService) CreateGameType(ctx context.Context, tournamentID uuid.UUID, gt *gametypes.GameType) (*gametypes.GameType, error) {
	f.record("CreateGameType")
	if f.CreateGameTypeFunc != nil {
		return f.CreateGameTypeFunc(ctx, tournamentID, gt)
	}
	return nil, nil
}

func (f *FakeGameService) PickGame(ctx context.Context, tournamentID, teamID, gameTypeID, playerID uuid.UUID) (*gametypes.Game, error) {
	f.record("PickGame")
	if f.PickGameFunc != nil {
		return f.PickGameFunc(ctx, tournamentID, teamID, gameTypeID, playerID)
	}
	return nil, nil
}

func (f *FakeGameService) SubmitPlayerStats(ctx context.Context, gameID, playerID uuid.UUID, stats []gametypes.StatInput) ([]*gametypes.PlayerStat, error) {
	f.record("SubmitPlayerStats")
	if f.SubmitPlayerStatsFunc != nil {
		return f.SubmitPlayerStatsFunc(ctx, gameID, playerID, stats)
	}
	return nil, nil
}

func (f *FakeGameService) SubmitGameResult(ctx context.Context, gameID uuid.UUID, winningTeamID *uuid.UUID, resultData json.RawMessage) (*gametypes.GameResult, error) {
	f.record("SubmitGameResult")
	if f.SubmitGameResultFunc != nil {
		return f.SubmitGameResultFunc(ctx, gameID, winningTeamID, resultData)
	}
	return nil, nil
}

func (f *FakeGameService) GetGameResult(ctx context.Context, gameID uuid.UUID) (*gametypes.GameResult, error) {
	f.record("GetGameResult")
	if f.GetGameResultFunc != nil {
		return f.GetGameResultFunc(ctx, gameID)
	}
	return nil, nil
}

func (f *FakeGameService) EndGame(ctx context.Context, gameID, actorID uuid.UUID) (*gametypes.Game, error) {
	f.record("EndGame")
	if f.EndGameFunc != nil {
		return f.EndGameFunc(ctx, gameID, actorID)
	}
	return nil, nil
}

func (f *FakeGameService) CalculateTitles(ctx context.Context, gameID uuid.UUID) ([]*gametypes.Title, error) {
	f.record("CalculateTitles")
	if f.CalculateTitlesFunc != nil {
		return f.CalculateTitlesFunc(ctx, gameID)
	}
	return nil, nil
}

func (f *FakeGameService) AdvanceToNextRound(ctx context.Context, tournamentID, gameID uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("AdvanceToNextRound")
	if f.AdvanceToNextRoundFunc != nil {
		return f.AdvanceToNextRoundFunc(ctx, tournamentID, gameID)
	}
	return nil, nil
}

func (f *FakeGameService) CalculateGlobalTitles(ctx context.Context, tournamentID uuid.UUID) ([]*gametypes.Title, error) {
	f.record("CalculateGlobalTitles")
	if f.CalculateGlobalTitlesFunc != nil {
		return f.CalculateGlobalTitlesFunc(ctx, tournamentID)
	}
	return nil, nil
}

var _ gameservice.Service = (*FakeGameService)(nil)
