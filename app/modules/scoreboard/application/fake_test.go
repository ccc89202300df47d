package scoreboardservice

import (
	"context"
	"sync"

	scoreboarddb "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/repositories"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeScoreboardRepo is a programmable fake for scoreboarddb.Repository.
type FakeScoreboardRepo struct {
	mu    sync.Mutex
	trace []string

	GetTournamentFunc            func(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error)
	ListCompletedTournamentsFunc func(ctx context.Context, db bun.IDB, limit int) ([]*tournamenttypes.Tournament, error)
	GetPlayerFunc                func(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error)
	GetGameFunc                  func(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, error)
	ListPlayersFunc              func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error)
	ListTeamsFunc                func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error)
	ListVotesFunc                func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.LeaderVote, error)
	ListGamesFunc                func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Game, error)
	ListGameTypesFunc            func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameType, error)
	ListResultsFunc              func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameResult, error)
	ListTitlesFunc               func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Title, error)
	ListPlayerStatsFunc          func(ctx context.Context, db bun.IDB, playerID uuid.UUID) ([]*gametypes.PlayerStat, error)
}

func NewFakeScoreboardRepo() *FakeScoreboardRepo {
	return &FakeScoreboardRepo{trace: []string{}}
}

func (f *FakeScoreboardRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeScoreboardRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreboardRepo) GetTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, db, id)
	}
	return nil, scoreboarddb.ErrNotFound
}

func (f *FakeScoreboardRepo) GetGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, db, id)
	}
	return nil, scoreboarddb.ErrNotFound
}

func (f *FakeScoreboardRepo) ListCompletedTournaments(ctx context.Context, db bun.IDB, limit int) ([]*tournamenttypes.Tournament, error) {
	f.record("ListCompletedTournaments")
	if f.ListCompletedTournamentsFunc != nil {
		return f.ListCompletedTournamentsFunc(ctx, db, limit)
	}
	return nil, nil
}

func (f *FakeScoreboardRepo) GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, db, id)
	}
	return nil, scoreboarddb.ErrNotFound
}

func (f *FakeScoreboardRepo) ListPlayers(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeScoreboardRepo) ListTeams(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error) {
	f.record("ListTeams")
	if f.ListTeamsFunc != nil {
		return f.ListTeamsFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeScoreboardRepo) ListVotes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.LeaderVote, error) {
	f.record("ListVotes")
	if f.ListVotesFunc != nil {
		return f.ListVotesFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeScoreboardRepo) ListGames(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Game, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeScoreboardRepo) ListGameTypes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameType, error) {
	f.record("ListGameTypes")
	if f.ListGameTypesFunc != nil {
		return f.ListGameTypesFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeScoreboardRepo) ListResults(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameResult, error) {
	f.record("ListResults")
	if f.ListResultsFunc != nil {
		return f.ListResultsFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeScoreboardRepo) ListTitles(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Title, error) {
	f.record("ListTitles")
	if f.ListTitlesFunc != nil {
		return f.ListTitlesFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeScoreboardRepo) ListPlayerStats(ctx context.Context, db bun.IDB, playerID uuid.UUID) ([]*gametypes.PlayerStat, error) {
	f.record("ListPlayerStats")
	if f.ListPlayerStatsFunc != nil {
		return f.ListPlayerStatsFunc(ctx, db, playerID)
	}
	return nil, nil
}

var _ scoreboarddb.Repository = (*FakeScoreboardRepo)(nil)
