package gameservice

import (
	"context"
	"sync"

	gamedb "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/party-bracket/pkg/changefeed"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Game Repo
// ------------------------

// FakeGameRepo provides a programmable stub for the gamedb.Repository interface.
type FakeGameRepo struct {
	trace                    []string
	ListGameTypesFunc        func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameType, error)
	GetGameTypeFunc          func(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.GameType, error)
	CreateGameTypeFunc       func(ctx context.Context, db bun.IDB, gt *gametypes.GameType) error
	CreateGameFunc           func(ctx context.Context, db bun.IDB, g *gametypes.Game) error
	GetGameFunc              func(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, error)
	ListGamesFunc            func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Game, error)
	CountGamesFunc           func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, status ...gametypes.Status) (int, error)
	TransitionGameFunc       func(ctx context.Context, db bun.IDB, id uuid.UUID, from, to gametypes.Status) (*gametypes.Game, error)
	UpsertPlayerStatsFunc    func(ctx context.Context, db bun.IDB, stats []*gametypes.PlayerStat) ([]*gametypes.PlayerStat, error)
	ListGameStatsFunc        func(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]*gametypes.PlayerStat, error)
	UpsertGameResultFunc     func(ctx context.Context, db bun.IDB, result *gametypes.GameResult) error
	GetGameResultFunc        func(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gametypes.GameResult, error)
	ReplaceGameTitlesFunc    func(ctx context.Context, db bun.IDB, gameID uuid.UUID, titles []*gametypes.Title) ([]*gametypes.Title, error)
	ReplaceGlobalTitlesFunc  func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, titles []*gametypes.Title) ([]*gametypes.Title, error)
	ListTournamentTitlesFunc func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Title, error)
	RecomputeTeamTotalsFunc  func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error)
	LockTournamentFunc       func(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error)
	GetPlayerFunc            func(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error)
	ListTeamsFunc            func(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error)
	FlipAfterPickFunc        func(ctx context.Context, db bun.IDB, id, expectTeam, nextTeam uuid.UUID, gameOrder int) (*tournamenttypes.Tournament, error)
	TransitionTournamentFunc func(ctx context.Context, db bun.IDB, id uuid.UUID, from, to tournamenttypes.Status) (*tournamenttypes.Tournament, error)
	NextRoundFunc            func(ctx context.Context, db bun.IDB, id, nextTeam uuid.UUID) (*tournamenttypes.Tournament, error)
}

// NewFakeGameRepo initializes a new FakeGameRepo with an empty trace.
func NewFakeGameRepo() *FakeGameRepo {
	return &FakeGameRepo{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeGameRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGameRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGameRepo) ListGameTypes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameType, error) {
	f.record("ListGameTypes")
	if f.ListGameTypesFunc != nil {
		return f.ListGameTypesFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeGameRepo) GetGameType(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.GameType, error) {
	f.record("GetGameType")
	if f.GetGameTypeFunc != nil {
		return f.GetGameTypeFunc(ctx, db, id)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) CreateGameType(ctx context.Context, db bun.IDB, gt *gametypes.GameType) error {
	f.record("CreateGameType")
	if f.CreateGameTypeFunc != nil {
		return f.CreateGameTypeFunc(ctx, db, gt)
	}
	if gt.ID == uuid.Nil {
		gt.ID = uuid.New()
	}
	return nil
}

func (f *FakeGameRepo) CreateGame(ctx context.Context, db bun.IDB, g *gametypes.Game) error {
	f.record("CreateGame")
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, db, g)
	}
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (f *FakeGameRepo) GetGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, db, id)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) ListGames(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Game, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeGameRepo) CountGames(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, status ...gametypes.Status) (int, error) {
	f.record("CountGames")
	if f.CountGamesFunc != nil {
		return f.CountGamesFunc(ctx, db, tournamentID, status...)
	}
	return 0, nil
}

func (f *FakeGameRepo) TransitionGame(ctx context.Context, db bun.IDB, id uuid.UUID, from, to gametypes.Status) (*gametypes.Game, error) {
	f.record("TransitionGame")
	if f.TransitionGameFunc != nil {
		return f.TransitionGameFunc(ctx, db, id, from, to)
	}
	return &gametypes.Game{ID: id, Status: to}, nil
}

func (f *FakeGameRepo) UpsertPlayerStats(ctx context.Context, db bun.IDB, stats []*gametypes.PlayerStat) ([]*gametypes.PlayerStat, error) {
	f.record("UpsertPlayerStats")
	if f.UpsertPlayerStatsFunc != nil {
		return f.UpsertPlayerStatsFunc(ctx, db, stats)
	}
	return stats, nil
}

func (f *FakeGameRepo) ListGameStats(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]*gametypes.PlayerStat, error) {
	f.record("ListGameStats")
	if f.ListGameStatsFunc != nil {
		return f.ListGameStatsFunc(ctx, db, gameID)
	}
	return nil, nil
}

func (f *FakeGameRepo) UpsertGameResult(ctx context.Context, db bun.IDB, result *gametypes.GameResult) error {
	f.record("UpsertGameResult")
	if f.UpsertGameResultFunc != nil {
		return f.UpsertGameResultFunc(ctx, db, result)
	}
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	return nil
}

func (f *FakeGameRepo) GetGameResult(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gametypes.GameResult, error) {
	f.record("GetGameResult")
	if f.GetGameResultFunc != nil {
		return f.GetGameResultFunc(ctx, db, gameID)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) ReplaceGameTitles(ctx context.Context, db bun.IDB, gameID uuid.UUID, titles []*gametypes.Title) ([]*gametypes.Title, error) {
	f.record("ReplaceGameTitles")
	if f.ReplaceGameTitlesFunc != nil {
		return f.ReplaceGameTitlesFunc(ctx, db, gameID, titles)
	}
	return nil, nil
}

func (f *FakeGameRepo) ReplaceGlobalTitles(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, titles []*gametypes.Title) ([]*gametypes.Title, error) {
	f.record("ReplaceGlobalTitles")
	if f.ReplaceGlobalTitlesFunc != nil {
		return f.ReplaceGlobalTitlesFunc(ctx, db, tournamentID, titles)
	}
	return nil, nil
}

func (f *FakeGameRepo) ListTournamentTitles(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Title, error) {
	f.record("ListTournamentTitles")
	if f.ListTournamentTitlesFunc != nil {
		return f.ListTournamentTitlesFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeGameRepo) RecomputeTeamTotals(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error) {
	f.record("RecomputeTeamTotals")
	if f.RecomputeTeamTotalsFunc != nil {
		return f.RecomputeTeamTotalsFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeGameRepo) LockTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("LockTournament")
	if f.LockTournamentFunc != nil {
		return f.LockTournamentFunc(ctx, db, id)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, db, id)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) ListTeams(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error) {
	f.record("ListTeams")
	if f.ListTeamsFunc != nil {
		return f.ListTeamsFunc(ctx, db, tournamentID)
	}
	return nil, nil
}

func (f *FakeGameRepo) FlipAfterPick(ctx context.Context, db bun.IDB, id, expectTeam, nextTeam uuid.UUID, gameOrder int) (*tournamenttypes.Tournament, error) {
	f.record("FlipAfterPick")
	if f.FlipAfterPickFunc != nil {
		return f.FlipAfterPickFunc(ctx, db, id, expectTeam, nextTeam, gameOrder)
	}
	return &tournamenttypes.Tournament{ID: id, Status: tournamenttypes.StatusPlaying, CurrentPickTeam: &nextTeam, CurrentGameIndex: gameOrder}, nil
}

func (f *FakeGameRepo) TransitionTournament(ctx context.Context, db bun.IDB, id uuid.UUID, from, to tournamenttypes.Status) (*tournamenttypes.Tournament, error) {
	f.record("TransitionTournament")
	if f.TransitionTournamentFunc != nil {
		return f.TransitionTournamentFunc(ctx, db, id, from, to)
	}
	return &tournamenttypes.Tournament{ID: id, Status: to}, nil
}

func (f *FakeGameRepo) NextRound(ctx context.Context, db bun.IDB, id, nextTeam uuid.UUID) (*tournamenttypes.Tournament, error) {
	f.record("NextRound")
	if f.NextRoundFunc != nil {
		return f.NextRoundFunc(ctx, db, id, nextTeam)
	}
	return &tournamenttypes.Tournament{ID: id, Status: tournamenttypes.StatusPicking, CurrentPickTeam: &nextTeam}, nil
}

var _ gamedb.Repository = (*FakeGameRepo)(nil)

// FakeFeed records every published batch.
type FakeFeed struct {
	mu      sync.Mutex
	batches []*changefeed.Batch
}

func (f *FakeFeed) Publish(ctx context.Context, batch *changefeed.Batch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if batch == nil || batch.Len() == 0 {
		return nil
	}
	f.batches = append(f.batches, batch)
	return nil
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
