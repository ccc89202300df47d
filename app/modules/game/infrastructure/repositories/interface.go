package gamedb

import (
	"context"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for game persistence, plus the tournament, team and player
// reads and conditional updates a game round needs.
type Repository interface {
	// --- Game types ---
	// ListGameTypes returns the built-ins and the tournament's custom types.
	ListGameTypes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameType, error)
	GetGameType(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.GameType, error)
	CreateGameType(ctx context.Context, db bun.IDB, gt *gametypes.GameType) error

	// --- Games ---
	CreateGame(ctx context.Context, db bun.IDB, g *gametypes.Game) error
	GetGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, error)
	// ListGames returns the tournament's games by game_order.
	ListGames(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Game, error)
	CountGames(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, status ...gametypes.Status) (int, error)
	TransitionGame(ctx context.Context, db bun.IDB, id uuid.UUID, from, to gametypes.Status) (*gametypes.Game, error)

	// --- Stats and results ---
	UpsertPlayerStats(ctx context.Context, db bun.IDB, stats []*gametypes.PlayerStat) ([]*gametypes.PlayerStat, error)
	ListGameStats(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]*gametypes.PlayerStat, error)
	UpsertGameResult(ctx context.Context, db bun.IDB, result *gametypes.GameResult) error
	GetGameResult(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gametypes.GameResult, error)

	// --- Titles ---
	// ReplaceGameTitles swaps the game's titles for titles and returns the removed rows.
	ReplaceGameTitles(ctx context.Context, db bun.IDB, gameID uuid.UUID, titles []*gametypes.Title) ([]*gametypes.Title, error)
	// ReplaceGlobalTitles swaps the tournament's ceremony titles and returns the removed rows.
	ReplaceGlobalTitles(ctx context.Context, db bun.IDB, tournamentID uuid.UUID, titles []*gametypes.Title) ([]*gametypes.Title, error)
	ListTournamentTitles(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Title, error)
	// RecomputeTeamTotals sets every team's total_points to the sum of its players' titles.
	RecomputeTeamTotals(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error)

	// --- Tournament side ---
	LockTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error)
	GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error)
	ListTeams(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error)
	// FlipAfterPick moves picking -> playing only while expectTeam still holds the pick.
	FlipAfterPick(ctx context.Context, db bun.IDB, id, expectTeam, nextTeam uuid.UUID, gameOrder int) (*tournamenttypes.Tournament, error)
	TransitionTournament(ctx context.Context, db bun.IDB, id uuid.UUID, from, to tournamenttypes.Status) (*tournamenttypes.Tournament, error)
	// NextRound moves scoring -> picking and hands the pick to nextTeam.
	NextRound(ctx context.Context, db bun.IDB, id, nextTeam uuid.UUID) (*tournamenttypes.Tournament, error)
}
