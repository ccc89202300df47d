package scoreboarddb

import (
	"context"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository is the read side over tournament and game rows.
type Repository interface {
	GetTournament(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Tournament, error)
	ListCompletedTournaments(ctx context.Context, db bun.IDB, limit int) ([]*tournamenttypes.Tournament, error)
	GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*tournamenttypes.Player, error)
	GetGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*gametypes.Game, error)

	ListPlayers(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Player, error)
	ListTeams(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.Team, error)
	ListVotes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*tournamenttypes.LeaderVote, error)
	ListGames(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Game, error)
	ListGameTypes(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameType, error)
	ListResults(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.GameResult, error)
	ListTitles(ctx context.Context, db bun.IDB, tournamentID uuid.UUID) ([]*gametypes.Title, error)
	ListPlayerStats(ctx context.Context, db bun.IDB, playerID uuid.UUID) ([]*gametypes.PlayerStat, error)
}
