package gameservice

import (
	"context"
	"encoding/json"

	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
	"github.com/google/uuid"
)

// Service is the game module's domain operations.
type Service interface {
	ListGameTypes(ctx context.Context, tournamentID uuid.UUID) ([]*gametypes.GameType, error)
	GetGameType(ctx context.Context, gameTypeID uuid.UUID) (*gametypes.GameType, error)
	CreateGameType(ctx context.Context, tournamentID uuid.UUID, gt *gametypes.GameType) (*gametypes.GameType, error)

	PickGame(ctx context.Context, tournamentID, teamID, gameTypeID, playerID uuid.UUID) (*gametypes.Game, error)
	SubmitPlayerStats(ctx context.Context, gameID, playerID uuid.UUID, stats []gametypes.StatInput) ([]*gametypes.PlayerStat, error)
	SubmitGameResult(ctx context.Context, gameID uuid.UUID, winningTeamID *uuid.UUID, resultData json.RawMessage) (*gametypes.GameResult, error)
	// GetGameResult returns nil without error while no result was submitted.
	GetGameResult(ctx context.Context, gameID uuid.UUID) (*gametypes.GameResult, error)
	EndGame(ctx context.Context, gameID, actorID uuid.UUID) (*gametypes.Game, error)

	CalculateTitles(ctx context.Context, gameID uuid.UUID) ([]*gametypes.Title, error)
	AdvanceToNextRound(ctx context.Context, tournamentID, gameID uuid.UUID) (*tournamenttypes.Tournament, error)
	CalculateGlobalTitles(ctx context.Context, tournamentID uuid.UUID) ([]*gametypes.Title, error)
}

var _ Service = (*GameService)(nil)
