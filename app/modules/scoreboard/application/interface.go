package scoreboardservice

import (
	"context"

	scoreboardtypes "github.com/Black-And-White-Club/party-bracket/pkg/types/scoreboard"
	"github.com/google/uuid"
)

// Service builds the read-side views.
type Service interface {
	Snapshot(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Snapshot, error)
	Scoreboard(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Scoreboard, error)
	Ceremony(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Ceremony, error)
	History(ctx context.Context, limit int) ([]scoreboardtypes.HistoryEntry, error)
	// HistoryDetail is the ceremony of a completed tournament.
	HistoryDetail(ctx context.Context, tournamentID uuid.UUID) (*scoreboardtypes.Ceremony, error)
	PlayerDetail(ctx context.Context, playerID uuid.UUID) (*scoreboardtypes.PlayerDetail, error)

	ExportHistory(ctx context.Context, tournamentID uuid.UUID) ([]byte, error)
	TitleChart(ctx context.Context, tournamentID uuid.UUID) ([]byte, error)
}

var _ Service = (*ScoreboardService)(nil)
