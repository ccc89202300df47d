package gamehandlers

import (
	"context"

	gameevents "github.com/Black-And-White-Club/party-bracket/pkg/events/game"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
)

// Handlers defines the interface for game command handlers.
type Handlers interface {
	HandleListGameTypes(ctx context.Context, payload *gameevents.ListGameTypesRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleGetGameType(ctx context.Context, payload *gameevents.GetGameTypeRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCreateGameType(ctx context.Context, payload *gameevents.CreateGameTypeRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandlePickGame(ctx context.Context, payload *gameevents.PickGameRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleSubmitPlayerStats(ctx context.Context, payload *gameevents.SubmitPlayerStatsRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleSubmitGameResult(ctx context.Context, payload *gameevents.SubmitGameResultRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleGetGameResult(ctx context.Context, payload *gameevents.GameRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleEndGame(ctx context.Context, payload *gameevents.EndGameRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleCalculateTitles(ctx context.Context, payload *gameevents.GameRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleAdvanceToNextRound(ctx context.Context, payload *gameevents.AdvanceRoundRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCalculateGlobalTitles(ctx context.Context, payload *gameevents.GlobalTitlesRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
