package gamehandlers

import (
	"context"

	gameevents "github.com/Black-And-White-Club/party-bracket/pkg/events/game"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	tournamenttypes "github.com/Black-And-White-Club/party-bracket/pkg/types/tournament"
)

func (h *GameHandlers) HandlePickGame(ctx context.Context, payload *gameevents.PickGameRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandlePickGame")
	defer span.End()

	game, err := h.service.PickGame(ctx, payload.TournamentID, payload.TeamID, payload.GameTypeID, payload.PlayerID)
	return h.respond(ctx, "PickGame", game, err)
}

func (h *GameHandlers) HandleSubmitPlayerStats(ctx context.Context, payload *gameevents.SubmitPlayerStatsRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandleSubmitPlayerStats")
	defer span.End()

	stats, err := h.service.SubmitPlayerStats(ctx, payload.GameID, payload.PlayerID, payload.Stats)
	return h.respond(ctx, "SubmitPlayerStats", stats, err)
}

func (h *GameHandlers) HandleSubmitGameResult(ctx context.Context, payload *gameevents.SubmitGameResultRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandleSubmitGameResult")
	defer span.End()

	res, err := h.service.SubmitGameResult(ctx, payload.GameID, payload.WinningTeamID, payload.ResultData)
	return h.respond(ctx, "SubmitGameResult", res, err)
}

// HandleGetGameResult answers with null data until the referee submits.
func (h *GameHandlers) HandleGetGameResult(ctx context.Context, payload *gameevents.GameRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandleGetGameResult")
	defer span.End()

	res, err := h.service.GetGameResult(ctx, payload.GameID)
	if res == nil {
		return h.respond(ctx, "GetGameResult", nil, err)
	}
	return h.respond(ctx, "GetGameResult", res, err)
}

func (h *GameHandlers) HandleEndGame(ctx context.Context, payload *gameevents.EndGameRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandleEndGame")
	defer span.End()

	game, err := h.service.EndGame(ctx, payload.GameID, payload.ActorID)
	return h.respond(ctx, "EndGame", game, err)
}

func (h *GameHandlers) HandleCalculateTitles(ctx context.Context, payload *gameevents.GameRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandleCalculateTitles")
	defer span.End()

	titles, err := h.service.CalculateTitles(ctx, payload.GameID)
	return h.respond(ctx, "CalculateTitles", titles, err)
}

func (h *GameHandlers) HandleAdvanceToNextRound(ctx context.Context, payload *gameevents.AdvanceRoundRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandleAdvanceToNextRound")
	defer span.End()

	t, err := h.service.AdvanceToNextRound(ctx, payload.TournamentID, payload.GameID)
	if err != nil {
		return h.respond(ctx, "AdvanceToNextRound", nil, err)
	}
	return h.respond(ctx, "AdvanceToNextRound", gameevents.AdvanceRoundResultV1{
		Completed:      t.Status == tournamenttypes.StatusCompleted,
		GamesCompleted: t.CurrentGameIndex,
	}, nil)
}

func (h *GameHandlers) HandleCalculateGlobalTitles(ctx context.Context, payload *gameevents.GlobalTitlesRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandleCalculateGlobalTitles")
	defer span.End()

	titles, err := h.service.CalculateGlobalTitles(ctx, payload.TournamentID)
	return h.respond(ctx, "CalculateGlobalTitles", titles, err)
}
