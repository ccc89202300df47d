package gamehandlers

import (
	"context"

	gameevents "github.com/Black-And-White-Club/party-bracket/pkg/events/game"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	gametypes "github.com/Black-And-White-Club/party-bracket/pkg/types/game"
)

func (h *GameHandlers) HandleListGameTypes(ctx context.Context, payload *gameevents.ListGameTypesRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandleListGameTypes")
	defer span.End()

	types, err := h.service.ListGameTypes(ctx, payload.TournamentID)
	return h.respond(ctx, "ListGameTypes", types, err)
}

func (h *GameHandlers) HandleGetGameType(ctx context.Context, payload *gameevents.GetGameTypeRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandleGetGameType")
	defer span.End()

	gt, err := h.service.GetGameType(ctx, payload.GameTypeID)
	return h.respond(ctx, "GetGameType", gt, err)
}

func (h *GameHandlers) HandleCreateGameType(ctx context.Context, payload *gameevents.CreateGameTypeRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "GameHandlers.HandleCreateGameType")
	defer span.End()

	gt, err := h.service.CreateGameType(ctx, payload.TournamentID, &gametypes.GameType{
		Name:             payload.Name,
		Emoji:            payload.Emoji,
		Description:      payload.Description,
		PlayerInputs:     payload.PlayerInputs,
		RefereeInputs:    payload.RefereeInputs,
		TitleDefinitions: payload.TitleDefinitions,
	})
	return h.respond(ctx, "CreateGameType", gt, err)
}
