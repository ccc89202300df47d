package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
)

// HandleCreateTournament opens a lobby for the requesting device.
func (h *TournamentHandlers) HandleCreateTournament(ctx context.Context, payload *tournamentevents.CreateTournamentRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleCreateTournament")
	defer span.End()

	h.logger.InfoContext(ctx, "Create tournament requested",
		attr.ExtractCorrelationID(ctx),
		attr.String("room_code", payload.RoomCode),
		attr.Int("num_games", payload.NumGames),
	)

	session, err := h.service.CreateTournament(ctx, payload.Name, payload.RoomCode, payload.NumGames, payload.RefereeName, payload.Identity)
	return h.respond(ctx, "CreateTournament", session, err)
}

// HandleJoinTournament seats the requesting device in a lobby.
func (h *TournamentHandlers) HandleJoinTournament(ctx context.Context, payload *tournamentevents.JoinTournamentRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleJoinTournament")
	defer span.End()

	session, err := h.service.JoinTournament(ctx, payload.RoomCode, payload.Name, payload.Identity, payload.Role)
	return h.respond(ctx, "JoinTournament", session, err)
}

// HandleReconnectPlayer answers with the device's live session, or null data when there is none.
func (h *TournamentHandlers) HandleReconnectPlayer(ctx context.Context, payload *tournamentevents.ReconnectPlayerRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleReconnectPlayer")
	defer span.End()

	session, err := h.service.ReconnectPlayer(ctx, payload.Identity)
	if err == nil && session == nil {
		return h.respond(ctx, "ReconnectPlayer", nil, nil)
	}
	return h.respond(ctx, "ReconnectPlayer", session, err)
}

func (h *TournamentHandlers) HandleCancelTournament(ctx context.Context, payload *tournamentevents.TournamentActorPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleCancelTournament")
	defer span.End()

	err := h.service.CancelTournament(ctx, payload.TournamentID, payload.ActorID)
	return h.respond(ctx, "CancelTournament", map[string]bool{"cancelled": err == nil}, err)
}

func (h *TournamentHandlers) HandleStartTournament(ctx context.Context, payload *tournamentevents.TournamentActorPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleStartTournament")
	defer span.End()

	t, err := h.service.StartTournament(ctx, payload.TournamentID, payload.ActorID)
	return h.respond(ctx, "StartTournament", t, err)
}
