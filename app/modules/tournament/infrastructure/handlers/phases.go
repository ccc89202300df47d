package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
)

func (h *TournamentHandlers) HandleStartDraft(ctx context.Context, payload *tournamentevents.TournamentActorPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleStartDraft")
	defer span.End()

	t, err := h.service.StartDraft(ctx, payload.TournamentID, payload.ActorID)
	return h.respond(ctx, "StartDraft", t, err)
}

func (h *TournamentHandlers) HandleDraftPlayer(ctx context.Context, payload *tournamentevents.DraftPlayerRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleDraftPlayer")
	defer span.End()

	t, err := h.service.DraftPlayer(ctx, payload.TournamentID, payload.CaptainID, payload.PlayerID)
	return h.respond(ctx, "DraftPlayer", t, err)
}

func (h *TournamentHandlers) HandleRevealLeaders(ctx context.Context, payload *tournamentevents.RevealLeadersRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleRevealLeaders")
	defer span.End()

	t, err := h.service.RevealLeaders(ctx, payload.TournamentID)
	return h.respond(ctx, "RevealLeaders", t, err)
}

func (h *TournamentHandlers) HandleSubmitDicePick(ctx context.Context, payload *tournamentevents.SubmitDicePickRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleSubmitDicePick")
	defer span.End()

	t, err := h.service.SubmitDicePick(ctx, payload.TournamentID, payload.TeamID, payload.Value)
	return h.respond(ctx, "SubmitDicePick", t, err)
}

func (h *TournamentHandlers) HandleResetDiceRoll(ctx context.Context, payload *tournamentevents.DiceRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleResetDiceRoll")
	defer span.End()

	t, err := h.service.ResetDiceRoll(ctx, payload.TournamentID)
	return h.respond(ctx, "ResetDiceRoll", t, err)
}

func (h *TournamentHandlers) HandleConfirmDiceWinner(ctx context.Context, payload *tournamentevents.DiceRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleConfirmDiceWinner")
	defer span.End()

	t, err := h.service.ConfirmDiceWinner(ctx, payload.TournamentID)
	return h.respond(ctx, "ConfirmDiceWinner", t, err)
}
