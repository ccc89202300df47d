package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
)

func (h *TournamentHandlers) HandleCreateTeam(ctx context.Context, payload *tournamentevents.CreateTeamRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleCreateTeam")
	defer span.End()

	team, err := h.service.CreateTeam(ctx, payload.TournamentID, payload.Name)
	return h.respond(ctx, "CreateTeam", team, err)
}

func (h *TournamentHandlers) HandleUpdateTeamName(ctx context.Context, payload *tournamentevents.UpdateTeamNameRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleUpdateTeamName")
	defer span.End()

	team, err := h.service.UpdateTeamName(ctx, payload.TeamID, payload.Name)
	return h.respond(ctx, "UpdateTeamName", team, err)
}

func (h *TournamentHandlers) HandleJoinTeam(ctx context.Context, payload *tournamentevents.JoinTeamRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleJoinTeam")
	defer span.End()

	p, err := h.service.JoinTeam(ctx, payload.PlayerID, payload.TeamID)
	return h.respond(ctx, "JoinTeam", p, err)
}

func (h *TournamentHandlers) HandleLeaveTeam(ctx context.Context, payload *tournamentevents.LeaveTeamRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleLeaveTeam")
	defer span.End()

	p, err := h.service.LeaveTeam(ctx, payload.PlayerID)
	return h.respond(ctx, "LeaveTeam", p, err)
}

// HandleVoteForLeader records a vote; the reply carries the leader once one is elected.
func (h *TournamentHandlers) HandleVoteForLeader(ctx context.Context, payload *tournamentevents.VoteForLeaderRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleVoteForLeader")
	defer span.End()

	outcome, err := h.service.VoteForLeader(ctx, payload.TeamID, payload.VoterID, payload.CandidateID)
	return h.respond(ctx, "VoteForLeader", outcome, err)
}
