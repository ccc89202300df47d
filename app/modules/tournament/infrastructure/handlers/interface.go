package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
)

// Handlers defines the interface for tournament command handlers. Every handler answers on
// the request's reply subject.
type Handlers interface {
	HandleCreateTournament(ctx context.Context, payload *tournamentevents.CreateTournamentRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleJoinTournament(ctx context.Context, payload *tournamentevents.JoinTournamentRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleReconnectPlayer(ctx context.Context, payload *tournamentevents.ReconnectPlayerRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCancelTournament(ctx context.Context, payload *tournamentevents.TournamentActorPayloadV1) ([]handlerwrapper.Result, error)
	HandleStartTournament(ctx context.Context, payload *tournamentevents.TournamentActorPayloadV1) ([]handlerwrapper.Result, error)

	HandleCreateTeam(ctx context.Context, payload *tournamentevents.CreateTeamRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleUpdateTeamName(ctx context.Context, payload *tournamentevents.UpdateTeamNameRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleJoinTeam(ctx context.Context, payload *tournamentevents.JoinTeamRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleLeaveTeam(ctx context.Context, payload *tournamentevents.LeaveTeamRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleVoteForLeader(ctx context.Context, payload *tournamentevents.VoteForLeaderRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleStartDraft(ctx context.Context, payload *tournamentevents.TournamentActorPayloadV1) ([]handlerwrapper.Result, error)
	HandleDraftPlayer(ctx context.Context, payload *tournamentevents.DraftPlayerRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRevealLeaders(ctx context.Context, payload *tournamentevents.RevealLeadersRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleSubmitDicePick(ctx context.Context, payload *tournamentevents.SubmitDicePickRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleResetDiceRoll(ctx context.Context, payload *tournamentevents.DiceRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleConfirmDiceWinner(ctx context.Context, payload *tournamentevents.DiceRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
