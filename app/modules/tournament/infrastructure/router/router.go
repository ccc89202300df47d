package tournamentrouter

import (
	"context"
	"log/slog"

	tournamenthandlers "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/infrastructure/handlers"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	tournamentevents "github.com/Black-And-White-Club/party-bracket/pkg/events/tournament"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// TournamentRouter handles Watermill handler registration for tournament commands.
type TournamentRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewTournamentRouter creates a new TournamentRouter.
func NewTournamentRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *TournamentRouter {
	return &TournamentRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *TournamentRouter) Configure(_ context.Context, handlers tournamenthandlers.Handlers) error {
	r.registerHandlers(handlers)
	return nil
}

// handlerDeps bundles dependencies for handler registration.
type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "tournament." + topic

	deps.router.AddNoPublisherHandler(
		handlerName,
		topic,
		deps.subscriber,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.publisher,
			handler,
		),
	)
}

// registerHandlers wires NATS subjects to handler methods.
func (r *TournamentRouter) registerHandlers(h tournamenthandlers.Handlers) {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, tournamentevents.CreateTournamentRequestedV1, h.HandleCreateTournament)
	registerHandler(deps, tournamentevents.JoinTournamentRequestedV1, h.HandleJoinTournament)
	registerHandler(deps, tournamentevents.ReconnectPlayerRequestedV1, h.HandleReconnectPlayer)
	registerHandler(deps, tournamentevents.CancelTournamentRequestedV1, h.HandleCancelTournament)
	registerHandler(deps, tournamentevents.StartTournamentRequestedV1, h.HandleStartTournament)

	registerHandler(deps, tournamentevents.CreateTeamRequestedV1, h.HandleCreateTeam)
	registerHandler(deps, tournamentevents.UpdateTeamNameRequestedV1, h.HandleUpdateTeamName)
	registerHandler(deps, tournamentevents.JoinTeamRequestedV1, h.HandleJoinTeam)
	registerHandler(deps, tournamentevents.LeaveTeamRequestedV1, h.HandleLeaveTeam)
	registerHandler(deps, tournamentevents.VoteForLeaderRequestedV1, h.HandleVoteForLeader)

	registerHandler(deps, tournamentevents.StartDraftRequestedV1, h.HandleStartDraft)
	registerHandler(deps, tournamentevents.DraftPlayerRequestedV1, h.HandleDraftPlayer)
	registerHandler(deps, tournamentevents.RevealLeadersRequestedV1, h.HandleRevealLeaders)

	registerHandler(deps, tournamentevents.SubmitDicePickRequestedV1, h.HandleSubmitDicePick)
	registerHandler(deps, tournamentevents.ResetDiceRollRequestedV1, h.HandleResetDiceRoll)
	registerHandler(deps, tournamentevents.ConfirmDiceWinnerRequestedV1, h.HandleConfirmDiceWinner)

	r.logger.Info("Tournament module handlers registered")
}

// Close shuts down the router.
func (r *TournamentRouter) Close() error {
	return r.Router.Close()
}
