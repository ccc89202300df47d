package gamerouter

import (
	"context"
	"log/slog"

	gamehandlers "github.com/Black-And-White-Club/party-bracket/app/modules/game/infrastructure/handlers"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	gameevents "github.com/Black-And-White-Club/party-bracket/pkg/events/game"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// GameRouter handles Watermill handler registration for game commands.
type GameRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewGameRouter creates a new GameRouter.
func NewGameRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *GameRouter {
	return &GameRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *GameRouter) Configure(_ context.Context, handlers gamehandlers.Handlers) error {
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
	handlerName := "game." + topic

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
func (r *GameRouter) registerHandlers(h gamehandlers.Handlers) {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, gameevents.ListGameTypesRequestedV1, h.HandleListGameTypes)
	registerHandler(deps, gameevents.GetGameTypeRequestedV1, h.HandleGetGameType)
	registerHandler(deps, gameevents.CreateGameTypeRequestedV1, h.HandleCreateGameType)

	registerHandler(deps, gameevents.PickGameRequestedV1, h.HandlePickGame)
	registerHandler(deps, gameevents.SubmitPlayerStatsRequestedV1, h.HandleSubmitPlayerStats)
	registerHandler(deps, gameevents.SubmitGameResultRequestedV1, h.HandleSubmitGameResult)
	registerHandler(deps, gameevents.GetGameResultRequestedV1, h.HandleGetGameResult)
	registerHandler(deps, gameevents.EndGameRequestedV1, h.HandleEndGame)

	registerHandler(deps, gameevents.CalculateTitlesRequestedV1, h.HandleCalculateTitles)
	registerHandler(deps, gameevents.AdvanceRoundRequestedV1, h.HandleAdvanceToNextRound)
	registerHandler(deps, gameevents.GlobalTitlesRequestedV1, h.HandleCalculateGlobalTitles)

	r.logger.Info("Game module handlers registered")
}

// Close shuts down the router.
func (r *GameRouter) Close() error {
	return r.Router.Close()
}
