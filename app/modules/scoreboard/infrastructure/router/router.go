package scoreboardrouter

import (
	"context"
	"log/slog"

	scoreboardhandlers "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/infrastructure/handlers"
	"github.com/Black-And-White-Club/party-bracket/pkg/eventbus"
	scoreboardevents "github.com/Black-And-White-Club/party-bracket/pkg/events/scoreboard"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// ScoreboardRouter registers the read-side request handlers.
type ScoreboardRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

func NewScoreboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *ScoreboardRouter {
	return &ScoreboardRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *ScoreboardRouter) Configure(_ context.Context, handlers scoreboardhandlers.Handlers) error {
	r.registerHandlers(handlers)
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "scoreboard." + topic

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

func (r *ScoreboardRouter) registerHandlers(h scoreboardhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, scoreboardevents.SnapshotRequestedV1, h.HandleSnapshot)
	registerHandler(deps, scoreboardevents.ScoreboardRequestedV1, h.HandleScoreboard)
	registerHandler(deps, scoreboardevents.CeremonyRequestedV1, h.HandleCeremony)
	registerHandler(deps, scoreboardevents.HistoryRequestedV1, h.HandleHistory)
	registerHandler(deps, scoreboardevents.HistoryDetailRequestedV1, h.HandleHistoryDetail)
	registerHandler(deps, scoreboardevents.PlayerDetailRequestedV1, h.HandlePlayerDetail)

	r.logger.Info("Scoreboard module handlers registered")
}

// Close shuts down the router.
func (r *ScoreboardRouter) Close() error {
	return r.Router.Close()
}
