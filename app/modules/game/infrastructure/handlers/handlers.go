package gamehandlers

import (
	"context"
	"log/slog"

	gameservice "github.com/Black-And-White-Club/party-bracket/app/modules/game/application"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// GameHandlers implements the Handlers interface.
type GameHandlers struct {
	service gameservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewGameHandlers creates a new GameHandlers instance.
func NewGameHandlers(
	service gameservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &GameHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *GameHandlers) respond(ctx context.Context, operation string, data any, err error) ([]handlerwrapper.Result, error) {
	if handlerwrapper.IsInternal(err, gameservice.ErrorCode) {
		h.logger.ErrorContext(ctx, "Game command failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operation),
			attr.Error(err),
		)
	}
	return handlerwrapper.Respond(ctx, data, err, gameservice.ErrorCode), nil
}
