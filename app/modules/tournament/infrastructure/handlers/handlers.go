package tournamenthandlers

import (
	"context"
	"log/slog"

	tournamentservice "github.com/Black-And-White-Club/party-bracket/app/modules/tournament/application"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// TournamentHandlers implements the Handlers interface.
type TournamentHandlers struct {
	service tournamentservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewTournamentHandlers creates a new TournamentHandlers instance.
func NewTournamentHandlers(
	service tournamentservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &TournamentHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// respond turns a service outcome into the reply envelope. Domain failures are answered and
// acked; unmapped errors are logged as well.
func (h *TournamentHandlers) respond(ctx context.Context, operation string, data any, err error) ([]handlerwrapper.Result, error) {
	if handlerwrapper.IsInternal(err, tournamentservice.ErrorCode) {
		h.logger.ErrorContext(ctx, "Tournament command failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operation),
			attr.Error(err),
		)
	}
	return handlerwrapper.Respond(ctx, data, err, tournamentservice.ErrorCode), nil
}
