package scoreboardhandlers

import (
	"context"
	"log/slog"

	scoreboardservice "github.com/Black-And-White-Club/party-bracket/app/modules/scoreboard/application"
	scoreboardevents "github.com/Black-And-White-Club/party-bracket/pkg/events/scoreboard"
	"github.com/Black-And-White-Club/party-bracket/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// ScoreboardHandlers implements the Handlers interface.
type ScoreboardHandlers struct {
	service scoreboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewScoreboardHandlers creates a new ScoreboardHandlers instance.
func NewScoreboardHandlers(
	service scoreboardservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ScoreboardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *ScoreboardHandlers) respond(ctx context.Context, operation string, data any, err error) ([]handlerwrapper.Result, error) {
	if handlerwrapper.IsInternal(err, scoreboardservice.ErrorCode) {
		h.logger.ErrorContext(ctx, "Scoreboard query failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operation),
			attr.Error(err),
		)
	}
	return handlerwrapper.Respond(ctx, data, err, scoreboardservice.ErrorCode), nil
}

func (h *ScoreboardHandlers) HandleSnapshot(ctx context.Context, payload *scoreboardevents.TournamentRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreboardHandlers.HandleSnapshot")
	defer span.End()

	snap, err := h.service.Snapshot(ctx, payload.TournamentID)
	return h.respond(ctx, "Snapshot", snap, err)
}

func (h *ScoreboardHandlers) HandleScoreboard(ctx context.Context, payload *scoreboardevents.TournamentRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreboardHandlers.HandleScoreboard")
	defer span.End()

	sb, err := h.service.Scoreboard(ctx, payload.TournamentID)
	return h.respond(ctx, "Scoreboard", sb, err)
}

func (h *ScoreboardHandlers) HandleCeremony(ctx context.Context, payload *scoreboardevents.TournamentRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreboardHandlers.HandleCeremony")
	defer span.End()

	c, err := h.service.Ceremony(ctx, payload.TournamentID)
	return h.respond(ctx, "Ceremony", c, err)
}

func (h *ScoreboardHandlers) HandleHistory(ctx context.Context, payload *scoreboardevents.HistoryRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreboardHandlers.HandleHistory")
	defer span.End()

	entries, err := h.service.History(ctx, payload.Limit)
	return h.respond(ctx, "History", entries, err)
}

func (h *ScoreboardHandlers) HandleHistoryDetail(ctx context.Context, payload *scoreboardevents.TournamentRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreboardHandlers.HandleHistoryDetail")
	defer span.End()

	c, err := h.service.HistoryDetail(ctx, payload.TournamentID)
	return h.respond(ctx, "HistoryDetail", c, err)
}

func (h *ScoreboardHandlers) HandlePlayerDetail(ctx context.Context, payload *scoreboardevents.PlayerDetailRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreboardHandlers.HandlePlayerDetail")
	defer span.End()

	d, err := h.service.PlayerDetail(ctx, payload.PlayerID)
	return h.respond(ctx, "PlayerDetail", d, err)
}
